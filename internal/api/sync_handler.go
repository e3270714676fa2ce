package api

import (
	"fmt"
	"net/http"

	"ScoutSync/internal/adapter"
	"ScoutSync/internal/config"
	"ScoutSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SyncHandler struct {
	importService *service.ImportService
	logger        *logrus.Logger
}

func NewSyncHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *SyncHandler {
	return &SyncHandler{
		importService: service.NewImportService(db, logger, cfg),
		logger:        logger,
	}
}

// ImportEventHandler 从指定数据源导入赛事名册
// @Summary 导入赛事数据
// @Param provider path string true "数据源名称（frcevents/tba）"
// @Param event query string true "事件Key（如 2025casd）"
// @Success 200 {object} service.ImportResult
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sync/provider/{provider} [post]
func (h *SyncHandler) ImportEventHandler(c *gin.Context) {
	providerName := c.Param("provider")
	eventKey := c.Query("event")
	if eventKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event 参数不能为空"})
		return
	}

	result, err := h.importService.ImportEvent(c.Request.Context(), providerName, eventKey)
	if err != nil {
		h.logger.Errorf("导入%s失败: %v", providerName, err)
		c.JSON(providerErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s导入成功", providerName),
		"result":  result,
	})
}

// providerErrStatus 把数据源的类型化失败映射为 HTTP 状态码
func providerErrStatus(err error) int {
	pe, ok := adapter.AsProviderError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch pe.Kind {
	case adapter.KindNotFound:
		return http.StatusNotFound
	case adapter.KindUnauthorized:
		return http.StatusBadGateway
	case adapter.KindRateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusBadGateway
}
