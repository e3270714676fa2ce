package api

import (
	"net/http"
	"strconv"

	"ScoutSync/internal/config"
	"ScoutSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LookupHandler 外部数据源的实时比赛列表查询（录入页用）
type LookupHandler struct {
	lookupService *service.MatchLookupService
	logger        *logrus.Logger
}

func NewLookupHandler(logger *logrus.Logger, cfg *config.Config) *LookupHandler {
	return &LookupHandler{
		lookupService: service.NewMatchLookupService(logger, cfg),
		logger:        logger,
	}
}

// ProviderMatches 查数据源的比赛列表，可按队伍过滤
// GET /api/provider/matches?provider=frcevents&event=2025casd&team_number=
func (h *LookupHandler) ProviderMatches(c *gin.Context) {
	providerName := c.DefaultQuery("provider", "frcevents")
	eventKey := c.Query("event")
	if eventKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event 参数不能为空"})
		return
	}
	teamNumber := 0
	if raw := c.Query("team_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "team_number 必须为数字"})
			return
		}
		teamNumber = n
	}

	matches, err := h.lookupService.Lookup(c.Request.Context(), providerName, eventKey, teamNumber)
	if err != nil {
		h.logger.WithError(err).Error("ProviderMatches failed")
		c.JSON(providerErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, matches)
}
