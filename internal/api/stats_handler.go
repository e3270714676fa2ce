package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ScoutSync/internal/service"
	"ScoutSync/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatsHandler 统计与导出接口
type StatsHandler struct {
	statsService  *service.StatsService
	exportService *service.ExportService
	logger        *logrus.Logger
}

func NewStatsHandler(db *gorm.DB, logger *logrus.Logger, statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService:  statsService,
		exportService: service.NewExportService(db, logger),
		logger:        logger,
	}
}

// TeamSummaries 队伍聚合榜单
// GET /api/stats/teams?competition_id=&sort=avgPoints&dir=desc
// competition_id 为空时返回赛季总览；sort 非法时回退默认排序
func (h *StatsHandler) TeamSummaries(c *gin.Context) {
	competitionID := c.Query("competition_id")
	sortKey := c.DefaultQuery("sort", "")
	desc := c.DefaultQuery("dir", "desc") != "asc"
	if sortKey != "" && !stats.SortKeyValid(sortKey) {
		h.logger.Warnf("未知排序列 %s，回退默认排序", sortKey)
		sortKey = ""
	}

	var (
		summaries []stats.TeamSummary
		err       error
	)
	if competitionID == "" {
		summaries, err = h.statsService.SeasonSummaries(c.Request.Context(), sortKey, desc)
	} else {
		summaries, err = h.statsService.TeamSummaries(c.Request.Context(), competitionID, sortKey, desc)
	}
	if err != nil {
		h.logger.WithError(err).Error("TeamSummaries failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// TeamDetail 单队明细：逐场日志 + 指标波动性
// GET /api/stats/teams/:team_number?competition_id=
func (h *StatsHandler) TeamDetail(c *gin.Context) {
	teamNumber, err := strconv.Atoi(c.Param("team_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team_number 必须为数字"})
		return
	}
	competitionID := c.Query("competition_id")
	if competitionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "competition_id 参数不能为空"})
		return
	}
	detail, err := h.statsService.TeamDetail(c.Request.Context(), competitionID, teamNumber)
	if err != nil {
		h.logger.WithError(err).Error("TeamDetail failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ExportCSV 导出观察记录为 CSV 文件下载
// GET /api/export/csv?competition_id=
func (h *StatsHandler) ExportCSV(c *gin.Context) {
	data, err := h.exportService.ExportCSV(c.Request.Context(), c.Query("competition_id"))
	if err != nil {
		h.logger.WithError(err).Error("ExportCSV failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	filename := fmt.Sprintf("scouting-data-%d.csv", time.Now().UnixMilli())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
