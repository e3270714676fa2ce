package api

import (
	"net/http"
	"strconv"

	"ScoutSync/internal/model"
	"ScoutSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ScheduleHandler 赛事、队伍、赛程的管理接口
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
	statsService    *service.StatsService
	logger          *logrus.Logger
}

func NewScheduleHandler(db *gorm.DB, logger *logrus.Logger, statsService *service.StatsService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: service.NewScheduleService(db, logger),
		statsService:    statsService,
		logger:          logger,
	}
}

// ListCompetitions 赛事列表
// GET /api/competitions
func (h *ScheduleHandler) ListCompetitions(c *gin.Context) {
	list, err := h.scheduleService.ListCompetitions(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ListCompetitions failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateCompetition 创建赛事（同 event_key 走 upsert）
// POST /api/competitions
func (h *ScheduleHandler) CreateCompetition(c *gin.Context) {
	var comp model.Competition
	if err := c.ShouldBindJSON(&comp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.scheduleService.CreateCompetition(c.Request.Context(), &comp); err != nil {
		h.logger.WithError(err).Error("CreateCompetition failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, comp)
}

// DeleteCompetition 删除赛事（连带比赛与观察记录）
// DELETE /api/competitions/:id
func (h *ScheduleHandler) DeleteCompetition(c *gin.Context) {
	id := c.Param("id")
	if err := h.scheduleService.DeleteCompetition(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).Error("DeleteCompetition failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.statsService.Invalidate(id)
	c.JSON(http.StatusOK, gin.H{"message": "赛事已删除"})
}

// ListTeams 队伍列表
// GET /api/teams
func (h *ScheduleHandler) ListTeams(c *gin.Context) {
	list, err := h.scheduleService.ListTeams(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ListTeams failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpsertTeam 新建或更新队伍（team_number 为业务主键）
// POST /api/teams
func (h *ScheduleHandler) UpsertTeam(c *gin.Context) {
	var team model.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.scheduleService.UpsertTeam(c.Request.Context(), &team); err != nil {
		h.logger.WithError(err).Error("UpsertTeam failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, team)
}

// DeleteTeam 删除队伍
// DELETE /api/teams/:team_number
func (h *ScheduleHandler) DeleteTeam(c *gin.Context) {
	teamNumber, err := strconv.Atoi(c.Param("team_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team_number 必须为数字"})
		return
	}
	if err := h.scheduleService.DeleteTeam(c.Request.Context(), teamNumber); err != nil {
		h.logger.WithError(err).Error("DeleteTeam failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "队伍已删除"})
}

// ListMatches 赛程列表（资格赛 → 淘汰赛 → 练习赛）
// GET /api/matches?competition_id=
func (h *ScheduleHandler) ListMatches(c *gin.Context) {
	competitionID := c.Query("competition_id")
	if competitionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "competition_id 参数不能为空"})
		return
	}
	list, err := h.scheduleService.ListMatches(c.Request.Context(), competitionID)
	if err != nil {
		h.logger.WithError(err).Error("ListMatches failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateMatch 手工创建单场比赛
// POST /api/matches
func (h *ScheduleHandler) CreateMatch(c *gin.Context) {
	var m model.Match
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.scheduleService.CreateMatch(c.Request.Context(), &m); err != nil {
		h.logger.WithError(err).Error("CreateMatch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMatch 删除单场比赛（连带其观察记录）
// DELETE /api/matches/:id
func (h *ScheduleHandler) DeleteMatch(c *gin.Context) {
	if err := h.scheduleService.DeleteMatch(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.WithError(err).Error("DeleteMatch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "比赛已删除"})
}

type quickGenRequest struct {
	CompetitionID string `json:"competitionId" binding:"required"`
	QualCount     int    `json:"qualCount"`
	Playoff       bool   `json:"playoff"`
}

// QuickGenerate 快速生成场次：Q1..Qn 资格赛和/或标准淘汰赛阶梯
// POST /api/matches/generate
func (h *ScheduleHandler) QuickGenerate(c *gin.Context) {
	var req quickGenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created := 0
	if req.QualCount > 0 {
		n, err := h.scheduleService.GenerateQualMatches(c.Request.Context(), req.CompetitionID, req.QualCount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		created += n
	}
	if req.Playoff {
		n, err := h.scheduleService.GeneratePlayoffMatches(c.Request.Context(), req.CompetitionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		created += n
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}

type bulkImportRequest struct {
	CompetitionID string           `json:"competitionId" binding:"required"`
	Labels        string           `json:"labels" binding:"required"`
	Level         model.MatchLevel `json:"level"`
}

// BulkImportMatches 按行批量导入场次号
// POST /api/matches/bulk
func (h *ScheduleHandler) BulkImportMatches(c *gin.Context) {
	var req bulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	imported, err := h.scheduleService.BulkImportLabels(c.Request.Context(), req.CompetitionID, req.Labels, req.Level)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
