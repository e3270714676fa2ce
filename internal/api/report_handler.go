package api

import (
	"errors"
	"net/http"

	"ScoutSync/internal/config"
	"ScoutSync/internal/model"
	"ScoutSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReportHandler 观察记录录入与批量修复接口
type ReportHandler struct {
	reportService    *service.ReportService
	normalizeService *service.NormalizeService
	logger           *logrus.Logger
}

func NewReportHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		reportService:    service.NewReportService(db, logger, cfg),
		normalizeService: service.NewNormalizeService(db, logger),
		logger:           logger,
	}
}

// SubmitReport 录入观察记录。同场次同队已有记录时返回 409，
// 带 ?confirm=true 重发则覆盖
// POST /api/reports?confirm=
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	var report model.ScoutingReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	confirm := c.Query("confirm") == "true"

	saved, err := h.reportService.Submit(c.Request.Context(), &report, confirm)
	if errors.Is(err, service.ErrDuplicateReport) {
		c.JSON(http.StatusConflict, gin.H{
			"error":    err.Error(),
			"existing": saved,
		})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("SubmitReport failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// UpdateReport 更新既有观察记录
// PUT /api/reports/:id
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	var report model.ScoutingReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report.ID = c.Param("id")
	saved, err := h.reportService.Update(c.Request.Context(), &report)
	if err != nil {
		h.logger.WithError(err).Error("UpdateReport failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteReport 删除观察记录
// DELETE /api/reports/:id
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	if err := h.reportService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.WithError(err).Error("DeleteReport failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "观察记录已删除"})
}

type normalizeRequest struct {
	CompetitionID string `json:"competitionId" binding:"required"`
	TargetLabel   string `json:"targetLabel" binding:"required"`
	Confirm       bool   `json:"confirm"`
}

// PlanNormalize 预览批量修复将改写哪些记录（不落库）
// POST /api/reports/normalize/plan
func (h *ReportHandler) PlanNormalize(c *gin.Context) {
	var req normalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := h.normalizeService.Plan(c.Request.Context(), req.CompetitionID, req.TargetLabel)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// RunNormalize 执行批量修复（confirm 必须为 true）
// POST /api/reports/normalize
func (h *ReportHandler) RunNormalize(c *gin.Context) {
	var req normalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.normalizeService.Run(c.Request.Context(), req.CompetitionID, req.TargetLabel, req.Confirm)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
