package service

import (
	"context"
	"fmt"

	"ScoutSync/internal/model"
	"ScoutSync/internal/repository"
	"ScoutSync/internal/resolver"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NormalizeService 批量修复历史观察记录里的原始比赛引用：
// 挑出引用解析到目标场次的行，逐条改写为 canonical id。
// 选择与改写分离，改写彼此独立，单行失败不回滚其余行
type NormalizeService struct {
	logger     *logrus.Logger
	reportRepo repository.ReportRepository
	matchRepo  repository.MatchRepository
}

func NewNormalizeService(db *gorm.DB, logger *logrus.Logger) *NormalizeService {
	return &NormalizeService{
		logger:     logger,
		reportRepo: repository.NewReportRepository(db),
		matchRepo:  repository.NewMatchRepository(db),
	}
}

// NormalizePlan 预览结果
type NormalizePlan struct {
	TargetMatchID string                  `json:"targetMatchId"`
	TargetLabel   string                  `json:"targetLabel"`
	Candidates    []*model.ScoutingReport `json:"candidates"`
}

// NormalizeResult 执行结果
type NormalizeResult struct {
	Changed int `json:"changed"`
	Failed  int `json:"failed"`
}

// Plan 按目标场次号列出将被改写的记录，不落库（供确认界面展示）
func (s *NormalizeService) Plan(ctx context.Context, competitionID string, targetLabel string) (*NormalizePlan, error) {
	known, reports, err := s.snapshot(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	target, ok := findMatchByLabel(targetLabel, known)
	if !ok {
		return nil, fmt.Errorf("未找到场次: %s", targetLabel)
	}
	eligible := resolver.PlanNormalization(targetLabel, known, reports)
	candidates := make([]*model.ScoutingReport, 0, len(eligible))
	for i := range eligible {
		candidates = append(candidates, &eligible[i])
	}
	return &NormalizePlan{
		TargetMatchID: target.ID,
		TargetLabel:   target.Label,
		Candidates:    candidates,
	}, nil
}

// Run 执行批量改写。必须先有确认（confirm=false 直接拒绝），
// 对快照选出的每一行独立 update，返回成功与失败条数
func (s *NormalizeService) Run(ctx context.Context, competitionID string, targetLabel string, confirm bool) (*NormalizeResult, error) {
	if !confirm {
		return nil, fmt.Errorf("批量修复需要确认")
	}
	known, reports, err := s.snapshot(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	target, ok := findMatchByLabel(targetLabel, known)
	if !ok {
		return nil, fmt.Errorf("未找到场次: %s", targetLabel)
	}
	eligible := resolver.PlanNormalization(targetLabel, known, reports)

	result := &NormalizeResult{}
	for _, r := range eligible {
		if err := s.reportRepo.UpdateMatchRef(ctx, r.ID, model.MatchRef(target.ID)); err != nil {
			s.logger.WithError(err).WithField("reportId", r.ID).Warn("改写比赛引用失败")
			result.Failed++
			continue
		}
		result.Changed++
	}
	s.logger.Infof("批量修复完成: %s -> %s, 改写%d条, 失败%d条",
		targetLabel, target.ID, result.Changed, result.Failed)
	return result, nil
}

// snapshot 取当前赛事的赛程与全部观察记录快照，选择阶段只看快照
func (s *NormalizeService) snapshot(ctx context.Context, competitionID string) ([]model.Match, []model.ScoutingReport, error) {
	matchList, err := s.matchRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, nil, fmt.Errorf("查询赛程失败: %w", err)
	}
	known := make([]model.Match, 0, len(matchList))
	for _, m := range matchList {
		known = append(known, *m)
	}
	reportList, err := s.reportRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, nil, fmt.Errorf("查询观察记录失败: %w", err)
	}
	reports := make([]model.ScoutingReport, 0, len(reportList))
	for _, r := range reportList {
		reports = append(reports, *r)
	}
	return known, reports, nil
}

func findMatchByLabel(label string, known []model.Match) (model.Match, bool) {
	for _, m := range known {
		if m.Label == label {
			return m, true
		}
	}
	return model.Match{}, false
}
