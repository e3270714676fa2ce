package service

import (
	"context"
	"errors"
	"fmt"

	"ScoutSync/internal/config"
	"ScoutSync/internal/model"
	"ScoutSync/internal/repository"
	"ScoutSync/internal/resolver"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrDuplicateReport 同赛事里已存在 同场次+同队 的记录，需要调用方确认覆盖
var ErrDuplicateReport = errors.New("该场次该队伍已有观察记录")

// ReportService 观察记录录入。入库前完成三件事：
// 计数值夹取、评分校验、比赛引用归一化
type ReportService struct {
	logger     *logrus.Logger
	cfg        *config.Config
	reportRepo repository.ReportRepository
	matchRepo  repository.MatchRepository
}

func NewReportService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *ReportService {
	return &ReportService{
		logger:     logger,
		cfg:        cfg,
		reportRepo: repository.NewReportRepository(db),
		matchRepo:  repository.NewMatchRepository(db),
	}
}

// Submit 录入一条观察记录。confirmOverride=false 且发现重复时返回
// ErrDuplicateReport 并不落库；true 时覆盖既有记录（保留其 id 与创建时间）
func (s *ReportService) Submit(ctx context.Context, report *model.ScoutingReport, confirmOverride bool) (*model.ScoutingReport, error) {
	if report.CompetitionID == "" {
		return nil, fmt.Errorf("缺少赛事ID")
	}
	if report.TeamNumber <= 0 {
		return nil, fmt.Errorf("队伍编号非法: %d", report.TeamNumber)
	}
	s.sanitize(report)
	if err := s.validate(report); err != nil {
		return nil, err
	}

	// 录入时即归一化引用，尽量避免原始串落库
	known, err := s.knownMatches(ctx, report.CompetitionID)
	if err != nil {
		return nil, err
	}
	report.MatchRef = model.MatchRef(resolver.Resolve(report.MatchRef, known))

	existing, err := s.reportRepo.FindDuplicate(ctx, report.CompetitionID, report.MatchRef, report.TeamNumber)
	if err != nil {
		return nil, fmt.Errorf("查重失败: %w", err)
	}
	if existing != nil {
		if !confirmOverride {
			return existing, ErrDuplicateReport
		}
		report.ID = existing.ID
		report.CreatedAt = existing.CreatedAt
		if err := s.reportRepo.Update(ctx, report); err != nil {
			return nil, fmt.Errorf("覆盖观察记录失败: %w", err)
		}
		s.logger.WithFields(logrus.Fields{
			"matchRef": report.MatchRef,
			"team":     report.TeamNumber,
		}).Info("观察记录已覆盖")
		return report, nil
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("创建观察记录失败: %w", err)
	}
	return report, nil
}

// Update 更新既有记录（同样走夹取与校验）
func (s *ReportService) Update(ctx context.Context, report *model.ScoutingReport) (*model.ScoutingReport, error) {
	existing, err := s.reportRepo.GetByID(ctx, report.ID)
	if err != nil {
		return nil, fmt.Errorf("查询观察记录失败: %w", err)
	}
	report.CompetitionID = existing.CompetitionID
	report.CreatedAt = existing.CreatedAt
	s.sanitize(report)
	if err := s.validate(report); err != nil {
		return nil, err
	}
	known, err := s.knownMatches(ctx, report.CompetitionID)
	if err != nil {
		return nil, err
	}
	report.MatchRef = model.MatchRef(resolver.Resolve(report.MatchRef, known))
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("更新观察记录失败: %w", err)
	}
	return report, nil
}

func (s *ReportService) Delete(ctx context.Context, id string) error {
	return s.reportRepo.Delete(ctx, id)
}

// sanitize 计数值夹取到 [0, counterMax]，负数归零。
// 不做防守的记录清掉防守评分，聚合端不用再判
func (s *ReportService) sanitize(report *model.ScoutingReport) {
	max := s.cfg.Scouting.CounterMax
	if max <= 0 {
		max = 99
	}
	counters := []*int{
		&report.AutoCoralL1, &report.AutoCoralL2, &report.AutoCoralL3, &report.AutoCoralL4,
		&report.AutoAlgaeProcessor, &report.AutoAlgaeBarge,
		&report.TeleopCoralL1, &report.TeleopCoralL2, &report.TeleopCoralL3, &report.TeleopCoralL4,
		&report.TeleopAlgaeProcessor, &report.TeleopAlgaeBarge,
		&report.MinorFouls, &report.MajorFouls,
	}
	for _, c := range counters {
		if *c < 0 {
			*c = 0
		}
		if *c > max {
			*c = max
		}
	}
	if !report.PlayedDefense {
		report.DefenseRating = nil
	}
	if report.Endgame == "" {
		report.Endgame = model.EndgameNone
	}
}

func (s *ReportService) validate(report *model.ScoutingReport) error {
	if !report.Endgame.Valid() {
		return fmt.Errorf("非法终局状态: %s", report.Endgame)
	}
	if report.DriverSkill < 1 || report.DriverSkill > 5 {
		return fmt.Errorf("车手水平需在1-5之间: %d", report.DriverSkill)
	}
	if report.RobotSpeed < 1 || report.RobotSpeed > 5 {
		return fmt.Errorf("机器人速度需在1-5之间: %d", report.RobotSpeed)
	}
	if report.PlayedDefense && report.DefenseRating != nil {
		if *report.DefenseRating < 1 || *report.DefenseRating > 5 {
			return fmt.Errorf("防守评分需在1-5之间: %d", *report.DefenseRating)
		}
	}
	return nil
}

func (s *ReportService) knownMatches(ctx context.Context, competitionID string) ([]model.Match, error) {
	list, err := s.matchRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("查询赛程失败: %w", err)
	}
	known := make([]model.Match, 0, len(list))
	for _, m := range list {
		known = append(known, *m)
	}
	return known, nil
}
