package service

import (
	"context"
	"fmt"
	"sync"

	"ScoutSync/internal/model"
	"ScoutSync/internal/repository"
	"ScoutSync/internal/resolver"
	"ScoutSync/internal/scoring"
	"ScoutSync/internal/stats"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatsService 统计查询。聚合结果按赛事缓存，
// 数据变更通知到达时由监听器调 Refresh 重算
type StatsService struct {
	logger     *logrus.Logger
	reportRepo repository.ReportRepository
	matchRepo  repository.MatchRepository
	table      scoring.Table

	mu    sync.RWMutex
	cache map[string][]stats.TeamSummary // competitionID -> 已聚合结果（默认序）
}

func NewStatsService(db *gorm.DB, logger *logrus.Logger) *StatsService {
	return &StatsService{
		logger:     logger,
		reportRepo: repository.NewReportRepository(db),
		matchRepo:  repository.NewMatchRepository(db),
		table:      scoring.Reefscape2025,
		cache:      make(map[string][]stats.TeamSummary),
	}
}

// TeamSummaries 赛事维度的队伍聚合榜单，支持按任意数值列排序。
// sortKey 非法时回退默认排序（avgPoints 降序）
func (s *StatsService) TeamSummaries(ctx context.Context, competitionID string, sortKey string, desc bool) ([]stats.TeamSummary, error) {
	summaries, err := s.summariesFor(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	if sortKey == "" {
		return summaries, nil
	}
	return stats.SortBy(summaries, sortKey, desc), nil
}

// SeasonSummaries 跨赛事的赛季总览（不走缓存，按需全量聚合）
func (s *StatsService) SeasonSummaries(ctx context.Context, sortKey string, desc bool) ([]stats.TeamSummary, error) {
	list, err := s.reportRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询观察记录失败: %w", err)
	}
	summaries := stats.Aggregate(derefReports(list), s.table)
	if sortKey == "" {
		return summaries, nil
	}
	return stats.SortBy(summaries, sortKey, desc), nil
}

// TeamMatchRow 单队比赛日志里的一行
type TeamMatchRow struct {
	ReportID   string `json:"reportId"`
	MatchLabel string `json:"matchLabel"`
	Points     int    `json:"points"`
	AutoPoints int    `json:"autoPoints"`
	Endgame    string `json:"endgame"`
	MinorFouls int    `json:"minorFouls"`
	MajorFouls int    `json:"majorFouls"`
	Notes      string `json:"notes"`
}

// TeamDetail 单队详情：逐场日志 + 指标波动性
type TeamDetail struct {
	TeamNumber  int               `json:"teamNumber"`
	Matches     []TeamMatchRow    `json:"matches"`
	Variability stats.Variability `json:"variability"`
}

// TeamDetail 单队明细。比赛引用经 DisplayLabel 还原为可读场次号
func (s *StatsService) TeamDetail(ctx context.Context, competitionID string, teamNumber int) (*TeamDetail, error) {
	reportList, err := s.reportRepo.ListByTeam(ctx, competitionID, teamNumber)
	if err != nil {
		return nil, fmt.Errorf("查询观察记录失败: %w", err)
	}
	matchList, err := s.matchRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("查询赛程失败: %w", err)
	}
	known := make([]model.Match, 0, len(matchList))
	for _, m := range matchList {
		known = append(known, *m)
	}

	reports := derefReports(reportList)
	rows := make([]TeamMatchRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, TeamMatchRow{
			ReportID:   r.ID,
			MatchLabel: resolver.DisplayLabel(string(r.MatchRef), known),
			Points:     scoring.Points(r, s.table),
			AutoPoints: scoring.AutoPoints(r, s.table),
			Endgame:    string(r.Endgame),
			MinorFouls: r.MinorFouls,
			MajorFouls: r.MajorFouls,
			Notes:      r.Notes,
		})
	}
	return &TeamDetail{
		TeamNumber:  teamNumber,
		Matches:     rows,
		Variability: stats.TeamVariability(reports, teamNumber, s.table),
	}, nil
}

// Refresh 重算并回填指定赛事的聚合缓存（监听到数据变更时调用）
func (s *StatsService) Refresh(ctx context.Context, competitionID string) error {
	list, err := s.reportRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return fmt.Errorf("查询观察记录失败: %w", err)
	}
	summaries := stats.Aggregate(derefReports(list), s.table)
	s.mu.Lock()
	s.cache[competitionID] = summaries
	s.mu.Unlock()
	s.logger.WithFields(logrus.Fields{
		"competitionId": competitionID,
		"teams":         len(summaries),
	}).Debug("统计缓存已刷新")
	return nil
}

// Invalidate 丢弃指定赛事的缓存（赛事删除时调用）
func (s *StatsService) Invalidate(competitionID string) {
	s.mu.Lock()
	delete(s.cache, competitionID)
	s.mu.Unlock()
}

func (s *StatsService) summariesFor(ctx context.Context, competitionID string) ([]stats.TeamSummary, error) {
	s.mu.RLock()
	cached, ok := s.cache[competitionID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}
	if err := s.Refresh(ctx, competitionID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[competitionID], nil
}

func derefReports(list []*model.ScoutingReport) []model.ScoutingReport {
	out := make([]model.ScoutingReport, 0, len(list))
	for _, r := range list {
		out = append(out, *r)
	}
	return out
}
