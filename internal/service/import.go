package service

import (
	"context"
	"fmt"

	"ScoutSync/internal/adapter"
	"ScoutSync/internal/config"
	"ScoutSync/internal/model"
	"ScoutSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ImportService 从外部数据源拉取赛事名册并入库。
// 新增数据源仅需在 adapter 子包注册工厂
type ImportService struct {
	logger          *logrus.Logger
	cfg             *config.Config
	competitionRepo repository.CompetitionRepository
	teamRepo        repository.TeamRepository
	matchRepo       repository.MatchRepository
}

func NewImportService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *ImportService {
	return &ImportService{
		logger:          logger,
		cfg:             cfg,
		competitionRepo: repository.NewCompetitionRepository(db),
		teamRepo:        repository.NewTeamRepository(db),
		matchRepo:       repository.NewMatchRepository(db),
	}
}

// ImportResult 一次导入的统计
type ImportResult struct {
	CompetitionID string `json:"competitionId"`
	TeamCount     int    `json:"teamCount"`
	MatchCount    int    `json:"matchCount"`
}

// ImportEvent 拉取指定数据源的赛事名册（赛事信息、队伍、赛程）并入库。
// 名册里有哪些场次由各数据源自己决定，这里照单全收（去重后 upsert）
func (s *ImportService) ImportEvent(ctx context.Context, providerName string, eventKey string) (*ImportResult, error) {
	factory, ok := adapter.GetFactory(providerName)
	if !ok {
		return nil, fmt.Errorf("未支持的数据源: %s", providerName)
	}
	providerCfg, ok := s.cfg.Providers[providerName]
	if !ok {
		return nil, fmt.Errorf("未获取到数据源配置: %s", providerName)
	}
	a := factory(&providerCfg, s.cfg.Scouting.Season, s.logger)

	roster, err := a.FetchRoster(ctx, eventKey)
	if err != nil {
		return nil, fmt.Errorf("%s拉取名册失败: %w", providerName, err)
	}

	comp := &model.Competition{
		Name:      roster.EventName,
		StartDate: roster.StartDate,
		EndDate:   roster.EndDate,
	}
	if roster.EventKey != "" {
		key := roster.EventKey
		comp.EventKey = &key
	}
	if err := s.competitionRepo.Upsert(ctx, comp); err != nil {
		return nil, fmt.Errorf("%s赛事入库失败: %w", providerName, err)
	}

	teams := make([]*model.Team, 0, len(roster.Teams))
	for _, t := range roster.Teams {
		teams = append(teams, &model.Team{TeamNumber: t.TeamNumber, Name: t.Name})
	}
	if err := s.teamRepo.UpsertBatch(ctx, teams); err != nil {
		return nil, fmt.Errorf("%s队伍入库失败: %w", providerName, err)
	}

	matchCount := 0
	for _, pm := range dedupMatches(roster.Matches) {
		m := &model.Match{
			CompetitionID: comp.ID,
			Label:         pm.Label,
			Level:         pm.Level,
		}
		m.SetTeamNumbers(pm.TeamNumbers())
		if err := s.matchRepo.Upsert(ctx, m); err != nil {
			s.logger.WithError(err).WithField("label", pm.Label).Warn("赛程入库失败")
			continue
		}
		matchCount++
	}

	s.logger.Infof("%s导入完成: %s, %d支队伍, %d场比赛", providerName, roster.EventName, len(teams), matchCount)
	return &ImportResult{
		CompetitionID: comp.ID,
		TeamCount:     len(teams),
		MatchCount:    matchCount,
	}, nil
}

// dedupMatches 同场次保留最后一条（数据源偶发重复场次）
func dedupMatches(matches []model.ProviderMatch) []model.ProviderMatch {
	if len(matches) == 0 {
		return matches
	}
	byLabel := make(map[string]int, len(matches))
	out := make([]model.ProviderMatch, 0, len(matches))
	for _, m := range matches {
		if idx, ok := byLabel[m.Label]; ok {
			out[idx] = m
			continue
		}
		byLabel[m.Label] = len(out)
		out = append(out, m)
	}
	return out
}
