package service

import (
	"context"
	"fmt"
	"strings"

	"ScoutSync/internal/model"
	"ScoutSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ScheduleService 赛事、队伍、赛程的人工管理入口
// （导入不可用或赛程未公布时手工建档）
type ScheduleService struct {
	logger          *logrus.Logger
	competitionRepo repository.CompetitionRepository
	teamRepo        repository.TeamRepository
	matchRepo       repository.MatchRepository
}

func NewScheduleService(db *gorm.DB, logger *logrus.Logger) *ScheduleService {
	return &ScheduleService{
		logger:          logger,
		competitionRepo: repository.NewCompetitionRepository(db),
		teamRepo:        repository.NewTeamRepository(db),
		matchRepo:       repository.NewMatchRepository(db),
	}
}

func (s *ScheduleService) CreateCompetition(ctx context.Context, comp *model.Competition) error {
	if strings.TrimSpace(comp.Name) == "" {
		return fmt.Errorf("赛事名称不能为空")
	}
	return s.competitionRepo.Upsert(ctx, comp)
}

func (s *ScheduleService) ListCompetitions(ctx context.Context) ([]*model.Competition, error) {
	return s.competitionRepo.List(ctx)
}

// DeleteCompetition 连带删除该赛事的比赛与观察记录
func (s *ScheduleService) DeleteCompetition(ctx context.Context, id string) error {
	return s.competitionRepo.Delete(ctx, id)
}

func (s *ScheduleService) UpsertTeam(ctx context.Context, team *model.Team) error {
	if team.TeamNumber <= 0 {
		return fmt.Errorf("队伍编号非法: %d", team.TeamNumber)
	}
	return s.teamRepo.Upsert(ctx, team)
}

func (s *ScheduleService) ListTeams(ctx context.Context) ([]*model.Team, error) {
	return s.teamRepo.List(ctx)
}

func (s *ScheduleService) DeleteTeam(ctx context.Context, teamNumber int) error {
	return s.teamRepo.Delete(ctx, teamNumber)
}

func (s *ScheduleService) CreateMatch(ctx context.Context, m *model.Match) error {
	if m.CompetitionID == "" {
		return fmt.Errorf("缺少赛事ID")
	}
	m.Label = strings.TrimSpace(m.Label)
	if m.Label == "" {
		return fmt.Errorf("场次号不能为空")
	}
	if m.Level == "" {
		m.Level = model.LevelQualification
	}
	return s.matchRepo.Upsert(ctx, m)
}

func (s *ScheduleService) ListMatches(ctx context.Context, competitionID string) ([]*model.Match, error) {
	return s.matchRepo.ListByCompetition(ctx, competitionID)
}

func (s *ScheduleService) DeleteMatch(ctx context.Context, id string) error {
	return s.matchRepo.Delete(ctx, id)
}

// GenerateQualMatches 快速生成 Q1..Qn 资格赛场次
func (s *ScheduleService) GenerateQualMatches(ctx context.Context, competitionID string, count int) (int, error) {
	if competitionID == "" {
		return 0, fmt.Errorf("缺少赛事ID")
	}
	if count <= 0 || count > 200 {
		return 0, fmt.Errorf("资格赛场次数需在1-200之间: %d", count)
	}
	created := 0
	for i := 1; i <= count; i++ {
		m := &model.Match{
			CompetitionID: competitionID,
			Label:         fmt.Sprintf("Q%d", i),
			Level:         model.LevelQualification,
		}
		if err := s.matchRepo.Upsert(ctx, m); err != nil {
			s.logger.WithError(err).WithField("label", m.Label).Warn("生成资格赛场次失败")
			continue
		}
		created++
	}
	s.logger.Infof("资格赛场次生成完成: %d场", created)
	return created, nil
}

// 标准淘汰赛阶梯：8联队四分之一决赛 + 半决赛 + 决赛，每组 BO3
var playoffLadder = []string{
	"QF1-1", "QF1-2", "QF1-3",
	"QF2-1", "QF2-2", "QF2-3",
	"QF3-1", "QF3-2", "QF3-3",
	"QF4-1", "QF4-2", "QF4-3",
	"SF1-1", "SF1-2", "SF1-3",
	"SF2-1", "SF2-2", "SF2-3",
	"F1-1", "F1-2", "F1-3",
}

// GeneratePlayoffMatches 快速生成标准淘汰赛阶梯
func (s *ScheduleService) GeneratePlayoffMatches(ctx context.Context, competitionID string) (int, error) {
	if competitionID == "" {
		return 0, fmt.Errorf("缺少赛事ID")
	}
	created := 0
	for _, label := range playoffLadder {
		m := &model.Match{
			CompetitionID: competitionID,
			Label:         label,
			Level:         model.LevelPlayoff,
		}
		if err := s.matchRepo.Upsert(ctx, m); err != nil {
			s.logger.WithError(err).WithField("label", label).Warn("生成淘汰赛场次失败")
			continue
		}
		created++
	}
	s.logger.Infof("淘汰赛场次生成完成: %d场", created)
	return created, nil
}

// BulkImportLabels 按行批量导入场次号，空行跳过，同场次走 upsert 合并
func (s *ScheduleService) BulkImportLabels(ctx context.Context, competitionID string, raw string, level model.MatchLevel) (int, error) {
	if competitionID == "" {
		return 0, fmt.Errorf("缺少赛事ID")
	}
	if level == "" {
		level = model.LevelQualification
	}
	imported := 0
	for _, line := range strings.Split(raw, "\n") {
		label := strings.TrimSpace(line)
		if label == "" {
			continue
		}
		m := &model.Match{
			CompetitionID: competitionID,
			Label:         label,
			Level:         level,
		}
		if err := s.matchRepo.Upsert(ctx, m); err != nil {
			s.logger.WithError(err).WithField("label", label).Warn("批量导入场次失败")
			continue
		}
		imported++
	}
	s.logger.Infof("批量导入场次完成: %d场", imported)
	return imported, nil
}
