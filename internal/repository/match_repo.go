package repository

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"ScoutSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository 比赛仓储。(competition_id, label) 唯一，
// 重复创建合并进已存在行并返回其 canonical id
type MatchRepository interface {
	Upsert(ctx context.Context, m *model.Match) error
	ListByCompetition(ctx context.Context, competitionID string) ([]*model.Match, error)
	GetByID(ctx context.Context, id string) (*model.Match, error)
	// Delete 连带删除引用该比赛 canonical id 的观察记录
	Delete(ctx context.Context, id string) error
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Upsert(ctx context.Context, m *model.Match) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "competition_id"}, {Name: "label"}},
		DoUpdates: clause.AssignmentColumns(matchUpsertColumns(m)),
	}).Create(m).Error; err != nil {
		return err
	}
	// 冲突时拿回已存在行的 id（canonical id 以首条为准）
	var existing model.Match
	if err := r.db.WithContext(ctx).
		Where("competition_id = ? AND label = ?", m.CompetitionID, m.Label).
		First(&existing).Error; err != nil {
		return err
	}
	m.ID = existing.ID
	return nil
}

// ListByCompetition 按约定顺序返回：资格赛 → 淘汰赛（QF<SF<F）→ 练习赛，
// 同级内按场次号里的数字排，无数字的落到最后按字典序
func (r *matchRepository) ListByCompetition(ctx context.Context, competitionID string) ([]*model.Match, error) {
	var list []*model.Match
	if err := r.db.WithContext(ctx).
		Where("competition_id = ?", competitionID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	SortMatches(list)
	return list, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*model.Match, error) {
	var m model.Match
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_ref = ?", id).Delete(&model.ScoutingReport{}).Error; err != nil {
			return fmt.Errorf("删除观察记录失败: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&model.Match{}).Error; err != nil {
			return fmt.Errorf("删除比赛失败: %w", err)
		}
		return nil
	})
}

// matchUpsertColumns 冲突时要改写的列。不带队伍列表的重复创建
// （手工补录、快速生成）不得把已有的 team_numbers 冲成 NULL
func matchUpsertColumns(m *model.Match) []string {
	cols := []string{"level"}
	if len(m.TeamNumbers) > 0 {
		cols = append(cols, "team_numbers")
	}
	return cols
}

var firstNumber = regexp.MustCompile(`\d+`)

// SortMatches 赛程展示顺序（稳定排序，原地）
func SortMatches(list []*model.Match) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		oa, ob := levelOrder(a.Level), levelOrder(b.Level)
		if oa != ob {
			return oa < ob
		}
		if a.Level == model.LevelPlayoff && b.Level == model.LevelPlayoff {
			ra, rb := playoffStageRank(a.Label), playoffStageRank(b.Label)
			if ra != rb {
				return ra < rb
			}
		}
		na, nb := extractNumber(a.Label), extractNumber(b.Label)
		if na != nb {
			return na < nb
		}
		return a.Label < b.Label
	})
}

func levelOrder(l model.MatchLevel) int {
	switch l {
	case model.LevelQualification:
		return 0
	case model.LevelPlayoff:
		return 1
	}
	return 2
}

// playoffStageRank 淘汰赛阶段排序：QF < SF < F，未知阶段排最前
func playoffStageRank(label string) int {
	up := strings.ToUpper(label)
	switch {
	case strings.HasPrefix(up, "QF"):
		return 1
	case strings.HasPrefix(up, "SF"):
		return 2
	case strings.HasPrefix(up, "F"):
		return 3
	}
	return 0
}

func extractNumber(label string) int {
	m := firstNumber.FindString(label)
	if m == "" {
		return int(^uint(0) >> 1) // 无数字的排最后
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
