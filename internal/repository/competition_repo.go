package repository

import (
	"context"
	"fmt"
	"strings"

	"ScoutSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompetitionRepository 赛事仓储
type CompetitionRepository interface {
	Upsert(ctx context.Context, c *model.Competition) error
	List(ctx context.Context) ([]*model.Competition, error)
	GetByID(ctx context.Context, id string) (*model.Competition, error)
	// Delete 级联删除：赛事本身 + 其比赛 + 其观察记录，单事务内完成
	Delete(ctx context.Context, id string) error
}

type competitionRepository struct {
	db *gorm.DB
}

func NewCompetitionRepository(db *gorm.DB) CompetitionRepository {
	return &competitionRepository{db: db}
}

// Upsert 按 event_key 幂等写入（导入重复执行不产生重复赛事）。
// 无 event_key 的手工赛事直接新建，列存 NULL 以免撞唯一索引
func (r *competitionRepository) Upsert(ctx context.Context, c *model.Competition) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	normalizeEventKey(c)
	if c.EventKey == nil {
		return r.db.WithContext(ctx).Create(c).Error
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "start_date", "end_date"}),
	}).Create(c).Error; err != nil {
		return err
	}
	// 冲突走更新分支时拿回已存在行的 id
	var existing model.Competition
	if err := r.db.WithContext(ctx).Where("event_key = ?", *c.EventKey).First(&existing).Error; err != nil {
		return err
	}
	c.ID = existing.ID
	return nil
}

// normalizeEventKey 把空白 event_key 归一化为 NULL。
// JSON 里传 "eventKey": "" 的手工赛事和不传是同一回事
func normalizeEventKey(c *model.Competition) {
	if c.EventKey != nil && strings.TrimSpace(*c.EventKey) == "" {
		c.EventKey = nil
	}
}

func (r *competitionRepository) List(ctx context.Context) ([]*model.Competition, error) {
	var list []*model.Competition
	if err := r.db.WithContext(ctx).Order("start_date ASC, created_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *competitionRepository) GetByID(ctx context.Context, id string) (*model.Competition, error) {
	var c model.Competition
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *competitionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("competition_id = ?", id).Delete(&model.ScoutingReport{}).Error; err != nil {
			return fmt.Errorf("删除观察记录失败: %w", err)
		}
		if err := tx.Where("competition_id = ?", id).Delete(&model.Match{}).Error; err != nil {
			return fmt.Errorf("删除比赛失败: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&model.Competition{}).Error; err != nil {
			return fmt.Errorf("删除赛事失败: %w", err)
		}
		return nil
	})
}
