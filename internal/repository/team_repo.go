package repository

import (
	"context"

	"ScoutSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamRepository 队伍仓储。team_number 是主键，重复写入走原子 upsert，
// 不做"先查再写"那套会和自己竞态的应用层逻辑
type TeamRepository interface {
	Upsert(ctx context.Context, t *model.Team) error
	UpsertBatch(ctx context.Context, teams []*model.Team) error
	List(ctx context.Context) ([]*model.Team, error)
	Delete(ctx context.Context, teamNumber int) error
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Upsert(ctx context.Context, t *model.Team) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(t).Error
}

func (r *teamRepository) UpsertBatch(ctx context.Context, teams []*model.Team) error {
	if len(teams) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&teams).Error
}

func (r *teamRepository) List(ctx context.Context) ([]*model.Team, error) {
	var list []*model.Team
	if err := r.db.WithContext(ctx).Order("team_number ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *teamRepository) Delete(ctx context.Context, teamNumber int) error {
	return r.db.WithContext(ctx).Where("team_number = ?", teamNumber).Delete(&model.Team{}).Error
}
