package repository

import (
	"context"
	"errors"

	"ScoutSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 数据变更后通过 pg_notify 广播，监听方据此刷新统计缓存
const notifyChannel = "scouting_changes"

// ReportRepository 观察记录仓储
type ReportRepository interface {
	Create(ctx context.Context, report *model.ScoutingReport) error
	Update(ctx context.Context, report *model.ScoutingReport) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.ScoutingReport, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]*model.ScoutingReport, error)
	ListByTeam(ctx context.Context, competitionID string, teamNumber int) ([]*model.ScoutingReport, error)
	ListAll(ctx context.Context) ([]*model.ScoutingReport, error)
	// FindDuplicate 查同一赛事里 同场次+同队 的既有记录，没有则返回 nil
	FindDuplicate(ctx context.Context, competitionID string, ref model.MatchRef, teamNumber int) (*model.ScoutingReport, error)
	UpdateMatchRef(ctx context.Context, id string, ref model.MatchRef) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) notify(tx *gorm.DB, competitionID string) {
	// 通知失败不影响写入本身
	tx.Exec("SELECT pg_notify(?, ?)", notifyChannel, competitionID)
}

func (r *reportRepository) Create(ctx context.Context, report *model.ScoutingReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		r.notify(tx, report.CompetitionID)
		return nil
	})
}

func (r *reportRepository) Update(ctx context.Context, report *model.ScoutingReport) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(report).Error; err != nil {
			return err
		}
		r.notify(tx, report.CompetitionID)
		return nil
	})
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report model.ScoutingReport
		if err := tx.Where("id = ?", id).First(&report).Error; err != nil {
			return err
		}
		if err := tx.Delete(&report).Error; err != nil {
			return err
		}
		r.notify(tx, report.CompetitionID)
		return nil
	})
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*model.ScoutingReport, error) {
	var report model.ScoutingReport
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListByCompetition(ctx context.Context, competitionID string) ([]*model.ScoutingReport, error) {
	var list []*model.ScoutingReport
	if err := r.db.WithContext(ctx).
		Where("competition_id = ?", competitionID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reportRepository) ListByTeam(ctx context.Context, competitionID string, teamNumber int) ([]*model.ScoutingReport, error) {
	var list []*model.ScoutingReport
	if err := r.db.WithContext(ctx).
		Where("competition_id = ? AND team_number = ?", competitionID, teamNumber).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reportRepository) ListAll(ctx context.Context) ([]*model.ScoutingReport, error) {
	var list []*model.ScoutingReport
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reportRepository) FindDuplicate(ctx context.Context, competitionID string, ref model.MatchRef, teamNumber int) (*model.ScoutingReport, error) {
	var report model.ScoutingReport
	err := r.db.WithContext(ctx).
		Where("competition_id = ? AND match_ref = ? AND team_number = ?", competitionID, string(ref), teamNumber).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) UpdateMatchRef(ctx context.Context, id string, ref model.MatchRef) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report model.ScoutingReport
		if err := tx.Where("id = ?", id).First(&report).Error; err != nil {
			return err
		}
		if err := tx.Model(&report).Update("match_ref", string(ref)).Error; err != nil {
			return err
		}
		r.notify(tx, report.CompetitionID)
		return nil
	})
}
