// internal/repositories/itinerary_repo.go
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "tripsmith/internal/models/db_models"
)

type ItineraryRunRepository interface {
	SaveRun(ctx context.Context, run *dbm.ItineraryRun) error
	GetRunById(ctx context.Context, runId uuid.UUID) (*dbm.ItineraryRun, error)
	ListRunsBySession(ctx context.Context, sessionId string, page, pageSize int) ([]dbm.ItineraryRun, error)
}

type itineraryRunRepository struct {
	db *gorm.DB
}

func NewItineraryRunRepository(db *gorm.DB) ItineraryRunRepository {
	return &itineraryRunRepository{db: db}
}

func (r *itineraryRunRepository) SaveRun(ctx context.Context, run *dbm.ItineraryRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *itineraryRunRepository) GetRunById(ctx context.Context, runId uuid.UUID) (*dbm.ItineraryRun, error) {
	var run dbm.ItineraryRun
	err := r.db.WithContext(ctx).
		Where("id = ?", runId).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *itineraryRunRepository) ListRunsBySession(ctx context.Context, sessionId string, page, pageSize int) ([]dbm.ItineraryRun, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var runs []dbm.ItineraryRun
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
