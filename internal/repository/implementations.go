package repository

import (
	"github.com/urbanstyle/support-assistant/internal/models"
	"gorm.io/gorm"
)

// AskQueryRepositoryImpl implements models.AskQueryRepository on GORM.
type AskQueryRepositoryImpl struct {
	db *gorm.DB
}

func NewAskQueryRepository(db *gorm.DB) models.AskQueryRepository {
	return &AskQueryRepositoryImpl{db: db}
}

func (r *AskQueryRepositoryImpl) Create(query *models.AskQuery) error {
	return r.db.Create(query).Error
}

func (r *AskQueryRepositoryImpl) GetBySession(session string) ([]models.AskQuery, error) {
	var queries []models.AskQuery
	err := r.db.Where("user_session = ?", session).
		Order("asked_at DESC").
		Find(&queries).Error
	return queries, err
}

func (r *AskQueryRepositoryImpl) GetRecent(limit int) ([]models.AskQuery, error) {
	var queries []models.AskQuery
	err := r.db.Order("asked_at DESC").
		Limit(limit).
		Find(&queries).Error
	return queries, err
}

// RepositoryManager bundles the repositories behind one handle, the
// way the handlers consume them.
type RepositoryManager struct {
	AskQuery models.AskQueryRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	if db == nil {
		return nil
	}
	return &RepositoryManager{
		AskQuery: NewAskQueryRepository(db),
	}
}
