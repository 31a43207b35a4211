package reviewerstore

import (
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Reviewer) (id string, err error)
	GetByEmail(email string) (*dbmodels.Reviewer, error)
	ListByStage(stageID string) (list []dbmodels.Reviewer, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Reviewer) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByEmail(email string) (*dbmodels.Reviewer, error) {
	rec := dbmodels.Reviewer{}
	err := i.db.
		Model(&dbmodels.Reviewer{}).
		Where("email = ?", email).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListByStage - активные проверяющие, назначенные на этап.
func (i impl) ListByStage(stageID string) (list []dbmodels.Reviewer, err error) {
	list = []dbmodels.Reviewer{}
	err = i.db.
		Where("is_active = ?", true).
		Where("? = any(assigned_stage_ids)", stageID).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
