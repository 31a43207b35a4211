package reviewstore

import (
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Review) (id string, err error)
	GetByID(id string) (*dbmodels.Review, error)
	ListByStageAndApplication(stageID, applicationID string) (list []dbmodels.Review, err error)
	ListByApplication(applicationID string) (list []dbmodels.Review, err error)
	CountByReviewerAndStage(reviewerEmail, stageID string) (int64, error)
	SetReviewer(id, reviewerEmail string) error
	UpdateFields(id string, values dbmodels.ReviewFieldValues) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Review) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Review, error) {
	rec := dbmodels.Review{}
	err := i.db.
		Model(&dbmodels.Review{}).
		Where("id = ?", id).
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

func (i impl) ListByStageAndApplication(stageID, applicationID string) (list []dbmodels.Review, err error) {
	list = []dbmodels.Review{}
	err = i.db.
		Where("stage_id = ?", stageID).
		Where("application_id = ?", applicationID).
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

func (i impl) ListByApplication(applicationID string) (list []dbmodels.Review, err error) {
	list = []dbmodels.Review{}
	err = i.db.
		Where("application_id = ?", applicationID).
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

// CountByReviewerAndStage - текущая нагрузка проверяющего на этапе,
// по всем заявкам.
func (i impl) CountByReviewerAndStage(reviewerEmail, stageID string) (int64, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Review{}).
		Where("reviewer_email = ?", reviewerEmail).
		Where("stage_id = ?", stageID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SetReviewer назначает проверяющего; пустая строка снимает назначение.
func (i impl) SetReviewer(id, reviewerEmail string) error {
	return i.db.
		Model(&dbmodels.Review{}).
		Where("id = ?", id).
		Update("reviewer_email", reviewerEmail).
		Error
}

func (i impl) UpdateFields(id string, values dbmodels.ReviewFieldValues) error {
	return i.db.
		Model(&dbmodels.Review{}).
		Where("id = ?", id).
		Update("fields", values).
		Error
}
