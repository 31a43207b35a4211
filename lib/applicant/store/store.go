package applicantstore

import (
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	GetByID(id string) (*dbmodels.Application, error)
	List(filter dbmodels.ApplicationFilter) (list []dbmodels.Application, err error)
	AddBlockedReviewer(id, reviewerEmail string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(&dbmodels.Application{}).
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

func (i impl) List(filter dbmodels.ApplicationFilter) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	tx := i.db.Model(&dbmodels.Application{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("first_name ilike ? or last_name ilike ? or email ilike ?", like, like, like)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// AddBlockedReviewer дописывает проверяющего в блок-лист заявки.
// Список только растёт, удаления из него нет.
func (i impl) AddBlockedReviewer(id, reviewerEmail string) error {
	rec, err := i.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrApplicationNotFound
	}
	if rec.IsReviewerBlocked(reviewerEmail) {
		return nil
	}
	blocked := append(rec.BlockedReviewers, reviewerEmail)
	return i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Update("blocked_reviewers", pq.StringArray(blocked)).
		Error
}
