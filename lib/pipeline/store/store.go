package pipelinestore

import (
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Provider - справочник воронок и этапов. Только чтение: данные
// заполняются при старте сервиса.
type Provider interface {
	GetPipelineByID(id string) (*dbmodels.Pipeline, error)
	GetStageByID(id string) (*dbmodels.Stage, error)
	GetStageByPipelineAndIndex(pipelineID string, index int) (*dbmodels.Stage, error)
	ListStages(pipelineID string) (list []dbmodels.Stage, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetPipelineByID(id string) (*dbmodels.Pipeline, error) {
	rec := dbmodels.Pipeline{}
	err := i.db.
		Model(&dbmodels.Pipeline{}).
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

func (i impl) GetStageByID(id string) (*dbmodels.Stage, error) {
	rec := dbmodels.Stage{}
	err := i.db.
		Model(&dbmodels.Stage{}).
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

func (i impl) GetStageByPipelineAndIndex(pipelineID string, index int) (*dbmodels.Stage, error) {
	rec := dbmodels.Stage{}
	err := i.db.
		Model(&dbmodels.Stage{}).
		Where("pipeline_id = ?", pipelineID).
		Where("stage_order = ?", index).
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

func (i impl) ListStages(pipelineID string) (list []dbmodels.Stage, err error) {
	list = []dbmodels.Stage{}
	err = i.db.
		Where("pipeline_id = ?", pipelineID).
		Order("stage_order").
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
