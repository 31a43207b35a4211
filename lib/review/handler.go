package review

import (
	"recruiting-backend/db"
	pipelinestore "recruiting-backend/lib/pipeline/store"
	reviewstore "recruiting-backend/lib/review/store"
	"recruiting-backend/models"
	reviewapimodels "recruiting-backend/models/api/review"
	dbmodels "recruiting-backend/models/db"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Provider interface {
	CreateForStage(stageID, applicationID string) (reviewapimodels.ReviewView, error)
	GetByID(id string) (reviewapimodels.ReviewView, error)
	StatusByID(id string) (models.ReviewStatus, error)
	SaveFields(id string, values dbmodels.ReviewFieldValues) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         reviewstore.NewInstance(db.DB),
		pipelineStore: pipelinestore.NewInstance(db.DB),
	}
}

func NewInstance(store reviewstore.Provider, pipelineStore pipelinestore.Provider) Provider {
	return impl{
		store:         store,
		pipelineStore: pipelineStore,
	}
}

type impl struct {
	store         reviewstore.Provider
	pipelineStore pipelinestore.Provider
}

// Status выводит статус проверки из заполненных полей и схемы этапа.
// Лишние поля, которых нет в схеме, на статус не влияют.
func Status(rec dbmodels.Review, stage dbmodels.Stage) models.ReviewStatus {
	if len(rec.Fields) == 0 {
		return models.ReviewStatusNotStarted
	}
	for _, name := range stage.Fields.Names() {
		if _, ok := rec.Fields[name]; !ok {
			return models.ReviewStatusInProgress
		}
	}
	return models.ReviewStatusCompleted
}

func (i impl) CreateForStage(stageID, applicationID string) (reviewapimodels.ReviewView, error) {
	stage, err := i.pipelineStore.GetStageByID(stageID)
	if err != nil {
		return reviewapimodels.ReviewView{}, err
	}
	if stage == nil {
		return reviewapimodels.ReviewView{}, models.ErrStageNotFound
	}
	rec := dbmodels.Review{
		StageID:       stageID,
		ApplicationID: applicationID,
		Fields:        dbmodels.ReviewFieldValues{},
	}
	if stage.StageType == models.StageTypeTechInterview {
		rec.InterviewSessionID = uuid.NewString()
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return reviewapimodels.ReviewView{}, err
	}
	created, err := i.store.GetByID(id)
	if err != nil {
		return reviewapimodels.ReviewView{}, err
	}
	return reviewapimodels.Convert(*created), nil
}

func (i impl) GetByID(id string) (reviewapimodels.ReviewView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return reviewapimodels.ReviewView{}, err
	}
	if rec == nil {
		return reviewapimodels.ReviewView{}, models.ErrReviewNotFound
	}
	return reviewapimodels.Convert(*rec), nil
}

func (i impl) StatusByID(id string) (models.ReviewStatus, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", models.ErrReviewNotFound
	}
	stage, err := i.pipelineStore.GetStageByID(rec.StageID)
	if err != nil {
		return "", err
	}
	if stage == nil {
		// проверка ссылается на несуществующий этап - нарушение
		// целостности данных, не бизнес-ошибка
		return "", errors.Errorf("нарушение целостности: этап %s для проверки %s отсутствует", rec.StageID, rec.ID)
	}
	return Status(*rec, *stage), nil
}

func (i impl) SaveFields(id string, values dbmodels.ReviewFieldValues) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrReviewNotFound
	}
	merged := dbmodels.ReviewFieldValues{}
	for name, value := range rec.Fields {
		merged[name] = value
	}
	for name, value := range values {
		merged[name] = value
	}
	return i.store.UpdateFields(id, merged)
}
