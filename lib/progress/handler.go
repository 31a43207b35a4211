package progress

import (
	"context"
	"fmt"
	"sync"

	"recruiting-backend/config"
	"recruiting-backend/db"
	applicantstore "recruiting-backend/lib/applicant/store"
	"recruiting-backend/lib/assignment"
	pipelinestore "recruiting-backend/lib/pipeline/store"
	progressstore "recruiting-backend/lib/progress/store"
	"recruiting-backend/lib/review"
	reviewstore "recruiting-backend/lib/review/store"
	"recruiting-backend/lib/smtp"
	"recruiting-backend/lib/utils/helpers"
	"recruiting-backend/models"
	progressapimodels "recruiting-backend/models/api/progress"
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Start заводит прогресс заявки в воронке (до первого этапа).
	Start(applicationID, pipelineID string) (progressapimodels.ProgressView, error)
	Get(applicationID, pipelineID string) (progressapimodels.ProgressView, error)
	// Advance переводит заявку на следующий этап. Переход закрыт, пока
	// на текущем этапе есть незавершённые проверки.
	Advance(ctx context.Context, applicationID, pipelineID string) (progressapimodels.ProgressView, error)
	// Reject отклоняет заявку. Состояние меняется только после успешной
	// отправки уведомления кандидату.
	Reject(ctx context.Context, applicationID, pipelineID string) (progressapimodels.ProgressView, error)
	BulkAdvance(ctx context.Context, applicationIDs []string, pipelineID string) []progressapimodels.BulkResult
	BulkReject(ctx context.Context, applicationIDs []string, pipelineID string) []progressapimodels.BulkResult
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          progressstore.NewInstance(db.DB),
		reviewStore:    reviewstore.NewInstance(db.DB),
		applicantStore: applicantstore.NewInstance(db.DB),
		pipelineStore:  pipelinestore.NewInstance(db.DB),
		reviewHandler:  review.Instance,
		engine:         assignment.Instance,
		notifier:       smtp.Instance,
		emailFrom:      config.Conf.Smtp.EmailFrom,
	}
}

func NewInstance(
	store progressstore.Provider,
	reviewStore reviewstore.Provider,
	applicantStore applicantstore.Provider,
	pipelineStore pipelinestore.Provider,
	reviewHandler review.Provider,
	engine assignment.Provider,
	notifier smtp.Provider,
	emailFrom string,
) Provider {
	return impl{
		store:          store,
		reviewStore:    reviewStore,
		applicantStore: applicantStore,
		pipelineStore:  pipelineStore,
		reviewHandler:  reviewHandler,
		engine:         engine,
		notifier:       notifier,
		emailFrom:      emailFrom,
	}
}

type impl struct {
	store          progressstore.Provider
	reviewStore    reviewstore.Provider
	applicantStore applicantstore.Provider
	pipelineStore  pipelinestore.Provider
	reviewHandler  review.Provider
	engine         assignment.Provider
	notifier       smtp.Provider
	emailFrom      string
}

func (i impl) Start(applicationID, pipelineID string) (progressapimodels.ProgressView, error) {
	pipeline, err := i.pipelineStore.GetPipelineByID(pipelineID)
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	if pipeline == nil {
		return progressapimodels.ProgressView{}, models.ErrPipelineNotFound
	}
	// на пару (заявка, воронка) допустима одна запись прогресса
	existing, err := i.store.GetByApplicationAndPipeline(applicationID, pipelineID)
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	if existing != nil {
		return progressapimodels.Convert(*existing), nil
	}
	rec := dbmodels.Progress{
		ApplicationID: applicationID,
		PipelineID:    pipelineID,
		StageIndex:    -1,
		State:         models.ProgressStatePending,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	created, err := i.store.GetByID(id)
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	return progressapimodels.Convert(*created), nil
}

func (i impl) Get(applicationID, pipelineID string) (progressapimodels.ProgressView, error) {
	rec, err := i.store.GetByApplicationAndPipeline(applicationID, pipelineID)
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	if rec == nil {
		return progressapimodels.ProgressView{}, models.ErrProgressNotFound
	}
	return progressapimodels.Convert(*rec), nil
}

func (i impl) Advance(ctx context.Context, applicationID, pipelineID string) (progressapimodels.ProgressView, error) {
	rec, err := i.store.GetByApplicationAndPipeline(applicationID, pipelineID)
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	if rec == nil {
		return progressapimodels.ProgressView{}, models.ErrProgressNotFound
	}
	if allowed, reason := rec.IsAllowTransition(); !allowed {
		return progressapimodels.ProgressView{}, errors.Wrap(models.ErrAlreadyTerminal, reason.Error())
	}
	if rec.StageIndex >= 0 {
		err = i.checkStageCompleted(*rec)
		if err != nil {
			return progressapimodels.ProgressView{}, err
		}
	}

	nextIndex := rec.StageIndex + 1
	nextStage, err := i.pipelineStore.GetStageByPipelineAndIndex(pipelineID, nextIndex)
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	if nextStage == nil {
		// этапы закончились - кандидат прошёл воронку
		err = i.store.Update(rec.ID, map[string]interface{}{
			"state": models.ProgressStateAccepted,
		})
		if err != nil {
			return progressapimodels.ProgressView{}, err
		}
		return i.Get(applicationID, pipelineID)
	}

	err = i.store.Update(rec.ID, map[string]interface{}{
		"stage_index": nextIndex,
	})
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	// проверки создаются и назначаются строго по одной: параллельный
	// автоподбор на одном этапе ломает балансировку нагрузки
	for slot := 0; slot < nextStage.ReviewCount; slot++ {
		view, err := i.reviewHandler.CreateForStage(nextStage.ID, applicationID)
		if err != nil {
			return progressapimodels.ProgressView{}, err
		}
		if nextStage.AutoAssign {
			_, err = i.engine.Assign(ctx, view.ID, "")
			if err != nil {
				// проверка остаётся без назначения, переход не откатываем
				log.WithError(err).
					WithField("review_id", view.ID).
					Error("не удалось автоматически назначить проверяющего")
			}
		}
	}
	return i.Get(applicationID, pipelineID)
}

func (i impl) Reject(ctx context.Context, applicationID, pipelineID string) (progressapimodels.ProgressView, error) {
	rec, err := i.store.GetByApplicationAndPipeline(applicationID, pipelineID)
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	if rec == nil {
		return progressapimodels.ProgressView{}, models.ErrProgressNotFound
	}
	if allowed, reason := rec.IsAllowTransition(); !allowed {
		return progressapimodels.ProgressView{}, errors.Wrap(models.ErrAlreadyTerminal, reason.Error())
	}
	applicant, err := i.applicantStore.GetByID(applicationID)
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	if applicant == nil {
		return progressapimodels.ProgressView{}, models.ErrApplicationNotFound
	}
	pipeline, err := i.pipelineStore.GetPipelineByID(pipelineID)
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	if pipeline == nil {
		return progressapimodels.ProgressView{}, models.ErrPipelineNotFound
	}
	// отказ считается состоявшимся только после уведомления кандидата,
	// молчаливых отказов нет
	message := fmt.Sprintf("Здравствуйте, %s!\n\nК сожалению, мы не готовы продолжить с вами процесс отбора по направлению «%s». Спасибо за уделённое время.", applicant.GetFullName(), pipeline.Name)
	err = i.notifier.SendEMail(i.emailFrom, applicant.Email, message, "Результат отбора")
	if err != nil {
		return progressapimodels.ProgressView{}, errors.Wrap(models.ErrNotificationFailed, err.Error())
	}
	err = i.store.Update(rec.ID, map[string]interface{}{
		"state": models.ProgressStateRejected,
	})
	if err != nil {
		return progressapimodels.ProgressView{}, err
	}
	return i.Get(applicationID, pipelineID)
}

func (i impl) BulkAdvance(ctx context.Context, applicationIDs []string, pipelineID string) []progressapimodels.BulkResult {
	return i.bulkApply(ctx, applicationIDs, func(applicationID string) error {
		_, err := i.Advance(ctx, applicationID, pipelineID)
		return err
	})
}

func (i impl) BulkReject(ctx context.Context, applicationIDs []string, pipelineID string) []progressapimodels.BulkResult {
	return i.bulkApply(ctx, applicationIDs, func(applicationID string) error {
		_, err := i.Reject(ctx, applicationID, pipelineID)
		return err
	})
}

// bulkApply обрабатывает заявки параллельно и независимо: ошибка одной
// заявки не влияет на остальные. Последовательность соблюдается только
// внутри одной заявки.
func (i impl) bulkApply(ctx context.Context, applicationIDs []string, op func(applicationID string) error) []progressapimodels.BulkResult {
	results := make([]progressapimodels.BulkResult, len(applicationIDs))
	wg := sync.WaitGroup{}
	for idx, applicationID := range applicationIDs {
		if helpers.IsContextDone(ctx) {
			results[idx] = progressapimodels.BulkResult{
				ApplicationID: applicationID,
				Message:       "операция прервана",
			}
			continue
		}
		wg.Add(1)
		go func(idx int, applicationID string) {
			defer wg.Done()
			err := op(applicationID)
			if err != nil {
				results[idx] = progressapimodels.BulkResult{
					ApplicationID: applicationID,
					Message:       err.Error(),
				}
				return
			}
			results[idx] = progressapimodels.BulkResult{
				ApplicationID: applicationID,
				Ok:            true,
			}
		}(idx, applicationID)
	}
	wg.Wait()
	return results
}

func (i impl) checkStageCompleted(rec dbmodels.Progress) error {
	stage, err := i.pipelineStore.GetStageByPipelineAndIndex(rec.PipelineID, rec.StageIndex)
	if err != nil {
		return err
	}
	if stage == nil {
		return errors.Errorf("нарушение целостности: этап %d воронки %s отсутствует", rec.StageIndex, rec.PipelineID)
	}
	reviews, err := i.reviewStore.ListByStageAndApplication(stage.ID, rec.ApplicationID)
	if err != nil {
		return err
	}
	for _, reviewRec := range reviews {
		if review.Status(reviewRec, *stage) != models.ReviewStatusCompleted {
			return models.ErrReviewsIncomplete
		}
	}
	return nil
}
