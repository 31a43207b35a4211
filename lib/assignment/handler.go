package assignment

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"recruiting-backend/config"
	"recruiting-backend/db"
	applicantstore "recruiting-backend/lib/applicant/store"
	gradelevel "recruiting-backend/lib/grade-level"
	pipelinestore "recruiting-backend/lib/pipeline/store"
	reviewstore "recruiting-backend/lib/review/store"
	reviewerstore "recruiting-backend/lib/reviewer/store"
	"recruiting-backend/lib/smtp"
	"recruiting-backend/lib/utils/lock"
	"recruiting-backend/models"
	reviewapimodels "recruiting-backend/models/api/review"
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Assign назначает проверяющего на проверку. Пустой email -
	// автоподбор по правилам балансировки.
	Assign(ctx context.Context, reviewID, explicitEmail string) (reviewapimodels.ReviewView, error)
	// Reassign вносит текущего проверяющего в блок-лист заявки и
	// подбирает нового.
	Reassign(ctx context.Context, reviewID string) (reviewapimodels.ReviewView, error)
}

var Instance Provider

const assignLockWait = 10 * time.Second

// Settings - параметры уведомлений о назначении. За blackout до дедлайна
// подачи письма о назначении не отправляются, чтобы не заливать почту.
type Settings struct {
	ApplyDeadline    time.Time
	NotifyBlackout   time.Duration
	ReviewLinkDomain string
	EmailFrom        string
}

func NewHandler() {
	settings := Settings{
		NotifyBlackout:   time.Duration(config.Conf.Recruitment.NotifyBlackoutHours) * time.Hour,
		ReviewLinkDomain: config.Conf.Recruitment.ReviewLinkDomain,
		EmailFrom:        config.Conf.Smtp.EmailFrom,
	}
	if config.Conf.Recruitment.ApplyDeadline != "" {
		deadline, err := time.Parse(time.RFC3339, config.Conf.Recruitment.ApplyDeadline)
		if err != nil {
			log.WithError(err).Warn("не удалось разобрать дедлайн подачи заявок, окно тишины отключено")
		} else {
			settings.ApplyDeadline = deadline
		}
	}
	Instance = NewInstance(
		reviewstore.NewInstance(db.DB),
		applicantstore.NewInstance(db.DB),
		reviewerstore.NewInstance(db.DB),
		pipelinestore.NewInstance(db.DB),
		smtp.Instance,
		settings,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
}

func NewInstance(
	store reviewstore.Provider,
	applicantStore applicantstore.Provider,
	reviewerStore reviewerstore.Provider,
	pipelineStore pipelinestore.Provider,
	notifier smtp.Provider,
	settings Settings,
	rnd *rand.Rand,
) Provider {
	return &impl{
		store:          store,
		applicantStore: applicantStore,
		reviewerStore:  reviewerStore,
		pipelineStore:  pipelineStore,
		notifier:       notifier,
		settings:       settings,
		rnd:            rnd,
	}
}

type impl struct {
	store          reviewstore.Provider
	applicantStore applicantstore.Provider
	reviewerStore  reviewerstore.Provider
	pipelineStore  pipelinestore.Provider
	notifier       smtp.Provider
	settings       Settings
	// rnd не потокобезопасен, а массовые операции запускают подбор из
	// разных горутин под разными ключами блокировки этапов
	rndMu sync.Mutex
	rnd   *rand.Rand
}

func (i *impl) Assign(ctx context.Context, reviewID, explicitEmail string) (reviewapimodels.ReviewView, error) {
	rec, err := i.store.GetByID(reviewID)
	if err != nil {
		return reviewapimodels.ReviewView{}, err
	}
	if rec == nil {
		return reviewapimodels.ReviewView{}, models.ErrReviewNotFound
	}
	stage, err := i.pipelineStore.GetStageByID(rec.StageID)
	if err != nil {
		return reviewapimodels.ReviewView{}, err
	}
	if stage == nil {
		return reviewapimodels.ReviewView{}, models.ErrStageNotFound
	}

	var reviewer *dbmodels.Reviewer
	if explicitEmail != "" {
		reviewer, err = i.reviewerStore.GetByEmail(explicitEmail)
		if err != nil {
			return reviewapimodels.ReviewView{}, err
		}
		if reviewer == nil {
			return reviewapimodels.ReviewView{}, models.ErrReviewerNotFound
		}
		err = i.store.SetReviewer(rec.ID, reviewer.Email)
		if err != nil {
			return reviewapimodels.ReviewView{}, err
		}
	} else {
		// подбор и запись назначения идут под блокировкой этапа:
		// чтение счётчиков нагрузки и фиксация результата не должны
		// чередоваться между параллельными назначениями
		var selectErr error
		locked, err := lock.WithDelay(ctx, "assign-stage:"+stage.ID, assignLockWait, func() error {
			reviewer, selectErr = i.autoSelect(*rec, *stage)
			if selectErr != nil {
				return nil
			}
			return i.store.SetReviewer(rec.ID, reviewer.Email)
		})
		if err != nil {
			return reviewapimodels.ReviewView{}, err
		}
		if !locked {
			return reviewapimodels.ReviewView{}, errors.New("не удалось получить блокировку назначения для этапа")
		}
		if selectErr != nil {
			return reviewapimodels.ReviewView{}, selectErr
		}
	}

	if stage.NotifyOnAssign {
		i.notifyAssigned(*reviewer, *stage, rec.ID)
	}

	updated, err := i.store.GetByID(rec.ID)
	if err != nil {
		return reviewapimodels.ReviewView{}, err
	}
	return reviewapimodels.Convert(*updated), nil
}

func (i *impl) Reassign(ctx context.Context, reviewID string) (reviewapimodels.ReviewView, error) {
	rec, err := i.store.GetByID(reviewID)
	if err != nil {
		return reviewapimodels.ReviewView{}, err
	}
	if rec == nil {
		return reviewapimodels.ReviewView{}, models.ErrReviewNotFound
	}
	applicant, err := i.applicantStore.GetByID(rec.ApplicationID)
	if err != nil {
		return reviewapimodels.ReviewView{}, err
	}
	if applicant == nil {
		return reviewapimodels.ReviewView{}, models.ErrApplicationNotFound
	}
	if rec.ReviewerEmail != "" {
		// блок-лист только растёт: кандидат больше никогда не попадёт
		// к этому проверяющему, ни на одном этапе
		err = i.applicantStore.AddBlockedReviewer(applicant.ID, rec.ReviewerEmail)
		if err != nil {
			return reviewapimodels.ReviewView{}, err
		}
	}
	err = i.store.SetReviewer(rec.ID, "")
	if err != nil {
		return reviewapimodels.ReviewView{}, err
	}
	return i.Assign(ctx, reviewID, "")
}

// autoSelect сужает пул кандидатов и выбирает наименее загруженного.
// Порядок фильтров фиксирован; фильтры шагов 2 и 3 пропускаются, если
// после них пул опустел бы - ручная настройка ростера не должна
// полностью блокировать назначение.
func (i *impl) autoSelect(rec dbmodels.Review, stage dbmodels.Stage) (*dbmodels.Reviewer, error) {
	pool, err := i.reviewerStore.ListByStage(stage.ID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, models.ErrNoReviewersConfigured
	}
	applicant, err := i.applicantStore.GetByID(rec.ApplicationID)
	if err != nil {
		return nil, err
	}
	if applicant == nil {
		return nil, models.ErrApplicationNotFound
	}

	// 1: блок-лист заявки, без отката
	filtered := make([]dbmodels.Reviewer, 0, len(pool))
	for _, candidate := range pool {
		if !applicant.IsReviewerBlocked(candidate.Email) {
			filtered = append(filtered, candidate)
		}
	}
	pool = filtered

	// 2: исключаем уже проверявших эту заявку на любом этапе
	existing, err := i.store.ListByApplication(rec.ApplicationID)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, other := range existing {
		if other.ReviewerEmail != "" {
			seen[other.ReviewerEmail] = true
		}
	}
	filtered = make([]dbmodels.Reviewer, 0, len(pool))
	for _, candidate := range pool {
		if !seen[candidate.Email] {
			filtered = append(filtered, candidate)
		}
	}
	if len(filtered) > 0 {
		pool = filtered
	}

	// 3: на скрининге и интервью первокурсники попадают только к
	// проверяющим с ограничением "только первокурсники", остальные -
	// только к проверяющим без него
	if stage.StageType.HasFirstYearRule() {
		level := gradelevel.Calculate(applicant.StartQuarter, applicant.GradQuarter, time.Now())
		isInterview := stage.StageType == models.StageTypeTechInterview
		filtered = make([]dbmodels.Reviewer, 0, len(pool))
		for _, candidate := range pool {
			if candidate.FirstYearsOnly(isInterview) == (level == 1) {
				filtered = append(filtered, candidate)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	if len(pool) == 0 {
		return nil, models.ErrNoAutoAssignCandidate
	}

	// наименее загруженный на этом этапе; нагрузка соло-интервьюера
	// считается вдвойне, ничья разрешается случайно
	var ties []dbmodels.Reviewer
	minCount := int64(-1)
	for _, candidate := range pool {
		count, err := i.store.CountByReviewerAndStage(candidate.Email, stage.ID)
		if err != nil {
			return nil, err
		}
		if candidate.IsSoloInterviewer {
			count *= 2
		}
		if minCount < 0 || count < minCount {
			minCount = count
			ties = []dbmodels.Reviewer{candidate}
		} else if count == minCount {
			ties = append(ties, candidate)
		}
	}
	i.rndMu.Lock()
	selected := ties[i.rnd.Intn(len(ties))]
	i.rndMu.Unlock()
	return &selected, nil
}

func (i *impl) notifyAssigned(reviewer dbmodels.Reviewer, stage dbmodels.Stage, reviewID string) {
	if i.inNotifyBlackout(time.Now()) {
		log.WithField("review_id", reviewID).Info("письмо о назначении не отправлено: окно тишины перед дедлайном")
		return
	}
	link := fmt.Sprintf("%s/reviews/%s", i.settings.ReviewLinkDomain, reviewID)
	message := fmt.Sprintf("Вам назначена проверка на этапе «%s».\nСсылка на анкету: %s", stage.Name, link)
	err := i.notifier.SendEMail(i.settings.EmailFrom, reviewer.Email, message, "Новая проверка")
	if err != nil {
		// назначение состоялось, неотправленное письмо его не отменяет
		log.WithError(err).WithField("review_id", reviewID).Error("ошибка отправки письма о назначении")
	}
}

func (i *impl) inNotifyBlackout(now time.Time) bool {
	if i.settings.ApplyDeadline.IsZero() {
		return false
	}
	return i.settings.ApplyDeadline.Sub(now) <= i.settings.NotifyBlackout
}
