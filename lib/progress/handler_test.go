package progress

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"recruiting-backend/lib/assignment"
	gradelevel "recruiting-backend/lib/grade-level"
	"recruiting-backend/lib/review"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeProgressStore struct {
	mu   sync.Mutex
	seq  int
	recs map[string]*dbmodels.Progress
}

func (s *fakeProgressStore) Create(rec dbmodels.Progress) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	rec.ID = fmt.Sprintf("progress-%d", s.seq)
	stored := rec
	s.recs[rec.ID] = &stored
	return rec.ID, nil
}

func (s *fakeProgressStore) GetByID(id string) (*dbmodels.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (s *fakeProgressStore) GetByApplicationAndPipeline(applicationID, pipelineID string) (*dbmodels.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.recs {
		if rec.ApplicationID == applicationID && rec.PipelineID == pipelineID {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeProgressStore) Update(id string, updMap map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return models.ErrProgressNotFound
	}
	if v, ok := updMap["state"]; ok {
		rec.State = v.(models.ProgressState)
	}
	if v, ok := updMap["stage_index"]; ok {
		rec.StageIndex = v.(int)
	}
	return nil
}

type fakeReviewStore struct {
	mu   sync.Mutex
	seq  int
	recs map[string]*dbmodels.Review
}

func (s *fakeReviewStore) Create(rec dbmodels.Review) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	rec.ID = fmt.Sprintf("review-%d", s.seq)
	stored := rec
	s.recs[rec.ID] = &stored
	return rec.ID, nil
}

func (s *fakeReviewStore) GetByID(id string) (*dbmodels.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (s *fakeReviewStore) ListByStageAndApplication(stageID, applicationID string) ([]dbmodels.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []dbmodels.Review{}
	for _, rec := range s.recs {
		if rec.StageID == stageID && rec.ApplicationID == applicationID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (s *fakeReviewStore) ListByApplication(applicationID string) ([]dbmodels.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []dbmodels.Review{}
	for _, rec := range s.recs {
		if rec.ApplicationID == applicationID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (s *fakeReviewStore) CountByReviewerAndStage(reviewerEmail, stageID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, rec := range s.recs {
		if rec.ReviewerEmail == reviewerEmail && rec.StageID == stageID {
			count++
		}
	}
	return count, nil
}

func (s *fakeReviewStore) SetReviewer(id, reviewerEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return models.ErrReviewNotFound
	}
	rec.ReviewerEmail = reviewerEmail
	return nil
}

func (s *fakeReviewStore) UpdateFields(id string, values dbmodels.ReviewFieldValues) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return models.ErrReviewNotFound
	}
	rec.Fields = values
	return nil
}

type fakeApplicantStore struct {
	mu   sync.Mutex
	seq  int
	recs map[string]*dbmodels.Application
}

func (s *fakeApplicantStore) Create(rec dbmodels.Application) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	rec.ID = fmt.Sprintf("app-%d", s.seq)
	stored := rec
	s.recs[rec.ID] = &stored
	return rec.ID, nil
}

func (s *fakeApplicantStore) GetByID(id string) (*dbmodels.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (s *fakeApplicantStore) List(filter dbmodels.ApplicationFilter) ([]dbmodels.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []dbmodels.Application{}
	for _, rec := range s.recs {
		list = append(list, *rec)
	}
	return list, nil
}

func (s *fakeApplicantStore) AddBlockedReviewer(id, reviewerEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return models.ErrApplicationNotFound
	}
	if !rec.IsReviewerBlocked(reviewerEmail) {
		rec.BlockedReviewers = append(rec.BlockedReviewers, reviewerEmail)
	}
	return nil
}

type fakeReviewerStore struct {
	recs []dbmodels.Reviewer
}

func (s *fakeReviewerStore) Create(rec dbmodels.Reviewer) (string, error) {
	rec.ID = fmt.Sprintf("reviewer-%d", len(s.recs)+1)
	s.recs = append(s.recs, rec)
	return rec.ID, nil
}

func (s *fakeReviewerStore) GetByEmail(email string) (*dbmodels.Reviewer, error) {
	for _, rec := range s.recs {
		if rec.Email == email {
			copied := rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeReviewerStore) ListByStage(stageID string) ([]dbmodels.Reviewer, error) {
	list := []dbmodels.Reviewer{}
	for _, rec := range s.recs {
		if !rec.IsActive {
			continue
		}
		for _, assigned := range rec.AssignedStageIDs {
			if assigned == stageID {
				list = append(list, rec)
				break
			}
		}
	}
	return list, nil
}

type fakePipelineStore struct {
	pipelines map[string]dbmodels.Pipeline
	stages    []dbmodels.Stage
}

func (s *fakePipelineStore) GetPipelineByID(id string) (*dbmodels.Pipeline, error) {
	rec, ok := s.pipelines[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *fakePipelineStore) GetStageByID(id string) (*dbmodels.Stage, error) {
	for _, rec := range s.stages {
		if rec.ID == id {
			copied := rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakePipelineStore) GetStageByPipelineAndIndex(pipelineID string, index int) (*dbmodels.Stage, error) {
	for _, rec := range s.stages {
		if rec.PipelineID == pipelineID && rec.StageOrder == index {
			copied := rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakePipelineStore) ListStages(pipelineID string) ([]dbmodels.Stage, error) {
	list := []dbmodels.Stage{}
	for _, rec := range s.stages {
		if rec.PipelineID == pipelineID {
			list = append(list, rec)
		}
	}
	return list, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	fail bool
	sent []string
}

func (n *fakeNotifier) SendEMail(from, to, message, subject string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return fmt.Errorf("smtp недоступен")
	}
	n.sent = append(n.sent, to)
	return nil
}

type progressFixture struct {
	progresses *fakeProgressStore
	reviews    *fakeReviewStore
	applicants *fakeApplicantStore
	reviewers  *fakeReviewerStore
	pipelines  *fakePipelineStore
	notifier   *fakeNotifier
}

// newProgressFixture собирает воронку «Разработчик» из трёх этапов
// (2, 1 и 1 проверка) с двумя проверяющими на каждом этапе.
func newProgressFixture() (*progressFixture, Provider) {
	f := &progressFixture{
		progresses: &fakeProgressStore{recs: map[string]*dbmodels.Progress{}},
		reviews:    &fakeReviewStore{recs: map[string]*dbmodels.Review{}},
		applicants: &fakeApplicantStore{recs: map[string]*dbmodels.Application{}},
		reviewers:  &fakeReviewerStore{},
		pipelines:  &fakePipelineStore{pipelines: map[string]dbmodels.Pipeline{}},
		notifier:   &fakeNotifier{},
	}
	f.pipelines.pipelines["dev"] = dbmodels.Pipeline{
		BaseModel: dbmodels.BaseModel{ID: "dev"},
		Name:      "Разработчик",
	}
	f.pipelines.stages = []dbmodels.Stage{
		{
			BaseModel:   dbmodels.BaseModel{ID: "stage-resume"},
			PipelineID:  "dev",
			StageOrder:  0,
			Name:        "Проверка резюме",
			StageType:   models.StageTypeResumeReview,
			ReviewCount: 2,
			AutoAssign:  true,
			Fields: dbmodels.StageFieldList{
				{Name: "resume_score", Type: models.FieldTypeNumber},
				{Name: "comments", Type: models.FieldTypeString},
			},
		},
		{
			BaseModel:   dbmodels.BaseModel{ID: "stage-screen"},
			PipelineID:  "dev",
			StageOrder:  1,
			Name:        "Телефонный скрининг",
			StageType:   models.StageTypePhoneScreen,
			ReviewCount: 1,
			AutoAssign:  true,
			Fields: dbmodels.StageFieldList{
				{Name: "communication", Type: models.FieldTypeNumber},
			},
		},
		{
			BaseModel:   dbmodels.BaseModel{ID: "stage-interview"},
			PipelineID:  "dev",
			StageOrder:  2,
			Name:        "Техническое интервью",
			StageType:   models.StageTypeTechInterview,
			ReviewCount: 1,
			AutoAssign:  true,
			Fields: dbmodels.StageFieldList{
				{Name: "problem_solving", Type: models.FieldTypeNumber},
			},
		},
	}
	allStages := []string{"stage-resume", "stage-screen", "stage-interview"}
	for _, email := range []string{"a@team.dev", "b@team.dev"} {
		_, _ = f.reviewers.Create(dbmodels.Reviewer{
			Email:            email,
			IsActive:         true,
			AssignedStageIDs: allStages,
		})
	}

	reviewHandler := review.NewInstance(f.reviews, f.pipelines)
	engine := assignment.NewInstance(
		f.reviews,
		f.applicants,
		f.reviewers,
		f.pipelines,
		f.notifier,
		assignment.Settings{},
		rand.New(rand.NewSource(7)),
	)
	handler := NewInstance(
		f.progresses,
		f.reviews,
		f.applicants,
		f.pipelines,
		reviewHandler,
		engine,
		f.notifier,
		"hr@test",
	)
	return f, handler
}

func (f *progressFixture) addApplication() string {
	// кандидат третьего года, правило первокурсников не мешает
	start := gradelevel.CurrentQuarterCode(time.Now()) - 12
	id, _ := f.applicants.Create(dbmodels.Application{
		FirstName:    "Анна",
		LastName:     "Смирнова",
		Email:        "anna@example.com",
		StartQuarter: start,
		GradQuarter:  start + 16,
	})
	return id
}

// completeStageReviews заполняет все поля схемы у всех проверок этапа.
func (f *progressFixture) completeStageReviews(t *testing.T, stageID, applicationID string) {
	stage, err := f.pipelines.GetStageByID(stageID)
	require.Nil(t, err)
	require.NotNil(t, stage)
	reviews, err := f.reviews.ListByStageAndApplication(stageID, applicationID)
	require.Nil(t, err)
	require.NotEmpty(t, reviews)
	for _, rec := range reviews {
		values := dbmodels.ReviewFieldValues{}
		for _, name := range stage.Fields.Names() {
			values[name] = 5
		}
		require.NoError(t, f.reviews.UpdateFields(rec.ID, values))
	}
}

func TestProgressWalkthrough(t *testing.T) {
	f, handler := newProgressFixture()
	appID := f.addApplication()
	ctx := context.Background()

	view, err := handler.Start(appID, "dev")
	require.Nil(t, err)
	require.Equal(t, -1, view.StageIndex)
	require.Equal(t, models.ProgressStatePending, view.State)

	// первый этап: две проверки, обе с назначенным проверяющим
	view, err = handler.Advance(ctx, appID, "dev")
	require.Nil(t, err)
	require.Equal(t, 0, view.StageIndex)
	reviews, err := f.reviews.ListByStageAndApplication("stage-resume", appID)
	require.Nil(t, err)
	require.Len(t, reviews, 2)
	for _, rec := range reviews {
		require.NotEmpty(t, rec.ReviewerEmail)
	}

	f.completeStageReviews(t, "stage-resume", appID)
	view, err = handler.Advance(ctx, appID, "dev")
	require.Nil(t, err)
	require.Equal(t, 1, view.StageIndex)

	f.completeStageReviews(t, "stage-screen", appID)
	view, err = handler.Advance(ctx, appID, "dev")
	require.Nil(t, err)
	require.Equal(t, 2, view.StageIndex)

	// на техническом интервью создаётся сессия
	reviews, err = f.reviews.ListByStageAndApplication("stage-interview", appID)
	require.Nil(t, err)
	require.Len(t, reviews, 1)
	require.NotEmpty(t, reviews[0].InterviewSessionID)

	f.completeStageReviews(t, "stage-interview", appID)
	view, err = handler.Advance(ctx, appID, "dev")
	require.Nil(t, err)
	require.Equal(t, models.ProgressStateAccepted, view.State)
	require.Equal(t, 2, view.StageIndex)

	// принятие не создаёт новых проверок
	all, err := f.reviews.ListByApplication(appID)
	require.Nil(t, err)
	require.Len(t, all, 4)
}

func TestAdvanceGating(t *testing.T) {
	t.Run(`incomplete reviews block the transition`, func(t *testing.T) {
		f, handler := newProgressFixture()
		appID := f.addApplication()
		ctx := context.Background()

		_, err := handler.Start(appID, "dev")
		require.Nil(t, err)
		_, err = handler.Advance(ctx, appID, "dev")
		require.Nil(t, err)

		// завершаем только одну проверку из двух
		reviews, err := f.reviews.ListByStageAndApplication("stage-resume", appID)
		require.Nil(t, err)
		require.Len(t, reviews, 2)
		require.NoError(t, f.reviews.UpdateFields(reviews[0].ID, dbmodels.ReviewFieldValues{
			"resume_score": 4,
			"comments":     "норм",
		}))

		_, err = handler.Advance(ctx, appID, "dev")
		require.ErrorIs(t, err, models.ErrReviewsIncomplete)

		view, err := handler.Get(appID, "dev")
		require.Nil(t, err)
		require.Equal(t, 0, view.StageIndex)
		require.Equal(t, models.ProgressStatePending, view.State)
	})

	t.Run(`missing progress`, func(t *testing.T) {
		_, handler := newProgressFixture()
		_, err := handler.Advance(context.Background(), "ghost", "dev")
		require.ErrorIs(t, err, models.ErrProgressNotFound)
	})
}

func TestTerminalStates(t *testing.T) {
	f, handler := newProgressFixture()
	appID := f.addApplication()
	ctx := context.Background()

	_, err := handler.Start(appID, "dev")
	require.Nil(t, err)
	view, err := handler.Reject(ctx, appID, "dev")
	require.Nil(t, err)
	require.Equal(t, models.ProgressStateRejected, view.State)
	require.Equal(t, []string{"anna@example.com"}, f.notifier.sent)

	// из терминального состояния переходов нет, состояние не меняется
	_, err = handler.Advance(ctx, appID, "dev")
	require.ErrorIs(t, err, models.ErrAlreadyTerminal)
	_, err = handler.Reject(ctx, appID, "dev")
	require.ErrorIs(t, err, models.ErrAlreadyTerminal)

	view, err = handler.Get(appID, "dev")
	require.Nil(t, err)
	require.Equal(t, models.ProgressStateRejected, view.State)
	require.Len(t, f.notifier.sent, 1)
}

func TestRejectNotification(t *testing.T) {
	f, handler := newProgressFixture()
	f.notifier.fail = true
	appID := f.addApplication()
	ctx := context.Background()

	_, err := handler.Start(appID, "dev")
	require.Nil(t, err)
	_, err = handler.Reject(ctx, appID, "dev")
	require.ErrorIs(t, err, models.ErrNotificationFailed)

	// без уведомления отказ не фиксируется
	view, err := handler.Get(appID, "dev")
	require.Nil(t, err)
	require.Equal(t, models.ProgressStatePending, view.State)
}

func TestStart(t *testing.T) {
	t.Run(`one progress per application and pipeline`, func(t *testing.T) {
		f, handler := newProgressFixture()
		appID := f.addApplication()
		first, err := handler.Start(appID, "dev")
		require.Nil(t, err)
		second, err := handler.Start(appID, "dev")
		require.Nil(t, err)
		require.Equal(t, first.ID, second.ID)
		require.Len(t, f.progresses.recs, 1)
	})

	t.Run(`unknown pipeline`, func(t *testing.T) {
		f, handler := newProgressFixture()
		appID := f.addApplication()
		_, err := handler.Start(appID, "ghost")
		require.ErrorIs(t, err, models.ErrPipelineNotFound)
	})

	t.Run(`get before start`, func(t *testing.T) {
		f, handler := newProgressFixture()
		appID := f.addApplication()
		_, err := handler.Get(appID, "dev")
		require.ErrorIs(t, err, models.ErrProgressNotFound)
	})
}

func TestBulk(t *testing.T) {
	t.Run(`failures are isolated per application`, func(t *testing.T) {
		f, handler := newProgressFixture()
		appID := f.addApplication()
		_, err := handler.Start(appID, "dev")
		require.Nil(t, err)

		results := handler.BulkAdvance(context.Background(), []string{appID, "ghost"}, "dev")
		require.Len(t, results, 2)
		require.Equal(t, appID, results[0].ApplicationID)
		require.True(t, results[0].Ok)
		require.Equal(t, "ghost", results[1].ApplicationID)
		require.False(t, results[1].Ok)
		require.NotEmpty(t, results[1].Message)

		view, err := handler.Get(appID, "dev")
		require.Nil(t, err)
		require.Equal(t, 0, view.StageIndex)
	})

	t.Run(`cancelled context stops the batch`, func(t *testing.T) {
		f, handler := newProgressFixture()
		appID := f.addApplication()
		_, err := handler.Start(appID, "dev")
		require.Nil(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		results := handler.BulkReject(ctx, []string{appID}, "dev")
		require.Len(t, results, 1)
		require.False(t, results[0].Ok)
		require.Equal(t, "операция прервана", results[0].Message)

		view, err := handler.Get(appID, "dev")
		require.Nil(t, err)
		require.Equal(t, models.ProgressStatePending, view.State)
	})
}

func TestAdvanceWithoutReviewers(t *testing.T) {
	f, handler := newProgressFixture()
	f.reviewers.recs = nil
	appID := f.addApplication()
	ctx := context.Background()

	_, err := handler.Start(appID, "dev")
	require.Nil(t, err)
	// автоподбор падает, но переход на этап состоялся
	view, err := handler.Advance(ctx, appID, "dev")
	require.Nil(t, err)
	require.Equal(t, 0, view.StageIndex)

	reviews, err := f.reviews.ListByStageAndApplication("stage-resume", appID)
	require.Nil(t, err)
	require.Len(t, reviews, 2)
	for _, rec := range reviews {
		require.Empty(t, rec.ReviewerEmail)
	}
}
