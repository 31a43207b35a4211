package review

import (
	"testing"

	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"

	"github.com/stretchr/testify/require"
)

func testStage() dbmodels.Stage {
	return dbmodels.Stage{
		Name:      "Проверка резюме",
		StageType: models.StageTypeResumeReview,
		Fields: dbmodels.StageFieldList{
			{Name: "resume_score", Type: models.FieldTypeNumber},
			{Name: "comments", Type: models.FieldTypeString},
		},
	}
}

func TestStatus(t *testing.T) {
	stage := testStage()

	t.Run(`empty fields mean not started`, func(t *testing.T) {
		rec := dbmodels.Review{Fields: dbmodels.ReviewFieldValues{}}
		require.Equal(t, models.ReviewStatusNotStarted, Status(rec, stage))
	})

	t.Run(`partial fields mean in progress`, func(t *testing.T) {
		rec := dbmodels.Review{Fields: dbmodels.ReviewFieldValues{
			"resume_score": 7,
		}}
		require.Equal(t, models.ReviewStatusInProgress, Status(rec, stage))
	})

	t.Run(`all schema fields mean completed`, func(t *testing.T) {
		rec := dbmodels.Review{Fields: dbmodels.ReviewFieldValues{
			"resume_score": 7,
			"comments":     "сильное резюме",
		}}
		require.Equal(t, models.ReviewStatusCompleted, Status(rec, stage))
	})

	t.Run(`extra fields do not affect the status`, func(t *testing.T) {
		rec := dbmodels.Review{Fields: dbmodels.ReviewFieldValues{
			"resume_score": 7,
			"comments":     "сильное резюме",
			"legacy_score": 3,
		}}
		require.Equal(t, models.ReviewStatusCompleted, Status(rec, stage))

		rec = dbmodels.Review{Fields: dbmodels.ReviewFieldValues{
			"legacy_score": 3,
		}}
		require.Equal(t, models.ReviewStatusInProgress, Status(rec, stage))
	})
}

type stubReviewStore struct {
	rec *dbmodels.Review
}

func (s stubReviewStore) Create(rec dbmodels.Review) (string, error) { return rec.ID, nil }
func (s stubReviewStore) GetByID(id string) (*dbmodels.Review, error) {
	if s.rec != nil && s.rec.ID == id {
		return s.rec, nil
	}
	return nil, nil
}
func (s stubReviewStore) ListByStageAndApplication(stageID, applicationID string) ([]dbmodels.Review, error) {
	return nil, nil
}
func (s stubReviewStore) ListByApplication(applicationID string) ([]dbmodels.Review, error) {
	return nil, nil
}
func (s stubReviewStore) CountByReviewerAndStage(reviewerEmail, stageID string) (int64, error) {
	return 0, nil
}
func (s stubReviewStore) SetReviewer(id, reviewerEmail string) error { return nil }
func (s stubReviewStore) UpdateFields(id string, values dbmodels.ReviewFieldValues) error {
	return nil
}

type stubPipelineStore struct {
	stage *dbmodels.Stage
}

func (s stubPipelineStore) GetPipelineByID(id string) (*dbmodels.Pipeline, error) { return nil, nil }
func (s stubPipelineStore) GetStageByID(id string) (*dbmodels.Stage, error) {
	if s.stage != nil && s.stage.ID == id {
		return s.stage, nil
	}
	return nil, nil
}
func (s stubPipelineStore) GetStageByPipelineAndIndex(pipelineID string, index int) (*dbmodels.Stage, error) {
	return nil, nil
}
func (s stubPipelineStore) ListStages(pipelineID string) ([]dbmodels.Stage, error) {
	return nil, nil
}

func TestStatusByID(t *testing.T) {
	t.Run(`missing review`, func(t *testing.T) {
		handler := NewInstance(stubReviewStore{}, stubPipelineStore{})
		_, err := handler.StatusByID("ghost")
		require.ErrorIs(t, err, models.ErrReviewNotFound)
	})

	t.Run(`missing stage is an integrity violation`, func(t *testing.T) {
		rec := &dbmodels.Review{
			BaseModel: dbmodels.BaseModel{ID: "review-1"},
			StageID:   "ghost-stage",
			Fields:    dbmodels.ReviewFieldValues{},
		}
		handler := NewInstance(stubReviewStore{rec: rec}, stubPipelineStore{})
		_, err := handler.StatusByID("review-1")
		require.Error(t, err)
		require.NotErrorIs(t, err, models.ErrReviewNotFound)
		require.NotErrorIs(t, err, models.ErrStageNotFound)
	})

	t.Run(`derives from fields and schema`, func(t *testing.T) {
		stage := testStage()
		stage.ID = "stage-1"
		rec := &dbmodels.Review{
			BaseModel: dbmodels.BaseModel{ID: "review-1"},
			StageID:   "stage-1",
			Fields: dbmodels.ReviewFieldValues{
				"resume_score": 9,
			},
		}
		handler := NewInstance(stubReviewStore{rec: rec}, stubPipelineStore{stage: &stage})
		status, err := handler.StatusByID("review-1")
		require.Nil(t, err)
		require.Equal(t, models.ReviewStatusInProgress, status)
	})
}
