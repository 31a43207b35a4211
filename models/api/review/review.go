package reviewapimodels

import (
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"time"
)

type ReviewView struct {
	ID                 string                     `json:"id"`
	StageID            string                     `json:"stage_id"`
	ApplicationID      string                     `json:"application_id"`
	ReviewerEmail      string                     `json:"reviewer_email,omitempty"`
	Fields             dbmodels.ReviewFieldValues `json:"fields"`
	InterviewSessionID string                     `json:"interview_session_id,omitempty"`
	CreatedAt          time.Time                  `json:"created_at"`
}

func Convert(rec dbmodels.Review) ReviewView {
	return ReviewView{
		ID:                 rec.ID,
		StageID:            rec.StageID,
		ApplicationID:      rec.ApplicationID,
		ReviewerEmail:      rec.ReviewerEmail,
		Fields:             rec.Fields,
		InterviewSessionID: rec.InterviewSessionID,
		CreatedAt:          rec.CreatedAt,
	}
}

type ReviewStatusView struct {
	ID     string              `json:"id"`
	Status models.ReviewStatus `json:"status"`
}

type CreateRequest struct {
	StageID       string `json:"stage_id"`
	ApplicationID string `json:"application_id"`
}

type AssignRequest struct {
	// пусто - подобрать проверяющего автоматически
	ReviewerEmail string `json:"reviewer_email"`
}

type SaveFieldsRequest struct {
	Fields dbmodels.ReviewFieldValues `json:"fields"`
}
