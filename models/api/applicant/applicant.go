package applicantapimodels

import (
	dbmodels "recruiting-backend/models/db"
	"time"
)

type ApplicationView struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	Major            string    `json:"major,omitempty"`
	StartQuarter     int       `json:"start_quarter"`
	GradQuarter      int       `json:"grad_quarter"`
	ResumeLink       string    `json:"resume_link,omitempty"`
	BlockedReviewers []string  `json:"blocked_reviewers,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func Convert(rec dbmodels.Application) ApplicationView {
	return ApplicationView{
		ID:               rec.ID,
		FirstName:        rec.FirstName,
		LastName:         rec.LastName,
		Email:            rec.Email,
		Phone:            rec.Phone,
		Major:            rec.Major,
		StartQuarter:     rec.StartQuarter,
		GradQuarter:      rec.GradQuarter,
		ResumeLink:       rec.ResumeLink,
		BlockedReviewers: rec.BlockedReviewers,
		CreatedAt:        rec.CreatedAt,
	}
}
