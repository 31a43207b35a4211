package reviewerapimodels

import (
	"github.com/pkg/errors"

	dbmodels "recruiting-backend/models/db"
)

type ReviewerView struct {
	ID                      string   `json:"id"`
	Email                   string   `json:"email"`
	FirstName               string   `json:"first_name"`
	LastName                string   `json:"last_name"`
	IsActive                bool     `json:"is_active"`
	AssignedStageIDs        []string `json:"assigned_stage_ids"`
	FirstYearsOnlyScreen    bool     `json:"first_years_only_screen"`
	FirstYearsOnlyInterview bool     `json:"first_years_only_interview"`
	IsSoloInterviewer       bool     `json:"is_solo_interviewer"`
}

func Convert(rec dbmodels.Reviewer) ReviewerView {
	return ReviewerView{
		ID:                      rec.ID,
		Email:                   rec.Email,
		FirstName:               rec.FirstName,
		LastName:                rec.LastName,
		IsActive:                rec.IsActive,
		AssignedStageIDs:        rec.AssignedStageIDs,
		FirstYearsOnlyScreen:    rec.FirstYearsOnlyScreen,
		FirstYearsOnlyInterview: rec.FirstYearsOnlyInterview,
		IsSoloInterviewer:       rec.IsSoloInterviewer,
	}
}

type CreateRequest struct {
	Email                   string   `json:"email"`
	FirstName               string   `json:"first_name"`
	LastName                string   `json:"last_name"`
	AssignedStageIDs        []string `json:"assigned_stage_ids"`
	FirstYearsOnlyScreen    bool     `json:"first_years_only_screen"`
	FirstYearsOnlyInterview bool     `json:"first_years_only_interview"`
	IsSoloInterviewer       bool     `json:"is_solo_interviewer"`
}

func (r CreateRequest) Validate() error {
	if r.Email == "" {
		return errors.New("не заполнен email проверяющего")
	}
	return nil
}
