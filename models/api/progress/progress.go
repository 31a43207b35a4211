package progressapimodels

import (
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
)

type ProgressView struct {
	ID            string               `json:"id"`
	ApplicationID string               `json:"application_id"`
	PipelineID    string               `json:"pipeline_id"`
	StageIndex    int                  `json:"stage_index"`
	State         models.ProgressState `json:"state"`
	StateName     string               `json:"state_name"`
}

func Convert(rec dbmodels.Progress) ProgressView {
	return ProgressView{
		ID:            rec.ID,
		ApplicationID: rec.ApplicationID,
		PipelineID:    rec.PipelineID,
		StageIndex:    rec.StageIndex,
		State:         rec.State,
		StateName:     rec.State.ToHuman(),
	}
}

type BulkRequest struct {
	ApplicationIDs []string `json:"application_ids"`
	PipelineID     string   `json:"pipeline_id"`
}

// BulkResult - результат перевода одной заявки, ошибки обрабатываются
// отдельно по каждой заявке.
type BulkResult struct {
	ApplicationID string `json:"application_id"`
	Ok            bool   `json:"ok"`
	Message       string `json:"message,omitempty"`
}
