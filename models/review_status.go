package models

type ReviewStatus string

const (
	ReviewStatusNotStarted ReviewStatus = "not_started"
	ReviewStatusInProgress ReviewStatus = "in_progress"
	ReviewStatusCompleted  ReviewStatus = "completed"
)

func (s ReviewStatus) ToHuman() string {
	switch s {
	case ReviewStatusNotStarted:
		return "Не начата"
	case ReviewStatusInProgress:
		return "В работе"
	case ReviewStatusCompleted:
		return "Завершена"
	}
	return string(s)
}
