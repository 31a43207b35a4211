package models

type ProgressState string

const (
	ProgressStatePending  ProgressState = "pending"
	ProgressStateAccepted ProgressState = "accepted"
	ProgressStateRejected ProgressState = "rejected"
)

func (s ProgressState) IsTerminal() bool {
	return s == ProgressStateAccepted || s == ProgressStateRejected
}

func (s ProgressState) ToHuman() string {
	switch s {
	case ProgressStatePending:
		return "На рассмотрении"
	case ProgressStateAccepted:
		return "Принят"
	case ProgressStateRejected:
		return "Отклонен"
	}
	return string(s)
}
