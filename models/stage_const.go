package models

// Типы этапов отбора. Для этапов PhoneScreen и TechInterview при
// автоназначении действует фильтр по курсу кандидата.
type StageType string

const (
	StageTypeResumeReview  StageType = "resume_review"
	StageTypePhoneScreen   StageType = "phone_screen"
	StageTypeTechInterview StageType = "tech_interview"
)

func (t StageType) HasFirstYearRule() bool {
	return t == StageTypePhoneScreen || t == StageTypeTechInterview
}

// Типы полей анкеты проверяющего.
type FieldType string

const (
	FieldTypeNumber FieldType = "number"
	FieldTypeString FieldType = "string"
)
