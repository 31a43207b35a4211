package dbmodels

import (
	"fmt"

	"github.com/lib/pq"
)

// Reviewer - пользователь, проверяющий заявки.
type Reviewer struct {
	BaseModel
	Email     string `gorm:"type:varchar(255);uniqueIndex"`
	FirstName string `gorm:"type:varchar(150)"`
	LastName  string `gorm:"type:varchar(150)"`
	IsActive  bool
	// этапы, на которых участвует проверяющий
	AssignedStageIDs pq.StringArray `gorm:"type:text[]"`
	// проверяет только первокурсников на телефонном скрининге
	FirstYearsOnlyScreen bool
	// проверяет только первокурсников на техническом интервью
	FirstYearsOnlyInterview bool
	// проводит интервью в одиночку: закрывает два слота за сессию,
	// при балансировке его назначения считаются вдвойне
	IsSoloInterviewer bool
}

func (r Reviewer) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

// FirstYearsOnly - действует ли для проверяющего ограничение "только
// первокурсники" на этапе данного типа.
func (r Reviewer) FirstYearsOnly(isInterview bool) bool {
	if isInterview {
		return r.FirstYearsOnlyInterview
	}
	return r.FirstYearsOnlyScreen
}
