package dbmodels

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type Application struct {
	BaseModel
	FirstName string `gorm:"type:varchar(255)"`
	LastName  string `gorm:"type:varchar(255)"`
	Email     string `gorm:"type:varchar(255);index"`
	Phone     string `gorm:"type:varchar(255)"`
	Major     string `gorm:"type:varchar(255)"`
	// коды академических кварталов: 4*год + смещение (0-зима .. 3-осень)
	StartQuarter int
	GradQuarter  int
	ResumeLink   string `gorm:"type:varchar(512)"`
	// проверяющие, которым кандидат больше не назначается (только растёт)
	BlockedReviewers pq.StringArray `gorm:"type:text[]"`
}

func (a Application) GetFullName() string {
	return fmt.Sprintf("%s %s", a.FirstName, a.LastName)
}

func (a Application) IsReviewerBlocked(email string) bool {
	for _, blocked := range a.BlockedReviewers {
		if blocked == email {
			return true
		}
	}
	return false
}

type ApplicationFilter struct {
	Search string `json:"search"`
}

type ApplicationCreateData struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Major        string `json:"major"`
	StartQuarter int    `json:"start_quarter"`
	GradQuarter  int    `json:"grad_quarter"`
	ResumeLink   string `json:"resume_link"`
	PipelineID   string `json:"pipeline_id"`
}

func (d ApplicationCreateData) Validate() error {
	if d.Email == "" {
		return errors.New("не указана почта кандидата")
	}
	if d.StartQuarter <= 0 || d.GradQuarter <= 0 {
		return errors.New("не указаны кварталы начала и окончания обучения")
	}
	return nil
}
