package dbmodels

import (
	"recruiting-backend/models"

	"github.com/pkg/errors"
)

// Progress - положение заявки в воронке. На пару (заявка, воронка)
// существует не больше одной записи.
type Progress struct {
	BaseModel
	ApplicationID string       `gorm:"type:varchar(36);index:idx_application_pipeline,unique"`
	Application   *Application `gorm:"foreignKey:ApplicationID"`
	PipelineID    string       `gorm:"type:varchar(36);index:idx_application_pipeline,unique"`
	// -1 значит "до первого этапа"
	StageIndex int
	State      models.ProgressState `gorm:"type:varchar(50)"`
}

// IsAllowTransition проверяет, допустим ли переход из текущего состояния.
// Из терминальных состояний переходов нет.
func (p Progress) IsAllowTransition() (bool, error) {
	if p.State == models.ProgressStateAccepted {
		return false, errors.New("переход недоступен, кандидат уже принят")
	}
	if p.State == models.ProgressStateRejected {
		return false, errors.New("переход недоступен, кандидат уже отклонен")
	}
	return true, nil
}
