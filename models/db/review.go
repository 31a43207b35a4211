package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

type Review struct {
	BaseModel
	StageID       string       `gorm:"type:varchar(36);index"`
	ApplicationID string       `gorm:"type:varchar(36);index"`
	Application   *Application `gorm:"foreignKey:ApplicationID"`
	// пустая строка - проверяющий ещё не назначен
	ReviewerEmail string            `gorm:"type:varchar(255);index"`
	Fields        ReviewFieldValues `gorm:"type:jsonb"`
	// заполняется для этапов технического интервью
	InterviewSessionID string `gorm:"type:varchar(36)"`
}

// ReviewFieldValues - значения полей анкеты: имя поля -> число/строка/флаг.
type ReviewFieldValues map[string]interface{}

func (v ReviewFieldValues) Value() (driver.Value, error) {
	if v == nil {
		v = ReviewFieldValues{}
	}
	return json.Marshal(v)
}

func (v *ReviewFieldValues) Scan(value interface{}) error {
	if value == nil {
		*v = ReviewFieldValues{}
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		if str, strOk := value.(string); strOk {
			data = []byte(str)
		} else {
			return errors.New("неподдерживаемый тип значения для полей анкеты")
		}
	}
	return json.Unmarshal(data, v)
}
