package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"recruiting-backend/models"

	"github.com/pkg/errors"
)

type Pipeline struct {
	BaseModel
	Name string `gorm:"type:varchar(255)"`
}

// Stage - этап воронки отбора. Справочные данные, заполняются при старте
// сервиса и в рантайме не меняются.
type Stage struct {
	BaseModel
	PipelineID string           `gorm:"type:varchar(36);index:idx_pipeline_order,unique"`
	Pipeline   *Pipeline        `gorm:"foreignKey:PipelineID"`
	StageOrder int              `gorm:"index:idx_pipeline_order,unique"`
	Name       string           `gorm:"type:varchar(255)"`
	StageType  models.StageType `gorm:"type:varchar(50)"`
	// сколько независимых проверок нужно на этом этапе
	ReviewCount    int
	AutoAssign     bool
	NotifyOnAssign bool
	Fields         StageFieldList `gorm:"type:jsonb"`
}

type StageField struct {
	Name       string           `json:"name"`
	Type       models.FieldType `json:"type"`
	Weight     *float64         `json:"weight,omitempty"`
	MaxValue   *float64         `json:"max_value,omitempty"`
	RubricLink string           `json:"rubric_link,omitempty"`
}

type StageFieldList []StageField

func (l StageFieldList) Value() (driver.Value, error) {
	if l == nil {
		l = StageFieldList{}
	}
	return json.Marshal(l)
}

func (l *StageFieldList) Scan(value interface{}) error {
	if value == nil {
		*l = StageFieldList{}
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		if str, strOk := value.(string); strOk {
			data = []byte(str)
		} else {
			return errors.New("неподдерживаемый тип значения для схемы полей этапа")
		}
	}
	return json.Unmarshal(data, l)
}

func (l StageFieldList) Names() []string {
	names := make([]string, 0, len(l))
	for _, f := range l {
		names = append(names, f.Name)
	}
	return names
}
