package db

import (
	"recruiting-backend/config"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	if *config.Conf.Recruitment.SeedDefaultPipeline {
		fillDefaultPipeline()
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// fillDefaultPipeline добавляет воронку Developer с тремя этапами, если в
// базе ещё нет ни одной воронки.
func fillDefaultPipeline() {
	var count int64
	if err := DB.Model(&dbmodels.Pipeline{}).Count(&count).Error; err != nil {
		log.WithError(err).Error("ошибка проверки справочника воронок")
		return
	}
	if count > 0 {
		return
	}
	pipeline := dbmodels.Pipeline{Name: "Developer"}
	if err := DB.Save(&pipeline).Error; err != nil {
		log.WithError(err).Error("ошибка добавления воронки по умолчанию")
		return
	}
	stages := []dbmodels.Stage{
		{
			PipelineID:     pipeline.ID,
			StageOrder:     0,
			Name:           "Проверка резюме",
			StageType:      models.StageTypeResumeReview,
			ReviewCount:    2,
			AutoAssign:     true,
			NotifyOnAssign: true,
			Fields: dbmodels.StageFieldList{
				{Name: "resume_score", Type: models.FieldTypeNumber, Weight: floatPtr(1), MaxValue: floatPtr(10)},
				{Name: "comments", Type: models.FieldTypeString},
			},
		},
		{
			PipelineID:     pipeline.ID,
			StageOrder:     1,
			Name:           "Телефонный скрининг",
			StageType:      models.StageTypePhoneScreen,
			ReviewCount:    1,
			AutoAssign:     true,
			NotifyOnAssign: true,
			Fields: dbmodels.StageFieldList{
				{Name: "communication", Type: models.FieldTypeNumber, Weight: floatPtr(0.5), MaxValue: floatPtr(5)},
				{Name: "interest", Type: models.FieldTypeNumber, Weight: floatPtr(0.5), MaxValue: floatPtr(5)},
				{Name: "notes", Type: models.FieldTypeString},
			},
		},
		{
			PipelineID:     pipeline.ID,
			StageOrder:     2,
			Name:           "Техническое интервью",
			StageType:      models.StageTypeTechInterview,
			ReviewCount:    1,
			AutoAssign:     true,
			NotifyOnAssign: true,
			Fields: dbmodels.StageFieldList{
				{Name: "problem_solving", Type: models.FieldTypeNumber, Weight: floatPtr(1), MaxValue: floatPtr(10)},
				{Name: "coding", Type: models.FieldTypeNumber, Weight: floatPtr(1), MaxValue: floatPtr(10)},
				{Name: "notes", Type: models.FieldTypeString},
			},
		},
	}
	for _, stage := range stages {
		if err := DB.Save(&stage).Error; err != nil {
			log.WithError(err).Error("ошибка добавления этапа по умолчанию")
			return
		}
	}
	log.Info("Воронка по умолчанию добавлена")
}
