package db

import (
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Pipeline{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Pipeline")
	}
	if err := DB.AutoMigrate(&dbmodels.Stage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Stage")
	}
	if err := DB.AutoMigrate(&dbmodels.Application{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Application")
	}
	if err := DB.AutoMigrate(&dbmodels.Progress{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Progress")
	}
	if err := DB.AutoMigrate(&dbmodels.Review{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Review")
	}
	if err := DB.AutoMigrate(&dbmodels.Reviewer{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Reviewer")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
