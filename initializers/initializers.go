package initializers

import (
	"context"

	"recruiting-backend/config"
	"recruiting-backend/fiberlog"
	"recruiting-backend/lib/assignment"
	"recruiting-backend/lib/progress"
	"recruiting-backend/lib/review"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	review.NewHandler()
	assignment.NewHandler()
	progress.NewHandler()
}
