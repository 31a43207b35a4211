package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"recruiting" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		EmailFrom  string `default:"no-reply@recruiting.local" env:"SMTP_EMAIL_FROM"`
	}
	Recruitment struct {
		// дедлайн подачи заявок, RFC3339; пустая строка - дедлайн не задан
		ApplyDeadline string `default:"" env:"RECRUITMENT_APPLY_DEADLINE"`
		// за сколько часов до дедлайна перестаём слать письма о назначении
		NotifyBlackoutHours int    `default:"24" env:"RECRUITMENT_NOTIFY_BLACKOUT_HOURS"`
		ReviewLinkDomain    string `default:"http://localhost:8000" env:"RECRUITMENT_REVIEW_LINK_DOMAIN"`
		SeedDefaultPipeline *bool  `default:"true" env:"RECRUITMENT_SEED_DEFAULT_PIPELINE"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
