package fiberlog

import "github.com/sirupsen/logrus"

// Config - настройки логирования запросов. Tags задаёт набор полей,
// попадающих в каждую запись.
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault используется, если конфигурация не передана: пишет в
// стандартный logrus минимальный набор полей.
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}
