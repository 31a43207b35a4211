package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const requestMessage = "запрос api"

// collectFields вычисляет значения настроенных полей для записи лога.
// Пустые строковые значения опускаются.
func collectFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	fields := make(log.Fields, len(ftm))
	for key, ft := range ftm {
		value := ft(c, d)
		if strValue, ok := value.(string); ok {
			if strValue != "" {
				fields[key] = strValue
			}
			continue
		}
		fields[key] = value
	}
	return fields
}

// New возвращает middleware, пишущий запись о каждом запросе после его
// обработки. Ответы со статусом от 300 логируются уровнем Warn,
// preflight-запросы OPTIONS не логируются.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	d := &data{pid: os.Getpid()}
	ftm := getFuncTagMap(cfg, d)
	return func(c *fiber.Ctx) error {
		d.start = time.Now()
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}

		if cfg.Logger == nil {
			log.WithFields(collectFields(ftm, c, d)).Info(requestMessage)
			return err
		}
		entry := cfg.Logger.WithFields(collectFields(ftm, c, d))
		if c.Response() != nil && c.Response().StatusCode() >= 300 {
			entry.Warn(requestMessage)
		} else {
			entry.Info(requestMessage)
		}
		return err
	}
}
