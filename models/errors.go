package models

import "github.com/pkg/errors"

// Ожидаемые бизнес-ошибки. Контроллеры сопоставляют их с HTTP кодами
// через errors.Is; всё остальное считается внутренней ошибкой.
var (
	ErrStageNotFound       = errors.New("этап не найден")
	ErrPipelineNotFound    = errors.New("воронка не найдена")
	ErrApplicationNotFound = errors.New("заявка не найдена")
	ErrReviewNotFound      = errors.New("проверка не найдена")
	ErrReviewerNotFound    = errors.New("проверяющий не найден")
	ErrProgressNotFound    = errors.New("прогресс заявки не найден")

	ErrAlreadyTerminal   = errors.New("заявка уже в конечном состоянии")
	ErrReviewsIncomplete = errors.New("на текущем этапе есть незавершённые проверки")

	ErrNoReviewersConfigured = errors.New("для этапа не настроены проверяющие")
	ErrNoAutoAssignCandidate = errors.New("нет кандидатов для автоназначения")

	ErrNotificationFailed = errors.New("не удалось отправить уведомление кандидату")
)
