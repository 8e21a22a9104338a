package scoring

import (
	"log/slog"
	"time"
)

// Service — движки скоринга: мотивация продавца и инвестиционная
// привлекательность. Без состояния между вызовами; часы подставляются
// в конструкторе, чтобы скоринг оставался детерминированным в тестах.
type Service struct {
	log *slog.Logger
	now func() time.Time
}

func New(log *slog.Logger) *Service {
	return &Service{
		log: log,
		now: time.Now,
	}
}

// NewWithClock создаёт сервис с фиксированными часами (для тестов).
func NewWithClock(log *slog.Logger, now func() time.Time) *Service {
	return &Service{
		log: log,
		now: now,
	}
}
