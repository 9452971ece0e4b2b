package housekeeping

import (
	"context"
	"time"
)

// BlockRepository удаление устаревших разовых блокировок
type BlockRepository interface {
	DeleteSpecificBefore(ctx context.Context, before time.Time) (int64, error)
}

// OverrideRepository удаление устаревших переопределений по датам
type OverrideRepository interface {
	DeleteOverridesBefore(ctx context.Context, before time.Time) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
