package backend

import (
	"context"
	"time"
)

// TokenSource отдает bearer токен оператора для исходящего запроса
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Logger интерфейс логгера клиента
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Observer принимает метрики исходящих вызовов
type Observer interface {
	ObserveUpstream(upstream, operation, outcome string, d time.Duration)
}
