package pricing

import "errors"

var (
	// ErrModelUnhealthy возвращается, когда модель ответила, но не готова
	ErrModelUnhealthy = errors.New("pricing service: model is not healthy")
)
