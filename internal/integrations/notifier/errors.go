package notifier

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к RabbitMQ
	ErrConnect = errors.New("notifier: failed to connect to rabbitmq")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("notifier: failed to publish event")

	// ErrMarshal возвращается, когда событие не удалось сериализовать
	ErrMarshal = errors.New("notifier: failed to marshal event")
)
