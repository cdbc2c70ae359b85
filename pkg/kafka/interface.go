// pkg/kafka/interface.go
//
// Пакет kafka задаёт контракт публикации сообщений и не зависит от
// конкретной реализации драйвера.
package kafka

import "context"

// Header — один заголовок записи, прикрепляемый к сообщению.
type Header struct {
	Key   string
	Value []byte
}

// Producer публикует сообщения в Kafka.
type Producer interface {
	// Publish отправляет одно сообщение в заданный топик синхронно,
	// без внутренних ретраев: ошибка доставки возвращается вызывающему.
	Publish(ctx context.Context, topic string, headers []Header, key, value []byte) error
	// EnsureTopic создаёт топик, если он ещё не существует.
	EnsureTopic(ctx context.Context, topic string, partitions int32, replication int16) error
	// Ping проверяет достижимость кластера (обновление метаданных).
	Ping(ctx context.Context) error
	// Close корректно закрывает продьюсер и клиент.
	Close() error
}
