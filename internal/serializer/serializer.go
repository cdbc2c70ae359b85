// internal/serializer/serializer.go
//
// Пакет serializer превращает структурированную запись в транспортный
// конверт (key/value/headers), понятный брокеру.
package serializer

import (
	"github.com/YaganovValera/purchase-stream/pkg/kafka"
)

// Envelope — сериализованное сообщение, готовое к публикации.
type Envelope struct {
	Key     []byte
	Value   []byte
	Headers []kafka.Header
}

// Serializer кодирует запись с заголовками в Envelope.
//
// ExtraHeaders возвращает заголовки формата, которые обязаны присутствовать
// на каждом сообщении; вызывающий объединяет их со своими.
type Serializer interface {
	Serialize(key string, record map[string]interface{}, headers map[string]string) (Envelope, error)
	ExtraHeaders() map[string]string
}
