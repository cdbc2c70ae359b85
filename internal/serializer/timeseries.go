// internal/serializer/timeseries.go
package serializer

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/YaganovValera/purchase-stream/pkg/kafka"
)

// Заголовки формата timeseries-конверта.
const (
	HeaderModelKey = "__Q_ModelKey"
	HeaderCodecID  = "__Q_CodecId"

	modelTimeseries = "TimeseriesData"
	codecJSON       = "JT"
)

// timestampField — обязательное поле записи с меткой времени в наносекундах.
const timestampField = "Timestamp"

// timeseriesDoc — колоночное представление одной или нескольких записей.
type timeseriesDoc struct {
	Timestamps    []int64              `json:"Timestamps"`
	NumericValues map[string][]float64 `json:"NumericValues,omitempty"`
	StringValues  map[string][]string  `json:"StringValues,omitempty"`
}

// Timeseries кодирует плоскую запись в колоночный timeseries-документ JSON.
type Timeseries struct{}

// NewTimeseries возвращает сериализатор timeseries-формата.
func NewTimeseries() *Timeseries { return &Timeseries{} }

// ExtraHeaders возвращает заголовки идентификации модели и кодека.
func (s *Timeseries) ExtraHeaders() map[string]string {
	return map[string]string{
		HeaderModelKey: modelTimeseries,
		HeaderCodecID:  codecJSON,
	}
}

// Serialize кодирует record в конверт. Поле Timestamp обязательно;
// числовые поля попадают в NumericValues, строковые — в StringValues.
// Заголовки сортируются по ключу для детерминированного порядка.
func (s *Timeseries) Serialize(key string, record map[string]interface{}, headers map[string]string) (Envelope, error) {
	ts, err := extractTimestamp(record)
	if err != nil {
		return Envelope{}, err
	}

	doc := timeseriesDoc{Timestamps: []int64{ts}}
	for _, field := range sortedFields(record) {
		if field == timestampField {
			continue
		}
		switch v := record[field].(type) {
		case int:
			appendNumeric(&doc, field, float64(v))
		case int64:
			appendNumeric(&doc, field, float64(v))
		case float64:
			appendNumeric(&doc, field, v)
		case string:
			appendString(&doc, field, v)
		default:
			return Envelope{}, fmt.Errorf("serializer: field %q has unsupported type %T", field, v)
		}
	}

	value, err := json.Marshal(doc)
	if err != nil {
		return Envelope{}, fmt.Errorf("serializer: marshal: %w", err)
	}

	return Envelope{
		Key:     []byte(key),
		Value:   value,
		Headers: toHeaders(headers),
	}, nil
}

func extractTimestamp(record map[string]interface{}) (int64, error) {
	raw, ok := record[timestampField]
	if !ok {
		return 0, fmt.Errorf("serializer: record is missing %q", timestampField)
	}
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("serializer: %q must be int64, got %T", timestampField, raw)
	}
}

func sortedFields(record map[string]interface{}) []string {
	fields := make([]string, 0, len(record))
	for f := range record {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func appendNumeric(doc *timeseriesDoc, field string, v float64) {
	if doc.NumericValues == nil {
		doc.NumericValues = make(map[string][]float64)
	}
	doc.NumericValues[field] = append(doc.NumericValues[field], v)
}

func appendString(doc *timeseriesDoc, field string, v string) {
	if doc.StringValues == nil {
		doc.StringValues = make(map[string][]string)
	}
	doc.StringValues[field] = append(doc.StringValues[field], v)
}

func toHeaders(headers map[string]string) []kafka.Header {
	if len(headers) == 0 {
		return nil
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]kafka.Header, 0, len(keys))
	for _, k := range keys {
		out = append(out, kafka.Header{Key: k, Value: []byte(headers[k])})
	}
	return out
}
