// internal/serializer/timeseries_test.go
package serializer

import (
	"encoding/json"
	"testing"
)

// Проверяем, что запись раскладывается по колонкам и ключ/заголовки на месте.
func TestSerialize_Roundtrip(t *testing.T) {
	s := NewTimeseries()
	record := map[string]interface{}{
		"account_id":         "A0000000009",
		"account_class":      "Gold",
		"transaction_amount": -100,
		"transaction_source": "Mal-Wart",
		"Timestamp":          int64(1700000000000000000),
	}
	headers := map[string]string{"uuid": "u-1"}
	for k, v := range s.ExtraHeaders() {
		headers[k] = v
	}

	env, err := s.Serialize("A0000000009", record, headers)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if string(env.Key) != "A0000000009" {
		t.Errorf("key = %q; want A0000000009", env.Key)
	}

	var doc struct {
		Timestamps    []int64              `json:"Timestamps"`
		NumericValues map[string][]float64 `json:"NumericValues"`
		StringValues  map[string][]string  `json:"StringValues"`
	}
	if err := json.Unmarshal(env.Value, &doc); err != nil {
		t.Fatalf("value is not valid JSON: %v", err)
	}
	if len(doc.Timestamps) != 1 || doc.Timestamps[0] != 1700000000000000000 {
		t.Errorf("Timestamps = %v", doc.Timestamps)
	}
	if got := doc.NumericValues["transaction_amount"]; len(got) != 1 || got[0] != -100 {
		t.Errorf("transaction_amount column = %v", got)
	}
	if got := doc.StringValues["account_class"]; len(got) != 1 || got[0] != "Gold" {
		t.Errorf("account_class column = %v", got)
	}
	if got := doc.StringValues["transaction_source"]; len(got) != 1 || got[0] != "Mal-Wart" {
		t.Errorf("transaction_source column = %v", got)
	}

	// все переданные заголовки присутствуют
	found := make(map[string]string, len(env.Headers))
	for _, h := range env.Headers {
		found[h.Key] = string(h.Value)
	}
	for k, v := range headers {
		if found[k] != v {
			t.Errorf("header %q = %q; want %q", k, found[k], v)
		}
	}
}

func TestSerialize_MissingTimestamp(t *testing.T) {
	s := NewTimeseries()
	_, err := s.Serialize("k", map[string]interface{}{"account_id": "A0000000001"}, nil)
	if err == nil {
		t.Fatal("expected error for missing Timestamp, got nil")
	}
}

func TestSerialize_UnsupportedType(t *testing.T) {
	s := NewTimeseries()
	record := map[string]interface{}{
		"Timestamp": int64(1),
		"bad":       []int{1, 2},
	}
	if _, err := s.Serialize("k", record, nil); err == nil {
		t.Fatal("expected error for unsupported field type, got nil")
	}
}

func TestExtraHeaders_Stable(t *testing.T) {
	s := NewTimeseries()
	h := s.ExtraHeaders()
	if h[HeaderModelKey] != "TimeseriesData" {
		t.Errorf("%s = %q", HeaderModelKey, h[HeaderModelKey])
	}
	if h[HeaderCodecID] != "JT" {
		t.Errorf("%s = %q", HeaderCodecID, h[HeaderCodecID])
	}
}
