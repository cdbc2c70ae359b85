// internal/generator/event.go
package generator

import "fmt"

// goldClassMin — минимальный индекс счёта, относимый к классу Gold.
const goldClassMin = 8

// Классы счетов.
const (
	ClassGold   = "Gold"
	ClassSilver = "Silver"
)

// PurchaseEvent — синтетическое событие покупки. Неизменяемо после
// конструирования: сгенерировано, сериализовано, отправлено, забыто.
type PurchaseEvent struct {
	AccountID         string
	AccountClass      string
	TransactionAmount int
	TransactionSource string
	Timestamp         int64 // наносекунды с эпохи на момент конструирования
}

// FormatAccountID форматирует индекс счёта как "A" + десять цифр с нулями.
func FormatAccountID(account int) string {
	return fmt.Sprintf("A%010d", account)
}

// ClassForAccount выводит класс счёта из его индекса; независимой
// случайности здесь нет.
func ClassForAccount(account int) string {
	if account >= goldClassMin {
		return ClassGold
	}
	return ClassSilver
}

// Record возвращает плоское представление события для сериализатора.
func (e PurchaseEvent) Record() map[string]interface{} {
	return map[string]interface{}{
		"account_id":         e.AccountID,
		"account_class":      e.AccountClass,
		"transaction_amount": e.TransactionAmount,
		"transaction_source": e.TransactionSource,
		"Timestamp":          e.Timestamp,
	}
}
