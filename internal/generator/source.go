// internal/generator/source.go
package generator

import (
	"math/rand"
	"time"
)

// Source поставляет случайность генератору. Выделен в интерфейс, чтобы
// тесты могли подставить детерминированную последовательность.
type Source interface {
	// Intn возвращает равномерное число из [0, n).
	Intn(n int) int
	// Float64 возвращает равномерное число из [0, 1).
	Float64() float64
}

type mathSource struct {
	rnd *rand.Rand
}

// NewSource возвращает Source поверх math/rand, засеянный текущим временем.
func NewSource() Source {
	return &mathSource{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *mathSource) Intn(n int) int   { return s.rnd.Intn(n) }
func (s *mathSource) Float64() float64 { return s.rnd.Float64() }
