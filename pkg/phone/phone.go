package phone

import (
	"errors"
	"strings"
)

var (
	// ErrEmpty возвращается для пустого номера телефона
	ErrEmpty = errors.New("phone: empty phone number")

	// ErrMissingPrefix возвращается, когда номер не содержит международный префикс
	ErrMissingPrefix = errors.New("phone: international prefix is required (e.g. +34666666666)")

	// ErrTooShort возвращается для номера без значащих цифр
	ErrTooShort = errors.New("phone: phone number is too short")
)

// maxCanonicalLen разумный верхний предел длины канонического номера
const maxCanonicalLen = 20

// ErrTooLong возвращается для аномально длинного номера
var ErrTooLong = errors.New("phone: phone number is too long")

// Canonicalize приводит номер телефона к канонической форме:
// ведущий '+' и только цифры, без пробелов, дефисов и скобок.
// Номер обязан начинаться с международного префикса.
func Canonicalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmpty
	}

	var b strings.Builder
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		default:
			// Пробелы, дефисы, скобки и прочие разделители отбрасываем
		}
	}

	canonical := b.String()
	if !strings.HasPrefix(canonical, "+") {
		return "", ErrMissingPrefix
	}
	if len(canonical) < 8 {
		return "", ErrTooShort
	}
	if len(canonical) > maxCanonicalLen {
		return "", ErrTooLong
	}

	return canonical, nil
}
