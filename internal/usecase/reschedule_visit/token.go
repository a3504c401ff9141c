package reschedule_visit

import "github.com/google/uuid"

// UUIDTokenGenerator генерирует access token как случайный UUID v4
type UUIDTokenGenerator struct{}

// NewToken возвращает новый случайный токен
func (g *UUIDTokenGenerator) NewToken() string {
	return uuid.NewString()
}
