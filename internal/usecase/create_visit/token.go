package create_visit

import "github.com/google/uuid"

// UUIDTokenGenerator генерирует access token как случайный UUID v4
// 122 бита случайности - токен неугадываем и служит единственным
// доказательством владения визитом
type UUIDTokenGenerator struct{}

// NewToken возвращает новый случайный токен
func (g *UUIDTokenGenerator) NewToken() string {
	return uuid.NewString()
}
