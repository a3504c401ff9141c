package domain

import "time"

// Authorization pairs a canonical phone number with a property it may book
// Создаётся и удаляется только администраторами; движок бронирования читает её
type Authorization struct {
	ID         int64
	PropertyID int64

	// Phone канонический номер: ведущий '+' и только цифры
	Phone string

	CreatedAt time.Time
}
