package create_visit

import "time"

// Request модель запроса на создание визита
type Request struct {
	PropertyID  int64     // ID объекта недвижимости
	Phone       string    // Телефон арендатора (канонизируется внутри usecase)
	ScheduledAt time.Time // Выбранный момент начала визита

	// Данные заявителя
	FirstName string
	LastName  string
	Email     string

	// Анкета для страховой - движок её не интерпретирует
	MonthlyIncome *float64
	NumTenants    int
	NumMinors     int
	HasPets       bool
	IsSmoker      bool
	Occupation    *string
	Notes         *string
}

// Response модель ответа с созданным визитом
type Response struct {
	ID          int64
	PropertyID  int64
	AccessToken string // Единственный способ управлять визитом без логина
	Phone       string
	FirstName   string
	LastName    string
	Email       string
	ScheduledAt time.Time
	Status      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
