package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	"github.com/avolkov/PRS-VisitService/pkg/types"
)

var (
	// ErrInvalidWindow возвращается при некорректном определении окна
	ErrInvalidWindow = errors.New("invalid availability window")
)

// Request модели

// CreateWindowRequest запрос на создание окна доступности
type CreateWindowRequest struct {
	AdminID    int64  `json:"adminId"`
	PropertyID int64  `json:"propertyId"`
	Kind       string `json:"kind"` // "dated" | "weekly"

	VisitDate *string `json:"visitDate,omitempty"` // "2026-03-15", только для dated
	Weekday   *int    `json:"weekday,omitempty"`   // 0=воскресенье .. 6=суббота, только для weekly

	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "13:00"
}

// ToDomainWindow конвертирует request в domain модель с валидацией
func (r *CreateWindowRequest) ToDomainWindow() (*domain.AvailabilityWindow, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start time: %v", ErrInvalidWindow, err)
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end time: %v", ErrInvalidWindow, err)
	}

	w := &domain.AvailabilityWindow{
		PropertyID: r.PropertyID,
		Kind:       domain.WindowKind(r.Kind),
		StartTime:  startTime,
		EndTime:    endTime,
	}

	if r.VisitDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.VisitDate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad visit date: %v", ErrInvalidWindow, err)
		}
		w.VisitDate = &date
	}

	if r.Weekday != nil {
		if *r.Weekday < 0 || *r.Weekday > 6 {
			return nil, fmt.Errorf("%w: weekday must be in range 0..6", ErrInvalidWindow)
		}
		wd := time.Weekday(*r.Weekday)
		w.Weekday = &wd
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// CreateAuthorizationRequest запрос на авторизацию телефона для объекта
type CreateAuthorizationRequest struct {
	AdminID    int64  `json:"adminId"`
	PropertyID int64  `json:"propertyId"`
	Phone      string `json:"phone"`
}

// Response модели

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"propertyId"`
	Kind       string `json:"kind"`

	VisitDate *string `json:"visitDate,omitempty"`
	Weekday   *int    `json:"weekday,omitempty"`

	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
}

// WindowListResponse ответ со списком окон доступности
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// AuthorizationResponse ответ с данными авторизации
type AuthorizationResponse struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"propertyId"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuthorizationListResponse ответ со списком авторизаций
type AuthorizationListResponse struct {
	Authorizations []AuthorizationResponse `json:"authorizations"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	resp := &WindowResponse{
		ID:         w.ID,
		PropertyID: w.PropertyID,
		Kind:       string(w.Kind),
		StartTime:  w.StartTime.String(),
		EndTime:    w.EndTime.String(),
		CreatedAt:  w.CreatedAt,
	}

	if w.VisitDate != nil {
		dateStr := w.VisitDate.Format(domain.DateFormat)
		resp.VisitDate = &dateStr
	}
	if w.Weekday != nil {
		wd := int(*w.Weekday)
		resp.Weekday = &wd
	}

	return resp
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.AvailabilityWindow) *WindowListResponse {
	if windows == nil {
		return &WindowListResponse{
			Windows: []WindowResponse{},
		}
	}

	resp := &WindowListResponse{
		Windows: make([]WindowResponse, len(windows)),
	}

	for i, window := range windows {
		if windowResp := FromDomainWindow(window); windowResp != nil {
			resp.Windows[i] = *windowResp
		}
	}

	return resp
}

// FromDomainAuthorization конвертирует domain модель в DTO
func FromDomainAuthorization(a *domain.Authorization) *AuthorizationResponse {
	if a == nil {
		return nil
	}

	return &AuthorizationResponse{
		ID:         a.ID,
		PropertyID: a.PropertyID,
		Phone:      a.Phone,
		CreatedAt:  a.CreatedAt,
	}
}

// FromDomainAuthorizationList конвертирует список domain моделей в DTO
func FromDomainAuthorizationList(auths []*domain.Authorization) *AuthorizationListResponse {
	if auths == nil {
		return &AuthorizationListResponse{
			Authorizations: []AuthorizationResponse{},
		}
	}

	resp := &AuthorizationListResponse{
		Authorizations: make([]AuthorizationResponse, len(auths)),
	}

	for i, auth := range auths {
		if authResp := FromDomainAuthorization(auth); authResp != nil {
			resp.Authorizations[i] = *authResp
		}
	}

	return resp
}
