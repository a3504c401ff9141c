package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	propertyRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/property"
	"github.com/avolkov/PRS-VisitService/pkg/types"
)

type mockVisitRepository struct {
	getConfirmedInstantsFunc func(ctx context.Context, propertyID int64, notBefore time.Time) ([]time.Time, error)
}

func (m *mockVisitRepository) GetConfirmedInstants(ctx context.Context, propertyID int64, notBefore time.Time) ([]time.Time, error) {
	if m.getConfirmedInstantsFunc != nil {
		return m.getConfirmedInstantsFunc(ctx, propertyID, notBefore)
	}
	return nil, nil
}

type mockWindowRepository struct {
	getApplicableFunc func(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error)
}

func (m *mockWindowRepository) GetApplicable(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error) {
	if m.getApplicableFunc != nil {
		return m.getApplicableFunc(ctx, propertyID, notBefore)
	}
	return nil, nil
}

type mockPropertyRepository struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.Property, error)
}

func (m *mockPropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, propertyRepo.ErrPropertyNotFound
}

type mockAuthorizationRepository struct {
	isAuthorizedFunc func(ctx context.Context, propertyID int64, phone string) (bool, error)
}

func (m *mockAuthorizationRepository) IsAuthorized(ctx context.Context, propertyID int64, phone string) (bool, error) {
	if m.isAuthorizedFunc != nil {
		return m.isAuthorizedFunc(ctx, propertyID, phone)
	}
	return true, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

var testDay = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

func testProperty() *domain.Property {
	return &domain.Property{
		ID:                   10,
		Name:                 "Квартира на Арбате",
		VisitDurationMinutes: 30,
	}
}

func testWindows() []*domain.AvailabilityWindow {
	date := testDay
	return []*domain.AvailabilityWindow{
		{
			ID:         1,
			PropertyID: 10,
			Kind:       domain.WindowKindDated,
			VisitDate:  &date,
			StartTime:  types.TimeString("09:00"),
			EndTime:    types.TimeString("11:00"),
		},
	}
}

func newTestUseCase(
	visits *mockVisitRepository,
	windows *mockWindowRepository,
	properties *mockPropertyRepository,
	auth *mockAuthorizationRepository,
) *UseCase {
	uc := NewUseCase(visits, windows, properties, auth, 60, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testDay.Add(-24 * time.Hour)}
	return uc
}

func TestGetAvailableSlots_Success(t *testing.T) {
	var authPhone string
	auth := &mockAuthorizationRepository{
		isAuthorizedFunc: func(ctx context.Context, propertyID int64, phone string) (bool, error) {
			authPhone = phone
			return true, nil
		},
	}
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}
	windows := &mockWindowRepository{
		getApplicableFunc: func(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error) {
			return testWindows(), nil
		},
	}
	visits := &mockVisitRepository{
		getConfirmedInstantsFunc: func(ctx context.Context, propertyID int64, notBefore time.Time) ([]time.Time, error) {
			return []time.Time{testDay.Add(10 * time.Hour)}, nil
		},
	}

	uc := newTestUseCase(visits, windows, properties, auth)

	resp, err := uc.Execute(context.Background(), &Request{
		PropertyID: 10,
		Phone:      "+34 666 666 666",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.PropertyID)
	assert.Equal(t, 30, resp.VisitDurationMinutes)
	// Проверка авторизации видит канонизированный телефон
	assert.Equal(t, "+34666666666", authPhone)

	// Из сетки 09:00/09:30/10:00/10:30 занят только 10:00
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, testDay.Add(9*time.Hour), resp.Slots[0].StartsAt)
	assert.Equal(t, testDay.Add(9*time.Hour+30*time.Minute), resp.Slots[1].StartsAt)
	assert.Equal(t, testDay.Add(10*time.Hour+30*time.Minute), resp.Slots[2].StartsAt)
}

func TestGetAvailableSlots_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&mockVisitRepository{}, &mockWindowRepository{}, &mockPropertyRepository{}, &mockAuthorizationRepository{})

	_, err := uc.Execute(context.Background(), &Request{PropertyID: 0, Phone: "+34666666666"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{PropertyID: 10, Phone: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{PropertyID: 10, Phone: "34666666666"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAvailableSlots_PropertyNotFound(t *testing.T) {
	uc := newTestUseCase(&mockVisitRepository{}, &mockWindowRepository{}, &mockPropertyRepository{}, &mockAuthorizationRepository{})

	_, err := uc.Execute(context.Background(), &Request{PropertyID: 10, Phone: "+34666666666"})
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestGetAvailableSlots_NotAuthorized(t *testing.T) {
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}
	windowsCalled := false
	windows := &mockWindowRepository{
		getApplicableFunc: func(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error) {
			windowsCalled = true
			return testWindows(), nil
		},
	}
	auth := &mockAuthorizationRepository{
		isAuthorizedFunc: func(ctx context.Context, propertyID int64, phone string) (bool, error) {
			return false, nil
		},
	}

	uc := newTestUseCase(&mockVisitRepository{}, windows, properties, auth)

	_, err := uc.Execute(context.Background(), &Request{PropertyID: 10, Phone: "+34666666666"})
	assert.ErrorIs(t, err, ErrNotAuthorized)
	// Неавторизованный запрос не должен дойти до расписания
	assert.False(t, windowsCalled)
}

func TestGetAvailableSlots_EmptySchedule(t *testing.T) {
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}

	uc := newTestUseCase(&mockVisitRepository{}, &mockWindowRepository{}, properties, &mockAuthorizationRepository{})

	resp, err := uc.Execute(context.Background(), &Request{PropertyID: 10, Phone: "+34666666666"})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestGetAvailableSlots_RepositoryError(t *testing.T) {
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}
	windows := &mockWindowRepository{
		getApplicableFunc: func(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error) {
			return nil, errors.New("connection refused")
		},
	}

	uc := newTestUseCase(&mockVisitRepository{}, windows, properties, &mockAuthorizationRepository{})

	_, err := uc.Execute(context.Background(), &Request{PropertyID: 10, Phone: "+34666666666"})
	assert.ErrorIs(t, err, ErrInternal)
}
