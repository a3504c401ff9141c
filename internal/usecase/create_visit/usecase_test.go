package create_visit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	propertyRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/property"
	visitRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/visit"
	"github.com/avolkov/PRS-VisitService/internal/integrations/notifyservice"
	"github.com/avolkov/PRS-VisitService/pkg/types"
	"github.com/avolkov/PRS-VisitService/pkg/txmanager"
)

type mockVisitRepository struct {
	createConfirmedFunc         func(ctx context.Context, visit *domain.Visit) (*domain.Visit, error)
	getByPropertyWithFilterFunc func(ctx context.Context, filter domain.PropertyVisitsFilter) ([]*domain.Visit, error)
}

func (m *mockVisitRepository) CreateConfirmed(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	if m.createConfirmedFunc != nil {
		return m.createConfirmedFunc(ctx, visit)
	}
	created := *visit
	created.ID = 1
	created.Status = domain.StatusConfirmed
	return &created, nil
}

func (m *mockVisitRepository) GetByPropertyWithFilter(ctx context.Context, filter domain.PropertyVisitsFilter) ([]*domain.Visit, error) {
	if m.getByPropertyWithFilterFunc != nil {
		return m.getByPropertyWithFilterFunc(ctx, filter)
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

type mockNotifyClient struct {
	sendFunc func(ctx context.Context, req *notifyservice.SendRequest) error
}

func (m *mockNotifyClient) Send(ctx context.Context, req *notifyservice.SendRequest) error {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, req)
	}
	return nil
}

type mockTxManager struct {
	doSerializableFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.doSerializableFunc != nil {
		return m.doSerializableFunc(ctx, fn)
	}
	return fn(ctx)
}

type fixedTokenGenerator struct {
	token string
}

func (g *fixedTokenGenerator) NewToken() string {
	return g.token
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

// testDay дата, в которую указывает окно доступности тестов
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

func validRequest() *Request {
	return &Request{
		PropertyID:  10,
		Phone:       "+34 666 666 666",
		ScheduledAt: testDay.Add(9*time.Hour + 30*time.Minute),
		FirstName:   "Ana",
		LastName:    "García",
		Email:       "ana@example.com",
		NumTenants:  2,
	}
}

func newTestUseCase(
	visits *mockVisitRepository,
	windows *mockWindowRepository,
	properties *mockPropertyRepository,
	auth *mockAuthorizationRepository,
	notify *mockNotifyClient,
	tx *mockTxManager,
) *UseCase {
	uc := NewUseCase(visits, windows, properties, auth, notify, tx, noopLogger{})
	uc.tokens = &fixedTokenGenerator{token: "test-token"}
	uc.timeProvider = &fixedTimeProvider{now: testDay.Add(-24 * time.Hour)}
	return uc
}

func TestCreateVisit_Success(t *testing.T) {
	var inserted *domain.Visit
	visits := &mockVisitRepository{
		createConfirmedFunc: func(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
			inserted = visit
			created := *visit
			created.ID = 42
			created.Status = domain.StatusConfirmed
			return &created, nil
		},
	}
	windows := &mockWindowRepository{
		getApplicableFunc: func(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error) {
			return testWindows(), nil
		},
	}
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}

	sent := make(chan *notifyservice.SendRequest, 1)
	notify := &mockNotifyClient{
		sendFunc: func(ctx context.Context, req *notifyservice.SendRequest) error {
			sent <- req
			return nil
		},
	}

	uc := newTestUseCase(visits, windows, properties, &mockAuthorizationRepository{}, notify, &mockTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "test-token", resp.AccessToken)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	// Телефон канонизирован до вставки
	assert.Equal(t, "+34666666666", inserted.Phone)
	assert.Equal(t, "test-token", inserted.AccessToken)

	select {
	case req := <-sent:
		assert.Equal(t, notifyservice.TemplateVisitConfirmed, req.Template)
		assert.Equal(t, "test-token", req.Context["access_token"])
	case <-time.After(time.Second):
		t.Fatal("confirmation notification was not sent")
	}
}

func TestCreateVisit_AcceptsAnyOffsetRepresentation(t *testing.T) {
	// Окно 09:00-12:00 с 45-минутными визитами: сетка 09:00/09:45/10:30/11:15 UTC.
	// Тот же абсолютный момент 09:45Z, присланный как 10:45+01:00, обязан
	// пройти повторную генерацию - смещение не кратно длительности визита
	date := testDay
	windows := &mockWindowRepository{
		getApplicableFunc: func(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error) {
			return []*domain.AvailabilityWindow{
				{
					ID:         1,
					PropertyID: 10,
					Kind:       domain.WindowKindDated,
					VisitDate:  &date,
					StartTime:  types.TimeString("09:00"),
					EndTime:    types.TimeString("12:00"),
				},
			}, nil
		},
	}
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			p := testProperty()
			p.VisitDurationMinutes = 45
			return p, nil
		},
	}

	uc := newTestUseCase(&mockVisitRepository{}, windows, properties, &mockAuthorizationRepository{}, &mockNotifyClient{}, &mockTxManager{})

	req := validRequest()
	req.ScheduledAt = time.Date(2026, 9, 10, 10, 45, 0, 0, time.FixedZone("UTC+1", 3600))
	require.True(t, req.ScheduledAt.Equal(testDay.Add(9*time.Hour+45*time.Minute)))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.ScheduledAt.Equal(testDay.Add(9*time.Hour+45*time.Minute)))
}

func TestCreateVisit_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(
		&mockVisitRepository{}, &mockWindowRepository{}, &mockPropertyRepository{},
		&mockAuthorizationRepository{}, &mockNotifyClient{}, &mockTxManager{},
	)

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"non-positive property", func(req *Request) { req.PropertyID = 0 }},
		{"empty phone", func(req *Request) { req.Phone = "" }},
		{"zero instant", func(req *Request) { req.ScheduledAt = time.Time{} }},
		{"empty first name", func(req *Request) { req.FirstName = "" }},
		{"empty email", func(req *Request) { req.Email = "" }},
		{"negative tenants", func(req *Request) { req.NumTenants = -1 }},
		{"phone without prefix", func(req *Request) { req.Phone = "34666666666" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateVisit_PropertyNotFound(t *testing.T) {
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return nil, fmt.Errorf("%w: id=%d", propertyRepo.ErrPropertyNotFound, id)
		},
	}

	uc := newTestUseCase(
		&mockVisitRepository{}, &mockWindowRepository{}, properties,
		&mockAuthorizationRepository{}, &mockNotifyClient{}, &mockTxManager{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestCreateVisit_NotAuthorized(t *testing.T) {
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}
	auth := &mockAuthorizationRepository{
		isAuthorizedFunc: func(ctx context.Context, propertyID int64, phone string) (bool, error) {
			return false, nil
		},
	}

	uc := newTestUseCase(
		&mockVisitRepository{}, &mockWindowRepository{}, properties,
		auth, &mockNotifyClient{}, &mockTxManager{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestCreateVisit_InvalidSlot(t *testing.T) {
	windows := &mockWindowRepository{
		getApplicableFunc: func(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error) {
			return testWindows(), nil
		},
	}
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}

	uc := newTestUseCase(
		&mockVisitRepository{}, windows, properties,
		&mockAuthorizationRepository{}, &mockNotifyClient{}, &mockTxManager{},
	)

	// 09:15 не выровнен по сетке слотов 09:00/09:30/10:00/10:30
	req := validRequest()
	req.ScheduledAt = testDay.Add(9*time.Hour + 15*time.Minute)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestCreateVisit_SlotOccupiedByConfirmedVisit(t *testing.T) {
	instant := testDay.Add(9*time.Hour + 30*time.Minute)
	visits := &mockVisitRepository{
		getByPropertyWithFilterFunc: func(ctx context.Context, filter domain.PropertyVisitsFilter) ([]*domain.Visit, error) {
			return []*domain.Visit{
				{ID: 7, PropertyID: 10, ScheduledAt: instant, Status: domain.StatusConfirmed},
			}, nil
		},
	}
	windows := &mockWindowRepository{
		getApplicableFunc: func(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error) {
			return testWindows(), nil
		},
	}
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}

	uc := newTestUseCase(visits, windows, properties, &mockAuthorizationRepository{}, &mockNotifyClient{}, &mockTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestCreateVisit_SlotTakenAtCommit(t *testing.T) {
	visits := &mockVisitRepository{
		createConfirmedFunc: func(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
			return nil, visitRepo.ErrSlotTaken
		},
	}
	windows := &mockWindowRepository{
		getApplicableFunc: func(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error) {
			return testWindows(), nil
		},
	}
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}

	uc := newTestUseCase(visits, windows, properties, &mockAuthorizationRepository{}, &mockNotifyClient{}, &mockTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreateVisit_TxRetriesExceeded(t *testing.T) {
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}
	tx := &mockTxManager{
		doSerializableFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fmt.Errorf("%w: serialization conflicts", txmanager.ErrTxRetriesExceeded)
		},
	}

	uc := newTestUseCase(
		&mockVisitRepository{}, &mockWindowRepository{}, properties,
		&mockAuthorizationRepository{}, &mockNotifyClient{}, tx,
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateVisit_NotificationFailureDoesNotAffectResult(t *testing.T) {
	windows := &mockWindowRepository{
		getApplicableFunc: func(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error) {
			return testWindows(), nil
		},
	}
	properties := &mockPropertyRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}

	attempted := make(chan struct{}, 1)
	notify := &mockNotifyClient{
		sendFunc: func(ctx context.Context, req *notifyservice.SendRequest) error {
			attempted <- struct{}{}
			return errors.New("notify service is down")
		},
	}

	uc := newTestUseCase(&mockVisitRepository{}, windows, properties, &mockAuthorizationRepository{}, notify, &mockTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)

	select {
	case <-attempted:
	case <-time.After(time.Second):
		t.Fatal("notification was not attempted")
	}
}
