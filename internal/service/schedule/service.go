package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	authRepository "github.com/avolkov/PRS-VisitService/internal/infra/storage/authorization"
	propertyRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/property"
	windowRepository "github.com/avolkov/PRS-VisitService/internal/infra/storage/window"
	"github.com/avolkov/PRS-VisitService/internal/service/schedule/models"
	"github.com/avolkov/PRS-VisitService/pkg/phone"
)

// Service сервис для управления расписанием объекта: окна доступности
// и авторизации телефонов. Все операции доступны только администраторам объекта
type Service struct {
	windowRepo   WindowRepository
	authRepo     AuthorizationRepository
	propertyRepo PropertyRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	windowRepo WindowRepository,
	authRepo AuthorizationRepository,
	propertyRepo PropertyRepository,
	logger Logger,
) *Service {
	return &Service{
		windowRepo:   windowRepo,
		authRepo:     authRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// CreateWindow создает новое окно доступности
// Изменение расписания влияет только на будущую генерацию слотов -
// уже подтверждённые визиты остаются в силе
func (s *Service) CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("CreateWindow: creating %s window for property=%d by admin=%d", req.Kind, req.PropertyID, req.AdminID)

	// 1. Проверяем права доступа администратора
	if err := s.checkAdminAccess(ctx, req.PropertyID, req.AdminID); err != nil {
		return nil, err
	}

	// 2. Валидируем и конвертируем окно
	window, err := req.ToDomainWindow()
	if err != nil {
		s.logger.Warn("CreateWindow: validation failed for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Создаем окно
	created, err := s.windowRepo.Create(ctx, window)
	if err != nil {
		if errors.Is(err, windowRepository.ErrDuplicateWindow) {
			s.logger.Warn("CreateWindow: identical window already exists for property=%d", req.PropertyID)
			return nil, ErrWindowAlreadyExists
		}
		s.logger.Error("CreateWindow: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: CreateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWindow: successfully created window id=%d for property=%d", created.ID, req.PropertyID)
	return models.FromDomainWindow(created), nil
}

// GetWindows получает окна доступности объекта
func (s *Service) GetWindows(ctx context.Context, propertyID int64, adminID int64) (*models.WindowListResponse, error) {
	s.logger.Info("GetWindows: fetching windows for property=%d, admin=%d", propertyID, adminID)

	if err := s.checkAdminAccess(ctx, propertyID, adminID); err != nil {
		return nil, err
	}

	windows, err := s.windowRepo.GetByProperty(ctx, propertyID)
	if err != nil {
		s.logger.Error("GetWindows: repository error for property=%d: %v", propertyID, err)
		return nil, fmt.Errorf("%w: GetWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWindows: successfully fetched %d windows for property=%d", len(windows), propertyID)
	return models.FromDomainWindowList(windows), nil
}

// DeleteWindow удаляет окно доступности
// Будущие слоты окна исчезают из выдачи; существующие визиты не отменяются
func (s *Service) DeleteWindow(ctx context.Context, propertyID, windowID int64, adminID int64) error {
	s.logger.Info("DeleteWindow: deleting window id=%d for property=%d by admin=%d", windowID, propertyID, adminID)

	if err := s.checkAdminAccess(ctx, propertyID, adminID); err != nil {
		return err
	}

	if err := s.windowRepo.Delete(ctx, propertyID, windowID); err != nil {
		if errors.Is(err, windowRepository.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window id=%d not found for property=%d", windowID, propertyID)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error for window id=%d: %v", windowID, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWindow: successfully deleted window id=%d", windowID)
	return nil
}

// CreateAuthorization авторизует телефон заявителя для объекта
// Телефон канонизируется перед сохранением, сравнение всегда по канонической форме
func (s *Service) CreateAuthorization(ctx context.Context, req *models.CreateAuthorizationRequest) (*models.AuthorizationResponse, error) {
	s.logger.Info("CreateAuthorization: authorizing phone for property=%d by admin=%d", req.PropertyID, req.AdminID)

	// 1. Проверяем права доступа администратора
	if err := s.checkAdminAccess(ctx, req.PropertyID, req.AdminID); err != nil {
		return nil, err
	}

	// 2. Канонизируем телефон
	canonicalPhone, err := phone.Canonicalize(req.Phone)
	if err != nil {
		s.logger.Warn("CreateAuthorization: invalid phone for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Создаем авторизацию
	created, err := s.authRepo.Create(ctx, &domain.Authorization{
		PropertyID: req.PropertyID,
		Phone:      canonicalPhone,
	})
	if err != nil {
		if errors.Is(err, authRepository.ErrDuplicateAuthorization) {
			s.logger.Warn("CreateAuthorization: phone already authorized for property=%d", req.PropertyID)
			return nil, ErrAuthorizationAlreadyExists
		}
		s.logger.Error("CreateAuthorization: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: CreateAuthorization - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAuthorization: successfully created authorization id=%d for property=%d", created.ID, req.PropertyID)
	return models.FromDomainAuthorization(created), nil
}

// GetAuthorizations получает авторизации объекта
func (s *Service) GetAuthorizations(ctx context.Context, propertyID int64, adminID int64) (*models.AuthorizationListResponse, error) {
	s.logger.Info("GetAuthorizations: fetching authorizations for property=%d, admin=%d", propertyID, adminID)

	if err := s.checkAdminAccess(ctx, propertyID, adminID); err != nil {
		return nil, err
	}

	auths, err := s.authRepo.GetByProperty(ctx, propertyID)
	if err != nil {
		s.logger.Error("GetAuthorizations: repository error for property=%d: %v", propertyID, err)
		return nil, fmt.Errorf("%w: GetAuthorizations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAuthorizations: successfully fetched %d authorizations for property=%d", len(auths), propertyID)
	return models.FromDomainAuthorizationList(auths), nil
}

// DeleteAuthorization отзывает авторизацию телефона
// Уже подтверждённые визиты отозванного телефона остаются в силе
func (s *Service) DeleteAuthorization(ctx context.Context, propertyID, authorizationID int64, adminID int64) error {
	s.logger.Info("DeleteAuthorization: deleting authorization id=%d for property=%d by admin=%d",
		authorizationID, propertyID, adminID)

	if err := s.checkAdminAccess(ctx, propertyID, adminID); err != nil {
		return err
	}

	if err := s.authRepo.Delete(ctx, propertyID, authorizationID); err != nil {
		if errors.Is(err, authRepository.ErrAuthorizationNotFound) {
			s.logger.Warn("DeleteAuthorization: authorization id=%d not found for property=%d", authorizationID, propertyID)
			return ErrAuthorizationNotFound
		}
		s.logger.Error("DeleteAuthorization: repository error for authorization id=%d: %v", authorizationID, err)
		return fmt.Errorf("%w: DeleteAuthorization - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteAuthorization: successfully deleted authorization id=%d", authorizationID)
	return nil
}

// Вспомогательные методы

// checkAdminAccess проверяет, что администратор привязан к объекту
func (s *Service) checkAdminAccess(ctx context.Context, propertyID int64, adminID int64) error {
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("checkAdminAccess: property id=%d not found", propertyID)
			return ErrPropertyNotFound
		}
		s.logger.Error("checkAdminAccess: failed to get property id=%d: %v", propertyID, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to get property: %v", ErrInternal, err)
	}

	admins, err := s.propertyRepo.GetAdministrators(ctx, propertyID)
	if err != nil {
		s.logger.Error("checkAdminAccess: failed to get administrators for property=%d: %v", propertyID, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to get administrators: %v", ErrInternal, err)
	}

	for _, admin := range admins {
		if admin.ID == adminID {
			return nil
		}
	}

	s.logger.Warn("checkAdminAccess: admin=%d is not an administrator of property=%d", adminID, propertyID)
	return ErrAccessDenied
}
