package visits

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	propertyRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/property"
	visitRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/visit"
	"github.com/avolkov/PRS-VisitService/internal/service/visits/models"
	"github.com/avolkov/PRS-VisitService/pkg/phone"
)

// Service сервис чтения визитов и доступных заявителю объектов
type Service struct {
	visitRepo    VisitRepository
	propertyRepo PropertyRepository
	authRepo     AuthorizationRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса визитов
func NewService(
	visitRepo VisitRepository,
	propertyRepo PropertyRepository,
	authRepo AuthorizationRepository,
	logger Logger,
) *Service {
	return &Service{
		visitRepo:    visitRepo,
		propertyRepo: propertyRepo,
		authRepo:     authRepo,
		logger:       logger,
	}
}

// GetByToken получает визит по access token
// Токен - единственное доказательство владения, отдельной проверки прав нет
func (s *Service) GetByToken(ctx context.Context, token string) (*models.VisitResponse, error) {
	s.logger.Info("GetByToken: fetching visit by token")

	if token == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidInput)
	}

	visit, err := s.visitRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			s.logger.Warn("GetByToken: no visit owns the token")
			return nil, ErrVisitNotFound
		}
		s.logger.Error("GetByToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByToken - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByToken: successfully fetched visit id=%d", visit.ID)
	return models.FromDomainVisit(visit), nil
}

// GetVisitorVisits получает историю визитов заявителя по телефону
// Опционально фильтрует по статусу
func (s *Service) GetVisitorVisits(ctx context.Context, req *models.GetVisitorVisitsRequest) (*models.VisitListResponse, error) {
	s.logger.Info("GetVisitorVisits: fetching visits, status=%v", req.Status)

	canonicalPhone, err := phone.Canonicalize(req.Phone)
	if err != nil {
		s.logger.Warn("GetVisitorVisits: invalid phone: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var domainStatus *domain.VisitStatus
	if req.Status != nil {
		status, err := models.ToDomainVisitStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetVisitorVisits: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	visits, err := s.visitRepo.GetByPhone(ctx, canonicalPhone, domainStatus)
	if err != nil {
		s.logger.Error("GetVisitorVisits: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetVisitorVisits - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVisitorVisits: successfully fetched %d visits", len(visits))
	return models.FromDomainVisitList(visits), nil
}

// GetPropertyVisits получает визиты объекта недвижимости с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных визитов
// Доступно только администраторам объекта
//
// Примеры использования:
// - Все будущие confirmed-визиты: указать только PropertyID
// - Визиты на дату: StartDate и EndDate указывают на одну дату
// - Включая отменённые и завершённые: IncludeInactive = true
func (s *Service) GetPropertyVisits(ctx context.Context, req *models.GetPropertyVisitsRequest) (*models.VisitListResponse, error) {
	logMsg := fmt.Sprintf("GetPropertyVisits: fetching visits for property=%d, admin=%d", req.PropertyID, req.AdminID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа администратора
	if err := s.checkAdminAccess(ctx, req.PropertyID, req.AdminID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPropertyVisits: invalid filter for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	visits, err := s.visitRepo.GetByPropertyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPropertyVisits: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: GetPropertyVisits - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPropertyVisits: successfully fetched %d visits for property=%d", len(visits), req.PropertyID)
	return models.FromDomainVisitList(visits), nil
}

// GetAccessibleProperties получает объекты, для которых телефон заявителя авторизован
// Пустой список - валидный ответ: телефон никому не известен
func (s *Service) GetAccessibleProperties(ctx context.Context, rawPhone string) (*models.PropertyListResponse, error) {
	s.logger.Info("GetAccessibleProperties: fetching accessible properties")

	canonicalPhone, err := phone.Canonicalize(rawPhone)
	if err != nil {
		s.logger.Warn("GetAccessibleProperties: invalid phone: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ids, err := s.authRepo.GetPropertyIDs(ctx, canonicalPhone)
	if err != nil {
		s.logger.Error("GetAccessibleProperties: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAccessibleProperties - repository error: %v", ErrInternal, err)
	}

	if len(ids) == 0 {
		return models.FromDomainPropertyList(nil), nil
	}

	properties, err := s.propertyRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("GetAccessibleProperties: failed to get properties: %v", err)
		return nil, fmt.Errorf("%w: GetAccessibleProperties - failed to get properties: %v", ErrInternal, err)
	}

	s.logger.Info("GetAccessibleProperties: successfully fetched %d properties", len(properties))
	return models.FromDomainPropertyList(properties), nil
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
