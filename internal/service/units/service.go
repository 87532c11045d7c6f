package units

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
	unitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/unit"
	"github.com/m04kA/SMC-ReservationService/internal/service/units/models"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// Service сервис для работы с юнитами и их привязками к календарям
type Service struct {
	unitRepo     UnitRepository
	calendarRepo CalendarRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса юнитов
func NewService(unitRepo UnitRepository, calendarRepo CalendarRepository, logger Logger) *Service {
	return &Service{
		unitRepo:     unitRepo,
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// Create создает новый юнит в рамках тенанта
func (s *Service) Create(ctx context.Context, req *models.CreateUnitRequest) (*models.UnitResponse, error) {
	s.logger.Info("Create: tenant=%s, unit_key=%s", req.TenantID, req.UnitKey)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	unit := &domain.Unit{
		TenantID:   req.TenantID,
		UnitKey:    req.UnitKey,
		Name:       req.Name,
		UnitNumber: req.UnitNumber,
		Rate:       req.Rate,
		Currency:   req.Currency,
		Active:     true,
	}
	if unit.Currency == "" {
		unit.Currency = domain.DefaultCurrency
	}

	created, err := s.unitRepo.Create(ctx, unit)
	if err != nil {
		if errors.Is(err, unitRepo.ErrDuplicateUnitKey) {
			s.logger.Warn("Create: duplicate unit key %s for tenant %s", req.UnitKey, req.TenantID)
			return nil, ErrDuplicateUnitKey
		}
		s.logger.Error("Create: repository error for tenant=%s key=%s: %v", req.TenantID, req.UnitKey, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created unit id=%d tenant=%s key=%s", created.ID, req.TenantID, req.UnitKey)
	return models.FromDomainUnit(created), nil
}

// GetByID получает юнит по ID с проверкой принадлежности тенанту
func (s *Service) GetByID(ctx context.Context, tenantID string, id int64) (*models.UnitResponse, error) {
	s.logger.Info("GetByID: fetching unit id=%d for tenant=%s", id, tenantID)

	unit, err := s.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainUnit(unit), nil
}

// List получает все юниты тенанта
func (s *Service) List(ctx context.Context, tenantID string) (*models.UnitListResponse, error) {
	s.logger.Info("List: fetching units for tenant=%s", tenantID)

	units, err := s.unitRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d units for tenant=%s", len(units), tenantID)
	return models.FromDomainUnits(units), nil
}

// AddCalendarLink привязывает версию календаря к юниту с effective-даты.
// Имя и версия календаря денормализуются в ссылку, чтобы листинги юнита
// не требовали join. Привязки с одинаковой effective-датой запрещены —
// резолвер требует различимых дат.
func (s *Service) AddCalendarLink(ctx context.Context, tenantID string, unitID int64, req *models.AddLinkRequest) (*models.UnitResponse, error) {
	s.logger.Info("AddCalendarLink: unit id=%d, calendar id=%d, effective=%s", unitID, req.CalendarID, req.EffectiveDate)

	effectiveDate, err := dateutil.Parse(req.EffectiveDate)
	if err != nil {
		s.logger.Warn("AddCalendarLink: invalid effective date %q: %v", req.EffectiveDate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	unit, err := s.getOwned(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}

	cal, err := s.calendarRepo.GetByID(ctx, req.CalendarID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("AddCalendarLink: calendar id=%d not found", req.CalendarID)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("AddCalendarLink: failed to get calendar id=%d: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: AddCalendarLink - repository error: %v", ErrInternal, err)
	}

	link := domain.CalendarLink{
		CalendarID:      cal.ID,
		CalendarName:    cal.Name,
		CalendarVersion: cal.Version,
		EffectiveDate:   effectiveDate,
	}

	if err := s.unitRepo.AddCalendarLink(ctx, unit.ID, link); err != nil {
		if errors.Is(err, unitRepo.ErrDuplicateLink) {
			s.logger.Warn("AddCalendarLink: duplicate link for unit id=%d effective=%s", unitID, req.EffectiveDate)
			return nil, ErrDuplicateLink
		}
		s.logger.Error("AddCalendarLink: repository error for unit id=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: AddCalendarLink - repository error: %v", ErrInternal, err)
	}

	updated, err := s.unitRepo.GetByID(ctx, unit.ID)
	if err != nil {
		s.logger.Error("AddCalendarLink: failed to reload unit id=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: AddCalendarLink - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddCalendarLink: linked calendar id=%d to unit id=%d from %s", cal.ID, unitID, req.EffectiveDate)
	return models.FromDomainUnit(updated), nil
}

// RemoveCalendarLink снимает привязку календаря с юнита
func (s *Service) RemoveCalendarLink(ctx context.Context, tenantID string, unitID int64, req *models.RemoveLinkRequest) error {
	s.logger.Info("RemoveCalendarLink: unit id=%d, calendar id=%d, effective=%s", unitID, req.CalendarID, req.EffectiveDate)

	effectiveDate, err := dateutil.Parse(req.EffectiveDate)
	if err != nil {
		s.logger.Warn("RemoveCalendarLink: invalid effective date %q: %v", req.EffectiveDate, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	unit, err := s.getOwned(ctx, tenantID, unitID)
	if err != nil {
		return err
	}

	if err := s.unitRepo.RemoveCalendarLink(ctx, unit.ID, req.CalendarID, effectiveDate.String()); err != nil {
		if errors.Is(err, unitRepo.ErrLinkNotFound) {
			s.logger.Warn("RemoveCalendarLink: link not found for unit id=%d calendar id=%d", unitID, req.CalendarID)
			return ErrLinkNotFound
		}
		s.logger.Error("RemoveCalendarLink: repository error for unit id=%d: %v", unitID, err)
		return fmt.Errorf("%w: RemoveCalendarLink - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveCalendarLink: unlinked calendar id=%d from unit id=%d", req.CalendarID, unitID)
	return nil
}

// getOwned получает юнит и проверяет принадлежность тенанту.
// Чужой юнит неотличим от несуществующего.
func (s *Service) getOwned(ctx context.Context, tenantID string, id int64) (*domain.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, unitRepo.ErrUnitNotFound) {
			s.logger.Warn("getOwned: unit id=%d not found", id)
			return nil, ErrUnitNotFound
		}
		s.logger.Error("getOwned: repository error for unit id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if unit.TenantID != tenantID {
		s.logger.Warn("getOwned: unit id=%d belongs to another tenant", id)
		return nil, ErrUnitNotFound
	}

	return unit, nil
}

// validateCreateRequest валидирует запрос на создание юнита
func validateCreateRequest(req *models.CreateUnitRequest) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}
	if req.UnitKey == "" {
		return fmt.Errorf("%w: unitKey is required", ErrInvalidInput)
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Rate < 0 {
		return fmt.Errorf("%w: rate is negative", ErrInvalidInput)
	}
	return nil
}
