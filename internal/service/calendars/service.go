package calendars

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars/models"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
	"github.com/m04kA/SMC-ReservationService/pkg/recurrence"
)

// Service сервис для работы с версионируемыми календарями.
// Пара (имя, версия) неизменна после создания: правка либо выделяет
// новую версию, либо перезаписывает содержимое последней.
type Service struct {
	calendarRepo CalendarRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса календарей
func NewService(calendarRepo CalendarRepository, logger Logger) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// CreateVersion создаёт новую версию календаря: max(version)+1 для линейки
// с этим именем, версия 1 для нового имени. Уникальный индекс (name, version)
// закрывает гонку конкурирующих созданий; проигравший повторяет попытку
// со свежим максимумом, до трёх раз.
func (s *Service) CreateVersion(ctx context.Context, req *models.SaveCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("CreateVersion: name=%s", req.Name)

	cal, err := s.buildCalendar(req)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= domain.MaxVersionRetries; attempt++ {
		maxVersion, err := s.calendarRepo.MaxVersion(ctx, cal.Name)
		if err != nil {
			s.logger.Error("CreateVersion: failed to get max version for name=%s: %v", cal.Name, err)
			return nil, fmt.Errorf("%w: CreateVersion - repository error: %v", ErrInternal, err)
		}
		cal.Version = maxVersion + 1

		created, err := s.calendarRepo.Create(ctx, cal)
		if err == nil {
			s.logger.Info("CreateVersion: created calendar id=%d name=%s version=%d",
				created.ID, created.Name, created.Version)
			return models.FromDomainCalendar(created), nil
		}
		if errors.Is(err, calendarRepo.ErrVersionConflict) {
			s.logger.Warn("CreateVersion: version conflict for name=%s version=%d, attempt %d/%d",
				cal.Name, cal.Version, attempt, domain.MaxVersionRetries)
			continue
		}
		s.logger.Error("CreateVersion: failed to create calendar name=%s: %v", cal.Name, err)
		return nil, fmt.Errorf("%w: CreateVersion - repository error: %v", ErrInternal, err)
	}

	s.logger.Error("CreateVersion: exhausted retries for name=%s", cal.Name)
	return nil, ErrVersionConflict
}

// OverwriteLatest перезаписывает содержимое последней версии линейки,
// сохраняя её идентичность (имя и номер версии). Для нового имени
// перезаписывать нечего — создаётся версия 1.
func (s *Service) OverwriteLatest(ctx context.Context, req *models.SaveCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("OverwriteLatest: name=%s", req.Name)

	cal, err := s.buildCalendar(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.calendarRepo.ReplaceLatest(ctx, cal.Name, cal)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Info("OverwriteLatest: no existing versions for name=%s, creating version 1", cal.Name)
			return s.CreateVersion(ctx, req)
		}
		s.logger.Error("OverwriteLatest: failed to replace latest for name=%s: %v", cal.Name, err)
		return nil, fmt.Errorf("%w: OverwriteLatest - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("OverwriteLatest: replaced calendar id=%d name=%s version=%d",
		updated.ID, updated.Name, updated.Version)
	return models.FromDomainCalendar(updated), nil
}

// GetByID получает календарь по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.CalendarResponse, error) {
	s.logger.Info("GetByID: fetching calendar id=%d", id)

	cal, err := s.calendarRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("GetByID: calendar id=%d not found", id)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("GetByID: repository error for calendar id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCalendar(cal), nil
}

// GetByNameVersion получает конкретную версию календаря
func (s *Service) GetByNameVersion(ctx context.Context, name string, version int) (*models.CalendarResponse, error) {
	s.logger.Info("GetByNameVersion: fetching calendar name=%s version=%d", name, version)

	cal, err := s.calendarRepo.GetByNameVersion(ctx, name, version)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("GetByNameVersion: calendar name=%s version=%d not found", name, version)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("GetByNameVersion: repository error for name=%s version=%d: %v", name, version, err)
		return nil, fmt.Errorf("%w: GetByNameVersion - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCalendar(cal), nil
}

// List получает список календарей с опциональными фильтрами
func (s *Service) List(ctx context.Context, req *models.ListCalendarsRequest) (*models.CalendarListResponse, error) {
	s.logger.Info("List: fetching calendars, name=%v category=%v active=%v", req.Name, req.Category, req.Active)

	var category *domain.CalendarCategory
	if req.Category != nil {
		c := domain.CalendarCategory(*req.Category)
		if !c.IsValid() {
			s.logger.Warn("List: invalid category=%s", *req.Category)
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
		category = &c
	}

	cals, err := s.calendarRepo.List(ctx, req.Name, category, req.Active)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d calendars", len(cals))
	return models.FromDomainCalendars(cals), nil
}

// SetActive включает или выключает календарь. Выключенный календарь
// сохраняется в истории, но исключается из листингов по умолчанию.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	s.logger.Info("SetActive: calendar id=%d active=%v", id, active)

	if err := s.calendarRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("SetActive: calendar id=%d not found", id)
			return ErrCalendarNotFound
		}
		s.logger.Error("SetActive: repository error for calendar id=%d: %v", id, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	return nil
}

// buildCalendar валидирует запрос и собирает domain модель
func (s *Service) buildCalendar(req *models.SaveCalendarRequest) (*domain.Calendar, error) {
	if err := validateSaveRequest(req); err != nil {
		s.logger.Warn("buildCalendar: validation failed for name=%s: %v", req.Name, err)
		return nil, err
	}

	cal, err := req.ToDomainCalendar()
	if err != nil {
		s.logger.Warn("buildCalendar: conversion failed for name=%s: %v", req.Name, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return cal, nil
}

// validateSaveRequest валидирует запрос на сохранение календаря
func validateSaveRequest(req *models.SaveCalendarRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if req.Category != "" && !domain.CalendarCategory(req.Category).IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	if req.LeadTime != nil && req.LeadTime.MinDays != nil && req.LeadTime.MaxDays != nil {
		if *req.LeadTime.MinDays > *req.LeadTime.MaxDays {
			return fmt.Errorf("%w: lead time minDays exceeds maxDays", ErrInvalidInput)
		}
	}
	if req.LeadTime != nil {
		if req.LeadTime.MinDays != nil && *req.LeadTime.MinDays < 0 {
			return fmt.Errorf("%w: lead time minDays is negative", ErrInvalidInput)
		}
		if req.LeadTime.MaxDays != nil && *req.LeadTime.MaxDays < 0 {
			return fmt.Errorf("%w: lead time maxDays is negative", ErrInvalidInput)
		}
	}

	if req.Cancellation != nil {
		if req.Cancellation.NoticeHours != nil && *req.Cancellation.NoticeHours < 0 {
			return fmt.Errorf("%w: cancellation noticeHours is negative", ErrInvalidInput)
		}
		if req.Cancellation.Fee != nil && *req.Cancellation.Fee < 0 {
			return fmt.Errorf("%w: cancellation fee is negative", ErrInvalidInput)
		}
	}

	if err := recurrence.Validate(req.RecurringBlackouts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, h := range req.Holidays {
		if h.MinNights < 1 {
			return fmt.Errorf("%w: holiday %s minNights must be at least 1", ErrInvalidInput, h.Date)
		}
	}

	validKeys := make(map[string]bool, 7)
	for _, k := range dateutil.WeekdayKeys() {
		validKeys[k] = true
	}
	for k, v := range req.MinStayByWeekday {
		if !validKeys[k] {
			return fmt.Errorf("%w: unknown weekday key %q", ErrInvalidInput, k)
		}
		if v < 1 {
			return fmt.Errorf("%w: min stay for %s must be at least 1", ErrInvalidInput, k)
		}
	}

	return nil
}
