package get_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	unitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/unit"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// UseCase use case расчёта стоимости проживания:
// ночная ставка юнита × количество ночей + снапшот условий отмены.
type UseCase struct {
	unitRepo     UnitRepository
	calendarRepo CalendarRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(unitRepo UnitRepository, calendarRepo CalendarRepository, logger Logger) *UseCase {
	return &UseCase{
		unitRepo:     unitRepo,
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// Execute выполняет расчёт стоимости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuote: tenant=%s, unit=%s, check_in=%s, check_out=%s",
		req.TenantID, req.UnitKey, req.CheckIn, req.CheckOut)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetQuote: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем юнит
	unit, err := uc.unitRepo.GetByTenantAndKey(ctx, req.TenantID, req.UnitKey)
	if err != nil {
		if errors.Is(err, unitRepo.ErrUnitNotFound) {
			uc.logger.Warn("GetQuote: unit %s/%s not found", req.TenantID, req.UnitKey)
			return nil, ErrUnitNotFound
		}
		uc.logger.Error("GetQuote: failed to get unit %s/%s: %v", req.TenantID, req.UnitKey, err)
		return nil, fmt.Errorf("%w: failed to get unit: %v", ErrInternal, err)
	}

	// 3. Резолвим привязку календаря на день заезда
	link := domain.ResolveCalendarLink(unit.CalendarLinks, req.CheckIn)
	if link == nil {
		uc.logger.Warn("GetQuote: no calendar effective on %s for unit id=%d", req.CheckIn, unit.ID)
		return nil, ErrNoCalendarForDate
	}

	// 4. Загружаем календарь — источник условий отмены
	cal, err := uc.calendarRepo.GetByID(ctx, link.CalendarID)
	if err != nil {
		uc.logger.Error("GetQuote: failed to get calendar id=%d: %v", link.CalendarID, err)
		return nil, ErrCalendarNotFound
	}

	// 5. Считаем стоимость
	nights := dateutil.Nights(req.CheckIn, req.CheckOut)
	total := unit.Rate * float64(nights)

	uc.logger.Info("GetQuote: unit id=%d, nights=%d, total=%.2f %s", unit.ID, nights, total, unit.Currency)

	return &Response{
		UnitID:          unit.ID,
		UnitKey:         unit.UnitKey,
		UnitName:        unit.Name,
		CalendarID:      cal.ID,
		CalendarName:    cal.Name,
		CalendarVersion: cal.Version,
		Currency:        unit.Currency,
		Nightly:         unit.Rate,
		Nights:          nights,
		Total:           total,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		CancelHours:     cal.Cancellation.NoticeHours,
		CancelFee:       cal.Cancellation.Fee,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}
	if req.UnitKey == "" {
		return fmt.Errorf("%w: unitKey is required", ErrInvalidInput)
	}
	if req.CheckIn.IsZero() || req.CheckIn.Validate() != nil {
		return fmt.Errorf("%w: invalid checkIn", ErrInvalidInput)
	}
	if req.CheckOut.IsZero() || req.CheckOut.Validate() != nil {
		return fmt.Errorf("%w: invalid checkOut", ErrInvalidInput)
	}
	if req.CheckOut.Before(req.CheckIn) {
		return fmt.Errorf("%w: checkOut is before checkIn", ErrInvalidInput)
	}
	return nil
}
