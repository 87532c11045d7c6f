package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	unitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/unit"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// UseCase use case проверки доступности юнита на диапазон дат:
// резолв календаря → оценка правил → проверка пересечений.
// Только чтение, без транзакции — итоговую гарантию даёт коммит.
type UseCase struct {
	unitRepo        UnitRepository
	calendarRepo    CalendarRepository
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	unitRepo UnitRepository,
	calendarRepo CalendarRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		unitRepo:        unitRepo,
		calendarRepo:    calendarRepo,
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет проверку доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: tenant=%s, unit=%s, check_in=%s, check_out=%s, mode=%s",
		req.TenantID, req.UnitKey, req.CheckIn, req.CheckOut, req.Mode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}
	mode := normalizeMode(req.Mode)

	// 2. Получаем юнит с привязками календарей
	unit, err := uc.unitRepo.GetByTenantAndKey(ctx, req.TenantID, req.UnitKey)
	if err != nil {
		if errors.Is(err, unitRepo.ErrUnitNotFound) {
			uc.logger.Warn("CheckAvailability: unit %s/%s not found", req.TenantID, req.UnitKey)
			return nil, ErrUnitNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get unit %s/%s: %v", req.TenantID, req.UnitKey, err)
		return nil, fmt.Errorf("%w: failed to get unit: %v", ErrInternal, err)
	}

	unitSummary := &UnitSummary{
		ID:         unit.ID,
		UnitKey:    unit.UnitKey,
		Name:       unit.Name,
		UnitNumber: unit.UnitNumber,
		Rate:       unit.Rate,
		Currency:   unit.Currency,
	}

	// 3. Резолвим привязку календаря, действующую на день заезда
	link := domain.ResolveCalendarLink(unit.CalendarLinks, req.CheckIn)
	if link == nil {
		uc.logger.Warn("CheckAvailability: no calendar effective on %s for unit id=%d", req.CheckIn, unit.ID)
		resp := &Response{
			OK:          false,
			ReasonCodes: []domain.ReasonCode{domain.ReasonNoCalendarForDate},
			Unit:        unitSummary,
		}
		if next, ok := domain.NextEffectiveDate(unit.CalendarLinks, req.CheckIn); ok {
			resp.NextEffectiveFrom = &next
		}
		return resp, nil
	}

	// 4. Загружаем календарь по привязке
	cal, err := uc.calendarRepo.GetByID(ctx, link.CalendarID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get calendar id=%d: %v", link.CalendarID, err)
		return nil, ErrCalendarNotFound
	}

	// 5. Оцениваем правила календаря. Не короткое замыкание:
	// собираются все нарушенные правила сразу.
	endInclusive := req.CheckOut
	if mode == domain.CategoryAppointments || endInclusive.IsZero() {
		endInclusive = req.CheckIn
	}

	decision, err := domain.Evaluate(cal, domain.EvaluationRequest{
		Start:        req.CheckIn,
		EndInclusive: endInclusive,
		Mode:         mode,
		Today:        dateutil.Today(uc.timeProvider.Now()),
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: rule evaluation failed for calendar id=%d: %v", cal.ID, err)
		return nil, fmt.Errorf("%w: rule evaluation failed: %v", ErrInternal, err)
	}

	calendarSummary := &CalendarSummary{
		ID:            cal.ID,
		Name:          cal.Name,
		Version:       cal.Version,
		EffectiveDate: link.EffectiveDate,
		CancelHours:   cal.Cancellation.NoticeHours,
		CancelFee:     cal.Cancellation.Fee,
	}

	nights := dateutil.Nights(req.CheckIn, endInclusive)

	if !decision.OK {
		uc.logger.Info("CheckAvailability: rejected by rules, codes=%v", decision.ReasonCodes)
		return &Response{
			OK:          false,
			ReasonCodes: decision.ReasonCodes,
			Unit:        unitSummary,
			Calendar:    calendarSummary,
			Nights:      nights,
		}, nil
	}

	// 6. Проверяем пересечения с действующими бронированиями
	endExclusive := endInclusive.AddDays(1)
	overlapping, err := uc.reservationRepo.FindOverlapping(
		ctx, unit.ID, req.CheckIn.String(), endExclusive.String(), domain.BlockingStatuses,
	)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to find overlapping reservations for unit id=%d: %v", unit.ID, err)
		return nil, fmt.Errorf("%w: failed to find overlapping reservations: %v", ErrInternal, err)
	}

	if len(overlapping) > 0 {
		conflicts := make([]ConflictInfo, 0, len(overlapping))
		for _, r := range overlapping {
			conflicts = append(conflicts, ConflictInfo{
				ReservationID: r.ID,
				StartDay:      r.StartDay,
				EndDay:        r.EndDay,
				Status:        string(r.Status),
			})
		}
		uc.logger.Info("CheckAvailability: %d overlapping reservations for unit id=%d", len(conflicts), unit.ID)
		return &Response{
			OK:          false,
			ReasonCodes: []domain.ReasonCode{domain.ReasonOverlap},
			Unit:        unitSummary,
			Calendar:    calendarSummary,
			Conflicts:   conflicts,
			Nights:      nights,
		}, nil
	}

	uc.logger.Info("CheckAvailability: unit id=%d available, nights=%d", unit.ID, nights)
	return &Response{
		OK:          true,
		ReasonCodes: []domain.ReasonCode{},
		Unit:        unitSummary,
		Calendar:    calendarSummary,
		Nights:      nights,
	}, nil
}
