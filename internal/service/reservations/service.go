package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	unitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/unit"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис для чтения и отмены бронирований.
// Создание бронирований идёт через отдельный usecase с транзакцией.
type Service struct {
	reservationRepo ReservationRepository
	unitRepo        UnitRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, unitRepo UnitRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		unitRepo:        unitRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID с проверкой принадлежности тенанту
func (s *Service) GetByID(ctx context.Context, tenantID string, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for tenant=%s", id, tenantID)

	res, err := s.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainReservation(res), nil
}

// GetByUnit получает бронирования юнита, опционально фильтруя по статусу
func (s *Service) GetByUnit(ctx context.Context, tenantID string, req *models.GetUnitReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetByUnit: fetching reservations for unit id=%d, status=%v", req.UnitID, req.Status)

	if _, err := s.ownedUnit(ctx, tenantID, req.UnitID); err != nil {
		return nil, err
	}

	var status *domain.ReservationStatus
	if req.Status != nil {
		st, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetByUnit: invalid status=%s for unit id=%d", *req.Status, req.UnitID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	items, err := s.reservationRepo.GetByUnitID(ctx, req.UnitID, status)
	if err != nil {
		s.logger.Error("GetByUnit: repository error for unit id=%d: %v", req.UnitID, err)
		return nil, fmt.Errorf("%w: GetByUnit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByUnit: found %d reservations for unit id=%d", len(items), req.UnitID)
	return models.FromDomainReservations(items), nil
}

// Cancel отменяет бронирование. Отменённое бронирование освобождает даты:
// exclusion-ограничение и поиск пересечений учитывают только hold и confirmed.
func (s *Service) Cancel(ctx context.Context, tenantID string, id int64, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d for tenant=%s", id, tenantID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for reservation id=%d", id)
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	res, err := s.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d in status %s cannot be cancelled", id, res.Status)
		return nil, ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrCannotCancel) {
			// Состояние поменялось между чтением и отменой
			s.logger.Warn("Cancel: reservation id=%d can no longer be cancelled", id)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to reload reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return models.FromDomainReservation(cancelled), nil
}

// getOwned получает бронирование и проверяет принадлежность тенанту
// через юнит. Чужое бронирование неотличимо от несуществующего.
func (s *Service) getOwned(ctx context.Context, tenantID string, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("getOwned: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("getOwned: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if _, err := s.ownedUnit(ctx, tenantID, res.UnitID); err != nil {
		if errors.Is(err, ErrUnitNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	return res, nil
}

// ownedUnit получает юнит и проверяет принадлежность тенанту
func (s *Service) ownedUnit(ctx context.Context, tenantID string, unitID int64) (*domain.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, unitRepo.ErrUnitNotFound) {
			s.logger.Warn("ownedUnit: unit id=%d not found", unitID)
			return nil, ErrUnitNotFound
		}
		s.logger.Error("ownedUnit: repository error for unit id=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if unit.TenantID != tenantID {
		s.logger.Warn("ownedUnit: unit id=%d belongs to another tenant", unitID)
		return nil, ErrUnitNotFound
	}

	return unit, nil
}
