package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/apperr"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
)

// DispatchRepository определяет контракт для работы с бд назначений служб
type DispatchRepository interface {
	Create(ctx context.Context, dispatch *models.Dispatch) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dispatch, error)
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*models.Dispatch, error)
	// UpdateStatus оптимистично обновляет назначение при совпадении prevStatus.
	// Возвращает apperr.Conflict, если статус уже изменён конкурентной записью.
	UpdateStatus(ctx context.Context, dispatch *models.Dispatch, prevStatus string) error
	CountOpenByService(ctx context.Context, serviceID int64) (int, error)
}

// DispatchService определяет контракт суб-жизненного цикла назначений
type DispatchService interface {
	CreateDispatch(ctx context.Context, dispatch *models.Dispatch) error
	GetDispatch(ctx context.Context, id uuid.UUID) (*models.Dispatch, error)
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*models.Dispatch, error)
	RecordArrival(ctx context.Context, id uuid.UUID, arrivedAt time.Time) (*models.Dispatch, error)
	CompleteDispatch(ctx context.Context, id uuid.UUID, completedAt time.Time, qualityScore *int) (*models.Dispatch, error)
	CancelDispatch(ctx context.Context, id uuid.UUID) (*models.Dispatch, error)
}

type dispatchService struct {
	repo      DispatchRepository
	incidents IncidentRepository
	catalog   CatalogRepository
	logger    *logrus.Logger
}

func NewDispatchService(repo DispatchRepository, incidents IncidentRepository, catalog CatalogRepository, logger *logrus.Logger) DispatchService {
	return &dispatchService{
		repo:      repo,
		incidents: incidents,
		catalog:   catalog,
		logger:    logger,
	}
}

// CreateDispatch назначает службу реагирования на инцидент
func (s *dispatchService) CreateDispatch(ctx context.Context, dispatch *models.Dispatch) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "CreateDispatch",
		"incident_id": dispatch.IncidentID,
		"service_id":  dispatch.ServiceID,
	})
	log.Info("Attempting to create a dispatch")

	incident, err := s.incidents.GetByID(ctx, dispatch.IncidentID)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return err
		}
		log.WithError(err).Error("Failed to get incident from repository")
		return fmt.Errorf("service: could not get incident: %w", err)
	}
	if models.IsTerminalStatus(incident.Status) {
		return apperr.InvalidState("incident", incident.ID.String(),
			fmt.Sprintf("cannot dispatch to incident in terminal status %q", incident.Status))
	}

	svc, err := s.catalog.GetService(ctx, dispatch.ServiceID)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return apperr.Validation(fmt.Sprintf("response service %d does not exist", dispatch.ServiceID))
		}
		log.WithError(err).Error("Failed to resolve response service")
		return fmt.Errorf("service: could not resolve response service: %w", err)
	}
	if !svc.Active {
		return apperr.Validation(fmt.Sprintf("response service %d is not active", dispatch.ServiceID))
	}

	// Ёмкость службы носит справочный характер: превышение не блокирует
	// назначение, контроль допуска не выполняется
	if svc.Capacity != nil {
		open, err := s.repo.CountOpenByService(ctx, dispatch.ServiceID)
		if err != nil {
			log.WithError(err).Warn("Failed to count open dispatches for service")
		} else if open >= *svc.Capacity {
			log.WithFields(logrus.Fields{
				"open_dispatches": open,
				"capacity":        *svc.Capacity,
			}).Warn("Service declared capacity exceeded")
		}
	}

	if dispatch.AssignedAt.IsZero() {
		dispatch.AssignedAt = time.Now().UTC()
	}
	dispatch.Status = models.DispatchAssigned
	dispatch.ArrivedAt = nil
	dispatch.CompletedAt = nil
	dispatch.ResponseMinutes = nil
	dispatch.QualityScore = nil

	if err := s.repo.Create(ctx, dispatch); err != nil {
		log.WithError(err).Error("Failed to create dispatch in repository")
		return fmt.Errorf("service: could not create dispatch: %w", err)
	}

	log.WithField("dispatch_id", dispatch.ID).Info("Dispatch created successfully")
	return nil
}

// GetDispatch получает назначение по ID
func (s *dispatchService) GetDispatch(ctx context.Context, id uuid.UUID) (*models.Dispatch, error) {
	dispatch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		s.logger.WithError(err).Error("Failed to get dispatch from repository")
		return nil, fmt.Errorf("service: could not get dispatch: %w", err)
	}
	return dispatch, nil
}

// ListByIncident возвращает все назначения инцидента
func (s *dispatchService) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*models.Dispatch, error) {
	if _, err := s.incidents.GetByID(ctx, incidentID); err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	dispatches, err := s.repo.ListByIncident(ctx, incidentID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list dispatches from repository")
		return nil, fmt.Errorf("service: could not list dispatches: %w", err)
	}
	return dispatches, nil
}

// RecordArrival фиксирует прибытие службы на место.
// Время реагирования выводится из пары меток времени и не принимается извне.
func (s *dispatchService) RecordArrival(ctx context.Context, id uuid.UUID, arrivedAt time.Time) (*models.Dispatch, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "RecordArrival",
		"dispatch_id": id,
	})
	log.Info("Attempting to record dispatch arrival")

	dispatch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Failed to get dispatch from repository")
		return nil, fmt.Errorf("service: could not get dispatch: %w", err)
	}

	if dispatch.Status != models.DispatchAssigned {
		return nil, apperr.InvalidState("dispatch", id.String(),
			fmt.Sprintf("arrival can only be recorded from %q, current status is %q", models.DispatchAssigned, dispatch.Status))
	}
	if arrivedAt.Before(dispatch.AssignedAt) {
		return nil, apperr.InvalidState("dispatch", id.String(), "arrival timestamp precedes assignment timestamp")
	}

	prev := dispatch.Status
	minutes := models.ResponseMinutesBetween(dispatch.AssignedAt, arrivedAt)
	dispatch.Status = models.DispatchEnRoute
	dispatch.ArrivedAt = &arrivedAt
	dispatch.ResponseMinutes = &minutes

	if err := s.repo.UpdateStatus(ctx, dispatch, prev); err != nil {
		if code := apperr.CodeOf(err); code != "" {
			return nil, err
		}
		log.WithError(err).Error("Failed to update dispatch in repository")
		return nil, fmt.Errorf("service: could not record arrival: %w", err)
	}

	log.WithField("response_minutes", minutes).Info("Dispatch arrival recorded successfully")
	return dispatch, nil
}

// CompleteDispatch завершает назначение с необязательной оценкой качества
func (s *dispatchService) CompleteDispatch(ctx context.Context, id uuid.UUID, completedAt time.Time, qualityScore *int) (*models.Dispatch, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "CompleteDispatch",
		"dispatch_id": id,
	})
	log.Info("Attempting to complete dispatch")

	if qualityScore != nil && (*qualityScore < models.QualityScoreMin || *qualityScore > models.QualityScoreMax) {
		return nil, apperr.Validation(fmt.Sprintf("quality score must be between %d and %d", models.QualityScoreMin, models.QualityScoreMax))
	}

	dispatch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Failed to get dispatch from repository")
		return nil, fmt.Errorf("service: could not get dispatch: %w", err)
	}

	if dispatch.Status != models.DispatchEnRoute {
		return nil, apperr.InvalidState("dispatch", id.String(),
			fmt.Sprintf("completion can only be recorded from %q, current status is %q", models.DispatchEnRoute, dispatch.Status))
	}
	if dispatch.ArrivedAt != nil && completedAt.Before(*dispatch.ArrivedAt) {
		return nil, apperr.InvalidState("dispatch", id.String(), "completion timestamp precedes arrival timestamp")
	}

	prev := dispatch.Status
	dispatch.Status = models.DispatchCompleted
	dispatch.CompletedAt = &completedAt
	dispatch.QualityScore = qualityScore

	if err := s.repo.UpdateStatus(ctx, dispatch, prev); err != nil {
		if code := apperr.CodeOf(err); code != "" {
			return nil, err
		}
		log.WithError(err).Error("Failed to update dispatch in repository")
		return nil, fmt.Errorf("service: could not complete dispatch: %w", err)
	}

	log.Info("Dispatch completed successfully")
	return dispatch, nil
}

// CancelDispatch отменяет назначение из статусов assigned или en_route
func (s *dispatchService) CancelDispatch(ctx context.Context, id uuid.UUID) (*models.Dispatch, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "CancelDispatch",
		"dispatch_id": id,
	})
	log.Info("Attempting to cancel dispatch")

	dispatch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Failed to get dispatch from repository")
		return nil, fmt.Errorf("service: could not get dispatch: %w", err)
	}

	if dispatch.Status != models.DispatchAssigned && dispatch.Status != models.DispatchEnRoute {
		return nil, apperr.InvalidState("dispatch", id.String(),
			fmt.Sprintf("cancellation is not allowed from status %q", dispatch.Status))
	}

	prev := dispatch.Status
	dispatch.Status = models.DispatchCancelled

	if err := s.repo.UpdateStatus(ctx, dispatch, prev); err != nil {
		if code := apperr.CodeOf(err); code != "" {
			return nil, err
		}
		log.WithError(err).Error("Failed to update dispatch in repository")
		return nil, fmt.Errorf("service: could not cancel dispatch: %w", err)
	}

	log.Info("Dispatch cancelled successfully")
	return dispatch, nil
}
