package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/apperr"
	"github.com/shenikar/emergency_dispatch_system/internal/config"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// IncidentRepository определяет контракт для работы с бд инцидентов и журналом статусов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error)
	// AdvanceStatus атомарно меняет статус инцидента и добавляет запись журнала
	// в одной транзакции. Возвращает apperr.Conflict, если статус уже не prevStatus.
	AdvanceStatus(ctx context.Context, id uuid.UUID, prevStatus, newStatus string, closedAt *time.Time, entry *models.HistoryEntry) (*models.Incident, error)
	ListHistory(ctx context.Context, incidentID uuid.UUID) ([]*models.HistoryEntry, error)
	CountReportedSince(ctx context.Context, minutes int) (int, error)
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// CatalogRepository определяет контракт для чтения справочников.
// Справочники администрируются внешним потоком, поэтому только чтение.
type CatalogRepository interface {
	GetEmergencyType(ctx context.Context, id int64) (*models.EmergencyType, error)
	ListEmergencyTypes(ctx context.Context) ([]*models.EmergencyType, error)
	GetService(ctx context.Context, id int64) (*models.ResponseService, error)
	ListServices(ctx context.Context) ([]*models.ResponseService, error)
}

// UserRepository определяет контракт провайдера идентичности
type UserRepository interface {
	ResolveUser(ctx context.Context, id int64) (*models.User, error)
}

// IncidentService определяет контракт координатора жизненного цикла инцидентов
type IncidentService interface {
	CreateIncident(ctx context.Context, incident *models.Incident) error
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error)
	AdvanceStatus(ctx context.Context, id uuid.UUID, newStatus string, actorID int64, changedByID *int64, motive string) (*models.Incident, error)
	ListHistory(ctx context.Context, incidentID uuid.UUID) ([]*models.HistoryEntry, error)
	GetStats(ctx context.Context) (int, error)
}

type incidentService struct {
	repo      IncidentRepository
	catalog   CatalogRepository
	users     UserRepository
	logger    *logrus.Logger
	cfg       *config.Config
	publisher webhook.EventPublisher
}

func NewIncidentService(repo IncidentRepository, catalog CatalogRepository, users UserRepository, logger *logrus.Logger, cfg *config.Config, publisher webhook.EventPublisher) IncidentService {
	return &incidentService{
		repo:      repo,
		catalog:   catalog,
		users:     users,
		logger:    logger,
		cfg:       cfg,
		publisher: publisher,
	}
}

// CreateIncident создает инцидент в начальном статусе reported.
// Создание не является логируемым переходом: первая запись журнала
// появится при первом вызове AdvanceStatus.
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "coordinator",
		"method":  "CreateIncident",
		"code":    incident.Code,
	})
	log.Info("Attempting to create a new incident")

	if (incident.Latitude == nil) != (incident.Longitude == nil) {
		return apperr.Validation("latitude and longitude must be provided together")
	}

	et, err := s.catalog.GetEmergencyType(ctx, incident.EmergencyTypeID)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return apperr.Validation(fmt.Sprintf("emergency type %d does not exist", incident.EmergencyTypeID))
		}
		log.WithError(err).Error("Failed to resolve emergency type")
		return fmt.Errorf("service: could not resolve emergency type: %w", err)
	}
	if !et.Active {
		return apperr.Validation(fmt.Sprintf("emergency type %d is not active", incident.EmergencyTypeID))
	}

	if _, err := s.users.ResolveUser(ctx, incident.ReporterID); err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return apperr.Validation(fmt.Sprintf("reporter %d does not exist", incident.ReporterID))
		}
		log.WithError(err).Error("Failed to resolve reporter")
		return fmt.Errorf("service: could not resolve reporter: %w", err)
	}

	// Приоритет инцидента может переопределять приоритет типа
	if incident.Priority == "" {
		incident.Priority = et.Priority
	}
	if !models.IsValidPriority(incident.Priority) {
		return apperr.Validation(fmt.Sprintf("unknown priority %q", incident.Priority))
	}
	// Метка классификации может расходиться с каноническим именем типа
	if incident.TypeLabel == "" {
		incident.TypeLabel = et.Name
	}

	incident.Status = models.StatusReported
	incident.ClosedAt = nil

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	log.WithField("incident_id", incident.ID).Info("Incident created successfully")
	return nil
}

// GetIncident получает инцидент по ID, сначала из кеша, затем из бд
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "coordinator",
		"method":      "GetIncident",
		"incident_id": id,
	})

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident from cache")
	}
	if cached != nil {
		return cached, nil
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Failed to get incident from repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident, nil
}

// ListIncidents возвращает список инцидентов с пагинацией
func (s *incidentService) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "coordinator",
		"method":    "ListIncidents",
		"page":      page,
		"page_size": pageSize,
	})

	incidents, err := s.repo.ListIncidents(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}

// AdvanceStatus переводит инцидент в новый статус согласно графу переходов.
// Обновление статуса и запись журнала атомарны; при обнаружении конкурентной
// записи операция повторяется один раз.
func (s *incidentService) AdvanceStatus(ctx context.Context, id uuid.UUID, newStatus string, actorID int64, changedByID *int64, motive string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "coordinator",
		"method":      "AdvanceStatus",
		"incident_id": id,
		"new_status":  newStatus,
		"actor_id":    actorID,
	})
	log.Info("Attempting to advance incident status")

	if !models.IsValidStatus(newStatus) {
		return nil, apperr.Validation(fmt.Sprintf("unknown status %q", newStatus))
	}

	if _, err := s.users.ResolveUser(ctx, actorID); err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Failed to resolve actor")
		return nil, fmt.Errorf("service: could not resolve actor: %w", err)
	}

	updated, entry, err := s.tryAdvance(ctx, id, newStatus, actorID, changedByID, motive)
	if apperr.Is(err, apperr.CodeConflict) {
		// Конкурентная запись: перечитываем и повторяем один раз
		log.Warn("Concurrent status update detected, retrying once")
		updated, entry, err = s.tryAdvance(ctx, id, newStatus, actorID, changedByID, motive)
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	// Событие о смене статуса публикуется после фиксации; сбой очереди
	// не откатывает уже применённый переход
	event := webhook.StatusChangeEvent{
		IncidentID:     updated.ID,
		Code:           updated.Code,
		PreviousStatus: entry.PreviousStatus,
		NewStatus:      updated.Status,
		ActorID:        actorID,
		Motive:         motive,
		Timestamp:      time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish status change event")
	}

	log.Info("Incident status advanced successfully")
	return updated, nil
}

// tryAdvance выполняет одну попытку перехода: чтение текущего статуса,
// проверка графа и оптимистичное обновление вместе с записью журнала.
func (s *incidentService) tryAdvance(ctx context.Context, id uuid.UUID, newStatus string, actorID int64, changedByID *int64, motive string) (*models.Incident, *models.HistoryEntry, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if !models.CanTransition(incident.Status, newStatus) {
		return nil, nil, apperr.InvalidTransition(id.String(), incident.Status, newStatus)
	}

	var closedAt *time.Time
	if models.IsTerminalStatus(newStatus) {
		now := time.Now().UTC()
		closedAt = &now
	}

	entry := &models.HistoryEntry{
		IncidentID:     id,
		ActorID:        actorID,
		PreviousStatus: incident.Status,
		NewStatus:      newStatus,
		ChangedByID:    changedByID,
		Motive:         motive,
	}

	updated, err := s.repo.AdvanceStatus(ctx, id, incident.Status, newStatus, closedAt, entry)
	if err != nil {
		if code := apperr.CodeOf(err); code != "" {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("service: could not advance incident status: %w", err)
	}
	return updated, entry, nil
}

// ListHistory возвращает журнал смен статусов инцидента по возрастанию времени
func (s *incidentService) ListHistory(ctx context.Context, incidentID uuid.UUID) ([]*models.HistoryEntry, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "coordinator",
		"method":      "ListHistory",
		"incident_id": incidentID,
	})

	if _, err := s.repo.GetByID(ctx, incidentID); err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Failed to get incident from repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	entries, err := s.repo.ListHistory(ctx, incidentID)
	if err != nil {
		log.WithError(err).Error("Failed to list history from repository")
		return nil, fmt.Errorf("service: could not list history: %w", err)
	}
	return entries, nil
}

// GetStats возвращает количество инцидентов, зарегистрированных за окно времени
func (s *incidentService) GetStats(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "coordinator",
		"method":  "GetStats",
	})

	count, err := s.repo.CountReportedSince(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		log.WithError(err).Error("Failed to get incident stats from repository")
		return 0, fmt.Errorf("service: could not get stats: %w", err)
	}
	return count, nil
}
