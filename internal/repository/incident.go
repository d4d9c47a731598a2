package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_dispatch_system/internal/apperr"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

const incidentColumns = `
	id,
	code,
	reporter_id,
	emergency_type_id,
	type_label,
	status,
	location,
	latitude,
	longitude,
	description,
	priority,
	filed_by_id,
	observations,
	reported_at,
	closed_at`

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
	}
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	err := row.Scan(
		&incident.ID,
		&incident.Code,
		&incident.ReporterID,
		&incident.EmergencyTypeID,
		&incident.TypeLabel,
		&incident.Status,
		&incident.Location,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Description,
		&incident.Priority,
		&incident.FiledByID,
		&incident.Observations,
		&incident.ReportedAt,
		&incident.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return incident, nil
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (code, reporter_id, emergency_type_id, type_label, status, location, latitude, longitude, description, priority, filed_by_id, observations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, reported_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.Code,
		incident.ReporterID,
		incident.EmergencyTypeID,
		incident.TypeLabel,
		incident.Status,
		incident.Location,
		incident.Latitude,
		incident.Longitude,
		incident.Description,
		incident.Priority,
		incident.FiledByID,
		incident.Observations,
	).Scan(&incident.ID, &incident.ReportedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := fmt.Sprintf(`SELECT %s FROM incidents WHERE id = $1;`, incidentColumns)
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("incident", id.String())
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// ListIncidents возвращает список инцидентов с пагинацией
func (r *IncidentRepository) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT %s FROM incidents
		ORDER BY reported_at DESC
		LIMIT $1 OFFSET $2;
	`, incidentColumns)
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// AdvanceStatus атомарно меняет статус инцидента и добавляет запись журнала.
// Обновление выполняется с условием на прежний статус: если конкурентная
// запись успела изменить его, возвращается apperr.Conflict и никакие
// изменения не фиксируются.
func (r *IncidentRepository) AdvanceStatus(ctx context.Context, id uuid.UUID, prevStatus, newStatus string, closedAt *time.Time, entry *models.HistoryEntry) (*models.Incident, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updateQuery := fmt.Sprintf(`
		UPDATE incidents SET
			status = $1,
			closed_at = $2
		WHERE id = $3 AND status = $4
		RETURNING %s;
	`, incidentColumns)
	incident, err := scanIncident(tx.QueryRow(ctx, updateQuery, newStatus, closedAt, id, prevStatus))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Либо инцидент исчез, либо статус уже изменён конкурентной записью
			var exists bool
			if checkErr := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM incidents WHERE id = $1);`, id).Scan(&exists); checkErr != nil {
				return nil, fmt.Errorf("failed to check incident existence: %w", checkErr)
			}
			if !exists {
				return nil, apperr.NotFound("incident", id.String())
			}
			return nil, apperr.Conflict("incident", id.String())
		}
		return nil, fmt.Errorf("failed to advance incident status: %w", err)
	}

	historyQuery := `
		INSERT INTO incident_history (incident_id, actor_id, previous_status, new_status, changed_by_id, motive)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, changed_at;
	`
	err = tx.QueryRow(ctx, historyQuery,
		entry.IncidentID,
		entry.ActorID,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.ChangedByID,
		entry.Motive,
	).Scan(&entry.ID, &entry.ChangedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to append history entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status transition: %w", err)
	}
	return incident, nil
}

// ListHistory возвращает журнал статусов инцидента по возрастанию времени,
// при равных метках времени - в порядке вставки
func (r *IncidentRepository) ListHistory(ctx context.Context, incidentID uuid.UUID) ([]*models.HistoryEntry, error) {
	query := `
		SELECT
			id,
			incident_id,
			actor_id,
			previous_status,
			new_status,
			changed_by_id,
			motive,
			changed_at
		FROM incident_history
		WHERE incident_id = $1
		ORDER BY changed_at ASC, seq ASC;
	`
	rows, err := r.db.Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incident history: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.HistoryEntry, 0)
	for rows.Next() {
		entry := &models.HistoryEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.IncidentID,
			&entry.ActorID,
			&entry.PreviousStatus,
			&entry.NewStatus,
			&entry.ChangedByID,
			&entry.Motive,
			&entry.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error history iteration: %w", err)
	}
	return entries, nil
}

// DeleteHistoryEntry удаляет запись журнала. Административная операция вне
// контракта жизненного цикла, сервисным слоем не используется.
func (r *IncidentRepository) DeleteHistoryEntry(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM incident_history WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperr.NotFound("history entry", id.String())
	}
	return nil
}

// CountReportedSince возвращает количество инцидентов, зарегистрированных за окно времени
func (r *IncidentRepository) CountReportedSince(ctx context.Context, minutes int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM incidents
		WHERE reported_at >= NOW() - ($1 * INTERVAL '1 minute');
	`
	var count int
	err := r.db.QueryRow(ctx, query, minutes).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count reported incidents: %w", err)
	}
	return count, nil
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	key := fmt.Sprintf("incident:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	key := fmt.Sprintf("incident:%s", incident.ID.String())
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	// Устанавливаем срок жизни кэша, например, 5 минут
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("incident:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
