package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch_system/internal/apperr"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

const dispatchColumns = `
	id,
	incident_id,
	service_id,
	external_ref,
	status,
	assigned_at,
	arrived_at,
	completed_at,
	observations,
	response_minutes,
	quality_score`

type DispatchRepository struct {
	db *pgxpool.Pool
}

func NewDispatchRepository(db *pgxpool.Pool) service.DispatchRepository {
	return &DispatchRepository{
		db: db,
	}
}

func scanDispatch(row pgx.Row) (*models.Dispatch, error) {
	dispatch := &models.Dispatch{}
	err := row.Scan(
		&dispatch.ID,
		&dispatch.IncidentID,
		&dispatch.ServiceID,
		&dispatch.ExternalRef,
		&dispatch.Status,
		&dispatch.AssignedAt,
		&dispatch.ArrivedAt,
		&dispatch.CompletedAt,
		&dispatch.Observations,
		&dispatch.ResponseMinutes,
		&dispatch.QualityScore,
	)
	if err != nil {
		return nil, err
	}
	return dispatch, nil
}

// Create создает новую запись о назначении службы в бд
func (r *DispatchRepository) Create(ctx context.Context, dispatch *models.Dispatch) error {
	query := `
		INSERT INTO dispatches (incident_id, service_id, external_ref, status, assigned_at, observations)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		dispatch.IncidentID,
		dispatch.ServiceID,
		dispatch.ExternalRef,
		dispatch.Status,
		dispatch.AssignedAt,
		dispatch.Observations,
	).Scan(&dispatch.ID)
	if err != nil {
		return fmt.Errorf("failed to create dispatch: %w", err)
	}
	return nil
}

// GetByID возвращает назначение по его UUID
func (r *DispatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dispatch, error) {
	query := fmt.Sprintf(`SELECT %s FROM dispatches WHERE id = $1;`, dispatchColumns)
	dispatch, err := scanDispatch(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("dispatch", id.String())
		}
		return nil, fmt.Errorf("failed to get dispatch by id: %w", err)
	}
	return dispatch, nil
}

// ListByIncident возвращает все назначения инцидента по возрастанию времени назначения
func (r *DispatchRepository) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*models.Dispatch, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM dispatches
		WHERE incident_id = $1
		ORDER BY assigned_at ASC;
	`, dispatchColumns)
	rows, err := r.db.Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dispatches: %w", err)
	}
	defer rows.Close()

	dispatches := make([]*models.Dispatch, 0)
	for rows.Next() {
		dispatch, err := scanDispatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dispatch row: %w", err)
		}
		dispatches = append(dispatches, dispatch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error dispatch list iteration: %w", err)
	}
	return dispatches, nil
}

// UpdateStatus оптимистично обновляет назначение при совпадении prevStatus
func (r *DispatchRepository) UpdateStatus(ctx context.Context, dispatch *models.Dispatch, prevStatus string) error {
	query := `
		UPDATE dispatches SET
			status = $1,
			arrived_at = $2,
			completed_at = $3,
			observations = $4,
			response_minutes = $5,
			quality_score = $6
		WHERE id = $7 AND status = $8;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		dispatch.Status,
		dispatch.ArrivedAt,
		dispatch.CompletedAt,
		dispatch.Observations,
		dispatch.ResponseMinutes,
		dispatch.QualityScore,
		dispatch.ID,
		prevStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update dispatch: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if checkErr := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM dispatches WHERE id = $1);`, dispatch.ID).Scan(&exists); checkErr != nil {
			return fmt.Errorf("failed to check dispatch existence: %w", checkErr)
		}
		if !exists {
			return apperr.NotFound("dispatch", dispatch.ID.String())
		}
		return apperr.Conflict("dispatch", dispatch.ID.String())
	}
	return nil
}

// CountOpenByService возвращает количество незавершённых назначений службы
func (r *DispatchRepository) CountOpenByService(ctx context.Context, serviceID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM dispatches
		WHERE service_id = $1 AND status IN ($2, $3);
	`
	var count int
	err := r.db.QueryRow(ctx, query, serviceID, models.DispatchAssigned, models.DispatchEnRoute).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open dispatches: %w", err)
	}
	return count, nil
}
