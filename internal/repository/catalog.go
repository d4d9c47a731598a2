package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch_system/internal/apperr"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

// CatalogRepository читает справочники типов экстренных ситуаций и служб
// реагирования. Запись в справочники выполняет внешний административный поток.
type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) service.CatalogRepository {
	return &CatalogRepository{
		db: db,
	}
}

// GetEmergencyType возвращает тип экстренной ситуации по id
func (r *CatalogRepository) GetEmergencyType(ctx context.Context, id int64) (*models.EmergencyType, error) {
	et := &models.EmergencyType{}
	query := `
		SELECT id, name, description, priority, active
		FROM emergency_types
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&et.ID,
		&et.Name,
		&et.Description,
		&et.Priority,
		&et.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("emergency type", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to get emergency type by id: %w", err)
	}
	return et, nil
}

// ListEmergencyTypes возвращает все типы экстренных ситуаций
func (r *CatalogRepository) ListEmergencyTypes(ctx context.Context) ([]*models.EmergencyType, error) {
	query := `
		SELECT id, name, description, priority, active
		FROM emergency_types
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list emergency types: %w", err)
	}
	defer rows.Close()

	types := make([]*models.EmergencyType, 0)
	for rows.Next() {
		et := &models.EmergencyType{}
		err := rows.Scan(
			&et.ID,
			&et.Name,
			&et.Description,
			&et.Priority,
			&et.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan emergency type row: %w", err)
		}
		types = append(types, et)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error emergency type iteration: %w", err)
	}
	return types, nil
}

// GetService возвращает службу реагирования по id
func (r *CatalogRepository) GetService(ctx context.Context, id int64) (*models.ResponseService, error) {
	svc := &models.ResponseService{}
	query := `
		SELECT id, name, category, phone, available, address, capacity, schedule, specialty, active
		FROM response_services
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&svc.ID,
		&svc.Name,
		&svc.Category,
		&svc.Phone,
		&svc.Available,
		&svc.Address,
		&svc.Capacity,
		&svc.Schedule,
		&svc.Specialty,
		&svc.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("response service", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to get response service by id: %w", err)
	}
	return svc, nil
}

// ListServices возвращает все службы реагирования
func (r *CatalogRepository) ListServices(ctx context.Context) ([]*models.ResponseService, error) {
	query := `
		SELECT id, name, category, phone, available, address, capacity, schedule, specialty, active
		FROM response_services
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list response services: %w", err)
	}
	defer rows.Close()

	services := make([]*models.ResponseService, 0)
	for rows.Next() {
		svc := &models.ResponseService{}
		err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Category,
			&svc.Phone,
			&svc.Available,
			&svc.Address,
			&svc.Capacity,
			&svc.Schedule,
			&svc.Specialty,
			&svc.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response service row: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error response service iteration: %w", err)
	}
	return services, nil
}
