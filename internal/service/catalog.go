package service

import (
	"context"
	"fmt"

	"github.com/shenikar/emergency_dispatch_system/internal/apperr"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
)

// CatalogService определяет контракт чтения справочников для слоя представления
type CatalogService interface {
	GetEmergencyType(ctx context.Context, id int64) (*models.EmergencyType, error)
	ListEmergencyTypes(ctx context.Context) ([]*models.EmergencyType, error)
	GetService(ctx context.Context, id int64) (*models.ResponseService, error)
	ListServices(ctx context.Context) ([]*models.ResponseService, error)
}

type catalogService struct {
	repo   CatalogRepository
	logger *logrus.Logger
}

func NewCatalogService(repo CatalogRepository, logger *logrus.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		logger: logger,
	}
}

func (s *catalogService) GetEmergencyType(ctx context.Context, id int64) (*models.EmergencyType, error) {
	et, err := s.repo.GetEmergencyType(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		s.logger.WithError(err).Error("Failed to get emergency type from repository")
		return nil, fmt.Errorf("service: could not get emergency type: %w", err)
	}
	return et, nil
}

func (s *catalogService) ListEmergencyTypes(ctx context.Context) ([]*models.EmergencyType, error) {
	types, err := s.repo.ListEmergencyTypes(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list emergency types from repository")
		return nil, fmt.Errorf("service: could not list emergency types: %w", err)
	}
	return types, nil
}

func (s *catalogService) GetService(ctx context.Context, id int64) (*models.ResponseService, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		s.logger.WithError(err).Error("Failed to get response service from repository")
		return nil, fmt.Errorf("service: could not get response service: %w", err)
	}
	return svc, nil
}

func (s *catalogService) ListServices(ctx context.Context) ([]*models.ResponseService, error) {
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list response services from repository")
		return nil, fmt.Errorf("service: could not list response services: %w", err)
	}
	return services, nil
}
