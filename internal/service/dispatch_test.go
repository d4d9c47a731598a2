package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/apperr"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestDispatchService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestDispatchService(t *testing.T) (DispatchService, *mocks.MockDispatchRepository, *mocks.MockIncidentRepository, *mocks.MockCatalogRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockDispatchRepository(ctrl)
	incidentsMock := mocks.NewMockIncidentRepository(ctrl)
	catalogMock := mocks.NewMockCatalogRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewDispatchService(repoMock, incidentsMock, catalogMock, logger)
	return service, repoMock, incidentsMock, catalogMock
}

func TestCreateDispatch_Success(t *testing.T) {
	// Подготовка
	service, repoMock, incidentsMock, catalogMock := newTestDispatchService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	arrived := time.Now().UTC()
	minutes := 10
	score := 4
	dispatch := &models.Dispatch{
		IncidentID: incidentID,
		ServiceID:  2,
		// Поля суб-жизненного цикла, пришедшие извне, должны быть сброшены
		Status:          models.DispatchCompleted,
		ArrivedAt:       &arrived,
		CompletedAt:     &arrived,
		ResponseMinutes: &minutes,
		QualityScore:    &score,
	}

	// Ожидания
	incidentsMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(&models.Incident{ID: incidentID, Status: models.StatusDispatched}, nil).
		Times(1)
	catalogMock.EXPECT().
		GetService(ctx, int64(2)).
		Return(&models.ResponseService{ID: 2, Name: "Пожарная часть №1", Active: true}, nil).
		Times(1)
	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, d *models.Dispatch) error {
			d.ID = uuid.New()
			return nil
		}).Times(1)

	// Действие
	err := service.CreateDispatch(ctx, dispatch)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.DispatchAssigned, dispatch.Status)
	assert.False(t, dispatch.AssignedAt.IsZero())
	assert.Nil(t, dispatch.ArrivedAt)
	assert.Nil(t, dispatch.CompletedAt)
	assert.Nil(t, dispatch.ResponseMinutes)
	assert.Nil(t, dispatch.QualityScore)
}

func TestCreateDispatch_TerminalIncident(t *testing.T) {
	// Подготовка
	service, _, incidentsMock, _ := newTestDispatchService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	dispatch := &models.Dispatch{IncidentID: incidentID, ServiceID: 2}

	// Ожидания
	incidentsMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(&models.Incident{ID: incidentID, Status: models.StatusResolved}, nil).
		Times(1)

	// Действие
	err := service.CreateDispatch(ctx, dispatch)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
}

func TestCreateDispatch_IncidentNotFound(t *testing.T) {
	// Подготовка
	service, _, incidentsMock, _ := newTestDispatchService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	dispatch := &models.Dispatch{IncidentID: incidentID, ServiceID: 2}

	// Ожидания
	incidentsMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(nil, apperr.NotFound("incident", incidentID.String())).
		Times(1)

	// Действие
	err := service.CreateDispatch(ctx, dispatch)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestCreateDispatch_InactiveService(t *testing.T) {
	// Подготовка
	service, _, incidentsMock, catalogMock := newTestDispatchService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	dispatch := &models.Dispatch{IncidentID: incidentID, ServiceID: 2}

	// Ожидания
	incidentsMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(&models.Incident{ID: incidentID, Status: models.StatusTriaged}, nil).
		Times(1)
	catalogMock.EXPECT().
		GetService(ctx, int64(2)).
		Return(&models.ResponseService{ID: 2, Active: false}, nil).
		Times(1)

	// Действие
	err := service.CreateDispatch(ctx, dispatch)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestCreateDispatch_CapacityExceededIsAdvisory(t *testing.T) {
	// Подготовка
	service, repoMock, incidentsMock, catalogMock := newTestDispatchService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	capacity := 3
	dispatch := &models.Dispatch{IncidentID: incidentID, ServiceID: 2}

	// Ожидания
	incidentsMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(&models.Incident{ID: incidentID, Status: models.StatusTriaged}, nil).
		Times(1)
	catalogMock.EXPECT().
		GetService(ctx, int64(2)).
		Return(&models.ResponseService{ID: 2, Active: true, Capacity: &capacity}, nil).
		Times(1)
	// Открытых назначений больше заявленной ёмкости
	repoMock.EXPECT().CountOpenByService(ctx, int64(2)).Return(5, nil).Times(1)
	// Назначение создаётся несмотря на превышение
	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	err := service.CreateDispatch(ctx, dispatch)

	// Проверки: ёмкость носит справочный характер и не блокирует назначение
	require.NoError(t, err)
}

func TestRecordArrival_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	dispatchID := uuid.New()
	assignedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	arrivedAt := assignedAt.Add(7 * time.Minute)
	existing := &models.Dispatch{
		ID:         dispatchID,
		Status:     models.DispatchAssigned,
		AssignedAt: assignedAt,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, dispatchID).Return(existing, nil).Times(1)
	repoMock.EXPECT().
		UpdateStatus(ctx, gomock.Any(), models.DispatchAssigned).
		Do(func(ctx context.Context, d *models.Dispatch, prevStatus string) {
			assert.Equal(t, models.DispatchEnRoute, d.Status)
			require.NotNil(t, d.ResponseMinutes)
			assert.Equal(t, 7, *d.ResponseMinutes)
		}).Return(nil).Times(1)

	// Действие
	updated, err := service.RecordArrival(ctx, dispatchID, arrivedAt)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.DispatchEnRoute, updated.Status)
	require.NotNil(t, updated.ArrivedAt)
	assert.Equal(t, arrivedAt, *updated.ArrivedAt)
	require.NotNil(t, updated.ResponseMinutes)
	assert.Equal(t, 7, *updated.ResponseMinutes)
}

func TestRecordArrival_AlreadyEnRoute(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	dispatchID := uuid.New()
	existing := &models.Dispatch{ID: dispatchID, Status: models.DispatchEnRoute}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, dispatchID).Return(existing, nil).Times(1)
	repoMock.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие: повторная фиксация прибытия
	_, err := service.RecordArrival(ctx, dispatchID, time.Now().UTC())

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
}

func TestRecordArrival_BeforeAssignment(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	dispatchID := uuid.New()
	assignedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	existing := &models.Dispatch{ID: dispatchID, Status: models.DispatchAssigned, AssignedAt: assignedAt}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, dispatchID).Return(existing, nil).Times(1)

	// Действие: прибытие раньше назначения
	_, err := service.RecordArrival(ctx, dispatchID, assignedAt.Add(-time.Minute))

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
}

func TestCompleteDispatch_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	dispatchID := uuid.New()
	assignedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	arrivedAt := assignedAt.Add(7 * time.Minute)
	completedAt := arrivedAt.Add(30 * time.Minute)
	score := 5
	existing := &models.Dispatch{
		ID:         dispatchID,
		Status:     models.DispatchEnRoute,
		AssignedAt: assignedAt,
		ArrivedAt:  &arrivedAt,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, dispatchID).Return(existing, nil).Times(1)
	repoMock.EXPECT().UpdateStatus(ctx, gomock.Any(), models.DispatchEnRoute).Return(nil).Times(1)

	// Действие
	updated, err := service.CompleteDispatch(ctx, dispatchID, completedAt, &score)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.DispatchCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, completedAt, *updated.CompletedAt)
	require.NotNil(t, updated.QualityScore)
	assert.Equal(t, 5, *updated.QualityScore)
}

func TestCompleteDispatch_QualityScoreOutOfRange(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	dispatchID := uuid.New()
	score := 6

	// Ожидания: оценка проверяется до обращения к репозиторию
	repoMock.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := service.CompleteDispatch(ctx, dispatchID, time.Now().UTC(), &score)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestCompleteDispatch_FromAssigned(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	dispatchID := uuid.New()
	existing := &models.Dispatch{ID: dispatchID, Status: models.DispatchAssigned}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, dispatchID).Return(existing, nil).Times(1)

	// Действие: завершение без фиксации прибытия
	_, err := service.CompleteDispatch(ctx, dispatchID, time.Now().UTC(), nil)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
}

func TestCompleteDispatch_BeforeArrival(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	dispatchID := uuid.New()
	arrivedAt := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	existing := &models.Dispatch{ID: dispatchID, Status: models.DispatchEnRoute, ArrivedAt: &arrivedAt}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, dispatchID).Return(existing, nil).Times(1)

	// Действие: завершение раньше прибытия
	_, err := service.CompleteDispatch(ctx, dispatchID, arrivedAt.Add(-time.Minute), nil)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
}

func TestCancelDispatch_FromEnRoute(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	dispatchID := uuid.New()
	existing := &models.Dispatch{ID: dispatchID, Status: models.DispatchEnRoute}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, dispatchID).Return(existing, nil).Times(1)
	repoMock.EXPECT().UpdateStatus(ctx, gomock.Any(), models.DispatchEnRoute).Return(nil).Times(1)

	// Действие
	updated, err := service.CancelDispatch(ctx, dispatchID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.DispatchCancelled, updated.Status)
}

func TestCancelDispatch_FromCompleted(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	dispatchID := uuid.New()
	existing := &models.Dispatch{ID: dispatchID, Status: models.DispatchCompleted}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, dispatchID).Return(existing, nil).Times(1)
	repoMock.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := service.CancelDispatch(ctx, dispatchID)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
}

func TestListByIncident_Success(t *testing.T) {
	// Подготовка
	service, repoMock, incidentsMock, _ := newTestDispatchService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expected := []*models.Dispatch{
		{ID: uuid.New(), IncidentID: incidentID, Status: models.DispatchAssigned},
		{ID: uuid.New(), IncidentID: incidentID, Status: models.DispatchCompleted},
	}

	// Ожидания
	incidentsMock.EXPECT().GetByID(ctx, incidentID).Return(&models.Incident{ID: incidentID}, nil).Times(1)
	repoMock.EXPECT().ListByIncident(ctx, incidentID).Return(expected, nil).Times(1)

	// Действие
	dispatches, err := service.ListByIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, dispatches)
}
