package service

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/apperr"
	"github.com/shenikar/emergency_dispatch_system/internal/config"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service/mocks"
	"github.com/shenikar/emergency_dispatch_system/internal/webhook"
	webhook_mocks "github.com/shenikar/emergency_dispatch_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestIncidentService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, *mocks.MockIncidentRepository, *mocks.MockCatalogRepository, *mocks.MockUserRepository, *webhook_mocks.MockEventPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)
	catalogMock := mocks.NewMockCatalogRepository(ctrl)
	usersMock := mocks.NewMockUserRepository(ctrl)
	publisherMock := webhook_mocks.NewMockEventPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		StatsTimeWindowMinutes: 60,
	}

	service := NewIncidentService(repoMock, catalogMock, usersMock, logger, cfg, publisherMock)
	return service.(*incidentService), repoMock, catalogMock, usersMock, publisherMock
}

func TestCreateIncident_Success(t *testing.T) {
	// Подготовка
	service, repoMock, catalogMock, usersMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		Code:            "INC-2024-001",
		ReporterID:      7,
		EmergencyTypeID: 3,
		Location:        "ул. Ленина, 10",
		FiledByID:       7,
	}

	// Ожидания
	catalogMock.EXPECT().
		GetEmergencyType(ctx, int64(3)).
		Return(&models.EmergencyType{ID: 3, Name: "Пожар", Priority: models.PriorityHigh, Active: true}, nil).
		Times(1)

	usersMock.EXPECT().
		ResolveUser(ctx, int64(7)).
		Return(&models.User{ID: 7, Active: true}, nil).
		Times(1)

	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, inc *models.Incident) error {
			// Симулируем, что БД присвоила ID и время регистрации
			inc.ID = uuid.New()
			inc.ReportedAt = time.Now().UTC()
			return nil
		}).Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusReported, incident.Status)
	assert.Nil(t, incident.ClosedAt)
	// Приоритет и метка классификации наследуются от типа
	assert.Equal(t, models.PriorityHigh, incident.Priority)
	assert.Equal(t, "Пожар", incident.TypeLabel)
	assert.NotEqual(t, uuid.Nil, incident.ID)
}

func TestCreateIncident_PriorityOverride(t *testing.T) {
	// Подготовка
	service, repoMock, catalogMock, usersMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		Code:            "INC-2024-002",
		ReporterID:      7,
		EmergencyTypeID: 3,
		Location:        "пр. Мира, 5",
		Priority:        models.PriorityCritical,
		FiledByID:       7,
	}

	// Ожидания
	catalogMock.EXPECT().
		GetEmergencyType(ctx, int64(3)).
		Return(&models.EmergencyType{ID: 3, Name: "Пожар", Priority: models.PriorityHigh, Active: true}, nil).
		Times(1)
	usersMock.EXPECT().ResolveUser(ctx, int64(7)).Return(&models.User{ID: 7}, nil).Times(1)
	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.PriorityCritical, incident.Priority)
}

func TestCreateIncident_UnknownEmergencyType(t *testing.T) {
	// Подготовка
	service, _, catalogMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{EmergencyTypeID: 99, ReporterID: 7, Location: "x"}

	// Ожидания
	catalogMock.EXPECT().
		GetEmergencyType(ctx, int64(99)).
		Return(nil, apperr.NotFound("emergency_type", "99")).
		Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestCreateIncident_InactiveEmergencyType(t *testing.T) {
	// Подготовка
	service, _, catalogMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{EmergencyTypeID: 3, ReporterID: 7, Location: "x"}

	// Ожидания
	catalogMock.EXPECT().
		GetEmergencyType(ctx, int64(3)).
		Return(&models.EmergencyType{ID: 3, Priority: models.PriorityLow, Active: false}, nil).
		Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestCreateIncident_LatitudeWithoutLongitude(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	lat := 55.75
	incident := &models.Incident{EmergencyTypeID: 3, ReporterID: 7, Location: "x", Latitude: &lat}

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestCreateIncident_UnknownReporter(t *testing.T) {
	// Подготовка
	service, _, catalogMock, usersMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{EmergencyTypeID: 3, ReporterID: 404, Location: "x"}

	// Ожидания
	catalogMock.EXPECT().
		GetEmergencyType(ctx, int64(3)).
		Return(&models.EmergencyType{ID: 3, Priority: models.PriorityLow, Active: true}, nil).
		Times(1)
	usersMock.EXPECT().
		ResolveUser(ctx, int64(404)).
		Return(nil, apperr.NotFound("user", "404")).
		Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestGetIncident_Success_FromCache(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID, Code: "INC-2024-010"}

	// Ожидания
	repoMock.EXPECT().
		GetIncidentFromCache(ctx, incidentID).
		Return(expectedIncident, nil).
		Times(1)

	// Действие
	incident, err := service.GetIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_Success_FromDB(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID, Code: "INC-2024-011"}

	// Ожидания
	// 1. Промах кеша
	repoMock.EXPECT().
		GetIncidentFromCache(ctx, incidentID).
		Return(nil, nil).
		Times(1)

	// 2. Попадание в БД
	repoMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(expectedIncident, nil).
		Times(1)

	// 3. Запись в кеш
	repoMock.EXPECT().
		SetIncidentCache(ctx, expectedIncident).
		Return(nil).
		Times(1)

	// Действие
	incident, err := service.GetIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	// Ожидания
	repoMock.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(nil, nil).Times(1)
	repoMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(nil, apperr.NotFound("incident", incidentID.String())).
		Times(1)

	// Действие
	incident, err := service.GetIncident(ctx, incidentID)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, incident)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestAdvanceStatus_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, usersMock, publisherMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	existing := &models.Incident{ID: incidentID, Code: "INC-2024-020", Status: models.StatusReported}

	// Ожидания
	usersMock.EXPECT().ResolveUser(ctx, int64(5)).Return(&models.User{ID: 5}, nil).Times(1)
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(existing, nil).Times(1)

	repoMock.EXPECT().
		AdvanceStatus(ctx, incidentID, models.StatusReported, models.StatusTriaged, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uuid.UUID, prevStatus, newStatus string, closedAt *time.Time, entry *models.HistoryEntry) (*models.Incident, error) {
			// Нетерминальный переход не выставляет время закрытия
			assert.Nil(t, closedAt)
			assert.Equal(t, models.StatusReported, entry.PreviousStatus)
			assert.Equal(t, models.StatusTriaged, entry.NewStatus)
			assert.Equal(t, int64(5), entry.ActorID)
			assert.Equal(t, "подтверждено оператором", entry.Motive)
			updated := *existing
			updated.Status = newStatus
			return &updated, nil
		}).Times(1)

	repoMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(ctx context.Context, event webhook.StatusChangeEvent) {
			assert.Equal(t, incidentID, event.IncidentID)
			assert.Equal(t, models.StatusReported, event.PreviousStatus)
			assert.Equal(t, models.StatusTriaged, event.NewStatus)
			assert.Equal(t, int64(5), event.ActorID)
		}).Return(nil).Times(1)

	// Действие
	updated, err := service.AdvanceStatus(ctx, incidentID, models.StatusTriaged, 5, nil, "подтверждено оператором")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusTriaged, updated.Status)
}

func TestAdvanceStatus_TerminalSetsClosedAt(t *testing.T) {
	// Подготовка
	service, repoMock, _, usersMock, publisherMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	existing := &models.Incident{ID: incidentID, Status: models.StatusInProgress}

	// Ожидания
	usersMock.EXPECT().ResolveUser(ctx, int64(5)).Return(&models.User{ID: 5}, nil).Times(1)
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(existing, nil).Times(1)

	repoMock.EXPECT().
		AdvanceStatus(ctx, incidentID, models.StatusInProgress, models.StatusResolved, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uuid.UUID, prevStatus, newStatus string, closedAt *time.Time, entry *models.HistoryEntry) (*models.Incident, error) {
			// Терминальный переход выставляет время закрытия
			require.NotNil(t, closedAt)
			updated := *existing
			updated.Status = newStatus
			updated.ClosedAt = closedAt
			return &updated, nil
		}).Times(1)

	repoMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	updated, err := service.AdvanceStatus(ctx, incidentID, models.StatusResolved, 5, nil, "работы завершены")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, updated.Status)
	assert.NotNil(t, updated.ClosedAt)
}

func TestAdvanceStatus_InvalidTransition(t *testing.T) {
	// Подготовка
	service, repoMock, _, usersMock, publisherMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	existing := &models.Incident{ID: incidentID, Status: models.StatusTriaged}

	// Ожидания
	usersMock.EXPECT().ResolveUser(ctx, int64(5)).Return(&models.User{ID: 5}, nil).Times(1)
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(existing, nil).Times(1)
	// Запись в БД и публикация события не выполняются
	repoMock.EXPECT().AdvanceStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие: пропуск шагов dispatched и in_progress
	updated, err := service.AdvanceStatus(ctx, incidentID, models.StatusResolved, 5, nil, "x")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidTransition))
}

func TestAdvanceStatus_TerminalRejectsTransitions(t *testing.T) {
	// Подготовка
	service, repoMock, _, usersMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	existing := &models.Incident{ID: incidentID, Status: models.StatusResolved}

	// Ожидания
	usersMock.EXPECT().ResolveUser(ctx, int64(5)).Return(&models.User{ID: 5}, nil).Times(1)
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(existing, nil).Times(1)

	// Действие: попытка отменить уже решённый инцидент
	_, err := service.AdvanceStatus(ctx, incidentID, models.StatusCancelled, 5, nil, "x")

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidTransition))
}

func TestAdvanceStatus_UnknownStatus(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Действие
	_, err := service.AdvanceStatus(ctx, uuid.New(), "escalated", 5, nil, "x")

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestAdvanceStatus_IncidentNotFound(t *testing.T) {
	// Подготовка
	service, repoMock, _, usersMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	// Ожидания
	usersMock.EXPECT().ResolveUser(ctx, int64(5)).Return(&models.User{ID: 5}, nil).Times(1)
	repoMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(nil, apperr.NotFound("incident", incidentID.String())).
		Times(1)

	// Действие
	_, err := service.AdvanceStatus(ctx, incidentID, models.StatusTriaged, 5, nil, "x")

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestAdvanceStatus_RetriesOnceOnConflict(t *testing.T) {
	// Подготовка
	service, repoMock, _, usersMock, publisherMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	existing := &models.Incident{ID: incidentID, Status: models.StatusReported}

	// Ожидания
	usersMock.EXPECT().ResolveUser(ctx, int64(5)).Return(&models.User{ID: 5}, nil).Times(1)

	// Первая попытка натыкается на конкурентную запись, вторая успешна
	firstGet := repoMock.EXPECT().GetByID(ctx, incidentID).Return(existing, nil)
	firstTry := repoMock.EXPECT().
		AdvanceStatus(ctx, incidentID, models.StatusReported, models.StatusTriaged, gomock.Any(), gomock.Any()).
		Return(nil, apperr.Conflict("incident", incidentID.String()))
	secondGet := repoMock.EXPECT().GetByID(ctx, incidentID).Return(existing, nil)
	secondTry := repoMock.EXPECT().
		AdvanceStatus(ctx, incidentID, models.StatusReported, models.StatusTriaged, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uuid.UUID, prevStatus, newStatus string, closedAt *time.Time, entry *models.HistoryEntry) (*models.Incident, error) {
			updated := *existing
			updated.Status = newStatus
			return &updated, nil
		})
	gomock.InOrder(firstGet, firstTry, secondGet, secondTry)

	repoMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	updated, err := service.AdvanceStatus(ctx, incidentID, models.StatusTriaged, 5, nil, "x")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusTriaged, updated.Status)
}

func TestAdvanceStatus_PublishFailureDoesNotFailTransition(t *testing.T) {
	// Подготовка
	service, repoMock, _, usersMock, publisherMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	existing := &models.Incident{ID: incidentID, Status: models.StatusReported}

	// Ожидания
	usersMock.EXPECT().ResolveUser(ctx, int64(5)).Return(&models.User{ID: 5}, nil).Times(1)
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(existing, nil).Times(1)
	repoMock.EXPECT().
		AdvanceStatus(ctx, incidentID, models.StatusReported, models.StatusTriaged, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uuid.UUID, prevStatus, newStatus string, closedAt *time.Time, entry *models.HistoryEntry) (*models.Incident, error) {
			updated := *existing
			updated.Status = newStatus
			return &updated, nil
		}).Times(1)
	repoMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(fmt.Errorf("очередь недоступна")).Times(1)

	// Действие
	updated, err := service.AdvanceStatus(ctx, incidentID, models.StatusTriaged, 5, nil, "x")

	// Проверки: сбой очереди не откатывает уже применённый переход
	require.NoError(t, err)
	assert.Equal(t, models.StatusTriaged, updated.Status)
}

func TestListHistory_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedEntries := []*models.HistoryEntry{
		{ID: uuid.New(), IncidentID: incidentID, PreviousStatus: models.StatusReported, NewStatus: models.StatusTriaged},
		{ID: uuid.New(), IncidentID: incidentID, PreviousStatus: models.StatusTriaged, NewStatus: models.StatusDispatched},
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(&models.Incident{ID: incidentID}, nil).Times(1)
	repoMock.EXPECT().ListHistory(ctx, incidentID).Return(expectedEntries, nil).Times(1)

	// Действие
	entries, err := service.ListHistory(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedEntries, entries)
}

func TestListHistory_IncidentNotFound(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	// Ожидания
	repoMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(nil, apperr.NotFound("incident", incidentID.String())).
		Times(1)

	// Действие
	entries, err := service.ListHistory(ctx, incidentID)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestGetStats_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	expectedCount := 42

	// Ожидания
	repoMock.EXPECT().CountReportedSince(ctx, service.cfg.StatsTimeWindowMinutes).Return(expectedCount, nil).Times(1)

	// Действие
	count, err := service.GetStats(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedCount, count)
}

// fakeIncidentRepo — репозиторий в памяти для сценарных проверок жизненного
// цикла: хранит инциденты и журнал, воспроизводя оптимистичное обновление.
type fakeIncidentRepo struct {
	incidents map[uuid.UUID]*models.Incident
	history   map[uuid.UUID][]*models.HistoryEntry
}

func newFakeIncidentRepo() *fakeIncidentRepo {
	return &fakeIncidentRepo{
		incidents: make(map[uuid.UUID]*models.Incident),
		history:   make(map[uuid.UUID][]*models.HistoryEntry),
	}
}

func (f *fakeIncidentRepo) Create(ctx context.Context, incident *models.Incident) error {
	incident.ID = uuid.New()
	incident.ReportedAt = time.Now().UTC()
	stored := *incident
	f.incidents[incident.ID] = &stored
	return nil
}

func (f *fakeIncidentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	incident, ok := f.incidents[id]
	if !ok {
		return nil, apperr.NotFound("incident", id.String())
	}
	copied := *incident
	return &copied, nil
}

func (f *fakeIncidentRepo) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	result := make([]*models.Incident, 0, len(f.incidents))
	for _, incident := range f.incidents {
		copied := *incident
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeIncidentRepo) AdvanceStatus(ctx context.Context, id uuid.UUID, prevStatus, newStatus string, closedAt *time.Time, entry *models.HistoryEntry) (*models.Incident, error) {
	incident, ok := f.incidents[id]
	if !ok {
		return nil, apperr.NotFound("incident", id.String())
	}
	if incident.Status != prevStatus {
		return nil, apperr.Conflict("incident", id.String())
	}
	incident.Status = newStatus
	incident.ClosedAt = closedAt

	stored := *entry
	stored.ID = uuid.New()
	stored.ChangedAt = time.Now().UTC()
	f.history[id] = append(f.history[id], &stored)

	copied := *incident
	return &copied, nil
}

func (f *fakeIncidentRepo) ListHistory(ctx context.Context, incidentID uuid.UUID) ([]*models.HistoryEntry, error) {
	return f.history[incidentID], nil
}

func (f *fakeIncidentRepo) CountReportedSince(ctx context.Context, minutes int) (int, error) {
	return len(f.incidents), nil
}

func (f *fakeIncidentRepo) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	return nil, nil
}

func (f *fakeIncidentRepo) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	return nil
}

func (f *fakeIncidentRepo) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	return nil
}

// newScenarioIncidentService собирает сервис поверх репозитория в памяти.
func newScenarioIncidentService(t *testing.T, repo *fakeIncidentRepo) IncidentService {
	ctrl := gomock.NewController(t)
	catalogMock := mocks.NewMockCatalogRepository(ctrl)
	usersMock := mocks.NewMockUserRepository(ctrl)
	publisherMock := webhook_mocks.NewMockEventPublisher(ctrl)

	catalogMock.EXPECT().
		GetEmergencyType(gomock.Any(), gomock.Any()).
		Return(&models.EmergencyType{ID: 1, Name: "Авария", Priority: models.PriorityMedium, Active: true}, nil).
		AnyTimes()
	usersMock.EXPECT().ResolveUser(gomock.Any(), gomock.Any()).Return(&models.User{ID: 1}, nil).AnyTimes()
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{StatsTimeWindowMinutes: 60}
	return NewIncidentService(repo, catalogMock, usersMock, logger, cfg, publisherMock)
}

// TestLifecycle_RandomWalks гоняет случайные последовательности переходов и
// проверяет инварианты: время закрытия выставлено ровно в терминальных
// статусах, а журнал переходов воспроизводит текущий статус.
func TestLifecycle_RandomWalks(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))
	allStatuses := []string{
		models.StatusReported, models.StatusTriaged, models.StatusDispatched,
		models.StatusInProgress, models.StatusResolved, models.StatusCancelled,
	}

	for run := 0; run < 50; run++ {
		repo := newFakeIncidentRepo()
		service := newScenarioIncidentService(t, repo)

		incident := &models.Incident{
			Code:            fmt.Sprintf("INC-RUN-%03d", run),
			ReporterID:      1,
			EmergencyTypeID: 1,
			Location:        "тестовая локация",
			FiledByID:       1,
		}
		require.NoError(t, service.CreateIncident(ctx, incident))

		current := models.StatusReported
		for step := 0; step < 10; step++ {
			target := allStatuses[rng.Intn(len(allStatuses))]
			updated, err := service.AdvanceStatus(ctx, incident.ID, target, 1, nil, "случайный шаг")

			if models.CanTransition(current, target) {
				require.NoError(t, err, "переход %s -> %s должен пройти", current, target)
				current = target

				// Время закрытия выставлено тогда и только тогда, когда статус терминальный
				if models.IsTerminalStatus(current) {
					assert.NotNil(t, updated.ClosedAt)
				} else {
					assert.Nil(t, updated.ClosedAt)
				}
			} else {
				require.Error(t, err, "переход %s -> %s должен быть отклонён", current, target)
				assert.True(t, apperr.Is(err, apperr.CodeInvalidTransition))
			}
		}

		// Воспроизведение журнала восстанавливает текущий статус
		entries, err := service.ListHistory(ctx, incident.ID)
		require.NoError(t, err)

		replayed := models.StatusReported
		for _, entry := range entries {
			assert.Equal(t, replayed, entry.PreviousStatus, "журнал должен быть непрерывной цепочкой")
			replayed = entry.NewStatus
		}
		assert.Equal(t, current, replayed)

		stored, err := service.GetIncident(ctx, incident.ID)
		require.NoError(t, err)
		assert.Equal(t, current, stored.Status)
	}
}
