package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateIncidentRequest DTO для регистрации инцидента
// @Description DTO для регистрации инцидента
type CreateIncidentRequest struct {
	Code            string   `json:"code" validate:"required,min=1,max=50"`
	ReporterID      int64    `json:"reporter_id" validate:"required,gt=0"`
	EmergencyTypeID int64    `json:"emergency_type_id" validate:"required,gt=0"`
	TypeLabel       string   `json:"type_label,omitempty"`
	Location        string   `json:"location" validate:"required,min=2,max=255"`
	Latitude        *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Description     string   `json:"description,omitempty"`
	Priority        string   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	FiledByID       int64    `json:"filed_by_id" validate:"required,gt=0"`
	Observations    string   `json:"observations,omitempty"`
}

// AdvanceStatusRequest DTO для перевода инцидента в новый статус
// @Description DTO для перевода инцидента в новый статус
type AdvanceStatusRequest struct {
	NewStatus   string `json:"new_status" validate:"required,oneof=reported triaged dispatched in_progress resolved cancelled"`
	ActorID     int64  `json:"actor_id" validate:"required,gt=0"`
	ChangedByID *int64 `json:"changed_by_id,omitempty" validate:"omitempty,gt=0"`
	Motive      string `json:"motive" validate:"required,min=2,max=500"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID              uuid.UUID  `json:"id"`
	Code            string     `json:"code"`
	ReporterID      int64      `json:"reporter_id"`
	EmergencyTypeID int64      `json:"emergency_type_id"`
	TypeLabel       string     `json:"type_label"`
	Status          string     `json:"status"`
	Location        string     `json:"location"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	Description     string     `json:"description,omitempty"`
	Priority        string     `json:"priority"`
	FiledByID       int64      `json:"filed_by_id"`
	Observations    string     `json:"observations,omitempty"`
	ReportedAt      time.Time  `json:"reported_at"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
}

// HistoryEntryResponse DTO для записи журнала смены статусов
// @Description DTO для записи журнала смены статусов
type HistoryEntryResponse struct {
	ID             uuid.UUID `json:"id"`
	IncidentID     uuid.UUID `json:"incident_id"`
	ActorID        int64     `json:"actor_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ChangedByID    *int64    `json:"changed_by_id,omitempty"`
	Motive         string    `json:"motive"`
	ChangedAt      time.Time `json:"changed_at"`
}

// CreateDispatchRequest DTO для назначения службы на инцидент
// @Description DTO для назначения службы на инцидент
type CreateDispatchRequest struct {
	IncidentID   string `json:"incident_id" validate:"required,uuid"`
	ServiceID    int64  `json:"service_id" validate:"required,gt=0"`
	ExternalRef  string `json:"external_ref,omitempty" validate:"omitempty,max=100"`
	AssignedAt   string `json:"assigned_at,omitempty"`
	Observations string `json:"observations,omitempty"`
}

// RecordArrivalRequest DTO для фиксации прибытия службы
// @Description DTO для фиксации прибытия службы
type RecordArrivalRequest struct {
	ArrivedAt string `json:"arrived_at" validate:"required"`
}

// CompleteDispatchRequest DTO для завершения назначения
// @Description DTO для завершения назначения
type CompleteDispatchRequest struct {
	CompletedAt  string `json:"completed_at" validate:"required"`
	QualityScore *int   `json:"quality_score,omitempty"`
}

// DispatchResponse DTO для ответа с информацией о назначении
// @Description DTO для ответа с информацией о назначении
type DispatchResponse struct {
	ID              uuid.UUID  `json:"id"`
	IncidentID      uuid.UUID  `json:"incident_id"`
	ServiceID       int64      `json:"service_id"`
	ExternalRef     string     `json:"external_ref,omitempty"`
	Status          string     `json:"status"`
	AssignedAt      time.Time  `json:"assigned_at"`
	ArrivedAt       *time.Time `json:"arrived_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Observations    string     `json:"observations,omitempty"`
	ResponseMinutes *int       `json:"response_minutes,omitempty"`
	QualityScore    *int       `json:"quality_score,omitempty"`
}

// EmergencyTypeResponse DTO для справочной записи типа экстренной ситуации
// @Description DTO для справочной записи типа экстренной ситуации
type EmergencyTypeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	Active      bool   `json:"active"`
}

// ResponseServiceResponse DTO для справочной записи службы реагирования
// @Description DTO для справочной записи службы реагирования
type ResponseServiceResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Phone     string `json:"phone"`
	Available bool   `json:"available"`
	Address   string `json:"address"`
	Capacity  *int   `json:"capacity,omitempty"`
	Schedule  string `json:"schedule,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Active    bool   `json:"active"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	IncidentCount int `json:"incident_count"`
}
