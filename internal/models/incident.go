package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы жизненного цикла инцидента.
const (
	StatusReported   = "reported"
	StatusTriaged    = "triaged"
	StatusDispatched = "dispatched"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusCancelled  = "cancelled"
)

// incidentTransitions описывает граф допустимых переходов статусов.
// Строгая цепочка reported -> triaged -> dispatched -> in_progress -> resolved,
// cancelled достижим из любого нетерминального статуса.
var incidentTransitions = map[string][]string{
	StatusReported:   {StatusTriaged, StatusCancelled},
	StatusTriaged:    {StatusDispatched, StatusCancelled},
	StatusDispatched: {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusResolved, StatusCancelled},
	StatusResolved:   {},
	StatusCancelled:  {},
}

// IsValidStatus проверяет, что строка является известным статусом инцидента
func IsValidStatus(status string) bool {
	_, ok := incidentTransitions[status]
	return ok
}

// IsTerminalStatus проверяет, является ли статус терминальным
func IsTerminalStatus(status string) bool {
	return status == StatusResolved || status == StatusCancelled
}

// CanTransition проверяет допустимость перехода from -> to.
// Повторный переход в тот же статус не допускается.
func CanTransition(from, to string) bool {
	for _, next := range incidentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Incident представляет запись об инциденте
type Incident struct {
	ID              uuid.UUID  `json:"id"`
	Code            string     `json:"code"`
	ReporterID      int64      `json:"reporter_id"`
	EmergencyTypeID int64      `json:"emergency_type_id"`
	TypeLabel       string     `json:"type_label"`
	Status          string     `json:"status"`
	Location        string     `json:"location"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority"`
	FiledByID       int64      `json:"filed_by_id"`
	Observations    string     `json:"observations"`
	ReportedAt      time.Time  `json:"reported_at"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
}

// HistoryEntry представляет одну запись журнала смены статусов.
// Записи неизменяемы после создания.
type HistoryEntry struct {
	ID             uuid.UUID `json:"id"`
	IncidentID     uuid.UUID `json:"incident_id"`
	ActorID        int64     `json:"actor_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ChangedByID    *int64    `json:"changed_by_id,omitempty"`
	Motive         string    `json:"motive"`
	ChangedAt      time.Time `json:"changed_at"`
}
