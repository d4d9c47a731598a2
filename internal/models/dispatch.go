package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы суб-жизненного цикла назначения службы.
const (
	DispatchAssigned  = "assigned"
	DispatchEnRoute   = "en_route"
	DispatchCompleted = "completed"
	DispatchCancelled = "cancelled"
)

// Границы оценки качества выполнения назначения.
const (
	QualityScoreMin = 1
	QualityScoreMax = 5
)

// Dispatch представляет назначение службы реагирования на инцидент
type Dispatch struct {
	ID           uuid.UUID  `json:"id"`
	IncidentID   uuid.UUID  `json:"incident_id"`
	ServiceID    int64      `json:"service_id"`
	ExternalRef  string     `json:"external_ref,omitempty"`
	Status       string     `json:"status"`
	AssignedAt   time.Time  `json:"assigned_at"`
	ArrivedAt    *time.Time `json:"arrived_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Observations string     `json:"observations"`
	// ResponseMinutes выводится из arrived_at - assigned_at при фиксации
	// прибытия и не задаётся вызывающей стороной напрямую.
	ResponseMinutes *int `json:"response_minutes,omitempty"`
	QualityScore    *int `json:"quality_score,omitempty"`
}

// ResponseMinutesBetween вычисляет время реагирования в целых минутах
// (округление вниз)
func ResponseMinutesBetween(assignedAt, arrivedAt time.Time) int {
	return int(arrivedAt.Sub(assignedAt).Minutes())
}
