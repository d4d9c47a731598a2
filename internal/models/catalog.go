package models

// Уровни приоритета типов экстренных ситуаций (по возрастанию).
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// IsValidPriority проверяет, что строка является известным уровнем приоритета
func IsValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// EmergencyType представляет справочную запись типа экстренной ситуации.
// Справочник администрируется внешним потоком, здесь только чтение.
type EmergencyType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Active      bool   `json:"active"`
}

// ResponseService представляет справочную запись службы реагирования
type ResponseService struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Phone     string `json:"phone"`
	Available bool   `json:"available"`
	Address   string `json:"address"`
	Capacity  *int   `json:"capacity,omitempty"`
	Schedule  string `json:"schedule"`
	Specialty string `json:"specialty"`
	Active    bool   `json:"active"`
}
