package models

import "time"

// User представляет учётную запись пользователя системы.
// Роль и хэш учётных данных хранятся отдельными типизированными полями.
type User struct {
	ID               int64     `json:"id"`
	DocumentID       string    `json:"document_id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	EmergencyContact string    `json:"emergency_contact"`
	Role             string    `json:"role"`
	CredentialHash   string    `json:"-"`
	Address          string    `json:"address"`
	RegisteredAt     time.Time `json:"registered_at"`
	Active           bool      `json:"active"`
}
