// internal/domain/models/status.go
package models

// Entity statuses shared by users, organizations and projects.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
	StatusDisabled = "disabled"
)

// ValidStatus reports whether s is a known entity status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusArchived, StatusDisabled:
		return true
	}
	return false
}
