// Package audit provides database operations for the audit event log.
package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookmarks/internal/entities"
)

// Repository handles audit event persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new audit repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent stores a single audit event.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	return r.db.Create(event).Error
}

// GetEvents retrieves paginated audit events for a user, newest first,
// along with the total count.
func (r *Repository) GetEvents(userID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	var total int64
	if err := r.db.Model(&entities.AuditEvent{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []entities.AuditEvent
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&events).Error
	return events, total, err
}

// GetEventsByType retrieves paginated audit events of one type for a user.
func (r *Repository) GetEventsByType(eventType entities.AuditEventType, userID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	var total int64
	if err := r.db.Model(&entities.AuditEvent{}).
		Where("user_id = ? AND event_type = ?", userID, eventType).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []entities.AuditEvent
	query := r.db.Where("user_id = ? AND event_type = ?", userID, eventType).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&events).Error
	return events, total, err
}

// DeleteOldEvents removes events created before the cutoff time.
func (r *Repository) DeleteOldEvents(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
