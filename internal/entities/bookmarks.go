package entities

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string         `gorm:"size:100" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// API token (hash only, the plaintext is shown once)
	TokenHash      string     `gorm:"index;size:64" json:"-"`
	TokenCreatedAt *time.Time `json:"-"`

	// Login lockout tracking
	FailedLoginCount int        `gorm:"default:0" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	LockedUntil      *time.Time `json:"-"`
}

// Bookmark is a single saved link owned by one user. URL uniqueness is
// per-user and enforced by the dedup query on import/create, not by a
// schema constraint.
type Bookmark struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index" json:"user_id"`
	Title        string    `gorm:"size:512" json:"title"`
	URL          string    `gorm:"index;size:2048" json:"url"`
	Description  *string   `gorm:"size:2048" json:"description,omitempty"`
	Tags         []string  `gorm:"serializer:json" json:"tags"`
	CollectionID *uint     `gorm:"index" json:"collection_id,omitempty"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Collection is an optional flat grouping a bookmark may belong to.
// Imported folder hierarchies are flattened onto collections by name.
type Collection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Name        string    `gorm:"index;size:255" json:"name"`
	Description *string   `gorm:"size:2048" json:"description,omitempty"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

func (Collection) TableName() string {
	return "collections"
}
