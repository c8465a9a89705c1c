// Package collections provides database operations for collection management.
package collections

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookmarks/internal/entities"
)

// Repository handles all collection database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new collections repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateCollection persists a new collection.
func (r *Repository) CreateCollection(collection *entities.Collection) error {
	return r.db.Create(collection).Error
}

// GetCollectionByID retrieves a collection owned by the given user.
func (r *Repository) GetCollectionByID(id, userID uint) (*entities.Collection, error) {
	var collection entities.Collection
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&collection).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// GetCollectionsForUser retrieves all collections for a user.
func (r *Repository) GetCollectionsForUser(userID uint) ([]entities.Collection, error) {
	var collections []entities.Collection
	err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&collections).Error
	return collections, err
}

// FindCollectionByName looks up a collection by exact name for a user.
// Name matching is verbatim (case- and whitespace-sensitive), as folder
// names from imported markup are taken as-is.
// Returns (nil, nil) when no collection with that name exists.
func (r *Repository) FindCollectionByName(name string, userID uint) (*entities.Collection, error) {
	var collection entities.Collection
	err := r.db.Where("name = ? AND user_id = ?", name, userID).First(&collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// UpdateCollection saves changes to an existing collection.
func (r *Repository) UpdateCollection(collection *entities.Collection) error {
	return r.db.Save(collection).Error
}

// DeleteCollection removes a collection owned by the given user.
// Returns gorm.ErrRecordNotFound if nothing was deleted. Bookmarks are
// not touched; the caller detaches them separately.
func (r *Repository) DeleteCollection(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Collection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
