// Package bookmarks provides database operations for bookmark management.
//
// All queries are scoped by user ID so one user can never observe or
// modify another user's bookmarks.
package bookmarks

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookmarks/internal/entities"
)

// Repository handles all bookmark database operations.
type Repository struct {
	db *gorm.DB
}

// TagCount is a tag name with the number of bookmarks carrying it.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NewRepository creates a new bookmarks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBookmark persists a new bookmark.
func (r *Repository) CreateBookmark(bookmark *entities.Bookmark) error {
	if bookmark.Tags == nil {
		bookmark.Tags = []string{}
	}
	return r.db.Create(bookmark).Error
}

// GetBookmarkByID retrieves a bookmark owned by the given user.
func (r *Repository) GetBookmarkByID(id, userID uint) (*entities.Bookmark, error) {
	var bookmark entities.Bookmark
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// GetBookmarksForUser retrieves all bookmarks for a user, newest first.
func (r *Repository) GetBookmarksForUser(userID uint, limit, offset int) ([]entities.Bookmark, error) {
	var bookmarks []entities.Bookmark
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&bookmarks).Error
	return bookmarks, err
}

// GetBookmarksForCollection retrieves the user's bookmarks belonging to a collection.
func (r *Repository) GetBookmarksForCollection(collectionID, userID uint) ([]entities.Bookmark, error) {
	var bookmarks []entities.Bookmark
	err := r.db.Where("collection_id = ? AND user_id = ?", collectionID, userID).
		Order("created_at DESC").Find(&bookmarks).Error
	return bookmarks, err
}

// FindBookmarkByURL looks up a bookmark by exact URL for a user.
// Returns (nil, nil) when no bookmark with that URL exists.
func (r *Repository) FindBookmarkByURL(url string, userID uint) (*entities.Bookmark, error) {
	var bookmark entities.Bookmark
	err := r.db.Where("url = ? AND user_id = ?", url, userID).First(&bookmark).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// UpdateBookmark saves changes to an existing bookmark.
func (r *Repository) UpdateBookmark(bookmark *entities.Bookmark) error {
	return r.db.Save(bookmark).Error
}

// DeleteBookmark removes a bookmark owned by the given user.
// Returns gorm.ErrRecordNotFound if nothing was deleted.
func (r *Repository) DeleteBookmark(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchBookmarks performs a case-insensitive substring search over
// title, URL, description and the serialized tag list.
func (r *Repository) SearchBookmarks(query string, userID uint) ([]entities.Bookmark, error) {
	var bookmarks []entities.Bookmark
	pattern := "%" + query + "%"
	err := r.db.Where("user_id = ?", userID).
		Where(`LOWER(title) LIKE LOWER(?) OR LOWER(url) LIKE LOWER(?)
			OR LOWER(description) LIKE LOWER(?) OR LOWER(tags) LIKE LOWER(?)`,
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

// GetBookmarksByTag retrieves the user's bookmarks carrying an exact tag.
// The LIKE on the serialized column is only a prefilter; exact membership
// is checked on the decoded tag list.
func (r *Repository) GetBookmarksByTag(tag string, userID uint) ([]entities.Bookmark, error) {
	var candidates []entities.Bookmark
	err := r.db.Where("user_id = ? AND tags LIKE ?", userID, "%"+tag+"%").
		Order("created_at DESC").Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	bookmarks := make([]entities.Bookmark, 0, len(candidates))
	for _, b := range candidates {
		for _, t := range b.Tags {
			if t == tag {
				bookmarks = append(bookmarks, b)
				break
			}
		}
	}
	return bookmarks, nil
}

// ListTags returns the user's unique tags with usage counts,
// most used first, ties broken alphabetically.
func (r *Repository) ListTags(userID uint) ([]TagCount, error) {
	var bookmarks []entities.Bookmark
	err := r.db.Select("tags").Where("user_id = ?", userID).Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, b := range bookmarks {
		for _, t := range b.Tags {
			counts[t]++
		}
	}

	tags := make([]TagCount, 0, len(counts))
	for name, count := range counts {
		tags = append(tags, TagCount{Name: name, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return strings.Compare(tags[i].Name, tags[j].Name) < 0
	})
	return tags, nil
}

// CountForCollection counts the user's bookmarks in a collection.
func (r *Repository) CountForCollection(collectionID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Bookmark{}).
		Where("collection_id = ? AND user_id = ?", collectionID, userID).
		Count(&count).Error
	return count, err
}

// DetachCollection clears collection membership for all of the user's
// bookmarks in a collection. Used when a collection is deleted; the
// bookmarks themselves are kept.
func (r *Repository) DetachCollection(collectionID, userID uint) error {
	return r.db.Model(&entities.Bookmark{}).
		Where("collection_id = ? AND user_id = ?", collectionID, userID).
		Update("collection_id", nil).Error
}

// GetStatsForUser returns bookmark and collection totals for a user.
func (r *Repository) GetStatsForUser(userID uint) (totalBookmarks int64, totalCollections int64, err error) {
	err = r.db.Model(&entities.Bookmark{}).Where("user_id = ?", userID).Count(&totalBookmarks).Error
	if err != nil {
		return
	}
	err = r.db.Model(&entities.Collection{}).Where("user_id = ?", userID).Count(&totalCollections).Error
	return
}
