package services

import (
	"github.com/mrlokans/bookmarks/internal/entities"
)

// BookmarkStore is the persistence surface the import service needs for
// bookmarks. Find methods return (nil, nil) when no record matches.
type BookmarkStore interface {
	FindBookmarkByURL(url string, userID uint) (*entities.Bookmark, error)
	CreateBookmark(bookmark *entities.Bookmark) error
}

// CollectionStore is the persistence surface the import service needs
// for collections.
type CollectionStore interface {
	FindCollectionByName(name string, userID uint) (*entities.Collection, error)
	CreateCollection(collection *entities.Collection) error
}
