// Package services contains the business logic for importing browser
// bookmark exports: parsing the uploaded document, deduplicating against
// existing bookmarks and reconciling discovered folders with the user's
// collections.
package services

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/mrlokans/bookmarks/internal/entities"
	"github.com/mrlokans/bookmarks/internal/parsers"
)

var (
	ErrEmptyInput      = errors.New("no file uploaded")
	ErrInvalidEncoding = errors.New("invalid file encoding")
	ErrNothingToImport = errors.New("no bookmarks found in file")
	ErrInvalidUser     = errors.New("invalid user id")
)

// Summary reports the outcome of one import run.
type Summary struct {
	Imported           int `json:"imported"`
	Skipped            int `json:"skipped"`
	CollectionsCreated int `json:"collections_created"`
}

// ImportService turns an uploaded bookmark export into persisted
// bookmarks and collections for one user.
//
// Each call is a single sequential pass over the parsed records; the
// only run-scoped state is a folder-name → collection-ID map built
// lazily as folders are first referenced. Imports are not transactional:
// a storage failure aborts the run and leaves earlier inserts in place,
// which is safe to retry because the URL dedup check skips them on the
// next run. Two concurrent imports for the same user may each create a
// collection with the same name; that race is accepted.
type ImportService struct {
	bookmarks   BookmarkStore
	collections CollectionStore
}

// NewImportService creates a new ImportService.
func NewImportService(bookmarks BookmarkStore, collections CollectionStore) *ImportService {
	return &ImportService{
		bookmarks:   bookmarks,
		collections: collections,
	}
}

// Import parses raw export bytes and persists the discovered bookmarks
// for the user identified by userKey (the string form carried by the
// auth layer).
//
// Per parsed record, in order: skip if a bookmark with the same URL
// already exists for the user; resolve its folder to a collection
// (reusing an existing collection by exact name, creating one
// otherwise); insert the bookmark. Existing records are never mutated.
func (s *ImportService) Import(userKey string, raw []byte) (*Summary, error) {
	userID, err := ParseUserKey(userKey)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, ErrEmptyInput
	}
	if !utf8.Valid(raw) {
		return nil, ErrInvalidEncoding
	}

	parsed := parsers.ParseBookmarks(bytes.NewReader(raw))
	if len(parsed) == 0 {
		return nil, ErrNothingToImport
	}

	folderMap := make(map[string]uint)
	summary := &Summary{}

	for _, record := range parsed {
		existing, err := s.bookmarks.FindBookmarkByURL(record.URL, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing bookmark: %w", err)
		}
		if existing != nil {
			summary.Skipped++
			continue
		}

		var collectionID *uint
		if record.Folder != nil {
			id, err := s.resolveFolder(*record.Folder, userID, folderMap, summary)
			if err != nil {
				return nil, err
			}
			collectionID = &id
		}

		bookmark := &entities.Bookmark{
			UserID:       userID,
			Title:        record.Title,
			URL:          record.URL,
			Tags:         []string{},
			CollectionID: collectionID,
		}
		if err := s.bookmarks.CreateBookmark(bookmark); err != nil {
			return nil, fmt.Errorf("failed to save bookmark: %w", err)
		}
		summary.Imported++
	}

	return summary, nil
}

// resolveFolder maps a folder name to a collection ID. The run-local
// folderMap is the single source of truth after the first resolution,
// so at most one collection per distinct folder name is created per run.
func (s *ImportService) resolveFolder(name string, userID uint, folderMap map[string]uint, summary *Summary) (uint, error) {
	if id, ok := folderMap[name]; ok {
		return id, nil
	}

	existing, err := s.collections.FindCollectionByName(name, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up collection: %w", err)
	}
	if existing != nil {
		folderMap[name] = existing.ID
		return existing.ID, nil
	}

	collection := &entities.Collection{
		UserID: userID,
		Name:   name,
	}
	if err := s.collections.CreateCollection(collection); err != nil {
		return 0, fmt.Errorf("failed to create collection: %w", err)
	}

	folderMap[name] = collection.ID
	summary.CollectionsCreated++
	return collection.ID, nil
}

// ParseUserKey converts the auth layer's string-form user key into a
// storage identifier.
func ParseUserKey(userKey string) (uint, error) {
	id, err := strconv.ParseUint(userKey, 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInvalidUser
	}
	return uint(id), nil
}
