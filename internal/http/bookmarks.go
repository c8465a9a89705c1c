package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookmarks/internal/entities"
)

// BookmarkStore defines database operations for bookmark management.
type BookmarkStore interface {
	CreateBookmark(bookmark *entities.Bookmark) error
	GetBookmarkByID(id, userID uint) (*entities.Bookmark, error)
	GetBookmarksForUser(userID uint, limit, offset int) ([]entities.Bookmark, error)
	GetBookmarksForCollection(collectionID, userID uint) ([]entities.Bookmark, error)
	FindBookmarkByURL(url string, userID uint) (*entities.Bookmark, error)
	UpdateBookmark(bookmark *entities.Bookmark) error
	DeleteBookmark(id, userID uint) error
	GetStatsForUser(userID uint) (int64, int64, error)
}

// CollectionLookup is the subset of collection operations the bookmarks
// controller needs to validate collection membership.
type CollectionLookup interface {
	GetCollectionByID(id, userID uint) (*entities.Collection, error)
}

type BookmarksController struct {
	store       BookmarkStore
	collections CollectionLookup
	auditor     Auditor
}

func NewBookmarksController(store BookmarkStore, collections CollectionLookup, auditor Auditor) *BookmarksController {
	return &BookmarksController{store: store, collections: collections, auditor: auditor}
}

type bookmarkRequest struct {
	Title        string   `json:"title" binding:"required"`
	URL          string   `json:"url" binding:"required"`
	Description  *string  `json:"description"`
	Tags         []string `json:"tags"`
	CollectionID *uint    `json:"collection_id"`
}

// ListBookmarks returns the current user's bookmarks, newest first.
// GET /api/bookmarks
func (bc *BookmarksController) ListBookmarks(c *gin.Context) {
	userID := GetUserID(c)

	if collectionIDStr := c.Query("collection_id"); collectionIDStr != "" {
		collectionID, err := strconv.ParseUint(collectionIDStr, 10, 32)
		if err != nil {
			respondBadRequest(c, "invalid collection_id")
			return
		}
		bookmarks, err := bc.store.GetBookmarksForCollection(uint(collectionID), userID)
		if err != nil {
			respondInternalError(c, err, "list collection bookmarks")
			return
		}
		c.JSON(http.StatusOK, bookmarks)
		return
	}

	limit, offset := parsePagination(c, 50)
	bookmarks, err := bc.store.GetBookmarksForUser(userID, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list bookmarks")
		return
	}

	c.JSON(http.StatusOK, bookmarks)
}

// GetBookmark returns a single bookmark owned by the current user.
// GET /api/bookmarks/:id
func (bc *BookmarksController) GetBookmark(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bookmark, err := bc.store.GetBookmarkByID(id, GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "get bookmark")
		return
	}

	c.JSON(http.StatusOK, bookmark)
}

// CreateBookmark saves a new bookmark for the current user.
// POST /api/bookmarks
func (bc *BookmarksController) CreateBookmark(c *gin.Context) {
	userID := GetUserID(c)

	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title and url are required")
		return
	}

	if req.CollectionID != nil {
		if !bc.collectionBelongsToUser(c, *req.CollectionID, userID) {
			return
		}
	}

	existing, err := bc.store.FindBookmarkByURL(req.URL, userID)
	if err != nil {
		respondInternalError(c, err, "check duplicate bookmark")
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "bookmark with this URL already exists"})
		return
	}

	bookmark := &entities.Bookmark{
		UserID:       userID,
		Title:        req.Title,
		URL:          req.URL,
		Description:  req.Description,
		Tags:         req.Tags,
		CollectionID: req.CollectionID,
	}
	if err := bc.store.CreateBookmark(bookmark); err != nil {
		respondInternalError(c, err, "create bookmark")
		return
	}

	respondCreated(c, bookmark)
}

// UpdateBookmark modifies an existing bookmark.
// PUT /api/bookmarks/:id
func (bc *BookmarksController) UpdateBookmark(c *gin.Context) {
	userID := GetUserID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title and url are required")
		return
	}

	bookmark, err := bc.store.GetBookmarkByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "get bookmark")
		return
	}

	if req.CollectionID != nil {
		if !bc.collectionBelongsToUser(c, *req.CollectionID, userID) {
			return
		}
	}

	bookmark.Title = req.Title
	bookmark.URL = req.URL
	bookmark.Description = req.Description
	bookmark.CollectionID = req.CollectionID
	if req.Tags != nil {
		bookmark.Tags = req.Tags
	}

	if err := bc.store.UpdateBookmark(bookmark); err != nil {
		respondInternalError(c, err, "update bookmark")
		return
	}

	c.JSON(http.StatusOK, bookmark)
}

// DeleteBookmark removes a bookmark owned by the current user.
// DELETE /api/bookmarks/:id
func (bc *BookmarksController) DeleteBookmark(c *gin.Context) {
	userID := GetUserID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bookmark, err := bc.store.GetBookmarkByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "get bookmark")
		return
	}

	if err := bc.store.DeleteBookmark(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "delete bookmark")
		return
	}

	if bc.auditor != nil {
		bc.auditor.LogDelete(userID, "bookmark", id, bookmark.Title)
	}

	respondSuccess(c, "bookmark deleted")
}

// GetStats returns bookmark and collection totals for the current user.
// GET /api/bookmarks/stats
func (bc *BookmarksController) GetStats(c *gin.Context) {
	totalBookmarks, totalCollections, err := bc.store.GetStatsForUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "get stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarks":   totalBookmarks,
		"collections": totalCollections,
	})
}

// collectionBelongsToUser verifies the target collection exists and is
// owned by the user, responding with an error otherwise.
func (bc *BookmarksController) collectionBelongsToUser(c *gin.Context, collectionID, userID uint) bool {
	_, err := bc.collections.GetCollectionByID(collectionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondBadRequest(c, "collection does not exist")
			return false
		}
		respondInternalError(c, err, "check collection")
		return false
	}
	return true
}
