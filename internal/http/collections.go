package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookmarks/internal/entities"
)

// CollectionStore defines database operations for collection management.
type CollectionStore interface {
	CreateCollection(collection *entities.Collection) error
	GetCollectionByID(id, userID uint) (*entities.Collection, error)
	GetCollectionsForUser(userID uint) ([]entities.Collection, error)
	FindCollectionByName(name string, userID uint) (*entities.Collection, error)
	UpdateCollection(collection *entities.Collection) error
	DeleteCollection(id, userID uint) error
}

// CollectionBookmarks is the subset of bookmark operations the
// collections controller needs for counts and detaching on delete.
type CollectionBookmarks interface {
	CountForCollection(collectionID, userID uint) (int64, error)
	DetachCollection(collectionID, userID uint) error
}

type CollectionsController struct {
	store     CollectionStore
	bookmarks CollectionBookmarks
	auditor   Auditor
}

func NewCollectionsController(store CollectionStore, bookmarks CollectionBookmarks, auditor Auditor) *CollectionsController {
	return &CollectionsController{store: store, bookmarks: bookmarks, auditor: auditor}
}

type collectionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// collectionResponse is a collection with its bookmark count.
type collectionResponse struct {
	entities.Collection
	BookmarkCount int64 `json:"bookmark_count"`
}

// ListCollections returns the current user's collections with bookmark counts.
// GET /api/collections
func (cc *CollectionsController) ListCollections(c *gin.Context) {
	userID := GetUserID(c)

	collections, err := cc.store.GetCollectionsForUser(userID)
	if err != nil {
		respondInternalError(c, err, "list collections")
		return
	}

	out := make([]collectionResponse, 0, len(collections))
	for _, collection := range collections {
		count, err := cc.bookmarks.CountForCollection(collection.ID, userID)
		if err != nil {
			respondInternalError(c, err, "count collection bookmarks")
			return
		}
		out = append(out, collectionResponse{Collection: collection, BookmarkCount: count})
	}

	c.JSON(http.StatusOK, out)
}

// GetCollection returns a single collection with its bookmark count.
// GET /api/collections/:id
func (cc *CollectionsController) GetCollection(c *gin.Context) {
	userID := GetUserID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	collection, err := cc.store.GetCollectionByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "collection")
			return
		}
		respondInternalError(c, err, "get collection")
		return
	}

	count, err := cc.bookmarks.CountForCollection(id, userID)
	if err != nil {
		respondInternalError(c, err, "count collection bookmarks")
		return
	}

	c.JSON(http.StatusOK, collectionResponse{Collection: *collection, BookmarkCount: count})
}

// CreateCollection creates a new collection for the current user.
// Collection names are unique per user.
// POST /api/collections
func (cc *CollectionsController) CreateCollection(c *gin.Context) {
	userID := GetUserID(c)

	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	existing, err := cc.store.FindCollectionByName(req.Name, userID)
	if err != nil {
		respondInternalError(c, err, "check duplicate collection")
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "collection with this name already exists"})
		return
	}

	collection := &entities.Collection{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := cc.store.CreateCollection(collection); err != nil {
		respondInternalError(c, err, "create collection")
		return
	}

	respondCreated(c, collection)
}

// UpdateCollection renames or re-describes a collection.
// PUT /api/collections/:id
func (cc *CollectionsController) UpdateCollection(c *gin.Context) {
	userID := GetUserID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	collection, err := cc.store.GetCollectionByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "collection")
			return
		}
		respondInternalError(c, err, "get collection")
		return
	}

	if req.Name != collection.Name {
		existing, err := cc.store.FindCollectionByName(req.Name, userID)
		if err != nil {
			respondInternalError(c, err, "check duplicate collection")
			return
		}
		if existing != nil {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "collection with this name already exists"})
			return
		}
	}

	collection.Name = req.Name
	collection.Description = req.Description

	if err := cc.store.UpdateCollection(collection); err != nil {
		respondInternalError(c, err, "update collection")
		return
	}

	c.JSON(http.StatusOK, collection)
}

// DeleteCollection removes a collection. Its bookmarks are kept and
// detached rather than deleted.
// DELETE /api/collections/:id
func (cc *CollectionsController) DeleteCollection(c *gin.Context) {
	userID := GetUserID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	collection, err := cc.store.GetCollectionByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "collection")
			return
		}
		respondInternalError(c, err, "get collection")
		return
	}

	// Detach bookmarks first so none are orphaned against a missing row
	if err := cc.bookmarks.DetachCollection(id, userID); err != nil {
		respondInternalError(c, err, "detach collection bookmarks")
		return
	}

	if err := cc.store.DeleteCollection(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "collection")
			return
		}
		respondInternalError(c, err, "delete collection")
		return
	}

	if cc.auditor != nil {
		cc.auditor.LogDelete(userID, "collection", id, collection.Name)
	}

	respondSuccess(c, "collection deleted")
}
