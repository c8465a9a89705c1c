package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookmarks/internal/database/bookmarks"
	"github.com/mrlokans/bookmarks/internal/entities"
)

// TagStore defines database operations for tag browsing. Tags live on
// bookmarks rather than in their own table, so both operations are
// served by the bookmarks repository.
type TagStore interface {
	ListTags(userID uint) ([]bookmarks.TagCount, error)
	GetBookmarksByTag(tag string, userID uint) ([]entities.Bookmark, error)
}

type TagsController struct {
	store TagStore
}

func NewTagsController(store TagStore) *TagsController {
	return &TagsController{store: store}
}

// ListTags returns the current user's tags with usage counts.
// GET /api/tags
func (tc *TagsController) ListTags(c *gin.Context) {
	tags, err := tc.store.ListTags(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list tags")
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetBookmarksByTag returns the user's bookmarks carrying an exact tag.
// GET /api/tags/:name/bookmarks
func (tc *TagsController) GetBookmarksByTag(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		respondBadRequest(c, "tag name is required")
		return
	}

	found, err := tc.store.GetBookmarksByTag(name, GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "get bookmarks by tag")
		return
	}
	c.JSON(http.StatusOK, found)
}
