package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookmarks/internal/entities"
)

// SearchStore defines the search operation over a user's bookmarks.
type SearchStore interface {
	SearchBookmarks(query string, userID uint) ([]entities.Bookmark, error)
}

type SearchController struct {
	store SearchStore
}

func NewSearchController(store SearchStore) *SearchController {
	return &SearchController{store: store}
}

// Search performs a case-insensitive substring search over the user's
// bookmark titles, URLs, descriptions and tags.
// GET /api/search?q=...
func (sc *SearchController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, "query parameter q is required")
		return
	}

	results, err := sc.store.SearchBookmarks(query, GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "search bookmarks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}
