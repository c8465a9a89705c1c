package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookmarks/internal/auth"
	"github.com/mrlokans/bookmarks/internal/database/bookmarks"
	"github.com/mrlokans/bookmarks/internal/database/collections"
	"github.com/mrlokans/bookmarks/internal/entities"
)

const testUserID = uint(1)

func setupAPIRouter(t *testing.T) (*gin.Engine, *bookmarks.Repository, *collections.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Collection{},
		&entities.Bookmark{},
	))

	bookmarkRepo := bookmarks.NewRepository(db)
	collectionRepo := collections.NewRepository(db)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, testUserID)
		c.Next()
	})

	bc := NewBookmarksController(bookmarkRepo, collectionRepo, nil)
	cc := NewCollectionsController(collectionRepo, bookmarkRepo, nil)

	router.GET("/api/bookmarks", bc.ListBookmarks)
	router.GET("/api/bookmarks/:id", bc.GetBookmark)
	router.POST("/api/bookmarks", bc.CreateBookmark)
	router.PUT("/api/bookmarks/:id", bc.UpdateBookmark)
	router.DELETE("/api/bookmarks/:id", bc.DeleteBookmark)
	router.GET("/api/collections", cc.ListCollections)
	router.POST("/api/collections", cc.CreateCollection)
	router.DELETE("/api/collections/:id", cc.DeleteCollection)

	return router, bookmarkRepo, collectionRepo
}

func doJSON(router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBookmarks_CreateAndGet(t *testing.T) {
	router, _, _ := setupAPIRouter(t)

	w := doJSON(router, http.MethodPost, "/api/bookmarks", gin.H{
		"title": "Example",
		"url":   "http://example.com",
		"tags":  []string{"news"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Bookmark
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Example", created.Title)
	assert.Equal(t, []string{"news"}, created.Tags)

	w = doJSON(router, http.MethodGet, "/api/bookmarks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []entities.Bookmark
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestBookmarks_DuplicateURLRejected(t *testing.T) {
	router, _, _ := setupAPIRouter(t)

	payload := gin.H{"title": "Example", "url": "http://example.com"}
	w := doJSON(router, http.MethodPost, "/api/bookmarks", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/bookmarks", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookmarks_MissingFields(t *testing.T) {
	router, _, _ := setupAPIRouter(t)

	w := doJSON(router, http.MethodPost, "/api/bookmarks", gin.H{"title": "no url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookmarks_ForeignCollectionRejected(t *testing.T) {
	router, _, collectionRepo := setupAPIRouter(t)

	foreign := &entities.Collection{UserID: 99, Name: "Other"}
	require.NoError(t, collectionRepo.CreateCollection(foreign))

	w := doJSON(router, http.MethodPost, "/api/bookmarks", gin.H{
		"title":         "Example",
		"url":           "http://example.com",
		"collection_id": foreign.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "collection does not exist")
}

func TestBookmarks_DeleteNotFound(t *testing.T) {
	router, _, _ := setupAPIRouter(t)

	w := doJSON(router, http.MethodDelete, "/api/bookmarks/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookmarks_UpdateOwnedOnly(t *testing.T) {
	router, bookmarkRepo, _ := setupAPIRouter(t)

	other := &entities.Bookmark{UserID: 99, Title: "Theirs", URL: "http://theirs.com"}
	require.NoError(t, bookmarkRepo.CreateBookmark(other))

	w := doJSON(router, http.MethodPut, "/api/bookmarks/1", gin.H{
		"title": "Mine now",
		"url":   "http://theirs.com",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollections_DeleteDetachesBookmarks(t *testing.T) {
	router, bookmarkRepo, collectionRepo := setupAPIRouter(t)

	w := doJSON(router, http.MethodPost, "/api/collections", gin.H{"name": "Reading"})
	require.Equal(t, http.StatusCreated, w.Code)

	collection, err := collectionRepo.FindCollectionByName("Reading", testUserID)
	require.NoError(t, err)
	require.NotNil(t, collection)

	w = doJSON(router, http.MethodPost, "/api/bookmarks", gin.H{
		"title":         "Example",
		"url":           "http://example.com",
		"collection_id": collection.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/collections/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The bookmark survives without a collection
	bookmark, err := bookmarkRepo.FindBookmarkByURL("http://example.com", testUserID)
	require.NoError(t, err)
	require.NotNil(t, bookmark)
	assert.Nil(t, bookmark.CollectionID)
}

func TestCollections_DuplicateNameRejected(t *testing.T) {
	router, _, _ := setupAPIRouter(t)

	w := doJSON(router, http.MethodPost, "/api/collections", gin.H{"name": "Reading"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/collections", gin.H{"name": "Reading"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCollections_ListIncludesCounts(t *testing.T) {
	router, bookmarkRepo, collectionRepo := setupAPIRouter(t)

	collection := &entities.Collection{UserID: testUserID, Name: "Reading"}
	require.NoError(t, collectionRepo.CreateCollection(collection))
	require.NoError(t, bookmarkRepo.CreateBookmark(&entities.Bookmark{
		UserID: testUserID, Title: "A", URL: "http://a.com", CollectionID: &collection.ID,
	}))

	w := doJSON(router, http.MethodGet, "/api/collections", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, float64(1), listed[0]["bookmark_count"])
}
