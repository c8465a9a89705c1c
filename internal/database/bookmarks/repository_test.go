package bookmarks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookmarks/internal/entities"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Bookmark{}, &entities.Collection{}))
	return NewRepository(db)
}

func mustCreate(t *testing.T, repo *Repository, userID uint, title, url string, tags []string) *entities.Bookmark {
	t.Helper()
	bookmark := &entities.Bookmark{UserID: userID, Title: title, URL: url, Tags: tags}
	require.NoError(t, repo.CreateBookmark(bookmark))
	return bookmark
}

func TestCreateBookmark_NilTagsBecomeEmpty(t *testing.T) {
	repo := setupTestRepo(t)

	bookmark := mustCreate(t, repo, 1, "Example", "http://example.com", nil)
	assert.NotNil(t, bookmark.Tags)

	loaded, err := repo.GetBookmarkByID(bookmark.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{}, loaded.Tags)
}

func TestFindBookmarkByURL(t *testing.T) {
	repo := setupTestRepo(t)
	mustCreate(t, repo, 1, "Example", "http://example.com", nil)

	found, err := repo.FindBookmarkByURL("http://example.com", 1)
	require.NoError(t, err)
	require.NotNil(t, found)

	// Missing URL yields nil without an error
	missing, err := repo.FindBookmarkByURL("http://missing.com", 1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Other users do not see it
	other, err := repo.FindBookmarkByURL("http://example.com", 2)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestDeleteBookmark_ScopedToUser(t *testing.T) {
	repo := setupTestRepo(t)
	bookmark := mustCreate(t, repo, 1, "Example", "http://example.com", nil)

	err := repo.DeleteBookmark(bookmark.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteBookmark(bookmark.ID, 1))

	err = repo.DeleteBookmark(bookmark.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSearchBookmarks(t *testing.T) {
	repo := setupTestRepo(t)
	mustCreate(t, repo, 1, "Go blog", "http://blog.golang.org", nil)
	desc := "articles about databases"
	require.NoError(t, repo.CreateBookmark(&entities.Bookmark{
		UserID: 1, Title: "Misc", URL: "http://misc.com", Description: &desc,
	}))
	mustCreate(t, repo, 1, "News", "http://news.com", []string{"golang"})
	mustCreate(t, repo, 2, "Go weekly", "http://goweekly.com", nil)

	results, err := repo.SearchBookmarks("golang", 1)
	require.NoError(t, err)
	// Matches URL of one bookmark and tag of another, case-insensitively
	assert.Len(t, results, 2)

	results, err = repo.SearchBookmarks("DATABASES", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Misc", results[0].Title)
}

func TestGetBookmarksByTag_ExactMembership(t *testing.T) {
	repo := setupTestRepo(t)
	mustCreate(t, repo, 1, "A", "http://a.com", []string{"go"})
	mustCreate(t, repo, 1, "B", "http://b.com", []string{"golang"})
	mustCreate(t, repo, 1, "C", "http://c.com", []string{"go", "news"})

	found, err := repo.GetBookmarksByTag("go", 1)
	require.NoError(t, err)
	// "golang" contains "go" as a substring but is not an exact tag match
	require.Len(t, found, 2)
	for _, b := range found {
		assert.Contains(t, b.Tags, "go")
	}
}

func TestListTags_SortedByCountThenName(t *testing.T) {
	repo := setupTestRepo(t)
	mustCreate(t, repo, 1, "A", "http://a.com", []string{"go", "news"})
	mustCreate(t, repo, 1, "B", "http://b.com", []string{"go"})
	mustCreate(t, repo, 1, "C", "http://c.com", []string{"blog"})

	tags, err := repo.ListTags(1)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, TagCount{Name: "go", Count: 2}, tags[0])
	assert.Equal(t, TagCount{Name: "blog", Count: 1}, tags[1])
	assert.Equal(t, TagCount{Name: "news", Count: 1}, tags[2])
}

func TestDetachCollection(t *testing.T) {
	repo := setupTestRepo(t)
	collectionID := uint(5)
	require.NoError(t, repo.CreateBookmark(&entities.Bookmark{
		UserID: 1, Title: "A", URL: "http://a.com", CollectionID: &collectionID,
	}))
	require.NoError(t, repo.CreateBookmark(&entities.Bookmark{
		UserID: 1, Title: "B", URL: "http://b.com", CollectionID: &collectionID,
	}))

	count, err := repo.CountForCollection(collectionID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.DetachCollection(collectionID, 1))

	count, err = repo.CountForCollection(collectionID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	all, err := repo.GetBookmarksForUser(1, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
