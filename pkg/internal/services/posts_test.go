package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chroniclehq/chronicle/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAuthor(t *testing.T, db *gorm.DB, username string) models.Account {
	t.Helper()
	account, err := NewAccount(db, username, username+"@example.com", "hunter22")
	require.NoError(t, err)
	return account
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category, err := NewCategory(db, testStore(t), name, "")
	require.NoError(t, err)
	return category
}

func TestNewPost(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	category := seedCategory(t, db, "Tech")

	item, err := NewPost(db, author, models.Post{
		Title:      "Hello, World!",
		Content:    "The very first post on this platform.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", item.Slug)
	assert.Equal(t, models.PostStatusDraft, item.Status)
	assert.Nil(t, item.PublishedAt)

	// Author and category come back expanded, not as bare identifiers.
	assert.Equal(t, "alice", item.Author.Username)
	assert.Equal(t, "tech", item.Category.Slug)
}

func TestNewPostConflict(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	category := seedCategory(t, db, "Tech")

	_, err := NewPost(db, author, models.Post{
		Title:      "Hello, World!",
		Content:    "First.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	// Identical title
	_, err = NewPost(db, author, models.Post{
		Title:      "Hello, World!",
		Content:    "Second.",
		CategoryID: category.ID,
	})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	// Different title, same derived slug: rejected, never renamed
	_, err = NewPost(db, author, models.Post{
		Title:      "Hello world",
		Content:    "Third.",
		CategoryID: category.ID,
	})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestNewPostPublished(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	category := seedCategory(t, db, "Tech")

	item, err := NewPost(db, author, models.Post{
		Title:      "Shipped",
		Content:    "It is out.",
		Status:     models.PostStatusPublished,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, item.PublishedAt, "publishing stamps published_at")
}

func TestListPostPagination(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	category := seedCategory(t, db, "Tech")

	for i := 1; i <= 13; i++ {
		_, err := NewPost(db, author, models.Post{
			Title:      fmt.Sprintf("Post number %d", i),
			Content:    "Body.",
			CategoryID: category.ID,
		})
		require.NoError(t, err)
	}

	page1, pagination, err := ListPost(db.Model(&models.Post{}), 1, 6)
	require.NoError(t, err)
	assert.Len(t, page1, 6)
	assert.Equal(t, int64(13), pagination.Total)
	assert.Equal(t, 3, pagination.Pages)

	page2, _, err := ListPost(db.Model(&models.Post{}), 2, 6)
	require.NoError(t, err)
	assert.Len(t, page2, 6)

	page3, _, err := ListPost(db.Model(&models.Post{}), 3, 6)
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	// Newest first; the last created post leads page one.
	assert.Equal(t, "Post number 13", page1[0].Title)

	// Identical parameters return an identical ordered result set.
	again, _, err := ListPost(db.Model(&models.Post{}), 1, 6)
	require.NoError(t, err)
	for i := range page1 {
		assert.Equal(t, page1[i].ID, again[i].ID)
	}
}

func TestListPostDefaults(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	category := seedCategory(t, db, "Tech")

	for i := 1; i <= 12; i++ {
		_, err := NewPost(db, author, models.Post{
			Title:      fmt.Sprintf("Post number %d", i),
			Content:    "Body.",
			CategoryID: category.ID,
		})
		require.NoError(t, err)
	}

	// Absent or non-positive parameters fall back to page 1, limit 10.
	items, pagination, err := ListPost(db.Model(&models.Post{}), 0, -5)
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 10, pagination.Limit)
	assert.Equal(t, 2, pagination.Pages)
}

func TestFilterPostWithFuzzySearch(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	category := seedCategory(t, db, "Tech")

	_, err := NewPost(db, author, models.Post{
		Title:      "Gopher habits",
		Content:    "They dig tunnels.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	_, err = NewPost(db, author, models.Post{
		Title:      "Unrelated",
		Content:    "Nothing about GOPHERS here... wait.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	_, err = NewPost(db, author, models.Post{
		Title:      "Cooking",
		Content:    "Pasta.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	// Case-insensitive substring match over title or content.
	items, _, err := ListPost(FilterPostWithFuzzySearch(db.Model(&models.Post{}), "gopher"), 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFilterPostWithCategory(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	tech := seedCategory(t, db, "Tech")
	life := seedCategory(t, db, "Life")

	_, err := NewPost(db, author, models.Post{Title: "On compilers", Content: "x", CategoryID: tech.ID})
	require.NoError(t, err)
	_, err = NewPost(db, author, models.Post{Title: "On gardening", Content: "x", CategoryID: life.ID})
	require.NoError(t, err)

	items, pagination, err := ListPost(FilterPostWithCategory(db.Model(&models.Post{}), tech.ID), 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), pagination.Total)
	assert.Equal(t, "On compilers", items[0].Title)
}

func TestEditPostRederivesSlug(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	category := seedCategory(t, db, "Tech")

	item, err := NewPost(db, author, models.Post{
		Title:      "Working title",
		Content:    "Body.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "working-title", item.Slug)

	item.Title = "Final Title!"
	item, err = EditPost(db, item)
	require.NoError(t, err)
	assert.Equal(t, "final-title", item.Slug)
	assert.NotNil(t, item.EditedAt)
}

func TestEditPostPublishStamps(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	category := seedCategory(t, db, "Tech")

	item, err := NewPost(db, author, models.Post{
		Title:      "Draft for now",
		Content:    "Body.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	require.Nil(t, item.PublishedAt)

	item.Status = models.PostStatusPublished
	item, err = EditPost(db, item)
	require.NoError(t, err)
	assert.NotNil(t, item.PublishedAt)
}

func TestDeletePostFreesTitle(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	category := seedCategory(t, db, "Tech")

	item, err := NewPost(db, author, models.Post{
		Title:      "Recycled",
		Content:    "First life.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	require.NoError(t, DeletePost(db, item))

	// The removal leaves no tombstone behind; title and slug free up.
	_, err = NewPost(db, author, models.Post{
		Title:      "Recycled",
		Content:    "Second life.",
		CategoryID: category.ID,
	})
	assert.NoError(t, err)
}

func TestDeletePostCascadesComments(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	category := seedCategory(t, db, "Tech")

	item, err := NewPost(db, author, models.Post{
		Title:      "Doomed",
		Content:    "Body.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	_, err = NewComment(db, author, item.ID, "first remark")
	require.NoError(t, err)
	_, err = NewComment(db, author, item.ID, "second remark")
	require.NoError(t, err)

	require.NoError(t, DeletePost(db, item))

	_, err = GetPost(db, item.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	comments, err := ListComment(db, item.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
