package services

import (
	"errors"
	"testing"
	"time"

	"github.com/chroniclehq/chronicle/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPost(t *testing.T, db *gorm.DB, author models.Account) models.Post {
	t.Helper()
	category := seedCategory(t, db, "Tech")
	item, err := NewPost(db, author, models.Post{
		Title:      "A post worth remarking on",
		Content:    "Body.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	return item
}

func TestNewComment(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	post := seedPost(t, db, author)

	item, err := NewComment(db, author, post.ID, "well said")
	require.NoError(t, err)

	assert.Equal(t, post.ID, item.PostID)
	assert.Equal(t, "alice", item.Author.Username, "author comes back expanded")
}

func TestNewCommentValidation(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	post := seedPost(t, db, author)

	_, err := NewComment(db, author, post.ID, "hm")
	assert.Error(t, err, "content below the minimum length is rejected")

	_, err = NewComment(db, author, post.ID, "   ")
	assert.Error(t, err)
}

func TestNewCommentMissingPost(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")

	_, err := NewComment(db, author, 9999, "talking to nobody")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestListCommentOrdering(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	post := seedPost(t, db, author)

	base := time.Now().Add(-time.Hour)

	// Insert out of order on purpose; listing must come back oldest first.
	for _, tc := range []struct {
		content string
		at      time.Time
	}{
		{"third", base.Add(3 * time.Minute)},
		{"first", base.Add(1 * time.Minute)},
		{"second", base.Add(2 * time.Minute)},
	} {
		item := models.Comment{
			BaseModel: models.BaseModel{CreatedAt: tc.at},
			Content:   tc.content,
			PostID:    post.ID,
			AuthorID:  author.ID,
		}
		require.NoError(t, db.Create(&item).Error)
	}

	items, err := ListComment(db, post.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Content)
	assert.Equal(t, "second", items[1].Content)
	assert.Equal(t, "third", items[2].Content)
}

func TestEditComment(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	post := seedPost(t, db, author)

	item, err := NewComment(db, author, post.ID, "first draft")
	require.NoError(t, err)

	item, err = EditComment(db, item, "second thoughts")
	require.NoError(t, err)
	assert.Equal(t, "second thoughts", item.Content)

	_, err = EditComment(db, item, "x")
	assert.Error(t, err)
}

func TestDeleteComment(t *testing.T) {
	db := testDB(t)
	author := seedAuthor(t, db, "alice")
	post := seedPost(t, db, author)

	item, err := NewComment(db, author, post.ID, "soon gone")
	require.NoError(t, err)

	require.NoError(t, DeleteComment(db, item))

	items, err := ListComment(db, post.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
