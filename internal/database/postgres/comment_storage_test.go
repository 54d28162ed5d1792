package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/logger"
)

type commentFixture struct {
	storage *CommentStorage
	photo   *domain.Photo
	author  *domain.User
	top     *domain.Comment
	reply   *domain.Comment
}

func newCommentFixture(t *testing.T) commentFixture {
	t.Helper()
	db := newTestDB(t)
	s := NewCommentStorage(db, logger.NewNop())
	author := seedUser(t, db, 1, "author")
	photo := seedPhoto(t, db, author, nil)

	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	older := &domain.Comment{Content: "first", UserID: author.ID, PhotoID: photo.ID, CreatedAt: base}
	require.NoError(t, s.SaveComment(ctx, older))
	top := &domain.Comment{Content: "second", UserID: author.ID, PhotoID: photo.ID, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, s.SaveComment(ctx, top))
	reply := &domain.Comment{Content: "reply", UserID: author.ID, PhotoID: photo.ID, ParentID: &top.ID, CreatedAt: base.Add(2 * time.Minute)}
	require.NoError(t, s.SaveComment(ctx, reply))

	return commentFixture{storage: s, photo: photo, author: author, top: top, reply: reply}
}

func TestListTopLevelCommentsWithReplies(t *testing.T) {
	f := newCommentFixture(t)

	comments, err := f.storage.ListComments(context.Background(), f.photo.ID, nil)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "first", comments[1].Content)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "reply", comments[0].Replies[0].Content)
	require.NotNil(t, comments[0].Replies[0].User)
	assert.Equal(t, "author", comments[0].Replies[0].User.NickName)
}

func TestListRepliesOfParent(t *testing.T) {
	f := newCommentFixture(t)

	replies, err := f.storage.ListComments(context.Background(), f.photo.ID, &f.top.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, f.reply.ID, replies[0].ID)

	empty, err := f.storage.ListComments(context.Background(), 12345, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteCommentCascade(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	require.NoError(t, f.storage.DeleteComment(ctx, f.top, domain.CommentDeleteCascade))

	_, err := f.storage.GetCommentByID(ctx, f.reply.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.storage.GetCommentByID(ctx, f.top.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCommentReparent(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	require.NoError(t, f.storage.DeleteComment(ctx, f.top, domain.CommentDeleteReparent))

	reply, err := f.storage.GetCommentByID(ctx, f.reply.ID)
	require.NoError(t, err)
	assert.Nil(t, reply.ParentID)

	top, err := f.storage.ListComments(ctx, f.photo.ID, nil)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestDeleteCommentReject(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	err := f.storage.DeleteComment(ctx, f.top, domain.CommentDeleteReject)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.storage.GetCommentByID(ctx, f.top.ID)
	require.NoError(t, err)

	require.NoError(t, f.storage.DeleteComment(ctx, f.reply, domain.CommentDeleteReject))
}
