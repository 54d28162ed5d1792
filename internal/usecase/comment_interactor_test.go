package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/logger"
)

type commentFixture struct {
	uc        CommentUseCase
	comments  *fakeCommentStorage
	photos    *fakePhotoStorage
	publisher *fakePublisher
}

func newCommentFixture(t *testing.T, policy domain.CommentDeletePolicy) commentFixture {
	t.Helper()
	photos := newFakePhotoStorage()
	require.NoError(t, photos.SavePhoto(context.Background(), &domain.Photo{UserID: owner.ID, KakaoID: owner.KakaoID}))
	require.NoError(t, photos.SavePhoto(context.Background(), &domain.Photo{UserID: owner.ID, KakaoID: owner.KakaoID}))

	comments := newFakeCommentStorage()
	publisher := &fakePublisher{}
	return commentFixture{
		uc:        NewCommentUseCase(comments, photos, publisher, policy, logger.NewNop()),
		comments:  comments,
		photos:    photos,
		publisher: publisher,
	}
}

func TestCreateCommentAndReply(t *testing.T) {
	f := newCommentFixture(t, domain.CommentDeleteCascade)
	ctx := context.Background()
	visitor := &domain.User{ID: 7, KakaoID: 7007, NickName: "visitor"}

	top, err := f.uc.CreateComment(ctx, visitor, 1, CreateCommentInput{Content: "  nice cut  "})
	require.NoError(t, err)
	assert.Equal(t, "nice cut", top.Content)
	assert.Nil(t, top.ParentID)
	assert.Equal(t, "visitor", top.User.NickName)

	reply, err := f.uc.CreateComment(ctx, owner, 1, CreateCommentInput{Content: "thanks", ParentID: &top.ID})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, top.ID, *reply.ParentID)

	require.Len(t, f.publisher.events, 2)
	ev := f.publisher.events[0]
	assert.Equal(t, domain.NotificationComment, ev.Type)
	assert.Equal(t, owner.ID, ev.RecipientUserID)
	assert.Equal(t, visitor.ID, ev.ActorUserID)
	require.NotNil(t, ev.CommentID)
	assert.Equal(t, top.ID, *ev.CommentID)
}

func TestCreateCommentRejects(t *testing.T) {
	f := newCommentFixture(t, domain.CommentDeleteCascade)
	ctx := context.Background()

	top, err := f.uc.CreateComment(ctx, owner, 1, CreateCommentInput{Content: "top"})
	require.NoError(t, err)
	reply, err := f.uc.CreateComment(ctx, owner, 1, CreateCommentInput{Content: "reply", ParentID: &top.ID})
	require.NoError(t, err)
	missing := int64(999)

	t.Run("empty content", func(t *testing.T) {
		_, err := f.uc.CreateComment(ctx, owner, 1, CreateCommentInput{Content: "   "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("anonymous", func(t *testing.T) {
		_, err := f.uc.CreateComment(ctx, nil, 1, CreateCommentInput{Content: "hi"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
	t.Run("unknown photo", func(t *testing.T) {
		_, err := f.uc.CreateComment(ctx, owner, 42, CreateCommentInput{Content: "hi"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("unknown parent", func(t *testing.T) {
		_, err := f.uc.CreateComment(ctx, owner, 1, CreateCommentInput{Content: "hi", ParentID: &missing})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("parent on another photo", func(t *testing.T) {
		_, err := f.uc.CreateComment(ctx, owner, 2, CreateCommentInput{Content: "hi", ParentID: &top.ID})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("reply to a reply", func(t *testing.T) {
		_, err := f.uc.CreateComment(ctx, owner, 1, CreateCommentInput{Content: "hi", ParentID: &reply.ID})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestDeleteCommentPermissions(t *testing.T) {
	f := newCommentFixture(t, domain.CommentDeleteReparent)
	ctx := context.Background()
	author := &domain.User{ID: 7, KakaoID: 7007}
	stranger := &domain.User{ID: 8, KakaoID: 8008}

	c1, err := f.uc.CreateComment(ctx, author, 1, CreateCommentInput{Content: "one"})
	require.NoError(t, err)
	c2, err := f.uc.CreateComment(ctx, author, 1, CreateCommentInput{Content: "two"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.DeleteComment(ctx, stranger, c1.ID), domain.ErrForbidden)
	assert.ErrorIs(t, f.uc.DeleteComment(ctx, nil, c1.ID), domain.ErrUnauthorized)
	assert.Contains(t, f.comments.comments, c1.ID)

	require.NoError(t, f.uc.DeleteComment(ctx, author, c1.ID))
	assert.Equal(t, domain.CommentDeleteReparent, f.comments.deletedWith)

	// the photo owner moderates comments on their photo
	require.NoError(t, f.uc.DeleteComment(ctx, owner, c2.ID))
	assert.Equal(t, c2.ID, f.comments.deletedID)

	assert.ErrorIs(t, f.uc.DeleteComment(ctx, author, c2.ID), domain.ErrNotFound)
}

func TestListCommentsPassesParent(t *testing.T) {
	f := newCommentFixture(t, domain.CommentDeleteCascade)
	ctx := context.Background()

	_, err := f.uc.CreateComment(ctx, owner, 1, CreateCommentInput{Content: "a"})
	require.NoError(t, err)

	list, err := f.uc.ListComments(ctx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Nil(t, f.comments.listParentID)

	parent := int64(1)
	_, err = f.uc.ListComments(ctx, 1, &parent)
	require.NoError(t, err)
	require.NotNil(t, f.comments.listParentID)
	assert.Equal(t, parent, *f.comments.listParentID)
}
