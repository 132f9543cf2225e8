// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package post

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumhub/alumhub/internal/platform/apperr"
)

// memoryRepository is an in-memory Repository mirroring the store semantics.
type memoryRepository struct {
	posts    []*Post
	likes    map[string]map[string]bool // postID -> userID
	comments map[string][]*Comment
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		likes:    make(map[string]map[string]bool),
		comments: make(map[string][]*Comment),
	}
}

func (repository *memoryRepository) Create(_ context.Context, post *Post) error {
	clone := *post
	repository.posts = append(repository.posts, &clone)
	return nil
}

func (repository *memoryRepository) List(_ context.Context, viewerID string) ([]*Post, error) {
	var out []*Post
	for i := len(repository.posts) - 1; i >= 0; i-- {
		clone := *repository.posts[i]
		clone.LikeCount = len(repository.likes[clone.ID])
		clone.CommentCount = len(repository.comments[clone.ID])
		clone.LikedByCaller = repository.likes[clone.ID][viewerID]
		out = append(out, &clone)
	}
	return out, nil
}

func (repository *memoryRepository) Delete(_ context.Context, postID string) error {
	for i, post := range repository.posts {
		if post.ID == postID {
			repository.posts = append(repository.posts[:i], repository.posts[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Post")
}

func (repository *memoryRepository) Like(_ context.Context, postID, userID string) error {
	if repository.likes[postID] == nil {
		repository.likes[postID] = make(map[string]bool)
	}
	repository.likes[postID][userID] = true
	return nil
}

func (repository *memoryRepository) Unlike(_ context.Context, postID, userID string) error {
	delete(repository.likes[postID], userID)
	return nil
}

func (repository *memoryRepository) AddComment(_ context.Context, comment *Comment) error {
	clone := *comment
	repository.comments[comment.PostID] = append(repository.comments[comment.PostID], &clone)
	return nil
}

func (repository *memoryRepository) ListComments(_ context.Context, postID string) ([]*Comment, error) {
	return repository.comments[postID], nil
}

func newTestService() (*Service, *memoryRepository) {
	repository := newMemoryRepository()
	return NewService(repository, slog.New(slog.DiscardHandler)), repository
}

/*
TestService_CreatePost verifies publication and content/type validation.
*/
func TestService_CreatePost(t *testing.T) {
	service, _ := newTestService()

	post, err := service.CreatePost(context.Background(), "admin-1", "Homecoming is on!", TypeAnnouncement)
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, TypeAnnouncement, post.Type)

	testCases := []struct {
		name     string
		content  string
		postType Type
	}{
		{name: "empty_content", content: "", postType: TypeAnnouncement},
		{name: "unknown_type", content: "hello", postType: Type("rant")},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.CreatePost(context.Background(), "admin-1", testCase.content, testCase.postType)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_LikeLifecycle verifies like idempotence and the viewer flag.
*/
func TestService_LikeLifecycle(t *testing.T) {
	service, _ := newTestService()

	post, err := service.CreatePost(context.Background(), "admin-1", "Reunion photos are up.", TypeAnnouncement)
	require.NoError(t, err)

	require.NoError(t, service.Like(context.Background(), post.ID, "member-1"))
	require.NoError(t, service.Like(context.Background(), post.ID, "member-1")) // idempotent
	require.NoError(t, service.Like(context.Background(), post.ID, "member-2"))

	feed, err := service.ListFeed(context.Background(), "member-1")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, 2, feed[0].LikeCount)
	assert.True(t, feed[0].LikedByCaller)

	require.NoError(t, service.Unlike(context.Background(), post.ID, "member-1"))

	feed, err = service.ListFeed(context.Background(), "member-1")
	require.NoError(t, err)
	assert.Equal(t, 1, feed[0].LikeCount)
	assert.False(t, feed[0].LikedByCaller)
}

/*
TestService_Comments verifies comment creation, ordering, and validation.
*/
func TestService_Comments(t *testing.T) {
	service, _ := newTestService()

	post, err := service.CreatePost(context.Background(), "admin-1", "Welcome new members!", TypeAnnouncement)
	require.NoError(t, err)

	_, err = service.AddComment(context.Background(), post.ID, "member-1", "Glad to be here.")
	require.NoError(t, err)
	_, err = service.AddComment(context.Background(), post.ID, "member-2", "Same!")
	require.NoError(t, err)

	_, err = service.AddComment(context.Background(), post.ID, "member-1", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	comments, err := service.ListComments(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Glad to be here.", comments[0].Content)
}

/*
TestService_DeletePost verifies removal and the not-found path.
*/
func TestService_DeletePost(t *testing.T) {
	service, repository := newTestService()

	post, err := service.CreatePost(context.Background(), "admin-1", "Old news.", TypeNotification)
	require.NoError(t, err)

	require.NoError(t, service.DeletePost(context.Background(), post.ID))
	assert.Empty(t, repository.posts)

	err = service.DeletePost(context.Background(), post.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
