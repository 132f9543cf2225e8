// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package post

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alumhub/alumhub/internal/platform/validate"
	"github.com/alumhub/alumhub/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for the community feed.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new feed [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
CreatePost publishes a new feed entry.

Parameters:
  - context: context.Context
  - authorID: The posting admin's subject ID
  - content: Post body (required, capped at 5000 characters)
  - postType: announcement or notification

Returns:
  - *Post: The persisted entry
  - error: Validation or persistence failures
*/
func (service *Service) CreatePost(context context.Context, authorID, content string, postType Type) (*Post, error) {
	v := &validate.Validator{}
	v.Required(FieldContent, content).MaxLen(FieldContent, content, 5000)
	v.OneOf(FieldType, string(postType), Types...)
	if err := v.Err(); err != nil {
		return nil, err
	}

	post := &Post{
		ID:       uuidv7.New(),
		AuthorID: authorID,
		Content:  content,
		Type:     postType,
	}
	if err := service.repository.Create(context, post); err != nil {
		return nil, fmt.Errorf("post_service_create_failed: %w", err)
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("type", string(postType)),
	)
	return post, nil
}

/*
ListFeed returns the community feed for a viewer, newest first.

Parameters:
  - context: context.Context
  - viewerID: Subject ID used to mark the viewer's own likes

Returns:
  - []*Post: Hydrated feed entries
  - error: Retrieval failures
*/
func (service *Service) ListFeed(context context.Context, viewerID string) ([]*Post, error) {
	posts, err := service.repository.List(context, viewerID)
	if err != nil {
		return nil, fmt.Errorf("post_service_list_failed: %w", err)
	}
	return posts, nil
}

// DeletePost removes a feed entry together with its engagement rows.
func (service *Service) DeletePost(context context.Context, postID string) error {
	if err := service.repository.Delete(context, postID); err != nil {
		return fmt.Errorf("post_service_delete_failed: %w", err)
	}

	service.logger.Info("post_deleted", slog.String("post_id", postID))
	return nil
}

// # Engagement

// Like records the member's like; liking twice is harmless.
func (service *Service) Like(context context.Context, postID, userID string) error {
	if err := service.repository.Like(context, postID, userID); err != nil {
		return fmt.Errorf("post_service_like_failed: %w", err)
	}
	return nil
}

// Unlike removes the member's like; removing an absent like is harmless.
func (service *Service) Unlike(context context.Context, postID, userID string) error {
	if err := service.repository.Unlike(context, postID, userID); err != nil {
		return fmt.Errorf("post_service_unlike_failed: %w", err)
	}
	return nil
}

/*
AddComment records a member reply on a post.

Parameters:
  - context: context.Context
  - postID: string
  - authorID: string
  - content: Comment body (required, capped at 2000 characters)

Returns:
  - *Comment: The persisted reply
  - error: Validation, unknown-post, or persistence failures
*/
func (service *Service) AddComment(context context.Context, postID, authorID, content string) (*Comment, error) {
	v := &validate.Validator{}
	if err := v.Required(FieldContent, content).MaxLen(FieldContent, content, 2000).Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuidv7.New(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := service.repository.AddComment(context, comment); err != nil {
		return nil, fmt.Errorf("post_service_comment_failed: %w", err)
	}
	return comment, nil
}

// ListComments returns a post's replies oldest-first.
func (service *Service) ListComments(context context.Context, postID string) ([]*Comment, error) {
	comments, err := service.repository.ListComments(context, postID)
	if err != nil {
		return nil, fmt.Errorf("post_service_list_comments_failed: %w", err)
	}
	return comments, nil
}
