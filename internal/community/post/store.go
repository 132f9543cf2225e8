// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package post

import "context"

// Repository defines the persistence contract for the community feed.
type Repository interface {
	// Create persists a new feed post.
	Create(context context.Context, post *Post) error

	// List returns the feed newest-first, hydrated with author display data,
	// engagement counts, and the viewer's own like flag.
	List(context context.Context, viewerID string) ([]*Post, error)

	// Delete removes a post together with its likes and comments.
	// Returns apperr.NotFound for an unknown ID.
	Delete(context context.Context, postID string) error

	// Like records a member's like. Liking twice is a no-op.
	Like(context context.Context, postID, userID string) error

	// Unlike removes a member's like. Removing an absent like is a no-op.
	Unlike(context context.Context, postID, userID string) error

	// AddComment persists a member reply on a post.
	AddComment(context context.Context, comment *Comment) error

	// ListComments returns a post's comments oldest-first with author names.
	ListComments(context context.Context, postID string) ([]*Comment, error)
}
