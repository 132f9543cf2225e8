// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package post implements the community feed: announcements, notifications,
likes, and comments.

Feed posts are written by admins (and by system flows such as departure
announcements and pledge notifications); every approved member can read,
like, and comment.
*/
package post

import "time"

// # Taxonomy

// Type distinguishes the two feed entry kinds.
type Type string

const (
	// TypeAnnouncement marks admin-authored (and departure) announcements.
	TypeAnnouncement Type = "announcement"

	// TypeNotification marks system-generated entries such as pledge notices.
	TypeNotification Type = "notification"
)

// Types lists every valid feed entry kind.
var Types = []string{string(TypeAnnouncement), string(TypeNotification)}

// # Core Entities

// Post is one community feed entry, hydrated with author display data and
// engagement counts for list rendering.
type Post struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`
	Content  string `json:"content"`
	Type     Type   `json:"type"`

	// Joined display data
	AuthorName    string `json:"author_name"`
	LikeCount     int    `json:"like_count"`
	CommentCount  int    `json:"comment_count"`
	LikedByCaller bool   `json:"liked_by_caller"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is a member reply on a feed post.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// # JSON Field Identifiers

const (
	FieldContent = "content"
	FieldType    = "type"
)
