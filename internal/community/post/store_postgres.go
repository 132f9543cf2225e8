// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package post

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumhub/alumhub/internal/platform/dberr"
	"github.com/alumhub/alumhub/pkg/uuidv7"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed feed store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	const query = `
		INSERT INTO posts (id, author_id, content, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := repository.db.QueryRow(context, query,
		post.ID, post.AuthorID, post.Content, post.Type,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	return dberr.Wrap(err, "insert_post")
}

/*
List returns the feed newest-first.

Description: Author names are resolved from the users table; engagement counts
and the viewer's like flag come from correlated subqueries so the feed is one
round trip.
*/
func (repository *PostgresRepository) List(context context.Context, viewerID string) ([]*Post, error) {
	const query = `
		SELECT
			p.id, p.author_id, p.content, p.type,
			COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.email) AS author_name,
			(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count,
			(SELECT COUNT(*) FROM post_comments c WHERE c.post_id = p.id) AS comment_count,
			EXISTS (
				SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.user_id = $1
			) AS liked_by_caller,
			p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
	`

	rows, err := repository.db.Query(context, query, viewerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post := &Post{}
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Content, &post.Type,
			&post.AuthorName, &post.LikeCount, &post.CommentCount, &post.LikedByCaller,
			&post.CreatedAt, &post.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func (repository *PostgresRepository) Delete(context context.Context, postID string) error {
	const query = `DELETE FROM posts WHERE id = $1 RETURNING id`

	var deletedID string
	err := repository.db.QueryRow(context, query, postID).Scan(&deletedID)
	return dberr.Wrap(err, "delete_post")
}

// Like inserts the like row; the unique constraint makes a repeat a no-op.
func (repository *PostgresRepository) Like(context context.Context, postID, userID string) error {
	const query = `
		INSERT INTO post_likes (id, post_id, user_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (post_id, user_id) DO NOTHING
	`
	_, err := repository.db.Exec(context, query, uuidv7.New(), postID, userID)
	return dberr.Wrap(err, "insert_post_like")
}

func (repository *PostgresRepository) Unlike(context context.Context, postID, userID string) error {
	const query = `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	_, err := repository.db.Exec(context, query, postID, userID)
	return dberr.Wrap(err, "delete_post_like")
}

func (repository *PostgresRepository) AddComment(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO post_comments (id, post_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	err := repository.db.QueryRow(context, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content,
	).Scan(&comment.CreatedAt)
	return dberr.Wrap(err, "insert_post_comment")
}

func (repository *PostgresRepository) ListComments(context context.Context, postID string) ([]*Comment, error) {
	const query = `
		SELECT
			c.id, c.post_id, c.author_id,
			COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.email) AS author_name,
			c.content, c.created_at
		FROM post_comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := repository.db.Query(context, query, postID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_post_comments")
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID,
			&comment.AuthorName, &comment.Content, &comment.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_post_comment")
		}
		comments = append(comments, comment)
	}

	return comments, nil
}
