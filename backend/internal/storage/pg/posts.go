package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/devbook-dev/devbook/shared/domain"
	internal_errors "github.com/devbook-dev/devbook/shared/errors"
)

const selectPosts = `
        SELECT p.id, p.title, p.content, p.author_id, u.nick, p.likes, (p.created_at at time zone 'utc')
        FROM posts p
        JOIN users u ON u.id = p.author_id`

// =========================================================================
// Public Methods (satisfy the service.PostStorage interface)
// =========================================================================

// SavePost inserts a post and returns it with id, author nick and creation time.
func (s *Storage) SavePost(post domain.Post) (domain.Post, error) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var saved domain.Post
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := s.savePost(tx, post)
		if err != nil {
			return err
		}
		saved, err = s.postById(tx, id)
		return err
	})
	return saved, err
}

func (s *Storage) Post(id domain.PostId) (domain.Post, error) {
	return s.postById(s.db, id)
}

// Feed returns posts by userId and by everyone userId follows, newest first.
func (s *Storage) Feed(userId domain.UserId) ([]domain.Post, error) {
	return s.queryPosts(s.db, selectPosts+`
        WHERE p.author_id = $1
           OR p.author_id IN (SELECT user_id FROM followers WHERE follower_id = $1)
        ORDER BY p.id DESC`,
		userId,
	)
}

// PostsByUser returns posts written by userId, newest first.
func (s *Storage) PostsByUser(userId domain.UserId) ([]domain.Post, error) {
	return s.queryPosts(s.db, selectPosts+`
        WHERE p.author_id = $1
        ORDER BY p.id DESC`,
		userId,
	)
}

// UpdatePost changes title and content of an existing post.
func (s *Storage) UpdatePost(post domain.Post) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.execOnPost(tx, "Post not found for update",
			"UPDATE posts SET title = $1, content = $2 WHERE id = $3", post.Title, post.Content, post.Id)
	})
}

func (s *Storage) DeletePost(id domain.PostId) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.execOnPost(tx, "Post not found for deletion", "DELETE FROM posts WHERE id = $1", id)
	})
}

func (s *Storage) LikePost(id domain.PostId) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.execOnPost(tx, "Post not found", "UPDATE posts SET likes = likes + 1 WHERE id = $1", id)
	})
}

// DislikePost takes back one like, stopping at zero.
func (s *Storage) DislikePost(id domain.PostId) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.execOnPost(tx, "Post not found",
			"UPDATE posts SET likes = GREATEST(likes - 1, 0) WHERE id = $1", id)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) savePost(q Querier, post domain.Post) (domain.PostId, error) {
	var id domain.PostId
	err := q.QueryRow(`
        INSERT INTO posts(title, content, author_id)
        VALUES($1, $2, $3)
        RETURNING id`,
		post.Title, post.Content, post.AuthorId,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, &internal_errors.ErrorWithStatusCode{Message: "Author not found", StatusCode: http.StatusNotFound}
		}
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

func (s *Storage) postById(q Querier, id domain.PostId) (domain.Post, error) {
	var post domain.Post
	err := q.QueryRow(selectPosts+` WHERE p.id = $1`, id).
		Scan(&post.Id, &post.Title, &post.Content, &post.AuthorId, &post.AuthorNick, &post.Likes, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	return post, nil
}

func (s *Storage) queryPosts(q Querier, query string, args ...any) ([]domain.Post, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.Id, &post.Title, &post.Content, &post.AuthorId, &post.AuthorNick, &post.Likes, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, nil
}

// execOnPost runs a statement that must touch exactly one post.
func (s *Storage) execOnPost(q Querier, notFoundMsg, query string, args ...any) error {
	result, err := q.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to write post: %w", err)
	}
	return expectOneRow(result, notFoundMsg)
}
