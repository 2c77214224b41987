package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/devbook-dev/devbook/shared/domain"
	internal_errors "github.com/devbook-dev/devbook/shared/errors"
	"github.com/lib/pq"
)

const (
	uniqueViolation     = pq.ErrorCode("23505")
	foreignKeyViolation = pq.ErrorCode("23503")
	emailConstraintName = "users_email_key"
	nickConstraintName  = "users_nick_key"
)

// =========================================================================
// Public Methods (satisfy the service.UserStorage interface)
// =========================================================================

// SaveUser inserts a new user and returns it with id and creation time filled in.
func (s *Storage) SaveUser(user domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var saved domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		saved, err = s.saveUser(tx, user)
		return err
	})
	return saved, err
}

func (s *Storage) User(id domain.UserId) (domain.User, error) {
	return s.userBy(s.db, "id", id)
}

func (s *Storage) UserByEmail(email string) (domain.User, error) {
	return s.userBy(s.db, "email", email)
}

// SearchUsers returns users whose name or nick contains filter, ignoring case.
func (s *Storage) SearchUsers(filter string) ([]domain.User, error) {
	return s.searchUsers(s.db, filter)
}

// UpdateUser changes name, nick and email of an existing user.
func (s *Storage) UpdateUser(user domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updateUser(tx, user)
	})
}

func (s *Storage) DeleteUser(id domain.UserId) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteUser(tx, id)
	})
}

// UpdatePassword stores a new password hash.
func (s *Storage) UpdatePassword(id domain.UserId, passHash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePassword(tx, id, passHash)
	})
}

// Follow records followerId as a follower of userId. An existing pair is left as is.
func (s *Storage) Follow(userId, followerId domain.UserId) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.follow(tx, userId, followerId)
	})
}

func (s *Storage) Unfollow(userId, followerId domain.UserId) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.unfollow(tx, userId, followerId)
	})
}

// Followers lists the users following userId.
func (s *Storage) Followers(userId domain.UserId) ([]domain.User, error) {
	return s.queryUsers(s.db, `
        SELECT u.id, u.name, u.nick, u.email, (u.created_at at time zone 'utc')
        FROM users u
        JOIN followers f ON f.follower_id = u.id
        WHERE f.user_id = $1
        ORDER BY u.id`,
		userId,
	)
}

// Following lists the users followerId follows.
func (s *Storage) Following(followerId domain.UserId) ([]domain.User, error) {
	return s.queryUsers(s.db, `
        SELECT u.id, u.name, u.nick, u.email, (u.created_at at time zone 'utc')
        FROM users u
        JOIN followers f ON f.user_id = u.id
        WHERE f.follower_id = $1
        ORDER BY u.id`,
		followerId,
	)
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (domain.User, error) {
	err := q.QueryRow(`
        INSERT INTO users(name, nick, email, password_hash)
        VALUES($1, $2, $3, $4)
        RETURNING id, (created_at at time zone 'utc')`,
		user.Name, user.Nick, user.Email, user.PassHash,
	).Scan(&user.Id, &user.CreatedAt)
	if err != nil {
		if conflict := conflictError(err); conflict != nil {
			return domain.User{}, conflict
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

// userBy fetches one user by a trusted column name.
func (s *Storage) userBy(q Querier, column string, value any) (domain.User, error) {
	var user domain.User
	err := q.QueryRow(`
        SELECT id, name, nick, email, password_hash, (created_at at time zone 'utc')
        FROM users WHERE `+column+` = $1`,
		value,
	).Scan(&user.Id, &user.Name, &user.Nick, &user.Email, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) searchUsers(q Querier, filter string) ([]domain.User, error) {
	pattern := "%" + escapeLike(strings.ToLower(filter)) + "%"
	return s.queryUsers(q, `
        SELECT id, name, nick, email, (created_at at time zone 'utc')
        FROM users
        WHERE lower(name) LIKE $1 OR lower(nick) LIKE $1
        ORDER BY id`,
		pattern,
	)
}

// queryUsers runs a query selecting id, name, nick, email and created_at. Hashes are never listed.
func (s *Storage) queryUsers(q Querier, query string, args ...any) ([]domain.User, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.Id, &user.Name, &user.Nick, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func (s *Storage) updateUser(q Querier, user domain.User) error {
	result, err := q.Exec("UPDATE users SET name = $1, nick = $2, email = $3 WHERE id = $4",
		user.Name, user.Nick, user.Email, user.Id)
	if err != nil {
		if conflict := conflictError(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return expectOneRow(result, "User not found for update")
}

func (s *Storage) deleteUser(q Querier, id domain.UserId) error {
	result, err := q.Exec("DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return expectOneRow(result, "User not found for deletion")
}

func (s *Storage) updatePassword(q Querier, id domain.UserId, passHash string) error {
	result, err := q.Exec("UPDATE users SET password_hash = $1 WHERE id = $2", passHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return expectOneRow(result, "User not found for password update")
}

func (s *Storage) follow(q Querier, userId, followerId domain.UserId) error {
	_, err := q.Exec(`
        INSERT INTO followers(user_id, follower_id)
        VALUES($1, $2)
        ON CONFLICT DO NOTHING`,
		userId, followerId,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return fmt.Errorf("failed to follow user: %w", err)
	}
	return nil
}

func (s *Storage) unfollow(q Querier, userId, followerId domain.UserId) error {
	if _, err := q.Exec("DELETE FROM followers WHERE user_id = $1 AND follower_id = $2", userId, followerId); err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}
	return nil
}

func expectOneRow(result sql.Result, notFoundMsg string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: notFoundMsg, StatusCode: http.StatusNotFound}
	}
	return nil
}

// conflictError maps unique violations on email or nick to a 409. Anything else returns nil.
func conflictError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}
	switch pqErr.Constraint {
	case emailConstraintName:
		return &internal_errors.ErrorWithStatusCode{Message: "Email is already registered", StatusCode: http.StatusConflict}
	case nickConstraintName:
		return &internal_errors.ErrorWithStatusCode{Message: "Nick is already taken", StatusCode: http.StatusConflict}
	default:
		return &internal_errors.ErrorWithStatusCode{Message: "User already exists", StatusCode: http.StatusConflict}
	}
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
