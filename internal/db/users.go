package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrUserNotFound is returned when no account exists for an email.
var ErrUserNotFound = errors.New("user not found")

// NormalizeEmail lowercases and trims an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const userColumns = `id, email, is_paid, free_generations_used, total_generations, created_at, updated_at, paid_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.IsPaid, &u.FreeGenerationsUsed, &u.TotalGenerations, &u.CreatedAt, &u.UpdatedAt, &u.PaidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// GetOrCreateUser returns the account for an email, creating it on first
// contact. Concurrent first requests for the same email both succeed.
func (db *DB) GetOrCreateUser(ctx context.Context, email string) (*User, error) {
	email = NormalizeEmail(email)

	row := db.pool.QueryRow(ctx,
		`INSERT INTO users (id, email)
		 VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		 RETURNING `+userColumns,
		uuid.New(), email,
	)
	return scanUser(row)
}

// GetUserByEmail looks up an account without creating it.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		NormalizeEmail(email),
	)
	return scanUser(row)
}

// ConsumeGeneration atomically spends one generation for the user. The
// conditional update means two concurrent requests can never both take the
// last free slot; the loser sees false. Paid users always pass and only
// their total count moves.
func (db *DB) ConsumeGeneration(ctx context.Context, email string) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET
		     free_generations_used = free_generations_used + CASE WHEN is_paid THEN 0 ELSE 1 END,
		     total_generations = total_generations + 1,
		     updated_at = NOW()
		 WHERE email = $1 AND (is_paid OR free_generations_used < $2)`,
		NormalizeEmail(email), FreeGenerationLimit,
	)
	if err != nil {
		return false, fmt.Errorf("failed to consume generation: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RefundGeneration returns a slot taken by ConsumeGeneration when no
// document was produced. Counters never go below zero.
func (db *DB) RefundGeneration(ctx context.Context, email string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET
		     free_generations_used = GREATEST(free_generations_used - CASE WHEN is_paid THEN 0 ELSE 1 END, 0),
		     total_generations = GREATEST(total_generations - 1, 0),
		     updated_at = NOW()
		 WHERE email = $1`,
		NormalizeEmail(email),
	)
	if err != nil {
		return fmt.Errorf("failed to refund generation: %w", err)
	}
	return nil
}

// MarkUserPaid grants lifetime access. Already-paid users are untouched so
// repeated payment notifications stay idempotent.
func (db *DB) MarkUserPaid(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET is_paid = TRUE, paid_at = COALESCE(paid_at, NOW()), updated_at = NOW()
		 WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark user paid: %w", err)
	}
	return nil
}
