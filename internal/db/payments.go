package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrPaymentNotFound is returned when no payment matches a provider lookup.
var ErrPaymentNotFound = errors.New("payment not found")

const paymentColumns = `id, user_id, amount, currency, provider, coalesce(provider_payment_id, ''),
	coalesce(provider_order_id, ''), status, coalesce(crypto_currency, ''), coalesce(crypto_network, ''),
	coalesce(crypto_amount, ''), coalesce(crypto_address, ''), created_at, updated_at, completed_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.Currency, &p.Provider, &p.ProviderPaymentID,
		&p.ProviderOrderID, &p.Status, &p.CryptoCurrency, &p.CryptoNetwork,
		&p.CryptoAmount, &p.CryptoAddress, &p.CreatedAt, &p.UpdatedAt, &p.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return &p, nil
}

// CreatePaymentParams holds the fields for a new payment record.
type CreatePaymentParams struct {
	UserID            uuid.UUID
	Amount            float64
	Currency          string
	Provider          string
	ProviderPaymentID string
	ProviderOrderID   string
	CryptoCurrency    string
	CryptoNetwork     string
}

// CreatePayment inserts a pending payment and returns it.
func (db *DB) CreatePayment(ctx context.Context, params CreatePaymentParams) (*Payment, error) {
	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO payments (id, user_id, amount, currency, provider, provider_payment_id,
		                       provider_order_id, crypto_currency, crypto_network)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))
		 RETURNING `+paymentColumns,
		uuid.New(), params.UserID, params.Amount, currency, params.Provider,
		params.ProviderPaymentID, params.ProviderOrderID, params.CryptoCurrency, params.CryptoNetwork,
	)
	return scanPayment(row)
}

// GetPaymentByProviderOrder finds a payment by the provider's order ID.
func (db *DB) GetPaymentByProviderOrder(ctx context.Context, provider, orderID string) (*Payment, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE provider = $1 AND provider_order_id = $2`,
		provider, orderID,
	)
	return scanPayment(row)
}

// GetPaymentByProviderPayment finds a payment by the provider's payment ID.
func (db *DB) GetPaymentByProviderPayment(ctx context.Context, provider, paymentID string) (*Payment, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE provider = $1 AND provider_payment_id = $2`,
		provider, paymentID,
	)
	return scanPayment(row)
}

// CompletePayment marks a payment completed and grants the payer lifetime
// access, in one transaction. Completing an already-completed payment is a
// no-op, so duplicate provider callbacks are safe.
func (db *DB) CompletePayment(ctx context.Context, paymentID uuid.UUID) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID uuid.UUID
	err = tx.QueryRow(ctx,
		`UPDATE payments SET status = $1, completed_at = NOW(), updated_at = NOW()
		 WHERE id = $2 AND status <> $1
		 RETURNING user_id`,
		PaymentCompleted, paymentID,
	).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Already completed.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to complete payment: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET is_paid = TRUE, paid_at = COALESCE(paid_at, NOW()), updated_at = NOW()
		 WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark payer as paid: %w", err)
	}

	return tx.Commit(ctx)
}

// FailPayment marks a payment failed.
func (db *DB) FailPayment(ctx context.Context, paymentID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2`,
		PaymentFailed, paymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark payment failed: %w", err)
	}
	return nil
}
