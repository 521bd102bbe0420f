package db

import (
	"time"

	"github.com/google/uuid"
)

// FreeGenerationLimit is the number of resumes a user can generate before
// payment is required.
const FreeGenerationLimit = 3

// User tracks an account's payment status and usage.
type User struct {
	ID                  uuid.UUID
	Email               string
	IsPaid              bool
	FreeGenerationsUsed int
	TotalGenerations    int
	CreatedAt           time.Time
	UpdatedAt           time.Time
	PaidAt              *time.Time
}

// CanGenerate reports whether the user is allowed another generation.
func (u *User) CanGenerate() bool {
	return u.IsPaid || u.FreeGenerationsUsed < FreeGenerationLimit
}

// RemainingFreeTries returns how many free generations are left, -1 for
// paid users.
func (u *User) RemainingFreeTries() int {
	if u.IsPaid {
		return -1
	}
	remaining := FreeGenerationLimit - u.FreeGenerationsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// UserStatus is the wire representation of an account's standing.
type UserStatus struct {
	Email                    string `json:"email"`
	IsPaid                   bool   `json:"is_paid"`
	FreeGenerationsUsed      int    `json:"free_generations_used"`
	FreeGenerationsRemaining int    `json:"free_generations_remaining"`
	CanGenerate              bool   `json:"can_generate"`
	TotalGenerations         int    `json:"total_generations"`
	NeedsPayment             bool   `json:"needs_payment"`
}

// Status builds the API view of the user.
func (u *User) Status() UserStatus {
	return UserStatus{
		Email:                    u.Email,
		IsPaid:                   u.IsPaid,
		FreeGenerationsUsed:      u.FreeGenerationsUsed,
		FreeGenerationsRemaining: u.RemainingFreeTries(),
		CanGenerate:              u.CanGenerate(),
		TotalGenerations:         u.TotalGenerations,
		NeedsPayment:             !u.IsPaid && u.FreeGenerationsUsed >= FreeGenerationLimit,
	}
}

// Payment tracks one payment transaction with a provider.
type Payment struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Amount            float64
	Currency          string
	Provider          string
	ProviderPaymentID string
	ProviderOrderID   string
	Status            string
	CryptoCurrency    string
	CryptoNetwork     string
	CryptoAmount      string
	CryptoAddress     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
}

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Usage event types recorded in analytics.
const (
	EventResumeGenerated  = "resume_generated"
	EventJobAnalyzed      = "job_analyzed"
	EventPaymentStarted   = "payment_started"
	EventPaymentCompleted = "payment_completed"
)
