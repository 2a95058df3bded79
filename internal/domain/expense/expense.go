package expense

import (
	"context"
	"errors"
	"time"
)

var (
	ErrExpenseNotFound = errors.New("expense: not found")
	ErrInvalidAmount   = errors.New("expense: amount must be positive")
)

type ExpenseID string

// Expense is an operating cost entry (maintenance, supplies, wages).
type Expense struct {
	ID        ExpenseID
	Date      time.Time
	Category  string
	Note      string
	Amount    float64
	CreatedAt time.Time
}

type Repository interface {
	List(ctx context.Context) ([]*Expense, error)
	Insert(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id ExpenseID) error
}

// New validates and builds an expense entry.
func New(id ExpenseID, date time.Time, category, note string, amount float64, now time.Time) (*Expense, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Expense{
		ID:        id,
		Date:      date,
		Category:  category,
		Note:      note,
		Amount:    amount,
		CreatedAt: now.UTC(),
	}, nil
}
