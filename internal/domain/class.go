package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrClassNotFound indicates that the class is not found.
	ErrClassNotFound = errors.New("class not found")
	// ErrOwnClassJoin indicates a teacher joining their own class.
	ErrOwnClassJoin = errors.New("cannot join own class")
)

// Class holds a bookable class listing.
type Class struct {
	ID        int32           `json:"id"`
	Title     string          `json:"title"`
	Teacher   string          `json:"teacher"`
	Price     decimal.Decimal `json:"price"`
	Students  int32           `json:"students"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateClassParams is the input data to create a class.
type CreateClassParams struct {
	Title   string
	Teacher string
	Price   decimal.Decimal
}

// JoinClassResult is the outcome of a student joining a class: the updated
// class and the lesson payment that was charged.
type JoinClassResult struct {
	Class   Class            `json:"class"`
	Payment TransferTxResult `json:"payment"`
}
