package ledger

import "errors"

var (
	// ErrInvalidAmount means the request carried no positive amount, or a
	// negative one. Rejected before any store access.
	ErrInvalidAmount = errors.New("either added or subtracted must be greater than zero")

	// ErrClientNotFound means the referenced client does not exist
	ErrClientNotFound = errors.New("client not found")

	// ErrAccountNotFound means no account row exists where one is required
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound means the referenced transaction does not exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNegativeBalance means the operation would drive the balance below zero
	ErrNegativeBalance = errors.New("operation would result in negative balance")

	// ErrConflict is returned by the store when a concurrent write collided
	// with this unit of work. The engine retries the whole operation.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrTransactionFailed covers any other failure inside a unit of work.
	// The work was rolled back; no partial state is visible.
	ErrTransactionFailed = errors.New("transaction failed")
)

// IsBusinessError reports whether err is one of the engine's typed rejections,
// as opposed to an infrastructure failure.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrNegativeBalance)
}
