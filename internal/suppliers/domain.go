package suppliers

import (
	"errors"
	"time"
)

var (
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrTransactionNotFound = errors.New("supplier transaction not found")
	ErrNameRequired        = errors.New("supplier name is required")
)

// Supplier carries a stored running balance. The balance is adjusted
// additively on every transaction and invoice; it is never derived from
// history on the read path, so deleting rows leaves it untouched.
type Supplier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transaction is one ledger movement against a supplier. A positive amount
// increases the balance owed to the supplier, a negative one decreases it.
type Transaction struct {
	ID          int64     `json:"id"`
	SupplierID  int64     `json:"supplier_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// Invoice is a supplier bill. Recording one moves the balance by its amount
// exactly like a transaction does.
type Invoice struct {
	ID         int64     `json:"id"`
	SupplierID int64     `json:"supplier_id"`
	Number     string    `json:"number,omitempty"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UpdateInput applies only the fields that are set.
type UpdateInput struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Contact  *string `json:"contact,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}
