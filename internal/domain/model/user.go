package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role identifies which actor a user acts as.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is known.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleMerchant || r == RoleAdmin
}

// User represents a registered platform account.
type User struct {
	ID            int64
	Login         string
	PasswordHash  string
	Role          Role
	WalletBalance decimal.Decimal
	CreatedAt     time.Time
}

// Caller is the authenticated identity issuing a request.
type Caller struct {
	UserID int64
	Role   Role
}
