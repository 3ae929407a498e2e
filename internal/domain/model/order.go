package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the order lifecycle.
type OrderStatus string

// remember to register new statuses in orderTransitions
const (
	OrderStatusPending            OrderStatus = "pending"
	OrderStatusCooking            OrderStatus = "cooking"
	OrderStatusDeliveredToShelter OrderStatus = "delivered_to_shelter"
	OrderStatusCompleted          OrderStatus = "completed"
	OrderStatusCancelled          OrderStatus = "cancelled"
)

// MaxItemQuantity bounds the quantity of one food in an order.
const MaxItemQuantity = 1000

// MaxMoney is the largest amount a NUMERIC(14,2) money column can hold.
var MaxMoney = decimal.RequireFromString("999999999999.99")

// ErrUnknownOrderStatus is returned for strings outside the status enum.
var ErrUnknownOrderStatus = errors.New("unknown order status")

// orderTransitions lists every legal target per source status. Terminal
// statuses have no entry.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:            {OrderStatusCooking, OrderStatusCancelled},
	OrderStatusCooking:            {OrderStatusDeliveredToShelter, OrderStatusCancelled},
	OrderStatusDeliveredToShelter: {OrderStatusCompleted},
}

var knownOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:            {},
	OrderStatusCooking:            {},
	OrderStatusDeliveredToShelter: {},
	OrderStatusCompleted:          {},
	OrderStatusCancelled:          {},
}

// ParseOrderStatus converts raw input into a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := knownOrderStatuses[status]; ok {
		return status, nil
	}
	return "", ErrUnknownOrderStatus
}

// IsTerminal reports whether no further transition is accepted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// PaymentMethod describes how the customer pays for an order.
type PaymentMethod string

const (
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodCash   PaymentMethod = "cash"
)

// Valid reports whether the payment method is supported.
func (p PaymentMethod) Valid() bool {
	return p == PaymentMethodWallet || p == PaymentMethodCash
}

// Order is a single-merchant food order picked up at a delivery point.
type Order struct {
	ID               int64
	CustomerID       int64
	MerchantID       int64
	Status           OrderStatus
	DeliveryLocation string
	PaymentMethod    PaymentMethod
	BasePrice        decimal.Decimal
	HandlingFee      decimal.Decimal
	Total            decimal.Decimal
	RejectionReason  *string
	ProofImage       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Items            []OrderLineItem
}

// WalletFunded reports whether the order total was debited from the customer wallet.
func (o Order) WalletFunded() bool {
	return o.PaymentMethod == PaymentMethodWallet
}

// OrderLineItem is an order position with the unit price frozen at creation.
type OrderLineItem struct {
	OrderID    int64
	FoodID     int64
	MerchantID int64
	Quantity   int
	Price      decimal.Decimal
}

// Subtotal returns price multiplied by quantity.
func (i OrderLineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// StatusChange carries the columns written together with a status transition.
type StatusChange struct {
	From            OrderStatus
	To              OrderStatus
	RejectionReason *string
	ProofImage      *string
}
