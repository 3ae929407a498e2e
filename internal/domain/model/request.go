package model

import "github.com/shopspring/decimal"

// ItemRequest is a requested food position.
type ItemRequest struct {
	FoodID   int64
	Quantity int
}

// PlaceOrderRequest carries everything needed to create an order.
type PlaceOrderRequest struct {
	CustomerID       int64
	MerchantID       int64
	Items            []ItemRequest
	DeliveryLocation string
	PaymentMethod    PaymentMethod
}

// TransitionRequest describes a requested status change.
type TransitionRequest struct {
	Status          string
	RejectionReason string
	ProofImage      string
}

// WithdrawalRequest is a merchant payout request.
type WithdrawalRequest struct {
	Amount decimal.Decimal
	Payout PayoutDetails
}
