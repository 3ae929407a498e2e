package model

import "github.com/shopspring/decimal"

const (
	EventOrderNew          = "order:new"
	EventOrderStatusUpdate = "order:status_update"
)

// OrderNewPayload is pushed to the merchant when an order is placed.
type OrderNewPayload struct {
	OrderID int64           `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
	Message string          `json:"message"`
}

// OrderStatusPayload is pushed after a status transition.
type OrderStatusPayload struct {
	OrderID int64       `json:"orderId"`
	Status  OrderStatus `json:"status"`
	Message string      `json:"message"`
}
