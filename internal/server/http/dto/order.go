package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// OrderItemRequest is one requested position.
type OrderItemRequest struct {
	FoodID   int64 `json:"foodId"`
	Quantity int   `json:"quantity"`
}

// PlaceOrderRequest is the POST /api/orders body.
type PlaceOrderRequest struct {
	MerchantID       int64              `json:"merchantId"`
	Items            []OrderItemRequest `json:"items"`
	DeliveryLocation string             `json:"deliveryLocation"`
	PaymentMethod    string             `json:"paymentMethod,omitempty"`
}

// ToModel converts the body into a use case request for customerID.
func (r PlaceOrderRequest) ToModel(customerID int64) model.PlaceOrderRequest {
	return model.PlaceOrderRequest{
		CustomerID: customerID,
		MerchantID: r.MerchantID,
		Items: lo.Map(r.Items, func(i OrderItemRequest, _ int) model.ItemRequest {
			return model.ItemRequest{FoodID: i.FoodID, Quantity: i.Quantity}
		}),
		DeliveryLocation: r.DeliveryLocation,
		PaymentMethod:    model.PaymentMethod(r.PaymentMethod),
	}
}

// PlaceOrderResponse acknowledges a created order.
type PlaceOrderResponse struct {
	Message string          `json:"message"`
	OrderID int64           `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
}

// StatusUpdateRequest is the PUT /api/orders/:id/status body.
type StatusUpdateRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason,omitempty"`
	ProofImage      string `json:"proofImage,omitempty"`
}

// ToModel converts the body into a transition request.
func (r StatusUpdateRequest) ToModel() model.TransitionRequest {
	return model.TransitionRequest{Status: r.Status, RejectionReason: r.RejectionReason, ProofImage: r.ProofImage}
}

// OrderItemResponse is a persisted line item.
type OrderItemResponse struct {
	FoodID   int64           `json:"foodId"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID               int64               `json:"id"`
	CustomerID       int64               `json:"customerId"`
	MerchantID       int64               `json:"merchantId"`
	Status           string              `json:"status"`
	DeliveryLocation string              `json:"deliveryLocation"`
	PaymentMethod    string              `json:"paymentMethod"`
	BasePrice        decimal.Decimal     `json:"basePrice"`
	HandlingFee      decimal.Decimal     `json:"handlingFee"`
	Total            decimal.Decimal     `json:"total"`
	RejectionReason  *string             `json:"rejectionReason,omitempty"`
	ProofImage       *string             `json:"proofImage,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
	Items            []OrderItemResponse `json:"items"`
}

// StatusUpdateResponse acknowledges a transition.
type StatusUpdateResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		MerchantID:       o.MerchantID,
		Status:           string(o.Status),
		DeliveryLocation: o.DeliveryLocation,
		PaymentMethod:    string(o.PaymentMethod),
		BasePrice:        o.BasePrice,
		HandlingFee:      o.HandlingFee,
		Total:            o.Total,
		RejectionReason:  o.RejectionReason,
		ProofImage:       o.ProofImage,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		Items: lo.Map(o.Items, func(i model.OrderLineItem, _ int) OrderItemResponse {
			return OrderItemResponse{FoodID: i.FoodID, Quantity: i.Quantity, Price: i.Price}
		}),
	}
}

// NewOrderResponses maps a list of orders.
func NewOrderResponses(orders []model.Order) []OrderResponse {
	return lo.Map(orders, func(o model.Order, _ int) OrderResponse { return NewOrderResponse(o) })
}
