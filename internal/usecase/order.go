package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domainErrors "github.com/polkiloo/foodcourt/internal/domain/errors"
	"github.com/polkiloo/foodcourt/internal/domain/model"
	"github.com/polkiloo/foodcourt/internal/domain/repository"
)

var tracer = otel.Tracer("github.com/polkiloo/foodcourt/internal/usecase")

// Notifier pushes real-time events to connected users.
type Notifier interface {
	Publish(userID int64, event string, payload any)
}

// OrderUseCase encapsulates order intake and lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	foods    repository.FoodRepository
	users    repository.UserRepository
	notifier Notifier
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	foods repository.FoodRepository,
	users repository.UserRepository,
	notifier Notifier,
	logger *slog.Logger,
) *OrderUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderUseCase{orders: orders, foods: foods, users: users, notifier: notifier, logger: logger}
}

// Place prices and persists a new order and notifies the merchant.
func (u *OrderUseCase) Place(ctx context.Context, in model.PlaceOrderRequest) (order *model.Order, err error) {
	ctx, span := tracer.Start(ctx, "OrderUseCase.Place", trace.WithAttributes(
		attribute.Int64("customer.id", in.CustomerID),
		attribute.Int64("merchant.id", in.MerchantID),
	))
	defer func() { endSpan(span, err) }()

	if in.PaymentMethod == "" {
		in.PaymentMethod = model.PaymentMethodWallet
	}
	in.DeliveryLocation = strings.TrimSpace(in.DeliveryLocation)
	if err := validatePlaceInput(in); err != nil {
		return nil, err
	}

	requested := mergeItems(in.Items)
	for _, item := range requested {
		if item.Quantity > model.MaxItemQuantity {
			return nil, domainErrors.Validation(fmt.Sprintf("quantity of food %d exceeds %d", item.FoodID, model.MaxItemQuantity))
		}
	}
	ids := lo.Map(requested, func(item model.ItemRequest, _ int) int64 { return item.FoodID })

	foods, err := u.foods.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	catalog := lo.KeyBy(foods, func(f model.Food) int64 { return f.ID })

	for _, item := range requested {
		food, ok := catalog[item.FoodID]
		if !ok || !food.Available {
			return nil, fmt.Errorf("%w: %d", domainErrors.ErrFoodNotFound, item.FoodID)
		}
	}

	items := make([]model.OrderLineItem, 0, len(requested))
	for _, item := range requested {
		food := catalog[item.FoodID]
		if food.MerchantID != in.MerchantID {
			return nil, domainErrors.ErrCrossMerchantItems
		}
		items = append(items, model.OrderLineItem{
			FoodID:     food.ID,
			MerchantID: food.MerchantID,
			Quantity:   item.Quantity,
			Price:      food.Price,
		})
	}

	quote := QuoteItems(items)
	if quote.Total.GreaterThan(model.MaxMoney) {
		return nil, domainErrors.Validation("order total exceeds the supported amount")
	}

	if in.PaymentMethod == model.PaymentMethodWallet {
		customer, err := u.users.GetByID(ctx, in.CustomerID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.Validation("unknown customer")
			}
			return nil, err
		}
		if customer.WalletBalance.LessThan(quote.Total) {
			return nil, domainErrors.ErrInsufficientBalance
		}
	}

	order, err = u.orders.Create(ctx, &model.Order{
		CustomerID:       in.CustomerID,
		MerchantID:       in.MerchantID,
		Status:           model.OrderStatusPending,
		DeliveryLocation: in.DeliveryLocation,
		PaymentMethod:    in.PaymentMethod,
		BasePrice:        quote.BasePrice,
		HandlingFee:      quote.HandlingFee,
		Total:            quote.Total,
		Items:            items,
	})
	if err != nil {
		return nil, err
	}
	u.logger.InfoContext(ctx, "order placed", slog.Int64("order_id", order.ID), slog.String("total", order.Total.String()))

	u.publish(order.MerchantID, model.EventOrderNew, model.OrderNewPayload{
		OrderID: order.ID,
		Total:   order.Total,
		Message: "New order received",
	})
	return order, nil
}

// Transition moves the order along the lifecycle on behalf of caller.
func (u *OrderUseCase) Transition(ctx context.Context, caller model.Caller, orderID int64, req model.TransitionRequest) (order *model.Order, err error) {
	ctx, span := tracer.Start(ctx, "OrderUseCase.Transition", trace.WithAttributes(
		attribute.Int64("order.id", orderID),
		attribute.String("order.target_status", req.Status),
	))
	defer func() { endSpan(span, err) }()

	target, err := model.ParseOrderStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return nil, domainErrors.Validation("unknown order status")
	}

	change := model.StatusChange{To: target}
	switch target {
	case model.OrderStatusCancelled:
		reason := strings.TrimSpace(req.RejectionReason)
		if reason == "" {
			return nil, domainErrors.Validation("rejection reason is required")
		}
		change.RejectionReason = &reason
	case model.OrderStatusDeliveredToShelter:
		proof := strings.TrimSpace(req.ProofImage)
		if proof == "" {
			return nil, domainErrors.Validation("proof image is required")
		}
		change.ProofImage = &proof
	}

	current, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canSee(caller, current) {
		return nil, domainErrors.ErrForbidden
	}
	if !canMove(caller, current, target) {
		return nil, domainErrors.ErrForbidden
	}
	if !current.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", domainErrors.ErrConflict, current.Status, target)
	}

	change.From = current.Status
	order, err = u.orders.Transition(ctx, orderID, change)
	if err != nil {
		return nil, err
	}
	u.logger.InfoContext(ctx, "order status changed",
		slog.Int64("order_id", order.ID),
		slog.String("from", string(change.From)),
		slog.String("to", string(order.Status)),
	)

	recipient := order.CustomerID
	if target == model.OrderStatusCompleted {
		recipient = order.MerchantID
	}
	u.publish(recipient, model.EventOrderStatusUpdate, model.OrderStatusPayload{
		OrderID: order.ID,
		Status:  order.Status,
		Message: statusMessage(order.Status),
	})
	return order, nil
}

// Get returns a single order visible to caller.
func (u *OrderUseCase) Get(ctx context.Context, caller model.Caller, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canSee(caller, order) {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// List returns orders scoped to caller role, newest first.
func (u *OrderUseCase) List(ctx context.Context, caller model.Caller) ([]model.Order, error) {
	var filter repository.OrderFilter
	switch caller.Role {
	case model.RoleCustomer:
		filter.CustomerID = caller.UserID
	case model.RoleMerchant:
		filter.MerchantID = caller.UserID
	case model.RoleAdmin:
	default:
		return nil, domainErrors.ErrForbidden
	}
	return u.orders.List(ctx, filter)
}

func (u *OrderUseCase) publish(userID int64, event string, payload any) {
	if u.notifier == nil {
		return
	}
	u.notifier.Publish(userID, event, payload)
}

func validatePlaceInput(in model.PlaceOrderRequest) error {
	switch {
	case in.CustomerID <= 0:
		return domainErrors.Validation("customerId is required")
	case in.MerchantID <= 0:
		return domainErrors.Validation("merchantId is required")
	case len(in.Items) == 0:
		return domainErrors.Validation("at least one item is required")
	case in.DeliveryLocation == "":
		return domainErrors.Validation("deliveryLocation is required")
	case !in.PaymentMethod.Valid():
		return domainErrors.Validation("unsupported payment method")
	}
	for _, item := range in.Items {
		if item.FoodID <= 0 {
			return domainErrors.Validation("foodId is required")
		}
		if item.Quantity < 1 {
			return domainErrors.Validation("quantity must be at least 1")
		}
		if item.Quantity > model.MaxItemQuantity {
			return domainErrors.Validation(fmt.Sprintf("quantity must be at most %d", model.MaxItemQuantity))
		}
	}
	return nil
}

// mergeItems sums quantities of repeated foods keeping first-seen order.
func mergeItems(items []model.ItemRequest) []model.ItemRequest {
	merged := make([]model.ItemRequest, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, item := range items {
		if i, ok := index[item.FoodID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.FoodID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

func canSee(caller model.Caller, order *model.Order) bool {
	switch caller.Role {
	case model.RoleAdmin:
		return true
	case model.RoleMerchant:
		return order.MerchantID == caller.UserID
	case model.RoleCustomer:
		return order.CustomerID == caller.UserID
	}
	return false
}

// canMove reports whether caller may request target on order. Pending is
// never a legal target and is rejected later as a conflict.
func canMove(caller model.Caller, order *model.Order, target model.OrderStatus) bool {
	owner := caller.Role == model.RoleMerchant && order.MerchantID == caller.UserID
	switch target {
	case model.OrderStatusCooking, model.OrderStatusDeliveredToShelter:
		return owner
	case model.OrderStatusCancelled:
		return owner || caller.Role == model.RoleAdmin
	case model.OrderStatusCompleted:
		return caller.Role == model.RoleCustomer && order.CustomerID == caller.UserID
	case model.OrderStatusPending:
		return true
	}
	return false
}

func statusMessage(status model.OrderStatus) string {
	switch status {
	case model.OrderStatusCooking:
		return "Your order is being prepared"
	case model.OrderStatusCancelled:
		return "Your order was rejected"
	case model.OrderStatusDeliveredToShelter:
		return "Your order has arrived at the shelter"
	case model.OrderStatusCompleted:
		return "Order picked up by the customer"
	}
	return "Order status updated"
}

func endSpan(span trace.Span, err error) {
	if err != nil && !isDomainError(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

var domainSentinels = []error{
	domainErrors.ErrAlreadyExists,
	domainErrors.ErrNotFound,
	domainErrors.ErrInvalidCredentials,
	domainErrors.ErrInsufficientBalance,
	domainErrors.ErrInvalidAmount,
	domainErrors.ErrValidation,
	domainErrors.ErrFoodNotFound,
	domainErrors.ErrCrossMerchantItems,
	domainErrors.ErrConflict,
	domainErrors.ErrForbidden,
	domainErrors.ErrNothingToInvoice,
}

func isDomainError(err error) bool {
	return lo.ContainsBy(domainSentinels, func(target error) bool { return errors.Is(err, target) })
}
