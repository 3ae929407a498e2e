package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "pending"},
		{"cooking", OrderStatusCooking, "cooking"},
		{"delivered", OrderStatusDeliveredToShelter, "delivered_to_shelter"},
		{"completed", OrderStatusCompleted, "completed"},
		{"cancelled", OrderStatusCancelled, "cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			parsed, err := ParseOrderStatus(tc.value)
			if err != nil || parsed != tc.got {
				t.Fatalf("parse %q: got %v, %v", tc.value, parsed, err)
			}
		})
	}

	if _, err := ParseOrderStatus("shipped"); err != ErrUnknownOrderStatus {
		t.Fatalf("expected unknown status error, got %v", err)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	all := []OrderStatus{
		OrderStatusPending,
		OrderStatusCooking,
		OrderStatusDeliveredToShelter,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
	legal := map[[2]OrderStatus]bool{
		{OrderStatusPending, OrderStatusCooking}:              true,
		{OrderStatusPending, OrderStatusCancelled}:            true,
		{OrderStatusCooking, OrderStatusCancelled}:            true,
		{OrderStatusCooking, OrderStatusDeliveredToShelter}:   true,
		{OrderStatusDeliveredToShelter, OrderStatusCompleted}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := legal[[2]OrderStatus{from, to}]
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}

	for _, s := range all {
		terminal := s == OrderStatusCompleted || s == OrderStatusCancelled
		if s.IsTerminal() != terminal {
			t.Errorf("unexpected terminality for %s", s)
		}
	}
}

func TestOrderLineItemSubtotal(t *testing.T) {
	item := OrderLineItem{Quantity: 3, Price: decimal.RequireFromString("12.50")}
	if !item.Subtotal().Equal(decimal.RequireFromString("37.50")) {
		t.Fatalf("unexpected subtotal %s", item.Subtotal())
	}
}

func TestPaymentMethodAndRole(t *testing.T) {
	if !PaymentMethodWallet.Valid() || !PaymentMethodCash.Valid() || PaymentMethod("card").Valid() {
		t.Fatal("unexpected payment method validity")
	}
	if !(Order{PaymentMethod: PaymentMethodWallet}).WalletFunded() {
		t.Fatal("expected wallet order to be wallet funded")
	}
	if !RoleAdmin.Valid() || Role("root").Valid() {
		t.Fatal("unexpected role validity")
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2024-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", p.Start)
	}
	if !p.End().Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end %v", p.End())
	}
	if p.String() != "2024-02" {
		t.Fatalf("unexpected string %q", p.String())
	}

	for _, bad := range []string{"", "2024", "2024-13", "02-2024"} {
		if _, err := ParsePeriod(bad); err != ErrInvalidPeriod {
			t.Errorf("expected invalid period for %q, got %v", bad, err)
		}
	}
}

func TestLedgerTotalsDerived(t *testing.T) {
	totals := LedgerTotals{
		CompletedRevenue: decimal.NewFromInt(100000),
		ReservedPayouts:  decimal.NewFromInt(40000),
	}
	if !totals.Derived().Equal(decimal.NewFromInt(60000)) {
		t.Fatalf("unexpected derived balance %s", totals.Derived())
	}
}

func TestWithdrawalStatusTerminal(t *testing.T) {
	if WithdrawalStatusPending.IsTerminal() {
		t.Fatal("pending must not be terminal")
	}
	if !WithdrawalStatusApproved.IsTerminal() || !WithdrawalStatusRejected.IsTerminal() {
		t.Fatal("approved and rejected must be terminal")
	}
}
