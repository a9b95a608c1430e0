package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// helper для создания базового заказа с одной позицией.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:              "order-1",
		Number:          "ORD-20260830-000001",
		UserID:          "user-1",
		Status:          domain.OrderStatusPending,
		ShippingAddress: "Some Street 1",
		AmountMinor:     50000,
		Items: []domain.OrderItem{
			{
				ID:         "item-1",
				OrderID:    "order-1",
				ProductID:  "product-1",
				Quantity:   5,
				PriceMinor: 10000,
			},
		},
		CreatedAt: now,
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
		want error
	}{
		{
			name: "no user",
			mut: func(o *domain.Order) {
				o.UserID = ""
			},
			want: domain.ErrUserIDRequired,
		},
		{
			name: "no shipping address",
			mut: func(o *domain.Order) {
				o.ShippingAddress = ""
			},
			want: domain.ErrShippingAddressRequired,
		},
		{
			name: "no items",
			mut: func(o *domain.Order) {
				o.Items = nil
				o.AmountMinor = 0
			},
			want: domain.ErrItemsRequired,
		},
		{
			name: "negative amount",
			mut: func(o *domain.Order) {
				o.AmountMinor = -1
			},
			want: domain.ErrAmountNegative,
		},
		{
			name: "zero quantity",
			mut: func(o *domain.Order) {
				o.Items[0].Quantity = 0
			},
			want: domain.ErrItemQtyInvalid,
		},
		{
			name: "amount mismatch",
			mut: func(o *domain.Order) {
				o.AmountMinor = 49999
			},
			want: domain.ErrAmountMismatch,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)

			errs := order.ValidateInvariants()
			if len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			for _, err := range errs {
				if errors.Is(err, tc.want) {
					return
				}
			}
			t.Fatalf("expected %v among %v", tc.want, errs)
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	valid := []string{"Pending", "Confirmed", "Shipped", "Delivered", "Cancelled"}
	for _, value := range valid {
		status, err := domain.ParseOrderStatus(value)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", value, err)
		}
		if string(status) != value {
			t.Fatalf("expected %q, got %q", value, status)
		}
	}

	invalid := []string{"", "pending", "NotARealStatus", "Delivered "}
	for _, value := range invalid {
		if _, err := domain.ParseOrderStatus(value); !errors.Is(err, domain.ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus for %q, got %v", value, err)
		}
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	if !domain.OrderStatusDelivered.IsTerminal() || !domain.OrderStatusCancelled.IsTerminal() {
		t.Fatal("Delivered and Cancelled must be terminal")
	}
	if domain.OrderStatusPending.IsTerminal() || domain.OrderStatusShipped.IsTerminal() {
		t.Fatal("Pending and Shipped must not be terminal")
	}
}
