package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestInsufficientStockError_Is(t *testing.T) {
	var err error = &domain.InsufficientStockError{
		ProductID: "product-1",
		Requested: 5,
		Available: 2,
	}

	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatal("expected errors.Is to match ErrInsufficientStock")
	}

	wrapped := fmt.Errorf("create order: %w", err)
	if !errors.Is(wrapped, domain.ErrInsufficientStock) {
		t.Fatal("expected wrapped error to match ErrInsufficientStock")
	}

	var stockErr *domain.InsufficientStockError
	if !errors.As(wrapped, &stockErr) {
		t.Fatal("expected errors.As to extract InsufficientStockError")
	}
	if stockErr.Available != 2 {
		t.Fatalf("expected available 2, got %d", stockErr.Available)
	}
}

func TestInsufficientStockError_MessageNamesProduct(t *testing.T) {
	err := &domain.InsufficientStockError{
		ProductID:   "product-1",
		ProductName: "Teapot",
		Requested:   3,
		Available:   1,
	}
	if !strings.Contains(err.Error(), "Teapot") {
		t.Fatalf("expected message to name product, got %q", err.Error())
	}

	// Без названия товара в сообщении остаётся идентификатор.
	err.ProductName = ""
	if !strings.Contains(err.Error(), "product-1") {
		t.Fatalf("expected message to fall back to id, got %q", err.Error())
	}
}

func TestIsNotFound(t *testing.T) {
	for _, err := range []error{
		domain.ErrUserNotFound,
		domain.ErrProductNotFound,
		domain.ErrCartNotFound,
		domain.ErrCartItemNotFound,
		domain.ErrOrderNotFound,
	} {
		if !domain.IsNotFound(err) {
			t.Fatalf("expected %v to be classified as not-found", err)
		}
	}

	if domain.IsNotFound(domain.ErrInsufficientStock) {
		t.Fatal("insufficient stock is not a not-found error")
	}
}
