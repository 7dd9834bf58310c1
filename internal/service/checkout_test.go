package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/identifier"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/repository"
)

func pricedLine(productID, name string, quantity int, unitPrice string) repository.PricedLine {
	return repository.PricedLine{
		ProductID:   productID,
		ProductName: name,
		Quantity:    quantity,
		UnitPrice:   decimal.RequireFromString(unitPrice),
	}
}

func newCheckoutServiceForTest(orderRepo *fakeOrderRepo, clearer CartClearer, publisher OrderEventPublisher, features config.FeatureFlags) *CheckoutService {
	cfg := &config.Config{Features: features}
	return NewCheckoutService(orderRepo, clearer, publisher, cfg, zap.NewNop())
}

func TestCheckout_SnapshotsPricesAndTotals(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.pricedLines[testCartID] = []repository.PricedLine{
		pricedLine(testProductID, "Keyboard", 2, "25.00"),
		pricedLine("a7b74386-9162-4e06-a4a0-b51cf0cb5f43", "Mouse", 1, "50.00"),
	}
	svc := newCheckoutServiceForTest(orderRepo, nil, nil, config.FeatureFlags{})

	order, err := svc.Checkout(context.Background(), testCartID)

	require.NoError(t, err)
	require.NoError(t, identifier.Validate(order.ID))
	assert.Equal(t, testCartID, order.CartID)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("100.00")),
		"got total %s", order.TotalAmount)

	require.Len(t, order.Lines, 2)
	for _, line := range order.Lines {
		assert.True(t, line.Subtotal.Equal(decimal.RequireFromString("50.00")),
			"got subtotal %s", line.Subtotal)
		assert.Equal(t, order.ID, line.OrderID)
	}
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.pricedLines[testCartID] = nil
	svc := newCheckoutServiceForTest(orderRepo, nil, nil, config.FeatureFlags{})

	_, err := svc.Checkout(context.Background(), testCartID)

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "cartId", vErr.Field)
	assert.Zero(t, orderRepo.createCalls, "no order must be written for an empty cart")
}

func TestCheckout_MissingCartRejectedLikeEmpty(t *testing.T) {
	svc := newCheckoutServiceForTest(newFakeOrderRepo(), nil, nil, config.FeatureFlags{})

	_, err := svc.Checkout(context.Background(), testCartID)

	var vErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestCheckout_InvalidCartID(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := newCheckoutServiceForTest(orderRepo, nil, nil, config.FeatureFlags{})

	_, err := svc.Checkout(context.Background(), "definitely-not-a-uuid")

	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
	assert.Zero(t, orderRepo.createCalls)
}

func TestCheckout_OrderImmutableAfterPriceChange(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.pricedLines[testCartID] = []repository.PricedLine{
		pricedLine(testProductID, "Keyboard", 1, "79.99"),
	}
	svc := newCheckoutServiceForTest(orderRepo, nil, nil, config.FeatureFlags{})

	order, err := svc.Checkout(context.Background(), testCartID)
	require.NoError(t, err)

	// Catalog price changes after checkout; the stored order keeps the
	// price it was created with.
	orderRepo.pricedLines[testCartID][0].UnitPrice = decimal.RequireFromString("999.99")

	got, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, got.Lines[0].UnitPrice.Equal(decimal.RequireFromString("79.99")))
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("79.99")))
}

func TestCheckout_ResponseMatchesLaterLookup(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.pricedLines[testCartID] = []repository.PricedLine{
		pricedLine(testProductID, "Keyboard", 3, "79.99"),
	}
	svc := newCheckoutServiceForTest(orderRepo, nil, nil, config.FeatureFlags{})

	order, err := svc.Checkout(context.Background(), testCartID)
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestCheckout_CartKeptByDefault(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.pricedLines[testCartID] = []repository.PricedLine{
		pricedLine(testProductID, "Keyboard", 1, "79.99"),
	}
	clearer := &fakeClearer{}
	svc := newCheckoutServiceForTest(orderRepo, clearer, nil, config.FeatureFlags{})

	_, err := svc.Checkout(context.Background(), testCartID)

	require.NoError(t, err)
	assert.Empty(t, clearer.cleared)
}

func TestCheckout_ClearsCartWhenPolicyEnabled(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.pricedLines[testCartID] = []repository.PricedLine{
		pricedLine(testProductID, "Keyboard", 1, "79.99"),
	}
	clearer := &fakeClearer{}
	svc := newCheckoutServiceForTest(orderRepo, clearer, nil,
		config.FeatureFlags{ClearCartOnCheckout: true})

	_, err := svc.Checkout(context.Background(), testCartID)

	require.NoError(t, err)
	assert.Equal(t, []string{testCartID}, clearer.cleared)
}

func TestCheckout_PublishesOrderCreatedEvent(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.pricedLines[testCartID] = []repository.PricedLine{
		pricedLine(testProductID, "Keyboard", 1, "79.99"),
	}
	publisher := &fakePublisher{}
	svc := newCheckoutServiceForTest(orderRepo, nil, publisher,
		config.FeatureFlags{EnableOrderEvents: true})

	order, err := svc.Checkout(context.Background(), testCartID)

	require.NoError(t, err)
	assert.Equal(t, []string{order.ID}, publisher.published)
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.pricedLines[testCartID] = []repository.PricedLine{
		pricedLine(testProductID, "Keyboard", 1, "79.99"),
	}
	publisher := &fakePublisher{err: assert.AnError}
	svc := newCheckoutServiceForTest(orderRepo, nil, publisher,
		config.FeatureFlags{EnableOrderEvents: true})

	order, err := svc.Checkout(context.Background(), testCartID)

	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestCheckout_StorageFailurePropagates(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.pricedLines[testCartID] = []repository.PricedLine{
		pricedLine(testProductID, "Keyboard", 1, "79.99"),
	}
	orderRepo.createErr = assert.AnError
	svc := newCheckoutServiceForTest(orderRepo, nil, nil, config.FeatureFlags{})

	_, err := svc.Checkout(context.Background(), testCartID)

	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetOrder_InvalidID(t *testing.T) {
	svc := newCheckoutServiceForTest(newFakeOrderRepo(), nil, nil, config.FeatureFlags{})

	_, err := svc.GetOrder(context.Background(), "oops")

	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := newCheckoutServiceForTest(newFakeOrderRepo(), nil, nil, config.FeatureFlags{})

	_, err := svc.GetOrder(context.Background(), testCartID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
