package draft

import (
	"context"

	"storefront-orders/internal/domain"
)

// Repository is the local draft store: an append-only orders list used as the
// submission fallback, plus one "current cart" slot holding the in-progress
// cart snapshot.
type Repository interface {
	AppendOrder(ctx context.Context, order domain.OrderDraft) error
	ListOrders(ctx context.Context) ([]domain.OrderDraft, error)
	SaveCart(ctx context.Context, items []domain.CartItem) error
	LoadCart(ctx context.Context) ([]domain.CartItem, error)
	ClearCart(ctx context.Context) error
}
