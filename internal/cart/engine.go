// Package cart owns the local in-memory cart and keeps it reconciled with
// the remote per-user cart. Every mutation is optimistic-then-confirm: the
// local list reflects the intent immediately, the matching remote call is
// fired, and a full re-fetch of the remote cart afterwards is the sole
// authority over local state.
package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/shopease/go_shop/internal/domain"
)

// ErrAuthRequired is returned when a mutation is attempted with no active
// session. No network call is made in that case.
var ErrAuthRequired = errors.New("cart: log in first")

// Remote is the slice of the backend the engine drives.
// Consumers define this interface; *api.Client satisfies it.
type Remote interface {
	GetCart(ctx context.Context, userID string) ([]domain.CartItem, error)
	AddToCart(ctx context.Context, userID string, product domain.Product) error
	RemoveFromCart(ctx context.Context, userID, productName string) error
	DecreaseQuantity(ctx context.Context, userID, productName string) error
	IncreaseCount(ctx context.Context, userID string, productID int64, productName string) error
}

// Sessions supplies the current user identity.
type Sessions interface {
	Current() (domain.UserSession, bool)
}

// RemoveMode selects between decrementing a cart item and dropping it.
type RemoveMode int

const (
	// ModeDecrement lowers the count by one; a count of one removes the item.
	ModeDecrement RemoveMode = iota
	// ModeRemove drops the item regardless of its count.
	ModeRemove
)

// Engine holds the canonical local cart. Items are keyed by ProdID and the
// count of an item is never zero or negative.
type Engine struct {
	remote   Remote
	sessions Sessions
	logger   *zap.Logger

	sfg singleflight.Group // collapses concurrent re-fetches per user

	mu      sync.Mutex
	items   []domain.CartItem
	pending int
}

func NewEngine(remote Remote, sessions Sessions, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		remote:   remote,
		sessions: sessions,
		logger:   logger,
	}
}

// Items returns a copy of the current cart in order.
func (e *Engine) Items() []domain.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.CartItem, len(e.items))
	copy(out, e.items)
	return out
}

// Get returns the cart item with the given ProdID.
func (e *Engine) Get(prodID int64) (domain.CartItem, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, item := range e.items {
		if item.ProdID == prodID {
			return item, true
		}
	}
	return domain.CartItem{}, false
}

// Pending reports how many mutations are still inside their optimistic
// window, i.e. applied locally but not yet confirmed by a re-fetch.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// Fetch replaces the local cart wholesale with the remote one. With no
// active session the cart is anonymous-empty and Fetch is a no-op, not an
// error. Concurrent fetches for the same user share one remote call.
func (e *Engine) Fetch(ctx context.Context) error {
	user, ok := e.sessions.Current()
	if !ok {
		return nil
	}

	v, err, _ := e.sfg.Do(user.UserID, func() (interface{}, error) {
		return e.remote.GetCart(ctx, user.UserID)
	})
	if err != nil {
		return err
	}

	items := v.([]domain.CartItem)
	e.mu.Lock()
	e.items = append(e.items[:0:0], items...)
	e.mu.Unlock()
	return nil
}

// Add puts the product in the cart. A duplicate add increments the existing
// entry. Requires a session; the remote add and the confirming re-fetch are
// best-effort.
func (e *Engine) Add(ctx context.Context, product domain.Product) error {
	user, ok := e.sessions.Current()
	if !ok {
		return ErrAuthRequired
	}

	e.mu.Lock()
	if i := e.indexOf(product.ProdID); i >= 0 {
		e.items[i].Count++
	} else {
		e.items = append(e.items, domain.CartItem{Product: product, Count: 1})
	}
	e.pending++
	e.mu.Unlock()
	defer e.finish(ctx)

	if err := e.remote.AddToCart(ctx, user.UserID, product); err != nil {
		e.logger.Warn("add to cart not persisted", zap.Int64("prod_id", product.ProdID), zap.Error(err))
	}
	return nil
}

// Remove takes the item with the given ProdID out of the cart. In
// ModeDecrement the count drops by one and the item goes away at zero; in
// ModeRemove the item is dropped outright. Removing an absent item is a
// no-op in both modes.
func (e *Engine) Remove(ctx context.Context, prodID int64, mode RemoveMode) error {
	user, ok := e.sessions.Current()
	if !ok {
		return ErrAuthRequired
	}

	e.mu.Lock()
	i := e.indexOf(prodID)
	if i < 0 {
		e.mu.Unlock()
		return nil
	}
	name := e.items[i].Name
	if mode == ModeDecrement && e.items[i].Count > 1 {
		e.items[i].Count--
	} else {
		e.items = append(e.items[:i], e.items[i+1:]...)
	}
	e.pending++
	e.mu.Unlock()
	defer e.finish(ctx)

	var err error
	if mode == ModeRemove {
		err = e.remote.RemoveFromCart(ctx, user.UserID, name)
	} else {
		err = e.remote.DecreaseQuantity(ctx, user.UserID, name)
	}
	if err != nil {
		e.logger.Warn("cart removal not persisted", zap.Int64("prod_id", prodID), zap.Error(err))
	}
	return nil
}

// Increase bumps the count of the item with the given ProdID by one. Items
// with a different identity are untouched; an absent item is a no-op.
func (e *Engine) Increase(ctx context.Context, prodID int64) error {
	user, ok := e.sessions.Current()
	if !ok {
		return ErrAuthRequired
	}

	e.mu.Lock()
	i := e.indexOf(prodID)
	if i < 0 {
		e.mu.Unlock()
		return nil
	}
	e.items[i].Count++
	name := e.items[i].Name
	e.pending++
	e.mu.Unlock()
	defer e.finish(ctx)

	if err := e.remote.IncreaseCount(ctx, user.UserID, prodID, name); err != nil {
		e.logger.Warn("cart increase not persisted", zap.Int64("prod_id", prodID), zap.Error(err))
	}
	return nil
}

// finish closes the optimistic window of one mutation: it runs the
// confirming re-fetch, whose failure leaves the optimistic state in place
// until the next successful Fetch.
func (e *Engine) finish(ctx context.Context) {
	if err := e.Fetch(ctx); err != nil {
		e.logger.Warn("cart re-fetch failed, keeping optimistic state", zap.Error(err))
	}
	e.mu.Lock()
	e.pending--
	e.mu.Unlock()
}

// indexOf must be called with e.mu held.
func (e *Engine) indexOf(prodID int64) int {
	for i, item := range e.items {
		if item.ProdID == prodID {
			return i
		}
	}
	return -1
}
