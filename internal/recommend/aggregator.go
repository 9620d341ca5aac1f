// Package recommend aggregates the four recommendation feeds into one
// tab-selectable view. The collaborative, brand-related and top-rated feeds
// are independent; the hybrid feed is dispatched only after the
// collaborative feed has resolved with at least one entry, since its seed
// item comes from there.
package recommend

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shopease/go_shop/internal/domain"
)

// relatedLimit caps the brand-related feed, matching what the view renders.
const relatedLimit = 15

// DefaultFallbackSeed is the hybrid seed used when no collaborative result
// carries a usable name. Override with WithFallbackSeed.
const DefaultFallbackSeed = "shampoo"

// Source is the slice of the backend the aggregator reads.
// Consumers define this interface; *api.Client satisfies it.
type Source interface {
	CollaborativeRecommendations(ctx context.Context, userID string) ([]domain.Product, error)
	BrandRecommendations(ctx context.Context, userID string) ([]domain.Product, error)
	TopRated(ctx context.Context) ([]domain.Product, error)
	HybridRecommendations(ctx context.Context, userID, seedItem string) ([]domain.Product, error)
}

// Sessions supplies the current user identity.
type Sessions interface {
	Current() (domain.UserSession, bool)
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithFallbackSeed overrides the hybrid seed used when no collaborative
// result is available.
func WithFallbackSeed(seed string) Option {
	return func(a *Aggregator) { a.fallbackSeed = seed }
}

// Aggregator owns the four feed result sets and the selected tab.
// Each set is mutated only here; readers get copies.
type Aggregator struct {
	source       Source
	sessions     Sessions
	logger       *zap.Logger
	fallbackSeed string

	mu   sync.Mutex
	sets [domain.FeedCount][]domain.Product
	errs [domain.FeedCount]string
	tab  domain.Feed
}

func NewAggregator(source Source, sessions Sessions, logger *zap.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Aggregator{
		source:       source,
		sessions:     sessions,
		logger:       logger,
		fallbackSeed: DefaultFallbackSeed,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Refresh loads all feeds. The three independent feeds run in parallel and
// fail independently; a failure only flags that feed's error state. The
// hybrid fetch runs afterwards and only once the collaborative set is
// non-empty. Cancelling ctx discards any in-flight result without applying
// it.
func (a *Aggregator) Refresh(ctx context.Context) {
	user, loggedIn := a.sessions.Current()

	g, gctx := errgroup.WithContext(ctx)

	if loggedIn {
		g.Go(func() error {
			products, err := a.source.CollaborativeRecommendations(gctx, user.UserID)
			if err != nil {
				a.fail(gctx, domain.FeedCollaborative, err)
				return nil
			}
			rated := products[:0:0]
			for _, p := range products {
				if p.Rating > 0.0 {
					rated = append(rated, p)
				}
			}
			a.store(gctx, domain.FeedCollaborative, rated)
			return nil
		})
		g.Go(func() error {
			products, err := a.source.BrandRecommendations(gctx, user.UserID)
			if err != nil {
				a.fail(gctx, domain.FeedRelated, err)
				return nil
			}
			if len(products) > relatedLimit {
				products = products[:relatedLimit]
			}
			a.store(gctx, domain.FeedRelated, products)
			return nil
		})
	}
	g.Go(func() error {
		products, err := a.source.TopRated(gctx)
		if err != nil {
			a.fail(gctx, domain.FeedTopRated, err)
			return nil
		}
		a.store(gctx, domain.FeedTopRated, products)
		return nil
	})
	_ = g.Wait() // feed errors live in per-feed state, never here

	if !loggedIn {
		return
	}
	if collaborative := a.Tab(domain.FeedCollaborative); len(collaborative) > 0 {
		a.fetchHybrid(ctx, user.UserID, collaborative[0].Name)
	}
}

// fetchHybrid issues the dependent hybrid fetch with the given seed item.
// Exposed through Refresh only; the guard there keeps the ordering
// invariant that a hybrid request never races an empty collaborative set.
func (a *Aggregator) fetchHybrid(ctx context.Context, userID, seed string) {
	if seed == "" {
		seed = a.fallbackSeed
		a.logger.Warn("hybrid seed missing, using fallback", zap.String("seed", seed))
	}
	products, err := a.source.HybridRecommendations(ctx, userID, seed)
	if err != nil {
		a.fail(ctx, domain.FeedHybrid, err)
		return
	}
	a.store(ctx, domain.FeedHybrid, products)
}

func (a *Aggregator) store(ctx context.Context, feed domain.Feed, products []domain.Product) {
	if ctx.Err() != nil {
		return // view is gone, drop the result
	}
	a.mu.Lock()
	a.sets[feed] = products
	a.errs[feed] = ""
	a.mu.Unlock()
}

func (a *Aggregator) fail(ctx context.Context, feed domain.Feed, err error) {
	if ctx.Err() != nil {
		return
	}
	a.logger.Warn("recommendation feed failed", zap.Stringer("feed", feed), zap.Error(err))
	a.mu.Lock()
	a.errs[feed] = "Failed to fetch " + feed.String() + " recommendations."
	a.mu.Unlock()
}

// SelectTab makes tab k the active one. Out-of-range values are ignored.
// Selecting a tab is a pure read elsewhere: it never triggers a fetch.
func (a *Aggregator) SelectTab(k domain.Feed) {
	if k < 0 || k >= domain.FeedCount {
		return
	}
	a.mu.Lock()
	a.tab = k
	a.mu.Unlock()
}

// Selected returns the active tab index.
func (a *Aggregator) Selected() domain.Feed {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tab
}

// Tab returns a copy of tab k's current contents.
func (a *Aggregator) Tab(k domain.Feed) []domain.Product {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Product(nil), a.sets[k]...)
}

// Current returns the active tab's result set.
func (a *Aggregator) Current() domain.RecommendationSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return domain.RecommendationSet{
		Feed:     a.tab,
		Products: append([]domain.Product(nil), a.sets[a.tab]...),
	}
}

// Err returns feed k's display error, empty when the feed is healthy.
func (a *Aggregator) Err(k domain.Feed) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errs[k]
}
