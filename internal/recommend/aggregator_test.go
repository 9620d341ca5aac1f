package recommend

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopease/go_shop/internal/domain"
)

type mockSessions struct {
	user *domain.UserSession
}

func (m *mockSessions) Current() (domain.UserSession, bool) {
	if m.user == nil {
		return domain.UserSession{}, false
	}
	return *m.user, true
}

func loggedIn() *mockSessions {
	return &mockSessions{user: &domain.UserSession{UserID: "42", Name: "U"}}
}

type mockSource struct {
	m sync.Mutex

	collaborative []domain.Product
	related       []domain.Product
	topRated      []domain.Product
	hybrid        []domain.Product

	collaborativeErr error
	relatedErr       error
	topRatedErr      error
	hybridErr        error

	collaborativeCalls int
	relatedCalls       int
	topRatedCalls      int
	hybridCalls        int
	hybridSeed         string
}

func (m *mockSource) CollaborativeRecommendations(context.Context, string) ([]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.collaborativeCalls++
	return m.collaborative, m.collaborativeErr
}

func (m *mockSource) BrandRecommendations(context.Context, string) ([]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.relatedCalls++
	return m.related, m.relatedErr
}

func (m *mockSource) TopRated(context.Context) ([]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.topRatedCalls++
	return m.topRated, m.topRatedErr
}

func (m *mockSource) HybridRecommendations(_ context.Context, _, seed string) ([]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.hybridCalls++
	m.hybridSeed = seed
	return m.hybrid, m.hybridErr
}

func (m *mockSource) calls(field *int) int {
	m.m.Lock()
	defer m.m.Unlock()
	return *field
}

func product(id int64, name string, rating float64) domain.Product {
	return domain.Product{ProdID: id, Name: name, Rating: rating}
}

func products(n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = product(int64(i+1), fmt.Sprintf("item-%d", i+1), 4)
	}
	return out
}

func TestRefresh_PopulatesAllFeeds(t *testing.T) {
	source := &mockSource{
		collaborative: []domain.Product{product(1, "Shampoo", 4.5)},
		related:       []domain.Product{product(2, "Soap", 4)},
		topRated:      []domain.Product{product(3, "Lotion", 5)},
		hybrid:        []domain.Product{product(4, "Conditioner", 4.8)},
	}
	sut := NewAggregator(source, loggedIn(), nil)

	sut.Refresh(context.Background())

	assert.Len(t, sut.Tab(domain.FeedCollaborative), 1)
	assert.Len(t, sut.Tab(domain.FeedRelated), 1)
	assert.Len(t, sut.Tab(domain.FeedTopRated), 1)
	assert.Len(t, sut.Tab(domain.FeedHybrid), 1)
	assert.Equal(t, "Shampoo", source.hybridSeed, "hybrid seeded by first collaborative result")
}

func TestRefresh_CollaborativeFilteredToRatedProducts(t *testing.T) {
	source := &mockSource{
		collaborative: []domain.Product{
			product(1, "Unrated", 0),
			product(2, "Rated", 3.5),
		},
	}
	sut := NewAggregator(source, loggedIn(), nil)

	sut.Refresh(context.Background())

	got := sut.Tab(domain.FeedCollaborative)
	require.Len(t, got, 1)
	assert.Equal(t, "Rated", got[0].Name)
}

func TestRefresh_RelatedTruncated(t *testing.T) {
	source := &mockSource{related: products(40)}
	sut := NewAggregator(source, loggedIn(), nil)

	sut.Refresh(context.Background())

	got := sut.Tab(domain.FeedRelated)
	require.Len(t, got, 15)
	assert.Equal(t, "item-1", got[0].Name)
	assert.Equal(t, "item-15", got[14].Name)
}

func TestRefresh_HybridNeverRequestedWhileCollaborativeEmpty(t *testing.T) {
	source := &mockSource{
		collaborative: []domain.Product{product(1, "Unrated", 0)}, // filtered away
		topRated:      products(2),
	}
	sut := NewAggregator(source, loggedIn(), nil)

	sut.Refresh(context.Background())

	assert.Equal(t, 0, source.calls(&source.hybridCalls))
	assert.Empty(t, sut.Tab(domain.FeedHybrid))
}

func TestRefresh_EmptySeedName_UsesDefaultFallback(t *testing.T) {
	source := &mockSource{
		collaborative: []domain.Product{product(1, "", 4.5)}, // rated but nameless
		hybrid:        products(1),
	}
	sut := NewAggregator(source, loggedIn(), nil)

	sut.Refresh(context.Background())

	require.Equal(t, 1, source.calls(&source.hybridCalls))
	assert.Equal(t, DefaultFallbackSeed, source.hybridSeed)
	assert.Len(t, sut.Tab(domain.FeedHybrid), 1)
}

func TestRefresh_EmptySeedName_UsesConfiguredFallback(t *testing.T) {
	source := &mockSource{
		collaborative: []domain.Product{product(1, "", 4.5)},
		hybrid:        products(1),
	}
	sut := NewAggregator(source, loggedIn(), nil, WithFallbackSeed("conditioner"))

	sut.Refresh(context.Background())

	require.Equal(t, 1, source.calls(&source.hybridCalls))
	assert.Equal(t, "conditioner", source.hybridSeed)
}

func TestRefresh_FeedFailureIsIsolated(t *testing.T) {
	source := &mockSource{
		collaborativeErr: fmt.Errorf("boom"),
		related:          products(2),
		topRated:         products(3),
	}
	sut := NewAggregator(source, loggedIn(), nil)

	sut.Refresh(context.Background())

	assert.NotEmpty(t, sut.Err(domain.FeedCollaborative))
	assert.Empty(t, sut.Err(domain.FeedRelated))
	assert.Empty(t, sut.Err(domain.FeedTopRated))
	assert.Len(t, sut.Tab(domain.FeedRelated), 2)
	assert.Len(t, sut.Tab(domain.FeedTopRated), 3)
	assert.Equal(t, 0, source.calls(&source.hybridCalls), "no hybrid without a collaborative result")
}

func TestRefresh_FeedRecoveryClearsError(t *testing.T) {
	source := &mockSource{topRatedErr: fmt.Errorf("boom")}
	sut := NewAggregator(source, loggedIn(), nil)

	sut.Refresh(context.Background())
	require.NotEmpty(t, sut.Err(domain.FeedTopRated))

	source.m.Lock()
	source.topRatedErr = nil
	source.topRated = products(1)
	source.m.Unlock()

	sut.Refresh(context.Background())
	assert.Empty(t, sut.Err(domain.FeedTopRated))
	assert.Len(t, sut.Tab(domain.FeedTopRated), 1)
}

func TestRefresh_NoSession_OnlyGlobalFeed(t *testing.T) {
	source := &mockSource{topRated: products(2)}
	sut := NewAggregator(source, &mockSessions{}, nil)

	sut.Refresh(context.Background())

	assert.Equal(t, 0, source.calls(&source.collaborativeCalls))
	assert.Equal(t, 0, source.calls(&source.relatedCalls))
	assert.Equal(t, 0, source.calls(&source.hybridCalls))
	assert.Len(t, sut.Tab(domain.FeedTopRated), 2)
}

func TestSelectTab_PureRead(t *testing.T) {
	source := &mockSource{
		collaborative: []domain.Product{product(1, "Shampoo", 4.5)},
		topRated:      products(3),
		hybrid:        products(1),
	}
	sut := NewAggregator(source, loggedIn(), nil)
	sut.Refresh(context.Background())

	assert.Equal(t, domain.FeedCollaborative, sut.Selected(), "default tab is 0")
	before := sut.Current()

	collaborativeFetches := source.calls(&source.collaborativeCalls)
	topRatedFetches := source.calls(&source.topRatedCalls)

	sut.SelectTab(domain.FeedTopRated)
	assert.Equal(t, domain.FeedTopRated, sut.Selected())
	assert.Len(t, sut.Current().Products, 3)

	sut.SelectTab(domain.FeedCollaborative)
	assert.Equal(t, before, sut.Current(), "same content after switching away and back")

	assert.Equal(t, collaborativeFetches, source.calls(&source.collaborativeCalls), "tab switch never fetches")
	assert.Equal(t, topRatedFetches, source.calls(&source.topRatedCalls))
}

func TestSelectTab_OutOfRangeIgnored(t *testing.T) {
	sut := NewAggregator(&mockSource{}, loggedIn(), nil)

	sut.SelectTab(domain.Feed(7))
	assert.Equal(t, domain.FeedCollaborative, sut.Selected())

	sut.SelectTab(domain.Feed(-1))
	assert.Equal(t, domain.FeedCollaborative, sut.Selected())
}

func TestRefresh_CancelledContextDiscardsResults(t *testing.T) {
	source := &mockSource{
		collaborative: []domain.Product{product(1, "Shampoo", 4.5)},
		related:       products(2),
		topRated:      products(3),
	}
	sut := NewAggregator(source, loggedIn(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // the requesting view is already gone

	sut.Refresh(ctx)

	assert.Empty(t, sut.Tab(domain.FeedCollaborative))
	assert.Empty(t, sut.Tab(domain.FeedRelated))
	assert.Empty(t, sut.Tab(domain.FeedTopRated))
	assert.Empty(t, sut.Tab(domain.FeedHybrid))
}
