package domain

// Feed identifies one recommendation source.
type Feed int

const (
	FeedCollaborative Feed = iota
	FeedRelated
	FeedTopRated
	FeedHybrid

	FeedCount
)

func (f Feed) String() string {
	switch f {
	case FeedCollaborative:
		return "collaborative"
	case FeedRelated:
		return "related"
	case FeedTopRated:
		return "top-rated"
	case FeedHybrid:
		return "hybrid"
	}
	return "unknown"
}

// RecommendationSet is the ordered result of one feed. Sets are independent
// storage slots; products are never shared by reference across sets.
type RecommendationSet struct {
	Feed     Feed
	Products []Product
}
