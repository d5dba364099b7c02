package seed

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Source is the single deterministic random stream of a pipeline run.
// Every stage draws from the same Source in a fixed order, so a seed fully determines the output.
type Source struct {
	*gofakeit.Faker
}

// NewSource creates a Source seeded with seed. A zero seed is replaced by a random one.
func NewSource(seed int64) *Source {
	return &Source{Faker: gofakeit.New(seed)}
}

// IntRange returns an integer in [lo, hi]. It returns lo when hi <= lo.
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Rand.Intn(hi-lo+1)
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.Rand.Float64() < p
}

// Uniform returns a float in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.Rand.Float64()
}

// TimeBetween returns a second-resolution instant in [start, end], expressed in start's location.
func (s *Source) TimeBetween(start, end time.Time) time.Time {
	span := int64(end.Sub(start) / time.Second)
	if span <= 0 {
		return start.Truncate(time.Second)
	}
	return start.Truncate(time.Second).Add(time.Duration(s.Rand.Int63n(span+1)) * time.Second)
}

func pick[T any](s *Source, items []T) T {
	return items[s.Rand.Intn(len(items))]
}

// sample returns k distinct elements of items in draw order. k is clamped to len(items).
func sample[T any](s *Source, items []T, k int) []T {
	k = max(0, min(k, len(items)))
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < k; i++ {
		j := i + s.Rand.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

func shuffle[T any](s *Source, items []T) {
	s.Rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// weighted picks one of items with probability proportional to weights.
func weighted[T any](s *Source, items []T, weights []float64) T {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := s.Rand.Float64() * total
	for i, w := range weights {
		if r < w {
			return items[i]
		}
		r -= w
	}
	return items[len(items)-1]
}

// uniqueString draws from gen until it returns a value not yet in used, then records it.
func uniqueString(used map[string]struct{}, gen func() string) string {
	for {
		v := gen()
		if _, ok := used[v]; !ok {
			used[v] = struct{}{}
			return v
		}
	}
}
