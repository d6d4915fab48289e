package inspiration

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vamu/internal/types"
)

// fakeProvider records every query it receives and replies with canned records.
type fakeProvider struct {
	mu      sync.Mutex
	queries []ProviderQuery
	records []RawVenueRecord
	err     error
	caps    Capabilities
	block   bool
}

func (f *fakeProvider) Search(ctx context.Context, q ProviderQuery) ([]RawVenueRecord, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, ctx.Err())
	}
	return f.records, f.err
}

func (f *fakeProvider) Capabilities() Capabilities { return f.caps }

func (f *fakeProvider) lastQuery(t *testing.T) ProviderQuery {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.queries)
	return f.queries[len(f.queries)-1]
}

func newTestService(p Provider) *Service {
	return NewService(p, Options{Defaults: testDefaults, Timeout: time.Second})
}

func TestSuggestBiasScenarios(t *testing.T) {
	cases := []struct {
		name     string
		req      SearchRequest
		wantBias bool
	}{
		{"no marker with coordinates", SearchRequest{What: "Pizza night", Location: milan}, true},
		{"marker discards coordinates", SearchRequest{What: "Pizza in Paris", Location: milan}, false},
		{"no marker no coordinates", SearchRequest{What: "Pizza night"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakeProvider{}
			_, err := newTestService(p).Suggest(context.Background(), tc.req)
			require.NoError(t, err)

			q := p.lastQuery(t)
			if !tc.wantBias {
				assert.Nil(t, q.Bias)
				return
			}
			require.NotNil(t, q.Bias)
			assert.Equal(t, 45.4642, q.Bias.Center.Latitude)
			assert.Equal(t, 9.1900, q.Bias.Center.Longitude)
			assert.Equal(t, 5000.0, q.Bias.RadiusMeters)
		})
	}
}

func TestSuggestUsesRequestRadius(t *testing.T) {
	p := &fakeProvider{}
	radius := 750.0
	_, err := newTestService(p).Suggest(context.Background(), SearchRequest{What: "tapas", Location: milan, RadiusMeters: &radius})
	require.NoError(t, err)
	assert.Equal(t, 750.0, p.lastQuery(t).Bias.RadiusMeters)
}

func TestSuggestAppliesDeferredFilters(t *testing.T) {
	p := &fakeProvider{records: rawRecords(floatPtr(4.2), floatPtr(3.1), nil, floatPtr(4.9), floatPtr(4.4))}
	list, err := newTestService(p).Suggest(context.Background(), SearchRequest{
		What:        "ramen",
		Preferences: &Preferences{MaxResults: 3, MinRating: floatPtr(4)},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"place-0", "place-2", "place-3"}, placeIDs(list.Suggestions))
	assert.Equal(t, 3, list.TotalCount)
	assert.Equal(t, "ramen", list.Query)
}

func TestSuggestSkipsNativeFilters(t *testing.T) {
	// The provider already enforced min rating, so the low-rated record is not re-filtered.
	p := &fakeProvider{
		records: rawRecords(floatPtr(3.1)),
		caps:    Capabilities{MinRating: true, PriceLevels: true, OpenNow: true},
	}
	list, err := newTestService(p).Suggest(context.Background(), SearchRequest{
		What:        "ramen",
		Preferences: &Preferences{MinRating: floatPtr(4)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)
	assert.Equal(t, 4.0, *p.lastQuery(t).MinRating)
}

func TestSuggestEmptyResultIsSuccess(t *testing.T) {
	list, err := newTestService(&fakeProvider{}).Suggest(context.Background(), SearchRequest{What: "yeti bar"})
	require.NoError(t, err)
	assert.NotNil(t, list.Suggestions)
	assert.Empty(t, list.Suggestions)
	assert.Zero(t, list.TotalCount)
}

func TestSuggestValidation(t *testing.T) {
	radius := -1.0
	nanRadius := math.NaN()
	cases := []SearchRequest{
		{What: "  "},
		{What: "pizza", Location: &types.LatLon{Latitude: 91, Longitude: 0}},
		{What: "pizza", RadiusMeters: &radius},
		{What: "pizza", Preferences: &Preferences{MaxResults: -2}},
		{What: "pizza", Preferences: &Preferences{MinRating: floatPtr(7)}},
		{What: "pizza", Preferences: &Preferences{PriceLevels: []PriceTier{12}}},
		{What: "Pizza night", Location: &types.LatLon{Latitude: math.NaN(), Longitude: math.NaN()}},
		{What: "Pizza night", Location: milan, RadiusMeters: &nanRadius},
		{What: "pizza", Preferences: &Preferences{MinRating: floatPtr(math.NaN())}},
	}
	for i, req := range cases {
		p := &fakeProvider{}
		_, err := newTestService(p).Suggest(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRequest, "case %d", i)
		assert.Empty(t, p.queries, "provider must not be called for case %d", i)
	}
}

func TestSuggestProviderErrorsAbort(t *testing.T) {
	for _, perr := range []error{ErrProviderAuth, ErrProviderUnavailable, ErrProviderRateLimited} {
		p := &fakeProvider{records: rawRecords(floatPtr(5)), err: fmt.Errorf("search: %w", perr)}
		list, err := newTestService(p).Suggest(context.Background(), SearchRequest{What: "pizza"})
		assert.ErrorIs(t, err, perr)
		assert.Empty(t, list.Suggestions)
	}
	assert.True(t, errors.Is(ErrProviderRateLimited, ErrProviderUnavailable))
}

func TestSuggestTimeoutBoundsProviderCall(t *testing.T) {
	p := &fakeProvider{block: true}
	svc := NewService(p, Options{Defaults: testDefaults, Timeout: 20 * time.Millisecond})

	start := time.Now()
	_, err := svc.Suggest(context.Background(), SearchRequest{What: "pizza"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSuggestCancellationAbortsProviderCall(t *testing.T) {
	p := &fakeProvider{block: true}
	svc := NewService(p, Options{Defaults: testDefaults})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := svc.Suggest(ctx, SearchRequest{What: "pizza"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestSuggestConcurrentRequestsAreIndependent(t *testing.T) {
	p := &fakeProvider{records: rawRecords(floatPtr(4.5), floatPtr(3.5), floatPtr(4.8))}
	svc := newTestService(p)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := SearchRequest{What: fmt.Sprintf("query %d", i)}
			if i%2 == 0 {
				req.Preferences = &Preferences{MinRating: floatPtr(4)}
			}
			list, err := svc.Suggest(context.Background(), req)
			assert.NoError(t, err)
			if i%2 == 0 {
				assert.Equal(t, 2, list.TotalCount)
			} else {
				assert.Equal(t, 3, list.TotalCount)
			}
			assert.Equal(t, req.What, list.Query)
		}(i)
	}
	wg.Wait()
	assert.Len(t, p.queries, 32)
}

func TestSuggestEchoesTrimmedQuery(t *testing.T) {
	p := &fakeProvider{}
	list, err := newTestService(p).Suggest(context.Background(), SearchRequest{What: "  Pizza night \n"})
	require.NoError(t, err)
	assert.Equal(t, "Pizza night", list.Query)
	assert.Equal(t, list.Query, p.lastQuery(t).Text)
}
