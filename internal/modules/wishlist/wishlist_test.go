// README: Wishlist module tests (validation, quota gating, Redis-backed allowance).
package wishlist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vamu/internal/ai"
)

type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	lastMax  int
	lastName string
	items    []string
	err      error
}

func (f *fakeGenerator) GenerateWishlist(ctx context.Context, eventName string, maxItems int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastMax = maxItems
	f.lastName = eventName
	return f.items, f.err
}

type fakeQuota struct {
	left    int
	clients []string
}

func (q *fakeQuota) Consume(ctx context.Context, clientID string) error {
	q.clients = append(q.clients, clientID)
	if q.left == 0 {
		return ErrQuotaExceeded
	}
	q.left--
	return nil
}

func (q *fakeQuota) Remaining(ctx context.Context, clientID string) (int, error) {
	return q.left, nil
}

func TestSuggestDefaultsAndTruncation(t *testing.T) {
	gen := &fakeGenerator{items: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}}
	quota := &fakeQuota{left: 5}
	svc := NewService(gen, quota)

	got, err := svc.Suggest(context.Background(), Request{EventName: "  birthday party "})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxItems, gen.lastMax)
	assert.Equal(t, "birthday party", gen.lastName)
	assert.Equal(t, "birthday party", got.EventName)
	assert.Len(t, got.Items, DefaultMaxItems)
	assert.Equal(t, DefaultMaxItems, got.ItemCount)
	assert.Equal(t, []string{AnonymousClient}, quota.clients)
	require.NotNil(t, got.Remaining)
	assert.Equal(t, 4, *got.Remaining)

	got, err = svc.Suggest(context.Background(), Request{ClientID: "c-1", EventName: "bbq", MaxItems: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got.Items)
	assert.Equal(t, "c-1", quota.clients[1])
}

func TestSuggestEmptyItems(t *testing.T) {
	got, err := NewService(&fakeGenerator{}, nil).Suggest(context.Background(), Request{EventName: "nap"})
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Zero(t, got.ItemCount)
	assert.Nil(t, got.Remaining)
}

func TestSuggestValidation(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewService(gen, nil)
	for _, req := range []Request{
		{EventName: " "},
		{EventName: "x", MaxItems: -1},
		{EventName: "x", MaxItems: MaxItemsLimit + 1},
	} {
		_, err := svc.Suggest(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	}
	assert.Zero(t, gen.calls)
}

func TestSuggestQuotaExceededSkipsGeneration(t *testing.T) {
	gen := &fakeGenerator{items: []string{"x"}}
	_, err := NewService(gen, &fakeQuota{left: 0}).Suggest(context.Background(), Request{EventName: "wedding"})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Zero(t, gen.calls)
}

func TestSuggestNotConfigured(t *testing.T) {
	svc := NewService(nil, nil)
	assert.False(t, svc.Enabled())
	_, err := svc.Suggest(context.Background(), Request{EventName: "party"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSuggestGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("%w: boom", ai.ErrGeneration)}
	_, err := NewService(gen, nil).Suggest(context.Background(), Request{EventName: "party"})
	assert.True(t, errors.Is(err, ai.ErrGeneration))
}

func TestQuotaStoreMonthlyAllowance(t *testing.T) {
	redisAddr := os.Getenv("VAMU_TEST_REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("VAMU_TEST_REDIS_ADDR not set; skipping Redis-backed tests")
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	ctx := context.Background()
	store := NewQuotaStore(rdb, 2)
	store.now = func() time.Time { return time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC) }
	client := fmt.Sprintf("client_test_%d", time.Now().UnixNano())
	janKey := store.key(client, store.now())
	febKey := store.key(client, store.now().Add(2*time.Hour))
	t.Cleanup(func() { rdb.Del(ctx, janKey, febKey) })

	require.NoError(t, store.Consume(ctx, client))
	require.NoError(t, store.Consume(ctx, client))
	assert.ErrorIs(t, store.Consume(ctx, client), ErrQuotaExceeded)

	left, err := store.Remaining(ctx, client)
	require.NoError(t, err)
	assert.Zero(t, left)

	ttl, err := rdb.TTL(ctx, janKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	// A new month uses a fresh key.
	store.now = func() time.Time { return time.Date(2026, time.February, 1, 1, 0, 0, 0, time.UTC) }
	assert.NoError(t, store.Consume(ctx, client))
}
