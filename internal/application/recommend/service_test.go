package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kdrama-rec-api/internal/domain/entity"
)

func newTestService(t *testing.T, items []*entity.Item, cache ResultCache) *Service {
	t.Helper()
	idx, err := BuildIndex(items)
	require.NoError(t, err)
	return NewService(NewStaticHolder(idx), cache, Options{})
}

func intPtr(n int) *int { return &n }

func titles(res *Result) []string {
	out := make([]string, 0, len(res.Recommendations))
	for _, r := range res.Recommendations {
		out = append(out, r.Title)
	}
	return out
}

func TestRecommend_SharedTagsRankFirst(t *testing.T) {
	svc := newTestService(t, scenarioCatalog(), nil)

	res, err := svc.Recommend(context.Background(), Request{Title: "Crash Landing", Limit: intPtr(2)})
	require.NoError(t, err)

	assert.Equal(t, "Crash Landing", res.Input)
	assert.Equal(t, "Netflix", res.InputPlatform)
	assert.Equal(t, "query", res.InputDescription)
	assert.Equal(t, []string{"Twenty Five", "Vincenzo"}, titles(res))
	assert.Equal(t, 100.0, res.Recommendations[0].Similarity)
	assert.Equal(t, 0.0, res.Recommendations[1].Similarity)
	assert.Equal(t, "Viki", res.Recommendations[0].Platform)
	assert.Equal(t, "Slow Burn", res.Recommendations[0].Styles)
}

func TestRecommend_OnlyPlatformExcludesOthers(t *testing.T) {
	svc := newTestService(t, scenarioCatalog(), nil)

	res, err := svc.Recommend(context.Background(), Request{
		Title: "Crash Landing", Platform: "netflix", OnlyPlatform: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Vincenzo"}, titles(res))
}

func TestRecommend_PlatformBoost(t *testing.T) {
	svc := newTestService(t, scenarioCatalog(), nil)

	res, err := svc.Recommend(context.Background(), Request{
		Title: "Crash Landing", Platform: "netflix", Limit: intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Vincenzo", "Twenty Five"}, titles(res))
}

func TestRecommend_TitleNormalization(t *testing.T) {
	svc := newTestService(t, scenarioCatalog(), nil)
	ctx := context.Background()

	canonical, err := svc.Recommend(ctx, Request{Title: "Crash Landing"})
	require.NoError(t, err)
	variant, err := svc.Recommend(ctx, Request{Title: "  CRASH landing\t"})
	require.NoError(t, err)

	assert.Equal(t, canonical, variant)
	assert.Equal(t, "Crash Landing", variant.Input)
}

func TestRecommend_ZeroLimit(t *testing.T) {
	svc := newTestService(t, scenarioCatalog(), nil)

	res, err := svc.Recommend(context.Background(), Request{Title: "Vincenzo", Limit: intPtr(0)})
	require.NoError(t, err)
	assert.NotNil(t, res.Recommendations)
	assert.Empty(t, res.Recommendations)
}

func TestRecommend_DefaultLimit(t *testing.T) {
	items := make([]*entity.Item, 0, 10)
	for _, title := range []string{"A1", "B2", "C3", "D4", "E5", "F6", "G7", "H8", "I9", "J10"} {
		items = append(items, &entity.Item{Title: title, Genres: "Drama"})
	}
	svc := newTestService(t, items, nil)

	res, err := svc.Recommend(context.Background(), Request{Title: "A1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B2", "C3", "D4", "E5", "F6", "G7"}, titles(res))
}

func TestRecommend_Errors(t *testing.T) {
	svc := newTestService(t, scenarioCatalog(), nil)
	ctx := context.Background()

	_, err := svc.Recommend(ctx, Request{Title: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = svc.Recommend(ctx, Request{Title: "Crash Landing", Limit: intPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = svc.Recommend(ctx, Request{Title: "Nonexistent Drama"})
	assert.ErrorIs(t, err, ErrTitleNotFound)

	empty := NewService(&Holder{}, nil, Options{})
	_, err = empty.Recommend(ctx, Request{Title: "Crash Landing"})
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestRecommend_Deterministic(t *testing.T) {
	svc := newTestService(t, scenarioCatalog(), nil)
	ctx := context.Background()
	req := Request{Title: "Twenty Five", Platform: "Netflix, Viki"}

	first, err := svc.Recommend(ctx, req)
	require.NoError(t, err)
	want, err := json.Marshal(first)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Recommend(ctx, req)
			if assert.NoError(t, err) {
				got, _ := json.Marshal(res)
				assert.Equal(t, string(want), string(got))
			}
		}()
	}
	wg.Wait()
}

func TestRecommend_SimilarityBounds(t *testing.T) {
	items := []*entity.Item{
		{Title: "A", Genres: "Romance, Comedy", Styles: "Office"},
		{Title: "B", Genres: "Romance", Styles: "Office, Healing"},
		{Title: "C", Genres: "Thriller", Styles: "Revenge"},
		{Title: "D", Genres: "Comedy", Styles: "Healing, Healing"},
		{Title: "E"},
	}
	svc := newTestService(t, items, nil)

	res, err := svc.Recommend(context.Background(), Request{Title: "A", Limit: intPtr(10)})
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 4)
	prev := 101.0
	for _, r := range res.Recommendations {
		assert.NotEqual(t, "A", r.Title)
		assert.GreaterOrEqual(t, r.Similarity, 0.0)
		assert.LessOrEqual(t, r.Similarity, 100.0)
		assert.LessOrEqual(t, r.Similarity, prev)
		prev = r.Similarity
	}
}

type fakeCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	err   error
	loads int
	keys  []string
}

func (c *fakeCache) GetOrLoadSafe(_ context.Context, key string, _ time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = append(c.keys, key)
	if c.err != nil {
		return nil, c.err
	}
	if b, ok := c.data[key]; ok {
		return b, nil
	}
	v, err := loader()
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	c.loads++
	c.data[key] = b
	return b, nil
}

func TestRecommend_ReadThroughCache(t *testing.T) {
	cache := &fakeCache{data: map[string][]byte{}}
	svc := newTestService(t, scenarioCatalog(), cache)
	direct := newTestService(t, scenarioCatalog(), nil)
	ctx := context.Background()
	req := Request{Title: "crash landing", Limit: intPtr(2)}

	want, err := direct.Recommend(ctx, req)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := svc.Recommend(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 1, cache.loads)

	// 无过滤词时 only_platform 不改变缓存键
	_, err = svc.Recommend(ctx, Request{Title: "Crash Landing", Limit: intPtr(2), OnlyPlatform: true})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.loads)
	assert.Equal(t, cache.keys[0], cache.keys[3])
}

func TestRecommend_CacheFailureFallsBack(t *testing.T) {
	cache := &fakeCache{err: errors.New("connection refused")}
	svc := newTestService(t, scenarioCatalog(), cache)

	res, err := svc.Recommend(context.Background(), Request{Title: "Crash Landing", Limit: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Twenty Five", "Vincenzo"}, titles(res))
}

func TestRecommend_UndecodableCacheEntry(t *testing.T) {
	cache := &fakeCache{data: map[string][]byte{}}
	svc := newTestService(t, scenarioCatalog(), cache)
	ctx := context.Background()

	_, err := svc.Recommend(ctx, Request{Title: "Crash Landing"})
	require.NoError(t, err)
	cache.data[cache.keys[0]] = []byte("not json")

	res, err := svc.Recommend(ctx, Request{Title: "Crash Landing"})
	require.NoError(t, err)
	assert.Len(t, res.Recommendations, 2)
}

func TestParseRequest(t *testing.T) {
	_, err := ParseRequest("", "abc", "", "")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = ParseRequest("Goblin", "abc", "", "")
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = ParseRequest("Goblin", "-2", "", "")
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = ParseRequest("Goblin", "2.5", "", "")
	assert.ErrorIs(t, err, ErrInvalidLimit)

	req, err := ParseRequest("Goblin", "", "Netflix", "1")
	require.NoError(t, err)
	assert.Nil(t, req.Limit)
	assert.True(t, req.OnlyPlatform)
	assert.Equal(t, "Netflix", req.Platform)

	req, err = ParseRequest("Goblin", " 3 ", "", "yes")
	require.NoError(t, err)
	assert.Equal(t, 3, *req.Limit)
	assert.False(t, req.OnlyPlatform)
}

func TestParseOnlyPlatform(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "t", " 1 "} {
		assert.True(t, ParseOnlyPlatform(v), v)
	}
	for _, v := range []string{"", "0", "false", "no", "on", "2"} {
		assert.False(t, ParseOnlyPlatform(v), v)
	}
}

func TestSuggestTitlesAndCatalog(t *testing.T) {
	svc := newTestService(t, scenarioCatalog(), nil)

	assert.Equal(t, []string{"Twenty Five"}, svc.SuggestTitles(context.Background(), "twenty", 0))

	stats, ok := svc.Catalog()
	require.True(t, ok)
	assert.Equal(t, 3, stats.Items)
	assert.Equal(t, 4, stats.Vocabulary)
	assert.NotEmpty(t, stats.Fingerprint)

	_, ok = NewService(&Holder{}, nil, Options{}).Catalog()
	assert.False(t, ok)
}
