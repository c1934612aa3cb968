package recommend

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kdrama-rec-api/internal/domain/entity"
)

func TestBuildIndex_EmptyCatalog(t *testing.T) {
	_, err := BuildIndex(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestBuildIndex_MissingTitle(t *testing.T) {
	_, err := BuildIndex([]*entity.Item{{Title: "A"}, {Title: "  "}})
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestBuildIndex_LookupAndIDs(t *testing.T) {
	items := []*entity.Item{
		{ID: 99, Title: "Goblin", Platform: "Viki"},
		{Title: "goblin", Platform: "Netflix"},
		{Title: "Signal"},
	}
	idx, err := BuildIndex(items)
	require.NoError(t, err)

	for i := 0; i < idx.Len(); i++ {
		assert.Equal(t, i, idx.Item(i).ID)
	}
	assert.Equal(t, 99, items[0].ID, "source items are copied, not mutated")

	id, ok := idx.Lookup("  GOBLIN ")
	require.True(t, ok)
	assert.Equal(t, 0, id, "first duplicate wins")

	_, ok = idx.Lookup("Mr. Sunshine")
	assert.False(t, ok)

	assert.Equal(t, []string{"viki", "netflix", ""}, idx.platformKeys)
}

func TestBuildIndex_Fingerprint(t *testing.T) {
	a, err := BuildIndex(scenarioCatalog())
	require.NoError(t, err)
	b, err := BuildIndex(scenarioCatalog())
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	changed := scenarioCatalog()
	changed[2].Description = "edited"
	c, err := BuildIndex(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestIndex_SuggestTitles(t *testing.T) {
	idx, err := BuildIndex([]*entity.Item{
		{Title: "Hometown Cha-Cha-Cha"},
		{Title: "Hospital Playlist"},
		{Title: "Home Sweet Home"},
		{Title: "Signal"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Hometown Cha-Cha-Cha", "Home Sweet Home"}, idx.SuggestTitles("HOME", 5))
	assert.Equal(t, []string{"Hometown Cha-Cha-Cha"}, idx.SuggestTitles("ho", 1))
	assert.Empty(t, idx.SuggestTitles("  ", 5))
	assert.Empty(t, idx.SuggestTitles("zzz", 5))
	assert.Equal(t, []string{"Hometown Cha-Cha-Cha", "Home Sweet Home"}, idx.SuggestTitles("home", math.MaxInt))
}

type stubSource struct {
	items []*entity.Item
	err   error
	calls int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) LoadItems(context.Context) ([]*entity.Item, error) {
	s.calls++
	return s.items, s.err
}

func TestHolder_Reload(t *testing.T) {
	ctx := context.Background()
	src := &stubSource{items: scenarioCatalog()}

	h, err := NewHolder(ctx, src)
	require.NoError(t, err)
	first := h.Current()
	require.NotNil(t, first)
	assert.Equal(t, 3, first.Len())

	src.items = append(scenarioCatalog(), &entity.Item{Title: "Move to Heaven", Genres: "Drama"})
	require.NoError(t, h.Reload(ctx))
	second := h.Current()
	assert.Equal(t, 4, second.Len())
	assert.NotEqual(t, first.Fingerprint(), second.Fingerprint())
	assert.Equal(t, 3, first.Len(), "previous snapshot is untouched")

	src.err = errors.New("disk gone")
	assert.Error(t, h.Reload(ctx))
	assert.Same(t, second, h.Current())

	src.err = nil
	src.items = nil
	assert.ErrorIs(t, h.Reload(ctx), ErrEmptyCatalog)
	assert.Same(t, second, h.Current())
}

func TestNewHolder_EmptyCatalog(t *testing.T) {
	_, err := NewHolder(context.Background(), &stubSource{})
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestStaticHolder_NoReload(t *testing.T) {
	idx, err := BuildIndex(scenarioCatalog())
	require.NoError(t, err)
	h := NewStaticHolder(idx)
	assert.Same(t, idx, h.Current())
	assert.Error(t, h.Reload(context.Background()))
}
