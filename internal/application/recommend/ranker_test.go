package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlatformFilter(t *testing.T) {
	assert.Nil(t, ParsePlatformFilter(""))
	assert.Nil(t, ParsePlatformFilter("   "))
	assert.Empty(t, ParsePlatformFilter(" , ,"))
	assert.False(t, ParsePlatformFilter(" , ,").Active())

	f := ParsePlatformFilter(" Netflix, ,VIKI ")
	assert.Equal(t, PlatformFilter{"netflix", "viki"}, f)
	assert.Equal(t, "netflix,viki", f.String())
	assert.True(t, f.Matches("netflix, viki"))
	assert.True(t, f.Matches("viki"))
	assert.False(t, f.Matches("disney+"))
	assert.False(t, f.Matches(""))
}

func TestRank_TieBreakByIndex(t *testing.T) {
	scores := []float64{1, 0.5, 0.9, 0.5, 0.9, 0}
	platforms := make([]string, len(scores))

	got := rank(0, scores, platforms, RankOptions{Limit: 10})
	assert.Equal(t, []int{2, 4, 1, 3, 5}, got)
}

func TestRank_ExcludesQueryEvenWhenOutscored(t *testing.T) {
	scores := []float64{0.2, 1, 1}
	got := rank(0, scores, make([]string, 3), RankOptions{Limit: 5})
	assert.Equal(t, []int{1, 2}, got)
}

func TestRank_Limits(t *testing.T) {
	scores := []float64{1, 0.3, 0.2, 0.1}
	platforms := make([]string, len(scores))

	assert.Equal(t, []int{}, rank(0, scores, platforms, RankOptions{Limit: 0}))
	assert.Equal(t, []int{1}, rank(0, scores, platforms, RankOptions{Limit: 1}))
	assert.Len(t, rank(0, scores, platforms, RankOptions{Limit: 100}), 3)
}

func TestRank_PlatformBoostAndFilter(t *testing.T) {
	scores := []float64{1, 0.9, 0.8, 0.7, 0.6}
	platforms := []string{"netflix", "viki", "netflix", "", "netflix, viki"}
	filter := ParsePlatformFilter("netflix")

	boosted := rank(0, scores, platforms, RankOptions{Limit: 10, Filter: filter})
	assert.Equal(t, []int{2, 4, 1, 3}, boosted)

	only := rank(0, scores, platforms, RankOptions{Limit: 10, Filter: filter, OnlyPlatform: true})
	assert.Equal(t, []int{2, 4}, only)

	onlyNoFilter := rank(0, scores, platforms, RankOptions{Limit: 10, OnlyPlatform: true})
	assert.Equal(t, []int{1, 2, 3, 4}, onlyNoFilter)

	none := rank(0, scores, platforms, RankOptions{Limit: 10, Filter: ParsePlatformFilter("wavve"), OnlyPlatform: true})
	assert.Empty(t, none)
}

func TestToPercent(t *testing.T) {
	assert.Equal(t, 100.0, toPercent(1))
	assert.Equal(t, 0.0, toPercent(0))
	assert.Equal(t, 57.74, toPercent(0.57735026919))
	assert.Equal(t, 12.35, toPercent(0.123456))
}
