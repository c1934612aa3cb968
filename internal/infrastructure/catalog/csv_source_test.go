package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	data := "\ufeffTitle,Genres,Styles,Platform,Description\n" +
		"Crash Landing on You,\"Romance, Comedy\",\"Slow Burn, Healing\",Netflix,A paraglider lands in the North\n" +
		"Signal,\"Thriller, Mystery\",Time Travel,,Walkie-talkie to the past\n"

	items, err := ParseCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 0, items[0].ID)
	assert.Equal(t, "Crash Landing on You", items[0].Title)
	assert.Equal(t, "Romance, Comedy", items[0].Genres)
	assert.Equal(t, "Slow Burn, Healing", items[0].Styles)
	assert.Equal(t, "Netflix", items[0].Platform)

	assert.Equal(t, 1, items[1].ID)
	assert.Equal(t, "", items[1].Platform)
	assert.Equal(t, "Walkie-talkie to the past", items[1].Description)
}

func TestParseCSV_CaseInsensitiveHeaderAndMissingColumns(t *testing.T) {
	data := "GENRES, title \nRomance,Goblin\nAction,Vincenzo\n"

	items, err := ParseCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Goblin", items[0].Title)
	assert.Equal(t, "Romance", items[0].Genres)
	assert.Equal(t, "", items[0].Platform)
	assert.Equal(t, "", items[0].Styles)
}

func TestParseCSV_ShortRows(t *testing.T) {
	data := "Title,Genres,Styles,Platform\nGoblin,Fantasy\n"

	items, err := ParseCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Fantasy", items[0].Genres)
	assert.Equal(t, "", items[0].Platform)
}

func TestParseCSV_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := ParseCSV(ctx, strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseCSV(ctx, strings.NewReader("Name,Genres\nGoblin,Fantasy\n"))
	assert.ErrorIs(t, err, ErrMissingTitleColumn)

	_, err = ParseCSV(ctx, strings.NewReader("Title,Genres\nGoblin,Fantasy\n ,Drama\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	items, err := ParseCSV(context.Background(), strings.NewReader("Title,Genres\n"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCSVSource_LoadItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte("Title,Platform\nMove to Heaven,Netflix\n"), 0o644))

	src := NewCSVSource(path)
	assert.Equal(t, "csv:"+path, src.Name())

	items, err := src.LoadItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Move to Heaven", items[0].Title)

	_, err = NewCSVSource(filepath.Join(t.TempDir(), "missing.csv")).LoadItems(context.Background())
	assert.Error(t, err)
}

func TestCSVSource_BundledCatalog(t *testing.T) {
	items, err := NewCSVSource(filepath.Join("..", "..", "..", "data", "kdramas.csv")).LoadItems(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, items)
	for _, item := range items {
		assert.NotEmpty(t, strings.TrimSpace(item.Title))
	}
}
