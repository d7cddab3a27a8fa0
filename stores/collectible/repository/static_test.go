package repository

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/domain"
)

const snapshot = `[
	{"identifier":"1","name":"Alpha","contract":"0xabc","traits":[{"trait_type":"Hat","value":"Cap"}]},
	{"identifier":"2","name":"Bravo","contract":"0xabc"},
	{"id":3,"name":"Charlie"}
]`

func writeSnapshot(t *testing.T, dir, slug, data string) {
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, slug+".json"), []byte(data), 0644))
}

func TestStaticFetchCollection(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "parodee-pixel-chaos", snapshot)
	repo := NewStatic(dir)
	c := bCtx.Background()

	t.Run("reads the whole snapshot", func(t *testing.T) {
		items, err := repo.FetchCollection(c, "parodee-pixel-chaos", 0)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("limit truncates", func(t *testing.T) {
		items, err := repo.FetchCollection(c, "parodee-pixel-chaos", 2)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := repo.FetchCollection(c, "nope", 0)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStaticFetchItem(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "parodee-pixel-chaos", snapshot)
	repo := NewStatic(dir)
	c := bCtx.Background()

	t.Run("matches identifier and contract", func(t *testing.T) {
		item, err := repo.FetchItem(c, domain.ChainEthereum, "0xABC", "2")
		require.NoError(t, err)
		assert.Equal(t, "2", item.ResolvedId())
	})

	t.Run("matches numeric id variant", func(t *testing.T) {
		item, err := repo.FetchItem(c, domain.ChainEthereum, "0xabc", "3")
		require.NoError(t, err)
		assert.Equal(t, "3", item.ResolvedId())
	})

	t.Run("wrong contract", func(t *testing.T) {
		_, err := repo.FetchItem(c, domain.ChainEthereum, "0xdef", "2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := repo.FetchItem(c, domain.ChainEthereum, "0xabc", "99")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
