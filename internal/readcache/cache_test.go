package readcache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []byte("Site,Duration\nA,4\nB,2\n")

func TestReadParsesAndCaches(t *testing.T) {
	c := New(4)

	first, err := c.Read(sample, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 1, c.Len())

	second, err := c.Read(sample, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, first.Columns, second.Columns)
	assert.Equal(t, 1, c.Len(), "identical content parses once")
}

func TestReadReturnsPrivateClones(t *testing.T) {
	c := New(4)

	first, err := c.Read(sample, "a.csv")
	require.NoError(t, err)
	first.RenameColumn("site", "site_id")

	second, err := c.Read(sample, "a.csv")
	require.NoError(t, err)
	assert.True(t, second.HasColumn("site"), "mutating one caller's table must not leak into the cache")
}

func TestReadErrorNotCached(t *testing.T) {
	c := New(4)

	_, err := c.Read(nil, "empty.csv")
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestReadEvictsAtCapacity(t *testing.T) {
	c := New(2)

	inputs := [][]byte{
		[]byte("a,b\n1,2\n"),
		[]byte("a,b\n3,4\n"),
		[]byte("a,b\n5,6\n"),
	}
	for _, in := range inputs {
		_, err := c.Read(in, "x.csv")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())
}

func TestReadConcurrent(t *testing.T) {
	c := New(4)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table, err := c.Read(sample, "a.csv")
			assert.NoError(t, err)
			assert.Equal(t, 2, table.Len())
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}
