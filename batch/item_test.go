package batch_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/labelgen/batch"
)

func TestList(t *testing.T) {
	t.Parallel()

	var l batch.List
	assert.Zero(t, l.Len())

	l.Add(batch.Item{Data: "A1"}, batch.Item{Data: "A2"}, batch.Item{Data: "A3"})
	l.Add(batch.Item{Data: "A1"})
	require.Equal(t, 4, l.Len(), "duplicates are allowed")

	l.Remove(2, 0, 0, 9, -1)
	assert.Equal(t, []batch.Item{{Data: "A2"}, {Data: "A1"}}, l.Items())

	items := l.Items()
	items[0].Data = "changed"
	assert.Equal(t, "A2", l.Items()[0].Data, "Items returns a copy")

	l.Clear()
	assert.Zero(t, l.Len())
	assert.Empty(t, l.Items())
}

func TestSeries(t *testing.T) {
	t.Parallel()

	t.Run("increments data and numbers names", func(t *testing.T) {
		t.Parallel()
		items, err := batch.Series("PROD-098", "Blue T-Shirt", "$9.99", 3)
		require.NoError(t, err)

		assert.Equal(t, []batch.Item{
			{Data: "PROD-098", ProductName: "Blue T-Shirt 1", Price: "$9.99"},
			{Data: "PROD-099", ProductName: "Blue T-Shirt 2", Price: "$9.99"},
			{Data: "PROD-100", ProductName: "Blue T-Shirt 3", Price: "$9.99"},
		}, items)
	})

	t.Run("names are bare numbers without a prefix", func(t *testing.T) {
		t.Parallel()
		items, err := batch.Series("1", "", "", 2)
		require.NoError(t, err)
		assert.Equal(t, "1", items[0].ProductName)
		assert.Equal(t, "2", items[1].ProductName)
	})

	t.Run("stops when the data cannot be incremented", func(t *testing.T) {
		t.Parallel()
		items, err := batch.Series("ABC", "Mug", "", 5)

		assert.True(t, errors.Is(err, batch.ErrCannotIncrement), "got %v", err)
		assert.Equal(t, []batch.Item{{Data: "ABC", ProductName: "Mug 1"}}, items)
	})

	t.Run("a single item never needs an increment", func(t *testing.T) {
		t.Parallel()
		items, err := batch.Series("ABC", "", "", 1)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("rejects counts below one", func(t *testing.T) {
		t.Parallel()
		for _, count := range []int{0, -1, math.MinInt} {
			items, err := batch.Series("A1", "", "", count)
			assert.Nil(t, items)
			assert.ErrorIs(t, err, batch.ErrEmptyBatch, "count %d", count)
		}
	})

	t.Run("requires a starting value", func(t *testing.T) {
		t.Parallel()
		_, err := batch.Series("", "x", "", 3)
		assert.Error(t, err)
	})
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$9.99", batch.FormatPrice("9.99", "$"))
	assert.Equal(t, "$9.99", batch.FormatPrice("$9.99", "$"))
	assert.Equal(t, "€5", batch.FormatPrice("5", "€"))
	assert.Equal(t, "", batch.FormatPrice("", "$"))
}

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Blue_T-Shirt_1_PROD-100.png",
		batch.FileName(batch.Item{Data: "PROD-100", ProductName: "Blue T-Shirt 1"}))
	assert.Equal(t, "Mugs-Cups_A-1.png",
		batch.FileName(batch.Item{Data: "A/1", ProductName: "Mugs/Cups"}))
}
