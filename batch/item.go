// Package batch builds lists of labels to print and renders them in one go,
// either as individual PNG files or as a PDF sheet.
package batch

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrEmptyBatch is returned when there is nothing to process.
var ErrEmptyBatch = errors.New("batch is empty")

// Item is one row of a batch: the data to encode and the text printed under
// it.
type Item struct {
	Data        string `yaml:"data" json:"data"`
	ProductName string `yaml:"product_name" json:"product_name"`
	Price       string `yaml:"price" json:"price"`
}

// List is an ordered batch. Items may repeat. The zero value is an empty list.
type List struct {
	items []Item
}

// Add appends items to the end of the list.
func (l *List) Add(items ...Item) {
	l.items = append(l.items, items...)
}

// Remove deletes the items at the given positions. Out-of-range and repeated
// positions are ignored.
func (l *List) Remove(positions ...int) {
	sorted := slices.Clone(positions)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		if p < 0 || p >= len(l.items) {
			continue
		}
		l.items = slices.Delete(l.items, p, p+1)
	}
}

// Clear empties the list.
func (l *List) Clear() {
	l.items = nil
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy of the list contents.
func (l *List) Items() []Item {
	return slices.Clone(l.items)
}

// Series builds count items starting at start, incrementing the data for each
// following item. Names are namePrefix followed by the 1-based position. If
// the data stops being incrementable the items built so far are returned
// along with ErrCannotIncrement. A count below one yields ErrEmptyBatch.
func Series(start, namePrefix, price string, count int) ([]Item, error) {
	if start == "" {
		return nil, fmt.Errorf("series: starting value is required")
	}
	if count < 1 {
		return nil, fmt.Errorf("series: %w: count must be at least 1, got %d", ErrEmptyBatch, count)
	}

	items := make([]Item, 0, count)
	data := start
	for i := 0; i < count; i++ {
		items = append(items, Item{
			Data:        data,
			ProductName: seriesName(namePrefix, i+1),
			Price:       price,
		})
		if i == count-1 {
			break
		}
		next, err := Increment(data)
		if err != nil {
			return items, fmt.Errorf("series: could not increment %q: %w", data, err)
		}
		data = next
	}
	return items, nil
}

func seriesName(prefix string, n int) string {
	if prefix == "" {
		return strconv.Itoa(n)
	}
	return prefix + " " + strconv.Itoa(n)
}

// FormatPrice prefixes price with the currency symbol unless it already
// starts with it. An empty price stays empty.
func FormatPrice(price, currency string) string {
	if price == "" || strings.HasPrefix(price, currency) {
		return price
	}
	return currency + price
}
