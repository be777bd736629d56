package catalog

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(current, count int) []string {
	out := []string{}
	for _, t := range PageWindow(current, count) {
		out = append(out, t.String())
	}
	return out
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		count   int
		want    []string
	}{
		{"degenerate", 1, 0, []string{}},
		{"negative count", 1, -3, []string{}},
		{"single page", 1, 1, []string{"1"}},
		{"five pages show all", 4, 5, []string{"1", "2", "3", "4", "5"}},
		{"start", 1, 10, []string{"1", "2", "3", "4", "…", "10"}},
		{"third page still start", 3, 10, []string{"1", "2", "3", "4", "…", "10"}},
		{"end", 9, 10, []string{"1", "…", "7", "8", "9", "10"}},
		{"first end page", 8, 10, []string{"1", "…", "7", "8", "9", "10"}},
		{"middle", 5, 10, []string{"1", "…", "4", "5", "6", "…", "10"}},
		{"six pages middle", 4, 6, []string{"1", "…", "3", "4", "5", "6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window(tt.current, tt.count))
		})
	}
}

func TestPageWindow_JSON(t *testing.T) {
	raw, err := json.Marshal(PageWindow(5, 10))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,"…",4,5,6,"…",10]`, string(raw))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, Paginate(items, 6, 1))
	assert.Equal(t, []int{13}, Paginate(items, 6, 3))
	assert.Empty(t, Paginate(items, 6, 4))
	assert.Empty(t, Paginate(items, 0, 1))
	assert.Empty(t, Paginate(items, 6, 0))
	assert.Empty(t, Paginate([]int{}, 6, 1))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 6))
	assert.Equal(t, 1, PageCount(6, 6))
	assert.Equal(t, 3, PageCount(13, 6))
	assert.Equal(t, 0, PageCount(13, 0))
}

func TestPaginate_HugeArguments(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.NotPanics(t, func() {
		assert.Empty(t, Paginate(items, 6, 1<<62+1))
		assert.Empty(t, Paginate(items, 6, math.MaxInt))
	})
	assert.Equal(t, items, Paginate(items, math.MaxInt, 1))
	assert.Empty(t, Paginate(items, math.MaxInt, 2))

	assert.Equal(t, 1, PageCount(7, math.MaxInt))
	assert.Equal(t, math.MaxInt/6+1, PageCount(math.MaxInt, 6))
}

// Concatenating every page reproduces the input
func TestProperty_PagesPartitionItems(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("pages 1..pageCount cover every item exactly once", prop.ForAll(
		func(items []int, pageSize int) bool {
			var joined []int
			count := PageCount(len(items), pageSize)
			for p := 1; p <= count; p++ {
				pageItems := Paginate(items, pageSize, p)
				if len(pageItems) == 0 || len(pageItems) > pageSize {
					return false
				}
				joined = append(joined, pageItems...)
			}
			if len(joined) != len(items) {
				return false
			}
			for i := range items {
				if joined[i] != items[i] {
					return false
				}
			}
			return len(Paginate(items, pageSize, count+1)) == 0
		},
		gen.SliceOf(gen.Int()),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Every window starts at page 1, ends at the last page and contains the current page
func TestProperty_PageWindowBounds(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("window contains first, last and current page", prop.ForAll(
		func(count int, current int) bool {
			if current > count {
				current = count
			}
			tokens := PageWindow(current, count)
			if tokens[0].Page != 1 || tokens[len(tokens)-1].Page != count {
				return false
			}
			for _, tok := range tokens {
				if !tok.Ellipsis && tok.Page == current {
					return true
				}
			}
			return false
		},
		gen.IntRange(1, 200),
		gen.IntRange(1, 200),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
