package listview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbered(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	rows := numbered(45)

	tests := []struct {
		name string
		w    Window
		want []int
	}{
		{"first page", Window{Page: 1, PageSize: 20}, numbered(20)},
		{"last partial page", Window{Page: 3, PageSize: 20}, []int{41, 42, 43, 44, 45}},
		{"past the end", Window{Page: 4, PageSize: 20}, []int{}},
		{"page zero treated as first", Window{Page: 0, PageSize: 2}, []int{1, 2}},
		{"invalid size uses default", Window{Page: 1, PageSize: 0}, numbered(DefaultPageSize)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(rows, tt.w))
		})
	}
}

func TestPaginateCoversEveryRowOnce(t *testing.T) {
	for _, count := range []int{0, 1, 19, 20, 21, 45, 100} {
		for _, size := range []int{1, 7, 20, 50} {
			t.Run(fmt.Sprintf("count=%d size=%d", count, size), func(t *testing.T) {
				rows := numbered(count)
				var all []int
				total := TotalPages(count, size)
				for page := 1; page <= total; page++ {
					got := Paginate(rows, Window{Page: page, PageSize: size})
					assert.LessOrEqual(t, len(got), size)
					all = append(all, got...)
				}
				if count == 0 {
					assert.Empty(t, all)
					return
				}
				assert.Equal(t, rows, all)
			})
		}
	}
}

func TestTotalPagesIsAtLeastOne(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 3, TotalPages(45, 20))
}

func TestPagerRangeAndLabel(t *testing.T) {
	p := NewPager(20)

	assert.Equal(t, "showing 1-20 of 45", p.Label(45))
	p.SetPage(3, 45)
	from, to, total := p.Range(45)
	assert.Equal(t, []int{41, 45, 45}, []int{from, to, total})

	empty := NewPager(20)
	from, to, total = empty.Range(0)
	assert.Equal(t, []int{0, 0, 0}, []int{from, to, total})
	assert.Equal(t, "showing 0-0 of 0", empty.Label(0))
	assert.Equal(t, 1, empty.TotalPages(0))
}

func TestPagerNavigation(t *testing.T) {
	p := NewPager(10)

	assert.False(t, p.Prev())
	assert.True(t, p.Next(25))
	assert.True(t, p.Next(25))
	assert.False(t, p.Next(25), "already on the last page")
	assert.Equal(t, 3, p.Page())

	p.SetPage(99, 25)
	assert.Equal(t, 3, p.Page())
	p.SetPage(-1, 25)
	assert.Equal(t, 1, p.Page())
}

func TestPagerSetPageSizeResetsPage(t *testing.T) {
	p := NewPager(10)
	p.SetPage(3, 100)

	p.SetPageSize(25)

	assert.Equal(t, Window{Page: 1, PageSize: 25}, p.Window())
}
