package listview

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string
	Name  string
	Price float64
	Stock int
	Live  bool
	When  time.Time
	Extra any
}

func itemSorter(opts ...SorterOption) *Sorter[item] {
	return NewSorter(map[string]Accessor[item]{
		"name":  func(i item) any { return i.Name },
		"price": func(i item) any { return i.Price },
		"stock": func(i item) any { return i.Stock },
		"live":  func(i item) any { return i.Live },
		"when":  func(i item) any { return i.When },
		"extra": func(i item) any { return i.Extra },
	}, opts...)
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestSortWithoutKeyKeepsOriginalOrder(t *testing.T) {
	rows := []item{{ID: "c", Name: "z"}, {ID: "a", Name: "a"}, {ID: "b", Name: "m"}}

	got := itemSorter().Sort(rows, SortConfig{Direction: Desc})

	assert.Equal(t, []string{"c", "a", "b"}, ids(got))
	got[0].ID = "changed"
	assert.Equal(t, "c", rows[0].ID, "sort must return a copy")
}

func TestSortUnknownKeyKeepsOriginalOrder(t *testing.T) {
	rows := []item{{ID: "2"}, {ID: "1"}}
	got := itemSorter().Sort(rows, SortConfig{Key: "missing", Direction: Asc})
	assert.Equal(t, []string{"2", "1"}, ids(got))
}

func TestSortNilSorter(t *testing.T) {
	var s *Sorter[item]
	rows := []item{{ID: "2"}, {ID: "1"}}
	assert.Equal(t, []string{"2", "1"}, ids(s.Sort(rows, SortConfig{Key: "name"})))
	assert.False(t, s.Sortable("name"))
}

func TestSortIsStableInBothDirections(t *testing.T) {
	rows := []item{
		{ID: "1", Stock: 5},
		{ID: "2", Stock: 1},
		{ID: "3", Stock: 5},
		{ID: "4", Stock: 1},
		{ID: "5", Stock: 5},
	}
	s := itemSorter()

	asc := s.Sort(rows, SortConfig{Key: "stock", Direction: Asc})
	if diff := cmp.Diff([]string{"2", "4", "1", "3", "5"}, ids(asc)); diff != "" {
		t.Errorf("ascending mismatch (-want +got):\n%s", diff)
	}

	desc := s.Sort(rows, SortConfig{Key: "stock", Direction: Desc})
	if diff := cmp.Diff([]string{"1", "3", "5", "2", "4"}, ids(desc)); diff != "" {
		t.Errorf("descending mismatch (-want +got):\n%s", diff)
	}
}

func TestSortValueTypes(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []item{
		{ID: "a", Price: 9.5, Live: true, When: base.Add(2 * time.Hour)},
		{ID: "b", Price: 1.25, Live: false, When: base},
		{ID: "c", Price: 3, Live: true, When: base.Add(time.Hour)},
	}
	s := itemSorter()

	tests := []struct {
		name string
		cfg  SortConfig
		want []string
	}{
		{"float asc", SortConfig{Key: "price", Direction: Asc}, []string{"b", "c", "a"}},
		{"float desc", SortConfig{Key: "price", Direction: Desc}, []string{"a", "c", "b"}},
		{"bool asc puts false first", SortConfig{Key: "live", Direction: Asc}, []string{"b", "a", "c"}},
		{"time asc", SortConfig{Key: "when", Direction: Asc}, []string{"b", "c", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(s.Sort(rows, tt.cfg)))
		})
	}
}

func TestSortNonComparableValuesAreEqual(t *testing.T) {
	rows := []item{
		{ID: "1", Extra: nil},
		{ID: "2", Extra: []int{1}},
		{ID: "3", Extra: "text"},
		{ID: "4", Extra: nil},
	}
	got := itemSorter().Sort(rows, SortConfig{Key: "extra", Direction: Asc})
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestSortMixedNumericTypes(t *testing.T) {
	rows := []item{{ID: "1", Extra: 2.5}, {ID: "2", Extra: 1}, {ID: "3", Extra: uint8(3)}}
	got := itemSorter().Sort(rows, SortConfig{Key: "extra", Direction: Asc})
	assert.Equal(t, []string{"2", "1", "3"}, ids(got))
}

func TestSortNaturalAndCaseInsensitiveStrings(t *testing.T) {
	rows := []item{{ID: "1", Name: "item10"}, {ID: "2", Name: "Item2"}, {ID: "3", Name: "item1"}}

	plain := itemSorter().Sort(rows, SortConfig{Key: "name", Direction: Asc})
	assert.Equal(t, []string{"2", "3", "1"}, ids(plain))

	natural := itemSorter(WithNaturalStrings(true), WithCaseInsensitive(true)).
		Sort(rows, SortConfig{Key: "name", Direction: Asc})
	assert.Equal(t, []string{"3", "2", "1"}, ids(natural))
}

func TestSortStateToggle(t *testing.T) {
	s := NewSortState(SortConfig{})
	assert.Equal(t, "", s.Config().Key)

	assert.Equal(t, SortConfig{Key: "name", Direction: Asc}, s.Toggle("name"))
	assert.Equal(t, SortConfig{Key: "name", Direction: Desc}, s.Toggle("name"))
	assert.Equal(t, SortConfig{Key: "name", Direction: Asc}, s.Toggle("name"))

	s.Toggle("name")
	assert.Equal(t, SortConfig{Key: "price", Direction: Asc}, s.Toggle("price"), "a new key resets to ascending")

	s.Toggle("")
	assert.Equal(t, "", s.Config().Key)
}

func TestSortTwiceBySameKeyReturnsToAscending(t *testing.T) {
	rows := []item{{ID: "b", Name: "b"}, {ID: "a", Name: "a"}, {ID: "c", Name: "c"}}
	sorter := itemSorter()
	state := NewSortState(SortConfig{})

	state.Toggle("name")
	first := sorter.Sort(rows, state.Config())
	state.Toggle("name")
	state.Toggle("name")
	again := sorter.Sort(rows, state.Config())

	assert.Equal(t, Asc, state.Config().Direction)
	assert.Equal(t, ids(first), ids(again))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" DESC ")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestNewSortStateDefaultsDirection(t *testing.T) {
	s := NewSortState(SortConfig{Key: "name"})
	assert.Equal(t, Asc, s.Config().Direction)

	s.Set("price", "bogus")
	assert.Equal(t, SortConfig{Key: "price", Direction: Asc}, s.Config())
}
