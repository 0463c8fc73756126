package pagination_test

import (
	"strconv"
	"testing"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_NonNumericTokensServeFirstPage(t *testing.T) {
	p := pagination.New(50, 10)

	for _, token := range []string{"", "abc", "1.5", "two", "  ", "1e2"} {
		page := p.Page(token)
		assert.Equal(t, 1, page.Number, "token %q should serve page 1", token)
		assert.Equal(t, 0, page.Offset)
		assert.Equal(t, 10, page.Limit)
	}
}

func TestPage_OutOfRangeTokensServeLastPage(t *testing.T) {
	p := pagination.New(12, 5) // pages: 1..3

	// Too large, zero and negative all take the same out-of-range path.
	for _, token := range []string{"4", "999", "0", "-1", "-7"} {
		page := p.Page(token)
		assert.Equal(t, 3, page.Number, "token %q should serve the last page", token)
	}

	last := p.Page("999")
	assert.Equal(t, 10, last.Offset)
	assert.Equal(t, 2, last.Limit, "last page holds the 2 remaining items")
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrevious)
}

func TestPage_WindowsCoverAllItemsExactlyOnce(t *testing.T) {
	// 14 categories at 10 per page: page 1 has 10, page 2 has 4.
	p := pagination.New(14, 10)
	require.Equal(t, 2, p.NumPages())

	first := p.Page("1")
	assert.Equal(t, 0, first.Offset)
	assert.Equal(t, 10, first.Limit)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	second := p.Page("2")
	assert.Equal(t, 10, second.Offset)
	assert.Equal(t, 4, second.Limit)
	assert.False(t, second.HasNext)

	// The two windows are disjoint and their union is the full set.
	assert.Equal(t, first.Offset+first.Limit, second.Offset)
	assert.Equal(t, 14, first.Limit+second.Limit)
}

func TestPage_EmptySetStillHasOnePage(t *testing.T) {
	p := pagination.New(0, 5)

	require.Equal(t, 1, p.NumPages())
	page := p.Page("")
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 0, page.Limit)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestPage_Stability(t *testing.T) {
	p := pagination.New(37, 5)

	for i := 0; i < 3; i++ {
		page := p.Page("4")
		assert.Equal(t, 4, page.Number)
		assert.Equal(t, 15, page.Offset)
		assert.Equal(t, 5, page.Limit)
	}
}

func TestElidedRange_ShortSetListsEveryPage(t *testing.T) {
	// 6 pages <= (2+1)*2, so no elision anywhere.
	p := pagination.New(30, 5)
	got := p.Page("3").ElidedRange()
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, got)
}

func TestElidedRange_ElidesBothSides(t *testing.T) {
	p := pagination.New(100, 5) // 20 pages
	got := p.Page("10").ElidedRange()
	want := []string{
		"1", pagination.Ellipsis,
		"8", "9", "10", "11", "12",
		pagination.Ellipsis, "20",
	}
	assert.Equal(t, want, got)
}

func TestElidedRange_NearTheEdges(t *testing.T) {
	p := pagination.New(100, 5) // 20 pages

	// Close to the start: no left ellipsis.
	got := p.Page("2").ElidedRange()
	want := []string{"1", "2", "3", "4", pagination.Ellipsis, "20"}
	assert.Equal(t, want, got)

	// Close to the end: no right ellipsis.
	got = p.Page("19").ElidedRange()
	want = []string{"1", pagination.Ellipsis, "17", "18", "19", "20"}
	assert.Equal(t, want, got)
}

func TestElidedRange_ContainsCurrentPageAlways(t *testing.T) {
	p := pagination.New(200, 7)
	for n := 1; n <= p.NumPages(); n++ {
		page := p.Page(strconv.Itoa(n))
		assert.Contains(t, page.ElidedRange(), strconv.Itoa(n))
	}
}
