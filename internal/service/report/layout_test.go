package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return lines
}

func TestPaginate_Empty(t *testing.T) {
	pages := Paginate(nil)
	require.Len(t, pages, 1)
	assert.Empty(t, pages[0].Lines)
}

func TestPaginate_FirstPageCapacity(t *testing.T) {
	// 700, 680, ..., 60 fit on the first page; 40 would be below the margin.
	pages := Paginate(makeLines(33))
	require.Len(t, pages, 1)
	assert.Equal(t, 700.0, pages[0].Lines[0].Y)
	assert.Equal(t, 60.0, pages[0].Lines[32].Y)
}

func TestPaginate_OverflowStartsNewPageAtTop(t *testing.T) {
	pages := Paginate(makeLines(34))
	require.Len(t, pages, 2)
	require.Len(t, pages[1].Lines, 1)
	assert.Equal(t, 750.0, pages[1].Lines[0].Y)
	assert.Equal(t, "line 33", pages[1].Lines[0].Text)
}

func TestPaginate_FollowingPagesCapacity(t *testing.T) {
	// later pages run from 750 down to 50 inclusive: 36 lines
	pages := Paginate(makeLines(33 + 36 + 1))
	require.Len(t, pages, 3)
	assert.Len(t, pages[1].Lines, 36)
	assert.Equal(t, 50.0, pages[1].Lines[35].Y)
	assert.Len(t, pages[2].Lines, 1)
}

func TestPaginate_FixedPitchAndOrder(t *testing.T) {
	lines := makeLines(150)
	pages := Paginate(lines)
	assert.Greater(t, len(pages), 1)

	idx := 0
	for _, page := range pages {
		for i, line := range page.Lines {
			assert.Equal(t, lines[idx], line.Text, "lines keep their order")
			assert.GreaterOrEqual(t, line.Y, bottomMargin)
			if i > 0 {
				assert.Equal(t, lineHeight, page.Lines[i-1].Y-line.Y, "consecutive lines are one pitch apart")
			}
			idx++
		}
	}
	assert.Equal(t, len(lines), idx)
}

func TestPaginate_NoTrailingEmptyPage(t *testing.T) {
	pages := Paginate(makeLines(33))
	assert.Len(t, pages, 1)

	pages = Paginate(makeLines(33 + 36))
	assert.Len(t, pages, 2)
}
