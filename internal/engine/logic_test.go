package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildRows_PartialLastRow uses a shape that does not divide evenly so the
// last row must stop at the total.
func TestBuildRows_PartialLastRow(t *testing.T) {
	rows := buildRows(Shape{Total: 25, PerRow: 10}, 12, AnnotationSet{})

	require.Len(t, rows, 3)
	assert.Len(t, rows[0].Cells, 10)
	assert.Len(t, rows[1].Cells, 10)
	assert.Len(t, rows[2].Cells, 5)
	assert.Equal(t, 24, rows[2].Cells[4].Index)

	assert.True(t, rows[1].Cells[1].Filled, "index 11")
	assert.False(t, rows[1].Cells[2].Filled, "index 12")
}

func TestShape_RowsDegenerate(t *testing.T) {
	assert.Equal(t, 0, Shape{Total: 10}.Rows())
	assert.Equal(t, 1, Shape{Total: 1, PerRow: 52}.Rows())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		value     string
		expected  time.Time
		yearKnown bool
	}{
		{"1990-05-20", time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC), true},
		{"19900520", time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC), true},
		{"1990-05-20T00:00:00Z", time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC), true},
		{"--05-20", time.Date(0, 5, 20, 0, 0, 0, 0, time.UTC), false},
		{"--0520", time.Date(0, 5, 20, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, yearKnown, err := parseDate(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.yearKnown, yearKnown)
			assert.True(t, tt.expected.Equal(got), "got %v", got)
		})
	}

	_, _, err := parseDate("20/05/1990")
	assert.Error(t, err)
}

func TestDataset_IndicesSorted(t *testing.T) {
	d := NewDataset(DatasetCustom, "t", []AnnotationEntry{
		{Index: 30, Name: "c"}, {Index: 10, Name: "a"}, {Index: 30, Name: "d"}, {Index: 20, Name: "b"},
	})
	assert.Equal(t, []int{10, 20, 30}, d.Indices())

	e, ok := d.FindByIndex(30)
	require.True(t, ok)
	assert.Equal(t, "c", e.Name)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 28, daysIn(2025, time.February))
	assert.Equal(t, 29, daysIn(2024, time.February))
	assert.Equal(t, 30, daysIn(2025, time.April))
	assert.Equal(t, 31, daysIn(2025, time.December))
}
