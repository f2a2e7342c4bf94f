package engine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/engine"
)

func TestBuiltin_Integrity(t *testing.T) {
	cat := engine.Builtin()
	assert.Equal(t, []engine.DatasetID{engine.DatasetDeaths, engine.DatasetEntrepreneurs}, cat.IDs())

	deaths, ok := cat.Dataset(engine.DatasetDeaths)
	require.True(t, ok)
	assert.Equal(t, 16, deaths.Len())
	assert.Empty(t, deaths.Collisions())

	entre, ok := cat.Dataset(engine.DatasetEntrepreneurs)
	require.True(t, ok)
	assert.Equal(t, 15, entre.Len())

	for _, d := range []*engine.Dataset{deaths, entre} {
		for _, e := range d.Entries() {
			assert.NotEmpty(t, e.Name)
			assert.NotEmpty(t, e.Text)
			assert.True(t, strings.HasPrefix(e.Color, "#"), "%s color %q", e.Name, e.Color)
			assert.GreaterOrEqual(t, e.Index, 0)
			assert.Less(t, e.Index, config.MaxWeeks)
		}
	}
}

func TestBuiltin_Singleton(t *testing.T) {
	assert.Same(t, engine.Builtin(), engine.Builtin())
}

func TestCatalog_FindByIndex(t *testing.T) {
	cat := engine.Builtin()

	e, ok := cat.FindByIndex(engine.DatasetDeaths, 27*52+17)
	require.True(t, ok)
	assert.Equal(t, "Kurt Cobain", e.Name)
	assert.Equal(t, 27, e.Years())
	assert.Equal(t, 17, e.Weeks())

	// Display age and position may differ.
	e, ok = cat.FindByIndex(engine.DatasetDeaths, 54*52+9)
	require.True(t, ok)
	assert.Equal(t, "Steve Jobs", e.Name)
	assert.Equal(t, 56, e.Age)

	_, ok = cat.FindByIndex(engine.DatasetDeaths, 0)
	assert.False(t, ok)

	_, ok = cat.FindByIndex("unknown", 27*52+17)
	assert.False(t, ok)
}

// TestCatalog_FirstMatchWins checks the tie-break on shared indices.
func TestCatalog_FirstMatchWins(t *testing.T) {
	cat := engine.Builtin()

	e, ok := cat.FindByIndex(engine.DatasetEntrepreneurs, 40*52)
	require.True(t, ok)
	assert.Equal(t, "Vera Wang", e.Name)

	e, ok = cat.FindByIndex(engine.DatasetEntrepreneurs, 55*52)
	require.True(t, ok)
	assert.Equal(t, "Arianna Huffington", e.Name)

	d, _ := cat.Dataset(engine.DatasetEntrepreneurs)
	collisions := d.Collisions()
	require.Len(t, collisions, 2)
	assert.Equal(t, 40*52, collisions[0].Index)
	assert.Equal(t, []string{"Vera Wang", "Colonel Sanders", "Lynda Weinman", "Gary Heavin"}, collisions[0].Names)
	assert.Equal(t, 55*52, collisions[1].Index)
	assert.Equal(t, []string{"Arianna Huffington", "Takichiro Mori"}, collisions[1].Names)
}

func TestAnnotationSet(t *testing.T) {
	d, _ := engine.Builtin().Dataset(engine.DatasetEntrepreneurs)

	set := engine.NewAnnotationSet(engine.ModeWeeks, d, true)
	assert.Equal(t, 11, set.Len(), "distinct indices only")
	assert.Equal(t, engine.DatasetEntrepreneurs, set.DatasetID())

	entries := set.Entries()
	require.Len(t, entries, 11)
	assert.Equal(t, "Jeff Bezos", entries[0].Name)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Index, entries[i].Index)
	}

	for _, empty := range []engine.AnnotationSet{
		engine.NewAnnotationSet(engine.ModeYears, d, true),
		engine.NewAnnotationSet(engine.ModeMonths, d, true),
		engine.NewAnnotationSet(engine.ModeWeeks, d, false),
		engine.NewAnnotationSet(engine.ModeWeeks, nil, true),
	} {
		assert.Zero(t, empty.Len())
		assert.Empty(t, empty.Entries())
		assert.Equal(t, engine.DatasetID(""), empty.DatasetID())
		_, ok := empty.Lookup(40 * 52)
		assert.False(t, ok)
	}
}

func TestLoadDataset(t *testing.T) {
	doc := `
title: Family
entries:
  - name: Grandma
    years: 30
    weeks: 4
    text: Grandma opened her bakery
  - name: Uncle Joe
    age: 41
    years: 40
    color: "#123456"
    text: Uncle Joe sailed around the world
`
	d, err := engine.LoadDataset(engine.DatasetCustom, strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, engine.DatasetCustom, d.ID)
	assert.Equal(t, "Family", d.Title)
	require.Equal(t, 2, d.Len())

	e, ok := d.FindByIndex(30*52 + 4)
	require.True(t, ok)
	assert.Equal(t, "Grandma", e.Name)
	assert.Equal(t, 30, e.Age, "age defaults to years")
	assert.Equal(t, config.ColorAnnotation, e.Color)

	e, ok = d.FindByIndex(40 * 52)
	require.True(t, ok)
	assert.Equal(t, 41, e.Age)
	assert.Equal(t, "#123456", e.Color)
}

func TestLoadDataset_DefaultTitle(t *testing.T) {
	doc := "entries:\n  - {name: A, years: 1, text: a}\n"
	d, err := engine.LoadDataset(engine.DatasetCustom, strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, string(engine.DatasetCustom), d.Title)
}

func TestLoadDataset_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"Empty document", ""},
		{"Malformed YAML", "entries: [\n"},
		{"No entries", "title: Nothing\n"},
		{"Missing name", "entries:\n  - {years: 1, text: a}\n"},
		{"Missing text", "entries:\n  - {name: A, years: 1}\n"},
		{"Negative years", "entries:\n  - {name: A, years: -1, text: a}\n"},
		{"Week overflow", "entries:\n  - {name: A, years: 1, weeks: 52, text: a}\n"},
		{"Beyond lifespan", "entries:\n  - {name: A, years: 90, text: a}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.LoadDataset(engine.DatasetCustom, strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, engine.ErrInvalidDataset)
		})
	}
}

func TestCatalog_With(t *testing.T) {
	custom := engine.NewDataset(engine.DatasetCustom, "Mine", []engine.AnnotationEntry{
		{Index: 10, Name: "Me", Text: "First steps", Color: "#FFFFFF", Age: 0},
	})

	cat, err := engine.Builtin().With(custom)
	require.NoError(t, err)
	assert.Equal(t, []engine.DatasetID{engine.DatasetDeaths, engine.DatasetEntrepreneurs, engine.DatasetCustom}, cat.IDs())
	assert.Len(t, engine.Builtin().IDs(), 2, "the builtin catalog is untouched")

	other := engine.NewDataset(engine.DatasetCustom, "Other", []engine.AnnotationEntry{
		{Index: 20, Name: "You", Text: "First words", Color: "#FFFFFF", Age: 0},
	})
	cat, err = cat.With(other)
	require.NoError(t, err)
	assert.Len(t, cat.IDs(), 3, "same id replaces the dataset")
	d, ok := cat.Dataset(engine.DatasetCustom)
	require.True(t, ok)
	assert.Equal(t, "Other", d.Title)
}

func TestNewCatalog_DuplicateIDs(t *testing.T) {
	d := engine.NewDataset(engine.DatasetCustom, "Mine", nil)
	_, err := engine.NewCatalog(d, d)
	assert.ErrorIs(t, err, engine.ErrInvalidDataset)
}
