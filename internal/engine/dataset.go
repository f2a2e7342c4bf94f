package engine

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/tartampluch/life-grid/internal/config"
	"gopkg.in/yaml.v3"
)

//go:embed datasets/*.yaml
var datasetFS embed.FS

// DatasetID names one annotation dataset.
type DatasetID string

const (
	DatasetDeaths        DatasetID = config.DatasetDeaths
	DatasetEntrepreneurs DatasetID = config.DatasetEntrepreneurs
	DatasetCustom        DatasetID = config.DatasetCustom
)

// builtinFiles lists the embedded datasets in catalog order.
var builtinFiles = []struct {
	id   DatasetID
	path string
}{
	{DatasetDeaths, "datasets/deaths.yaml"},
	{DatasetEntrepreneurs, "datasets/entrepreneurs.yaml"},
}

// builtin is decoded once at process start and never mutated.
var builtin = mustLoadBuiltin()

// AnnotationEntry is a labeled event pinned to a week index since birth.
type AnnotationEntry struct {
	Index int    // years*52 + weeks
	Text  string // Full sentence shown in the tooltip
	Color string // Hex color of the badge
	Name  string // Subject name
	Age   int    // Subject age at the event, as displayed
}

// Years returns the whole-year part of the index.
func (e AnnotationEntry) Years() int {
	return e.Index / config.WeeksPerYear
}

// Weeks returns the week offset within the year.
func (e AnnotationEntry) Weeks() int {
	return e.Index % config.WeeksPerYear
}

// datasetFile is the YAML layout of a dataset.
type datasetFile struct {
	Title   string      `yaml:"title"`
	Entries []entryFile `yaml:"entries"`
}

type entryFile struct {
	Name  string `yaml:"name"`
	Age   int    `yaml:"age"`
	Years int    `yaml:"years"`
	Weeks int    `yaml:"weeks"`
	Color string `yaml:"color"`
	Text  string `yaml:"text"`
}

// Dataset is an immutable, ordered collection of annotation entries.
type Dataset struct {
	ID    DatasetID
	Title string

	entries []AnnotationEntry
	byIndex map[int]int // index -> position of the first entry declared there
}

// Collision reports an index shared by more than one entry.
type Collision struct {
	Index int
	Names []string // In declaration order; Names[0] is the entry shown
}

// NewDataset builds a dataset, indexing entries by unit index. When several
// entries share an index the first one in declaration order wins.
func NewDataset(id DatasetID, title string, entries []AnnotationEntry) *Dataset {
	d := &Dataset{
		ID:      id,
		Title:   title,
		entries: slices.Clone(entries),
		byIndex: make(map[int]int, len(entries)),
	}
	for pos, e := range d.entries {
		if _, taken := d.byIndex[e.Index]; !taken {
			d.byIndex[e.Index] = pos
		}
	}
	return d
}

// LoadDataset decodes a YAML dataset and validates every entry.
func LoadDataset(id DatasetID, r io.Reader) (*Dataset, error) {
	var file datasetFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDataset)
		}
		return nil, fmt.Errorf("%s: %w: %w", config.ErrDatasetDecode, ErrInvalidDataset, err)
	}

	if len(file.Entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidDataset)
	}

	entries := make([]AnnotationEntry, 0, len(file.Entries))
	for i, ef := range file.Entries {
		entry, err := ef.toEntry()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidDataset, i+1, err)
		}
		entries = append(entries, entry)
	}

	title := strings.TrimSpace(file.Title)
	if title == "" {
		title = string(id)
	}

	d := NewDataset(id, title, entries)
	slog.Debug(config.MsgDatasetLoaded,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyDataset, id,
		config.LogKeyCount, d.Len())

	for _, c := range d.Collisions() {
		slog.Debug(config.MsgIndexCollide,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyDataset, id,
			config.LogKeyIndex, c.Index,
			config.LogKeyName, strings.Join(c.Names, ", "))
	}
	return d, nil
}

func (ef entryFile) toEntry() (AnnotationEntry, error) {
	name := strings.TrimSpace(ef.Name)
	text := strings.TrimSpace(ef.Text)
	switch {
	case name == "":
		return AnnotationEntry{}, errors.New("name is required")
	case text == "":
		return AnnotationEntry{}, errors.New("text is required")
	case ef.Years < 0 || ef.Weeks < 0 || ef.Weeks >= config.WeeksPerYear:
		return AnnotationEntry{}, fmt.Errorf("position %dy+%dw out of range", ef.Years, ef.Weeks)
	}

	index := ef.Years*config.WeeksPerYear + ef.Weeks
	if index >= config.MaxWeeks {
		return AnnotationEntry{}, fmt.Errorf("index %d beyond the %d-week grid", index, config.MaxWeeks)
	}

	age := ef.Age
	if age <= 0 {
		age = ef.Years
	}
	color := strings.TrimSpace(ef.Color)
	if color == "" {
		color = config.ColorAnnotation
	}

	return AnnotationEntry{Index: index, Text: text, Color: color, Name: name, Age: age}, nil
}

// Len returns the number of entries, duplicates included.
func (d *Dataset) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the entries in declaration order.
func (d *Dataset) Entries() []AnnotationEntry {
	return slices.Clone(d.entries)
}

// FindByIndex returns the entry displayed at a unit index.
func (d *Dataset) FindByIndex(index int) (AnnotationEntry, bool) {
	pos, ok := d.byIndex[index]
	if !ok {
		return AnnotationEntry{}, false
	}
	return d.entries[pos], true
}

// Indices returns the distinct annotated indices in ascending order.
func (d *Dataset) Indices() []int {
	out := make([]int, 0, len(d.byIndex))
	for idx := range d.byIndex {
		out = append(out, idx)
	}
	slices.Sort(out)
	return out
}

// Collisions lists indices carrying more than one entry, ascending.
func (d *Dataset) Collisions() []Collision {
	names := make(map[int][]string)
	for _, e := range d.entries {
		names[e.Index] = append(names[e.Index], e.Name)
	}

	var out []Collision
	for _, idx := range d.Indices() {
		if len(names[idx]) > 1 {
			out = append(out, Collision{Index: idx, Names: names[idx]})
		}
	}
	return out
}

// Catalog is an ordered, read-only registry of datasets.
type Catalog struct {
	order []DatasetID
	sets  map[DatasetID]*Dataset
}

// NewCatalog registers datasets in the given order. IDs must be unique.
func NewCatalog(datasets ...*Dataset) (*Catalog, error) {
	c := &Catalog{sets: make(map[DatasetID]*Dataset, len(datasets))}
	for _, d := range datasets {
		if d == nil {
			continue
		}
		if _, dup := c.sets[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDataset, d.ID)
		}
		c.order = append(c.order, d.ID)
		c.sets[d.ID] = d
	}
	return c, nil
}

// Builtin returns the catalog of embedded datasets.
func Builtin() *Catalog {
	return builtin
}

// With returns a new catalog holding c's datasets followed by d. A dataset
// already registered under d's id is replaced in place.
func (c *Catalog) With(d *Dataset) (*Catalog, error) {
	all := make([]*Dataset, 0, len(c.order)+1)
	replaced := false
	for _, id := range c.order {
		if d != nil && id == d.ID {
			all = append(all, d)
			replaced = true
			continue
		}
		all = append(all, c.sets[id])
	}
	if !replaced {
		all = append(all, d)
	}
	return NewCatalog(all...)
}

// IDs returns dataset ids in catalog order.
func (c *Catalog) IDs() []DatasetID {
	return slices.Clone(c.order)
}

// Dataset looks up a dataset by id.
func (c *Catalog) Dataset(id DatasetID) (*Dataset, bool) {
	d, ok := c.sets[id]
	return d, ok
}

// FindByIndex returns the entry of dataset id displayed at index.
func (c *Catalog) FindByIndex(id DatasetID, index int) (AnnotationEntry, bool) {
	d, ok := c.sets[id]
	if !ok {
		return AnnotationEntry{}, false
	}
	return d.FindByIndex(index)
}

func mustLoadBuiltin() *Catalog {
	datasets := make([]*Dataset, 0, len(builtinFiles))
	for _, bf := range builtinFiles {
		f, err := datasetFS.Open(bf.path)
		if err != nil {
			panic(fmt.Sprintf("%s: %s: %v", config.ErrInvalidDataset, bf.path, err))
		}
		d, err := LoadDataset(bf.id, f)
		_ = f.Close()
		if err != nil {
			panic(fmt.Sprintf("%s: %v", bf.path, err))
		}
		datasets = append(datasets, d)
	}

	c, err := NewCatalog(datasets...)
	if err != nil {
		panic(err)
	}
	return c
}
