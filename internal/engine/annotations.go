package engine

// AnnotationSet is the subset of a dataset overlaid on the grid. The zero
// value is the empty set.
type AnnotationSet struct {
	dataset *Dataset
}

// NewAnnotationSet derives the active set. It is empty unless mode is weeks,
// the overlay is enabled and a dataset is given.
func NewAnnotationSet(mode ViewMode, dataset *Dataset, enabled bool) AnnotationSet {
	if mode != ModeWeeks || !enabled || dataset == nil {
		return AnnotationSet{}
	}
	return AnnotationSet{dataset: dataset}
}

// Len returns the number of distinct annotated indices.
func (s AnnotationSet) Len() int {
	if s.dataset == nil {
		return 0
	}
	return len(s.dataset.byIndex)
}

// Lookup returns the entry shown at index.
func (s AnnotationSet) Lookup(index int) (AnnotationEntry, bool) {
	if s.dataset == nil {
		return AnnotationEntry{}, false
	}
	return s.dataset.FindByIndex(index)
}

// DatasetID returns the id of the backing dataset, or "" for the empty set.
func (s AnnotationSet) DatasetID() DatasetID {
	if s.dataset == nil {
		return ""
	}
	return s.dataset.ID
}

// Entries returns the displayed entries (first per index) in index order.
func (s AnnotationSet) Entries() []AnnotationEntry {
	if s.dataset == nil {
		return nil
	}
	idx := s.dataset.Indices()
	out := make([]AnnotationEntry, 0, len(idx))
	for _, i := range idx {
		e, _ := s.dataset.FindByIndex(i)
		out = append(out, e)
	}
	return out
}
