package workflow

// SelectionSet tracks which (representative, phone) pairs are chosen for
// calling, in insertion order. Insertion order drives queue order, so the
// first phone selected is the first one called.
type SelectionSet struct {
	items []*PhoneSelection
}

// NewSelectionSet returns an empty set.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{}
}

func (s *SelectionSet) find(key SelectionKey) int {
	for i, item := range s.items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// Toggle inserts the selection as pending when absent and removes it when
// present. Returns true when the selection was added. Two identical toggles
// net out to the original set.
func (s *SelectionSet) Toggle(sel PhoneSelection) bool {
	if i := s.find(sel.Key()); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		return false
	}
	sel.Status = StatusPending
	s.items = append(s.items, &sel)
	return true
}

// SelectAll inserts every candidate not already selected, preserving the
// status of ones that are. Candidates are the currently visible phones; the
// set never reaches beyond what the caller passes in.
func (s *SelectionSet) SelectAll(candidates []PhoneSelection) {
	for _, cand := range candidates {
		if s.find(cand.Key()) >= 0 {
			continue
		}
		c := cand
		c.Status = StatusPending
		s.items = append(s.items, &c)
	}
}

// DeselectAll empties the set.
func (s *SelectionSet) DeselectAll() {
	s.items = nil
}

// List returns copies of the current selections in insertion order.
func (s *SelectionSet) List() []PhoneSelection {
	out := make([]PhoneSelection, len(s.items))
	for i, item := range s.items {
		out[i] = *item
	}
	return out
}

// Len returns the number of selections.
func (s *SelectionSet) Len() int {
	return len(s.items)
}

// Get returns a copy of the selection for the key.
func (s *SelectionSet) Get(key SelectionKey) (PhoneSelection, bool) {
	if i := s.find(key); i >= 0 {
		return *s.items[i], true
	}
	return PhoneSelection{}, false
}

// SetStatus updates the lifecycle status of one selection.
func (s *SelectionSet) SetStatus(key SelectionKey, status Status) bool {
	if i := s.find(key); i >= 0 {
		s.items[i].Status = status
		return true
	}
	return false
}

// ResetStatuses forces every selection back to pending.
func (s *SelectionSet) ResetStatuses() {
	for _, item := range s.items {
		item.Status = StatusPending
	}
}

// DeactivateAll demotes any active selection to pending, enforcing the
// single-active-call rule before a new call starts.
func (s *SelectionSet) DeactivateAll() {
	for _, item := range s.items {
		if item.Status == StatusActive {
			item.Status = StatusPending
		}
	}
}

// CountByStatus returns how many selections carry the given status.
func (s *SelectionSet) CountByStatus(status Status) int {
	n := 0
	for _, item := range s.items {
		if item.Status == status {
			n++
		}
	}
	return n
}
