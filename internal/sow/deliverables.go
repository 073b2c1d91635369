package sow

import (
	"fmt"
	"slices"
	"strings"
)

// AddDeliverable appends d unless it is empty or already listed. It reports
// whether the list changed.
func (r *EngagementRecord) AddDeliverable(d string) bool {
	d = strings.TrimSpace(d)
	if d == "" || r.HasDeliverable(d) {
		return false
	}
	r.Project.Deliverables = append(r.Project.Deliverables, d)
	return true
}

// RemoveDeliverable removes the deliverable at position i; later entries
// shift down by one and keep their order.
func (r *EngagementRecord) RemoveDeliverable(i int) error {
	n := len(r.Project.Deliverables)
	if i < 0 || i >= n {
		return fmt.Errorf("deliverable index %d out of range [0,%d)", i, n)
	}
	r.Project.Deliverables = slices.Delete(r.Project.Deliverables, i, i+1)
	return nil
}

// HasDeliverable reports whether d is already listed.
func (r *EngagementRecord) HasDeliverable(d string) bool {
	return slices.Contains(r.Project.Deliverables, d)
}

// ToggleDeliverable adds d when absent and removes it when present, the way
// the preset chips behave.
func (r *EngagementRecord) ToggleDeliverable(d string) {
	if i := slices.Index(r.Project.Deliverables, d); i >= 0 {
		_ = r.RemoveDeliverable(i)
		return
	}
	r.AddDeliverable(d)
}

// dedupe keeps the first occurrence of each non-empty entry.
func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || slices.Contains(out, it) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// NormalizeDeliverables re-establishes the uniqueness invariant after the
// list was assigned wholesale.
func (r *EngagementRecord) NormalizeDeliverables() {
	r.Project.Deliverables = dedupe(r.Project.Deliverables)
}
