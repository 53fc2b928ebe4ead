package client

import "github.com/Renan-Hawladar/OrbitAI/internal/model"

// ResultView holds the displayed recommendation list plus per-entry UI
// state. Each entry's roadmap expansion is an independent boolean —
// toggling one never touches another. A new result set replaces the list
// and the toggles wholesale.
type ResultView struct {
	paths    []model.CareerPath
	expanded []bool
}

// NewResultView creates an empty result view.
func NewResultView() *ResultView {
	return &ResultView{}
}

// SetPaths replaces the displayed results. All roadmaps start collapsed,
// including for entries that were expanded in the previous set.
func (v *ResultView) SetPaths(paths []model.CareerPath) {
	v.paths = paths
	v.expanded = make([]bool, len(paths))
}

// Paths returns the displayed results in rank order.
func (v *ResultView) Paths() []model.CareerPath {
	return v.paths
}

// Len returns the number of displayed results.
func (v *ResultView) Len() int {
	return len(v.paths)
}

// ToggleRoadmap flips the expansion state of one entry. Out-of-range
// indexes are ignored.
func (v *ResultView) ToggleRoadmap(i int) {
	if i < 0 || i >= len(v.expanded) {
		return
	}
	v.expanded[i] = !v.expanded[i]
}

// Expanded reports whether entry i's roadmap is shown.
func (v *ResultView) Expanded(i int) bool {
	if i < 0 || i >= len(v.expanded) {
		return false
	}
	return v.expanded[i]
}
