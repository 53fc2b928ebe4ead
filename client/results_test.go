package client

import (
	"fmt"
	"testing"

	"github.com/Renan-Hawladar/OrbitAI/internal/model"
)

func testPaths(n int) []model.CareerPath {
	paths := make([]model.CareerPath, n)
	for i := range paths {
		paths[i] = model.CareerPath{
			CareerPath:        fmt.Sprintf("Career %d", i+1),
			SuitabilityReason: "fits",
			RequiredSkills:    []string{"Go"},
			Roadmap:           []model.RoadmapStep{{Step: 1, Action: "learn", Details: "stuff"}},
		}
	}
	return paths
}

func TestResultView_RendersOneEntryPerPath(t *testing.T) {
	v := NewResultView()
	v.SetPaths(testPaths(3))

	if v.Len() != 3 {
		t.Errorf("Len() = %d, want 3", v.Len())
	}
	for i := 0; i < 3; i++ {
		if v.Expanded(i) {
			t.Errorf("entry %d starts expanded", i)
		}
	}
}

func TestResultView_TogglesAreIndependent(t *testing.T) {
	v := NewResultView()
	v.SetPaths(testPaths(3))

	v.ToggleRoadmap(1)

	if v.Expanded(0) || v.Expanded(2) {
		t.Error("toggling entry 1 must not touch its neighbours")
	}
	if !v.Expanded(1) {
		t.Error("entry 1 should be expanded")
	}

	v.ToggleRoadmap(1)
	if v.Expanded(1) {
		t.Error("second toggle collapses entry 1")
	}
}

func TestResultView_ReplacementResetsToggles(t *testing.T) {
	v := NewResultView()
	v.SetPaths(testPaths(3))
	v.ToggleRoadmap(0)
	v.ToggleRoadmap(2)

	// A re-run replaces results wholesale; old expansion state is gone.
	v.SetPaths(testPaths(2))

	if v.Len() != 2 {
		t.Errorf("Len() = %d, want 2", v.Len())
	}
	if v.Expanded(0) || v.Expanded(1) {
		t.Error("replacement must collapse everything")
	}
}

func TestResultView_OutOfRangeToggleIsIgnored(t *testing.T) {
	v := NewResultView()
	v.SetPaths(testPaths(1))

	v.ToggleRoadmap(-1)
	v.ToggleRoadmap(5)

	if v.Expanded(-1) || v.Expanded(5) {
		t.Error("out-of-range queries must report collapsed")
	}
}
