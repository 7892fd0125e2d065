package workout

import (
	"fmt"
	"math"
	"strings"
)

// WarmupSet is one rung of the warm-up ladder before the working sets.
type WarmupSet struct {
	Weight float64
	Reps   int
}

var warmupRamp = []struct {
	pct  float64
	reps int
}{
	{0.5, 5},
	{0.65, 5},
	{0.8, 5},
}

// Warmups returns the ladder for a main lift worked at workingWeight:
// the empty bar for 10, then 50%, 65% and 80% for 5 each. Accessories
// get none.
func Warmups(ex Exercise, workingWeight float64) []WarmupSet {
	if !ex.LiftType.IsMainLift() {
		return nil
	}
	bar := ex.Equipment.BaseWeight()
	if bar == 0 {
		bar = EquipmentBarbell.BaseWeight()
	}
	sets := []WarmupSet{{Weight: bar, Reps: 10}}
	for _, step := range warmupRamp {
		sets = append(sets, WarmupSet{Weight: FloorToFive(workingWeight * step.pct), Reps: step.reps})
	}
	return sets
}

var plateSizes = []float64{45, 35, 25, 10, 5, 2.5}

// PlateBreakdown describes the plates per side for a total on a plate-loaded
// bar, e.g. "2x45, 1x10". Empty for equipment that does not load plates.
func PlateBreakdown(total float64, equipment Equipment) string {
	if !equipment.LoadsPlates() {
		return ""
	}
	base := equipment.BaseWeight()
	if total <= base {
		return "Empty Bar"
	}

	perSide := (total - base) / 2
	var parts []string
	for _, plate := range plateSizes {
		count := int(math.Floor(perSide/plate + 1e-9))
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%dx%s", count, FormatWeight(plate)))
			perSide -= float64(count) * plate
		}
	}
	return strings.Join(parts, ", ")
}

// FormatWeight prints whole weights without decimals and keeps one otherwise.
func FormatWeight(w float64) string {
	if w == math.Trunc(w) {
		return fmt.Sprintf("%.0f", w)
	}
	return fmt.Sprintf("%.1f", w)
}
