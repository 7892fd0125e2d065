package workout

import (
	"strconv"
	"strings"
	"unicode"
)

// digitsValue strips every non-digit and parses what is left, 0 on failure.
func digitsValue(s string) int {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	n, err := strconv.Atoi(clean)
	if err != nil {
		return 0
	}
	return n
}

// TargetReps turns a planned reps string into the count a set must reach.
// Ranges ("8-12") use the upper bound. 0 means there is no usable target,
// which is the case for "AMRAP".
func TargetReps(reps string) int {
	if i := strings.LastIndex(reps, "-"); i >= 0 {
		return digitsValue(reps[i+1:])
	}
	return digitsValue(reps)
}

// PerformedReps parses logged reps, 0 when nothing numeric is present.
func PerformedReps(reps string) int {
	return digitsValue(reps)
}

func IsAMRAP(reps string) bool {
	return strings.Contains(strings.ToUpper(reps), "AMRAP")
}

// IsTimed reports clock-format targets such as ":30".
func IsTimed(reps string) bool {
	return strings.Contains(reps, ":")
}

// RepTap is the outcome of tapping a set cell. Reps nil clears the set;
// NeedsInput asks the user to type a count.
type RepTap struct {
	Reps       *int
	NeedsInput bool
}

// NextTapReps cycles a set through target, target-1, ... 1 and then
// cleared. AMRAP sets ask for input and timed sets log their seconds.
// current is the reps already logged for the set, nil when unlogged.
func NextTapReps(target string, current *int) RepTap {
	switch {
	case IsAMRAP(target):
		if current != nil {
			return RepTap{}
		}
		return RepTap{NeedsInput: true}
	case IsTimed(target):
		if current != nil {
			return RepTap{}
		}
		secs := digitsValue(target)
		return RepTap{Reps: &secs}
	}

	if current == nil {
		n := TargetReps(target)
		return RepTap{Reps: &n}
	}
	if *current > 1 {
		n := *current - 1
		return RepTap{Reps: &n}
	}
	return RepTap{}
}
