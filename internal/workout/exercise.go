package workout

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Equipment identifies the implement an exercise is performed with.
// The zero value behaves like EquipmentOther.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell-45"
	EquipmentBarbell25  Equipment = "barbell-25"
	EquipmentSmith      Equipment = "smith-15"
	EquipmentMachine    Equipment = "machine"
	EquipmentCable      Equipment = "cable"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentOther      Equipment = "other"
)

// AllEquipment lists every equipment kind in menu order.
var AllEquipment = []Equipment{
	EquipmentBarbell,
	EquipmentBarbell25,
	EquipmentSmith,
	EquipmentMachine,
	EquipmentCable,
	EquipmentBodyweight,
	EquipmentDumbbell,
	EquipmentOther,
}

var equipmentNames = map[Equipment]string{
	EquipmentBarbell:    "Barbell (45 lbs)",
	EquipmentBarbell25:  "Barbell (25 lbs)",
	EquipmentSmith:      "Smith Machine (15 lbs)",
	EquipmentMachine:    "Machine",
	EquipmentCable:      "Cable",
	EquipmentBodyweight: "Bodyweight",
	EquipmentDumbbell:   "Dumbbell",
	EquipmentOther:      "Other",
}

// ParseEquipment accepts either the identifier ("barbell-45") or the
// display name ("Barbell (45 lbs)"), case-insensitively.
func ParseEquipment(s string) (Equipment, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return EquipmentOther, nil
	}
	for eq, name := range equipmentNames {
		if strings.EqualFold(s, string(eq)) || strings.EqualFold(s, name) {
			return eq, nil
		}
	}
	return "", fmt.Errorf("unknown equipment %q", s)
}

func (e Equipment) normalized() Equipment {
	if e == "" {
		return EquipmentOther
	}
	return e
}

func (e Equipment) DisplayName() string {
	if name, ok := equipmentNames[e.normalized()]; ok {
		return name
	}
	return string(e)
}

// BaseWeight is the empty weight of the bar, 0 for everything without one.
func (e Equipment) BaseWeight() float64 {
	switch e {
	case EquipmentBarbell:
		return 45
	case EquipmentBarbell25:
		return 25
	case EquipmentSmith:
		return 15
	default:
		return 0
	}
}

// LoadsPlates reports whether the weight is built from a bar plus plates.
func (e Equipment) LoadsPlates() bool {
	return e == EquipmentBarbell || e == EquipmentBarbell25 || e == EquipmentSmith
}

func (e *Equipment) UnmarshalText(text []byte) error {
	parsed, err := ParseEquipment(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// LiftType separates the three percentage-driven main lifts from everything else.
type LiftType string

const (
	LiftSquat     LiftType = "squat"
	LiftBench     LiftType = "bench"
	LiftDeadlift  LiftType = "deadlift"
	LiftAccessory LiftType = "accessory"
)

var liftNames = map[LiftType]string{
	LiftSquat:     "Back Squat",
	LiftBench:     "Bench Press",
	LiftDeadlift:  "Deadlift",
	LiftAccessory: "Accessory",
}

func ParseLiftType(s string) (LiftType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LiftAccessory, nil
	}
	for lt, name := range liftNames {
		if strings.EqualFold(s, string(lt)) || strings.EqualFold(s, name) {
			return lt, nil
		}
	}
	return "", fmt.Errorf("unknown lift type %q", s)
}

func (l LiftType) DisplayName() string {
	if name, ok := liftNames[l]; ok {
		return name
	}
	return string(l)
}

func (l LiftType) IsMainLift() bool {
	return l == LiftSquat || l == LiftBench || l == LiftDeadlift
}

func (l *LiftType) UnmarshalText(text []byte) error {
	parsed, err := ParseLiftType(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// UserProfile carries the one-rep maxes that percentage targets are computed from.
type UserProfile struct {
	SquatMax    float64
	BenchMax    float64
	DeadliftMax float64
}

func (p UserProfile) OneRepMax(lift LiftType) float64 {
	switch lift {
	case LiftSquat:
		return p.SquatMax
	case LiftBench:
		return p.BenchMax
	case LiftDeadlift:
		return p.DeadliftMax
	default:
		return 0
	}
}

// Exercise is one planned movement. Name, not ID, is the key that
// overrides, history and saved weights are joined on.
type Exercise struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Sets            int       `json:"sets"`
	Reps            string    `json:"reps"`
	LiftType        LiftType  `json:"liftType"`
	PercentageOf1RM *float64  `json:"percentageOf1RM,omitempty"`
	Notes           string    `json:"rpeOrNotes"`
	Equipment       Equipment `json:"equipment"`
}

// NewExercise builds an exercise with a fresh ID. A percentage given for
// an accessory lift is dropped.
func NewExercise(name string, sets int, reps string, lift LiftType, pct *float64, notes string, equipment Equipment) Exercise {
	if !lift.IsMainLift() {
		pct = nil
	}
	return Exercise{
		ID:              uuid.New(),
		Name:            name,
		Sets:            sets,
		Reps:            reps,
		LiftType:        lift,
		PercentageOf1RM: pct,
		Notes:           notes,
		Equipment:       equipment.normalized(),
	}
}

// TargetWeight is the percentage of the matching one-rep max, rounded down
// to a multiple of 5. ok is false for exercises without a percentage.
func (e Exercise) TargetWeight(profile UserProfile) (weight float64, ok bool) {
	if e.PercentageOf1RM == nil || !e.LiftType.IsMainLift() {
		return 0, false
	}
	return FloorToFive(profile.OneRepMax(e.LiftType) * *e.PercentageOf1RM), true
}

// FloorToFive rounds w down to the nearest multiple of 5.
func FloorToFive(w float64) float64 {
	return math.Floor(w/5) * 5
}

// WorkoutDay is one training day of the program for a given week.
type WorkoutDay struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Week      int        `json:"week"`
	Exercises []Exercise `json:"exercises"`
}

func (d WorkoutDay) Clone() WorkoutDay {
	d.Exercises = append([]Exercise(nil), d.Exercises...)
	return d
}
