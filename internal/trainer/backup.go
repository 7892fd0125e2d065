package trainer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

var ErrInvalidBackup = errors.New("invalid backup")

// BackupDocument is the export/import format: every persisted value except
// the in-progress session. Field names are part of the file format.
type BackupDocument struct {
	History                 []workout.CompletedWorkout    `json:"history"`
	Supersets               map[string][]Superset         `json:"supersets"`
	ExerciseOrder           map[string][]string           `json:"exerciseOrder"`
	CurrentWeek             int                           `json:"currentWeek"`
	CompletedDaysByWeek     map[int][]string              `json:"completedDaysByWeek"`
	AddedExercises          map[string][]workout.Exercise `json:"addedExercises"`
	RemovedDefaultExercises map[string][]string           `json:"removedDefaultExercises"`
	OverriddenReps          map[string]string             `json:"overriddenReps"`
	OverriddenEquipment     map[string]workout.Equipment  `json:"overriddenEquipment"`
	SavedWeights            map[string]float64            `json:"savedWeights"`
	CustomExercises         []string                      `json:"customExercises"`
	SquatMax                float64                       `json:"squatMax"`
	BenchMax                float64                       `json:"benchMax"`
	DeadliftMax             float64                       `json:"deadliftMax"`
	HasOnboarded            bool                          `json:"hasOnboarded"`
}

// Validate reports every problem in the document at once.
func (d BackupDocument) Validate() error {
	var errs error
	if d.CurrentWeek < 1 {
		errs = multierr.Append(errs, fmt.Errorf("currentWeek %d must be at least 1", d.CurrentWeek))
	}

	seen := make(map[uuid.UUID]bool, len(d.History))
	for i, w := range d.History {
		if w.ID == uuid.Nil {
			errs = multierr.Append(errs, fmt.Errorf("history[%d]: missing id", i))
		} else if seen[w.ID] {
			errs = multierr.Append(errs, fmt.Errorf("history[%d]: duplicate id %s", i, w.ID))
		}
		seen[w.ID] = true
		if w.DayName == "" {
			errs = multierr.Append(errs, fmt.Errorf("history[%d]: missing dayName", i))
		}
		if w.EndTime != nil && w.EndTime.Before(w.StartTime) {
			errs = multierr.Append(errs, fmt.Errorf("history[%d]: endTime before startTime", i))
		}
		if w.Duration < 0 {
			errs = multierr.Append(errs, fmt.Errorf("history[%d]: negative duration", i))
		}
	}

	for week, days := range d.CompletedDaysByWeek {
		if week < 1 {
			errs = multierr.Append(errs, fmt.Errorf("completedDaysByWeek: week %d must be at least 1", week))
		}
		names := make(map[string]bool, len(days))
		for _, name := range days {
			if names[name] {
				errs = multierr.Append(errs, fmt.Errorf("completedDaysByWeek[%d]: %q listed twice", week, name))
			}
			names[name] = true
		}
	}

	for key, exercises := range d.AddedExercises {
		for i, ex := range exercises {
			if ex.Name == "" {
				errs = multierr.Append(errs, fmt.Errorf("addedExercises[%s][%d]: missing name", key, i))
			}
			if ex.Sets <= 0 {
				errs = multierr.Append(errs, fmt.Errorf("addedExercises[%s][%d]: sets must be positive", key, i))
			}
		}
	}

	for day, sets := range d.Supersets {
		for i, s := range sets {
			if len(NewSuperset(s...)) < 2 {
				errs = multierr.Append(errs, fmt.Errorf("supersets[%s][%d]: needs two exercises", day, i))
			}
			for j := i + 1; j < len(sets); j++ {
				if NewSuperset(s...).Overlaps(NewSuperset(sets[j]...)) {
					errs = multierr.Append(errs, fmt.Errorf("supersets[%s]: entries %d and %d overlap", day, i, j))
				}
			}
		}
	}

	for name, w := range d.SavedWeights {
		if w < 0 {
			errs = multierr.Append(errs, fmt.Errorf("savedWeights[%s]: negative weight", name))
		}
	}
	if d.SquatMax < 0 || d.BenchMax < 0 || d.DeadliftMax < 0 {
		errs = multierr.Append(errs, errors.New("one-rep maxes must not be negative"))
	}
	return errs
}

// EncodeBackup writes doc as indented JSON.
func EncodeBackup(w io.Writer, doc BackupDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// DecodeBackup reads and validates a document. Errors wrap ErrInvalidBackup.
func DecodeBackup(r io.Reader) (BackupDocument, error) {
	var doc BackupDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return BackupDocument{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}
	if err := doc.Validate(); err != nil {
		return BackupDocument{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}
	return doc, nil
}

// ExportBackup captures everything but the active session.
func (wm *WorkoutManager) ExportBackup() BackupDocument {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	o := wm.overrides.Clone()
	p := wm.progression.Clone()
	prefs := wm.prefs.Clone()
	return BackupDocument{
		History:                 wm.history.Clone(),
		Supersets:               o.Supersets,
		ExerciseOrder:           o.Order,
		CurrentWeek:             p.CurrentWeek,
		CompletedDaysByWeek:     p.CompletedDaysByWeek,
		AddedExercises:          o.Added,
		RemovedDefaultExercises: o.Removed,
		OverriddenReps:          o.Reps,
		OverriddenEquipment:     o.Equipment,
		SavedWeights:            prefs.SavedWeights,
		CustomExercises:         prefs.CustomExercises,
		SquatMax:                prefs.Profile.SquatMax,
		BenchMax:                prefs.Profile.BenchMax,
		DeadliftMax:             prefs.Profile.DeadliftMax,
		HasOnboarded:            prefs.Onboarded,
	}
}

// ImportBackup replaces history, overrides, progression and preferences
// with doc and saves them. Nothing changes unless doc is valid. The active
// session is left alone.
func (wm *WorkoutManager) ImportBackup(doc BackupDocument) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	overrides := ScheduleOverrides{
		Added:     doc.AddedExercises,
		Removed:   doc.RemovedDefaultExercises,
		Reps:      doc.OverriddenReps,
		Equipment: doc.OverriddenEquipment,
		Order:     doc.ExerciseOrder,
		Supersets: doc.Supersets,
	}
	overrides = overrides.Clone()

	progression := Progression{CurrentWeek: doc.CurrentWeek, CompletedDaysByWeek: doc.CompletedDaysByWeek}.Clone()

	prefs := Preferences{
		SavedWeights:    doc.SavedWeights,
		CustomExercises: doc.CustomExercises,
		Profile: workout.UserProfile{
			SquatMax:    doc.SquatMax,
			BenchMax:    doc.BenchMax,
			DeadliftMax: doc.DeadliftMax,
		},
		Onboarded: doc.HasOnboarded,
	}.Clone()

	wm.mu.Lock()
	wm.history = History(doc.History).Clone()
	wm.overrides = overrides
	wm.progression = progression
	wm.prefs = prefs
	wm.saveAll()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: Imported backup (%d workouts, week %d)", len(doc.History), doc.CurrentWeek)
	wm.snapshots.Publish(snap)
	return nil
}
