package tui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/trainer"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

func formatDayRow(r DayRow) string {
	mark := "[gray]○[white]"
	switch {
	case r.InFlight:
		mark = "[yellow]●[white]"
	case r.Complete:
		mark = "[green]✓[white]"
	}
	return fmt.Sprintf("%s %s  [gray](%d exercises)[white]", mark, tview.Escape(r.Day.Name), len(r.Day.Exercises))
}

// supersetMarker draws the bracket joining linked neighbours.
func supersetMarker(up, down bool) string {
	switch {
	case up && down:
		return "[cyan]│[white]"
	case down:
		return "[cyan]┌[white]"
	case up:
		return "[cyan]└[white]"
	default:
		return " "
	}
}

func formatWeightLine(r ExerciseRow) string {
	if r.Weight <= 0 {
		return ""
	}
	text := fmt.Sprintf("%s lbs", workout.FormatWeight(r.Weight))
	if plates := workout.PlateBreakdown(r.Weight, r.Exercise.Equipment); plates != "" {
		text += fmt.Sprintf(" [gray](%s)[white]", plates)
	}
	return text
}

// formatSetCells renders one cell per set; selected < 0 highlights none.
func formatSetCells(r ExerciseRow, selected int) string {
	cells := make([]string, len(r.Logged))
	for i, reps := range r.Logged {
		value := "-"
		color := "gray"
		if reps != nil {
			value = fmt.Sprint(*reps)
			color = "green"
		}
		cell := fmt.Sprintf("[%s]%d:%s[white]", color, i+1, value)
		if i == selected {
			cell = "[::r]" + cell + "[::-]"
		}
		cells[i] = cell
	}
	return strings.Join(cells, " ")
}

func formatWarmups(r ExerciseRow) string {
	if len(r.Warmups) == 0 {
		return ""
	}
	parts := make([]string, len(r.Warmups))
	for i, w := range r.Warmups {
		part := fmt.Sprintf("%d) %sx%d", i+1, workout.FormatWeight(w.Weight), w.Reps)
		if i < len(r.WarmupsDone) && r.WarmupsDone[i] {
			part = "[green]" + part + " ✓[white]"
		}
		parts[i] = part
	}
	return "[gray]Warm-up:[white] " + strings.Join(parts, "  ")
}

// formatExerciseRow is the multi-line block for one exercise. selectedSet
// is -1 when the row is not under the cursor.
func formatExerciseRow(r ExerciseRow, selectedSet int) string {
	marker := supersetMarker(r.LinkUp, r.LinkDown)
	name := tview.Escape(r.Exercise.Name)
	if selectedSet >= 0 {
		name = "[yellow]" + name + "[white]"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %dx%s", marker, name, r.Exercise.Sets, tview.Escape(r.Reps))
	if w := formatWeightLine(r); w != "" {
		fmt.Fprintf(&b, "  @ %s", w)
	}
	if r.Exercise.Notes != "" {
		fmt.Fprintf(&b, "  [gray]%s[white]", tview.Escape(r.Exercise.Notes))
	}
	fmt.Fprintf(&b, "\n%s   %s", marker, formatSetCells(r, selectedSet))
	if wu := formatWarmups(r); wu != "" && selectedSet >= 0 {
		fmt.Fprintf(&b, "\n%s   %s", marker, wu)
	}
	return b.String()
}

func formatStatus(snap trainer.Snapshot) string {
	if snap.Status != trainer.SessionStatusActive || snap.Day == nil {
		return fmt.Sprintf(" [gray]No workout in progress[white]  |  Week %d", snap.CurrentWeek)
	}

	var b strings.Builder
	fmt.Fprintf(&b, " [yellow]%s[white] week %d  [::b]%s[::-]", tview.Escape(snap.Day.Name), snap.Day.Week,
		workout.FormatElapsed(snap.ElapsedSeconds))
	if snap.TimerPaused {
		b.WriteString(" [red](PAUSED)[white]")
	}
	if snap.Rest.Active {
		fmt.Fprintf(&b, "  |  Rest [cyan]%s[white]", workout.FormatElapsed(snap.Rest.Remaining))
		if snap.Rest.Paused {
			b.WriteString(" [gray](held)[white]")
		}
	}
	if snap.SessionComplete {
		b.WriteString("  |  [green]All sets logged[white]")
	}
	return b.String()
}

func formatHistoryEntry(w workout.CompletedWorkout) string {
	sets := 0
	for _, ex := range w.Exercises {
		sets += len(ex.Sets)
	}
	return fmt.Sprintf("%s  %s [gray](week %d)[white]  %s  [gray]%d sets[white]",
		w.StartTime.Local().Format("2006-01-02 15:04"), tview.Escape(w.DayName), w.WeekOrDefault(),
		workout.FormatDuration(w.Duration), sets)
}

// formatWorkoutDetail lists every logged set of w.
func formatWorkoutDetail(w workout.CompletedWorkout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]%s[white]  week %d\n", tview.Escape(w.DayName), w.WeekOrDefault())
	fmt.Fprintf(&b, "[gray]Started:[white]  %s\n", w.StartTime.Local().Format("Mon 2 Jan 15:04"))
	if w.EndTime != nil {
		fmt.Fprintf(&b, "[gray]Finished:[white] %s\n", w.EndTime.Local().Format("Mon 2 Jan 15:04"))
	}
	fmt.Fprintf(&b, "[gray]Duration:[white] %s\n\n", workout.FormatDuration(w.Duration))
	for _, ex := range w.Exercises {
		parts := make([]string, len(ex.Sets))
		for i, s := range ex.Sets {
			parts[i] = fmt.Sprintf("%sx%s", workout.FormatWeight(s.Weight), s.Reps)
		}
		fmt.Fprintf(&b, "%s\n  [gray]%s[white]\n", tview.Escape(ex.Name), strings.Join(parts, ", "))
	}
	return b.String()
}

func formatProfile(p workout.UserProfile) string {
	return fmt.Sprintf("[gray]1RM[white]  Squat %s  Bench %s  Deadlift %s",
		workout.FormatWeight(p.SquatMax), workout.FormatWeight(p.BenchMax), workout.FormatWeight(p.DeadliftMax))
}

func formatLastTime(w *workout.CompletedWorkout) string {
	if w == nil {
		return "[gray]First time on this day[white]"
	}
	return fmt.Sprintf("[gray]Last time:[white] %s, %s", w.StartTime.Local().Format("Mon 2 Jan"), workout.FormatDuration(w.Duration))
}
