package trainer

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/events"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/store"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

// Catalog is the read-only program the schedule is built from.
type Catalog interface {
	GetDays(week int) []workout.WorkoutDay
	ExerciseNames() []string
}

// Snapshot is an immutable view of the session published after every change.
type Snapshot struct {
	Status          SessionStatus
	Day             *workout.WorkoutDay
	Session         *workout.CompletedWorkout
	ElapsedSeconds  int
	TimerPaused     bool
	Rest            RestTimer
	CurrentWeek     int
	SessionComplete bool
}

// WorkoutManager owns the active session and all persisted training state.
// Every method is safe for concurrent use; the two 1 Hz ticking processes
// take the same lock as callers.
type WorkoutManager struct {
	store    store.Store
	catalog  Catalog
	notifier Notifier
	logger   *log.Logger
	clock    func() time.Time

	tickInterval time.Duration
	restSeconds  int

	// protected by mu
	mu          sync.Mutex
	session     SessionState
	overrides   ScheduleOverrides
	progression Progression
	prefs       Preferences
	history     History
	elapsedTask *repeatingTask
	restTask    *repeatingTask
	closed      bool

	snapshots *events.Feed[Snapshot]

	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

type NewWorkoutManagerArg struct {
	Store    store.Store
	Catalog  Catalog
	Notifier Notifier
	Logger   *log.Logger

	// Optional. Clock defaults to time.Now, TickInterval to one second and
	// RestSeconds to DefaultRestSeconds.
	Clock        func() time.Time
	TickInterval time.Duration
	RestSeconds  int
}

func NewWorkoutManager(arg NewWorkoutManagerArg) *WorkoutManager {
	if arg.Store == nil {
		panic("WorkoutManager: store cannot be nil")
	}
	if arg.Catalog == nil {
		panic("WorkoutManager: catalog cannot be nil")
	}
	if arg.Notifier == nil {
		panic("WorkoutManager: notifier cannot be nil")
	}
	if arg.Logger == nil {
		panic("WorkoutManager: logger cannot be nil")
	}
	if arg.Clock == nil {
		arg.Clock = time.Now
	}
	if arg.TickInterval <= 0 {
		arg.TickInterval = time.Second
	}
	if arg.RestSeconds <= 0 {
		arg.RestSeconds = DefaultRestSeconds
	}

	wm := &WorkoutManager{
		store:        arg.Store,
		catalog:      arg.Catalog,
		notifier:     arg.Notifier,
		logger:       arg.Logger,
		clock:        arg.Clock,
		tickInterval: arg.TickInterval,
		restSeconds:  arg.RestSeconds,
		overrides:    NewScheduleOverrides(),
		progression:  NewProgression(),
		prefs:        NewPreferences(),
		snapshots:    events.NewFeed[Snapshot](true),
	}
	wm.session.reset()
	return wm
}

// Snapshots publishes a Snapshot after every change, replaying the latest
// one to new subscribers.
func (wm *WorkoutManager) Snapshots() *events.Feed[Snapshot] {
	return wm.snapshots
}

// Snapshot returns the current state without subscribing.
func (wm *WorkoutManager) Snapshot() Snapshot {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.buildSnapshot()
}

// Restore loads everything from the store and catches a saved session up
// to now, the same way returning from the background does.
func (wm *WorkoutManager) Restore() {
	wm.mu.Lock()
	wm.loadPersisted()
	wm.loadSessionState()
	if wm.session.Active {
		r := wm.resumeLocked()
		wm.logger.Printf("WorkoutManager: Restored session %s week %d (gap %v, +%ds, force paused %v, rest expired %v)",
			wm.session.Current.DayName, wm.session.Day.Week, r.Gap, r.ElapsedAdded, r.ForcePaused, r.RestExpired)
	} else {
		wm.logger.Printf("WorkoutManager: Restored week %d, %d history entries, no active session",
			wm.progression.CurrentWeek, len(wm.history))
	}
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// Shutdown stops both ticking processes and waits for them to exit. It does
// not save; call Background first to keep the session for the next launch.
// Safe to call multiple times.
func (wm *WorkoutManager) Shutdown() {
	wm.shutdownOnce.Do(func() {
		wm.logger.Printf("WorkoutManager: Shutting down")
		wm.mu.Lock()
		wm.closed = true
		wm.stopTasksLocked()
		wm.mu.Unlock()
		wm.wg.Wait()
		wm.logger.Printf("WorkoutManager: Shutdown complete")
	})
}

// --- Session ---

// StartSession begins a workout for day. It does nothing while one is active.
func (wm *WorkoutManager) StartSession(day workout.WorkoutDay) {
	wm.mu.Lock()
	if wm.session.Active {
		wm.mu.Unlock()
		wm.logger.Printf("WorkoutManager: Session already active, ignoring start for %s", day.Name)
		return
	}
	wm.startSessionLocked(day)
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

func (wm *WorkoutManager) startSessionLocked(day workout.WorkoutDay) {
	wm.session.start(day, wm.clock())
	wm.startElapsedTaskLocked()
	wm.saveSessionState()
	wm.logger.Printf("WorkoutManager: Session started for %s week %d", day.Name, day.Week)
}

// LogSet records a completed set in the active session.
func (wm *WorkoutManager) LogSet(entry SetEntry) error {
	wm.mu.Lock()
	if !wm.session.Active {
		wm.mu.Unlock()
		return ErrNoActiveSession
	}
	wm.session.logSet(entry, wm.clock())
	wm.saveSessionState()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
	return nil
}

// UpdateSetLog replaces whatever is logged for set setIndex of ex. A nil
// reps only clears it. Logging starts a session for day when idle, uses
// the exercise's working weight and, with startRest, starts the default
// rest period.
func (wm *WorkoutManager) UpdateSetLog(day workout.WorkoutDay, ex workout.Exercise, setIndex int, reps *int, startRest bool) {
	wm.mu.Lock()
	if wm.session.Active {
		wm.session.clearSet(ex.Name, setIndex)
	}
	if reps != nil {
		if !wm.session.Active {
			wm.startSessionLocked(day)
		}
		wm.session.logSet(SetEntry{
			ExerciseID:   ex.ID,
			ExerciseName: ex.Name,
			SetIndex:     setIndex,
			Weight:       wm.prefs.WorkingWeight(ex),
			Reps:         strconv.Itoa(*reps),
		}, wm.clock())
		if startRest {
			wm.startRestTimerLocked(wm.restSeconds)
		}
	}
	wm.saveSessionState()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// ClearSet removes set setIndex (0-based) of name from the active session.
func (wm *WorkoutManager) ClearSet(name string, setIndex int) error {
	wm.mu.Lock()
	if !wm.session.Active {
		wm.mu.Unlock()
		return ErrNoActiveSession
	}
	wm.session.clearSet(name, setIndex)
	wm.saveSessionState()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
	return nil
}

// LoggedReps is the reps logged for set setIndex of name in the active session.
func (wm *WorkoutManager) LoggedReps(name string, setIndex int) (int, bool) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.session.loggedReps(name, setIndex)
}

// ToggleWarmup flips warm-up idx for an exercise and returns the new state.
func (wm *WorkoutManager) ToggleWarmup(exerciseID uuid.UUID, idx int) bool {
	wm.mu.Lock()
	done := wm.session.toggleWarmup(exerciseID, idx)
	wm.saveSessionState()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
	return done
}

func (wm *WorkoutManager) IsWarmupCompleted(exerciseID uuid.UUID, idx int) bool {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.session.warmupDone(exerciseID, idx)
}

// TogglePause pauses or resumes the session clock.
func (wm *WorkoutManager) TogglePause() {
	wm.mu.Lock()
	if !wm.session.Active {
		wm.mu.Unlock()
		wm.logger.Printf("WorkoutManager: Cannot pause - no active session")
		return
	}
	wm.session.TimerPaused = !wm.session.TimerPaused
	wm.saveSessionState()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: Session paused=%v", snap.TimerPaused)
	wm.snapshots.Publish(snap)
}

// IsCurrentSessionComplete reports whether every planned exercise of the
// active day has all of its sets logged.
func (wm *WorkoutManager) IsCurrentSessionComplete() bool {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.isCompleteLocked()
}

func (wm *WorkoutManager) isCompleteLocked() bool {
	if !wm.session.Active || wm.session.Day == nil {
		return false
	}
	return wm.session.isComplete(wm.overrides.Planned(*wm.session.Day))
}

// EndSession finishes the active session. With save the workout gets its
// end time and duration, earns progressive overload, goes to history and
// completes its day; without save it is dropped. Either way the engine
// returns to idle and the session mirror is cleared.
func (wm *WorkoutManager) EndSession(save bool) (*workout.CompletedWorkout, error) {
	wm.mu.Lock()
	if !wm.session.Active {
		wm.mu.Unlock()
		return nil, ErrNoActiveSession
	}

	wm.stopTasksLocked()
	wm.notifier.Cancel(RestNotificationID)

	var finished *workout.CompletedWorkout
	if save {
		finished = wm.finalizeLocked()
	} else {
		wm.logger.Printf("WorkoutManager: Session discarded")
	}

	wm.session.reset()
	wm.clearSessionState()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
	return finished, nil
}

func (wm *WorkoutManager) finalizeLocked() *workout.CompletedWorkout {
	now := wm.clock()
	day := *wm.session.Day
	cw := wm.session.Current.Clone()
	cw.EndTime = &now
	cw.Duration = wm.session.ElapsedSeconds
	week := day.Week
	cw.Week = &week

	raised := ProgressiveOverload(wm.overrides.Planned(day), cw, wm.overrides.RepsFor)
	for name, w := range raised {
		wm.prefs.SaveWeight(name, w)
		wm.logger.Printf("WorkoutManager: Progressive overload %s -> %s", name, workout.FormatWeight(w))
	}
	if len(raised) > 0 {
		wm.saveWeights()
	}

	wm.history = append(wm.history, cw)
	wm.saveHistory()

	if wm.progression.MarkDayComplete(day.Week, day.Name) {
		wm.logger.Printf("WorkoutManager: Week %d complete, advancing to week %d", day.Week, wm.progression.CurrentWeek)
	}
	wm.saveProgression()

	wm.logger.Printf("WorkoutManager: Session saved for %s week %d (%s)", day.Name, day.Week, workout.FormatDuration(cw.Duration))
	out := cw.Clone()
	return &out
}

// --- Rest timer ---

// RestSeconds is the configured default rest period.
func (wm *WorkoutManager) RestSeconds() int {
	return wm.restSeconds
}

// StartRestTimer counts down seconds (the default when <= 0) and schedules
// the rest notification. It does nothing without an active session.
func (wm *WorkoutManager) StartRestTimer(seconds int) {
	wm.mu.Lock()
	if !wm.session.Active {
		wm.mu.Unlock()
		wm.logger.Printf("WorkoutManager: Cannot start rest - no active session")
		return
	}
	if seconds <= 0 {
		seconds = wm.restSeconds
	}
	wm.startRestTimerLocked(seconds)
	wm.saveSessionState()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

func (wm *WorkoutManager) startRestTimerLocked(seconds int) {
	wm.session.Rest = RestTimer{Remaining: seconds, Active: true}
	wm.restartRestCountdownLocked()
}

// restartRestCountdownLocked schedules the notification for the remaining
// time and restarts the ticker with it, so the last tick and the
// notification fall due together.
func (wm *WorkoutManager) restartRestCountdownLocked() {
	wm.scheduleRestNotificationLocked()
	wm.restTask.Cancel()
	wm.restTask = wm.startTaskLocked("rest timer", wm.handleRestTick)
}

// AddRestTime extends (or with a negative value shortens) a running rest.
func (wm *WorkoutManager) AddRestTime(seconds int) {
	wm.mu.Lock()
	if !wm.session.Rest.Active {
		wm.mu.Unlock()
		return
	}
	wm.session.Rest.Remaining += seconds
	if wm.session.Rest.Remaining <= 0 {
		wm.endRestTimerLocked()
	} else if !wm.session.Rest.Paused {
		wm.restartRestCountdownLocked()
	}
	wm.saveSessionState()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// ToggleRestTimerPause holds the countdown and its notification, or resumes both.
func (wm *WorkoutManager) ToggleRestTimerPause() {
	wm.mu.Lock()
	if !wm.session.Rest.Active {
		wm.mu.Unlock()
		return
	}
	wm.session.Rest.Paused = !wm.session.Rest.Paused
	if wm.session.Rest.Paused {
		wm.notifier.Cancel(RestNotificationID)
	} else {
		wm.restartRestCountdownLocked()
	}
	wm.saveSessionState()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// SkipRestTimer ends the rest period now.
func (wm *WorkoutManager) SkipRestTimer() {
	wm.mu.Lock()
	if !wm.session.Rest.Active {
		wm.mu.Unlock()
		return
	}
	wm.endRestTimerLocked()
	wm.saveSessionState()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

func (wm *WorkoutManager) endRestTimerLocked() {
	wm.stopRestTimerLocked()
	wm.notifier.Cancel(RestNotificationID)
}

// stopRestTimerLocked clears the countdown but leaves the notification,
// which is due when the countdown runs out by itself.
func (wm *WorkoutManager) stopRestTimerLocked() {
	wm.session.Rest = RestTimer{}
	wm.restTask.Cancel()
	wm.restTask = nil
}

func (wm *WorkoutManager) scheduleRestNotificationLocked() {
	remaining := wm.session.Rest.Remaining
	if remaining <= 0 {
		return
	}
	wm.notifier.ScheduleOneShot(RestNotificationID, time.Duration(remaining)*time.Second,
		RestNotificationTitle, RestNotificationBody)
}

// --- Background / foreground ---

// Background records when the app went away, saves the session mirror and
// stops the local ticking processes. A scheduled rest notification stays.
func (wm *WorkoutManager) Background() {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	if !wm.session.Active {
		return
	}
	now := wm.clock()
	wm.session.BackgroundedAt = &now
	wm.saveSessionState()
	wm.stopTasksLocked()
	wm.logger.Printf("WorkoutManager: Backgrounded at %s", now.Format(time.RFC3339))
}

// Foreground catches the session up with the time spent away and restarts
// its ticking processes.
func (wm *WorkoutManager) Foreground() Reconciliation {
	wm.mu.Lock()
	if !wm.session.Active {
		wm.session.BackgroundedAt = nil
		wm.mu.Unlock()
		return Reconciliation{}
	}
	r := wm.resumeLocked()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: Foregrounded after %v (+%ds, force paused %v, rest expired %v)",
		r.Gap, r.ElapsedAdded, r.ForcePaused, r.RestExpired)
	wm.snapshots.Publish(snap)
	return r
}

// resumeLocked is shared by Foreground and Restore.
func (wm *WorkoutManager) resumeLocked() Reconciliation {
	r := Reconcile(&wm.session, wm.clock())

	wm.startElapsedTaskLocked()
	wm.restTask.Cancel()
	wm.restTask = nil
	switch {
	case r.RestExpired:
		wm.notifier.Cancel(RestNotificationID)
	case wm.session.Rest.Active && wm.session.Rest.Paused:
		wm.restTask = wm.startTaskLocked("rest timer", wm.handleRestTick)
	case wm.session.Rest.Active:
		wm.restartRestCountdownLocked()
	}
	wm.saveSessionState()
	return r
}

// --- Ticking processes ---

func (wm *WorkoutManager) startTaskLocked(name string, fn func(*repeatingTask)) *repeatingTask {
	if wm.closed {
		return nil
	}
	return startRepeatingTask(&wm.wg, wm.logger, name, wm.tickInterval, fn)
}

func (wm *WorkoutManager) startElapsedTaskLocked() {
	wm.elapsedTask.Cancel()
	wm.elapsedTask = wm.startTaskLocked("session clock", wm.handleElapsedTick)
}

func (wm *WorkoutManager) stopTasksLocked() {
	wm.elapsedTask.Cancel()
	wm.elapsedTask = nil
	wm.restTask.Cancel()
	wm.restTask = nil
}

// handleElapsedTick advances the session clock by one second unless paused.
func (wm *WorkoutManager) handleElapsedTick(task *repeatingTask) {
	wm.mu.Lock()
	if task == nil || task != wm.elapsedTask || !wm.session.Active || wm.session.TimerPaused {
		wm.mu.Unlock()
		return
	}
	wm.session.ElapsedSeconds++
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// handleRestTick counts the rest timer down and ends it at zero.
func (wm *WorkoutManager) handleRestTick(task *repeatingTask) {
	wm.mu.Lock()
	if task == nil || task != wm.restTask || !wm.session.Rest.Active || wm.session.Rest.Paused {
		wm.mu.Unlock()
		return
	}
	wm.session.Rest.Remaining--
	if wm.session.Rest.Remaining <= 0 {
		wm.stopRestTimerLocked()
		wm.saveSessionState()
		wm.logger.Printf("WorkoutManager: Rest complete")
	}
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// buildSnapshot copies the published view. MUST be called with mu held.
func (wm *WorkoutManager) buildSnapshot() Snapshot {
	snap := Snapshot{
		Status:      SessionStatusIdle,
		CurrentWeek: wm.progression.CurrentWeek,
	}
	if !wm.session.Active {
		return snap
	}
	s := wm.session.clone()
	snap.Status = SessionStatusActive
	snap.Day = s.Day
	snap.Session = s.Current
	snap.ElapsedSeconds = s.ElapsedSeconds
	snap.TimerPaused = s.TimerPaused
	snap.Rest = s.Rest
	snap.SessionComplete = wm.isCompleteLocked()
	return snap
}
