package tui

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/trainer"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

const (
	pageMain    = "main"
	pageOverlay = "overlay"

	pageProgram = "program"
	pageSession = "session"
	pageHistory = "history"
)

// CursesView implements View with tview.
type CursesView struct {
	logger      *log.Logger
	app         *tview.Application
	controller  *Controller
	currentMode Mode

	// Draw queues onto the event loop and would wait forever once the loop
	// is gone, so draws stop before the loop does.
	drawMu  sync.Mutex
	stopped atomic.Bool

	screenMu sync.Mutex
	screen   Screen

	// root holds the main layout with dialogs stacked over it
	root     *tview.Pages
	pages    *tview.Pages
	mainFlex *tview.Flex
	logView  *tview.TextView
	status   *tview.TextView
	help     *tview.TextView

	// Program mode
	programFlex       *tview.Flex
	programTabWidgets []tview.Primitive
	dayList           *tview.List
	dayDetail         *tview.TextView

	// Workout mode
	sessionFlex       *tview.Flex
	sessionTabWidgets []tview.Primitive
	exerciseView      *tview.TextView
	sessionDetail     *tview.TextView

	// History mode
	historyFlex       *tview.Flex
	historyTabWidgets []tview.Primitive
	historyList       *tview.List
	historyDetail     *tview.TextView
}

func NewCursesView(logger *log.Logger, app *tview.Application) *CursesView {
	if logger == nil {
		panic("CursesView: logger cannot be nil")
	}
	if app == nil {
		panic("CursesView: app cannot be nil")
	}
	return &CursesView{
		logger:      logger,
		app:         app,
		currentMode: ModeProgram,
	}
}

func (ui *CursesView) Initialize(controller *Controller) {
	ui.controller = controller

	// No SetChangedFunc(app.Draw) here: log lines keep arriving after the
	// app stops and a draw then hangs. BaseView draws after each update.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	ui.status = tview.NewTextView().SetDynamicColors(true)
	ui.status.SetBorder(true).SetTitle(" Upper/Lower ")

	ui.help = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	ui.pages = tview.NewPages()
	ui.initProgramMode(controller)
	ui.initSessionMode()
	ui.initHistoryMode()
	ui.pages.AddPage(pageProgram, ui.programFlex, true, true)
	ui.pages.AddPage(pageSession, ui.sessionFlex, true, false)
	ui.pages.AddPage(pageHistory, ui.historyFlex, true, false)

	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.status, 3, 0, false).
		AddItem(ui.pages, 0, 1, true).
		AddItem(ui.help, 2, 0, false)

	ui.mainFlex = tview.NewFlex().
		AddItem(left, 0, 3, true).
		AddItem(ui.logView, 0, 2, false)

	ui.root = tview.NewPages().AddPage(pageMain, ui.mainFlex, true, true)
	ui.updateHelp()
	ui.setFocusForCurrentMode()
}

func (ui *CursesView) initProgramMode(controller *Controller) {
	ui.dayList = tview.NewList().
		ShowSecondaryText(false).
		SetSelectedFunc(func(index int, _, _ string, _ rune) {
			controller.OnDaySelected(index)
		}).
		SetChangedFunc(func(index int, _, _ string, _ rune) {
			ui.updateDayDetail(index)
		})
	ui.dayList.SetBorder(true)

	ui.dayDetail = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	ui.dayDetail.SetBorder(true).SetTitle(" Plan ")

	ui.programTabWidgets = []tview.Primitive{ui.dayList, ui.dayDetail}
	ui.programFlex = tview.NewFlex().
		AddItem(ui.dayList, 0, 1, true).
		AddItem(ui.dayDetail, 0, 2, false)
}

func (ui *CursesView) initSessionMode() {
	ui.exerciseView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	ui.exerciseView.SetBorder(true).SetTitle(" Workout ")

	ui.sessionDetail = tview.NewTextView().SetDynamicColors(true)
	ui.sessionDetail.SetBorder(true)

	ui.sessionTabWidgets = []tview.Primitive{ui.exerciseView}
	ui.sessionFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.exerciseView, 0, 1, true).
		AddItem(ui.sessionDetail, 4, 0, false)
}

func (ui *CursesView) initHistoryMode() {
	ui.historyList = tview.NewList().
		ShowSecondaryText(false).
		SetChangedFunc(func(index int, _, _ string, _ rune) {
			ui.updateHistoryDetail(index)
		})
	ui.historyList.SetBorder(true).SetTitle(" History ")

	ui.historyDetail = tview.NewTextView().SetDynamicColors(true)
	ui.historyDetail.SetBorder(true).SetTitle(" Details ")

	ui.historyTabWidgets = []tview.Primitive{ui.historyList, ui.historyDetail}
	ui.historyFlex = tview.NewFlex().
		AddItem(ui.historyList, 0, 1, true).
		AddItem(ui.historyDetail, 0, 1, false)
}

// --- Mode Management ---

func (ui *CursesView) SetMode(mode Mode) {
	if ui.currentMode == mode {
		return
	}
	ui.currentMode = mode

	switch mode {
	case ModeProgram:
		ui.pages.SwitchToPage(pageProgram)
	case ModeSession:
		ui.pages.SwitchToPage(pageSession)
	case ModeHistory:
		ui.pages.SwitchToPage(pageHistory)
	}
	ui.updateHelp()
	if !ui.overlayOpen() {
		ui.setFocusForCurrentMode()
	}
}

func (ui *CursesView) CurrentMode() Mode {
	return ui.currentMode
}

func (ui *CursesView) tabWidgets() []tview.Primitive {
	switch ui.currentMode {
	case ModeProgram:
		return ui.programTabWidgets
	case ModeSession:
		return ui.sessionTabWidgets
	case ModeHistory:
		return ui.historyTabWidgets
	default:
		return nil
	}
}

func (ui *CursesView) setFocusForCurrentMode() {
	if widgets := ui.tabWidgets(); len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

func (ui *CursesView) updateHelp() {
	modes := make([]string, 0, len(AllModes))
	for _, m := range AllModes {
		modes = append(modes, fmt.Sprintf("[yellow]%c[white] %s", m.Key, m.DisplayName))
	}
	var keys string
	switch ui.currentMode {
	case ModeProgram:
		keys = "[yellow]←/→[white] Week  [yellow]Enter[white] Open  [yellow]c[white] Done  [yellow]g[white] Make current  [yellow].[white] Current  [yellow]P[white] 1RM  [yellow]R[white] Reset"
	case ModeSession:
		keys = "[yellow]Enter[white] Tap  [yellow]s[white] Start  [yellow]Space[white] Pause  [yellow]b/+/-/p/n[white] Rest  [yellow]w/W[white] Warm-up  [yellow]t[white] Weight  [yellow]r[white] Reps  [yellow]e[white] Equip  [yellow]a/D[white] Add/Remove  [yellow]l/u[white] Link  [yellow]J/K[white] Move  [yellow]x/X[white] Save/Discard"
	case ModeHistory:
		keys = "[yellow]d[white] Delete"
	}
	ui.help.SetText(keys + "\n" + strings.Join(modes, "  ") + "  [yellow]Tab[white] Focus  [yellow]^Z[white] Suspend  [yellow]Esc[white] Quit")
}

// --- Keyboard ---

func (ui *CursesView) SetupKeyboardHandlers(controller *Controller) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Ctrl-C quits through the controller rather than tview's own Stop.
		if event.Key() == tcell.KeyCtrlC {
			controller.OnEscapeKey()
			return nil
		}
		// Dialogs get every other key.
		if ui.overlayOpen() {
			return event
		}

		if event.Key() == tcell.KeyRune {
			if mode, ok := GetModeByKey(event.Rune()); ok {
				controller.OnModeChange(mode)
				return nil
			}
		}

		switch event.Key() {
		case tcell.KeyTab:
			ui.cycleFocus()
			return nil
		case tcell.KeyEscape:
			controller.OnEscapeKey()
			return nil
		case tcell.KeyCtrlZ:
			ui.suspend(controller)
			return nil
		}

		switch ui.currentMode {
		case ModeProgram:
			return ui.handleProgramKey(controller, event)
		case ModeSession:
			return ui.handleSessionKey(controller, event)
		case ModeHistory:
			return ui.handleHistoryKey(controller, event)
		}
		return event
	})
}

func (ui *CursesView) cycleFocus() {
	widgets := ui.tabWidgets()
	for i, w := range widgets {
		if w.HasFocus() {
			ui.app.SetFocus(widgets[(i+1)%len(widgets)])
			return
		}
	}
	ui.setFocusForCurrentMode()
}

func (ui *CursesView) handleProgramKey(controller *Controller, event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft:
		controller.SelectWeek(-1)
		return nil
	case tcell.KeyRight:
		controller.SelectWeek(1)
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	switch event.Rune() {
	case 'c':
		controller.ToggleDayCompletion(ui.dayList.GetCurrentItem())
	case 'g':
		controller.JumpToBrowsedWeek()
	case '.':
		controller.ShowCurrentWeek()
	case 'P':
		ui.showProfileForm(controller)
	case 'R':
		ui.confirm("Reset the program to week 1? History is kept.", controller.ResetProgram)
	default:
		return event
	}
	return nil
}

func (ui *CursesView) handleSessionKey(controller *Controller, event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		controller.MoveSelection(-1, 0)
		return nil
	case tcell.KeyDown:
		controller.MoveSelection(1, 0)
		return nil
	case tcell.KeyLeft:
		controller.MoveSelection(0, -1)
		return nil
	case tcell.KeyRight:
		controller.MoveSelection(0, 1)
		return nil
	case tcell.KeyEnter:
		ui.tapSet(controller)
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		controller.ClearSelectedSet()
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	switch event.Rune() {
	case 's':
		ui.report(controller.StartSession())
	case ' ':
		controller.TogglePause()
	case 'b':
		controller.StartRest()
	case '+', '=':
		controller.AdjustRest(1)
	case '-':
		controller.AdjustRest(-1)
	case 'p':
		controller.ToggleRestPause()
	case 'n':
		controller.SkipRest()
	case 'w':
		if idx, ok := ui.nextWarmup(false); ok {
			controller.ToggleWarmup(idx)
		}
	case 'W':
		if idx, ok := ui.nextWarmup(true); ok {
			controller.ToggleWarmup(idx)
		}
	case 't':
		ui.prompt("Working weight (lbs)", "", controller.SetWeight)
	case 'r':
		ui.prompt("Reps (empty restores the program)", ui.selectedReps(), controller.SetReps)
	case 'e':
		controller.CycleEquipment()
	case 'a':
		ui.showAddExerciseForm(controller)
	case 'D':
		ui.confirm("Remove this exercise from the day?", controller.RemoveSelectedExercise)
	case 'l':
		controller.LinkWithNext()
	case 'u':
		controller.Unlink()
	case 'J':
		controller.MoveExercise(1)
	case 'K':
		controller.MoveExercise(-1)
	case 'x':
		msg := "Finish and save this workout?"
		if !ui.lastScreen().Snapshot.SessionComplete {
			msg = "Not every set is logged. Finish and save anyway?"
		}
		ui.confirm(msg, func() { controller.EndSession(true) })
	case 'X':
		ui.confirm("Discard this workout? Nothing will be saved.", func() { controller.EndSession(false) })
	case 'o':
		controller.OpenActiveSession()
	default:
		return event
	}
	return nil
}

func (ui *CursesView) handleHistoryKey(controller *Controller, event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyRune && event.Rune() == 'd' {
		index := ui.historyList.GetCurrentItem()
		if index < len(ui.lastScreen().History) {
			ui.confirm("Delete this workout from history?", func() {
				ui.report(controller.DeleteWorkout(index))
			})
		}
		return nil
	}
	return event
}

func (ui *CursesView) tapSet(controller *Controller) {
	needsInput, err := controller.TapSet()
	if err != nil {
		ui.report(err)
		return
	}
	if needsInput {
		ui.prompt("Reps completed", "", controller.EnterReps)
	}
}

// nextWarmup finds the first undone rung of the selected exercise, or
// with undo the last done one.
func (ui *CursesView) nextWarmup(undo bool) (int, bool) {
	screen := ui.lastScreen()
	sel := screen.UI.SelectedExercise
	if sel >= len(screen.Exercises) {
		return 0, false
	}
	done := screen.Exercises[sel].WarmupsDone
	if undo {
		for i := len(done) - 1; i >= 0; i-- {
			if done[i] {
				return i, true
			}
		}
		return 0, false
	}
	for i, d := range done {
		if !d {
			return i, true
		}
	}
	return 0, false
}

func (ui *CursesView) selectedReps() string {
	screen := ui.lastScreen()
	sel := screen.UI.SelectedExercise
	if sel >= len(screen.Exercises) {
		return ""
	}
	return screen.Exercises[sel].Reps
}

func (ui *CursesView) report(err error) {
	if err != nil {
		ui.logger.Printf("UI: %v", err)
	}
}

func (ui *CursesView) suspend(controller *Controller) {
	if !canPark {
		ui.logger.Printf("UI: Suspend is not supported on this platform")
		return
	}
	ui.app.Suspend(func() {
		controller.Suspend(parkProcess)
	})
}

// --- Dialogs ---

func (ui *CursesView) overlayOpen() bool {
	return ui.root != nil && ui.root.HasPage(pageOverlay)
}

func (ui *CursesView) showOverlay(p tview.Primitive) {
	ui.root.RemovePage(pageOverlay)
	ui.root.AddPage(pageOverlay, p, true, true)
	ui.app.SetFocus(p)
}

func (ui *CursesView) closeOverlay() {
	ui.root.RemovePage(pageOverlay)
	ui.setFocusForCurrentMode()
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}

func (ui *CursesView) confirm(text string, onYes func()) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Yes", "No"}).
		SetDoneFunc(func(index int, _ string) {
			ui.closeOverlay()
			if index == 0 {
				onYes()
			}
		})
	ui.showOverlay(modal)
}

func (ui *CursesView) ShowAlert(alert Alert) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("%s\n\n%s", alert.Title, alert.Body)).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) { ui.closeOverlay() })
	ui.showOverlay(modal)
}

// prompt asks for one value; submit errors keep the dialog open.
func (ui *CursesView) prompt(label, initial string, submit func(string) error) {
	form := tview.NewForm().AddInputField(label, initial, 12, nil, nil)
	input := form.GetFormItem(0).(*tview.InputField)
	send := func() {
		if err := submit(input.GetText()); err != nil {
			form.SetTitle(" " + err.Error() + " ")
			return
		}
		ui.closeOverlay()
	}
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			send()
		case tcell.KeyEscape:
			ui.closeOverlay()
		}
	})
	form.AddButton("OK", send).
		AddButton("Cancel", ui.closeOverlay).
		SetCancelFunc(ui.closeOverlay)
	form.SetBorder(true)
	ui.showOverlay(centered(form, 50, 7))
}

func (ui *CursesView) showProfileForm(controller *Controller) {
	p := controller.Profile()
	form := tview.NewForm().
		AddInputField("Squat 1RM", workout.FormatWeight(p.SquatMax), 10, nil, nil).
		AddInputField("Bench 1RM", workout.FormatWeight(p.BenchMax), 10, nil, nil).
		AddInputField("Deadlift 1RM", workout.FormatWeight(p.DeadliftMax), 10, nil, nil)
	text := func(i int) string { return form.GetFormItem(i).(*tview.InputField).GetText() }
	form.AddButton("Save", func() {
		if err := controller.SetProfile(text(0), text(1), text(2)); err != nil {
			form.SetTitle(" " + err.Error() + " ")
			return
		}
		ui.closeOverlay()
	}).
		AddButton("Cancel", ui.closeOverlay).
		SetCancelFunc(ui.closeOverlay)
	form.SetBorder(true).SetTitle(" One-rep maxes ")
	ui.showOverlay(centered(form, 44, 11))
}

func (ui *CursesView) showAddExerciseForm(controller *Controller) {
	options := make([]string, len(workout.AllEquipment))
	for i, eq := range workout.AllEquipment {
		options[i] = eq.DisplayName()
	}
	form := tview.NewForm().
		AddInputField("Name", "", 30, nil, nil).
		AddInputField("Sets", "3", 4, nil, nil).
		AddInputField("Reps", "10", 8, nil, nil).
		AddDropDown("Equipment", options, 0, nil)
	text := func(i int) string { return form.GetFormItem(i).(*tview.InputField).GetText() }
	form.GetFormItem(0).(*tview.InputField).SetAutocompleteFunc(controller.ExerciseNames)
	form.AddButton("Add", func() {
		eqIndex, _ := form.GetFormItem(3).(*tview.DropDown).GetCurrentOption()
		if eqIndex < 0 {
			eqIndex = 0
		}
		if err := controller.AddExercise(text(0), text(1), text(2), workout.AllEquipment[eqIndex]); err != nil {
			form.SetTitle(" " + err.Error() + " ")
			return
		}
		ui.closeOverlay()
	}).
		AddButton("Cancel", ui.closeOverlay).
		SetCancelFunc(ui.closeOverlay)
	form.SetBorder(true).SetTitle(" Add exercise ")
	ui.showOverlay(centered(form, 54, 13))
}

// --- Log View ---

func (ui *CursesView) LogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

func (ui *CursesView) ClearLogView() {
	ui.logView.Clear()
}

func (ui *CursesView) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, tview.Escape(line))
	return err
}

// --- Content ---

// lastScreen is the most recently rendered Screen.
func (ui *CursesView) lastScreen() Screen {
	ui.screenMu.Lock()
	defer ui.screenMu.Unlock()
	return ui.screen
}

func (ui *CursesView) Render(screen Screen) {
	ui.screenMu.Lock()
	ui.screen = screen
	ui.screenMu.Unlock()

	ui.status.SetText(formatStatus(screen.Snapshot))
	ui.renderProgram(screen)
	ui.renderSession(screen)
	ui.renderHistory(screen)
}

func (ui *CursesView) renderProgram(screen Screen) {
	title := fmt.Sprintf(" Week %d ", screen.UI.Week)
	if screen.UI.Week == screen.CurrentWeek {
		title = fmt.Sprintf(" Week %d (current) ", screen.UI.Week)
	}
	ui.dayList.SetTitle(title)

	current := ui.dayList.GetCurrentItem()
	ui.dayList.Clear()
	for _, row := range screen.Days {
		ui.dayList.AddItem(formatDayRow(row), "", 0, nil)
	}
	if current < len(screen.Days) {
		ui.dayList.SetCurrentItem(current)
	}
	ui.updateDayDetail(ui.dayList.GetCurrentItem())
}

func (ui *CursesView) updateDayDetail(index int) {
	if ui.dayDetail == nil {
		return
	}
	screen := ui.lastScreen()
	if index < 0 || index >= len(screen.Days) {
		ui.dayDetail.SetText("\n  [gray]No days in this week[white]\n")
		return
	}
	day := screen.Days[index].Day
	var b strings.Builder
	fmt.Fprintf(&b, "\n  [yellow]%s[white]\n\n", tview.Escape(day.Name))
	for _, ex := range day.Exercises {
		fmt.Fprintf(&b, "  %s  [gray]%dx%s[white]", tview.Escape(ex.Name), ex.Sets, tview.Escape(ex.Reps))
		if w, ok := ex.TargetWeight(screen.Profile); ok {
			fmt.Fprintf(&b, "  @ %s", workout.FormatWeight(w))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n  %s\n", formatProfile(screen.Profile))
	ui.dayDetail.SetText(b.String())
}

func (ui *CursesView) renderSession(screen Screen) {
	if screen.Day == nil {
		ui.exerciseView.SetTitle(" Workout ")
		ui.exerciseView.SetText("\n  [gray]Pick a day in Program mode (press 1), or [yellow]o[gray] to open the workout in progress[white]\n")
		ui.sessionDetail.SetText("")
		return
	}
	ui.exerciseView.SetTitle(fmt.Sprintf(" %s, week %d ", screen.Day.Name, screen.Day.Week))

	var b strings.Builder
	selectedLine := 0
	line := 0
	for i, row := range screen.Exercises {
		sel := -1
		if i == screen.UI.SelectedExercise {
			sel = screen.UI.SelectedSet
			selectedLine = line
		}
		block := formatExerciseRow(row, sel)
		b.WriteString(block)
		b.WriteString("\n")
		line += strings.Count(block, "\n") + 1
	}
	ui.exerciseView.SetText(b.String())
	_, _, _, height := ui.exerciseView.GetInnerRect()
	if height > 0 && selectedLine >= height-3 {
		ui.exerciseView.ScrollTo(selectedLine-height+4, 0)
	} else {
		ui.exerciseView.ScrollToBeginning()
	}

	ui.sessionDetail.SetText(ui.sessionHint(screen))
}

func (ui *CursesView) sessionHint(screen Screen) string {
	snap := screen.Snapshot
	last := formatLastTime(screen.LastTime)
	switch {
	case snap.Status != trainer.SessionStatusActive:
		return " " + last + "\n [gray]Press[white] [yellow]s[white] [gray]to start, or tap a set.[white]"
	case !activeFor(snap, *screen.Day):
		return fmt.Sprintf(" [red]%s week %d is in progress.[white] Press [yellow]o[white] to open it.", snap.Day.Name, snap.Day.Week)
	default:
		return " " + last
	}
}

func (ui *CursesView) renderHistory(screen Screen) {
	if screen.UI.Mode != ModeHistory {
		return
	}
	current := ui.historyList.GetCurrentItem()
	ui.historyList.Clear()
	for _, w := range screen.History {
		ui.historyList.AddItem(formatHistoryEntry(w), "", 0, nil)
	}
	if current < len(screen.History) {
		ui.historyList.SetCurrentItem(current)
	}
	ui.updateHistoryDetail(ui.historyList.GetCurrentItem())
}

func (ui *CursesView) updateHistoryDetail(index int) {
	if ui.historyDetail == nil {
		return
	}
	screen := ui.lastScreen()
	if index < 0 || index >= len(screen.History) {
		ui.historyDetail.SetText("\n  [gray]No finished workouts yet[white]\n")
		return
	}
	ui.historyDetail.SetText(formatWorkoutDetail(screen.History[index]))
}

// --- Lifecycle ---

// Draw is a no-op once the view has stopped.
func (ui *CursesView) Draw() error {
	ui.drawMu.Lock()
	defer ui.drawMu.Unlock()
	if ui.stopped.Load() {
		return nil
	}
	ui.app.Draw()
	return nil
}

func (ui *CursesView) Run() error {
	// SetRoot before focusing or focus is reset
	ui.app.SetRoot(ui.root, true)
	ui.setFocusForCurrentMode()
	if ui.controller != nil && ui.controller.NeedsOnboarding() {
		ui.showProfileForm(ui.controller)
	}
	err := ui.app.Run()
	ui.stopped.Store(true)
	return err
}

func (ui *CursesView) Stop() {
	ui.drawMu.Lock()
	ui.stopped.Store(true)
	ui.drawMu.Unlock()
	ui.app.Stop()
}
