package tui

// View is the framework-specific half of the UI. BaseView feeds it from
// the Model and the engine's snapshots.
type View interface {
	// Initialize builds the widgets; controller receives their events.
	Initialize(controller *Controller)

	SetupKeyboardHandlers(controller *Controller)

	// Run blocks until the UI exits.
	Run() error
	Stop()
	Draw() error

	// --- Mode Management ---

	SetMode(mode Mode)
	CurrentMode() Mode

	// --- Log View (shared across modes) ---

	LogViewHeight() int
	ClearLogView()
	WriteLogLine(line string) error

	// --- Content ---

	// Render replaces the content of every page with screen.
	Render(screen Screen)

	// ShowAlert interrupts the user with a dismissable message.
	ShowAlert(alert Alert)
}
