package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/rivo/tview"
	"github.com/spf13/pflag"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/config"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/logging"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/program"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/store"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/trainer"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/tui"
)

func main() {
	name := filepath.Base(os.Args[0])
	cfg, err := config.Load(name, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		config.Usage(name)
		os.Exit(0)
	}
	must("load config", err)
	must("validate config", cfg.Validate())

	logger, logCloser, err := logging.New(cfg)
	must("open log", err)
	defer logCloser.Close()
	logger.Printf("Main: Starting, data in %s (%s store)", cfg.DataDir, cfg.Store)
	if cfg.ConfigFile != "" {
		logger.Printf("Main: Read config %s", cfg.ConfigFile)
	}

	must("create data directory", os.MkdirAll(cfg.DataDir, 0o755))
	st, err := store.Open(cfg.Store, cfg.DataDir, logger)
	must("open store", err)
	defer func() {
		if err := st.Close(); err != nil {
			logger.Printf("Main: Error closing store: %v", err)
		}
	}()

	catalog, err := loadCatalog(cfg)
	must("load program", err)

	switch {
	case cfg.Export != "":
		must("export backup", exportBackup(cfg, st, catalog, logger))
		fmt.Printf("Backup written to %s\n", cfg.Export)
		return
	case cfg.Import != "":
		must("import backup", importBackup(cfg, st, catalog, logger))
		fmt.Printf("Backup restored from %s\n", cfg.Import)
		return
	}

	must("run", runUI(cfg, st, catalog, logger))
}

func loadCatalog(cfg config.Config) (*program.Catalog, error) {
	if cfg.ProgramFile == "" {
		return program.Default()
	}
	return program.Load(cfg.ProgramFile)
}

// offlineManager is a WorkoutManager for one-shot commands: no timers reach
// a user, so notifications only go to the log.
func offlineManager(cfg config.Config, st store.Store, catalog *program.Catalog, logger *log.Logger) *trainer.WorkoutManager {
	wm := trainer.NewWorkoutManager(trainer.NewWorkoutManagerArg{
		Store:       st,
		Catalog:     catalog,
		Notifier:    trainer.NewLogNotifier(logger),
		Logger:      logger,
		RestSeconds: cfg.RestSeconds,
	})
	wm.Restore()
	return wm
}

func exportBackup(cfg config.Config, st store.Store, catalog *program.Catalog, logger *log.Logger) error {
	wm := offlineManager(cfg, st, catalog, logger)
	defer wm.Shutdown()

	f, err := os.Create(cfg.Export)
	if err != nil {
		return err
	}
	if err := trainer.EncodeBackup(f, wm.ExportBackup()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func importBackup(cfg config.Config, st store.Store, catalog *program.Catalog, logger *log.Logger) error {
	f, err := os.Open(cfg.Import)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := trainer.DecodeBackup(f)
	if err != nil {
		return err
	}
	wm := offlineManager(cfg, st, catalog, logger)
	defer wm.Shutdown()
	return wm.ImportBackup(doc)
}

func runUI(cfg config.Config, st store.Store, catalog *program.Catalog, logger *log.Logger) error {
	// The log pane gets a copy of every line. Stderr would tear the screen.
	sink := tui.NewLogSink()
	if cfg.LogFile == config.StderrLogFile {
		logger.SetOutput(sink)
	} else {
		logger.SetOutput(io.MultiWriter(logger.Writer(), sink))
	}

	model := tui.NewModel(logger, sink.Lines(), 1)
	notifier := trainer.NewTimerNotifier(logger, model.Notify)
	wm := trainer.NewWorkoutManager(trainer.NewWorkoutManagerArg{
		Store:       st,
		Catalog:     catalog,
		Notifier:    notifier,
		Logger:      logger,
		RestSeconds: cfg.RestSeconds,
	})
	wm.Restore()
	model.SetWeek(wm.CurrentWeek())

	controller := tui.NewController(model, wm, logger)
	app := tview.NewApplication()
	view := tui.NewCursesView(logger, app)
	base := tui.NewBaseView(tui.NewBaseViewArg{
		View:       view,
		Model:      model,
		Controller: controller,
		Snapshots:  wm.Snapshots(),
		Logger:     logger,
	})

	err := base.Run()
	// Listeners go first: nothing may try to draw once the loop is gone.
	base.Shutdown()

	// Leaving the app backgrounds the session so the next launch reconciles
	// the time spent away.
	wm.Background()
	notifier.CancelAll()
	wm.Shutdown()
	model.Shutdown()
	logger.Println("Main: Exited")
	return err
}

func must(action string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to %s: %v\n", action, err)
		os.Exit(1)
	}
}
