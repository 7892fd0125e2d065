package tui

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/go_func_utils"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/trainer"
)

const logResizePollInterval = 100 * time.Millisecond

// BaseView holds the logic shared by every View: it listens to the Model
// and the engine and pushes fresh content into the implementation.
type BaseView struct {
	view       View
	model      *Model
	controller *Controller
	snapshots  snapshotSource

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *log.Logger

	renderMu sync.Mutex
}

// snapshotSource is the part of the engine BaseView listens to.
type snapshotSource interface {
	Subscribe(ch chan<- trainer.Snapshot) func()
}

type NewBaseViewArg struct {
	View       View
	Model      *Model
	Controller *Controller
	Snapshots  snapshotSource
	Logger     *log.Logger
}

func NewBaseView(arg NewBaseViewArg) *BaseView {
	if arg.Logger == nil {
		panic("BaseView: logger cannot be nil")
	}
	if arg.View == nil {
		panic("BaseView: view cannot be nil")
	}
	if arg.Model == nil {
		panic("BaseView: model cannot be nil")
	}
	if arg.Controller == nil {
		panic("BaseView: controller cannot be nil")
	}
	if arg.Snapshots == nil {
		panic("BaseView: snapshots cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())

	base := &BaseView{
		view:       arg.View,
		model:      arg.Model,
		controller: arg.Controller,
		snapshots:  arg.Snapshots,
		ctx:        ctx,
		cancel:     cancel,
		logger:     arg.Logger,
	}

	arg.View.Initialize(arg.Controller)
	arg.View.SetupKeyboardHandlers(arg.Controller)
	arg.View.SetMode(arg.Model.UIState().Mode)
	base.render()

	go_func_utils.SafeGoGroup(&base.wg, base.logger, "BaseView.monitorLogResize", base.monitorLogResize)
	base.updateLogDisplay()

	base.setupEventListeners()
	return base
}

// listen runs handle for every value on a fresh subscription until shutdown.
func listen[T any](base *BaseView, name string, subscribe func(chan<- T) func(), handle func(T)) {
	ch := make(chan T, 1)
	unsubscribe := subscribe(ch)
	go_func_utils.SafeGoGroup(&base.wg, base.logger, name, func() {
		defer unsubscribe()
		for {
			select {
			case <-base.ctx.Done():
				return
			case v, ok := <-ch:
				if !ok {
					return
				}
				handle(v)
			}
		}
	})
}

func (base *BaseView) setupEventListeners() {
	listen(base, "BaseView.log", base.model.LogFeed().Subscribe, func(string) {
		base.updateLogDisplay()
		base.draw()
	})

	listen(base, "BaseView.uiState", base.model.UIStateFeed().Subscribe, func(state UIState) {
		base.view.SetMode(state.Mode)
		base.render()
		base.draw()
	})

	listen(base, "BaseView.snapshots", base.snapshots.Subscribe, func(trainer.Snapshot) {
		base.render()
		base.draw()
	})

	listen(base, "BaseView.refresh", base.model.RefreshFeed().Subscribe, func(struct{}) {
		base.render()
		base.draw()
	})

	listen(base, "BaseView.alert", base.model.AlertFeed().Subscribe, func(a Alert) {
		base.view.ShowAlert(a)
		base.draw()
	})

	// Close stops the view once; the listener exits with it.
	closeCh := make(chan struct{}, 1)
	closeUnsubscribe := base.model.CloseFeed().Subscribe(closeCh)
	go_func_utils.SafeGoGroup(&base.wg, base.logger, "BaseView.close", func() {
		defer closeUnsubscribe()
		select {
		case <-base.ctx.Done():
		case <-closeCh:
			base.view.Stop()
		}
	})
}

// render rebuilds the screen from the controller. Feeds run on separate
// goroutines, so renders are serialized.
func (base *BaseView) render() {
	screen := base.controller.Screen()
	base.renderMu.Lock()
	defer base.renderMu.Unlock()
	base.view.Render(screen)
}

func (base *BaseView) draw() {
	if err := base.view.Draw(); err != nil {
		base.logger.Printf("BaseView: Error drawing: %v", err)
	}
}

func (base *BaseView) updateLogDisplay() {
	height := base.view.LogViewHeight()
	if height <= 0 {
		return
	}

	lines := base.model.LogTail(height)
	base.renderMu.Lock()
	defer base.renderMu.Unlock()
	base.view.ClearLogView()
	for _, line := range lines {
		if err := base.view.WriteLogLine(line); err != nil {
			base.logger.Printf("BaseView: Error writing to log view: %v", err)
		}
	}
}

func (base *BaseView) monitorLogResize() {
	var lastHeight int
	ticker := time.NewTicker(logResizePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-base.ctx.Done():
			return
		case <-ticker.C:
			height := base.view.LogViewHeight()
			if height != lastHeight && height > 0 {
				lastHeight = height
				base.updateLogDisplay()
				base.draw()
			}
		}
	}
}

func (base *BaseView) Shutdown() {
	base.logger.Println("BaseView: Shutting down")
	base.cancel()
	base.wg.Wait()
	base.logger.Println("BaseView: Shutdown complete")
}

// Run blocks until the UI exits.
func (base *BaseView) Run() error {
	return base.view.Run()
}
