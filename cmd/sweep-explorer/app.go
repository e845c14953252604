package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/time/rate"

	"github.com/unklstewy/flapsim/internal/db"
	"github.com/unklstewy/flapsim/pkg/aero"
	"github.com/unklstewy/flapsim/pkg/airflow"
	"github.com/unklstewy/flapsim/pkg/airfoil"
	"github.com/unklstewy/flapsim/pkg/config"
	"github.com/unklstewy/flapsim/pkg/flap"
	"github.com/unklstewy/flapsim/pkg/sweep"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Config *config.Config

	// Repository is set when sweeps are loaded from the database
	Repository *db.SweepRepository
}

// App represents the main application
type App struct {
	config *config.Config
	repo   *db.SweepRepository
	spec   airfoil.Spec

	// UI components
	tviewApp   *tview.Application
	devices    *tview.List
	table      *tview.Table
	preview    *PreviewView
	summary    *tview.TextView
	logs       *tview.TextView
	rootLayout *tview.Flex

	// State
	mu       sync.RWMutex
	model    string
	results  []sweep.Result
	best     []sweep.Best
	selected int
	phase    float64
	paused   bool
}

// NewApp loads or computes the sweeps and builds the UI.
func NewApp(ctx context.Context, cfg *AppConfig) (*App, error) {
	spec, err := cfg.Config.Airfoil.Spec()
	if err != nil {
		return nil, err
	}

	a := &App{
		config: cfg.Config,
		repo:   cfg.Repository,
		spec:   spec,
		model:  cfg.Config.Sweep.ForceModel,
	}

	a.setupUI()

	if err := a.load(ctx); err != nil {
		return nil, err
	}
	a.refresh()
	return a, nil
}

// setupUI initializes the user interface
func (a *App) setupUI() {
	a.tviewApp = tview.NewApplication()

	a.devices = tview.NewList().ShowSecondaryText(false)
	a.devices.SetBorder(true).SetTitle(" Devices ")
	for _, v := range flap.All() {
		a.devices.AddItem(v.String(), "", 0, nil)
	}
	a.devices.SetChangedFunc(func(index int, _, _ string, _ rune) {
		a.selectDevice(index)
	})

	a.table = tview.NewTable().SetFixed(1, 0).SetSelectable(false, false)
	a.table.SetBorder(true).SetTitle(" Sweep ")

	a.preview = NewPreviewView(a)

	a.summary = tview.NewTextView().SetDynamicColors(true)
	a.summary.SetBorder(true).SetTitle(" Optimum ")

	a.logs = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(100)
	a.logs.SetBorder(true).SetTitle(" Logs ")

	a.createLayout()
	a.tviewApp.SetInputCapture(a.handleKeyboard)
}

// createLayout arranges devices | table | preview+summary+logs
func (a *App) createLayout() {
	sidebar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.preview, 0, 5, false).
		AddItem(a.summary, 9, 0, false).
		AddItem(a.logs, 0, 2, false)

	a.rootLayout = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.devices, 26, 0, true).
		AddItem(a.table, 0, 4, false).
		AddItem(sidebar, 0, 5, false)

	a.tviewApp.SetRoot(a.rootLayout, true)
}

// load fills results and best either from the database or by running the
// sweep with the current model.
func (a *App) load(ctx context.Context) error {
	if a.repo != nil {
		return a.loadFromDB(ctx)
	}

	wing, err := a.config.Wing.Wing()
	if err != nil {
		return err
	}
	overrides := a.config.Sweep.ModelOverrides
	if a.model != a.config.Sweep.ForceModel {
		// An explicit model switch applies to every device
		overrides = nil
	}
	sel, err := aero.NewSelector(a.model, overrides, wing)
	if err != nil {
		return err
	}
	angles, err := a.config.Sweep.Angles()
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := sweep.RunAll(ctx, sel, flap.All(), a.config.Sweep.Reynolds, angles)
	if err != nil {
		return fmt.Errorf("failed to run sweep: %w", err)
	}
	best, err := sweep.Summarize(results)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.results, a.best = results, best
	a.mu.Unlock()

	a.addLog("INFO", fmt.Sprintf("Computed %d sweeps with %s in %v", len(results), a.model, time.Since(start).Round(time.Millisecond)))
	return nil
}

func (a *App) loadFromDB(ctx context.Context) error {
	runs, err := a.repo.ListRuns(ctx, nil, 10*len(flap.All()))
	if err != nil {
		return err
	}

	// Runs are newest first; keep the first one seen per device
	latest := make(map[flap.Variant]int64)
	for _, run := range runs {
		if _, ok := latest[run.Variant]; !ok {
			latest[run.Variant] = run.ID
		}
	}

	var results []sweep.Result
	for _, v := range flap.All() {
		id, ok := latest[v]
		if !ok {
			a.addLog("WARN", fmt.Sprintf("No stored sweep for %s", v))
			continue
		}
		res, err := a.repo.GetRun(ctx, id)
		if err != nil {
			return err
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		return fmt.Errorf("no stored sweeps; run flapsim sweep --persist first")
	}

	best, err := sweep.Summarize(results)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.results, a.best = results, best
	a.mu.Unlock()

	a.addLog("INFO", fmt.Sprintf("Loaded %d stored sweeps", len(results)))
	return nil
}

// current returns the result and optimum of the selected device.
func (a *App) current() (sweep.Result, sweep.Best, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	v := flap.All()[a.selected]
	for i, r := range a.results {
		if r.Variant == v {
			return r, a.best[i], true
		}
	}
	return sweep.Result{Variant: v}, sweep.Best{}, false
}

// refresh redraws the table and summary for the selected device.
func (a *App) refresh() {
	res, best, ok := a.current()
	if !ok {
		a.table.Clear()
		a.summary.SetText(fmt.Sprintf("[gray]No data for %s[-]", res.Variant))
		return
	}
	fillTable(a.table, res, best.OptimalIndex)
	a.summary.SetText(summaryText(res, best))
}

func (a *App) selectDevice(index int) {
	a.mu.Lock()
	a.selected = index
	a.mu.Unlock()

	a.refresh()
}

func (a *App) switchModel(ctx context.Context) {
	if a.repo != nil {
		a.addLog("WARN", "Model switching is unavailable for stored sweeps")
		return
	}

	if a.model == aero.ModelBaseline {
		a.model = aero.ModelSlatFlap
	} else {
		a.model = aero.ModelBaseline
	}

	if err := a.load(ctx); err != nil {
		a.addLog("ERROR", err.Error())
		return
	}
	a.refresh()
}

func (a *App) togglePause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = !a.paused
}

func (a *App) addLog(level, message string) {
	timestamp := time.Now().Format("15:04:05")
	var color string
	switch level {
	case "ERROR":
		color = "red"
	case "WARN":
		color = "yellow"
	default:
		color = "white"
	}
	fmt.Fprintf(a.logs, "[gray]%s[-] [%s]%-5s[-] %s\n", timestamp, color, level, message)
}

// animate advances the preview phase at the configured frame rate.
func (a *App) animate(ctx context.Context) {
	limiter := rate.NewLimiter(rate.Limit(a.config.Viewer.FPS), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		a.mu.Lock()
		if !a.paused {
			a.phase = advancePhase(a.phase)
		}
		a.mu.Unlock()

		a.tviewApp.QueueUpdateDraw(func() {})
	}
}

func advancePhase(phase float64) float64 {
	phase++
	if phase >= 360 {
		phase -= 360
	}
	return phase
}

// deployment returns the selected device and its current deployment angle.
func (a *App) deployment() (flap.Variant, float64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return flap.All()[a.selected], airflow.DeploymentAt(a.phase, a.config.Viewer.AmplitudeDeg)
}

func (a *App) handleKeyboard(event *tcell.EventKey) *tcell.EventKey {
	key := event.Key()
	r := event.Rune()

	switch {
	case key == tcell.KeyEscape || r == 'q':
		a.tviewApp.Stop()
		return nil
	case r == 'j':
		return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	case r == 'k':
		return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	case r == 'm':
		a.switchModel(context.Background())
		return nil
	case r == ' ':
		a.togglePause()
		return nil
	}

	return event
}

// Run starts the animation and blocks until the UI exits.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.animate(ctx)
	go func() {
		<-ctx.Done()
		a.tviewApp.Stop()
	}()

	return a.tviewApp.Run()
}
