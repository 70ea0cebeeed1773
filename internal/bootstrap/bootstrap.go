package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	audioinadapter "lofi/internal/modules/audio/adapter/in"
	audiooutadapter "lofi/internal/modules/audio/adapter/out"
	audiodomain "lofi/internal/modules/audio/domain"
	audiodto "lofi/internal/modules/audio/dto"
	audioout "lofi/internal/modules/audio/port/out"
	audiousecase "lofi/internal/modules/audio/usecase"
	checklistinadapter "lofi/internal/modules/checklist/adapter/in"
	checklistoutadapter "lofi/internal/modules/checklist/adapter/out"
	checklistdto "lofi/internal/modules/checklist/dto"
	checklistservice "lofi/internal/modules/checklist/service"
	checklistusecase "lofi/internal/modules/checklist/usecase"
	onboardinginadapter "lofi/internal/modules/onboarding/adapter/in"
	onboardingoutadapter "lofi/internal/modules/onboarding/adapter/out"
	onboardingusecase "lofi/internal/modules/onboarding/usecase"
	quoteinadapter "lofi/internal/modules/quote/adapter/in"
	quoteoutadapter "lofi/internal/modules/quote/adapter/out"
	quoteservice "lofi/internal/modules/quote/service"
	quoteusecase "lofi/internal/modules/quote/usecase"
	timerinadapter "lofi/internal/modules/timer/adapter/in"
	timeroutadapter "lofi/internal/modules/timer/adapter/out"
	timerdomain "lofi/internal/modules/timer/domain"
	timerdto "lofi/internal/modules/timer/dto"
	timerout "lofi/internal/modules/timer/port/out"
	timerservice "lofi/internal/modules/timer/service"
	timerusecase "lofi/internal/modules/timer/usecase"
	"lofi/internal/platform/clock"
	"lofi/internal/platform/config"
	"lofi/internal/platform/id"
	"lofi/internal/platform/kv"
	"lofi/internal/platform/logging"
	"lofi/internal/platform/schedule"
	uiapp "lofi/internal/ui/app"
	playerview "lofi/internal/ui/views/player"
	tasksview "lofi/internal/ui/views/tasks"
	timerview "lofi/internal/ui/views/timer"
)

const rolloverJob = "checklist-rollover"

type Options struct {
	DataDir   string
	Ephemeral bool
	Verbose   bool
	// Scheduler overrides the one-second tick source; tests pass a manual one.
	Scheduler timerout.Scheduler
	// AudioOutput overrides the speaker; tests pass a fake.
	AudioOutput audioout.Output
}

type App struct {
	Config config.Config
	Logger *zap.Logger

	ChecklistCLI  checklistinadapter.CLIHandler
	TimerCLI      timerinadapter.CLIHandler
	QuoteCLI      quoteinadapter.CLIHandler
	AudioCLI      audioinadapter.CLIHandler
	OnboardingCLI onboardinginadapter.CLIHandler

	verbose  bool
	level    zap.AtomicLevel
	store    kv.Store
	notifier *timeroutadapter.BeeepNotifier
	daily    *schedule.Daily
	watcher  *config.Watcher
	tempDir  string
}

func New(opts Options) (*App, error) {
	cfg, tempDir, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, level, err := logging.New(cfg.Log.Path, cfg.Log.Level, opts.Verbose)
	if err != nil {
		return nil, err
	}

	var store kv.Store
	if cfg.Ephemeral {
		store = kv.NewMemoryStore()
	} else {
		store, err = kv.NewSQLiteStore(cfg.Storage.DBPath)
		if err != nil {
			_ = logger.Sync()
			return nil, fmt.Errorf("open store: %w", err)
		}
	}

	app := &App{
		Config:  cfg,
		Logger:  logger,
		verbose: opts.Verbose,
		level:   level,
		store:   store,
		tempDir: tempDir,
	}

	checklistStore := checklistoutadapter.NewKVChecklistStore(store, logger.Named("checklist"))
	checklistUC := checklistusecase.NewInteractor(
		checklistservice.NewChecklistService(clock.SystemClock{}, id.UUID{}),
		checklistStore,
		checklistStore,
		store,
		logger.Named("checklist"),
	)

	output := opts.AudioOutput
	if output == nil {
		if cfg.Audio.Enabled {
			output = audiooutadapter.NewBeepOutput(logger.Named("audio"))
		} else {
			output = audiooutadapter.NewSilentOutput()
		}
	}
	audioUC := audiousecase.NewInteractor(audiodomain.Catalog(), output, logger.Named("audio"))
	app.AudioCLI = audioinadapter.NewCLIHandler(audioUC)

	app.notifier = timeroutadapter.NewBeeepNotifier(cfg.Notifications.Enabled, logger.Named("notify"), app.persistPermission)
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = timeroutadapter.NewTickerScheduler()
	}
	timerUC := timerusecase.NewInteractor(
		timerservice.NewTimerService(app.AudioCLI, app.notifier),
		timeroutadapter.NewKVSettingsStore(store, logger.Named("timer")),
		scheduler,
		logger.Named("timer"),
	)

	quoteUC := quoteusecase.NewInteractor(
		quoteservice.NewQuoteService(nil),
		quoteoutadapter.NewHTTPSource(cfg.Quote.URL, cfg.Quote.Timeout),
		logger.Named("quote"),
	)
	onboardingUC := onboardingusecase.NewInteractor(onboardingoutadapter.NewKVFlagStore(store, logger.Named("onboarding")), logger.Named("onboarding"))

	app.ChecklistCLI = checklistinadapter.NewCLIHandler(checklistUC)
	app.TimerCLI = timerinadapter.NewCLIHandler(timerUC)
	app.QuoteCLI = quoteinadapter.NewCLIHandler(quoteUC)
	app.OnboardingCLI = onboardinginadapter.NewCLIHandler(onboardingUC)
	return app, nil
}

func loadConfig(opts Options) (config.Config, string, error) {
	if opts.Ephemeral {
		dir, err := os.MkdirTemp("", "lofi-*")
		if err != nil {
			return config.Config{}, "", fmt.Errorf("create ephemeral dir: %w", err)
		}
		return config.Ephemeral(dir), dir, nil
	}
	dataDir := opts.DataDir
	if dataDir == "" {
		var err error
		dataDir, err = config.DefaultDataDir()
		if err != nil {
			return config.Config{}, "", err
		}
	}
	cfg, err := config.New(dataDir)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, "", nil
}

// Start brings up the long-running pieces an interactive session needs: the
// notification permission request, the midnight rollover and config hot
// reload. onRollover receives every rollover result, reset or not.
func (a *App) Start(ctx context.Context, onRollover func(checklistdto.RolloverOutput)) error {
	permission := a.notifier.RequestPermission(ctx)
	a.Logger.Debug("notification permission", zap.String("permission", string(permission)))

	daily, err := schedule.NewDaily(time.UTC, a.Logger.Named("schedule"))
	if err != nil {
		return err
	}
	if err := daily.AtMidnight(rolloverJob, func() {
		out, err := a.ChecklistCLI.Rollover(context.Background())
		if err != nil {
			a.Logger.Warn("checklist rollover failed", zap.Error(err))
		}
		if onRollover != nil {
			onRollover(out)
		}
	}); err != nil {
		return err
	}
	daily.Start()
	a.daily = daily

	if a.Config.Ephemeral {
		return nil
	}
	watcher, err := config.NewWatcher(a.Config.Path, a.Logger.Named("config"), a.applyConfig)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		return err
	}
	a.watcher = watcher
	return nil
}

func (a *App) applyConfig(cfg config.Config) {
	a.notifier.SetEnabled(cfg.Notifications.Enabled)
	if err := logging.SetLevel(a.level, cfg.Log.Level, a.verbose); err != nil {
		a.Logger.Warn("ignoring log level from config", zap.Error(err))
	}
}

func (a *App) persistPermission(p timerdomain.Permission) {
	if a.Config.Ephemeral {
		return
	}
	enabled := p == timerdomain.PermissionGranted
	cfg := a.Config
	cfg.Notifications.Enabled = &enabled
	if err := config.Save(cfg); err != nil {
		a.Logger.Warn("persist notification permission failed", zap.Error(err))
		return
	}
	a.Config = cfg
}

// RunTUI runs the interactive program until the user quits or ctx is done.
// Module events reach the program through Send, never through Update.
func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(uiapp.Ports{
		Timer:      app.TimerCLI,
		Audio:      app.AudioCLI,
		Quote:      app.QuoteCLI,
		Checklist:  app.ChecklistCLI,
		Onboarding: app.OnboardingCLI,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribeTimer := app.TimerCLI.Subscribe(func(u timerdto.Update) {
		program.Send(timerview.UpdateMsg{Update: u})
	})
	defer unsubscribeTimer()
	unsubscribeAudio := app.AudioCLI.Subscribe(func(st audiodto.PlayerState) {
		program.Send(playerview.StateMsg{State: st})
	})
	defer unsubscribeAudio()

	if err := app.Start(ctx, func(out checklistdto.RolloverOutput) {
		program.Send(tasksview.RolloverMsg{Output: out})
	}); err != nil {
		return err
	}
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (a *App) Close() error {
	var errs []error
	a.TimerCLI.Close()
	if a.watcher != nil {
		errs = append(errs, a.watcher.Stop())
	}
	if a.daily != nil {
		errs = append(errs, a.daily.Stop())
	}
	errs = append(errs, a.AudioCLI.Close(), a.store.Close())
	_ = a.Logger.Sync()
	if a.tempDir != "" {
		errs = append(errs, os.RemoveAll(a.tempDir))
	}
	return errors.Join(errs...)
}
