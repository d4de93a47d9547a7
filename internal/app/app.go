package app

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"go.uber.org/zap"

	"github.com/five82/forkify/internal/config"
	"github.com/five82/forkify/internal/controller"
	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/forkify"
	"github.com/five82/forkify/internal/logging"
	"github.com/five82/forkify/internal/prefs"
	"github.com/five82/forkify/internal/state"
	"github.com/five82/forkify/internal/storage"
	"github.com/five82/forkify/internal/ui"
)

// Options configure the forkify application.
type Options struct {
	ConfigPath string // empty uses ~/.config/forkify/config.toml
	PrefsPath  string // empty uses ~/.config/forkify/prefs.toml
	Recipe     string // recipe id opened on start
	Verbose    bool
}

// App holds the wired components shared by the TUI and the CLI commands.
type App struct {
	Config     config.Config
	Logger     *zap.Logger
	Storage    *storage.Store
	Bookmarks  *storage.Bookmarks
	Source     forkify.RecipeSource
	State      *state.State
	Controller *controller.Controller
	Dispatcher *event.Dispatcher

	cache      *forkify.Cache
	unregister func()
}

// New loads the configuration and wires storage, the API client, the state
// and the controller. Bookmarks are loaded from storage before it returns.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogFile, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store, err := storage.Open(cfg.StoragePath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	client, err := forkify.NewClient(forkify.Options{
		BaseURL: cfg.APIURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init forkify client: %w", err)
	}

	source, err := forkify.NewCache(client, cfg.CacheSize)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init recipe cache: %w", err)
	}

	bookmarks := storage.NewBookmarks(store, logger)
	st := state.New(bookmarks, cfg.ResultsPerPage)
	ctrl := controller.New(st, source, logger)
	dispatcher := event.NewDispatcher(logger)

	a := &App{
		Config:     cfg,
		Logger:     logger,
		Storage:    store,
		Bookmarks:  bookmarks,
		Source:     source,
		State:      st,
		Controller: ctrl,
		Dispatcher: dispatcher,
		cache:      source,
		unregister: ctrl.Register(dispatcher),
	}

	if err := dispatcher.Dispatch(ctx, event.BookmarksRequested{}); err != nil {
		logger.Warn("load bookmarks failed", zap.Error(err))
	}

	logger.Info("forkify started",
		zap.String("api_url", cfg.APIURL),
		zap.Bool("can_upload", cfg.CanUpload()),
		zap.String("storage", store.Path()),
		zap.Int("bookmarks", len(st.Bookmarks())))

	return a, nil
}

// Close unregisters the handlers and closes storage.
func (a *App) Close() error {
	if a.unregister != nil {
		a.unregister()
	}
	a.Logger.Debug("forkify stopped", zap.Int("cached_recipes", a.cache.Len()))
	err := a.Storage.Close()
	if syncErr := a.Logger.Sync(); syncErr != nil && !isSyncNoise(syncErr) {
		err = errors.Join(err, syncErr)
	}
	return err
}

// Run boots the forkify TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	a, err := New(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		a.Logger.Warn("load prefs failed, using defaults", zap.Error(err))
	}

	return ui.Run(ui.Options{
		Context:    ctx,
		Dispatcher: a.Dispatcher,
		State:      a.State,
		Logger:     a.Logger,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		Location:   opts.Recipe,
		ModalClose: a.Config.ModalClose,
		CanUpload:  a.Config.CanUpload(),

		ShowBookmarks: userPrefs.BookmarksOpen,
	})
}

// zap returns EINVAL when syncing a non-file sink such as stderr.
func isSyncNoise(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY)
}
