package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"
	"github.com/smartgallery/smartgallery/internal/analysis"
	"github.com/smartgallery/smartgallery/internal/config"
	"github.com/smartgallery/smartgallery/internal/gallery"
	"github.com/smartgallery/smartgallery/pkg/db/store"
	"github.com/smartgallery/smartgallery/pkg/log"
)

// App wires the metadata store, the analysis gateway and the gallery service
// together for one command invocation.
type App struct {
	mutex sync.Mutex

	cfg *config.Config
	sc  *container.ServiceContainer
	log log.Logger

	store   *store.SQLiteStore
	engine  *analysis.Engine
	gallery *gallery.Service
}

func New(cfg *config.Config) *App {
	return &App{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLogger("smartgallery", cfg.Log),
	}
}

// Open creates missing directories, connects the database and prepares the
// gallery service.
func (a *App) Open(ctx context.Context) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if err := a.cfg.EnsureDirs(); err != nil {
		return err
	}

	galleryStore, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: a.cfg.Database.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to create gallery store: %w", err)
	}
	if err := galleryStore.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect gallery store: %w", err)
	}
	if err := galleryStore.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate gallery store: %w", err)
	}

	a.store = galleryStore
	a.engine = analysis.NewEngine(a.cfg.AI, a.log.Named("analysis"))
	a.gallery = gallery.NewService(galleryStore, a.engine, a.log.Named("gallery"))

	return a.setupServices()
}

func (a *App) setupServices() error {
	errs := container.Errors{}

	a.log.Debug("Registering 'Logger'...")
	errs.Add(container.Register[log.LoggerImpl](a.sc,
		container.With[log.Logger](),
		container.WithInstance(a.log)))

	a.log.Debug("Registering 'GalleryStore'...")
	errs.Add(container.Register[store.SQLiteStore](a.sc,
		container.With[store.GalleryStore](),
		container.WithInstance(a.store)))

	a.log.Debug("Registering 'Analyzer'...")
	errs.Add(container.Register[analysis.Engine](a.sc,
		container.With[analysis.Analyzer](),
		container.WithInstance(a.engine)))

	a.log.Debug("Registering 'GalleryService'...")
	errs.Add(container.Register[gallery.Service](a.sc,
		container.WithInstance(a.gallery)))

	return errs.Errors()
}

// Close cleans up registered services and closes the database within the
// configured shutdown timeout.
func (a *App) Close() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	timeout, err := time.ParseDuration(a.cfg.ShutdownTimeout)
	if err != nil {
		timeout = 10 * time.Second
	}

	shutdown, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			return fmt.Errorf("failed to close gallery store: %w", err)
		}
	}

	return nil
}

func (a *App) Gallery() *gallery.Service {
	return a.gallery
}

func (a *App) Store() store.GalleryStore {
	return a.store
}

func (a *App) Logger() log.Logger {
	return a.log
}
