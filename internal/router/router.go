package router

import (
	"context"
	"database/sql"
	"net/http"

	"shelter-dashboard/internal/adapters/seed"
	mem "shelter-dashboard/internal/adapters/storage/memory"
	pg "shelter-dashboard/internal/adapters/storage/postgres"
	lite "shelter-dashboard/internal/adapters/storage/sqlite"
	"shelter-dashboard/internal/dashboard"
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/middleware"
	"shelter-dashboard/internal/platform/config"
	"shelter-dashboard/internal/platform/httpclient"
	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/platform/metrics"
	"shelter-dashboard/internal/ports/auth"

	_ "shelter-dashboard/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Logger logger.Logger

	Verifier auth.Verifier // puede ser nil (modo dev)

	// Opcional: si viene, se usa tal cual. Si no, OpenStore decide por config.
	Store animals.Store

	// Opcional: registry propio (tests); si es nil se crea uno.
	Metrics *metrics.Metrics
}

func NewRouter(opts Options) (http.Handler, error) {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	store := opts.Store
	if store == nil {
		store = mem.NewAnimalsRepo()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.HeaderDebugUserID, middleware.HeaderDebugRole},
		MaxAge:         300,
	}))
	r.Use(m.Middleware)
	r.Use(middleware.AccessLog(log))

	r.Use(middleware.SessionContext(auth.Session{
		UserID:   cfg.Dashboard.User,
		Username: cfg.Dashboard.User,
		Role:     cfg.Dashboard.Role,
	}, opts.Verifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API
	animalsSvc := animals.NewService(store, log, m)
	animals.RegisterRoutes(r, animalsSvc)

	// Dashboard: lee a través del API, nunca directo del store.
	client, err := httpclient.New(cfg.APIBaseURL, cfg.FetchTimeout)
	if err != nil {
		return nil, err
	}
	fetcher := dashboard.NewAPIFetcher(client, m, log)

	sessions, err := dashboard.NewSessions(fetcher, dashboard.DefaultPageSize, cfg.Dashboard.MaxSessions, log)
	if err != nil {
		return nil, err
	}
	page, err := dashboard.NewPage(dashboard.PageOptions{
		Title:    cfg.Dashboard.Title,
		Author:   cfg.Dashboard.Author,
		LogoPath: cfg.Dashboard.LogoPath,
	})
	if err != nil {
		return nil, err
	}
	dashboard.RegisterRoutes(r, sessions, page, log)

	return r, nil
}

// OpenStore elige el store: DB_DSN (postgres) > SQLITE_PATH > memoria,
// y carga SEED_CSV si el store está vacío. close puede ser nil.
func OpenStore(ctx context.Context, cfg config.Config, log logger.Logger) (animals.Store, func() error, error) {
	if log == nil {
		log = logger.Nop()
	}

	var (
		store animals.Store
		db    *sql.DB
		err   error
	)
	switch {
	case cfg.DBDSN != "":
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		store = pg.NewAnimalsRepo(db)
		log.Info("store selected", map[string]any{"store": "postgres"})
	case cfg.SQLitePath != "":
		db, err = lite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store = lite.NewAnimalsRepo(db)
		log.Info("store selected", map[string]any{"store": "sqlite", "path": cfg.SQLitePath})
	default:
		store = mem.NewAnimalsRepo()
		log.Info("store selected", map[string]any{"store": "memory"})
	}

	var closeFn func() error
	if db != nil {
		closeFn = db.Close
	}

	if _, err := seed.LoadIfEmpty(ctx, store, cfg.SeedCSV, log); err != nil {
		if closeFn != nil {
			_ = closeFn()
		}
		return nil, nil, err
	}
	return store, closeFn, nil
}
