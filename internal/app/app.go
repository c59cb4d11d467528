// Package app arma el grafo de dependencias según la configuración: sesión,
// cliente HTTP, repositorios (remotos o locales) y view-models.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"pethome/internal/adapters/localauth"
	"pethome/internal/adapters/remote"
	mem "pethome/internal/adapters/storage/memory"
	pg "pethome/internal/adapters/storage/postgres"
	"pethome/internal/config"
	"pethome/internal/domain/auth"
	"pethome/internal/domain/pets"
	"pethome/internal/domain/services"
	"pethome/internal/migrate"
	"pethome/internal/platform/httpclient"
	"pethome/internal/schedule"
	"pethome/internal/session"
	"pethome/internal/viewmodel"
)

// App es el contenedor de la aplicación. El cableado es explícito: cada
// dependencia se construye una vez y se pasa por constructor.
type App struct {
	Config   config.Config
	Log      *zap.Logger
	Sessions *session.Store

	AuthRepo auth.Repository
	PetRepo  pets.Repository
	Services *services.Service
}

// New construye el grafo completo. En modo remoto los repositorios de auth y
// mascotas van contra el API; en modo local viven en storage local. Catálogo
// y citas son storage local en ambos modos. El storage local es postgres si
// hay DSN, memoria si no. Los modos de repositorio nunca se combinan.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}

	// En modo local no hay token: la sesión cuenta como activa con solo el
	// user id, sin importar el flag.
	requireToken := cfg.SessionRequireToken && cfg.Mode == config.ModeRemote

	sessions, err := session.NewStore(session.NewFilePersister(sessionPath), requireToken)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Sessions: sessions,
	}

	// Catálogo y citas viven en storage local en ambos modos (el backend
	// remoto solo cubre auth y mascotas): con DSN las citas agendadas
	// sobreviven al proceso, sin DSN se quedan en memoria.
	var (
		db       *sql.DB
		svcStore services.Store
	)
	if cfg.DatabaseDSN != "" {
		if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		db, err = pg.Open(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		svcStore = pg.NewServicesStore(db)
	} else {
		svcStore = mem.NewServicesStore()
	}
	a.Services = services.NewService(svcStore)

	switch cfg.Mode {
	case config.ModeRemote:
		api, err := httpclient.NewWithBaseURL(cfg.APIBaseURL, cfg.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("building api client: %w", err)
		}
		api.Tokens = sessions.AuthToken
		api.Log = log

		a.AuthRepo = remote.NewAuthRepository(api, sessions, log)
		a.PetRepo = remote.NewPetRepository(api, log)

	case config.ModeLocal:
		var petStore pets.Store
		if db != nil {
			petStore = pg.NewPetStore(db)
		} else {
			petStore = mem.NewPetStore()
		}

		a.AuthRepo = localauth.NewAuthRepository(sessions, log)
		a.PetRepo = pets.NewLocalRepository(petStore)

	default:
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	if err := a.Services.SeedSampleCatalog(ctx); err != nil {
		return nil, fmt.Errorf("seeding catalog: %w", err)
	}

	return a, nil
}

// --- View-models ---

func (a *App) LoginViewModel() *viewmodel.LoginViewModel {
	return viewmodel.NewLoginViewModel(a.AuthRepo)
}

func (a *App) RegisterViewModel() *viewmodel.RegisterViewModel {
	return viewmodel.NewRegisterViewModel(a.AuthRepo)
}

func (a *App) PetViewModel() *viewmodel.PetViewModel {
	return viewmodel.NewPetViewModel(a.PetRepo, a.Sessions.Current().UserID)
}

func (a *App) ServiceViewModel() *viewmodel.ServiceViewModel {
	return viewmodel.NewServiceViewModel(a.Services, a.Sessions.Current().UserID)
}

func (a *App) ScheduleViewModel() *viewmodel.ScheduleViewModel {
	agg := schedule.NewAggregator(a.PetRepo, a.Services, a.Sessions.Current().UserID, a.Log)
	return viewmodel.NewScheduleViewModel(agg)
}
