package router

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/config"
	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/container"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
	"github.com/oksasatya/courseitda/internal/infrastructure/memory"
	handlers "github.com/oksasatya/courseitda/internal/interface/http"
	"github.com/oksasatya/courseitda/internal/interface/middleware"
	"github.com/oksasatya/courseitda/internal/router/modules"
	"github.com/oksasatya/courseitda/pkg/helpers"
)

// Deps are the components the HTTP modules are built from. Optional ones may be nil.
type Deps struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Store    repository.Store
	Hub      *event.Hub
	Redis    *redis.Client
	KV       application.KeyValueStore
	Hasher   application.PasswordHasher
	Tokens   application.TokenCodec
	Searcher application.PlaceSearcher
	Index    application.PlaceIndex
	Uploader application.ObjectUploader
	Jobs     application.JobPublisher
	Checks   map[string]func(context.Context) error
}

// Services groups the application services shared by the handlers.
type Services struct {
	Auth       *application.AuthService
	Sessions   *application.SessionStore
	Settings   *application.SettingsService
	Workspaces *application.WorkspaceService
	Categories *application.CategoryService
	Places     *application.PlaceService
	Course     *application.CourseService
}

// DepsFromContainer collects the singletons registered at startup.
func DepsFromContainer() Deps {
	return Deps{
		Config:   container.GetConfig(),
		Logger:   container.GetLogger(),
		Store:    container.GetStore(),
		Hub:      container.GetHub(),
		Redis:    container.GetRedis(),
		KV:       container.GetKV(),
		Hasher:   container.GetHasher(),
		Tokens:   container.GetTokens(),
		Searcher: container.GetSearcher(),
		Index:    container.GetPlaceIndex(),
		Uploader: container.GetUploader(),
		Jobs:     container.GetJobs(),
		Checks:   container.GetChecks(),
	}
}

func (d *Deps) defaults() {
	if d.Config == nil {
		d.Config = config.Load()
	}
	if d.Logger == nil {
		d.Logger = helpers.NewNopLogger()
	}
	if d.Hub == nil {
		d.Hub = event.NewHub(0)
	}
	if d.Store == nil {
		d.Store = memory.New(d.Hub)
	}
	if d.KV == nil {
		d.KV = memory.NewKV()
	}
	if d.Hasher == nil {
		d.Hasher = helpers.MockHasher{}
	}
	if d.Tokens == nil {
		d.Tokens = helpers.MockTokenCodec{}
	}
}

// BuildServices wires the application services from d.
func BuildServices(d Deps) Services {
	d.defaults()
	sessions := application.NewSessionStore(d.KV)
	settings := application.NewSettingsService(d.KV)
	return Services{
		Auth:       application.NewAuthService(d.Store.Users(), d.Hasher, d.Tokens, sessions, d.Jobs, d.Logger),
		Sessions:   sessions,
		Settings:   settings,
		Workspaces: application.NewWorkspaceService(d.Store, d.Index, d.Logger),
		Categories: application.NewCategoryService(d.Store, d.Index, d.Logger),
		Places:     application.NewPlaceService(d.Store, d.Searcher, d.Index, settings, d.Logger),
		Course:     application.NewCourseService(d.Store, d.Uploader, d.Logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	InitModulesWith(r, DepsFromContainer())
}

// InitModulesWith registers every module built from d and returns the services behind them.
func InitModulesWith(r *Registry, d Deps) Services {
	d.defaults()
	svc := BuildServices(d)
	cfg := d.Config

	var tokenTTL time.Duration
	if cfg.TokenMode == config.TokenJWT {
		tokenTTL = cfg.TokenTTL
	}
	svc.Places.FallbackKey = cfg.KakaoRestKey
	auth := middleware.Auth(svc.Auth, svc.Sessions)
	access := handlers.NewAccess(svc.Workspaces, svc.Categories)
	cats := handlers.NewCategoryHandler(svc.Categories, svc.Places, access, d.Logger)

	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(svc.Auth, helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure), tokenTTL, d.Logger),
		auth, d.Redis,
	))
	r.Add(modules.NewWorkspaceModule(
		handlers.NewWorkspaceHandler(svc.Workspaces, svc.Course, access, d.Logger),
		cats, auth, d.Redis,
	))
	r.Add(modules.NewCategoryModule(cats, auth, d.Redis))
	r.Add(modules.NewPlaceModule(handlers.NewPlaceHandler(svc.Places, d.Logger), auth, d.Redis))
	r.Add(modules.NewSettingsModule(handlers.NewSettingsHandler(svc.Settings, d.Logger), auth))
	r.Add(modules.NewChangesModule(handlers.NewChangesHandler(d.Hub, d.Store, cfg.SSEHeartbeat, d.Logger), auth))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(d.Redis))
	}

	checks := make(map[string]handlers.Check, len(d.Checks))
	for name, fn := range d.Checks {
		checks[name] = fn
	}
	r.AddRoot(modules.NewHealthModule(handlers.NewHealthHandler(checks)))
	return svc
}
