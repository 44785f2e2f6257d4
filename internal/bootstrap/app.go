package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docstack-backend/internal/clients"
	"docstack-backend/internal/collections"
	"docstack-backend/internal/files"
	"docstack-backend/internal/firms"
	"docstack-backend/internal/requests"
	"docstack-backend/internal/shared/config"
	"docstack-backend/internal/shared/server"
	"docstack-backend/internal/shared/storage/db"
	"docstack-backend/internal/shared/storage/entity"
	"docstack-backend/internal/shared/storage/object"
	"docstack-backend/internal/shared/storage/object/local"
	"docstack-backend/internal/shared/storage/object/s3"
	"docstack-backend/internal/shared/telemetry"
	"docstack-backend/internal/users"
)

// App bundles the wired application. Close releases the database handle.
type App struct {
	Router *gin.Engine
	DB     *sql.DB

	Firms       *firms.Service
	Users       *users.Service
	Clients     *clients.Service
	Collections *collections.Service
	Requests    *requests.Service
	Files       *files.Service
}

// Build wires stores, services and handlers from configuration. With an
// empty DATABASE_URL in dev or local env the whole graph runs on
// in-memory stores, which is also how the handler tests run.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{}

	var database *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := db.RunMigrations(ctx, database); err != nil {
			database.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	} else {
		telemetry.Warn("bootstrap.memory_store", map[string]any{
			"env": cfg.Env,
		})
	}
	app.DB = database

	objects, err := buildObjectStore(ctx, cfg)
	if err != nil {
		if database != nil {
			database.Close()
		}
		return nil, err
	}

	firmStore := buildStore(database, firms.Mapping())
	userStore := buildStore(database, users.Mapping())
	clientStore := buildStore(database, clients.Mapping())
	collectionStore := buildStore(database, collections.Mapping())
	requestStore := buildStore(database, requests.Mapping())
	fileStore := buildStore(database, files.Mapping())

	app.Firms = &firms.Service{
		Store: firmStore,
		Directory: &directory{
			users:   userStore,
			clients: clientStore,
		},
	}
	app.Users = &users.Service{
		Store:  userStore,
		Firms:  firmStore,
		Secret: []byte(cfg.JWTSecret),
	}
	app.Clients = &clients.Service{
		Store: clientStore,
		Firms: firmStore,
	}
	app.Collections = &collections.Service{
		Store:   collectionStore,
		Clients: app.Clients,
		Users:   app.Users,
	}
	app.Requests = &requests.Service{
		Store:       requestStore,
		Collections: app.Collections,
	}
	app.Files = &files.Service{
		Store:    fileStore,
		Requests: app.Requests,
		Objects:  objects,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		JWTSecret:      []byte(cfg.JWTSecret),
		AllowedOrigins: cfg.CORSAllowOrigin,
		Firms:          firms.NewHandler(app.Firms),
		Users:          users.NewHandler(app.Users),
		Clients:        clients.NewHandler(app.Clients),
		Collections:    collections.NewHandler(app.Collections),
		Requests:       requests.NewHandler(app.Requests),
		Files:          files.NewHandler(app.Files),
	})

	return app, nil
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildStore[T any](database *sql.DB, m entity.Mapping[T]) entity.Store[T] {
	if database != nil {
		return entity.NewPGStore(database, m)
	}
	return entity.NewMemoryStore(m)
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("init s3 store: %w", err)
		}
		return store, nil
	default:
		return local.New(cfg.LocalStoreDir), nil
	}
}

// directory adapts the user and client stores to the firm detail view.
type directory struct {
	users   entity.Store[users.User]
	clients entity.Store[clients.Client]
}

func (d *directory) UsersByFirm(ctx context.Context, firmID uuid.UUID) ([]firms.Member, error) {
	all, err := d.users.ListBy(ctx, "firm_id", firmID)
	if err != nil {
		return nil, err
	}
	out := make([]firms.Member, 0, len(all))
	for _, u := range all {
		out = append(out, firms.Member{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	return out, nil
}

func (d *directory) ClientsByFirm(ctx context.Context, firmID uuid.UUID) ([]firms.Account, error) {
	all, err := d.clients.ListBy(ctx, "firm_id", firmID)
	if err != nil {
		return nil, err
	}
	out := make([]firms.Account, 0, len(all))
	for _, cl := range all {
		out = append(out, firms.Account{
			ID:          cl.ID,
			CompanyName: cl.CompanyName,
			Email:       cl.Email,
			CreatedAt:   cl.CreatedAt,
			UpdatedAt:   cl.UpdatedAt,
		})
	}
	return out, nil
}
