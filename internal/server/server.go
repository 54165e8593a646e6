package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/empgraph/apiserver/config"
	"github.com/empgraph/apiserver/internal/db"
	"github.com/empgraph/apiserver/internal/events"
	"github.com/empgraph/apiserver/internal/graph"
	"github.com/empgraph/apiserver/internal/photostore"
	"github.com/empgraph/apiserver/internal/services"
	"github.com/empgraph/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/graphql-go/handler"
	"go.mongodb.org/mongo-driver/mongo"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	database   *mongo.Database
	feed       *events.Feed
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	photos, err := newPhotoStore(ctx, cfg.Photo)
	if err != nil {
		_ = db.Close(context.Background(), database)
		return nil, err
	}
	if err := photos.EnsureBucket(ctx); err != nil {
		_ = db.Close(context.Background(), database)
		return nil, err
	}

	feed, err := events.New(ctx, cfg.Events)
	if err != nil {
		_ = db.Close(context.Background(), database)
		return nil, err
	}

	userRepo := store.NewUserRepository(database.Collection(db.UsersCollection))
	employeeRepo := store.NewEmployeeRepository(database.Collection(db.EmployeesCollection))

	accountService := services.NewAccountService(userRepo)
	var employeeEvents services.EmployeeEvents
	if feed != nil {
		employeeEvents = feed
	}
	employeeService := services.NewEmployeeService(employeeRepo, photos, employeeEvents)

	schema, err := graph.NewSchema(&graph.Resolver{
		Accounts:  accountService,
		Employees: employeeService,
	})
	if err != nil {
		_ = db.Close(context.Background(), database)
		return nil, err
	}

	graphqlHandler := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", healthz)
	router.Handle("/graphql", graphqlHandler)

	port := cfg.ServerPort
	if port == 0 {
		port = 4000
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		database:   database,
		feed:       feed,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.feed != nil {
		_ = s.feed.Close()
	}
	if s.database != nil {
		_ = db.Close(context.Background(), s.database)
	}
	return s.httpServer.Close()
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func newPhotoStore(ctx context.Context, cfg config.PhotoConfig) (*photostore.Store, error) {
	switch cfg.Backend {
	case config.PhotoBackendMinio:
		backend, err := photostore.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		return photostore.NewStore(backend, cfg.Folder), nil
	case config.PhotoBackendGCS:
		backend, err := photostore.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return photostore.NewStore(backend, cfg.Folder), nil
	default:
		return nil, fmt.Errorf("unknown photo backend %q", cfg.Backend)
	}
}
