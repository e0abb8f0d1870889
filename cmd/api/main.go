package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssd-1524/crop-disease-detection/internal/application"
	appadvice "github.com/ssd-1524/crop-disease-detection/internal/application/advice"
	appanalyses "github.com/ssd-1524/crop-disease-detection/internal/application/analyses"
	appauth "github.com/ssd-1524/crop-disease-detection/internal/application/auth"
	appsubs "github.com/ssd-1524/crop-disease-detection/internal/application/submissions"
	"github.com/ssd-1524/crop-disease-detection/internal/config"
	aiclient "github.com/ssd-1524/crop-disease-detection/internal/infra/ai/openai"
	mysqlp "github.com/ssd-1524/crop-disease-detection/internal/infra/db/mysql"
	"github.com/ssd-1524/crop-disease-detection/internal/infra/httpserver"
	"github.com/ssd-1524/crop-disease-detection/internal/infra/inference/httpapi"
	minioStore "github.com/ssd-1524/crop-disease-detection/internal/infra/storage"
	"github.com/ssd-1524/crop-disease-detection/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()

	// connect MySQL
	db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql connect error: %v", err)
	}
	defer db.Close()

	// init repos
	analysisRepo := mysqlp.NewAnalysisRepository(db)
	userRepo := mysqlp.NewUserRepository(db)
	sessionRepo := mysqlp.NewSessionRepository(db)

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init inference client
	predictor := httpapi.New(cfg.Inference.BaseURL)

	// init services
	authSvc := &appauth.Service{
		Users:    userRepo,
		Sessions: sessionRepo,
		Clock:    application.SystemClock{},
	}
	submitSvc := &appsubs.Service{
		Repo:      analysisRepo,
		Images:    store,
		Inference: predictor,
	}
	analysesSvc := &appanalyses.Service{
		Repo:   analysisRepo,
		Images: store,
	}
	var adviceSvc *appadvice.Service
	if cfg.OpenAI.APIKey != "" {
		adviceSvc = appadvice.NewService(aiclient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model), analysisRepo)
	}

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(authSvc, submitSvc, analysesSvc, adviceSvc))
	mux.Get("/healthz", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
		"storage":  middleware.CheckerFunc(store.Ping),
	}))
	mux.Get("/readyz", middleware.ReadinessHandler)
	mux.Get("/livez", middleware.LivenessHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
