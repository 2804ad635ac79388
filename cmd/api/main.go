package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/gemachapp/ledger-service/internal/config"
	"github.com/gemachapp/ledger-service/internal/handler"
	"github.com/gemachapp/ledger-service/internal/ledger"
	"github.com/gemachapp/ledger-service/internal/middleware"
	"github.com/gemachapp/ledger-service/internal/repository"
	"github.com/gemachapp/ledger-service/internal/service"
	"github.com/gemachapp/ledger-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	engine := ledger.NewEngine(repo, logger)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, engine, sender, cfg, logger)
	h := handler.NewHandler(svc, logger)

	// Nightly balance resync repairs any drift between the account rows and
	// the transaction ledger
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ResyncSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := engine.ResyncAllAccounts(ctx); err != nil {
			logger.Errorf("Scheduled resync failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule resync job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/login/admin", h.LoginAdmin).Methods("POST")
	r.HandleFunc("/login/agent", h.LoginAgent).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))

	authRouter.HandleFunc("/transactions", h.ProcessTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions/client/{clientId}", h.ClientLedger).Methods("GET")
	authRouter.HandleFunc("/transactions/{id}", h.EditTransaction).Methods("PUT")
	authRouter.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")

	authRouter.HandleFunc("/accounts/balance/{clientId}", h.GetBalance).Methods("GET")
	authRouter.HandleFunc("/accounts/validate-funds/{clientId}", h.ValidateFunds).Methods("GET")
	authRouter.HandleFunc("/accounts/resync", h.ResyncAllAccounts).Methods("POST")
	authRouter.HandleFunc("/accounts/resync/{clientId}", h.ResyncAccountBalance).Methods("POST")
	authRouter.HandleFunc("/accounts/recalculate/{clientId}", h.RecalculateRunningTotals).Methods("POST")

	authRouter.HandleFunc("/clients", h.CreateClient).Methods("POST")
	authRouter.HandleFunc("/clients", h.ListClients).Methods("GET")
	authRouter.HandleFunc("/clients/{id}", h.GetClient).Methods("GET")
	authRouter.HandleFunc("/clients/{id}", h.UpdateClient).Methods("PUT")
	authRouter.HandleFunc("/clients/{id}", h.DeleteClient).Methods("DELETE")
	authRouter.HandleFunc("/clients/{id}/statement", h.ClientStatement).Methods("GET")

	authRouter.HandleFunc("/agents", h.CreateAgent).Methods("POST")
	authRouter.HandleFunc("/agents", h.ListAgents).Methods("GET")
	authRouter.HandleFunc("/agents/{id}", h.GetAgent).Methods("GET")
	authRouter.HandleFunc("/agents/{id}", h.UpdateAgent).Methods("PUT")
	authRouter.HandleFunc("/agents/{id}", h.DeleteAgent).Methods("DELETE")
	authRouter.HandleFunc("/admins", h.CreateAdmin).Methods("POST")

	authRouter.HandleFunc("/checks", h.IssueCheck).Methods("POST")
	authRouter.HandleFunc("/checks", h.ListChecks).Methods("GET")
	authRouter.HandleFunc("/checks/client/{clientId}", h.ChecksByClient).Methods("GET")
	authRouter.HandleFunc("/checks/date/{date}", h.ChecksByDate).Methods("GET")

	authRouter.HandleFunc("/updates", h.ListUpdates).Methods("GET")
	authRouter.HandleFunc("/updates/client/{clientId}", h.UpdatesForClient).Methods("GET")
	authRouter.HandleFunc("/updates/agent/{agentId}", h.UpdatesForAgent).Methods("GET")
	authRouter.HandleFunc("/updates/by-agent/{agent}", h.UpdatesByAgent).Methods("GET")

	authRouter.HandleFunc("/email", h.SendEmail).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
