package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/budget"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/reference"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/summary"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/user"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Storage *storage.Storage
	Service *service.Service
	Tokens  *auth.Tokens
}

// Handler builds the router with every v1 operation registered.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	config := huma.DefaultConfig("Expense Tracker API", "1.0.0")
	if config.Components.SecuritySchemes == nil {
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	config.Components.SecuritySchemes[auth.SchemeName] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
	}

	api := humago.New(mux, config)
	api.UseMiddleware(logging.Middleware(r.Logger))
	api.UseMiddleware(auth.Middleware(api, r.Tokens))

	user.NewHandler(r.Service.Auth).Register(api)
	transaction.NewCreateTransactionHandler(r.Service.Ledger).Register(api)
	transaction.NewUpdateTransactionHandler(r.Service.Ledger).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Ledger).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Ledger).Register(api)
	transaction.NewRecentTransactionsHandler(r.Service.Ledger).Register(api)
	summary.NewHandler(r.Service.Ledger).Register(api)
	budget.NewHandler(r.Service.Ledger).Register(api)
	reference.NewHandler(r.Service.Ledger).Register(api)

	return mux
}

// Serve listens until ctx is cancelled and then shuts the server down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
