package router

import (
	"go-budget-api/handler"
	"net/http"

	_ "go-budget-api/docs"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(
	healthHandler *handler.HealthHandler,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
	dataHandler *handler.DataHandler,
) http.Handler {
	r := mux.NewRouter()
	r.Use(handler.RequestLoggingMiddleware)

	r.HandleFunc("/", healthHandler.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/health", healthHandler.HealthCheck).Methods(http.MethodGet)

	r.Handle("/accounts", handler.ErrorHandlingMiddleware(accountHandler.ListAccounts)).Methods(http.MethodGet)

	r.Handle("/transactions", handler.ErrorHandlingMiddleware(transactionHandler.ListTransactions)).Methods(http.MethodGet)
	r.Handle("/transactions", handler.ErrorHandlingMiddleware(transactionHandler.CreateTransaction)).Methods(http.MethodPost)
	r.Handle("/deposit", handler.ErrorHandlingMiddleware(transactionHandler.Deposit)).Methods(http.MethodPost)
	r.Handle("/withdrawal", handler.ErrorHandlingMiddleware(transactionHandler.Withdraw)).Methods(http.MethodPost)

	r.Handle("/download-data", handler.ErrorHandlingMiddleware(dataHandler.Download)).Methods(http.MethodGet)
	r.Handle("/upload-data", handler.ErrorHandlingMiddleware(dataHandler.Upload)).Methods(http.MethodPost)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// The budget UI is served from another origin.
	return cors.AllowAll().Handler(r)
}
