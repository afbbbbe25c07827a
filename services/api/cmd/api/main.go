package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/app"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/backend"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/clock"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/config"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/storage/postgres"
	transporthttp "github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/transport/http"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()
	cfg := config.Load(logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	client := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout,
		backend.WithRateLimit(cfg.BackendRateLimit),
		backend.WithLogger(logger),
	)
	clk := clock.NewSystem()
	quoteSvc := app.NewQuoteService(client, clk)
	orderSvc := app.NewOrderService(postgres.NewConversionRepository(pool), client, clk)
	catalogSvc := app.NewCatalogService(client)
	authSvc := app.NewAuthService(client)
	userSvc := app.NewUserService(client)

	metrics := transporthttp.NewMetrics()
	route := func(pattern string, h http.Handler, roles ...domain.Role) http.Handler {
		return metrics.Instrument(pattern, transporthttp.RequireRoles(h, roles...))
	}

	mux := http.NewServeMux()
	mux.Handle("/health", transporthttp.HealthHandler(pool, logger))
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/auth/login", metrics.Instrument("/auth/login", transporthttp.HandleLogin(authSvc)))
	mux.Handle("/auth/register", metrics.Instrument("/auth/register", transporthttp.HandleRegister(authSvc)))
	mux.Handle("/auth/profile", route("/auth/profile", transporthttp.HandleProfile(authSvc)))
	mux.Handle("/menu", route("/menu", transporthttp.HandleMenu()))
	mux.Handle("/quotes", transporthttp.Methods(map[string]http.Handler{
		http.MethodGet:  route("/quotes", transporthttp.HandleListQuotes(quoteSvc)),
		http.MethodPost: route("/quotes", transporthttp.HandleCreateQuote(quoteSvc), domain.RoleClient, domain.RoleAdmin),
	}))
	mux.Handle("/quotes/suppliers", route("/quotes/suppliers", transporthttp.HandleListSuppliers(quoteSvc), domain.RoleClient, domain.RoleAdmin))
	mux.Handle("/quotes/", transporthttp.QuoteActions(map[string]http.Handler{
		"ranking":    route("/quotes/{id}/ranking", transporthttp.HandleQuoteRanking(quoteSvc), domain.RoleClient, domain.RoleAdmin),
		"responses":  route("/quotes/{id}/responses", transporthttp.HandleRespondQuote(quoteSvc), domain.RoleSupplier),
		"status":     route("/quotes/{id}/status", transporthttp.HandleUpdateQuoteStatus(quoteSvc), domain.RoleClient, domain.RoleAdmin),
		"orders":     route("/quotes/{id}/orders", transporthttp.HandleConvertQuote(orderSvc, metrics), domain.RoleClient, domain.RoleAdmin),
		"conversion": route("/quotes/{id}/conversion", transporthttp.HandleGetConversion(orderSvc), domain.RoleClient, domain.RoleAdmin),
	}))
	mux.Handle("/orders", transporthttp.Methods(map[string]http.Handler{
		http.MethodGet:  route("/orders", transporthttp.HandleListOrders(orderSvc), domain.RoleClient, domain.RoleAdmin),
		http.MethodPost: route("/orders", transporthttp.HandlePlaceOrder(orderSvc), domain.RoleClient, domain.RoleAdmin),
	}))
	mux.Handle("/orders/preview", route("/orders/preview", transporthttp.HandlePreviewOrder(orderSvc)))
	mux.Handle("/admin/products", route("/admin/products", transporthttp.HandleAdminProducts(catalogSvc), domain.RoleAdmin))
	mux.Handle("/admin/products/", route("/admin/products/{action}", transporthttp.HandleAdminProductActions(catalogSvc), domain.RoleAdmin))
	mux.Handle("/admin/users", route("/admin/users", transporthttp.HandleAdminUsers(userSvc), domain.RoleAdmin))
	mux.Handle("/admin/users/", route("/admin/users/{id}", transporthttp.HandleAdminUserActions(userSvc), domain.RoleAdmin))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.CORS(cfg.CORSOrigins,
		transporthttp.Authenticate([]byte(cfg.JWTSecret), logger,
			transporthttp.RequestLogger(mux, logger)))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s backend=%s", cfg.Port, cfg.BackendBaseURL)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
