package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/amaliyev/go-marketplace/internal/config"
	"github.com/amaliyev/go-marketplace/internal/database"
	"github.com/amaliyev/go-marketplace/internal/metrics"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("connected to database")

	m := metrics.New()

	mux := http.NewServeMux()

	mux.HandleFunc("/users", instrument("users", logger, m, handleUsers(db)))
	mux.HandleFunc("/users/", instrument("user", logger, m, handleUserByID(db)))
	mux.HandleFunc("/profile", instrument("profile", logger, m, handleProfile(db)))
	mux.HandleFunc("/sellers", instrument("sellers", logger, m, handleSellers(db)))
	mux.HandleFunc("/sellers/", instrument("seller", logger, m, handleSellerBySlug(db)))
	mux.HandleFunc("/categories", instrument("categories", logger, m, handleCategories(db)))
	mux.HandleFunc("/categories/", instrument("category", logger, m, handleCategoryBySlug(db)))
	mux.HandleFunc("/products", instrument("products", logger, m, handleProducts(db)))
	mux.HandleFunc("/products/", instrument("product", logger, m, handleProductBySlug(db)))
	mux.HandleFunc("/reviews/", instrument("review", logger, m, handleReviewByID(db)))
	mux.HandleFunc("/addresses", instrument("addresses", logger, m, handleAddresses(db)))
	mux.HandleFunc("/addresses/", instrument("address", logger, m, handleAddressByID(db)))
	mux.HandleFunc("/cart", instrument("cart", logger, m, handleCart(db, m)))
	mux.HandleFunc("/checkout", instrument("checkout", logger, m, handleCheckout(db, m)))
	mux.HandleFunc("/orders", instrument("orders", logger, m, handleOrders(db)))
	mux.HandleFunc("/orders/", instrument("order", logger, m, handleOrderByID(db)))

	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			respondError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func instrument(name string, logger *zap.Logger, m *metrics.Metrics, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		elapsed := time.Since(start)
		m.Requests.WithLabelValues(name, strconv.Itoa(rec.status)).Inc()
		m.LatencyMS.WithLabelValues(name).Observe(float64(elapsed.Milliseconds()))
		logger.Info("request",
			zap.String("handler", name),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed),
		)
	}
}
