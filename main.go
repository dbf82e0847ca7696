package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	appCatalog "github.com/commercelab/orderflow/internal/application/catalog"
	appOrder "github.com/commercelab/orderflow/internal/application/order"
	"github.com/commercelab/orderflow/internal/config"
	domainCatalog "github.com/commercelab/orderflow/internal/domain/catalog"
	domainCustomer "github.com/commercelab/orderflow/internal/domain/customer"
	domainOutbox "github.com/commercelab/orderflow/internal/domain/outbox"
	catalogworker "github.com/commercelab/orderflow/internal/infrastructure/catalog/worker"
	"github.com/commercelab/orderflow/internal/infrastructure/id"
	kafkapub "github.com/commercelab/orderflow/internal/infrastructure/kafka"
	"github.com/commercelab/orderflow/internal/infrastructure/memory"
	obsprovider "github.com/commercelab/orderflow/internal/infrastructure/observability"
	"github.com/commercelab/orderflow/internal/infrastructure/observability/oteltrace"
	"github.com/commercelab/orderflow/internal/infrastructure/observability/prometrics"
	"github.com/commercelab/orderflow/internal/infrastructure/observability/zaplogger"
	"github.com/commercelab/orderflow/internal/infrastructure/outbox"
	"github.com/commercelab/orderflow/internal/infrastructure/rediscache"
	"github.com/commercelab/orderflow/internal/observability"
	httppresentation "github.com/commercelab/orderflow/internal/presentation/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := zaplogger.New(
		observability.F("service", cfg.ServiceName),
		observability.F("env", cfg.Env),
	)
	if s, ok := logger.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	registry := prometrics.New("", "")
	counters := map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: registry.Counter(
			string(observability.MUsecaseRequests),
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MHTTPRequests: registry.Counter(
			string(observability.MHTTPRequests),
			"Total number of HTTP requests served.",
			"method", "route", "status",
		),
		observability.MExternalRequests: registry.Counter(
			string(observability.MExternalRequests),
			"Total number of calls to external collaborators.",
			"peer", "endpoint", "outcome",
		),
		observability.MStockDecrementFailures: registry.Counter(
			string(observability.MStockDecrementFailures),
			"Count of post-persistence stock decrements that failed.",
			"use_case",
		),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: registry.Histogram(
			string(observability.MUsecaseDuration),
			"Duration of use case execution in seconds.",
			nil,
			"use_case",
		),
		observability.MHTTPRequestDuration: registry.Histogram(
			string(observability.MHTTPRequestDuration),
			"Duration of HTTP request handling in seconds.",
			nil,
			"method", "route", "status",
		),
		observability.MExternalRequestDuration: registry.Histogram(
			string(observability.MExternalRequestDuration),
			"Duration of external collaborator calls in seconds.",
			nil,
			"peer", "endpoint",
		),
	}
	tel := obsprovider.New(oteltrace.New(cfg.ServiceName), logger, counters, histograms)

	orderRepo := memory.NewOrderRepository()
	productRepo := memory.NewProductRepository()
	customerRepo := memory.NewCustomerRepository()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seedDemoData(ctx, customerRepo, productRepo, logger)

	var customers domainCustomer.Repository = customerRepo
	if cfg.RedisAddr != "" {
		cached := rediscache.NewCustomerRepository(cfg.RedisAddr, customerRepo, cfg.CustomerCacheTTL, logger)
		defer func() { _ = cached.Close() }()
		customers = cached
		logger.Info("customer_cache_enabled",
			observability.F("redis_addr", cfg.RedisAddr),
			observability.F("ttl", cfg.CustomerCacheTTL.String()),
		)
	}

	bus := outbox.NewBus(logger)
	bus.Start(ctx)
	defer bus.Stop(context.Background())

	publishers := []domainOutbox.Publisher{bus}
	if cfg.KafkaBroker != "" {
		kp := kafkapub.NewPublisher(cfg.KafkaBroker, cfg.OrderTopic, logger)
		defer func() { _ = kp.Close() }()
		publishers = append(publishers, kp)
		logger.Info("kafka_publisher_enabled",
			observability.F("broker", cfg.KafkaBroker),
			observability.F("topic", cfg.OrderTopic),
		)
	}
	publisher := outbox.Fanout(publishers...)

	placeOrder := appOrder.NewPlaceOrderUseCase(
		orderRepo,
		customers,
		productRepo,
		id.NewUUIDGenerator(),
		publisher,
		tel,
	)
	getOrder := appOrder.NewGetOrderUseCase(orderRepo)

	watcher := appCatalog.NewLowStockWatcher(productRepo, cfg.LowStockThreshold, logger)
	catalogworker.New(bus, watcher).Start()

	handler := httppresentation.NewHandler(placeOrder, getOrder, productRepo, logger, tel)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		logger.Info("http_server_start",
			observability.F("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error",
				observability.F("error", err),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error",
			observability.F("error", err),
		)
	} else {
		logger.Info("http_server_stopped")
	}
}

// seedDemoData loads a small demo catalog and customer set so the service is
// exercisable out of the box.
func seedDemoData(ctx context.Context, customers *memory.CustomerRepository, products *memory.ProductRepository, logger observability.Logger) {
	demoCustomers := []struct{ id, name, email string }{
		{"c-1001", "Ada Lovelace", "ada@example.com"},
		{"c-1002", "Grace Hopper", "grace@example.com"},
	}
	for _, dc := range demoCustomers {
		c, err := domainCustomer.New(dc.id, dc.name, dc.email)
		if err != nil {
			logger.Warn("seed_customer_failed", observability.F("id", dc.id), observability.F("error", err))
			continue
		}
		_ = customers.Save(ctx, c)
	}

	demoProducts := []struct {
		id, name string
		price    string
		stock    int
	}{
		{"p-2001", "Mechanical Keyboard", "89.90", 25},
		{"p-2002", "USB-C Hub", "34.50", 40},
		{"p-2003", "Laptop Stand", "49.00", 10},
	}
	for _, dp := range demoProducts {
		price, err := decimal.NewFromString(dp.price)
		if err != nil {
			logger.Warn("seed_product_failed", observability.F("id", dp.id), observability.F("error", err))
			continue
		}
		p, err := domainCatalog.NewProduct(dp.id, dp.name, price, dp.stock)
		if err != nil {
			logger.Warn("seed_product_failed", observability.F("id", dp.id), observability.F("error", err))
			continue
		}
		_ = products.Save(ctx, p)
	}

	logger.Info("demo_data_seeded",
		observability.F("customers", len(demoCustomers)),
		observability.F("products", len(demoProducts)),
	)
}
