package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/app/commands"
	availabilityapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/availability"
	bookingapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/booking"
	pricingapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/pricing"
	propertiesapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/properties"
	reviewsapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/reviews"
	"github.com/flori92/lokali-platform-sub000/internal/app/middleware"
	appoutbox "github.com/flori92/lokali-platform-sub000/internal/app/outbox"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainavailability "github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/money"
	"github.com/flori92/lokali-platform-sub000/internal/infra/broker/kafka"
	"github.com/flori92/lokali-platform-sub000/internal/infra/config"
	mongoinfra "github.com/flori92/lokali-platform-sub000/internal/infra/db/mongo"
	ginserver "github.com/flori92/lokali-platform-sub000/internal/infra/http/gin"
	"github.com/flori92/lokali-platform-sub000/internal/infra/inbox"
	"github.com/flori92/lokali-platform-sub000/internal/infra/obs"
	outboxinfra "github.com/flori92/lokali-platform-sub000/internal/infra/outbox"
	"github.com/flori92/lokali-platform-sub000/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	fixturesPath := getenv("PROPERTY_FIXTURES", "")
	if fixturesPath == "" {
		fixturesPath = defaultPropertyFixturesPath()
	}
	if err := app.loadPropertyFixtures(ctx, fixturesPath, logger); err != nil {
		logger.Warn("property fixtures load failed", "error", err, "path", fixturesPath)
	}

	if app.outboxWorker != nil {
		go func() {
			if err := app.outboxWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}
	if app.paymentConsumer != nil {
		go func() {
			defer app.paymentConsumer.Close()
			if err := app.paymentConsumer.Run(ctx, app.paymentTopics); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("payment consumer stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers        ginserver.Handlers
	factory         uow.UoWFactory
	outboxWorker    *outboxinfra.Worker
	paymentConsumer *kafka.Consumer
	paymentTopics   []string
	ready           func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		factory   uow.UoWFactory
		box       appoutbox.Outbox
		idStore   middleware.IdempotencyStore
		worker    *outboxinfra.Worker
		dedupe    kafka.Deduper
		calendars domainavailability.Repository
		ready     = func() error { return nil }
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongoinfra.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		calendars = mongoinfra.NewCalendarRepository(client.DB)
		factory = mongoinfra.Factory{
			DB:               client.DB,
			PropertiesRepo:   mongoinfra.NewPropertyRepository(client.DB),
			AvailabilityRepo: calendars,
			BookingRepo:      mongoinfra.NewBookingRepository(client.DB),
			ReviewsRepo:      mongoinfra.NewReviewRepository(client.DB),
		}
		store := outboxinfra.NewStore(client.DB)
		box = store
		idStore = mongoinfra.NewIdempotencyStore(client.DB)
		dedupe = inbox.NewStore(client.DB, "lokali-payments")
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return application{}, fmt.Errorf("kafka producer: %w", err)
			}
			worker = &outboxinfra.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Source:      "app://lokali",
				Backoff:     cfg.RetryBackoff,
			}
		}
	default:
		calendars = memory.NewCalendarRepository()
		factory = memory.Factory{
			PropertiesRepo:   memory.NewPropertyRepository(),
			AvailabilityRepo: calendars,
			BookingRepo:      memory.NewBookingRepository(),
			ReviewsRepo:      memory.NewReviewRepository(),
		}
		box = memory.NewOutbox()
		idStore = memory.NewIdempotencyStore()
	}

	snapshots := &domainavailability.SnapshotCache{
		Source:   domainavailability.RepositorySource{Repo: calendars},
		Interval: cfg.RefreshInterval,
		Logger:   logger,
	}
	snapshots.Start(ctx)

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingCommand{}.Key(), &bookingapp.RequestBookingHandler{
		UoWFactory: factory,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
	})
	commands.RegisterHandler(commandBus, bookingapp.ConfirmBookingCommand{}.Key(), &bookingapp.ConfirmBookingHandler{
		UoWFactory: factory,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
	})
	commands.RegisterHandler(commandBus, bookingapp.CancelBookingCommand{}.Key(), &bookingapp.CancelBookingHandler{
		UoWFactory: factory,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
	})
	commands.RegisterHandler(commandBus, propertiesapp.BlockCalendarCommand{}.Key(), &propertiesapp.BlockCalendarHandler{
		UoWFactory: factory,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
	})
	commands.RegisterHandler(commandBus, reviewsapp.SubmitReviewCommand{}.Key(), &reviewsapp.SubmitReviewHandler{
		UoWFactory: factory,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, availabilityapp.CheckRangeQuery{}.Key(), &availabilityapp.CheckRangeHandler{UoWFactory: factory, Snapshots: snapshots})
	queries.RegisterHandler(queryBus, pricingapp.GetQuoteQuery{}.Key(), &pricingapp.GetQuoteHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, propertiesapp.GetOverviewQuery{}.Key(), &propertiesapp.GetOverviewHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, propertiesapp.SearchCatalogQuery{}.Key(), &propertiesapp.SearchCatalogHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, bookingapp.GuestBookingsQuery{}.Key(), &bookingapp.GuestBookingsHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, reviewsapp.ListReviewsQuery{}.Key(), &reviewsapp.ListReviewsHandler{UoWFactory: factory})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Validation(middleware.SelfValidator{}),
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(factory, nil),
		middleware.OutboxFlush(box),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	var consumer *kafka.Consumer
	var topics []string
	if len(cfg.KafkaBrokers) > 0 {
		handler := kafka.PaymentSettledHandler{
			Commands: commandBusWithMiddleware,
			Inbox:    dedupe,
			Logger:   logger,
		}
		c, err := kafka.NewConsumer(cfg.KafkaBrokers, "lokali-payments", nil, handler)
		if err != nil {
			return application{}, fmt.Errorf("kafka consumer: %w", err)
		}
		consumer = c
		topics = []string{cfg.KafkaTopicPrefix + "payments.events.v1"}
	}

	return application{
		handlers: ginserver.Handlers{
			Booking: ginserver.BookingHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
			Availability: ginserver.AvailabilityHandler{
				Queries: queryBusWithMiddleware,
			},
			Property: ginserver.PropertyHandler{
				Queries:  queryBusWithMiddleware,
				Commands: commandBusWithMiddleware,
			},
			Pricing: ginserver.PricingHandler{
				Queries: queryBusWithMiddleware,
			},
			Review: ginserver.ReviewHandler{
				Queries:  queryBusWithMiddleware,
				Commands: commandBusWithMiddleware,
			},
		},
		factory:         factory,
		outboxWorker:    worker,
		paymentConsumer: consumer,
		paymentTopics:   topics,
		ready:           ready,
	}, nil
}

func (a application) loadPropertyFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("property fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("property fixtures file empty", "path", path)
		return nil
	}

	var fixtures []propertyFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}
	if len(fixtures) == 0 {
		return nil
	}

	unit, err := a.factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return err
	}
	if injector, ok := unit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		ctx = injector.InjectContext(ctx)
	}
	defer unit.Rollback(ctx)

	now := time.Now()
	for _, fx := range fixtures {
		params := domainproperties.CreateParams{
			ID:          domainproperties.PropertyID(fx.ID),
			Owner:       domainproperties.OwnerID(fx.Owner),
			Title:       fx.Title,
			Description: fx.Description,
			Type:        domainproperties.PropertyType(fx.Type),
			Address: domainproperties.Address{
				Line1:    fx.Address.Line1,
				District: fx.Address.District,
				City:     fx.Address.City,
				Country:  fx.Address.Country,
				Lat:      fx.Address.Lat,
				Lon:      fx.Address.Lon,
			},
			Amenities:     append([]string(nil), fx.Amenities...),
			GuestsLimit:   fx.GuestsLimit,
			UnitPrice:     money.FCFA(fx.UnitPrice),
			BillingPeriod: domainproperties.BillingPeriod(fx.BillingPeriod),
			MinimumStay:   fx.MinimumStay,
			Now:           now,
		}

		property, err := domainproperties.New(params)
		if err != nil {
			logger.Error("fixture invalid", "property_id", fx.ID, "error", err)
			continue
		}
		if err := property.Publish(now); err != nil {
			logger.Error("fixture publish failed", "property_id", fx.ID, "error", err)
			continue
		}
		property.ClearEvents()
		if err := unit.Properties().Save(ctx, property); err != nil {
			logger.Error("cannot store fixture property", "property_id", fx.ID, "error", err)
			continue
		}
		logger.Info("property fixture imported", "property_id", property.ID)
	}
	return unit.Commit(ctx)
}

type propertyFixture struct {
	ID            string         `json:"id"`
	Owner         string         `json:"owner"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Type          string         `json:"type"`
	Address       fixtureAddress `json:"address"`
	Amenities     []string       `json:"amenities"`
	GuestsLimit   int            `json:"guests_limit"`
	UnitPrice     int64          `json:"unit_price"`
	BillingPeriod string         `json:"billing_period"`
	MinimumStay   int            `json:"minimum_stay"`
}

type fixtureAddress struct {
	Line1    string  `json:"line1"`
	District string  `json:"district"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

func defaultPropertyFixturesPath() string {
	candidates := []string{
		filepath.Join("data", "properties.json"),
		filepath.Join("backend", "data", "properties.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
