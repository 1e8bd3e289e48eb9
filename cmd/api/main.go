package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/tu-usuario/retail-ledger/internal/application/analytics"
	"github.com/tu-usuario/retail-ledger/internal/application/auth"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/application/reservation"
	"github.com/tu-usuario/retail-ledger/internal/application/sales"
	"github.com/tu-usuario/retail-ledger/internal/application/usecase"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/cache"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/retail-ledger/internal/infrastructure/pdf"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/snapshot"
	httpRouter "github.com/tu-usuario/retail-ledger/internal/interfaces/http"
	"github.com/tu-usuario/retail-ledger/pkg/config"
	"github.com/tu-usuario/retail-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Service: cfg.App.Name,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Backend de snapshots: file (default), postgres o none.
	var snapStore repository.SnapshotStore
	switch cfg.Store.SnapshotBackend {
	case "postgres":
		pool, err := snapshot.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		snapStore, err = snapshot.NewPostgresStore(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar snapshots en PostgreSQL")
		}
	case "none":
		snapStore = nil
	default:
		snapStore = snapshot.NewFileStore(cfg.Store.SnapshotPath)
	}

	store := memory.NewStore()
	if snapStore != nil {
		snap, err := snapStore.Load(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar snapshot")
		}
		if snap != nil {
			store.Restore(snap)
			log.Info().
				Time("taken_at", snap.TakenAt).
				Int("products", len(snap.Products)).
				Int("batches", len(snap.Batches)).
				Msg("ledger restaurado desde snapshot")
		}
	}

	// Cache de reportes: Redis si hay servidor, Noop si no.
	var reportCache ports.ReportCache
	if cfg.Cache.RedisAddr != "" {
		redisCache := cache.NewRedisReportCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.TTL)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, reportes sin cache")
			reportCache = cache.NewNoopReportCache()
		} else {
			defer redisCache.Close()
			reportCache = redisCache
		}
	} else {
		reportCache = cache.NewNoopReportCache()
	}

	// Ubicación por defecto para instalaciones nuevas.
	if locs, err := store.Locations().List(); err == nil && len(locs) == 0 {
		_ = store.Locations().Create(&entity.Location{
			ID:        uuid.New().String(),
			Name:      "Tienda Principal",
			Type:      entity.LocationTypeStore,
			CreatedAt: time.Now(),
		})
	}

	productUC := usecase.NewProductUseCase(store, store.Products(), store.Variants())
	locationUC := usecase.NewLocationUseCase(store, store.Locations())
	periodUC := usecase.NewPeriodUseCase(store, store.Period())
	intakeUC := inventory.NewIntakeUseCase(store)
	adjustmentUC := inventory.NewAdjustmentUseCase(store)
	transferUC := inventory.NewTransferUseCase(store)
	stockQuery := inventory.NewStockQuery(store.Batches(), store.Variants(), store.Movements())
	saleUC := sales.NewSaleUseCase(store)
	returnUC := sales.NewReturnUseCase(store)
	paymentUC := sales.NewPaymentUseCase(store)
	reservationUC := reservation.NewUseCase(store, store.Reservations())
	reportingUC := analytics.NewReportingUseCase(
		store.Batches(), store.Variants(), store.Orders(), store.Invoices(),
		store.Reservations(), store.Period(), reportCache,
	)
	receipts := infrapdf.NewReceiptGenerator(cfg.App.Name)
	invoiceQuery := sales.NewInvoiceQuery(store.Invoices(), store.Orders(), store.Variants(), store.Products(), receipts)
	authUC := auth.NewUseCase(store.Users(), cfg.JWT)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		LocationUC:    locationUC,
		PeriodUC:      periodUC,
		IntakeUC:      intakeUC,
		AdjustmentUC:  adjustmentUC,
		TransferUC:    transferUC,
		StockQuery:    stockQuery,
		SaleUC:        saleUC,
		ReturnUC:      returnUC,
		PaymentUC:     paymentUC,
		InvoiceQuery:  invoiceQuery,
		ReservationUC: reservationUC,
		ReportingUC:   reportingUC,
		AuthUC:        authUC,
		ReportCache:   reportCache,
		JWTSecret:     cfg.JWT.Secret,
	})

	// Guardado periódico de snapshots y barrido de reservas vencidas.
	bgCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	if snapStore != nil {
		go snapshotLoop(bgCtx, log.Component("snapshots"), store, snapStore, cfg.Store.SnapshotInterval)
	}
	go expiryLoop(bgCtx, log.Component("reservas"), reservationUC, cfg.Store.ExpiryInterval)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopBackground()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Última foto antes de morir.
	if snapStore != nil {
		if err := snapStore.Save(shutdownCtx, store.Snapshot()); err != nil {
			log.Error().Err(err).Msg("snapshot final")
		}
	}

	log.Info().Msg("aplicación detenida")
}

// snapshotLoop guarda una foto del ledger a intervalos fijos.
func snapshotLoop(ctx context.Context, log *logger.Logger, store *memory.Store, snapStore repository.SnapshotStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := snapStore.Save(ctx, store.Snapshot()); err != nil {
				log.Error().Err(err).Msg("snapshot periódico")
			}
		}
	}
}

// expiryLoop expira reservas vencidas a intervalos fijos.
func expiryLoop(ctx context.Context, log *logger.Logger, uc *reservation.UseCase, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := uc.ExpireDue(ctx, time.Now())
			if errors.Is(err, domain.ErrPeriodLocked) {
				continue
			}
			if err != nil {
				log.Error().Err(err).Msg("barrido de reservas vencidas")
				continue
			}
			if n > 0 {
				log.Info().Int("expired", n).Msg("reservas expiradas")
			}
		}
	}
}
