package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
	"github.com/tu-usuario/retail-ledger/pkg/config"
)

// NewPool crea el pool de conexiones PostgreSQL para el backend de snapshots.
// Registra el codec NUMERIC/DECIMAL -> shopspring/decimal en cada conexión.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// PostgresStore guarda cada foto como una fila nueva: el documento completo
// en JSONB más columnas NUMERIC de resumen para inspección por SQL. Load lee
// la fila más reciente.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore construye el store y asegura la tabla.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	const ddl = `
		CREATE TABLE IF NOT EXISTS ledger_snapshots (
			id              BIGSERIAL PRIMARY KEY,
			schema_version  INT         NOT NULL,
			taken_at        TIMESTAMPTZ NOT NULL,
			inventory_value NUMERIC     NOT NULL,
			total_revenue   NUMERIC     NOT NULL,
			doc             JSONB       NOT NULL
		)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("snapshot: crear tabla: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

var _ repository.SnapshotStore = (*PostgresStore)(nil)

// Save inserta la foto como fila nueva; las fotos viejas quedan como historial.
func (s *PostgresStore) Save(ctx context.Context, snap *repository.LedgerSnapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot: serializar: %w", err)
	}

	inventoryValue := decimal.Zero
	for _, b := range snap.Batches {
		if !b.Voided {
			inventoryValue = inventoryValue.Add(b.Value())
		}
	}
	totalRevenue := decimal.Zero
	for _, o := range snap.Orders {
		totalRevenue = totalRevenue.Add(o.TotalAmount)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO ledger_snapshots (schema_version, taken_at, inventory_value, total_revenue, doc)
		 VALUES ($1, $2, $3, $4, $5)`,
		snap.SchemaVersion, snap.TakenAt, inventoryValue, totalRevenue, doc)
	if err != nil {
		return fmt.Errorf("snapshot: insertar: %w", err)
	}
	return nil
}

// Load lee la foto más reciente; (nil, nil) si la tabla está vacía.
func (s *PostgresStore) Load(ctx context.Context) (*repository.LedgerSnapshot, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM ledger_snapshots ORDER BY id DESC LIMIT 1`).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: leer: %w", err)
	}
	var snap repository.LedgerSnapshot
	if err := json.Unmarshal(doc, &snap); err != nil {
		return nil, fmt.Errorf("snapshot: deserializar: %w", err)
	}
	if snap.SchemaVersion != repository.SnapshotSchemaVersion {
		return nil, fmt.Errorf("snapshot: versión de esquema no soportada: %d", snap.SchemaVersion)
	}
	return &snap, nil
}
