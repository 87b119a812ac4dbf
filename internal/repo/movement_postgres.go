package repo

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rogerio-castellano/container-tracker/internal/models"
	"go.uber.org/zap"
)

const movementsChannel = "movements_changed"

var movementsSchema = []string{
	`CREATE TABLE IF NOT EXISTS movements (
		id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		date        TIMESTAMPTZ NOT NULL,
		origin      TEXT NOT NULL DEFAULT '',
		destination TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT '',
		container   TEXT NOT NULL DEFAULT '',
		driver      TEXT NOT NULL DEFAULT '',
		plate       TEXT NOT NULL DEFAULT '',
		photo_url   TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS movements_date_idx ON movements (date DESC)`,
	`CREATE OR REPLACE FUNCTION notify_movements_changed() RETURNS trigger AS $$
	BEGIN
		PERFORM pg_notify('` + movementsChannel + `', '');
		RETURN NULL;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS movements_changed ON movements`,
	`CREATE TRIGGER movements_changed
		AFTER INSERT OR UPDATE OR DELETE OR TRUNCATE ON movements
		FOR EACH STATEMENT EXECUTE FUNCTION notify_movements_changed()`,
}

// PostgresMovementStore serves movements from Postgres. Live updates come from a
// LISTEN on a dedicated connection; every notification re-reads the collection.
type PostgresMovementStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresMovementStore(db *sql.DB, logger *zap.Logger) *PostgresMovementStore {
	return &PostgresMovementStore{db: db, logger: logger}
}

// EnsureSchema creates the movements table and its change trigger.
func (r *PostgresMovementStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range movementsSchema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply movements schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresMovementStore) Subscribe(ctx context.Context, onSnapshot SnapshotHandler, onError ErrorHandler) (Unsubscribe, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire listener connection: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "LISTEN "+movementsChannel); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to listen for movement changes: %w", err)
	}

	initial, err := r.list(ctx)
	if err != nil {
		r.release(conn)
		return nil, err
	}
	onSnapshot(initial)

	listenCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer r.release(conn)

		err := r.listen(listenCtx, conn, onSnapshot)
		if err != nil && listenCtx.Err() == nil {
			onError(err)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}

func (r *PostgresMovementStore) listen(ctx context.Context, conn *sql.Conn, onSnapshot SnapshotHandler) error {
	for {
		err := conn.Raw(func(driverConn any) error {
			pgxConn := driverConn.(*stdlib.Conn).Conn()
			_, err := pgxConn.WaitForNotification(ctx)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed waiting for movement changes: %w", err)
		}

		movements, err := r.list(ctx)
		if err != nil {
			return err
		}
		onSnapshot(movements)
	}
}

// release stops listening before handing the connection back to the pool.
func (r *PostgresMovementStore) release(conn *sql.Conn) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := conn.ExecContext(ctx, "UNLISTEN *"); err != nil {
		r.logger.Debug("unlisten failed, connection will be discarded", zap.Error(err))
	}
	conn.Close()
}

// list returns every movement ordered by date descending
func (r *PostgresMovementStore) list(ctx context.Context) ([]models.Movement, error) {
	query := `SELECT id, date, origin, destination, status, container, driver, plate, COALESCE(photo_url, '')
		FROM movements ORDER BY date DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	movements := []models.Movement{}
	for rows.Next() {
		var m models.Movement
		if err := rows.Scan(&m.ID, &m.Date, &m.Origin, &m.Destination, &m.Status, &m.Container, &m.Driver, &m.Plate, &m.PhotoURL); err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movements: %w", err)
	}

	return movements, nil
}

func (r *PostgresMovementStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM movements WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrMovementNotFound
	}
	return nil
}
