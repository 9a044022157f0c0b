package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

const defaultPoolStatsInterval = 15 * time.Second

// DBExecutor общий интерфейс для *sql.DB и *DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Recorder принимает измерения запросов и пула соединений
type Recorder interface {
	ObserveDBQuery(operation string, err error, duration time.Duration)
	SetDBPoolStats(db string, open, inUse, idle int, waitCount int64, waitDuration time.Duration)
}

// DB обертка над *sql.DB, которая измеряет длительность каждого запроса
type DB struct {
	db       *sql.DB
	recorder Recorder
	name     string
}

// Wrap оборачивает соединение без фонового сбора статистики пула
func Wrap(db *sql.DB, recorder Recorder, name string) *DB {
	return &DB{db: db, recorder: recorder, name: name}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула
// до закрытия stopCh
func WrapWithDefault(db *sql.DB, recorder Recorder, name string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, recorder, name)
	go wrapped.collectPoolStats(defaultPoolStatsInterval, stopCh)
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(operation(query), err, time.Since(start))
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(operation(query), err, time.Since(start))
	return rows, err
}

// QueryRowContext ошибка строки становится известна только при Scan,
// поэтому здесь фиксируется только длительность
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(operation(query), nil, time.Since(start))
	return row
}

func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.recordPoolStats()
		select {
		case <-ticker.C:
		case <-stopCh:
			return
		}
	}
}

func (d *DB) recordPoolStats() {
	s := d.db.Stats()
	d.recorder.SetDBPoolStats(d.name, s.OpenConnections, s.InUse, s.Idle, s.WaitCount, s.WaitDuration)
}

// operation первое ключевое слово запроса в нижнем регистре: select, insert, update...
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
