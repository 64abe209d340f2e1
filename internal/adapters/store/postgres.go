package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"github.com/techSaswata/mentiby-admin/internal/domain/model"
)

const (
	defaultTable            = "onboarding"
	defaultOperationTimeout = 10 * time.Second
)

type sqlOpenFunc func(driverName, dsn string) (*sql.DB, error)

// Postgres fetches score records from a Postgres table.
type Postgres struct {
	dsn     string
	table   string
	timeout time.Duration
	openDB  sqlOpenFunc

	mu sync.Mutex
	db *sql.DB
}

// NewPostgres creates a Postgres store for the given DSN.
func NewPostgres(dsn string, opts ...PostgresOption) (*Postgres, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrInvalidDSN
	}
	p := &Postgres{
		dsn:     dsn,
		table:   defaultTable,
		timeout: defaultOperationTimeout,
		openDB:  sql.Open,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// FetchAll returns every score record. Ordering by XP descending then
// update time ascending is requested of the store, but the ranking
// layer re-applies it regardless.
func (p *Postgres) FetchAll(ctx context.Context) ([]model.ScoreRecord, error) {
	db, err := p.ensureReady()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT participant_id, full_name, email, cohort_type, cohort_number, xp, updated_at
		FROM %s
		ORDER BY xp DESC, updated_at ASC`, quoteIdentifier(p.table))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close()

	var records []model.ScoreRecord
	for rows.Next() {
		var r model.ScoreRecord
		var fullName, email, cohortType, cohortNumber sql.NullString
		if err := rows.Scan(&r.ParticipantID, &fullName, &email, &cohortType, &cohortNumber, &r.XP, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		r.FullName = fullName.String
		r.Email = email.String
		r.CohortType = cohortType.String
		r.CohortNumber = cohortNumber.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return records, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

// ensureReady lazily opens and pings the connection pool. Failures are
// not latched: each call retries until a pool is established, so a
// store that was unreachable at startup recovers on the next trigger.
func (p *Postgres) ensureReady() (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db != nil {
		return p.db, nil
	}
	db, err := p.openDB("postgres", p.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	p.db = db
	return p.db, nil
}

// quoteIdentifier makes a table name safe to interpolate.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
