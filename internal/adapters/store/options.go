package store

import "time"

// PostgresOption applies a configuration option to the Postgres store.
type PostgresOption func(*Postgres)

// WithTable overrides the source table name.
func WithTable(table string) PostgresOption {
	return func(p *Postgres) {
		if table != "" {
			p.table = table
		}
	}
}

// WithTimeout bounds each store operation.
func WithTimeout(d time.Duration) PostgresOption {
	return func(p *Postgres) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// withOpenFunc replaces the database opener. Test hook.
func withOpenFunc(open sqlOpenFunc) PostgresOption {
	return func(p *Postgres) {
		if open != nil {
			p.openDB = open
		}
	}
}
