package marketdata

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/meenmo/zerocurve/bond"
)

// DefaultQuoteTable is the table read by PostgresQuoteSource.
const DefaultQuoteTable = "bond_quotes"

// QuoteTableDDL creates a quote table compatible with PostgresQuoteSource.
const QuoteTableDDL = `CREATE TABLE IF NOT EXISTS %s (
	curve_id    text             NOT NULL,
	maturity    double precision NOT NULL,
	coupon_rate double precision NOT NULL,
	price       double precision NOT NULL,
	face_value  double precision NOT NULL DEFAULT 100,
	PRIMARY KEY (curve_id, maturity)
)`

// PostgresQuoteSource reads quotes from a PostgreSQL table keyed by curve id.
type PostgresQuoteSource struct {
	db    *sql.DB
	table string
}

// OpenPostgres opens and pings a lib/pq connection pool.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresQuoteSource reads from table, or DefaultQuoteTable when empty.
func NewPostgresQuoteSource(db *sql.DB, table string) *PostgresQuoteSource {
	if table == "" {
		table = DefaultQuoteTable
	}
	return &PostgresQuoteSource{db: db, table: table}
}

// EnsureTable creates the quote table if it does not exist.
func (s *PostgresQuoteSource) EnsureTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(QuoteTableDDL, pq.QuoteIdentifier(s.table))); err != nil {
		return fmt.Errorf("create %s: %w", s.table, err)
	}
	return nil
}

// Insert upserts quotes under curveID in one transaction.
func (s *PostgresQuoteSource) Insert(ctx context.Context, curveID string, quotes []bond.BondQuote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt := fmt.Sprintf(`INSERT INTO %s (curve_id, maturity, coupon_rate, price, face_value)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (curve_id, maturity) DO UPDATE
SET coupon_rate = EXCLUDED.coupon_rate, price = EXCLUDED.price, face_value = EXCLUDED.face_value`, pq.QuoteIdentifier(s.table))
	for _, q := range quotes {
		if _, err := tx.ExecContext(ctx, stmt, curveID, q.Maturity, q.CouponRate, q.Price, q.FaceValue); err != nil {
			return fmt.Errorf("insert maturity %g: %w", q.Maturity, err)
		}
	}
	return tx.Commit()
}

// Quotes implements QuoteSource.
func (s *PostgresQuoteSource) Quotes(ctx context.Context, curveID string) ([]bond.BondQuote, error) {
	query := fmt.Sprintf(`SELECT maturity, coupon_rate, price, face_value FROM %s WHERE curve_id = $1 ORDER BY maturity`,
		pq.QuoteIdentifier(s.table))

	rows, err := s.db.QueryContext(ctx, query, curveID)
	if err != nil {
		return nil, fmt.Errorf("query quotes for %q: %w", curveID, err)
	}
	defer rows.Close()

	var quotes []bond.BondQuote
	for rows.Next() {
		var q bond.BondQuote
		if err := rows.Scan(&q.Maturity, &q.CouponRate, &q.Price, &q.FaceValue); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read quotes for %q: %w", curveID, err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("curve %q not found in %s", curveID, s.table)
	}
	return quotes, nil
}
