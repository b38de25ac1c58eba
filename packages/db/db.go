// Package db stores parsed reaction networks in a SQL database so they can
// be inspected or loaded later without the source files.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nadaso8/MARlea-parser/packages/core/parser"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	kind        TEXT NOT NULL,
	line        INTEGER NOT NULL,
	rate        INTEGER,
	species     TEXT,
	initial_count INTEGER,
	PRIMARY KEY (document_id, position)
);
CREATE TABLE IF NOT EXISTS terms (
	document_id TEXT NOT NULL,
	position    INTEGER NOT NULL,
	side        TEXT NOT NULL CHECK (side IN ('reactant', 'product')),
	term_index  INTEGER NOT NULL,
	coefficient INTEGER NOT NULL,
	species     TEXT NOT NULL,
	PRIMARY KEY (document_id, position, side, term_index),
	FOREIGN KEY (document_id, position) REFERENCES records(document_id, position) ON DELETE CASCADE
);
`

// QueryResult represents the result of a database query
type QueryResult struct {
	Columns []string
	Rows    []map[string]interface{}
}

// DocumentInfo describes a stored document
type DocumentInfo struct {
	ID        string
	Path      string
	CreatedAt time.Time
	Records   int
}

// Client represents a database client
type Client struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewClient creates a new database client from a connection string and
// makes sure the network tables exist.
func NewClient(connectionString string) (*Client, error) {
	driver, dsn, err := parseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Client{
		db:           db,
		queryTimeout: 30 * time.Second,
	}, nil
}

// Close closes the database connection
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// SaveDocument stores doc in a single transaction and returns its new ID.
func (c *Client) SaveDocument(ctx context.Context, doc *parser.Document) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (id, path, created_at) VALUES (?, ?, ?)`,
		id, doc.Path, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	for pos, rec := range doc.Records {
		switch rec.Kind {
		case parser.RecordReaction:
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO records (document_id, position, kind, line, rate) VALUES (?, ?, ?, ?, ?)`,
				id, pos, rec.Kind.String(), rec.Line, int64(rec.Reaction.Rate)); err != nil {
				return "", fmt.Errorf("failed to insert reaction: %w", err)
			}
			if err := insertTerms(ctx, tx, id, pos, "reactant", rec.Reaction.Reactants); err != nil {
				return "", err
			}
			if err := insertTerms(ctx, tx, id, pos, "product", rec.Reaction.Products); err != nil {
				return "", err
			}
		case parser.RecordSpeciesCount:
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO records (document_id, position, kind, line, species, initial_count) VALUES (?, ?, ?, ?, ?, ?)`,
				id, pos, rec.Kind.String(), rec.Line, rec.Species.Name, int64(rec.Species.Count)); err != nil {
				return "", fmt.Errorf("failed to insert species count: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return id, nil
}

// SQLite integers are signed, so coefficients are stored as int64 and
// read back with the same bit pattern.
func insertTerms(ctx context.Context, tx *sql.Tx, id string, pos int, side string, terms []parser.Term) error {
	for i, t := range terms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO terms (document_id, position, side, term_index, coefficient, species) VALUES (?, ?, ?, ?, ?, ?)`,
			id, pos, side, i, int64(t.Coefficient), t.Name); err != nil {
			return fmt.Errorf("failed to insert %s term: %w", side, err)
		}
	}
	return nil
}

// LoadDocument rebuilds a stored document.
func (c *Client) LoadDocument(ctx context.Context, id string) (*parser.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	doc := &parser.Document{}
	err := c.db.QueryRowContext(ctx, `SELECT path FROM documents WHERE id = ?`, id).Scan(&doc.Path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT position, kind, line, rate, species, initial_count FROM records WHERE document_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	defer rows.Close()

	byPosition := make(map[int]*parser.Reaction)
	for rows.Next() {
		var (
			pos, line   int
			kind        string
			rate, count sql.NullInt64
			species     sql.NullString
		)
		if err := rows.Scan(&pos, &kind, &line, &rate, &species, &count); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		switch kind {
		case parser.RecordReaction.String():
			r := &parser.Reaction{Rate: uint64(rate.Int64)}
			byPosition[pos] = r
			doc.Records = append(doc.Records, &parser.Record{Kind: parser.RecordReaction, Line: line, Reaction: r})
		case parser.RecordSpeciesCount.String():
			doc.Records = append(doc.Records, &parser.Record{
				Kind:    parser.RecordSpeciesCount,
				Line:    line,
				Species: &parser.SpeciesCount{Name: species.String, Count: uint64(count.Int64)},
			})
		default:
			return nil, fmt.Errorf("unknown record kind %q", kind)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	termRows, err := c.db.QueryContext(ctx,
		`SELECT position, side, coefficient, species FROM terms WHERE document_id = ? ORDER BY position, side, term_index`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load terms: %w", err)
	}
	defer termRows.Close()

	for termRows.Next() {
		var (
			pos         int
			side, name  string
			coefficient int64
		)
		if err := termRows.Scan(&pos, &side, &coefficient, &name); err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		r, ok := byPosition[pos]
		if !ok {
			return nil, fmt.Errorf("term for unknown reaction at position %d", pos)
		}
		t := parser.Term{Coefficient: uint64(coefficient), Name: name}
		if side == "reactant" {
			r.Reactants = append(r.Reactants, t)
		} else {
			r.Products = append(r.Products, t)
		}
	}
	if err := termRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return doc, nil
}

// ListDocuments returns the stored documents, newest first.
func (c *Client) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, `
		SELECT d.id, d.path, d.created_at, COUNT(r.position)
		FROM documents d LEFT JOIN records r ON r.document_id = d.id
		GROUP BY d.id, d.path, d.created_at
		ORDER BY d.created_at DESC, d.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var infos []DocumentInfo
	for rows.Next() {
		var info DocumentInfo
		if err := rows.Scan(&info.ID, &info.Path, &info.CreatedAt, &info.Records); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Query executes a SQL query and returns the result
func (c *Client) Query(query string, args ...interface{}) (*QueryResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.queryTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	result := &QueryResult{
		Columns: columns,
		Rows:    make([]map[string]interface{}, 0),
	}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{})
		for i, col := range columns {
			val := values[i]
			// Convert []byte to string for better handling
			if b, ok := val.([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = val
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

// parseConnectionString parses a connection string into driver and DSN
// Supported formats:
// - sqlite://path/to/db.sqlite
// - sqlite:./networks.db
func parseConnectionString(connStr string) (driver string, dsn string, err error) {
	connStr = strings.TrimSpace(connStr)

	if strings.HasPrefix(connStr, "sqlite://") {
		return "sqlite3", strings.TrimPrefix(connStr, "sqlite://"), nil
	}
	if strings.HasPrefix(connStr, "sqlite:") {
		return "sqlite3", strings.TrimPrefix(connStr, "sqlite:"), nil
	}

	scheme, _, found := strings.Cut(connStr, "://")
	if !found {
		return "", "", fmt.Errorf("invalid connection string: %q", connStr)
	}
	return "", "", fmt.Errorf("unsupported database scheme: %s", scheme)
}
