package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"stockpile/models"
)

// PostgresAdapter keeps the same whole-document contract as the file adapter
// but stores each user's inventory as a jsonb row. Every save rewrites the
// full table inside one transaction, which is the document-rewrite semantics
// at a different durability level.
type PostgresAdapter struct {
	pool *pgxpool.Pool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS inventories (
    username   TEXT PRIMARY KEY,
    doc        JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS credentials (
    username TEXT PRIMARY KEY,
    secret   TEXT NOT NULL
);
`

// NewPostgresAdapter connects to databaseURL and ensures the schema exists.
func NewPostgresAdapter(databaseURL string) (*PostgresAdapter, error) {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	log.Println("Successfully connected to the database")
	return &PostgresAdapter{pool: pool}, nil
}

func (a *PostgresAdapter) LoadDocument() (models.Document, error) {
	ctx := context.Background()
	rows, err := a.pool.Query(ctx, `SELECT username, doc FROM inventories`)
	if err != nil {
		return nil, fmt.Errorf("loading inventories: %w", err)
	}
	defer rows.Close()

	doc := models.Document{}
	for rows.Next() {
		var username string
		var raw []byte
		if err := rows.Scan(&username, &raw); err != nil {
			return nil, fmt.Errorf("scanning inventory row: %w", err)
		}
		inv := &models.Inventory{}
		if err := json.Unmarshal(raw, inv); err != nil {
			return nil, fmt.Errorf("parsing inventory for %q: %w", username, err)
		}
		doc[username] = inv
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading inventories: %w", err)
	}
	return doc, nil
}

func (a *PostgresAdapter) SaveDocument(doc models.Document) error {
	ctx := context.Background()
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting save transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM inventories`); err != nil {
		return fmt.Errorf("clearing inventories: %w", err)
	}
	for username, inv := range doc {
		raw, err := json.Marshal(inv)
		if err != nil {
			return fmt.Errorf("encoding inventory for %q: %w", username, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO inventories (username, doc) VALUES ($1, $2)`,
			username, string(raw))
		if err != nil {
			return fmt.Errorf("writing inventory for %q: %w", username, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

func (a *PostgresAdapter) LoadCredentials() (models.Credentials, error) {
	ctx := context.Background()
	rows, err := a.pool.Query(ctx, `SELECT username, secret FROM credentials`)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	defer rows.Close()

	creds := models.Credentials{}
	for rows.Next() {
		var username, secret string
		if err := rows.Scan(&username, &secret); err != nil {
			return nil, fmt.Errorf("scanning credential row: %w", err)
		}
		creds[username] = secret
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	return creds, nil
}

func (a *PostgresAdapter) SaveCredentials(creds models.Credentials) error {
	ctx := context.Background()
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting save transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	for username, secret := range creds {
		_, err := tx.Exec(ctx,
			`INSERT INTO credentials (username, secret) VALUES ($1, $2)`,
			username, secret)
		if err != nil {
			return fmt.Errorf("writing credential for %q: %w", username, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (a *PostgresAdapter) Close() {
	if a.pool != nil {
		a.pool.Close()
		log.Println("Database connection pool closed")
	}
}
