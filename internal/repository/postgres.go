// Package repository provides PostgreSQL-backed storage for property records
// and search telemetry.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"homematch/internal/model"
)

// CandidateFilter narrows the candidate set loaded for scoring. These are
// coarse database-side cuts; fine-grained preference scoring happens in
// memory afterwards.
type CandidateFilter struct {
	PropertyTypes []model.PropertyType
	PriceMax      *float64 // generous ceiling, typically 1.5x the buyer's max
	Limit         int
}

const propertyColumns = `
	id, address, city, state, zip, latitude, longitude,
	bedrooms, bathrooms, sqft, lot_sqft, year_built,
	property_type, style, features,
	last_sale_date, last_sale_price, list_price, estimated_value,
	ownership_years, absentee_owner, equity_percent, tax_status,
	permits, listing_status, created_at, updated_at`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// ListCandidates loads property records for scoring, applying only the
// coarse filters that are safe to push into SQL.
func (r *PostgresRepository) ListCandidates(ctx context.Context, filter CandidateFilter) ([]model.PropertyRecord, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if len(filter.PropertyTypes) > 0 {
		types := make([]string, len(filter.PropertyTypes))
		for i, t := range filter.PropertyTypes {
			types[i] = string(t)
		}
		whereClauses = append(whereClauses, fmt.Sprintf("property_type = ANY($%d)", argIndex))
		args = append(args, pq.Array(types))
		argIndex++
	}
	if filter.PriceMax != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("COALESCE(list_price, estimated_value, 0) <= $%d", argIndex))
		args = append(args, *filter.PriceMax)
		argIndex++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 2000
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE %s
		ORDER BY updated_at DESC
		LIMIT $%d
	`, propertyColumns, strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, limit)

	var properties []model.PropertyRecord
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	return properties, nil
}

// GetProperty retrieves a single property by its ID. Returns nil when the
// property does not exist.
func (r *PostgresRepository) GetProperty(ctx context.Context, id string) (*model.PropertyRecord, error) {
	var property model.PropertyRecord
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = $1`, propertyColumns)
	err := r.db.GetContext(ctx, &property, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// UpdateEmbedding updates the embedding vector for a property
func (r *PostgresRepository) UpdateEmbedding(ctx context.Context, propertyID string, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	query := `UPDATE properties SET embedding = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, vec, propertyID)
	if err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	return nil
}

// BatchUpdateEmbeddings updates embeddings for multiple properties
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE properties SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		_, err := stmt.ExecContext(ctx, vec, item.PropertyID)
		if err != nil {
			errors = append(errors, fmt.Sprintf("property %s: %v", item.PropertyID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// LogSearch logs a search query with its ranked result IDs
func (r *PostgresRepository) LogSearch(ctx context.Context, searchID, query string, intent *model.ParsedIntent, resultCount int, propertyIDs []string, responseTimeMs int) error {
	logQuery := `
		INSERT INTO search_logs (search_id, query, parsed_intent, result_count, returned_property_ids, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	intentBlob, err := intentJSON(intent)
	if err != nil {
		return fmt.Errorf("failed to marshal intent: %w", err)
	}
	_, err = r.db.ExecContext(ctx, logQuery, searchID, query, intentBlob, resultCount, pq.Array(propertyIDs), responseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// LogFeedback logs a buyer action against a search result
func (r *PostgresRepository) LogFeedback(ctx context.Context, searchID, propertyID, action string) error {
	query := `
		INSERT INTO search_feedback (search_id, property_id, action)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, searchID, propertyID, action)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}

// intentJSON serializes a ParsedIntent for JSONB storage; nil stores SQL NULL.
func intentJSON(intent *model.ParsedIntent) (interface{}, error) {
	if intent == nil {
		return nil, nil
	}
	return json.Marshal(intent)
}
