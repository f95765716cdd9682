// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/duckdb/duckdb-go/v2" // registers the duckdb driver
	"github.com/mapavotos/mapavotos/tse"
)

// Stats are the descriptive statistics of the aggregate table.
type Stats struct {
	Count  int
	Total  float64
	Mean   sql.NullFloat64
	Median sql.NullFloat64
	StdDev sql.NullFloat64 // sample deviation, NULL below two rows
	Min    float64
	Max    float64
}

// ComputeStats loads ms into an in-memory DuckDB table and aggregates it
// there.
func ComputeStats(ctx context.Context, ms []*tse.Municipality) (Stats, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return Stats{}, fmt.Errorf("opening duckdb: %w", err)
	}
	defer db.Close()

	if err := loadMunicipalities(ctx, db, ms); err != nil {
		return Stats{}, err
	}

	var s Stats

	err = db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			CAST(COALESCE(SUM(votes), 0) AS DOUBLE),
			CAST(AVG(votes) AS DOUBLE),
			CAST(MEDIAN(votes) AS DOUBLE),
			CAST(STDDEV_SAMP(votes) AS DOUBLE),
			CAST(COALESCE(MIN(votes), 0) AS DOUBLE),
			CAST(COALESCE(MAX(votes), 0) AS DOUBLE)
		FROM municipalities
	`).Scan(&s.Count, &s.Total, &s.Mean, &s.Median, &s.StdDev, &s.Min, &s.Max)
	if err != nil {
		return Stats{}, fmt.Errorf("computing statistics: %w", err)
	}

	return s, nil
}

func loadMunicipalities(ctx context.Context, db *sql.DB, ms []*tse.Municipality) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE municipalities (
			name VARCHAR NOT NULL,
			region VARCHAR NOT NULL,
			code VARCHAR,
			votes DOUBLE NOT NULL,
			band VARCHAR
		)
	`); err != nil {
		return fmt.Errorf("creating municipalities table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback municipalities load: %v", err)
		}
	}()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO municipalities (name, region, code, votes, band) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range ms {
		if _, err := stmt.ExecContext(ctx, m.Name, m.Region, m.Code, m.Votes, m.Band); err != nil {
			return fmt.Errorf("inserting %s/%s: %w", m.Name, m.Region, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing municipalities: %w", err)
	}

	return nil
}
