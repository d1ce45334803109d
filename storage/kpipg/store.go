// Package kpipg implements the KPI data source and the activity toucher on
// top of PostgreSQL via pgx.
package kpipg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paylens/dashgate/core/kpi"
)

var (
	_ kpi.Source          = (*Store)(nil)
	_ kpi.ActivityToucher = (*Store)(nil)
)

// Store reads KPI rows from the hosted query schema. Each partition table
// holds at most one row per (company_id, period); uniqueness is enforced by
// the schema, not re-checked here.
type Store struct {
	db *pgxpool.Pool
}

// New creates a Store backed by the given connection pool.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const workforceQuery = `
SELECT effectif_fin_mois, etp_fin_mois, entrees, sorties, taux_turnover,
       pct_cdi, age_moyen, anciennete_moyenne_mois, pct_hommes, pct_femmes
FROM kpi_workforce
WHERE company_id = $1 AND period = $2
LIMIT 1`

const payrollQuery = `
SELECT masse_salariale_brute, cout_total_employeur, salaire_base_moyen,
       cout_moyen_par_etp, part_variable, taux_charges
FROM kpi_payroll
WHERE company_id = $1 AND period = $2
LIMIT 1`

const absenceQuery = `
SELECT taux_absenteisme, jours_absence, nb_absences_total, duree_moyenne,
       nb_salaries_absents, jours_maladie
FROM kpi_absence
WHERE company_id = $1 AND period = $2
LIMIT 1`

func (s *Store) Workforce(ctx context.Context, companyID, period string) (kpi.Row, error) {
	return s.queryOne(ctx, workforceQuery, companyID, period)
}

func (s *Store) Payroll(ctx context.Context, companyID, period string) (kpi.Row, error) {
	return s.queryOne(ctx, payrollQuery, companyID, period)
}

func (s *Store) Absence(ctx context.Context, companyID, period string) (kpi.Row, error) {
	return s.queryOne(ctx, absenceQuery, companyID, period)
}

// Touch records dashboard activity for the company. Callers treat it as
// fire-and-forget; the error return exists for logging only.
func (s *Store) Touch(ctx context.Context, companyID string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE companies SET last_activity_at = now() WHERE id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("touch company %q: %w", companyID, err)
	}
	return nil
}

// queryOne runs a single-row partition query. No row for the key is not an
// error: it returns (nil, nil) and the caller renders a nil snapshot.
func (s *Store) queryOne(ctx context.Context, query, companyID, period string) (kpi.Row, error) {
	rows, err := s.db.Query(ctx, query, companyID, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	values, err := rows.Values()
	if err != nil {
		return nil, err
	}

	row := make(kpi.Row, len(values))
	for i, fd := range rows.FieldDescriptions() {
		row[fd.Name] = values[i]
	}
	return row, rows.Err()
}
