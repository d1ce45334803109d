package kpi

import "context"

// Source reads raw KPI rows from the three data partitions. Each read is
// scoped by (company, period) and returns at most one row; a nil Row with a
// nil error means no data exists for the period. Uniqueness per key is an
// external guarantee, not enforced here.
type Source interface {
	Workforce(ctx context.Context, companyID, period string) (Row, error)
	Payroll(ctx context.Context, companyID, period string) (Row, error)
	Absence(ctx context.Context, companyID, period string) (Row, error)
}

// ActivityToucher records that a company's dashboard was active. Touch is
// fire-and-forget: callers invoke it off the critical path and discard its
// error, so implementations should not rely on anyone seeing failures.
type ActivityToucher interface {
	Touch(ctx context.Context, companyID string) error
}

// NoopToucher is an ActivityToucher that does nothing. Use it when activity
// tracking is not wired up.
type NoopToucher struct{}

func (NoopToucher) Touch(context.Context, string) error { return nil }
