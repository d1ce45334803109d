// Package kpi fetches and normalizes the dashboard's three KPI partitions:
// workforce, payroll, and absence, each keyed by (company, period).
//
// A fetch cycle re-validates the session through the gate (revocation-aware,
// fail-closed), reads the three partitions concurrently, and either returns a
// complete Dataset or fails as a whole with an error naming the failing
// partition. A partition legitimately having no row for the period is not a
// failure; its snapshot is simply nil.
//
// Field normalization follows a "never block rendering on missing data"
// policy: missing, null, and non-numeric values coerce to zero.
package kpi
