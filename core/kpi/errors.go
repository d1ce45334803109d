package kpi

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when the pre-fetch session check fails.
// The caller is expected to navigate to the login page.
var ErrSessionExpired = errors.New("session expired")

// Partition names, used in composite error messages.
const (
	PartitionWorkforce = "workforce"
	PartitionPayroll   = "payroll"
	PartitionAbsence   = "absence"
)

// PartitionError wraps a transport or query failure from one KPI partition.
// An absent row is not a PartitionError; only the read itself failing is.
type PartitionError struct {
	Partition string
	Err       error
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("kpi partition %s: %v", e.Partition, e.Err)
}

func (e *PartitionError) Unwrap() error {
	return e.Err
}
