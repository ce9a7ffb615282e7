package clinic

import "context"

// Dump is the diagnostic view of one clinic's keyspace.
type Dump struct {
	Keys         []string `json:"keys"`
	PatientCount int64    `json:"patientCount"`
	WaitingRoom  []string `json:"waitingRoom"`
	DoctorRoom   []string `json:"doctorRoom"`
}

// Repository persists the clinic directory and owns the keyspace-level
// maintenance operations.
type Repository interface {
	Put(ctx context.Context, c *Clinic) error
	// Get returns fault.KindNotFound when the clinic is absent.
	Get(ctx context.Context, id string) (*Clinic, error)
	All(ctx context.Context) ([]*Clinic, error)

	// InitPatients materializes the clinic's patient hash so key existence
	// checks succeed before the first patient arrives.
	InitPatients(ctx context.Context, clinicID string) error

	// MigrateLegacy moves unprefixed patient and room keys into the target
	// clinic's keyspace and deletes them. Reports whether data moved.
	MigrateLegacy(ctx context.Context, targetClinicID string) (bool, error)

	Clear(ctx context.Context, clinicID string) error
	Dump(ctx context.Context, clinicID string) (*Dump, error)
}
