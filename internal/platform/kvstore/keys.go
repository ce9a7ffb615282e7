package kvstore

import "fmt"

// Keys names the three per-clinic collections. The hash is the source of
// truth for patient attributes; the two lists carry queue order only.
type Keys struct {
	Patients    string
	WaitingRoom string
	DoctorRoom  string
}

// Legacy key names from before clinics were introduced. Migrated once into
// the default clinic's keyspace and then deleted.
const (
	LegacyPatientsKey    = "patients"
	LegacyWaitingRoomKey = "waiting_room"
	LegacyDoctorRoomKey  = "doctor_room"
)

// ClinicDirectoryKey is the global hash of registered clinics. It is not
// clinic-prefixed: the clinic does not exist yet when it is written.
const ClinicDirectoryKey = "clinics"

// MigrationFlagKey guards the one-time legacy migration. Written with SetNX
// so concurrent startups cannot both run the copy.
const MigrationFlagKey = "migrations:legacy_keys"

// ClinicKeys derives the collection keys for a clinic. Pure and total:
// distinct clinic identifiers can never produce colliding keys because the
// identifier is embedded verbatim between fixed delimiters.
func ClinicKeys(clinicID string) Keys {
	return Keys{
		Patients:    fmt.Sprintf("clinic:%s:patients", clinicID),
		WaitingRoom: fmt.Sprintf("clinic:%s:waiting_room", clinicID),
		DoctorRoom:  fmt.Sprintf("clinic:%s:doctor_room", clinicID),
	}
}
