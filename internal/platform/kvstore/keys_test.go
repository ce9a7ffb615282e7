package kvstore

import "testing"

func TestClinicKeys(t *testing.T) {
	keys := ClinicKeys("clinic1")
	if keys.Patients != "clinic:clinic1:patients" {
		t.Errorf("unexpected patients key %q", keys.Patients)
	}
	if keys.WaitingRoom != "clinic:clinic1:waiting_room" {
		t.Errorf("unexpected waiting room key %q", keys.WaitingRoom)
	}
	if keys.DoctorRoom != "clinic:clinic1:doctor_room" {
		t.Errorf("unexpected doctor room key %q", keys.DoctorRoom)
	}
}

func TestClinicKeys_DisjointAcrossClinics(t *testing.T) {
	ids := []string{"clinic1", "clinic2", "clinic:1748372615000-a1b2c3", "clinic:1748372615000-d4e5f6"}

	seen := map[string]string{}
	for _, id := range ids {
		keys := ClinicKeys(id)
		for _, k := range []string{keys.Patients, keys.WaitingRoom, keys.DoctorRoom} {
			if owner, ok := seen[k]; ok {
				t.Fatalf("key %q generated for both %q and %q", k, owner, id)
			}
			seen[k] = id
		}
	}
}
