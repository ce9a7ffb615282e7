package clinic

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
	"github.com/clinicdesk/clinicdesk/internal/platform/kvstore"
)

type repoRedis struct {
	store kvstore.Store
}

func NewRepo(store kvstore.Store) Repository {
	return &repoRedis{store: store}
}

func (r *repoRedis) Put(ctx context.Context, c *Clinic) error {
	blob, err := kvstore.EncodeRecord(c)
	if err != nil {
		return fault.Wrap(fault.KindStore, "encode clinic record", err)
	}
	if err := r.store.HSet(ctx, kvstore.ClinicDirectoryKey, c.ID, blob); err != nil {
		return fault.Wrap(fault.KindStore, "write clinic record", err)
	}
	return nil
}

func (r *repoRedis) Get(ctx context.Context, id string) (*Clinic, error) {
	raw, found, err := r.store.HGet(ctx, kvstore.ClinicDirectoryKey, id)
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, "read clinic record", err)
	}
	if !found {
		return nil, fault.Newf(fault.KindClinicNotFound, "clinic %s not found", id)
	}
	var c Clinic
	if err := kvstore.DecodeRecord(raw, &c); err != nil {
		return nil, fault.Wrap(fault.KindStore, "decode clinic record", err)
	}
	return &c, nil
}

func (r *repoRedis) All(ctx context.Context) ([]*Clinic, error) {
	entries, err := r.store.HGetAll(ctx, kvstore.ClinicDirectoryKey)
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, "read clinic directory", err)
	}
	clinics := make([]*Clinic, 0, len(entries))
	for _, raw := range entries {
		var c Clinic
		if err := kvstore.DecodeRecord(raw, &c); err != nil {
			continue
		}
		clinics = append(clinics, &c)
	}
	sort.Slice(clinics, func(i, j int) bool { return clinics[i].ID < clinics[j].ID })
	return clinics, nil
}

// InitPatients writes and immediately deletes a marker field, leaving the
// hash key behind for existence checks.
func (r *repoRedis) InitPatients(ctx context.Context, clinicID string) error {
	keys := kvstore.ClinicKeys(clinicID)
	if err := r.store.HSet(ctx, keys.Patients, "_init", "1"); err != nil {
		return fault.Wrap(fault.KindStore, "init patient hash", err)
	}
	if err := r.store.HDel(ctx, keys.Patients, "_init"); err != nil {
		return fault.Wrap(fault.KindStore, "init patient hash", err)
	}
	return nil
}

func (r *repoRedis) MigrateLegacy(ctx context.Context, targetClinicID string) (bool, error) {
	patients, err := r.store.HGetAll(ctx, kvstore.LegacyPatientsKey)
	if err != nil {
		return false, fault.Wrap(fault.KindStore, "read legacy patients", err)
	}
	waiting, err := r.store.LRange(ctx, kvstore.LegacyWaitingRoomKey)
	if err != nil {
		return false, fault.Wrap(fault.KindStore, "read legacy waiting room", err)
	}
	doctor, err := r.store.LRange(ctx, kvstore.LegacyDoctorRoomKey)
	if err != nil {
		return false, fault.Wrap(fault.KindStore, "read legacy doctor room", err)
	}
	if len(patients) == 0 && len(waiting) == 0 && len(doctor) == 0 {
		return false, nil
	}

	// Only one process may perform the copy; later starters see the flag
	// and leave the keys alone.
	acquired, err := r.store.SetNX(ctx, kvstore.MigrationFlagKey,
		strconv.FormatInt(time.Now().UnixMilli(), 10))
	if err != nil {
		return false, fault.Wrap(fault.KindStore, "acquire migration flag", err)
	}
	if !acquired {
		return false, nil
	}

	keys := kvstore.ClinicKeys(targetClinicID)
	for field, blob := range patients {
		if err := r.store.HSet(ctx, keys.Patients, field, blob); err != nil {
			return false, fault.Wrap(fault.KindStore, "copy legacy patient", err)
		}
	}
	// Push tail-first so head order survives the copy.
	for i := len(waiting) - 1; i >= 0; i-- {
		if err := r.store.LPush(ctx, keys.WaitingRoom, waiting[i]); err != nil {
			return false, fault.Wrap(fault.KindStore, "copy legacy waiting room", err)
		}
	}
	for i := len(doctor) - 1; i >= 0; i-- {
		if err := r.store.LPush(ctx, keys.DoctorRoom, doctor[i]); err != nil {
			return false, fault.Wrap(fault.KindStore, "copy legacy doctor room", err)
		}
	}

	if err := r.store.Del(ctx, kvstore.LegacyPatientsKey,
		kvstore.LegacyWaitingRoomKey, kvstore.LegacyDoctorRoomKey); err != nil {
		return false, fault.Wrap(fault.KindStore, "delete legacy keys", err)
	}
	return true, nil
}

func (r *repoRedis) Clear(ctx context.Context, clinicID string) error {
	keys := kvstore.ClinicKeys(clinicID)
	if err := r.store.Del(ctx, keys.Patients, keys.WaitingRoom, keys.DoctorRoom); err != nil {
		return fault.Wrap(fault.KindStore, "clear clinic keyspace", err)
	}
	return nil
}

func (r *repoRedis) Dump(ctx context.Context, clinicID string) (*Dump, error) {
	keys := kvstore.ClinicKeys(clinicID)
	count, err := r.store.HLen(ctx, keys.Patients)
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, "count patients", err)
	}
	waiting, err := r.store.LRange(ctx, keys.WaitingRoom)
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, "read waiting room", err)
	}
	doctor, err := r.store.LRange(ctx, keys.DoctorRoom)
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, "read doctor room", err)
	}
	return &Dump{
		Keys:         []string{keys.Patients, keys.WaitingRoom, keys.DoctorRoom},
		PatientCount: count,
		WaitingRoom:  waiting,
		DoctorRoom:   doctor,
	}, nil
}
