package patient

import (
	"context"
	"sort"

	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
	"github.com/clinicdesk/clinicdesk/internal/platform/kvstore"
)

type repoRedis struct {
	store kvstore.Store
}

func NewRepo(store kvstore.Store) Repository {
	return &repoRedis{store: store}
}

func (r *repoRedis) roomKey(clinicID string, room Room) string {
	keys := kvstore.ClinicKeys(clinicID)
	if room == RoomDoctor {
		return keys.DoctorRoom
	}
	return keys.WaitingRoom
}

func (r *repoRedis) Put(ctx context.Context, clinicID string, p *Patient) error {
	blob, err := kvstore.EncodeRecord(p)
	if err != nil {
		return fault.Wrap(fault.KindStore, "encode patient record", err)
	}
	keys := kvstore.ClinicKeys(clinicID)
	if err := r.store.HSet(ctx, keys.Patients, p.ID, blob); err != nil {
		return fault.Wrap(fault.KindStore, "write patient record", err)
	}
	return nil
}

func (r *repoRedis) Get(ctx context.Context, clinicID, id string) (*Patient, error) {
	keys := kvstore.ClinicKeys(clinicID)
	raw, found, err := r.store.HGet(ctx, keys.Patients, id)
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, "read patient record", err)
	}
	if !found {
		return nil, fault.Newf(fault.KindNotFound, "patient %s not found", id)
	}
	var p Patient
	if err := kvstore.DecodeRecord(raw, &p); err != nil {
		return nil, fault.Wrap(fault.KindStore, "decode patient record", err)
	}
	return &p, nil
}

// All returns every patient in the clinic, sorted by ID so enumeration
// order is stable across calls.
func (r *repoRedis) All(ctx context.Context, clinicID string) ([]*Patient, error) {
	keys := kvstore.ClinicKeys(clinicID)
	entries, err := r.store.HGetAll(ctx, keys.Patients)
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, "read patient records", err)
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	patients := make([]*Patient, 0, len(entries))
	for _, id := range ids {
		var p Patient
		if err := kvstore.DecodeRecord(entries[id], &p); err != nil {
			// Undecodable rows are skipped, matching the lenient read
			// policy for drifted data.
			continue
		}
		patients = append(patients, &p)
	}
	return patients, nil
}

func (r *repoRedis) Remove(ctx context.Context, clinicID, id string) error {
	keys := kvstore.ClinicKeys(clinicID)
	if err := r.store.HDel(ctx, keys.Patients, id); err != nil {
		return fault.Wrap(fault.KindStore, "delete patient record", err)
	}
	return nil
}

func (r *repoRedis) PushRoom(ctx context.Context, clinicID string, room Room, id string) error {
	if err := r.store.LPush(ctx, r.roomKey(clinicID, room), id); err != nil {
		return fault.Wrap(fault.KindStore, "push to room list", err)
	}
	return nil
}

func (r *repoRedis) RemoveFromRoom(ctx context.Context, clinicID string, room Room, id string) error {
	if err := r.store.LRem(ctx, r.roomKey(clinicID, room), id); err != nil {
		return fault.Wrap(fault.KindStore, "remove from room list", err)
	}
	return nil
}

func (r *repoRedis) RoomIDs(ctx context.Context, clinicID string, room Room) ([]string, error) {
	ids, err := r.store.LRange(ctx, r.roomKey(clinicID, room))
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, "read room list", err)
	}
	return ids, nil
}
