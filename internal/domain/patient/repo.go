package patient

import "context"

// Room selects one of the two ordered queue lists.
type Room string

const (
	RoomWaiting Room = "waiting"
	RoomDoctor  Room = "doctor"
)

// Repository owns the per-clinic patient hash and room lists. Get reports a
// missing patient as a fault.KindNotFound error so callers can distinguish
// absence from store failure.
type Repository interface {
	Put(ctx context.Context, clinicID string, p *Patient) error
	Get(ctx context.Context, clinicID, id string) (*Patient, error)
	All(ctx context.Context, clinicID string) ([]*Patient, error)
	Remove(ctx context.Context, clinicID, id string) error

	PushRoom(ctx context.Context, clinicID string, room Room, id string) error
	RemoveFromRoom(ctx context.Context, clinicID string, room Room, id string) error
	RoomIDs(ctx context.Context, clinicID string, room Room) ([]string, error)
}
