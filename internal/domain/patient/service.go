package patient

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
)

// Service owns the queue state machine. Each operation issues a short chain
// of independent store commands; there is deliberately no cross-command
// locking, so concurrent writers on the same patient can interleave. The
// store layer's per-command atomicity is the only guarantee relied on.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the front-desk form fields. Age arrives as entered so
// the service can report a malformed value as a validation failure.
type CreateInput struct {
	Name        string
	PhoneNumber string
	Age         string
	Gender      string
}

func (s *Service) Create(ctx context.Context, clinicID string, in CreateInput, initial Status) (*Patient, error) {
	if clinicID == "" {
		return nil, fault.New(fault.KindValidation, "clinic ID is required")
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.PhoneNumber) == "" || strings.TrimSpace(in.Gender) == "" {
		return nil, fault.New(fault.KindValidation, "name, phone number, age and gender are all required")
	}
	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil || age < 0 {
		return nil, fault.New(fault.KindValidation, "age must be a non-negative number")
	}
	if initial == "" {
		initial = StatusWaiting
	}
	if !initial.Valid() {
		return nil, fault.Newf(fault.KindValidation, "invalid status: %s", initial)
	}

	p := &Patient{
		ID:          NewID(),
		Name:        strings.TrimSpace(in.Name),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Age:         age,
		Gender:      strings.TrimSpace(in.Gender),
		Status:      initial,
		CreatedAt:   time.Now().UnixMilli(),
		ClinicID:    clinicID,
	}

	if err := s.repo.Put(ctx, clinicID, p); err != nil {
		return nil, err
	}
	switch initial {
	case StatusWaiting:
		if err := s.repo.PushRoom(ctx, clinicID, RoomWaiting, p.ID); err != nil {
			return nil, err
		}
	case StatusWithDoctor:
		// Doctor-initiated add skips the waiting room entirely.
		if err := s.repo.PushRoom(ctx, clinicID, RoomDoctor, p.ID); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// TransitionStatus updates the stored status and recomputes room-list
// membership from the (old, new) pair rather than trusting the caller to
// request only the two normal transitions.
func (s *Service) TransitionStatus(ctx context.Context, clinicID, id string, newStatus Status) (*Patient, error) {
	if !newStatus.Valid() {
		return nil, fault.Newf(fault.KindValidation, "invalid status: %s", newStatus)
	}
	id = DecodeID(id)

	p, err := s.repo.Get(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	oldStatus := p.Status
	p.Status = newStatus
	if err := s.repo.Put(ctx, clinicID, p); err != nil {
		return nil, err
	}

	if oldStatus == newStatus {
		return p, nil
	}

	switch oldStatus {
	case StatusWaiting:
		if err := s.repo.RemoveFromRoom(ctx, clinicID, RoomWaiting, id); err != nil {
			return nil, err
		}
	case StatusWithDoctor:
		if err := s.repo.RemoveFromRoom(ctx, clinicID, RoomDoctor, id); err != nil {
			return nil, err
		}
	}

	switch newStatus {
	case StatusWaiting:
		if err := s.pushOnce(ctx, clinicID, RoomWaiting, id); err != nil {
			return nil, err
		}
	case StatusWithDoctor:
		if err := s.pushOnce(ctx, clinicID, RoomDoctor, id); err != nil {
			return nil, err
		}
	}
	// Entering completed joins no list.
	return p, nil
}

// pushOnce clears any stale occurrence before pushing, keeping list
// membership exactly-once even when a previous partial write left one
// behind.
func (s *Service) pushOnce(ctx context.Context, clinicID string, room Room, id string) error {
	if err := s.repo.RemoveFromRoom(ctx, clinicID, room, id); err != nil {
		return err
	}
	return s.repo.PushRoom(ctx, clinicID, room, id)
}

// DetailsInput carries a partial medical-details update. Empty fields leave
// the stored value untouched.
type DetailsInput struct {
	Symptoms     string
	Diagnosis    string
	Prescription string
	Notes        string
	Attachments  []FileAttachment
}

func (s *Service) RecordMedicalDetails(ctx context.Context, clinicID, id string, in DetailsInput) (*Patient, error) {
	id = DecodeID(id)

	p, err := s.repo.Get(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	md := p.MedicalDetails
	if md == nil {
		md = &MedicalDetails{}
	}
	if in.Symptoms != "" {
		md.Symptoms = in.Symptoms
	}
	if in.Diagnosis != "" {
		md.Diagnosis = in.Diagnosis
	}
	if in.Prescription != "" {
		md.Prescription = in.Prescription
	}
	if in.Notes != "" {
		md.Notes = in.Notes
	}
	if len(in.Attachments) > 0 {
		md.Attachments = in.Attachments
	}
	md.UpdatedAt = time.Now().UnixMilli()
	p.MedicalDetails = md

	if err := s.repo.Put(ctx, clinicID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the record and clears the ID from both room lists.
// Removing an absent list entry is a no-op, so a patient that drifted out
// of one list still deletes cleanly.
func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	id = DecodeID(id)

	if _, err := s.repo.Get(ctx, clinicID, id); err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, clinicID, id); err != nil {
		return err
	}
	if err := s.repo.RemoveFromRoom(ctx, clinicID, RoomWaiting, id); err != nil {
		return err
	}
	return s.repo.RemoveFromRoom(ctx, clinicID, RoomDoctor, id)
}

func (s *Service) Get(ctx context.Context, clinicID, id string) (*Patient, error) {
	return s.repo.Get(ctx, clinicID, DecodeID(id))
}

func (s *Service) ListWaiting(ctx context.Context, clinicID string) ([]*Patient, error) {
	return s.listRoom(ctx, clinicID, RoomWaiting)
}

func (s *Service) ListWithDoctor(ctx context.Context, clinicID string) ([]*Patient, error) {
	return s.listRoom(ctx, clinicID, RoomDoctor)
}

// listRoom resolves the room list against the patient hash. A list entry
// with no matching hash row is skipped, not raised: the lists are index
// structures and may lag behind an interleaved write.
func (s *Service) listRoom(ctx context.Context, clinicID string, room Room) ([]*Patient, error) {
	ids, err := s.repo.RoomIDs(ctx, clinicID, room)
	if err != nil {
		return nil, err
	}
	patients := make([]*Patient, 0, len(ids))
	for _, id := range ids {
		p, err := s.repo.Get(ctx, clinicID, DecodeID(id))
		if err != nil {
			if fault.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, nil
}

// FindHistory returns the clinic's past visits for an exact name and phone
// match, newest first. Only records a doctor actually wrote to count as
// history.
func (s *Service) FindHistory(ctx context.Context, clinicID, name, phone string) ([]*Patient, error) {
	if name == "" || phone == "" {
		return nil, fault.New(fault.KindValidation, "name and phone number are required")
	}

	all, err := s.repo.All(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	var matches []*Patient
	for _, p := range all {
		if p.Name == name && p.PhoneNumber == phone && p.MedicalDetails != nil {
			matches = append(matches, p)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].LastUpdated() > matches[j].LastUpdated()
	})
	return matches, nil
}
