package clinic

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
)

// legacySummaries is served when the directory hash is empty, covering
// installs that predate self-service signup.
var legacySummaries = []*Summary{
	{ID: "clinic1", Name: "City Health Center"},
	{ID: "clinic2", Name: "Community Medical Clinic"},
	{ID: "clinic3", Name: "Family Care Practice"},
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Name          string
	Address       string
	Phone         string
	Email         string
	AdminUsername string
	AdminPassword string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Clinic, error) {
	name := strings.TrimSpace(in.Name)
	username := strings.TrimSpace(in.AdminUsername)
	if name == "" || username == "" || in.AdminPassword == "" {
		return nil, fault.New(fault.KindValidation, "clinic name, admin username and password are required")
	}

	c := &Clinic{
		ID:            NewID(),
		Name:          name,
		Address:       strings.TrimSpace(in.Address),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		AdminUsername: username,
		AdminPassword: in.AdminPassword,
		CreatedAt:     time.Now().UnixMilli(),
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	if err := s.repo.InitPatients(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) All(ctx context.Context) ([]*Clinic, error) {
	return s.repo.All(ctx)
}

func (s *Service) ByID(ctx context.Context, id string) (*Clinic, error) {
	return s.repo.Get(ctx, id)
}

// Summaries lists clinics for the login picker with credentials stripped.
func (s *Service) Summaries(ctx context.Context) ([]*Summary, error) {
	clinics, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(clinics) == 0 {
		return legacySummaries, nil
	}
	summaries := make([]*Summary, 0, len(clinics))
	for _, c := range clinics {
		summaries = append(summaries, &Summary{ID: c.ID, Name: c.Name, Address: c.Address})
	}
	return summaries, nil
}

// MigrateLegacyData folds pre-tenancy keys into the target clinic. Safe to
// call on every startup.
func (s *Service) MigrateLegacyData(ctx context.Context, targetClinicID string) (bool, error) {
	migrated, err := s.repo.MigrateLegacy(ctx, targetClinicID)
	if err != nil {
		return false, err
	}
	if migrated {
		log.Info().Str("clinic", targetClinicID).Msg("legacy keys migrated")
	}
	return migrated, nil
}

func (s *Service) ClearClinicData(ctx context.Context, clinicID string) error {
	if strings.TrimSpace(clinicID) == "" {
		return fault.New(fault.KindValidation, "clinic is required")
	}
	return s.repo.Clear(ctx, clinicID)
}

func (s *Service) DumpClinic(ctx context.Context, clinicID string) (*Dump, error) {
	if strings.TrimSpace(clinicID) == "" {
		return nil, fault.New(fault.KindValidation, "clinic is required")
	}
	return s.repo.Dump(ctx, clinicID)
}
