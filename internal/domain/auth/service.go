package auth

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinicdesk/internal/domain/clinic"
	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
)

// invalidCredentialsMsg deliberately does not say whether the username or
// the password was wrong.
const invalidCredentialsMsg = "invalid username or password"

const sessionTTL = 12 * time.Hour

type legacyCredential struct {
	username string
	password string
}

// Clinics from before self-service signup authenticate against this fixed
// table instead of the directory.
var legacyCredentials = map[string]legacyCredential{
	"clinic1": {username: "admin", password: "admin123"},
	"clinic2": {username: "admin", password: "admin123"},
	"clinic3": {username: "admin", password: "admin123"},
}

// Directory is the clinic lookup the authenticator needs.
type Directory interface {
	ByID(ctx context.Context, id string) (*clinic.Clinic, error)
}

type Service struct {
	directory Directory
	secret    []byte
}

func NewService(directory Directory, secret string) *Service {
	return &Service{directory: directory, secret: []byte(secret)}
}

// Authenticate checks the credential pair for the clinic and role and, on
// success, issues a session with the role's dashboard redirect.
func (s *Service) Authenticate(ctx context.Context, clinicID string, role Role, username, password string) (*Session, error) {
	clinicID = strings.TrimSpace(clinicID)
	if clinicID == "" {
		return nil, fault.New(fault.KindValidation, "clinic is required")
	}
	if !role.Valid() {
		return nil, fault.Newf(fault.KindValidation, "unknown role %q", role)
	}

	wantUser, wantPass, err := s.lookupCredentials(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if username != wantUser || password != wantPass {
		log.Warn().Str("clinic", clinicID).Str("role", string(role)).Msg("login rejected")
		return nil, fault.New(fault.KindInvalidCredentials, invalidCredentialsMsg)
	}

	token, expires, err := signToken(s.secret, clinicID, role, sessionTTL, time.Now())
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, "sign session token", err)
	}
	return &Session{
		Token:       token,
		RedirectURL: redirectFor(role, clinicID),
		Clinic:      clinicID,
		Role:        role,
		ExpiresAt:   expires,
	}, nil
}

func (s *Service) lookupCredentials(ctx context.Context, clinicID string) (string, string, error) {
	if clinic.IsRegisteredID(clinicID) {
		c, err := s.directory.ByID(ctx, clinicID)
		if err != nil {
			return "", "", err
		}
		return c.AdminUsername, c.AdminPassword, nil
	}
	cred, ok := legacyCredentials[clinicID]
	if !ok {
		return "", "", fault.Newf(fault.KindClinicNotFound, "clinic %s not found", clinicID)
	}
	return cred.username, cred.password, nil
}

// VerifySession parses and validates a session token.
func (s *Service) VerifySession(raw string) (*Claims, error) {
	return ParseToken(s.secret, raw)
}

func redirectFor(role Role, clinicID string) string {
	base := "/receptionist-dashboard"
	if role == RoleDoctor {
		base = "/doctor-dashboard"
	}
	return base + "?clinic=" + url.QueryEscape(clinicID)
}
