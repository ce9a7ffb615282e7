package auth

import (
	"context"
	"testing"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/clinic"
	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
)

type mockDirectory struct {
	clinics map[string]*clinic.Clinic
}

func (m *mockDirectory) ByID(_ context.Context, id string) (*clinic.Clinic, error) {
	c, ok := m.clinics[id]
	if !ok {
		return nil, fault.Newf(fault.KindClinicNotFound, "clinic %s not found", id)
	}
	return c, nil
}

func newTestService() *Service {
	dir := &mockDirectory{clinics: map[string]*clinic.Clinic{
		"clinic:100-abcdef": {
			ID:            "clinic:100-abcdef",
			Name:          "Riverside Clinic",
			AdminUsername: "frontdesk",
			AdminPassword: "s3cret",
		},
	}}
	return NewService(dir, "test-secret")
}

func TestAuthenticate_RegisteredClinic(t *testing.T) {
	svc := newTestService()

	session, err := svc.Authenticate(context.Background(), "clinic:100-abcdef", RoleDoctor, "frontdesk", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Token == "" {
		t.Error("expected a session token")
	}
	if session.RedirectURL != "/doctor-dashboard?clinic=clinic%3A100-abcdef" {
		t.Errorf("unexpected redirect: %s", session.RedirectURL)
	}
	if session.ExpiresAt <= time.Now().UnixMilli() {
		t.Error("expected expiry in the future")
	}

	claims, err := svc.VerifySession(session.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Clinic != "clinic:100-abcdef" || claims.Role != RoleDoctor {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthenticate_ReceptionistRedirect(t *testing.T) {
	svc := newTestService()

	session, err := svc.Authenticate(context.Background(), "clinic1", RoleReceptionist, "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.RedirectURL != "/receptionist-dashboard?clinic=clinic1" {
		t.Errorf("unexpected redirect: %s", session.RedirectURL)
	}
}

func TestAuthenticate_LegacyFallback(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, id := range []string{"clinic1", "clinic2", "clinic3"} {
		if _, err := svc.Authenticate(ctx, id, RoleDoctor, "admin", "admin123"); err != nil {
			t.Errorf("%s: unexpected error: %v", id, err)
		}
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := newTestService()

	_, err := svc.Authenticate(context.Background(), "clinic:100-abcdef", RoleDoctor, "frontdesk", "wrong")
	if fault.KindOf(err) != fault.KindInvalidCredentials {
		t.Fatalf("expected invalid-credentials, got %v", err)
	}
	// The rejection message never reveals which half was wrong.
	if fault.DisplayMessage(err) != invalidCredentialsMsg {
		t.Errorf("unexpected message: %s", fault.DisplayMessage(err))
	}

	_, err = svc.Authenticate(context.Background(), "clinic:100-abcdef", RoleDoctor, "wronguser", "s3cret")
	if fault.KindOf(err) != fault.KindInvalidCredentials {
		t.Fatalf("expected invalid-credentials, got %v", err)
	}
	if fault.DisplayMessage(err) != invalidCredentialsMsg {
		t.Errorf("unexpected message: %s", fault.DisplayMessage(err))
	}
}

func TestAuthenticate_UnknownClinic(t *testing.T) {
	svc := newTestService()

	_, err := svc.Authenticate(context.Background(), "clinic:999-zzzzzz", RoleDoctor, "a", "b")
	if fault.KindOf(err) != fault.KindClinicNotFound {
		t.Errorf("expected clinic-not-found for registered-style ID, got %v", err)
	}

	_, err = svc.Authenticate(context.Background(), "clinic9", RoleDoctor, "admin", "admin123")
	if fault.KindOf(err) != fault.KindClinicNotFound {
		t.Errorf("expected clinic-not-found for unknown legacy ID, got %v", err)
	}
}

func TestAuthenticate_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx, "", RoleDoctor, "a", "b"); !fault.IsValidation(err) {
		t.Errorf("expected validation error for missing clinic, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "clinic1", Role("janitor"), "a", "b"); !fault.IsValidation(err) {
		t.Errorf("expected validation error for unknown role, got %v", err)
	}
}

func TestVerifySession_RejectsTampering(t *testing.T) {
	svc := newTestService()

	session, err := svc.Authenticate(context.Background(), "clinic1", RoleDoctor, "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewService(&mockDirectory{clinics: map[string]*clinic.Clinic{}}, "different-secret")
	if _, err := other.VerifySession(session.Token); err == nil {
		t.Error("expected verification to fail under a different secret")
	}
	if _, err := svc.VerifySession(session.Token + "x"); err == nil {
		t.Error("expected verification to fail for a mangled token")
	}
}
