package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestServer() (*echo.Echo, *mockRepo) {
	e := echo.New()
	repo := newMockRepo()
	NewHandler(NewService(repo)).RegisterRoutes(e.Group("/api/v1"))
	return e, repo
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreatePatient(t *testing.T) {
	e, repo := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/v1/patients",
		`{"name":"Jane Doe","phoneNumber":"555-1234","age":30,"gender":"female","clinicId":"acme"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var p Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if p.Status != StatusWaiting {
		t.Errorf("expected waiting, got %s", p.Status)
	}
	if repo.count("acme", RoomWaiting, p.ID) != 1 {
		t.Error("expected patient enqueued in waiting room")
	}
}

func TestHandlerCreatePatient_StringAge(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/v1/patients",
		`{"name":"Jane Doe","phoneNumber":"555-1234","age":"30","gender":"female","clinicId":"acme"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlerCreatePatient_Invalid(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/v1/patients",
		`{"name":"","phoneNumber":"555-1234","age":30,"gender":"female","clinicId":"acme"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerGetPatient_NotFound(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodGet, "/api/v1/patients/patient:nope?clinic=acme", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandlerUpdateStatus(t *testing.T) {
	e, repo := newTestServer()

	p, _ := NewService(repo).Create(context.Background(), "acme",
		CreateInput{Name: "Jane", PhoneNumber: "555-1234", Age: "30", Gender: "female"}, StatusWaiting)

	rec := doJSON(e, http.MethodPatch, "/api/v1/patients/"+p.ID+"/status",
		`{"status":"with-doctor","clinicId":"acme"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.count("acme", RoomDoctor, p.ID) != 1 {
		t.Error("expected patient moved to doctor room")
	}
}

func TestHandlerUpdateMedicalDetails(t *testing.T) {
	e, repo := newTestServer()

	p, _ := NewService(repo).Create(context.Background(), "acme",
		CreateInput{Name: "Jane", PhoneNumber: "555-1234", Age: "30", Gender: "female"}, StatusWithDoctor)

	rec := doJSON(e, http.MethodPut, "/api/v1/patients/"+p.ID+"/medical",
		`{"clinicId":"acme","diagnosis":"flu","prescription":"rest"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.MedicalDetails == nil || got.MedicalDetails.Diagnosis != "flu" {
		t.Errorf("unexpected details: %+v", got.MedicalDetails)
	}
}

func TestHandlerDeletePatient(t *testing.T) {
	e, repo := newTestServer()

	p, _ := NewService(repo).Create(context.Background(), "acme",
		CreateInput{Name: "Jane", PhoneNumber: "555-1234", Age: "30", Gender: "female"}, StatusWaiting)

	rec := doJSON(e, http.MethodDelete, "/api/v1/patients/"+p.ID+"?clinic=acme", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := repo.patients["acme"][p.ID]; ok {
		t.Error("expected patient removed")
	}
}

func TestHandlerListWaitingRoom(t *testing.T) {
	e, repo := newTestServer()

	NewService(repo).Create(context.Background(), "acme",
		CreateInput{Name: "Jane", PhoneNumber: "555-1234", Age: "30", Gender: "female"}, StatusWaiting)

	rec := doJSON(e, http.MethodGet, "/api/v1/waiting-room?clinic=acme", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var patients []*Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &patients); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(patients) != 1 {
		t.Errorf("expected 1 patient, got %d", len(patients))
	}
}

func TestHandlerPatientHistory_MissingParams(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodGet, "/api/v1/patient-history?clinic=acme&name=Jane", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
