package patient

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the visit lifecycle state. A patient moves
// waiting → with-doctor → completed; deletion is the only other exit.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusWithDoctor Status = "with-doctor"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusWithDoctor, StatusCompleted:
		return true
	}
	return false
}

// Patient is stored as one JSON blob in the clinic's patient hash, keyed by
// ID. The hash is the source of truth; the room lists only order IDs.
type Patient struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	PhoneNumber    string          `json:"phoneNumber"`
	Age            int             `json:"age"`
	Gender         string          `json:"gender"`
	Status         Status          `json:"status"`
	CreatedAt      int64           `json:"createdAt"`
	ClinicID       string          `json:"clinicId"`
	MedicalDetails *MedicalDetails `json:"medicalDetails,omitempty"`
}

// MedicalDetails is doctor-authored and merge-updated: new non-empty fields
// overlay old ones, omitted fields survive.
type MedicalDetails struct {
	Symptoms     string           `json:"symptoms,omitempty"`
	Diagnosis    string           `json:"diagnosis,omitempty"`
	Prescription string           `json:"prescription,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	UpdatedAt    int64            `json:"updatedAt,omitempty"`
	Attachments  []FileAttachment `json:"attachments,omitempty"`
}

// FileAttachment carries metadata only; file bytes live outside the store.
type FileAttachment struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Size         int64  `json:"size"`
	LastModified int64  `json:"lastModified"`
	ContentType  string `json:"contentType"`
	Timestamp    int64  `json:"timestamp"`
}

// LastUpdated is the history sort key: the medical-details timestamp when
// present, the creation timestamp otherwise.
func (p *Patient) LastUpdated() int64 {
	if p.MedicalDetails != nil && p.MedicalDetails.UpdatedAt > 0 {
		return p.MedicalDetails.UpdatedAt
	}
	return p.CreatedAt
}

// NewID builds a patient identifier from the creation time plus a random
// suffix, so rapid concurrent creation within one millisecond cannot
// collide.
func NewID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("patient:%d-%s", time.Now().UnixMilli(), suffix)
}

// DecodeID percent-decodes an identifier that traveled through a URL path
// segment. An identifier that was never encoded passes through unchanged.
func DecodeID(id string) string {
	decoded, err := url.PathUnescape(id)
	if err != nil {
		return id
	}
	return decoded
}
