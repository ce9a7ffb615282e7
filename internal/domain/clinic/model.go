package clinic

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clinic is a tenant in the directory. Admin credentials are stored as
// given; both front-desk roles authenticate against the same pair.
type Clinic struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	AdminUsername string `json:"adminUsername"`
	AdminPassword string `json:"adminPassword,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
}

// Summary is the credential-free projection served to the login picker.
type Summary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Registered clinics carry a "clinic:" ID prefix; bare IDs like "clinic1"
// belong to the legacy fallback set.
const IDPrefix = "clinic:"

// IsRegisteredID reports whether the ID refers to a directory entry rather
// than a legacy fallback clinic.
func IsRegisteredID(id string) bool {
	return strings.HasPrefix(id, IDPrefix)
}

// NewID mirrors the patient ID shape: creation timestamp plus a short
// random suffix.
func NewID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s%d-%s", IDPrefix, time.Now().UnixMilli(), suffix)
}
