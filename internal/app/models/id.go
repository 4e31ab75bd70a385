package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entity ID prefixes.
const (
	PrefixStudent      = "STU"
	PrefixFaculty      = "FAC"
	PrefixActivity     = "ACT"
	PrefixCertificate  = "CERT"
	PrefixEvent        = "EVT"
	PrefixRegistration = "REG"
	PrefixUser         = "USR"
)

// NewID generates a collision-resistant string ID for the given prefix.
// The millisecond timestamp keeps IDs roughly sortable; the uuid-derived
// suffix keeps an offline client from colliding with itself.
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}
