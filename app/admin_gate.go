package app

import (
	"strings"

	"resultdesk/internal/errors"
)

// MsgIncorrectPasskey is returned for a wrong admin passkey
const MsgIncorrectPasskey = "Incorrect passkey."

// AdminGate checks the static admin passkey. It only hides the upload panel
// from students and is not an authentication mechanism.
type AdminGate struct {
	passkey string
}

// NewAdminGate creates a gate for the configured passkey
func NewAdminGate(passkey string) *AdminGate {
	return &AdminGate{passkey: strings.TrimSpace(passkey)}
}

// Verify compares the trimmed entry with the passkey
func (g *AdminGate) Verify(entered string) error {
	if strings.TrimSpace(entered) != g.passkey {
		return errors.Unauthorized(MsgIncorrectPasskey)
	}
	return nil
}
