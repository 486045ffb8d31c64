package teams

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTeam is returned when a team payload fails validation.
var ErrInvalidTeam = errors.New("invalid team")

// Team is a managed club. Logo is an opaque data URL kept for the front-end.
type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo,omitempty"`
}

// Validate checks the required team fields.
func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTeam)
	}
	if strings.TrimSpace(t.Country) == "" {
		return fmt.Errorf("%w: country is required", ErrInvalidTeam)
	}
	return nil
}
