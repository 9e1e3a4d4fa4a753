package fpl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/quarterly/internal/domain/model"
)

// ErrTooManyPages is returned when the standings keep reporting another page.
var ErrTooManyPages = errors.New("standings pagination did not terminate")

// ProviderError describes a failed call to the fantasy API. It matches
// model.ErrProviderUnavailable under errors.Is.
type ProviderError struct {
	Op            string
	LeagueID      string
	ParticipantID int
	StatusCode    int
	Err           error
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	b.WriteString("fpl ")
	b.WriteString(e.Op)
	if e.LeagueID != "" {
		fmt.Fprintf(&b, " league %s", e.LeagueID)
	}
	if e.ParticipantID != 0 {
		fmt.Fprintf(&b, " entry %d", e.ParticipantID)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{model.ErrProviderUnavailable}
	}
	return []error{model.ErrProviderUnavailable, e.Err}
}
