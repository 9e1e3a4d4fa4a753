package service

import (
	"errors"
	"fmt"

	"github.com/okian/quarterly/internal/domain/calendar"
	"github.com/okian/quarterly/internal/domain/model"
)

// Sentinel errors returned by Service queries.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrUnknownQuarter  = calendar.ErrUnknownQuarter
	ErrMissingProvider = errors.New("provider not configured")
)

// providerErr makes sure err matches model.ErrProviderUnavailable.
func providerErr(op string, err error) error {
	if errors.Is(err, model.ErrProviderUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, model.ErrProviderUnavailable, err)
}
