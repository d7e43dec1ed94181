package relay

import (
	"context"

	"github.com/rs/zerolog"
)

// LogProvider acknowledges submissions by logging them. It stands in for a
// real provider in development.
type LogProvider struct {
	logger zerolog.Logger
}

func NewLogProvider(logger zerolog.Logger) *LogProvider {
	return &LogProvider{logger: logger}
}

func (p *LogProvider) Name() string { return "log" }

func (p *LogProvider) Deliver(_ context.Context, s Submission) error {
	p.logger.Info().
		Str("id", s.ID).
		Str("form", s.Form).
		Int("fields", len(s.Fields)).
		Time("received_at", s.ReceivedAt).
		Msg("form submission")
	return nil
}
