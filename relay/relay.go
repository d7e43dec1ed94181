// Package relay forwards contact and consultation form submissions to the
// configured downstream providers. Delivery guarantees belong to the
// providers; the relay never retries.
package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Form names accepted by the site.
const (
	FormContact      = "contact"
	FormConsultation = "consultation"
)

// Input limits for a submission.
const (
	MaxFields     = 32
	MaxFieldLen   = 5000
	maxKeyLen     = 64
	hiddenPrefix  = "_"
	truncatedMark = "…"
)

var (
	// ErrEmpty is returned for a submission with no non-blank fields.
	ErrEmpty = errors.New("relay: empty submission")
	// ErrTooManyFields is returned when a submission exceeds MaxFields.
	ErrTooManyFields = errors.New("relay: too many fields")
	// ErrUnknownForm is returned for a form name the site does not serve.
	ErrUnknownForm = errors.New("relay: unknown form")
)

// Submission is one form post as handed to providers.
type Submission struct {
	ID         string            `json:"id"`
	Form       string            `json:"form"`
	Fields     map[string]string `json:"fields"`
	RemoteIP   string            `json:"remoteIp,omitempty"`
	UserAgent  string            `json:"userAgent,omitempty"`
	ReceivedAt time.Time         `json:"receivedAt"`
}

// NewSubmission normalizes fields and stamps a new submission. Keys are
// trimmed and lowercased, hidden keys (leading underscore, e.g. the CSRF
// token) and blank values are dropped, and long values are truncated.
func NewSubmission(form string, fields map[string]string, receivedAt time.Time) (Submission, error) {
	if form != FormContact && form != FormConsultation {
		return Submission{}, fmt.Errorf("%w: %q", ErrUnknownForm, form)
	}
	if len(fields) > MaxFields {
		return Submission{}, ErrTooManyFields
	}
	clean := make(map[string]string, len(fields))
	for k, v := range fields {
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k == "" || v == "" || strings.HasPrefix(k, hiddenPrefix) || len(k) > maxKeyLen {
			continue
		}
		if utf8.RuneCountInString(v) > MaxFieldLen {
			v = string([]rune(v)[:MaxFieldLen]) + truncatedMark
		}
		clean[k] = v
	}
	if len(clean) == 0 {
		return Submission{}, ErrEmpty
	}
	return Submission{
		ID:         uuid.NewString(),
		Form:       form,
		Fields:     clean,
		ReceivedAt: receivedAt.UTC(),
	}, nil
}

// Provider delivers a submission to one downstream system.
type Provider interface {
	Name() string
	Deliver(ctx context.Context, s Submission) error
}

// Relay fans a submission out to every provider.
type Relay struct {
	providers []Provider
}

// New returns a relay over providers. With no providers Deliver is a no-op.
func New(providers ...Provider) *Relay {
	return &Relay{providers: providers}
}

// Providers returns the provider names in registration order.
func (r *Relay) Providers() []string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return names
}

// Deliver sends s to all providers concurrently and returns the first
// failure. Providers still running when one fails see ctx cancelled.
func (r *Relay) Deliver(ctx context.Context, s Submission) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range r.providers {
		g.Go(func() error {
			if err := p.Deliver(ctx, s); err != nil {
				return fmt.Errorf("relay %s: %w", p.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
