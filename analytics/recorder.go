package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/eringen/devopsite/content"
)

// DedupeWindow is how long repeat views of a post by the same visitor are
// ignored.
const DedupeWindow = 30 * time.Minute

// Visit describes one post page request.
type Visit struct {
	Slug      string
	IP        string
	UserAgent string
	DNT       bool
	At        time.Time
}

// Recorder filters post page requests and counts the ones that are real,
// first-in-window views.
type Recorder struct {
	store  *Store
	salt   string
	dedupe *rateLimiter
}

// NewRecorder prepares a recorder backed by store.
func NewRecorder(ctx context.Context, store *Store) (*Recorder, error) {
	salt, err := store.Salt(ctx)
	if err != nil {
		return nil, fmt.Errorf("init recorder: %w", err)
	}
	return &Recorder{
		store:  store,
		salt:   salt,
		dedupe: newRateLimiter(1, DedupeWindow),
	}, nil
}

// Record counts v unless the client sent Do Not Track, looks like a bot,
// or viewed the same post within DedupeWindow. It reports whether the view
// was counted.
func (r *Recorder) Record(ctx context.Context, v Visit) (bool, error) {
	if v.Slug == "" || v.DNT || IsBot(v.UserAgent) {
		return false, nil
	}
	if !r.dedupe.allow(visitorKey(r.salt, v.IP, v.UserAgent, v.Slug)) {
		return false, nil
	}
	if v.At.IsZero() {
		v.At = time.Now()
	}
	if err := r.store.RecordView(ctx, v.Slug, v.At); err != nil {
		return false, err
	}
	return true, nil
}

// Signals delegates to the store.
func (r *Recorder) Signals(ctx context.Context, now time.Time, window time.Duration) (content.Signals, error) {
	return r.store.Signals(ctx, now, window)
}

// Close stops the recorder's background cleanup. The store stays open.
func (r *Recorder) Close() {
	r.dedupe.close()
}
