package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/viajastore/backend/internal/domain"
	"github.com/viajastore/backend/internal/repo"
	"github.com/viajastore/backend/internal/slug"
)

const (
	// MaxSuffix is the highest numeric disambiguator tried before falling
	// back to a millisecond timestamp.
	MaxSuffix = 100

	// maxWriteAttempts bounds how often a write is retried after losing a
	// slug race to a concurrent writer.
	maxWriteAttempts = 3

	// stampWidth is the room a "-<unix millis>" suffix needs.
	stampWidth = 14
)

// SlugReserver holds short-lived claims on slugs that are about to be written.
// cache.Reserver implements it on Redis.
type SlugReserver interface {
	Reserve(ctx context.Context, c domain.Collection, slug string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, c domain.Collection, slug string) error
}

// SlugGenerator produces slugs that are valid and free in their collection.
//
// It only reads. The check-then-write window is closed by the unique index
// on each slug column together with WriteUnique, which regenerates and
// retries when the write loses a race.
type SlugGenerator struct {
	store    repo.SlugStore
	reserver SlugReserver
	ttl      time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// SlugGeneratorOption configures a SlugGenerator.
type SlugGeneratorOption func(*SlugGenerator)

// WithReserver makes the generator skip slugs reserved by in-flight writes
// and reserve the slug it returns for ttl.
func WithReserver(r SlugReserver, ttl time.Duration) SlugGeneratorOption {
	return func(g *SlugGenerator) {
		g.reserver = r
		g.ttl = ttl
	}
}

// WithClock replaces time.Now for fallback and timestamp suffixes.
func WithClock(now func() time.Time) SlugGeneratorOption {
	return func(g *SlugGenerator) { g.now = now }
}

// WithLogger sets the logger used for fallbacks and retries.
func WithLogger(log *slog.Logger) SlugGeneratorOption {
	return func(g *SlugGenerator) { g.log = log }
}

// NewSlugGenerator constructs a SlugGenerator reading existing slugs from store.
func NewSlugGenerator(store repo.SlugStore, opts ...SlugGeneratorOption) *SlugGenerator {
	g := &SlugGenerator{
		store: store,
		now:   time.Now,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a slug for name that passes slug.IsValid and is not held
// by any other entity of collection c. excludeID, when set, is the id of the
// entity being re-saved: its own current slug does not count as taken.
//
// A name with nothing to slugify falls back to "<prefix>-<unix millis>"
// ("agencia-…", "viagem-…"). Taken slugs get "-2", "-3", … up to MaxSuffix,
// then "-<unix millis>". Store failures are returned wrapped; nothing is
// retried here.
func (g *SlugGenerator) Generate(ctx context.Context, name string, c domain.Collection, excludeID *uuid.UUID) (string, error) {
	if !c.Valid() {
		return "", fmt.Errorf("service.SlugGenerator.Generate: %w: unknown collection %q", domain.ErrValidation, c)
	}

	base := slug.Make(name)
	if base == "" {
		base = c.FallbackPrefix() + "-" + strconv.FormatInt(g.now().UnixMilli(), 10)
		g.log.DebugContext(ctx, "slug fallback for unslugifiable name",
			"collection", c, "name", name, "slug", base)
	}

	existing, err := g.store.ListSlugs(ctx, c, scanPrefix(base), excludeID)
	if err != nil {
		return "", fmt.Errorf("service.SlugGenerator.Generate: %w", err)
	}
	taken := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		taken[s] = struct{}{}
	}

	for n := 1; n <= MaxSuffix+1; n++ {
		candidate := g.candidate(base, n)
		if _, ok := taken[candidate]; ok {
			continue
		}
		if g.claim(ctx, c, candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("service.SlugGenerator.Generate: %w: no free slug for %q", domain.ErrConflict, base)
}

// Release drops the reservation taken by Generate. Call it once the write
// that used the slug has finished, successfully or not.
func (g *SlugGenerator) Release(ctx context.Context, c domain.Collection, s string) {
	if g.reserver == nil {
		return
	}
	if err := g.reserver.Release(ctx, c, s); err != nil {
		g.log.WarnContext(ctx, "slug reservation release failed", "collection", c, "slug", s, "error", err)
	}
}

// WriteUnique generates a slug for name and hands it to write. When write
// fails with domain.ErrConflict (another writer took the slug after it was
// checked) a fresh slug is generated and write is called again, up to
// maxWriteAttempts times.
func (g *SlugGenerator) WriteUnique(ctx context.Context, c domain.Collection, name string, excludeID *uuid.UUID, write func(slug string) error) error {
	for attempt := 1; ; attempt++ {
		s, err := g.Generate(ctx, name, c, excludeID)
		if err != nil {
			return err
		}

		err = write(s)
		g.Release(ctx, c, s)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrConflict) || attempt == maxWriteAttempts {
			return err
		}

		g.log.WarnContext(ctx, "slug taken between check and write; retrying",
			"collection", c, "slug", s, "attempt", attempt)
	}
}

// candidate returns the n-th slug tried for base: base itself, then base-n,
// and finally base-<unix millis>.
func (g *SlugGenerator) candidate(base string, n int) string {
	switch {
	case n == 1:
		return base
	case n <= MaxSuffix:
		return withSuffix(base, strconv.Itoa(n))
	default:
		return withSuffix(base, strconv.FormatInt(g.now().UnixMilli(), 10))
	}
}

// claim reports whether candidate may be used. Without a reserver every
// candidate not in the snapshot is free. Reservation errors are logged and
// ignored: Redis is an optimisation, the unique index is the guarantee.
func (g *SlugGenerator) claim(ctx context.Context, c domain.Collection, candidate string) bool {
	if g.reserver == nil {
		return true
	}
	ok, err := g.reserver.Reserve(ctx, c, candidate, g.ttl)
	if err != nil {
		g.log.WarnContext(ctx, "slug reservation unavailable", "collection", c, "slug", candidate, "error", err)
		return true
	}
	return ok
}

// withSuffix appends "-suffix" to base, shortening base so the result stays
// within slug.MaxLength.
func withSuffix(base, suffix string) string {
	if room := slug.MaxLength - len(suffix) - 1; len(base) > room {
		base = strings.TrimRight(base[:room], "-")
	}
	return base + "-" + suffix
}

// scanPrefix is the prefix every candidate derived from base starts with,
// including ones whose base was shortened by withSuffix.
func scanPrefix(base string) string {
	if limit := slug.MaxLength - stampWidth; len(base) > limit {
		return strings.TrimRight(base[:limit], "-")
	}
	return base
}
