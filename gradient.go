package daylog

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"time"
)

// gradientCacheKey names the stored daily gradient choice. Bump the suffix
// when the record shape changes.
const gradientCacheKey = "daylog-gradient-v1"

const dateKeyLayout = "2006-01-02"

type gradientChoice struct {
	Date  string `json:"date"`
	Index *int   `json:"index"`
}

// GradientPicker selects one gradient per calendar day and remembers the
// choice in a ChoiceStore, so every load on the same day sees the same one.
type GradientPicker struct {
	Store    ChoiceStore
	Now      func() time.Time
	Location *time.Location
	// IntN returns a uniform integer in [0, n).
	IntN func(n int) int
	Log  *slog.Logger
}

// Today returns the current date key (YYYY-MM-DD) in the picker's zone.
func (g *GradientPicker) Today() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	loc := g.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc).Format(dateKeyLayout)
}

// Pick returns today's index into a list of n gradients. A missing,
// stale or unreadable record triggers a fresh draw that overwrites it.
// Store failures are logged and never fail the render.
func (g *GradientPicker) Pick(ctx context.Context, n int) int {
	if n <= 0 {
		return 0
	}
	today := g.Today()

	if idx, ok := g.cached(ctx, today, n); ok {
		return idx
	}

	intN := rand.IntN
	if g.IntN != nil {
		intN = g.IntN
	}
	idx := intN(n)

	data, err := json.Marshal(gradientChoice{Date: today, Index: &idx})
	if err == nil && g.Store != nil {
		err = g.Store.Set(ctx, gradientCacheKey, string(data))
	}
	if err != nil {
		g.logger().WarnContext(ctx, "Failed to store gradient choice",
			"error", err,
			"date", today,
			"index", idx)
	}
	return idx
}

func (g *GradientPicker) cached(ctx context.Context, today string, n int) (int, bool) {
	if g.Store == nil {
		return 0, false
	}
	raw, err := g.Store.Get(ctx, gradientCacheKey)
	if err != nil {
		g.logger().WarnContext(ctx, "Failed to read gradient choice",
			"error", err)
		return 0, false
	}
	if raw == "" {
		return 0, false
	}
	var choice gradientChoice
	if err := json.Unmarshal([]byte(raw), &choice); err != nil {
		return 0, false
	}
	if choice.Date != today || choice.Index == nil {
		return 0, false
	}
	if idx := *choice.Index; idx >= 0 && idx < n {
		return idx, true
	}
	return 0, false
}

func (g *GradientPicker) logger() *slog.Logger {
	if g.Log != nil {
		return g.Log
	}
	return slog.Default()
}
