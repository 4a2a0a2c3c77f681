package app

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// HighScoreKey is the single key the widget persists.
const HighScoreKey = "highestScore"

// KeyValueStore abstracts the host's local persistent storage (memory, SQLite, Redis, Postgres).
// Get reports ok=false when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// HighScores reads and conditionally overwrites the persisted high score.
// The read-then-write is not atomic; a single writer per store is assumed.
type HighScores struct {
	store  KeyValueStore
	logger *zap.Logger
}

func NewHighScores(store KeyValueStore, logger *zap.Logger) *HighScores {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HighScores{store: store, logger: logger}
}

// Current returns the stored high score, or 0 when it is absent or unreadable.
func (h *HighScores) Current(ctx context.Context) int {
	score, _ := h.read(ctx)
	return score
}

// Record stores total when it beats the current high score and reports whether it did.
// An absent or corrupt value counts as no high score yet, so any total is recorded.
func (h *HighScores) Record(ctx context.Context, total int) (isNew bool, previous int) {
	previous, found := h.read(ctx)
	if found && total <= previous {
		return false, previous
	}

	encoded, err := json.Marshal(total)
	if err != nil {
		h.logger.Warn("encode high score", zap.Int("total", total), zap.Error(err))
		return true, previous
	}
	if err := h.store.Set(ctx, HighScoreKey, string(encoded)); err != nil {
		h.logger.Warn("persist high score", zap.Int("total", total), zap.Error(err))
	}
	h.logger.Info("new high score", zap.Int("total", total), zap.Int("previous", previous))
	return true, previous
}

// Reset overwrites the stored value with 0.
func (h *HighScores) Reset(ctx context.Context) error {
	return h.store.Set(ctx, HighScoreKey, "0")
}

func (h *HighScores) read(ctx context.Context) (int, bool) {
	raw, ok, err := h.store.Get(ctx, HighScoreKey)
	if err != nil {
		h.logger.Warn("read high score", zap.Error(err))
		return 0, false
	}
	if !ok {
		return 0, false
	}
	score, ok := ParseHighScore(raw)
	if !ok {
		h.logger.Debug("discarding malformed high score", zap.String("raw", raw))
	}
	return score, ok
}

// ParseHighScore decodes a JSON number. Fractions are floored, values beyond
// the int range are clamped to math.MaxInt, negatives and junk are rejected.
func ParseHighScore(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		if i < 0 {
			return 0, false
		}
		return int(i), true
	}
	f, err := n.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) || f < 0 {
		return 0, false
	}
	if f >= math.MaxInt {
		return math.MaxInt, true
	}
	return int(f), true
}
