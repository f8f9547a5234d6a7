// Package fingertec isolates the attendance sync job from the FingerTec
// time-clock integration. Two adapter variants exist: a direct device SDK
// connection and an intermediary database the device vendor replicates
// punches into. Which one runs is a deployment decision (Config.Mode).
package fingertec

import (
	"errors"
	"strings"
	"time"
)

// ErrConnection marks failures to reach or authenticate to the backing
// source. The sync job treats it as terminal for the current run.
var ErrConnection = errors.New("fingertec: connection failed")

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// RawEvent is a single punch as reported by the device, with the vendor
// direction code already normalized to the canonical IN/OUT vocabulary.
type RawEvent struct {
	EmployeeID string
	Timestamp  time.Time
	Direction  Direction
}

type Adapter interface {
	// Connect establishes the connection and probes it. It fails fast with
	// ErrConnection when configuration is missing or the probe fails; it
	// never partially succeeds.
	Connect() error

	// FetchSince returns all events strictly after since, ascending by
	// timestamp. Callers must not rely on the ordering for correctness.
	FetchSince(since time.Time) ([]RawEvent, error)

	// Close releases the connection established by Connect. Safe to call
	// when Connect was never called or failed.
	Close() error
}

// NewAdapter selects the adapter variant for the configured mode.
// Anything other than "sdk" gets the database variant.
func NewAdapter(cfg *Config) Adapter {
	if strings.EqualFold(cfg.Mode, ModeSDK) {
		return NewSDKAdapter(cfg.Host, cfg.Port)
	}
	return NewDBAdapter(cfg)
}

// DirectionMap translates vendor direction codes. Operator-configured token
// sets win; unmatched tokens fall back to the builtin mapping and, failing
// that, to IN. The IN default is deliberate: devices that only report a
// punch with no direction are treated as check-ins.
type DirectionMap struct {
	in  map[string]struct{}
	out map[string]struct{}
}

func NewDirectionMap(inTokens, outTokens []string) DirectionMap {
	m := DirectionMap{
		in:  make(map[string]struct{}, len(inTokens)),
		out: make(map[string]struct{}, len(outTokens)),
	}
	for _, t := range inTokens {
		if t = normalizeToken(t); t != "" {
			m.in[t] = struct{}{}
		}
	}
	for _, t := range outTokens {
		if t = normalizeToken(t); t != "" {
			m.out[t] = struct{}{}
		}
	}
	return m
}

func (m DirectionMap) Resolve(code string) Direction {
	token := normalizeToken(code)
	if _, ok := m.in[token]; ok {
		return DirectionIn
	}
	if _, ok := m.out[token]; ok {
		return DirectionOut
	}
	switch token {
	case "IN", "I", "0":
		return DirectionIn
	case "OUT", "O", "1":
		return DirectionOut
	}
	return DirectionIn
}

func normalizeToken(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
