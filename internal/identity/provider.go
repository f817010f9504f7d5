// Package identity derives and persists the pseudo-anonymous device identity
// that keys the remote cart.
package identity

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// StorageKey is the single persisted key holding the device identity.
const StorageKey = "device_id"

// Provider resolves the device identity: persisted value first, otherwise a
// fingerprint of stable device signals, persisted best-effort.
type Provider struct {
	storage Storage
	signals func() Signals
	digest  func(Signals) (string, error)
	logger  *zap.Logger
	sfg     singleflight.Group
}

// New constructs a Provider over the given storage with host signals and the
// SHA-256 digest.
func New(storage Storage, logger *zap.Logger) *Provider {
	return NewWithFuncs(storage, HostSignals, sha256Digest, logger)
}

// NewWithFuncs allows substituting the signal source and digest, for test
// doubles and for runtimes without a usable digest (digest returning an error
// triggers the random fallback).
func NewWithFuncs(storage Storage, signals func() Signals, digest func(Signals) (string, error), logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{storage: storage, signals: signals, digest: digest, logger: logger}
}

func sha256Digest(s Signals) (string, error) { return s.Fingerprint(), nil }

// GetOrCreateDeviceID returns the persisted identity if present; otherwise it
// computes one, persists it best-effort and returns it. It never fails: with
// unavailable storage the value is computed again on the next call.
// Concurrent first calls are collapsed so at most one value is ever stored.
func (p *Provider) GetOrCreateDeviceID() string {
	if v, err := p.storage.Load(StorageKey); err == nil {
		return v
	}

	v, _, _ := p.sfg.Do(StorageKey, func() (interface{}, error) {
		// Re-check under the flight: a racing call may have stored already.
		if v, err := p.storage.Load(StorageKey); err == nil {
			return v, nil
		}
		id := p.compute()
		if err := p.storage.Store(StorageKey, id); err != nil {
			p.logger.Debug("device identity not persisted", zap.Error(err))
		}
		return id, nil
	})
	return v.(string)
}

func (p *Provider) compute() string {
	if id, err := p.digest(p.signals()); err == nil && id != "" {
		return id
	}
	return fallbackToken()
}

// fallbackToken marks a non-deterministic identity: random base-36 fragment
// plus the current time in base-36.
func fallbackToken() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// No entropy source either; the clock is all that is left.
		return "anon-0-" + strconv.FormatInt(time.Now().UnixMilli(), 36)
	}
	r := strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 36)
	return "anon-" + r + "-" + strconv.FormatInt(time.Now().UnixMilli(), 36)
}

// errNoDigest is returned by digest funcs on runtimes without crypto support.
var errNoDigest = errors.New("no digest facility")
