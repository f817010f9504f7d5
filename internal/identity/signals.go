package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Signals are the stable device attributes fed into the fingerprint.
// Unavailable signals stay empty; the join order is fixed and must not change,
// or every existing device re-keys to a fresh cart.
type Signals struct {
	UserAgent           string
	Language            string
	Platform            string
	HardwareConcurrency string
	DeviceMemory        string
	ColorDepth          string
	ScreenWidth         string
	ScreenHeight        string
	Timezone            string
}

// Fingerprint digests the ordered signal list with SHA-256, lowercase hex.
func (s Signals) Fingerprint() string {
	parts := strings.Join([]string{
		s.UserAgent,
		s.Language,
		s.Platform,
		s.HardwareConcurrency,
		s.DeviceMemory,
		s.ColorDepth,
		s.ScreenWidth,
		s.ScreenHeight,
		s.Timezone,
	}, "|")
	sum := sha256.Sum256([]byte(parts))
	return hex.EncodeToString(sum[:])
}

// HostSignals fills the signals a headless Go client can observe.
// Screen-related signals have no equivalent here and stay empty.
func HostSignals() Signals {
	host, _ := os.Hostname()
	zone, _ := time.Now().Zone()
	return Signals{
		UserAgent:           "nexora-cli/" + runtime.Version(),
		Language:            os.Getenv("LANG"),
		Platform:            runtime.GOOS + "/" + runtime.GOARCH + "/" + host,
		HardwareConcurrency: strconv.Itoa(runtime.NumCPU()),
		Timezone:            zone,
	}
}
