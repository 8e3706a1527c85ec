package device

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/marketbeam/tracking/pkg/clientenv"
)

// ErrNoSignals indicates the environment exposed nothing to fingerprint.
var ErrNoSignals = errors.New("device: no fingerprint signals available")

// HashProvider computes a deterministic fingerprint by hashing the
// environment's stable signals. It needs no network access and no state.
type HashProvider struct{}

// DeviceID combines user agent, language, platform, screen resolution,
// timezone, and client IP into a SHA-256 hash and returns the first 16 bytes
// as a 32-character hex string. Empty signals are skipped; an environment
// with no signals at all yields ErrNoSignals.
func (HashProvider) DeviceID(env clientenv.Environment) (string, error) {
	components := []string{
		env.UserAgent(),
		env.Language(),
		env.Platform(),
		env.ScreenResolution(),
		env.Timezone(),
		env.ClientIP(),
	}

	var filtered []string
	for _, c := range components {
		if c != "" {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return "", ErrNoSignals
	}

	hash := sha256.Sum256([]byte(strings.Join(filtered, "|")))
	return hex.EncodeToString(hash[:16]), nil
}
