// Package naming derives and validates standardized device names from
// hardware serial numbers.
package naming

import (
	"regexp"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidCharacter indicates a candidate name containing characters
	// outside letters, digits and hyphen.
	ErrInvalidCharacter = errors.New("name contains invalid characters")
	// ErrNameTooLong indicates a candidate name exceeding the length policy.
	ErrNameTooLong = errors.New("name exceeds maximum length")
)

// legacySerialPrefix marks the older vendor serial layout in which
// positions 4-8 and the final 4 characters carry the meaningful segments.
const (
	legacySerialPrefix = "C02"
	legacySerialLength = 12
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Generate derives a candidate device name from a hardware serial number.
//
// Serials in the legacy 12-character "C02" layout keep only their meaningful
// segments. Any other serial is appended to the prefix wholesale when the
// result stays under maxLen, and truncated to fit otherwise.
//
// The fit check is deliberately strict (<, not <=): a name that would land on
// exactly maxLen characters goes through the truncation branch. That branch
// produces the same name, but the asymmetry with Validate's <= is a known
// discrepancy kept on purpose.
func Generate(serial, prefix string, maxLen int) string {
	if len(serial) == legacySerialLength && serial[:3] == legacySerialPrefix {
		return prefix + "-" + serial[3:8] + "-" + serial[len(serial)-4:]
	}

	if len(prefix)+1+len(serial) < maxLen {
		return prefix + "-" + serial
	}

	// The failed fit check guarantees available <= len(serial); it can still
	// go negative when the prefix alone exceeds the limit.
	available := maxLen - len(prefix) - 1
	if available < 0 {
		available = 0
	}
	return prefix + "-" + serial[:available]
}

// Validate checks a candidate name against the character-set and length
// policy. Both failures are terminal for a run: the generator produced a name
// the policy cannot accept, and there is nothing to recover in place.
func Validate(name string, maxLen int) error {
	if !namePattern.MatchString(name) {
		return errors.Wrapf(ErrInvalidCharacter, "%q", name)
	}
	if len(name) > maxLen {
		return errors.Wrapf(ErrNameTooLong, "%q is %d characters, limit %d", name, len(name), maxLen)
	}
	return nil
}
