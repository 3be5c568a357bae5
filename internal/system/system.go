// Package system wraps the narrow OS surface the naming pipeline needs:
// reading the hardware serial number, the admin check, and the three
// host naming settings.
package system

import (
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Setting identifies one of the OS naming settings.
type Setting string

const (
	HostName      Setting = "HostName"
	ComputerName  Setting = "ComputerName"
	LocalHostName Setting = "LocalHostName"
)

// AppliedSettings is the fixed order in which the candidate name is written.
var AppliedSettings = []Setting{HostName, ComputerName, LocalHostName}

// System is the platform surface consumed by the pipeline. Implementations
// other than Platform exist only for tests.
type System interface {
	SerialNumber() (string, error)
	Setting(name Setting) (string, error)
	SetSetting(name Setting, value string) error
	CurrentUserIsAdmin() bool
}

// Platform reads and writes the local machine via ioreg and scutil.
type Platform struct{}

var serialPattern = regexp.MustCompile(`"IOPlatformSerialNumber"\s*=\s*"([^"]*)"`)

// SerialNumber queries the platform registry for the hardware serial.
func (Platform) SerialNumber() (string, error) {
	out, err := exec.Command("ioreg", "-c", "IOPlatformExpertDevice", "-d", "2").Output()
	if err != nil {
		return "", errors.Wrap(err, "failed to query platform registry")
	}

	serial := ParseSerial(string(out))
	if serial == "" {
		return "", errors.New("platform registry returned no serial number")
	}
	return serial, nil
}

// ParseSerial extracts the quoted IOPlatformSerialNumber value from raw
// platform registry output. Returns "" when the attribute is absent or empty.
func ParseSerial(out string) string {
	m := serialPattern.FindStringSubmatch(out)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Setting reads one naming setting.
func (Platform) Setting(name Setting) (string, error) {
	out, err := exec.Command("scutil", "--get", string(name)).Output()
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", name)
	}
	return strings.TrimSpace(string(out)), nil
}

// SetSetting writes one naming setting.
func (Platform) SetSetting(name Setting, value string) error {
	if err := exec.Command("scutil", "--set", string(name), value).Run(); err != nil {
		return errors.Wrapf(err, "failed to set %s to %q", name, value)
	}
	return nil
}

// CurrentUserIsAdmin reports whether the process runs with administrative
// rights.
func (Platform) CurrentUserIsAdmin() bool {
	return os.Geteuid() == 0
}
