// Package pipeline runs the naming sequence: privilege guard, serial lookup,
// name derivation, validation, apply and verification. Every step failure is
// terminal; the caller maps it to a logged ERROR line and a non-zero exit.
package pipeline

import (
	"github.com/dchest/uniuri"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/eikafleet/devnamer/internal/naming"
	"github.com/eikafleet/devnamer/internal/params"
	"github.com/eikafleet/devnamer/internal/system"
)

var (
	// ErrPermission indicates the process lacks administrative rights.
	ErrPermission = errors.New("must run as administrator")
	// ErrSerialUnavailable indicates the platform returned no usable serial.
	ErrSerialUnavailable = errors.New("serial number unavailable")
	// ErrApply indicates an OS naming setting could not be written.
	ErrApply = errors.New("failed to apply device name")
	// ErrVerification indicates the applied name did not read back as written.
	ErrVerification = errors.New("device name verification failed")
)

// runIDLength keeps the run id short enough to scan in aggregated fleet logs.
const runIDLength = 8

// Run executes one naming run and returns the candidate device name.
// Under cfg.DryRun no setting is written and verification is skipped.
func Run(cfg params.Config, sys system.System, log *logrus.Logger) (string, error) {
	runID := uniuri.NewLen(runIDLength)
	log.Infof("run %s starting for customer %s", runID, cfg.Customer)
	log.Debugf("run %s configuration: prefix=%s max_length=%d dry_run=%t",
		runID, cfg.Prefix, cfg.MaxNameLength, cfg.DryRun)

	if !sys.CurrentUserIsAdmin() {
		return "", ErrPermission
	}

	serial, err := sys.SerialNumber()
	if err != nil {
		return "", errors.Wrapf(ErrSerialUnavailable, "%v", err)
	}
	log.Infof("retrieved serial number %s", serial)

	name := naming.Generate(serial, cfg.Prefix, cfg.MaxNameLength)
	log.Infof("candidate device name %s", name)

	if err := naming.Validate(name, cfg.MaxNameLength); err != nil {
		return name, err
	}

	for _, setting := range system.AppliedSettings {
		if cfg.DryRun {
			log.Infof("dry run: would set %s to %s", setting, name)
			continue
		}
		if err := sys.SetSetting(setting, name); err != nil {
			// Earlier settings stay applied; the run aborts without rollback.
			return name, errors.Wrapf(ErrApply, "%s: %v", setting, err)
		}
		log.Infof("set %s to %s", setting, name)
	}

	if cfg.DryRun {
		log.Infof("run %s complete (dry run, nothing changed)", runID)
		return name, nil
	}

	got, err := sys.Setting(system.HostName)
	if err != nil {
		return name, errors.Wrapf(ErrVerification, "failed to read back %s: %v", system.HostName, err)
	}
	if got != name {
		return name, errors.Wrapf(ErrVerification, "%s is %q, expected %q", system.HostName, got, name)
	}
	log.Infof("verified %s matches %s", system.HostName, name)
	log.Infof("run %s complete", runID)
	return name, nil
}
