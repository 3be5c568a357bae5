package pipeline

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eikafleet/devnamer/internal/logging"
	"github.com/eikafleet/devnamer/internal/naming"
	"github.com/eikafleet/devnamer/internal/params"
	"github.com/eikafleet/devnamer/internal/system"
)

func testConfig() params.Config {
	return params.Config{Customer: "Eika", Prefix: "Mac", MaxNameLength: 15}
}

func runWith(t *testing.T, cfg params.Config, rec *system.Recorder) (string, *bytes.Buffer, error) {
	t.Helper()
	var buf bytes.Buffer
	name, err := Run(cfg, rec, logging.NewBuffered(&buf))
	return name, &buf, err
}

func TestRunAppliesAllThreeSettings(t *testing.T) {
	rec := system.NewRecorder("FVFXJ2ABC1")

	name, _, err := runWith(t, testConfig(), rec)
	require.NoError(t, err)
	assert.Equal(t, "Mac-FVFXJ2ABC1", name)

	assert.Equal(t, []system.Write{
		{Name: system.HostName, Value: "Mac-FVFXJ2ABC1"},
		{Name: system.ComputerName, Value: "Mac-FVFXJ2ABC1"},
		{Name: system.LocalHostName, Value: "Mac-FVFXJ2ABC1"},
	}, rec.Writes)
}

func TestRunLegacySerial(t *testing.T) {
	rec := system.NewRecorder("C02AB123CD4E")

	name, buf, err := runWith(t, testConfig(), rec)
	require.NoError(t, err)
	assert.Equal(t, "Mac-AB123-CD4E", name)
	assert.Contains(t, buf.String(), "retrieved serial number C02AB123CD4E")
}

func TestRunNonAdminAbortsBeforeSerialLookup(t *testing.T) {
	rec := system.NewRecorder("FVFXJ2ABC1")
	rec.Admin = false
	rec.SerialErr = errors.New("serial lookup must not happen")

	_, _, err := runWith(t, testConfig(), rec)
	assert.True(t, errors.Is(err, ErrPermission))
	assert.Empty(t, rec.Writes)
}

func TestRunSerialUnavailable(t *testing.T) {
	rec := system.NewRecorder("")
	rec.SerialErr = errors.New("platform registry returned no serial number")

	_, _, err := runWith(t, testConfig(), rec)
	assert.True(t, errors.Is(err, ErrSerialUnavailable))
	assert.Empty(t, rec.Writes)
}

func TestRunDryRunNeverWrites(t *testing.T) {
	cfg := testConfig()
	cfg.DryRun = true
	rec := system.NewRecorder("FVFXJ2ABC1")
	// A write during dry run would surface as an unexpected failure.
	rec.FailSet = map[system.Setting]error{
		system.HostName:      errors.New("write attempted"),
		system.ComputerName:  errors.New("write attempted"),
		system.LocalHostName: errors.New("write attempted"),
	}

	name, buf, err := runWith(t, cfg, rec)
	require.NoError(t, err)
	assert.Equal(t, "Mac-FVFXJ2ABC1", name)
	assert.Empty(t, rec.Writes)
	assert.Contains(t, buf.String(), "dry run: would set HostName to Mac-FVFXJ2ABC1")
	assert.Contains(t, buf.String(), "dry run, nothing changed")
}

func TestRunDryRunSkipsVerification(t *testing.T) {
	cfg := testConfig()
	cfg.DryRun = true
	rec := system.NewRecorder("FVFXJ2ABC1")
	rec.Values[system.HostName] = "something-else"
	rec.StaleReads = true

	_, _, err := runWith(t, cfg, rec)
	assert.NoError(t, err)
}

func TestRunApplyFailureKeepsEarlierSettings(t *testing.T) {
	rec := system.NewRecorder("FVFXJ2ABC1")
	rec.FailSet = map[system.Setting]error{system.ComputerName: errors.New("scutil exit 1")}

	_, _, err := runWith(t, testConfig(), rec)
	assert.True(t, errors.Is(err, ErrApply))

	// HostName was written before the failure and stays applied.
	require.Len(t, rec.Writes, 1)
	assert.Equal(t, system.HostName, rec.Writes[0].Name)
}

func TestRunVerificationMismatch(t *testing.T) {
	rec := system.NewRecorder("FVFXJ2ABC1")
	rec.Values[system.HostName] = "stale-name"
	rec.StaleReads = true

	_, _, err := runWith(t, testConfig(), rec)
	assert.True(t, errors.Is(err, ErrVerification))
}

func TestRunInvalidGeneratedName(t *testing.T) {
	// A serial with a space survives generation and dies in validation.
	rec := system.NewRecorder("FVFXJ2 AB")

	_, _, err := runWith(t, testConfig(), rec)
	assert.True(t, errors.Is(err, naming.ErrInvalidCharacter))
	assert.Empty(t, rec.Writes)
}

func TestRunHeaderCarriesRunID(t *testing.T) {
	rec := system.NewRecorder("FVFXJ2ABC1")

	_, buf, err := runWith(t, testConfig(), rec)
	require.NoError(t, err)
	assert.Regexp(t, `run [A-Za-z0-9]{8} starting for customer Eika`, buf.String())
}
