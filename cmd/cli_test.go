package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const relayConfigFixture = `[[routes]]
source = "120363401821218041@g.us"
destination = "120363342030232133@g.us"

[[routes]]
source = "120363401821218040@g.us"
destination = "120363342030232133@g.us"

[[contacts]]
id = "573001234567@c.us"
name = "Ana"

[log]
level = "error"
`

const trackingFixture = `[by_message]
[by_message.fwd-exhausted]
source_conversation = "120363401821218041@g.us"
destination_conversation = "120363342030232133@g.us"
author_id = "573001234567@c.us"
author_display_name = "Ana"
account_ref = "12345678"
created_at = "2026-10-14T08:00:00Z"
reminder_count = 2
resolved = false

[by_message.fwd-resolved]
source_conversation = "120363401821218041@g.us"
destination_conversation = "120363342030232133@g.us"
author_id = "573001234567@c.us"
author_display_name = "Ana"
created_at = "2026-10-14T07:00:00Z"
reminder_count = 1
resolved = true
resolved_at = "2026-10-14T07:20:00Z"

[by_account]
12345678 = "fwd-exhausted"
`

func TestVersionPrintsVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestRoutesPrintsSortedTable(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRelayFixture(home, relayConfigFixture, ""))

	stdout, _, err := executeCLI(t, home, "routes")
	require.NoError(t, err)
	assert.Equal(t,
		"120363401821218040@g.us -> 120363342030232133@g.us\n"+
			"120363401821218041@g.us -> 120363342030232133@g.us\n",
		stdout)
}

func TestRoutesWithoutConfig(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "routes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No routes configured.")
}

func TestRoutesRejectsChainedRoutes(t *testing.T) {
	home := t.TempDir()
	config := `[[routes]]
source = "a@g.us"
destination = "b@g.us"

[[routes]]
source = "b@g.us"
destination = "c@g.us"
`
	require.NoError(t, writeRelayFixture(home, config, ""))

	_, _, err := executeCLI(t, home, "routes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination is also a source")
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "routes", "--config", filepath.Join(home, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestRecordsListEmptyStore(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRelayFixture(home, relayConfigFixture, ""))

	stdout, _, err := executeCLI(t, home, "records", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No tracked requests.")
}

func TestRecordsListTable(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRelayFixture(home, relayConfigFixture, trackingFixture))

	stdout, _, err := executeCLI(t, home, "records", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ID")
	assert.Contains(t, stdout, "REMINDERS")

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "fwd-resolved")
	assert.Contains(t, lines[1], "resolved")
	assert.Contains(t, lines[1], "1/2")
	assert.Contains(t, lines[2], "fwd-exhausted")
	assert.Contains(t, lines[2], "exhausted")
	assert.Contains(t, lines[2], "12345678")
}

func TestRecordsListUnresolvedJSON(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRelayFixture(home, relayConfigFixture, trackingFixture))

	stdout, _, err := executeCLI(t, home, "records", "list", "--unresolved", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"ID\": \"fwd-exhausted\"")
	assert.NotContains(t, stdout, "fwd-resolved")
}

func TestRecordsListFailsOnCorruptDocument(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRelayFixture(home, relayConfigFixture, "by_message = [oops"))

	_, _, err := executeCLI(t, home, "records", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt tracking document")
}

func TestRecordsStatusRendersSLAState(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRelayFixture(home, relayConfigFixture, trackingFixture))

	stdout, _, err := executeCLI(t, home, "records", "status", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tracked Requests")
	assert.Contains(t, stdout, "requests: 2  unresolved: 1")
	assert.Contains(t, stdout, "CTA 12345678 (fwd-exhausted) [exhausted]")
	assert.Contains(t, stdout, "fwd-resolved [resolved]")

	stdout, _, err = executeCLI(t, home, "records", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "requests: 1  unresolved: 1")
	assert.NotContains(t, stdout, "fwd-resolved")
}

func TestServeRequiresRoutes(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no routes configured")
}

func TestServeRejectsUnknownTransport(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRelayFixture(home, relayConfigFixture+"\n[transport]\nkind = \"carrier-pigeon\"\n", ""))

	_, _, err := executeCLI(t, home, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport")
}

func TestServeForwardsRequestOverStdio(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRelayFixture(home, relayConfigFixture, ""))

	events := strings.Join([]string{
		`{"type":"message","id":"in-1","conversation":"120363401821218041@g.us","author":"573001234567@c.us","body":"Solicitud: cambio de franja\nCTA: 87654321\nOT: 5566778"}`,
		`{"type":"message","id":"in-2","conversation":"120363401821218041@g.us","author":"573001234567@c.us","body":"hola"}`,
		`{"type":"message","id":"in-3","conversation":"120363999999999999@g.us","author":"573001234567@c.us","body":"Solicitud CTA 11111111 OT 2222222"}`,
	}, "\n")

	stdout, _, err := executeCLIWithInput(t, home, strings.NewReader(events), "serve")
	require.NoError(t, err)

	commands := decodeCommands(t, stdout)
	require.Len(t, commands, 3)

	forward := commands[0]
	assert.Equal(t, "send", forward["type"])
	assert.Equal(t, "120363342030232133@g.us", forward["conversation"])
	assert.Equal(t, "Solicitud: cambio de franja\nCTA: 87654321\nOT: 5566778\n\n_me ayudas con esto porfavor_", forward["text"])
	assert.Equal(t, true, forward["suppress_read_receipt"])

	confirmation := commands[1]
	assert.Equal(t, "send", confirmation["type"])
	assert.Equal(t, "120363401821218041@g.us", confirmation["conversation"])
	assert.Equal(t, "✅ *RESPUESTA PARA @ANA:*\n\nESCALADO ⚠️", confirmation["text"])

	rejection := commands[2]
	assert.Equal(t, "reply", rejection["type"])
	assert.Equal(t, "in-2", rejection["quoted_id"])

	listed, _, err := executeCLI(t, home, "records", "list", "--json")
	require.NoError(t, err)
	assert.Contains(t, listed, forward["message_id"])
	assert.Contains(t, listed, "\"AccountRef\": \"87654321\"")
	assert.NotContains(t, listed, "11111111")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, strings.NewReader(""), args...)
}

func executeCLIWithInput(t *testing.T, home string, in io.Reader, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(in)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeRelayFixture(home, config, tracking string) error {
	dir := filepath.Join(home, configDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if config != "" {
		if err := os.WriteFile(filepath.Join(dir, configName+".toml"), []byte(config), 0o600); err != nil {
			return err
		}
	}
	if tracking != "" {
		if err := os.WriteFile(filepath.Join(dir, "tracking.toml"), []byte(tracking), 0o600); err != nil {
			return err
		}
	}
	return nil
}

func decodeCommands(t *testing.T, stdout string) []map[string]any {
	t.Helper()

	var commands []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var cmd map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &cmd), line)
		commands = append(commands, cmd)
	}
	require.NoError(t, scanner.Err())
	return commands
}
