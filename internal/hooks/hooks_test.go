package hooks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/notitray/internal/domain"
	"github.com/cristianoliveira/notitray/internal/push"
)

// writeHookScript installs an executable hook script under dir/point.
func writeHookScript(t *testing.T, dir, point, name, body string) {
	t.Helper()
	hookDir := filepath.Join(dir, point)
	require.NoError(t, os.MkdirAll(hookDir, 0755))
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(hookDir, name), []byte(script), 0755))
}

func setupHooksDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("NOTITRAY_HOOKS_DIR", dir)
	t.Setenv("NOTITRAY_HOOKS_ENABLED", "1")
	t.Setenv("NOTITRAY_HOOKS_ASYNC", "0")
	t.Setenv("NOTITRAY_HOOKS_FAILURE_MODE", "warn")
	return dir
}

func TestRun_ExecutesScriptsWithEnvironment(t *testing.T) {
	dir := setupHooksDir(t)
	outFile := filepath.Join(dir, "out.txt")
	writeHookScript(t, dir, PointNotify, "10-capture",
		`echo "$HOOK_POINT $NOTIFICATION_ID $NOTIFICATION_KIND" > `+outFile)

	require.NoError(t, Run(PointNotify, "NOTIFICATION_ID=abc", "NOTIFICATION_KIND=error"))

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "on-notify abc error", strings.TrimSpace(string(data)))
}

func TestRun_ScriptsRunInLexicalOrder(t *testing.T) {
	dir := setupHooksDir(t)
	outFile := filepath.Join(dir, "order.txt")
	writeHookScript(t, dir, PointNotify, "20-second", `echo second >> `+outFile)
	writeHookScript(t, dir, PointNotify, "10-first", `echo first >> `+outFile)

	require.NoError(t, Run(PointNotify))

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, strings.Fields(string(data)))
}

func TestRun_SkipsNonExecutableFiles(t *testing.T) {
	dir := setupHooksDir(t)
	hookDir := filepath.Join(dir, PointNotify)
	require.NoError(t, os.MkdirAll(hookDir, 0755))
	outFile := filepath.Join(dir, "out.txt")
	script := "#!/bin/sh\necho ran > " + outFile + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(hookDir, "not-executable"), []byte(script), 0644))

	require.NoError(t, Run(PointNotify))

	_, err := os.Stat(outFile)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_MissingHookDirIsNoop(t *testing.T) {
	setupHooksDir(t)
	assert.NoError(t, Run(PointNotify))
}

func TestRun_FailureModes(t *testing.T) {
	t.Run("warn continues past a failing script", func(t *testing.T) {
		dir := setupHooksDir(t)
		outFile := filepath.Join(dir, "out.txt")
		writeHookScript(t, dir, PointNotify, "10-fail", `exit 1`)
		writeHookScript(t, dir, PointNotify, "20-ok", `echo ok > `+outFile)

		require.NoError(t, Run(PointNotify))

		_, err := os.Stat(outFile)
		assert.NoError(t, err, "later script still ran")
	})

	t.Run("abort stops on the first failure", func(t *testing.T) {
		dir := setupHooksDir(t)
		t.Setenv("NOTITRAY_HOOKS_FAILURE_MODE", "abort")
		outFile := filepath.Join(dir, "out.txt")
		writeHookScript(t, dir, PointNotify, "10-fail", `exit 1`)
		writeHookScript(t, dir, PointNotify, "20-ok", `echo ok > `+outFile)

		assert.Error(t, Run(PointNotify))

		_, err := os.Stat(outFile)
		assert.True(t, os.IsNotExist(err), "later script skipped")
	})
}

func TestRun_Disabled(t *testing.T) {
	dir := setupHooksDir(t)
	t.Setenv("NOTITRAY_HOOKS_ENABLED", "0")
	outFile := filepath.Join(dir, "out.txt")
	writeHookScript(t, dir, PointNotify, "10-capture", `echo ran > `+outFile)

	require.NoError(t, Run(PointNotify))

	_, err := os.Stat(outFile)
	assert.True(t, os.IsNotExist(err))
}

func TestNotifier(t *testing.T) {
	dir := setupHooksDir(t)
	outFile := filepath.Join(dir, "out.txt")
	writeHookScript(t, dir, PointNotify, "10-capture",
		`echo "$NOTIFICATION_ID $NOTIFICATION_TITLE $NOTIFICATION_STATE $NOTIFICATION_EVENT" > `+outFile)

	notifier := NewNotifier()
	notifier.Notify(domain.Notification{
		ID:    "n1",
		Title: "hello",
		Kind:  domain.KindInfo,
	}, push.EventInsert)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "n1 hello unread insert", strings.TrimSpace(string(data)))
}
