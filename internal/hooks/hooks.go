// Package hooks provides a hook subsystem for extensibility.
//
// Hooks are executable scripts in {hooks_dir}/{hook-point}/ run in lexical
// order with notification details exposed through the environment. The
// "on-notify" point fires for every push-delivered record and is the
// intended place for desktop notification integrations (notify-send,
// osascript, and the like).
package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/notitray/internal/config"
	"github.com/cristianoliveira/notitray/internal/logging"
)

// Hook points.
const (
	// PointNotify fires after a push event is merged into the tray.
	PointNotify = "on-notify"
	// PointRefresh fires after a successful full refresh.
	PointRefresh = "post-refresh"
)

var (
	asyncPending      sync.WaitGroup
	asyncPendingMu    sync.Mutex
	asyncPendingCount int
)

// Init ensures the hooks directory exists.
func Init() error {
	dir := hooksDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create hooks directory %s: %w", dir, err)
	}
	return nil
}

// hooksDir returns the hooks directory path.
func hooksDir() string {
	if dir := os.Getenv("NOTITRAY_HOOKS_DIR"); dir != "" {
		return dir
	}
	if dir := config.Get("hooks_dir", ""); dir != "" {
		return dir
	}
	if configDir := os.Getenv("XDG_CONFIG_HOME"); configDir != "" {
		return filepath.Join(configDir, "notitray", "hooks")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "notitray", "hooks")
}

// failureMode returns the failure mode (abort, warn, ignore).
func failureMode() string {
	if mode := os.Getenv("NOTITRAY_HOOKS_FAILURE_MODE"); mode != "" {
		return mode
	}
	return config.Get("hooks_failure_mode", "warn")
}

func asyncEnabled() bool {
	if async := os.Getenv("NOTITRAY_HOOKS_ASYNC"); async != "" {
		return async == "1" || async == "true" || async == "yes" || async == "on"
	}
	return config.GetBool("hooks_async", false)
}

func asyncTimeout() time.Duration {
	return time.Duration(config.GetInt("hooks_async_timeout", 30)) * time.Second
}

func maxAsyncHooks() int {
	return config.GetInt("max_hooks", 10)
}

// Enabled reports whether hooks are globally enabled.
func Enabled() bool {
	if val := os.Getenv("NOTITRAY_HOOKS_ENABLED"); val != "" {
		return val == "1" || val == "true" || val == "yes" || val == "on"
	}
	return config.GetBool("hooks_enabled", true)
}

// Run executes hooks for a hook point with environment variables given as
// "KEY=value" pairs.
func Run(hookPoint string, envVars ...string) error {
	if !Enabled() {
		return nil
	}

	hookDir := filepath.Join(hooksDir(), hookPoint)
	files, err := os.ReadDir(hookDir)
	if err != nil {
		// Directory doesn't exist -> no hooks
		return nil
	}

	envMap := make(map[string]string)
	envMap["HOOK_POINT"] = hookPoint
	envMap["HOOK_TIMESTAMP"] = time.Now().Format(time.RFC3339)
	for _, v := range envVars {
		parts := strings.SplitN(v, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	type scriptInfo struct {
		path string
		name string
	}
	scripts := []scriptInfo{}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		scriptPath := filepath.Join(hookDir, f.Name())
		info, err := os.Stat(scriptPath)
		if err != nil || info.Mode()&0111 == 0 {
			// Not executable
			continue
		}
		scripts = append(scripts, scriptInfo{path: scriptPath, name: f.Name()})
	}
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].name < scripts[j].name
	})

	if len(scripts) == 0 {
		return nil
	}

	logging.Debug("running hooks", "point", hookPoint, "count", len(scripts))

	mode := failureMode()
	async := asyncEnabled()
	maxAsync := maxAsyncHooks()

	for _, script := range scripts {
		if async {
			asyncPendingMu.Lock()
			if asyncPendingCount >= maxAsync {
				asyncPendingMu.Unlock()
				logging.Warn("too many async hooks pending, skipping", "max", maxAsync, "script", script.name)
				continue
			}
			asyncPendingCount++
			asyncPending.Add(1)
			asyncPendingMu.Unlock()
			go runAsyncHook(script.path, script.name, envMap, mode)
		} else {
			if err := runSyncHook(script.path, script.name, envMap, mode); err != nil {
				if mode == "abort" {
					return err
				}
				// warn or ignore: continue
			}
		}
	}
	return nil
}

// runSyncHook executes a hook script synchronously.
func runSyncHook(scriptPath, scriptName string, envMap map[string]string, mode string) error {
	start := time.Now()
	cmd := exec.Command(scriptPath)
	cmd.Env = os.Environ()
	for k, v := range envMap {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)
	if err != nil {
		switch mode {
		case "abort":
			return fmt.Errorf("hook %s failed: %v, output: %s", scriptName, err, output)
		case "warn":
			logging.Warn("hook failed", "script", scriptName, "error", err, "output", string(output))
		case "ignore":
			// do nothing
		}
		return nil
	}
	logging.Debug("hook completed", "script", scriptName, "duration", duration.Seconds())
	return nil
}

// runAsyncHook executes a hook script asynchronously with timeout.
func runAsyncHook(scriptPath, scriptName string, envMap map[string]string, mode string) {
	ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout())
	cmd := exec.CommandContext(ctx, scriptPath)
	cmd.Env = os.Environ()
	for k, v := range envMap {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	if err := cmd.Start(); err != nil {
		cancel()
		if mode != "ignore" {
			logging.Warn("async hook failed to start", "script", scriptName, "error", err)
		}
		asyncPendingMu.Lock()
		asyncPendingCount--
		asyncPendingMu.Unlock()
		asyncPending.Done()
		return
	}
	start := time.Now()

	go func() {
		defer func() {
			asyncPendingMu.Lock()
			asyncPendingCount--
			asyncPendingMu.Unlock()
			asyncPending.Done()
			cancel()
		}()

		err := cmd.Wait()
		duration := time.Since(start)

		if ctx.Err() == context.DeadlineExceeded {
			logging.Warn("async hook timed out", "script", scriptName, "duration", duration.Seconds())
			return
		}
		if err != nil && mode != "ignore" {
			logging.Warn("async hook failed", "script", scriptName, "error", err, "duration", duration.Seconds())
			return
		}
		logging.Debug("async hook completed", "script", scriptName, "duration", duration.Seconds())
	}()
}

// WaitForPendingHooks waits for all pending async hooks to complete.
func WaitForPendingHooks() {
	asyncPending.Wait()
}

// Shutdown gracefully shuts down the hooks subsystem.
func Shutdown() {
	WaitForPendingHooks()
}
