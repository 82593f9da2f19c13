/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cristianoliveira/notitray/internal/api"
	"github.com/cristianoliveira/notitray/internal/app"
	"github.com/cristianoliveira/notitray/internal/cache"
	"github.com/cristianoliveira/notitray/internal/colors"
	"github.com/cristianoliveira/notitray/internal/config"
	"github.com/cristianoliveira/notitray/internal/hooks"
	"github.com/cristianoliveira/notitray/internal/push"
	"github.com/cristianoliveira/notitray/internal/store"
)

// newAPIClient builds the notification API client from config.
func newAPIClient() (*api.Client, error) {
	baseURL := config.Get("api_base_url", "")
	if baseURL == "" {
		return nil, fmt.Errorf("api_base_url is not configured (set NOTITRAY_API_BASE_URL or add it to the config file)")
	}
	return api.New(baseURL, config.Get("api_token", "")), nil
}

// openCache opens the local snapshot cache when caching is enabled.
// Returns nil when disabled.
func openCache() (*cache.Cache, error) {
	if !config.GetBool("cache_enabled", true) {
		return nil, nil
	}
	return cache.Open(config.CachePath())
}

// newCachedReadClient opens the cache for cached reads. Unlike openCache
// it fails when caching is disabled, a cached read without a cache is a
// configuration error.
func newCachedReadClient() (*app.CachedClient, func(), error) {
	if !config.GetBool("cache_enabled", true) {
		return nil, nil, fmt.Errorf("cached reads require cache_enabled")
	}
	c, err := cache.Open(config.CachePath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return app.NewCachedClient(c), func() { _ = c.Close() }, nil
}

// newPushChannel builds the websocket push channel from config.
// Returns nil when no realtime endpoint is configured.
func newPushChannel() push.Channel {
	url := config.Get("realtime_url", "")
	if url == "" {
		return nil
	}
	return push.NewWebsocketChannel(url, config.Get("realtime_token", ""))
}

// newStore wires the full synchronization engine: API client, optional
// cache, optional push channel and the hook notifier. The returned
// cleanup closes what was opened.
func newStore() (*store.Store, func(), error) {
	client, err := newAPIClient()
	if err != nil {
		return nil, nil, err
	}

	opts := []store.Option{}

	c, err := openCache()
	if err != nil {
		colors.Warning(fmt.Sprintf("failed to open cache, continuing without it: %v", err))
		c = nil
	}
	if c != nil {
		opts = append(opts, store.WithCache(c))
	}

	if ch := newPushChannel(); ch != nil {
		opts = append(opts, store.WithChannel(ch))
	}

	if hooks.Enabled() {
		opts = append(opts, store.WithNotifier(hooks.NewNotifier()))
	}

	cleanup := func() {
		hooks.WaitForPendingHooks()
		if c != nil {
			_ = c.Close()
		}
	}
	return store.New(client, opts...), cleanup, nil
}

// identity returns the configured identity the push channel is scoped to.
func identity() string {
	return config.Get("identity", "")
}

// confirmPrompt asks a yes/no question on stdin, defaulting to no.
func confirmPrompt(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
