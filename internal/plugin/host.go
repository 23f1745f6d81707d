package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

// ErrAlreadySetUp is returned when Setup is called more than once.
var ErrAlreadySetUp = errors.New("plugin host already set up")

// Host processes plugin descriptors for one project type and settings
// environment. Modules referenced by descriptors must be provided before
// Setup; afterwards the host serves the mounted routes and merged settings.
type Host struct {
	projectType ProjectType
	environment SettingsType
	logger      *slog.Logger

	mu          sync.RWMutex
	apps        []AppConfig
	urlModules  map[string][]Route
	settingsMod map[string][]byte
	settings    Settings
	mux         *http.ServeMux
	routes      map[string]mountedRoute
	setUp       bool
}

// NewHost creates a Host. defaults seeds the merged settings before any
// plugin settings module is applied.
func NewHost(projectType ProjectType, environment SettingsType, defaults Settings, logger *slog.Logger) (*Host, error) {
	if !projectType.Valid() {
		return nil, fmt.Errorf("unknown project type %q", projectType)
	}
	if !environment.Valid() {
		return nil, fmt.Errorf("unknown settings type %q", environment)
	}

	return &Host{
		projectType: projectType,
		environment: environment,
		logger:      logger,
		urlModules:  make(map[string][]Route),
		settingsMod: make(map[string][]byte),
		settings:    defaults.Clone(),
		mux:         http.NewServeMux(),
		routes:      make(map[string]mountedRoute),
	}, nil
}

// ProjectType returns the project type the host was created for.
func (h *Host) ProjectType() ProjectType { return h.projectType }

// Environment returns the settings environment the host merges.
func (h *Host) Environment() SettingsType { return h.environment }

// ProvideURLs makes a URL list importable under the dotted module path.
func (h *Host) ProvideURLs(module string, routes []Route) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.urlModules[module] = routes
}

// ProvideSettings makes a YAML settings document importable under the dotted module path.
func (h *Host) ProvideSettings(module string, doc []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.settingsMod[module] = doc
}

// Register installs apps. Names must be unique.
func (h *Host) Register(apps ...AppConfig) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.setUp {
		return ErrAlreadySetUp
	}

	for _, app := range apps {
		if app.Name == "" {
			return errors.New("app name is required")
		}
		for _, existing := range h.apps {
			if existing.Name == app.Name {
				return fmt.Errorf("app %q already registered", app.Name)
			}
		}
		h.apps = append(h.apps, app)
	}

	return nil
}

// Setup reads every registered descriptor in registration order: it mounts
// URL lists and merges settings modules, then runs each app's Ready hook
// exactly once. A malformed descriptor aborts Setup before any hook runs.
func (h *Host) Setup(ctx context.Context) error {
	h.mu.Lock()
	if h.setUp {
		h.mu.Unlock()
		return ErrAlreadySetUp
	}

	for _, app := range h.apps {
		if err := h.mountURLs(app); err != nil {
			h.mu.Unlock()
			return fmt.Errorf("app %s: %w", app.Name, err)
		}
		if err := h.mergeSettings(app); err != nil {
			h.mu.Unlock()
			return fmt.Errorf("app %s: %w", app.Name, err)
		}
	}

	h.setUp = true
	apps := append([]AppConfig(nil), h.apps...)
	h.mu.Unlock()

	for _, app := range apps {
		if app.Ready != nil {
			app.Ready(ctx)
		}
	}

	return nil
}

func (h *Host) mountURLs(app AppConfig) error {
	cfg, ok := app.PluginApp.URLs[h.projectType]
	if !ok {
		return nil
	}

	prefix, err := prefixFromRegex(cfg.Regex)
	if err != nil {
		return err
	}

	module := app.Name + "." + cfg.RelativePath
	routes, ok := h.urlModules[module]
	if !ok {
		return fmt.Errorf("url module %q not found", module)
	}

	for _, r := range routes {
		mounted, err := mountRoute(prefix, r)
		if err != nil {
			return err
		}

		if err := handle(h.mux, mounted.pattern(), mounted.Handler); err != nil {
			return err
		}

		if r.Name == "" {
			continue
		}
		if _, exists := h.routes[r.Name]; !exists {
			h.routes[r.Name] = mounted
		}
		if cfg.Namespace != "" {
			h.routes[cfg.Namespace+":"+r.Name] = mounted
		}
	}

	h.logger.Debug("plugin urls mounted",
		"app", app.Name,
		"prefix", prefix,
		"namespace", cfg.Namespace,
		"routes", len(routes),
	)

	return nil
}

func (h *Host) mergeSettings(app AppConfig) error {
	byType, ok := app.PluginApp.Settings[h.projectType]
	if !ok {
		return nil
	}

	order := []SettingsType{SettingsTypeCommon}
	if h.environment != SettingsTypeCommon {
		order = append(order, h.environment)
	}

	for _, st := range order {
		cfg, ok := byType[st]
		if !ok {
			continue
		}

		module := app.Name + "." + cfg.RelativePath
		doc, ok := h.settingsMod[module]
		if !ok {
			return fmt.Errorf("settings module %q not found", module)
		}

		parsed, err := ParseSettings(doc)
		if err != nil {
			return fmt.Errorf("settings module %q: %w", module, err)
		}

		h.settings.Merge(parsed)
		h.logger.Debug("plugin settings merged", "app", app.Name, "module", module, "keys", len(parsed))
	}

	return nil
}

// Handler returns the handler serving every mounted route. Extra routes may
// be added to the returned mux by the caller.
func (h *Host) Handler() *http.ServeMux {
	return h.mux
}

// Reverse resolves a route name ("name" or "namespace:name") to a path,
// substituting args for the route's wildcards in order.
func (h *Host) Reverse(name string, args ...string) (string, error) {
	h.mu.RLock()
	route, ok := h.routes[name]
	h.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoReverseMatch, name)
	}

	return route.reverse(args)
}

// Apps returns the installed apps in registration order.
func (h *Host) Apps() []AppConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]AppConfig(nil), h.apps...)
}

// Setting returns a merged setting value.
func (h *Host) Setting(key string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.settings[key]
	return v, ok
}

// SettingString returns a merged string setting, or def if unset or not a string.
func (h *Host) SettingString(key, def string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settings.String(key, def)
}

// SettingInt returns a merged integer setting, or def if unset or not an integer.
func (h *Host) SettingInt(key string, def int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settings.Int(key, def)
}

// handle registers a pattern, turning ServeMux's panic on invalid or
// conflicting patterns into an error.
func handle(mux *http.ServeMux, pattern string, handler http.Handler) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("mount %q: %v", pattern, v)
		}
	}()

	mux.Handle(pattern, handler)
	return nil
}
