// Package plugin defines the descriptor a plugin app exposes to its host and
// the host side that reads descriptors to mount URLs, merge settings and run
// readiness hooks.
package plugin

import (
	"context"
	"strings"
)

// ProjectType identifies the kind of host project a descriptor entry targets.
type ProjectType string

const (
	ProjectTypeLMS ProjectType = "lms"
	ProjectTypeCMS ProjectType = "cms"
)

// SettingsType identifies the settings environment a settings module is merged into.
type SettingsType string

const (
	SettingsTypeCommon     SettingsType = "common"
	SettingsTypeProduction SettingsType = "production"
	SettingsTypeDevstack   SettingsType = "devstack"
	SettingsTypeTest       SettingsType = "test"
)

// Valid reports whether p is a known project type.
func (p ProjectType) Valid() bool {
	return p == ProjectTypeLMS || p == ProjectTypeCMS
}

// Valid reports whether s is a known settings type.
func (s SettingsType) Valid() bool {
	switch s {
	case SettingsTypeCommon, SettingsTypeProduction, SettingsTypeDevstack, SettingsTypeTest:
		return true
	}
	return false
}

// URLConfig describes where a plugin's URL list is mounted. Regex is an
// anchored path prefix such as "^openedx_plugin/api/"; RelativePath names the
// module, relative to the app, that provides the routes.
type URLConfig struct {
	Namespace    string
	Regex        string
	RelativePath string
}

// SettingsConfig names the settings module, relative to the app, merged into
// one settings environment.
type SettingsConfig struct {
	RelativePath string
}

// Descriptor is the static configuration a host reads once at startup to
// learn how to incorporate a plugin.
type Descriptor struct {
	URLs     map[ProjectType]URLConfig
	Settings map[ProjectType]map[SettingsType]SettingsConfig
}

// AppConfig is an installable plugin app.
type AppConfig struct {
	// Name is the dotted import name; modules are resolved relative to it.
	Name        string
	VerboseName string
	// Description is Markdown shown on the status page.
	Description string
	Version     string
	PluginApp   Descriptor
	// Ready is invoked once by the host after every descriptor is processed.
	Ready func(ctx context.Context)
}

// Label returns the short app label, the last dotted segment of Name.
func (a AppConfig) Label() string {
	if i := strings.LastIndexByte(a.Name, '.'); i >= 0 {
		return a.Name[i+1:]
	}
	return a.Name
}
