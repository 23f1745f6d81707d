// Package mobileapi is the openedx_plugin_mobile_api app: a customized mobile
// REST API mounted under /openedx_plugin/api/mobile/.
package mobileapi

import (
	"context"
	_ "embed"
	"net/http"

	httphandler "github.com/ericfisherdev/openedx-plugin/internal/adapter/driving/http"
	"github.com/ericfisherdev/openedx-plugin/internal/application"
	"github.com/ericfisherdev/openedx-plugin/internal/domain/port/driven"
	"github.com/ericfisherdev/openedx-plugin/internal/plugin"
)

// Name is the app name; URL and settings modules resolve relative to it.
const Name = "openedx_plugin_mobile_api"

// URLRegex is the fixed mount prefix of the mobile API. It does not follow
// the URL module; moving the endpoints requires editing the descriptor.
const URLRegex = "^openedx_plugin/api/mobile/"

//go:embed settings/common.yaml
var commonSettings []byte

const description = `Modified LMS mobile REST API endpoints for the mobile apps.

Endpoints other than ` + "`meta`" + ` require the waffle switch ` + "`" + SwitchEnabled + "`" + `.
`

// Descriptor is the static configuration the host reads to mount this app.
var Descriptor = plugin.Descriptor{
	URLs: map[plugin.ProjectType]plugin.URLConfig{
		plugin.ProjectTypeLMS: {
			Namespace:    Name,
			Regex:        URLRegex,
			RelativePath: "urls",
		},
	},
	Settings: map[plugin.ProjectType]map[plugin.SettingsType]plugin.SettingsConfig{
		plugin.ProjectTypeLMS: {
			plugin.SettingsTypeCommon: {RelativePath: "settings.common"},
		},
	},
}

// Deps are the collaborators the app needs from the composition root.
type Deps struct {
	API       *httphandler.Handler
	Switches  driven.SwitchStore
	Readiness *application.ReadinessService
}

// Install provides the app's URL and settings modules to host and registers
// its AppConfig.
func Install(host *plugin.Host, deps Deps) error {
	flags := application.NewSwitchSet(deps.Switches, switches...)

	app := plugin.AppConfig{
		Name:        Name,
		VerboseName: "Modified LMS Mobile REST API Endpoint",
		Description: description,
		Version:     Version,
		PluginApp:   Descriptor,
	}
	app.Ready = func(ctx context.Context) {
		deps.Readiness.Ready(ctx, app.Label(), Version, flags)
	}

	info := httphandler.AppInfo{
		Name:        app.Name,
		Label:       app.Label(),
		VerboseName: app.VerboseName,
		Version:     Version,
		Switches:    flags,
	}

	host.ProvideURLs(Name+".urls", []plugin.Route{
		{
			Name:    "openedx_plugin/api/mobile/meta",
			Method:  http.MethodGet,
			Path:    "meta",
			Handler: deps.API.MobileMeta(info, SwitchEnabled),
		},
		{
			Name:    "openedx_plugin/api/mobile/course_points",
			Method:  http.MethodGet,
			Path:    "course_points/{course_id}",
			Handler: httphandler.RequireSwitch(flags, SwitchEnabled, http.HandlerFunc(deps.API.GetMobileCoursePoints)),
		},
	})
	host.ProvideSettings(Name+".settings.common", commonSettings)

	return host.Register(app)
}
