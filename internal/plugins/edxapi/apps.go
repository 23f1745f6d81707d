// Package edxapi is the openedx_plugin_api app: REST endpoints describing the
// plugin and exposing course points, mounted under /openedx_plugin/api/.
package edxapi

import (
	"context"
	"embed"
	"fmt"
	"net/http"

	httphandler "github.com/ericfisherdev/openedx-plugin/internal/adapter/driving/http"
	"github.com/ericfisherdev/openedx-plugin/internal/application"
	"github.com/ericfisherdev/openedx-plugin/internal/domain/port/driven"
	"github.com/ericfisherdev/openedx-plugin/internal/plugin"
)

// Name is the app name; URL and settings modules resolve relative to it.
const Name = "openedx_plugin_api"

// MetaRouteName is the route name of the edxapi_meta endpoint.
const MetaRouteName = "openedx_plugin/api/edxapi_meta"

//go:embed settings/*.yaml
var settingsFS embed.FS

const description = `REST API extensions for the **Open edX** LMS.

- ` + "`edxapi_meta`" + ` reports the plugin version and waffle switch state
- ` + "`course_points`" + ` exposes points tracked per course (switch ` + "`" + SwitchCoursePoints + "`" + `)
`

// Descriptor is the static configuration the host reads to mount this app.
var Descriptor = plugin.Descriptor{
	URLs: map[plugin.ProjectType]plugin.URLConfig{
		plugin.ProjectTypeLMS: {
			Namespace:    Name,
			Regex:        "^openedx_plugin/api/",
			RelativePath: "urls",
		},
	},
	Settings: map[plugin.ProjectType]map[plugin.SettingsType]plugin.SettingsConfig{
		plugin.ProjectTypeLMS: {
			plugin.SettingsTypeCommon:     {RelativePath: "settings.common"},
			plugin.SettingsTypeProduction: {RelativePath: "settings.production"},
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
	app := newAppConfig(deps.Readiness, flags)

	host.ProvideURLs(Name+".urls", urls(deps.API, app, flags))

	for _, st := range []plugin.SettingsType{plugin.SettingsTypeCommon, plugin.SettingsTypeProduction} {
		doc, err := settingsFS.ReadFile("settings/" + string(st) + ".yaml")
		if err != nil {
			return fmt.Errorf("read %s settings: %w", st, err)
		}
		host.ProvideSettings(Name+".settings."+string(st), doc)
	}

	return host.Register(app)
}

func newAppConfig(readiness *application.ReadinessService, flags *application.SwitchSet) plugin.AppConfig {
	app := plugin.AppConfig{
		Name:        Name,
		VerboseName: "Open edX Plugin REST API",
		Description: description,
		Version:     Version,
		PluginApp:   Descriptor,
	}
	app.Ready = func(ctx context.Context) {
		readiness.Ready(ctx, app.Label(), Version, flags)
	}
	return app
}

func urls(api *httphandler.Handler, app plugin.AppConfig, flags *application.SwitchSet) []plugin.Route {
	info := httphandler.AppInfo{
		Name:        app.Name,
		Label:       app.Label(),
		VerboseName: app.VerboseName,
		Version:     Version,
		Switches:    flags,
	}

	return []plugin.Route{
		{
			Name:    MetaRouteName,
			Method:  http.MethodGet,
			Path:    "edxapi_meta",
			Handler: api.Meta(info),
		},
		{
			Name:    "openedx_plugin/api/course_points",
			Method:  http.MethodGet,
			Path:    "course_points",
			Handler: httphandler.RequireSwitch(flags, SwitchCoursePoints, http.HandlerFunc(api.ListCoursePoints)),
		},
		{
			Name:    "openedx_plugin/api/course_points_detail",
			Method:  http.MethodGet,
			Path:    "course_points/{course_id}",
			Handler: httphandler.RequireSwitch(flags, SwitchCoursePoints, http.HandlerFunc(api.GetCoursePoints)),
		},
	}
}
