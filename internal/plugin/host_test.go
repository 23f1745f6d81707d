package plugin_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ericfisherdev/openedx-plugin/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body+r.PathValue("course_id"))
	})
}

func newTestHost(t *testing.T, env plugin.SettingsType) *plugin.Host {
	t.Helper()
	h, err := plugin.NewHost(plugin.ProjectTypeLMS, env, plugin.Settings{"PLATFORM_NAME": "Host"}, discardLogger())
	require.NoError(t, err)
	return h
}

func apiApp(ready func(context.Context)) plugin.AppConfig {
	return plugin.AppConfig{
		Name: "example.api",
		PluginApp: plugin.Descriptor{
			URLs: map[plugin.ProjectType]plugin.URLConfig{
				plugin.ProjectTypeLMS: {Namespace: "example_api", Regex: "^example/api/", RelativePath: "urls"},
			},
			Settings: map[plugin.ProjectType]map[plugin.SettingsType]plugin.SettingsConfig{
				plugin.ProjectTypeLMS: {
					plugin.SettingsTypeCommon:     {RelativePath: "settings.common"},
					plugin.SettingsTypeProduction: {RelativePath: "settings.production"},
				},
			},
		},
		Ready: ready,
	}
}

func provideAPIModules(h *plugin.Host) {
	h.ProvideURLs("example.api.urls", []plugin.Route{
		{Name: "example/api/meta", Method: http.MethodGet, Path: "meta", Handler: textHandler("meta")},
		{Name: "detail", Method: http.MethodGet, Path: "points/{course_id}", Handler: textHandler("points:")},
	})
	h.ProvideSettings("example.api.settings.common", []byte("PLATFORM_NAME: Common\nPAGE_SIZE: 10\nSUPPORT: common@example.com\n"))
	h.ProvideSettings("example.api.settings.production", []byte("SUPPORT: prod@example.com\n"))
}

func TestHost_MountsAndReverses(t *testing.T) {
	h := newTestHost(t, plugin.SettingsTypeProduction)
	provideAPIModules(h)
	require.NoError(t, h.Register(apiApp(nil)))
	require.NoError(t, h.Setup(context.Background()))

	path, err := h.Reverse("example/api/meta")
	require.NoError(t, err)
	assert.Equal(t, "/example/api/meta", path)

	nsPath, err := h.Reverse("example_api:example/api/meta")
	require.NoError(t, err)
	assert.Equal(t, path, nsPath)

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "meta", rec.Body.String())
}

func TestHost_ReverseWithArguments(t *testing.T) {
	h := newTestHost(t, plugin.SettingsTypeCommon)
	provideAPIModules(h)
	require.NoError(t, h.Register(apiApp(nil)))
	require.NoError(t, h.Setup(context.Background()))

	path, err := h.Reverse("detail", "course-v1:edX+DemoX+Demo_Course")
	require.NoError(t, err)
	assert.Equal(t, "/example/api/points/course-v1:edX+DemoX+Demo_Course", path)

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, "points:course-v1:edX+DemoX+Demo_Course", rec.Body.String())

	_, err = h.Reverse("detail")
	assert.ErrorIs(t, err, plugin.ErrNoReverseMatch)
}

func TestHost_ReverseUnknownName(t *testing.T) {
	h := newTestHost(t, plugin.SettingsTypeCommon)
	require.NoError(t, h.Setup(context.Background()))

	_, err := h.Reverse("missing")
	assert.ErrorIs(t, err, plugin.ErrNoReverseMatch)
}

func TestHost_SettingsPrecedence(t *testing.T) {
	h := newTestHost(t, plugin.SettingsTypeProduction)
	provideAPIModules(h)
	require.NoError(t, h.Register(apiApp(nil)))
	require.NoError(t, h.Setup(context.Background()))

	assert.Equal(t, "Common", h.SettingString("PLATFORM_NAME", ""))
	assert.Equal(t, "prod@example.com", h.SettingString("SUPPORT", ""))
	assert.Equal(t, 10, h.SettingInt("PAGE_SIZE", 0))
	assert.Equal(t, 7, h.SettingInt("MISSING", 7))
}

func TestHost_CommonEnvironmentSkipsProductionSettings(t *testing.T) {
	h := newTestHost(t, plugin.SettingsTypeCommon)
	provideAPIModules(h)
	require.NoError(t, h.Register(apiApp(nil)))
	require.NoError(t, h.Setup(context.Background()))

	assert.Equal(t, "common@example.com", h.SettingString("SUPPORT", ""))
}

func TestHost_ReadyRunsOnceAfterDescriptors(t *testing.T) {
	h := newTestHost(t, plugin.SettingsTypeCommon)
	provideAPIModules(h)

	calls := 0
	var mountedAtReady bool
	require.NoError(t, h.Register(apiApp(func(context.Context) {
		calls++
		_, err := h.Reverse("example/api/meta")
		mountedAtReady = err == nil
	})))

	require.NoError(t, h.Setup(context.Background()))
	assert.ErrorIs(t, h.Setup(context.Background()), plugin.ErrAlreadySetUp)

	assert.Equal(t, 1, calls)
	assert.True(t, mountedAtReady, "urls are mounted before ready hooks run")
}

func TestHost_MissingURLModule(t *testing.T) {
	h := newTestHost(t, plugin.SettingsTypeCommon)

	called := false
	require.NoError(t, h.Register(apiApp(func(context.Context) { called = true })))

	err := h.Setup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "example.api.urls")
	assert.False(t, called, "hooks do not run when a descriptor is malformed")
}

func TestHost_MissingSettingsModule(t *testing.T) {
	h := newTestHost(t, plugin.SettingsTypeCommon)
	h.ProvideURLs("example.api.urls", nil)
	require.NoError(t, h.Register(apiApp(nil)))

	err := h.Setup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "example.api.settings.common")
}

func TestHost_InvalidSettingsDocument(t *testing.T) {
	h := newTestHost(t, plugin.SettingsTypeCommon)
	h.ProvideURLs("example.api.urls", nil)
	h.ProvideSettings("example.api.settings.common", []byte("- not\n- a mapping\n"))
	require.NoError(t, h.Register(apiApp(nil)))

	assert.Error(t, h.Setup(context.Background()))
}

func TestHost_RejectsNonLiteralRegex(t *testing.T) {
	tests := []string{"example/api/", "^example/(api)/", "^example/api"}

	for _, regex := range tests {
		t.Run(regex, func(t *testing.T) {
			h := newTestHost(t, plugin.SettingsTypeCommon)
			h.ProvideURLs("bad.urls", nil)
			require.NoError(t, h.Register(plugin.AppConfig{
				Name: "bad",
				PluginApp: plugin.Descriptor{URLs: map[plugin.ProjectType]plugin.URLConfig{
					plugin.ProjectTypeLMS: {Regex: regex, RelativePath: "urls"},
				}},
			}))

			assert.Error(t, h.Setup(context.Background()))
		})
	}
}

func TestHost_ConflictingRoutes(t *testing.T) {
	h := newTestHost(t, plugin.SettingsTypeCommon)
	route := []plugin.Route{{Name: "x", Method: http.MethodGet, Path: "x", Handler: textHandler("x")}}
	h.ProvideURLs("a.urls", route)
	h.ProvideURLs("b.urls", route)

	for _, name := range []string{"a", "b"} {
		require.NoError(t, h.Register(plugin.AppConfig{
			Name: name,
			PluginApp: plugin.Descriptor{URLs: map[plugin.ProjectType]plugin.URLConfig{
				plugin.ProjectTypeLMS: {Regex: "^shared/", RelativePath: "urls"},
			}},
		}))
	}

	assert.Error(t, h.Setup(context.Background()))
}

func TestHost_SkipsOtherProjectTypes(t *testing.T) {
	h, err := plugin.NewHost(plugin.ProjectTypeCMS, plugin.SettingsTypeCommon, nil, discardLogger())
	require.NoError(t, err)
	require.NoError(t, h.Register(apiApp(nil)))

	require.NoError(t, h.Setup(context.Background()), "modules are only resolved for the host's project type")

	_, err = h.Reverse("example/api/meta")
	assert.ErrorIs(t, err, plugin.ErrNoReverseMatch)
}

func TestHost_RegisterDuplicate(t *testing.T) {
	h := newTestHost(t, plugin.SettingsTypeCommon)
	require.NoError(t, h.Register(apiApp(nil)))
	assert.Error(t, h.Register(apiApp(nil)))
}

func TestNewHost_RejectsUnknownTypes(t *testing.T) {
	_, err := plugin.NewHost("studio", plugin.SettingsTypeCommon, nil, discardLogger())
	assert.Error(t, err)

	_, err = plugin.NewHost(plugin.ProjectTypeLMS, "staging", nil, discardLogger())
	assert.Error(t, err)
}

func TestAppConfig_Label(t *testing.T) {
	assert.Equal(t, "openedx_plugin_api", plugin.AppConfig{Name: "openedx_plugin_api"}.Label())
	assert.Equal(t, "api", plugin.AppConfig{Name: "example.api"}.Label())
}
