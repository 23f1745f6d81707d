package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ericfisherdev/openedx-plugin/internal/domain/model"
	"github.com/ericfisherdev/openedx-plugin/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHost struct {
	apps []plugin.AppConfig
}

func (s stubHost) Apps() []plugin.AppConfig          { return s.apps }
func (s stubHost) ProjectType() plugin.ProjectType  { return plugin.ProjectTypeLMS }
func (s stubHost) Environment() plugin.SettingsType { return plugin.SettingsTypeCommon }
func (s stubHost) SettingString(key, def string) string {
	if key == "PLATFORM_NAME" {
		return "Turn <The> Bus"
	}
	return def
}

type stubSwitches struct {
	ready    bool
	switches []model.WaffleSwitch
	err      error
}

func (s stubSwitches) IsReady(context.Context) bool                 { return s.ready }
func (s stubSwitches) IsActive(context.Context, string) (bool, error) { return false, nil }
func (s stubSwitches) Set(context.Context, string, bool, string) error {
	return nil
}
func (s stubSwitches) Delete(context.Context, string) error { return nil }
func (s stubSwitches) ListAll(context.Context) ([]model.WaffleSwitch, error) {
	return s.switches, s.err
}

func renderStatus(t *testing.T, h *Handler) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	RegisterRoutes(mux, h)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openedx_plugin/", nil))
	return rec
}

func testApps() []plugin.AppConfig {
	return []plugin.AppConfig{{
		Name:        "openedx_plugin_api",
		VerboseName: "Open edX Plugin REST API",
		Description: "Reports **switch** state.",
		Version:     "1.2.3",
		PluginApp: plugin.Descriptor{URLs: map[plugin.ProjectType]plugin.URLConfig{
			plugin.ProjectTypeLMS: {Regex: "^openedx_plugin/api/"},
		}},
	}}
}

func TestStatus_RendersAppsAndSwitches(t *testing.T) {
	modified := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	h := NewHandler(stubHost{apps: testApps()}, stubSwitches{
		ready: true,
		switches: []model.WaffleSwitch{
			{Name: "openedx_plugin_api.course_points", Active: true, Note: "<b>note</b>", Modified: modified},
		},
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := renderStatus(t, h)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Turn &lt;The&gt; Bus plugins</title>")
	assert.Contains(t, body, "Open edX Plugin REST API")
	assert.Contains(t, body, "<code>/openedx_plugin/api/</code>")
	assert.Contains(t, body, "<strong>switch</strong>")
	assert.Contains(t, body, `<tr class="switch-on"><td>openedx_plugin_api.course_points</td>`)
	assert.Contains(t, body, "&lt;b&gt;note&lt;/b&gt;")
	assert.Contains(t, body, "2026-05-01T08:00:00Z")
}

func TestStatus_StoreNotReady(t *testing.T) {
	h := NewHandler(stubHost{apps: testApps()}, stubSwitches{ready: false}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := renderStatus(t, h)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Waffle switch store is not ready.")
}

func TestStatus_ListError(t *testing.T) {
	h := NewHandler(stubHost{}, stubSwitches{ready: true, err: errors.New("boom")}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := renderStatus(t, h)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStatus_OnlyExactPath(t *testing.T) {
	h := NewHandler(stubHost{}, stubSwitches{ready: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	RegisterRoutes(mux, h)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openedx_plugin/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
