// Package web implements the HTML status page driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/openedx-plugin/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/openedx-plugin/internal/domain/port/driven"
	"github.com/ericfisherdev/openedx-plugin/internal/plugin"
)

// PluginHost is the part of the plugin host the status page reads.
type PluginHost interface {
	Apps() []plugin.AppConfig
	ProjectType() plugin.ProjectType
	Environment() plugin.SettingsType
	SettingString(key, def string) string
}

// Handler is the web driving adapter that serves the status page.
type Handler struct {
	host     PluginHost
	switches driven.SwitchStore
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(host PluginHost, switches driven.SwitchStore, logger *slog.Logger) *Handler {
	return &Handler{
		host:     host,
		switches: switches,
		logger:   logger,
	}
}

// Status renders the installed plugins and the stored waffle switches.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := toStatusPageViewModel(h.host)

	page.StoreReady = h.switches.IsReady(ctx)
	if page.StoreReady {
		stored, err := h.switches.ListAll(ctx)
		if err != nil {
			h.logger.Error("failed to list waffle switches", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		page.Switches = toSwitchViewModels(stored)
	}

	layout := templates.Layout(page.PlatformName+" plugins", templates.StatusPage(page))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layout.Render(ctx, w); err != nil {
		h.logger.Error("failed to render status page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
