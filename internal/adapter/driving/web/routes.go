package web

import "net/http"

// RegisterRoutes registers the status page on the provided mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /openedx_plugin/{$}", h.Status)
}
