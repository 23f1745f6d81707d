// Package httphandler implements the REST driving adapter for the plugin endpoints.
package httphandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/openedx-plugin/internal/application"
	"github.com/ericfisherdev/openedx-plugin/internal/domain/port/driven"
	"github.com/ericfisherdev/openedx-plugin/internal/plugin"
)

// HostInfo is the part of the plugin host the handlers read: where they run
// and the merged settings.
type HostInfo interface {
	ProjectType() plugin.ProjectType
	Environment() plugin.SettingsType
	SettingString(key, def string) string
	SettingInt(key string, def int) int
}

// FlagResolver resolves the waffle switches one plugin declares.
type FlagResolver interface {
	SwitchChecker
	Flags(ctx context.Context) (map[string]bool, error)
}

// AppInfo identifies the plugin app an endpoint reports on.
type AppInfo struct {
	Name        string
	Label       string
	VerboseName string
	Version     string
	Switches    FlagResolver
}

// Handler is the HTTP driving adapter that serves the plugin REST API.
type Handler struct {
	coursePoints driven.CoursePointsStore
	releases     *application.ReleaseService
	host         HostInfo
	logger       *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. releases may be nil.
func NewHandler(
	coursePoints driven.CoursePointsStore,
	releases *application.ReleaseService,
	host HostInfo,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		coursePoints: coursePoints,
		releases:     releases,
		host:         host,
		logger:       logger,
	}
}

// Meta returns a handler describing app and the host it is installed in.
func (h *Handler) Meta(app AppInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switches, err := app.Switches.Flags(r.Context())
		if err != nil {
			h.logger.Warn("waffle switches unavailable", "app", app.Name, "error", err)
			switches = map[string]bool{}
		}

		resp := MetaResponse{
			Name:           app.Name,
			Label:          app.Label,
			VerboseName:    app.VerboseName,
			Version:        app.Version,
			ProjectType:    string(h.host.ProjectType()),
			Environment:    string(h.host.Environment()),
			PlatformName:   h.host.SettingString("PLATFORM_NAME", ""),
			SupportEmail:   h.host.SettingString("OPENEDX_PLUGIN_API_SUPPORT_EMAIL", ""),
			WaffleSwitches: switches,
		}

		if h.releases != nil {
			if latest, ok := h.releases.Latest(); ok {
				resp.LatestRelease = latest
				resp.UpdateAvailable = application.IsNewerVersion(latest, app.Version)
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// ListCoursePoints returns stored course points records, capped by the
// OPENEDX_PLUGIN_API_MAX_RESULTS setting.
func (h *Handler) ListCoursePoints(w http.ResponseWriter, r *http.Request) {
	records, err := h.coursePoints.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list course points", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	limit := h.host.SettingInt("OPENEDX_PLUGIN_API_MAX_RESULTS", 100)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	resp := make([]CoursePointsResponse, 0, len(records))
	for _, cp := range records {
		resp = append(resp, toCoursePointsResponse(cp))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetCoursePoints returns every record of one course with their total.
func (h *Handler) GetCoursePoints(w http.ResponseWriter, r *http.Request) {
	total, ok := h.courseTotal(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, total)
}

// GetMobileCoursePoints returns the course total without the individual records.
func (h *Handler) GetMobileCoursePoints(w http.ResponseWriter, r *http.Request) {
	total, ok := h.courseTotal(w, r)
	if !ok {
		return
	}
	total.Records = nil
	writeJSON(w, http.StatusOK, total)
}

// MobileMeta returns a handler describing the mobile app plugin.
func (h *Handler) MobileMeta(app AppInfo, enabledSwitch string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, MobileMetaResponse{
			Name:          app.Name,
			Version:       app.Version,
			MinAppVersion: h.host.SettingString("OPENEDX_PLUGIN_MOBILE_API_MIN_APP_VERSION", ""),
			Enabled:       app.Switches.IsActive(r.Context(), enabledSwitch),
		})
	}
}

// courseTotal loads the records of the course named by the course_id path
// value. It writes the error response itself and returns false on failure.
func (h *Handler) courseTotal(w http.ResponseWriter, r *http.Request) (CourseTotalResponse, bool) {
	courseID := r.PathValue("course_id")
	if courseID == "" {
		writeError(w, http.StatusBadRequest, "course_id is required")
		return CourseTotalResponse{}, false
	}

	records, err := h.coursePoints.GetByCourseID(r.Context(), courseID)
	if err != nil {
		h.logger.Error("failed to get course points", "course_id", courseID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return CourseTotalResponse{}, false
	}

	if len(records) == 0 {
		writeError(w, http.StatusNotFound, "course points not found")
		return CourseTotalResponse{}, false
	}

	resp := CourseTotalResponse{
		CourseID: courseID,
		Records:  make([]CoursePointsResponse, 0, len(records)),
	}
	for _, cp := range records {
		resp.TotalPoints += cp.Points
		resp.Records = append(resp.Records, toCoursePointsResponse(cp))
	}

	return resp, true
}
