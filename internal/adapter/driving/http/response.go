package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/openedx-plugin/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// MetaResponse describes an installed plugin and the host it runs in.
type MetaResponse struct {
	Name            string          `json:"name"`
	Label           string          `json:"label"`
	VerboseName     string          `json:"verbose_name"`
	Version         string          `json:"version"`
	ProjectType     string          `json:"project_type"`
	Environment     string          `json:"environment"`
	PlatformName    string          `json:"platform_name"`
	SupportEmail    string          `json:"support_email,omitempty"`
	LatestRelease   string          `json:"latest_release,omitempty"`
	UpdateAvailable bool            `json:"update_available"`
	WaffleSwitches  map[string]bool `json:"waffle_switches"`
}

// MobileMetaResponse is the compact metadata returned to mobile clients.
type MobileMetaResponse struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	MinAppVersion string `json:"min_app_version"`
	Enabled       bool   `json:"enabled"`
}

// CoursePointsResponse is the JSON representation of a course points record.
type CoursePointsResponse struct {
	ID       int64  `json:"id"`
	CourseID string `json:"course_id"`
	Points   int    `json:"points"`
}

// CourseTotalResponse aggregates every record of one course.
type CourseTotalResponse struct {
	CourseID    string                 `json:"course_id"`
	TotalPoints int                    `json:"total_points"`
	Records     []CoursePointsResponse `json:"records,omitempty"`
}

func toCoursePointsResponse(cp model.CoursePoints) CoursePointsResponse {
	return CoursePointsResponse{
		ID:       cp.ID,
		CourseID: cp.CourseID,
		Points:   cp.Points,
	}
}
