package edxapi

// SwitchCoursePoints enables the course points endpoints.
const SwitchCoursePoints = "openedx_plugin_api.course_points"

// switches lists every waffle switch the app reports at startup.
var switches = []string{
	SwitchCoursePoints,
}
