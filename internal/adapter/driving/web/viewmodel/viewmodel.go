// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// StatusPageViewModel holds the data for the plugin status page.
type StatusPageViewModel struct {
	PlatformName string
	ProjectType  string
	Environment  string
	StoreReady   bool
	Apps         []AppViewModel
	Switches     []SwitchViewModel
}

// AppViewModel describes one installed plugin app.
type AppViewModel struct {
	Name        string
	Label       string
	VerboseName string
	Version     string
	// DescriptionHTML is sanitized HTML rendered from the app's Markdown description.
	DescriptionHTML string
	URLPrefix       string
}

// SwitchViewModel is one stored waffle switch.
type SwitchViewModel struct {
	Name     string
	Active   bool
	Note     string
	Modified string
}
