package mobileapi

// SwitchEnabled turns the mobile course endpoints on.
const SwitchEnabled = "openedx_plugin_mobile_api.enabled"

var switches = []string{
	SwitchEnabled,
}
