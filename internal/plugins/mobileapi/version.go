package mobileapi

// Version is the released version of the openedx_plugin_mobile_api app.
const Version = "0.4.0"
