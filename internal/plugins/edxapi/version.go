package edxapi

// Version is the released version of the openedx_plugin_api app.
const Version = "1.2.3"
