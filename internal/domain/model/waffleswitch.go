package model

import "time"

// MaxSwitchNameLength is the column width of waffle_switch.name.
const MaxSwitchNameLength = 100

// WaffleSwitch is a named boolean feature flag. A switch without a stored
// row is "not set" and resolves to inactive.
type WaffleSwitch struct {
	Name     string
	Active   bool
	Note     string
	Created  time.Time
	Modified time.Time
}
