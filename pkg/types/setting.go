// Setting entity for small persisted preferences.
package types

import "time"

// Well-known setting keys.
const (
	SettingAutoExportReminder = "autoExportReminder"
)

// SettingDefaults maps well-known keys to the value reported when the key has
// never been written.
var SettingDefaults = map[string]string{
	SettingAutoExportReminder: "true",
}

// Setting is a persisted key/value preference.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
