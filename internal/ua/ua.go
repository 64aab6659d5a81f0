// internal/ua/ua.go
//
// User-Agent parsing for presenters.
//
// Wraps `github.com/avct/uasurfer` so templates see plain strings instead
// of the library's enums.  The debug presenter exposes Info through its
// inline templates, e.g. `{{ .self.UA.Browser }}`.
package ua

import (
	"fmt"
	"strconv"
	"strings"

	surfer "github.com/avct/uasurfer"
)

// Info carries the UA attributes a presenter may show.
//
// Example (Chrome on macOS):
//
//	Browser   "Chrome"
//	Version   "125.0.6422"
//	OS        "MacOSX"
//	OSVersion "14.4"
//	Device    "Desktop"
//	Platform  "Mac"
//	IsBot     false
//
// Device is one of "Desktop", "Mobile", "Tablet", or "Other".
type Info struct {
	Browser   string
	Version   string
	OS        string
	OSVersion string
	Device    string
	Platform  string
	IsBot     bool
	Raw       string
}

// Parse converts a raw header into Info.  An empty header yields an Info
// with Device "Other" and every name field set to the library's unknown
// value.
func Parse(raw string) Info {
	u := surfer.Parse(raw)

	info := Info{
		Browser:   trimPrefix(u.Browser.Name.String(), "Browser"),
		Version:   versionToString(u.Browser.Version),
		OS:        trimPrefix(u.OS.Name.String(), "OS"),
		OSVersion: versionToString(u.OS.Version),
		Platform:  trimPrefix(u.OS.Platform.String(), "Platform"),
		IsBot:     u.IsBot(),
		Raw:       raw,
	}

	switch u.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "Desktop"
	case surfer.DeviceTablet:
		info.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		info.Device = "Mobile"
	default:
		info.Device = "Other"
	}

	return info
}

// Summary is the one-line form used in page footers and log fields.
func (i Info) Summary() string {
	var b strings.Builder
	b.WriteString(i.Browser)
	if i.Version != "" {
		b.WriteString(" " + i.Version)
	}
	b.WriteString(" on " + i.OS)
	if i.OSVersion != "" {
		b.WriteString(" " + i.OSVersion)
	}
	b.WriteString(" (" + i.Device + ")")
	if i.IsBot {
		b.WriteString(" [bot]")
	}
	return b.String()
}

// trimPrefix drops the enum type prefix uasurfer's String methods emit,
// e.g. "BrowserChrome" → "Chrome".
func trimPrefix(s, prefix string) string {
	if t := strings.TrimPrefix(s, prefix); t != "" {
		return t
	}
	return s
}

// versionToString renders a version in dotted form while trimming
// trailing zeros, e.g. 17.0.0 → "17", 17.3.0 → "17.3", 17.3.1 → "17.3.1".
func versionToString(v surfer.Version) string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return ""
	}
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if v.Minor != 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(int(v.Major))
}
