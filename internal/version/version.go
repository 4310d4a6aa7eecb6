// Package version holds the build version, overridable with
// -ldflags "-X nucleictl/internal/version.AppVersion=...".
package version

var AppVersion = "0.1.0"
