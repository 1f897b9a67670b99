// Package build holds build-time information injected at link time via
// -ldflags, plus helpers to report it.
package build

import (
	"runtime"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/version"
	"golang.org/x/mod/semver"
)

// Injected by the build process.
var (
	Version   = "v0.0.0"
	Branch    = "HEAD"
	Revision  = "unknown"
	BuildUser = "unknown"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

// Print returns version information in the Prometheus one-line format.
func Print(program string) string {
	injectVersion()
	return version.Print(program)
}

// NewCollector returns a collector that exports a build_info metric for
// program with the injected version labels.
func NewCollector(program string) prometheus.Collector {
	injectVersion()
	return version.NewCollector(program)
}

func injectVersion() {
	version.Version = normalizeVersion(Version)
	version.Branch = Branch
	version.Revision = Revision
	version.BuildUser = BuildUser
	version.BuildDate = BuildDate
}

// normalizeVersion coerces version strings into canonical semver form
// with a leading v; strings that are not semver pass through unchanged.
func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "v0.0.0"
	}
	withPrefix := v
	if !strings.HasPrefix(withPrefix, "v") {
		withPrefix = "v" + withPrefix
	}
	if semver.IsValid(withPrefix) {
		return withPrefix
	}
	return v
}
