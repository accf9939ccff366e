// Package version carries the build identity of the larch CLI.
package version

import "runtime/debug"

// Release builds override these via -ldflags; development builds fall back
// to the VCS stamp the Go toolchain embeds in the binary.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(info.Settings)
	}
}

// fillFromBuildInfo populates unset fields from the toolchain's VCS stamp.
// Values already set by -ldflags win.
func fillFromBuildInfo(settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if GitCommit == "" {
				GitCommit = s.Value
			}
		case "vcs.time":
			if BuildDate == "" {
				BuildDate = s.Value
			}
		}
	}
}
