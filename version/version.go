package version

import (
	"fmt"
	"runtime/debug"
)

// FromBuildInfo describes the running binary: its module version when installed with
// `go install`, otherwise the VCS revision it was built from.
func FromBuildInfo() (version string) {
	version = "unavailable"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}

	return describe(info)
}

func describe(info *debug.BuildInfo) string {
	var vcs, revision, ts string

	modified := false

	for i := range info.Settings {
		switch info.Settings[i].Key {
		case "vcs":
			vcs = info.Settings[i].Value
		case "vcs.revision":
			revision = info.Settings[i].Value
		case "vcs.time":
			ts = info.Settings[i].Value
		case "vcs.modified":
			modified = info.Settings[i].Value == "true"
		default:
			continue
		}
	}

	if v := info.Main.Version; v != "" && v != "(devel)" {
		return "bmad-make " + v
	}

	if revision == "" {
		return "bmad-make (development build)"
	}

	if modified {
		revision += "-dirty"
	}

	if ts == "" {
		return fmt.Sprintf("bmad-make built from %s revision %s", vcs, revision)
	}

	return fmt.Sprintf("bmad-make built from %s revision %s at %s", vcs, revision, ts)
}
