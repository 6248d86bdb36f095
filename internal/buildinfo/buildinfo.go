package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Version returns the module version or "dev" when unset.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return "dev"
	}
	version := info.Main.Version
	if version == "" || version == "(devel)" {
		return "dev"
	}
	return version
}

// Tags returns the GOFLAGS build tags recorded at compile time.
func Tags() string {
	return setting("-tags")
}

// Revision returns the VCS revision the binary was built from, suffixed with
// "+dirty" when the tree had local modifications.
func Revision() string {
	rev := setting("vcs.revision")
	if rev == "" {
		return ""
	}
	if setting("vcs.modified") == "true" {
		rev += "+dirty"
	}
	return rev
}

// VersionWithTags returns the version string and tags if present.
func VersionWithTags() string {
	version := Version()
	tags := Tags()
	if tags == "" {
		return version
	}
	return fmt.Sprintf("%s (tags: %s)", version, tags)
}

func setting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
