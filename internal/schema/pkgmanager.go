package schema

import "sort"

// Recognized package manager identifiers. They are the only valid keys of
// a template's dependency mappings.
const (
	Apt = "apt"
	Yum = "yum"
)

var packageManagers = map[string]struct{}{
	Apt: {},
	Yum: {},
}

// KnownPackageManager reports whether name is a recognized package
// manager identifier.
func KnownPackageManager(name string) bool {
	_, ok := packageManagers[name]
	return ok
}

// PackageManagers returns the recognized identifiers, sorted.
func PackageManagers() []string {
	names := make([]string, 0, len(packageManagers))
	for name := range packageManagers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
