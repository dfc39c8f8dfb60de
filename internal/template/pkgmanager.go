package template

import (
	"strings"

	"github.com/conn-castle/recipegen/internal/schema"
)

// installLines returns the shell lines that install pkgs with the given
// package manager. The caller joins the lines into a single Run
// instruction so renderers treat the install as one step.
func installLines(pkgManager string, pkgs []string) []string {
	switch pkgManager {
	case schema.Apt:
		return []string{
			"apt-get update -qq",
			"apt-get install -y -q --no-install-recommends " + strings.Join(pkgs, " "),
			"rm -rf /var/lib/apt/lists/*",
		}
	case schema.Yum:
		return []string{
			"yum install -y -q " + strings.Join(pkgs, " "),
			"yum clean all",
			"rm -rf /var/cache/yum/*",
		}
	}
	return nil
}

// mergeDeps concatenates dependency lists, deduplicating by exact name
// while preserving first-seen order. Template-level entries come first so
// later installers can assume earlier ones satisfied shared dependencies.
func mergeDeps(lists ...[]string) []string {
	var merged []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, pkg := range list {
			if _, ok := seen[pkg]; ok {
				continue
			}
			seen[pkg] = struct{}{}
			merged = append(merged, pkg)
		}
	}
	return merged
}
