package plan

import "strings"

// Group is a named subset of manifest paths generated together.
type Group struct {
	Name  string
	Paths []string
}

// DefaultGroup receives every path no predicate claims.
const DefaultGroup = "config"

// groupRules are evaluated in order; the first substring match wins. The
// ordering is part of the contract: a path containing both "publisher" and
// "monitor" always lands in publishers. Priority-over-specificity can
// misclassify such paths; kept for behavioral compatibility.
var groupRules = []struct {
	name   string
	substr string
}{
	{"infrastructure", "docker-compose"},
	{"publishers", "publisher"},
	{"consumers", "consumer"},
	{"monitor", "monitor"},
}

// GroupFor assigns a path to its group. Pure: the same path always maps to
// the same group.
func GroupFor(path string) string {
	for _, rule := range groupRules {
		if strings.Contains(path, rule.substr) {
			return rule.name
		}
	}
	return DefaultGroup
}

// GroupManifest partitions the manifest into groups in fixed priority order
// (infrastructure, publishers, consumers, monitor, config). Assignment is
// total and exclusive; groups with no members are omitted.
func GroupManifest(manifest []string) []Group {
	members := make(map[string][]string, len(groupRules)+1)
	for _, path := range manifest {
		name := GroupFor(path)
		members[name] = append(members[name], path)
	}

	order := make([]string, 0, len(groupRules)+1)
	for _, rule := range groupRules {
		order = append(order, rule.name)
	}
	order = append(order, DefaultGroup)

	var groups []Group
	for _, name := range order {
		if paths := members[name]; len(paths) > 0 {
			groups = append(groups, Group{Name: name, Paths: paths})
		}
	}
	return groups
}
