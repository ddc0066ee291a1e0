package transport

import "github.com/ben-ranford/cmdtransport/internal/pkggraph"

// DependencyPackages expands names into the ids of every matching
// dependency of pkg plus everything those dependencies depend on.
func DependencyPackages(names []string, pkg *pkggraph.Package) []string {
	if len(names) == 0 || pkg == nil {
		return nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	e := ignoreExpander{
		wanted:  wanted,
		visited: make(map[string]bool),
		seen:    make(map[string]bool),
	}
	e.walk(pkg, false)
	return e.result
}

type ignoreExpander struct {
	wanted  map[string]bool
	visited map[string]bool
	seen    map[string]bool
	result  []string
}

func (e *ignoreExpander) walk(pkg *pkggraph.Package, included bool) {
	for _, name := range pkg.DependencyNames() {
		dep := pkg.Dependencies[name]
		if dep == nil {
			continue
		}
		isIncluded := included || e.wanted[name]
		key := visitKey(dep.ID, isIncluded)
		if e.visited[key] {
			continue
		}
		e.visited[key] = true

		if isIncluded && !e.seen[dep.ID] {
			e.seen[dep.ID] = true
			e.result = append(e.result, dep.ID)
		}
		e.walk(dep, isIncluded)
	}
}

func visitKey(id string, included bool) string {
	if included {
		return "+" + id
	}
	return "-" + id
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
