package urltree

// MatchMode selects how strictly a part of a tree is compared
type MatchMode string

const (
	// MatchExact requires the parts to be identical
	MatchExact MatchMode = "exact"
	// MatchSubset requires the checked tree to be contained in the current one
	MatchSubset MatchMode = "subset"
	// MatchIgnored skips the comparison entirely
	MatchIgnored MatchMode = "ignored"
)

// MatchOptions controls tree containment checks
type MatchOptions struct {
	Paths        MatchMode // exact or subset
	QueryParams  MatchMode // exact or subset
	Fragment     MatchMode // exact or ignored
	MatrixParams MatchMode // exact, subset or ignored
}

// ExactMatchOptions compares every part of the tree strictly
func ExactMatchOptions() MatchOptions {
	return MatchOptions{
		Paths:        MatchExact,
		QueryParams:  MatchExact,
		Fragment:     MatchIgnored,
		MatrixParams: MatchIgnored,
	}
}

// SubsetMatchOptions treats the checked tree as a prefix of the current one
func SubsetMatchOptions() MatchOptions {
	return MatchOptions{
		Paths:        MatchSubset,
		QueryParams:  MatchSubset,
		Fragment:     MatchIgnored,
		MatrixParams: MatchIgnored,
	}
}

// ContainsTree reports whether container holds containee under the
// given match options. Container is typically the currently active
// address, containee the address being checked.
func ContainsTree(container, containee *Tree, options MatchOptions) bool {
	var queryParamsMatch bool
	switch options.QueryParams {
	case MatchExact:
		queryParamsMatch = paramsEqual(container.QueryParams, containee.QueryParams)
	default:
		queryParamsMatch = containsQueryParams(container.QueryParams, containee.QueryParams)
	}

	fragmentMatch := options.Fragment != MatchExact || container.Fragment == containee.Fragment

	var pathsMatch bool
	switch options.Paths {
	case MatchExact:
		pathsMatch = equalSegmentGroupsWith(container.Root, containee.Root, options.MatrixParams)
	default:
		pathsMatch = containsSegmentGroup(container.Root, containee.Root, containee.Root.Segments, options.MatrixParams)
	}

	return queryParamsMatch && fragmentMatch && pathsMatch
}

func containsQueryParams(container, containee map[string][]string) bool {
	for k, want := range containee {
		got, ok := container[k]
		if !ok || len(got) != len(want) {
			return false
		}
		for i := range want {
			if got[i] != want[i] {
				return false
			}
		}
	}
	return true
}

func equalSegmentGroupsWith(a, b *SegmentGroup, matrixParams MatchMode) bool {
	if a == nil || b == nil {
		return (a == nil || !a.HasChildren() && len(a.Segments) == 0) &&
			(b == nil || !b.HasChildren() && len(b.Segments) == 0)
	}
	if !equalPaths(a.Segments, b.Segments) {
		return false
	}
	if !matrixParamsMatch(a.Segments, b.Segments, matrixParams) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for name, child := range a.Children {
		other, ok := b.Children[name]
		if !ok || !equalSegmentGroupsWith(child, other, matrixParams) {
			return false
		}
	}
	return true
}

func containsSegmentGroup(container, containee *SegmentGroup, containeePaths []Segment, matrixParams MatchMode) bool {
	switch {
	case len(container.Segments) > len(containeePaths):
		current := container.Segments[:len(containeePaths)]
		if !equalPaths(current, containeePaths) {
			return false
		}
		if containee.HasChildren() {
			return false
		}
		return matrixParamsMatch(current, containeePaths, matrixParams)

	case len(container.Segments) == len(containeePaths):
		if !equalPaths(container.Segments, containeePaths) {
			return false
		}
		if !matrixParamsMatch(container.Segments, containeePaths, matrixParams) {
			return false
		}
		for name, child := range containee.Children {
			containerChild, ok := container.Children[name]
			if !ok {
				return false
			}
			if !containsSegmentGroup(containerChild, child, child.Segments, matrixParams) {
				return false
			}
		}
		return true

	default:
		current := containeePaths[:len(container.Segments)]
		next := containeePaths[len(container.Segments):]
		if !equalPaths(container.Segments, current) {
			return false
		}
		if !matrixParamsMatch(container.Segments, current, matrixParams) {
			return false
		}
		primary := container.PrimaryChild()
		if primary == nil {
			return false
		}
		return containsSegmentGroup(primary, containee, next, matrixParams)
	}
}

func equalPaths(a, b []Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Path != b[i].Path {
			return false
		}
	}
	return true
}

func matrixParamsMatch(container, containee []Segment, mode MatchMode) bool {
	switch mode {
	case MatchExact:
		for i := range containee {
			if !exactParams(container[i].Parameters, containee[i].Parameters) {
				return false
			}
		}
		return true
	case MatchSubset:
		for i := range containee {
			if !subsetParams(container[i].Parameters, containee[i].Parameters) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func exactParams(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func subsetParams(container, containee map[string]string) bool {
	for k, v := range containee {
		if container[k] != v {
			return false
		}
	}
	return true
}
