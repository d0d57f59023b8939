package urltree

import (
	"fmt"
	"strings"
)

// QueryParamsHandling controls how query parameters of the current
// address are carried over when building a new tree
type QueryParamsHandling string

const (
	// QueryParamsDefault uses only the newly supplied query parameters
	QueryParamsDefault QueryParamsHandling = ""
	// QueryParamsMerge merges new query parameters into the current ones
	QueryParamsMerge QueryParamsHandling = "merge"
	// QueryParamsPreserve keeps the current query parameters untouched
	QueryParamsPreserve QueryParamsHandling = "preserve"
)

// CreateOptions modifies how a tree is built from commands
type CreateOptions struct {
	// RelativeTo is the tree the commands are applied against.
	// Nil means the commands are resolved against the root.
	RelativeTo *Tree

	// QueryParams are the query parameters of the new tree
	QueryParams map[string][]string

	// QueryParamsHandling selects merge/preserve/default behavior
	QueryParamsHandling QueryParamsHandling

	// Fragment is the fragment of the new tree
	Fragment string

	// PreserveFragment keeps the current tree's fragment
	PreserveFragment bool
}

// CreateTree builds a tree by applying navigation commands to a base tree.
//
// Commands are path strings ("team/33", "../list", "/absolute") or
// map[string]string values that attach matrix parameters to the
// preceding segment. A nil command is rejected.
func CreateTree(commands []interface{}, opts CreateOptions) (*Tree, error) {
	base := opts.RelativeTo
	if base == nil {
		base = NewTree()
	}

	queryParams, err := resolveQueryParams(base, opts)
	if err != nil {
		return nil, err
	}
	fragment := opts.Fragment
	if opts.PreserveFragment {
		fragment = base.Fragment
	}

	if len(commands) == 0 {
		out := base.Copy()
		out.QueryParams = queryParams
		out.Fragment = fragment
		return out, nil
	}

	nav, err := computeNavigation(commands)
	if err != nil {
		return nil, err
	}

	baseSegments := primaryChain(base.Root)
	var segments []Segment
	if nav.isAbsolute {
		segments = applyCommands(nil, nav.segments)
	} else {
		if nav.numberOfDoubleDots > len(baseSegments) {
			return nil, fmt.Errorf("invalid number of '../' (%d) for path of %d segments",
				nav.numberOfDoubleDots, len(baseSegments))
		}
		prefix := baseSegments[:len(baseSegments)-nav.numberOfDoubleDots]
		segments = applyCommands(prefix, nav.segments)
	}

	root := &SegmentGroup{}
	if len(segments) > 0 {
		root.Children = map[string]*SegmentGroup{
			PrimaryOutlet: {Segments: segments},
		}
	}
	return &Tree{Root: root, QueryParams: queryParams, Fragment: fragment}, nil
}

func resolveQueryParams(base *Tree, opts CreateOptions) (map[string][]string, error) {
	switch opts.QueryParamsHandling {
	case QueryParamsPreserve:
		return copyQueryParams(base.QueryParams), nil
	case QueryParamsMerge:
		merged := copyQueryParams(base.QueryParams)
		for k, v := range opts.QueryParams {
			vs := make([]string, len(v))
			copy(vs, v)
			merged[k] = vs
		}
		return merged, nil
	case QueryParamsDefault:
		return copyQueryParams(opts.QueryParams), nil
	default:
		return nil, fmt.Errorf("unknown query params handling %q", opts.QueryParamsHandling)
	}
}

// navigation is the normalized form of a command list
type navigation struct {
	isAbsolute         bool
	numberOfDoubleDots int
	segments           []Segment
}

// computeNavigation normalizes commands into an absolute flag, the
// number of levels to go up, and the segments to append
func computeNavigation(commands []interface{}) (*navigation, error) {
	nav := &navigation{}
	leading := true

	for i, command := range commands {
		switch c := command.(type) {
		case nil:
			return nil, fmt.Errorf("command %d is nil", i)
		case map[string]string:
			if len(nav.segments) == 0 {
				return nil, fmt.Errorf("command %d: matrix parameters must follow a path segment", i)
			}
			last := &nav.segments[len(nav.segments)-1]
			for k, v := range c {
				last.Parameters[k] = v
			}
		case string:
			if i == 0 && strings.HasPrefix(c, "/") {
				nav.isAbsolute = true
				c = strings.TrimPrefix(c, "/")
			}
			for _, part := range strings.Split(c, "/") {
				switch part {
				case "":
					// collapse duplicate slashes
				case ".":
					// current level
				case "..":
					if !leading || nav.isAbsolute {
						return nil, fmt.Errorf("command %d: invalid '..' after path segments", i)
					}
					nav.numberOfDoubleDots++
				default:
					leading = false
					nav.segments = append(nav.segments, Segment{
						Path:       part,
						Parameters: map[string]string{},
					})
				}
			}
		default:
			return nil, fmt.Errorf("command %d has unsupported type %T", i, command)
		}
	}
	return nav, nil
}

// primaryChain flattens the primary-outlet segments of a tree into one slice
func primaryChain(group *SegmentGroup) []Segment {
	var out []Segment
	for g := group; g != nil; g = g.PrimaryChild() {
		out = append(out, g.Segments...)
	}
	return out
}

func applyCommands(prefix, appended []Segment) []Segment {
	out := make([]Segment, 0, len(prefix)+len(appended))
	for _, s := range prefix {
		params := make(map[string]string, len(s.Parameters))
		for k, v := range s.Parameters {
			params[k] = v
		}
		out = append(out, Segment{Path: s.Path, Parameters: params})
	}
	out = append(out, appended...)
	return out
}
