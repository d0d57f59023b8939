package urltree

import (
	"sort"
)

// PrimaryOutlet is the outlet name used for the main content of a tree level
const PrimaryOutlet = "primary"

// Tree is a value object representing a parsed address: a hierarchy of
// segment groups plus query parameters and a fragment.
// Trees are treated as immutable; operations return new trees.
type Tree struct {
	Root        *SegmentGroup
	QueryParams map[string][]string
	Fragment    string
}

// SegmentGroup holds consecutive path segments and named child groups (outlets)
type SegmentGroup struct {
	Segments []Segment
	Children map[string]*SegmentGroup
}

// Segment is a single path element with its matrix parameters
type Segment struct {
	Path       string
	Parameters map[string]string
}

// NewTree creates an empty tree (the root address "/")
func NewTree() *Tree {
	return &Tree{
		Root:        &SegmentGroup{},
		QueryParams: map[string][]string{},
	}
}

// HasChildren reports whether the group has any child outlets
func (g *SegmentGroup) HasChildren() bool {
	return len(g.Children) > 0
}

// NumberOfChildren returns the count of child outlets
func (g *SegmentGroup) NumberOfChildren() int {
	return len(g.Children)
}

// PrimaryChild returns the primary child group, or nil
func (g *SegmentGroup) PrimaryChild() *SegmentGroup {
	if g.Children == nil {
		return nil
	}
	return g.Children[PrimaryOutlet]
}

// outletNames returns child outlet names in deterministic order,
// primary first
func (g *SegmentGroup) outletNames() []string {
	names := make([]string, 0, len(g.Children))
	for name := range g.Children {
		if name != PrimaryOutlet {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := g.Children[PrimaryOutlet]; ok {
		names = append([]string{PrimaryOutlet}, names...)
	}
	return names
}

// Equal reports whether two trees describe the same address
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Fragment != other.Fragment {
		return false
	}
	if !paramsEqual(t.QueryParams, other.QueryParams) {
		return false
	}
	return segmentGroupsEqual(t.Root, other.Root)
}

func segmentGroupsEqual(a, b *SegmentGroup) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Segments) != len(b.Segments) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Segments {
		if !segmentsEqual(a.Segments[i], b.Segments[i]) {
			return false
		}
	}
	for name, child := range a.Children {
		otherChild, ok := b.Children[name]
		if !ok || !segmentGroupsEqual(child, otherChild) {
			return false
		}
	}
	return true
}

func segmentsEqual(a, b Segment) bool {
	if a.Path != b.Path || len(a.Parameters) != len(b.Parameters) {
		return false
	}
	for k, v := range a.Parameters {
		if b.Parameters[k] != v {
			return false
		}
	}
	return true
}

func paramsEqual(a, b map[string][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}
	return true
}

// copyQueryParams makes a defensive copy of a query parameter map
func copyQueryParams(params map[string][]string) map[string][]string {
	out := make(map[string][]string, len(params))
	for k, v := range params {
		vs := make([]string, len(v))
		copy(vs, v)
		out[k] = vs
	}
	return out
}

// copyGroup deep-copies a segment group
func copyGroup(g *SegmentGroup) *SegmentGroup {
	if g == nil {
		return nil
	}
	out := &SegmentGroup{Segments: make([]Segment, len(g.Segments))}
	for i, s := range g.Segments {
		params := make(map[string]string, len(s.Parameters))
		for k, v := range s.Parameters {
			params[k] = v
		}
		out.Segments[i] = Segment{Path: s.Path, Parameters: params}
	}
	if g.Children != nil {
		out.Children = make(map[string]*SegmentGroup, len(g.Children))
		for name, child := range g.Children {
			out.Children[name] = copyGroup(child)
		}
	}
	return out
}

// Copy deep-copies a tree
func (t *Tree) Copy() *Tree {
	if t == nil {
		return nil
	}
	return &Tree{
		Root:        copyGroup(t.Root),
		QueryParams: copyQueryParams(t.QueryParams),
		Fragment:    t.Fragment,
	}
}
