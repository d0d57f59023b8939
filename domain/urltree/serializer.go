package urltree

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Serializer converts between address strings and trees
type Serializer interface {
	// Parse converts an address string into a tree
	Parse(rawURL string) (*Tree, error)
	// Serialize converts a tree back into an address string
	Serialize(tree *Tree) string
}

// DefaultSerializer implements the standard address grammar:
// path segments separated by '/', matrix parameters attached with
// ';key=value', named outlets in parentheses ('a(aux:b)'), query
// parameters after '?' and a fragment after '#'.
type DefaultSerializer struct{}

// NewDefaultSerializer creates a DefaultSerializer
func NewDefaultSerializer() *DefaultSerializer {
	return &DefaultSerializer{}
}

// String returns the serialized form of the tree using the default grammar
func (t *Tree) String() string {
	return (&DefaultSerializer{}).Serialize(t)
}

// Serialize converts a tree into an address string
func (s *DefaultSerializer) Serialize(tree *Tree) string {
	segment := "/" + serializeSegmentGroup(tree.Root, true)
	query := serializeQueryParams(tree.QueryParams)
	fragment := ""
	if tree.Fragment != "" {
		fragment = "#" + encode(tree.Fragment)
	}
	return segment + query + fragment
}

func serializeSegmentGroup(group *SegmentGroup, root bool) string {
	if group == nil {
		return ""
	}
	if !group.HasChildren() {
		return serializePaths(group)
	}

	if root {
		// At the root the primary child is serialized inline and the
		// named outlets follow in parentheses.
		primary := ""
		if pc := group.PrimaryChild(); pc != nil {
			primary = serializeSegmentGroup(pc, false)
		}
		var children []string
		for _, name := range group.outletNames() {
			if name == PrimaryOutlet {
				continue
			}
			children = append(children, name+":"+serializeSegmentGroup(group.Children[name], false))
		}
		if len(children) > 0 {
			return primary + "(" + strings.Join(children, "//") + ")"
		}
		return primary
	}

	var children []string
	for _, name := range group.outletNames() {
		if name == PrimaryOutlet {
			children = append(children, serializeSegmentGroup(group.Children[name], false))
		} else {
			children = append(children, name+":"+serializeSegmentGroup(group.Children[name], false))
		}
	}
	if group.NumberOfChildren() == 1 && group.PrimaryChild() != nil {
		return serializePaths(group) + "/" + children[0]
	}
	return serializePaths(group) + "/(" + strings.Join(children, "//") + ")"
}

func serializePaths(group *SegmentGroup) string {
	paths := make([]string, len(group.Segments))
	for i, segment := range group.Segments {
		paths[i] = serializePath(segment)
	}
	return strings.Join(paths, "/")
}

func serializePath(segment Segment) string {
	out := encode(segment.Path)
	keys := make([]string, 0, len(segment.Parameters))
	for k := range segment.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out += ";" + encode(k) + "=" + encode(segment.Parameters[k])
	}
	return out
}

func serializeQueryParams(params map[string][]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var pairs []string
	for _, k := range keys {
		for _, v := range params[k] {
			pairs = append(pairs, encode(k)+"="+encode(v))
		}
	}
	return "?" + strings.Join(pairs, "&")
}

// encode percent-encodes everything outside the unreserved set so the
// grammar's delimiter characters never appear unescaped in values
func encode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-' || c == '.' || c == '_' || c == '~' || c == '!' ||
			c == '$' || c == '\'' || c == '*' || c == ',' || c == '@' || c == '+':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func decode(s string) (string, error) {
	return url.PathUnescape(s)
}

// Parse converts an address string into a tree
func (s *DefaultSerializer) Parse(rawURL string) (*Tree, error) {
	p := &parser{remaining: rawURL}
	root, err := p.parseRootSegment()
	if err != nil {
		return nil, err
	}
	queryParams, err := p.parseQueryParams()
	if err != nil {
		return nil, err
	}
	fragment, err := p.parseFragment()
	if err != nil {
		return nil, err
	}
	if p.remaining != "" {
		return nil, fmt.Errorf("unexpected trailing input %q", p.remaining)
	}
	return &Tree{Root: root, QueryParams: queryParams, Fragment: fragment}, nil
}

var (
	segmentRe         = regexp.MustCompile(`^[^/()?;#]+`)
	matrixKeyRe       = regexp.MustCompile(`^[^/()?;=#]+`)
	queryParamRe      = regexp.MustCompile(`^[^=?&#]+`)
	queryParamValueRe = regexp.MustCompile(`^[^?&#]+`)
)

type parser struct {
	remaining string
}

func (p *parser) peekStartsWith(prefix string) bool {
	return strings.HasPrefix(p.remaining, prefix)
}

func (p *parser) consumeOptional(prefix string) bool {
	if p.peekStartsWith(prefix) {
		p.remaining = p.remaining[len(prefix):]
		return true
	}
	return false
}

func (p *parser) capture(s string) error {
	if !p.consumeOptional(s) {
		return fmt.Errorf("expected %q at %q", s, p.remaining)
	}
	return nil
}

func (p *parser) matchSegment() string {
	return segmentRe.FindString(p.remaining)
}

func (p *parser) parseRootSegment() (*SegmentGroup, error) {
	p.consumeOptional("/")
	if p.remaining == "" || p.peekStartsWith("?") || p.peekStartsWith("#") {
		return &SegmentGroup{}, nil
	}
	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}
	return &SegmentGroup{Children: children}, nil
}

func (p *parser) parseChildren() (map[string]*SegmentGroup, error) {
	if p.remaining == "" {
		return nil, nil
	}
	p.consumeOptional("/")

	var segments []Segment
	if !p.peekStartsWith("(") {
		segment, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		segments = append(segments, segment)
	}
	for p.peekStartsWith("/") && !p.peekStartsWith("//") && !p.peekStartsWith("/(") {
		if err := p.capture("/"); err != nil {
			return nil, err
		}
		segment, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		segments = append(segments, segment)
	}

	var children map[string]*SegmentGroup
	if p.peekStartsWith("/(") {
		if err := p.capture("/"); err != nil {
			return nil, err
		}
		var err error
		children, err = p.parseParens(true)
		if err != nil {
			return nil, err
		}
	}

	res := map[string]*SegmentGroup{}
	if p.peekStartsWith("(") {
		var err error
		res, err = p.parseParens(false)
		if err != nil {
			return nil, err
		}
	}
	if len(segments) > 0 || len(children) > 0 {
		res[PrimaryOutlet] = &SegmentGroup{Segments: segments, Children: children}
	}
	if len(res) == 0 {
		return nil, nil
	}
	return res, nil
}

func (p *parser) parseSegment() (Segment, error) {
	path := p.matchSegment()
	if path == "" && p.peekStartsWith(";") {
		return Segment{}, fmt.Errorf("empty path segment cannot have parameters at %q", p.remaining)
	}
	if err := p.capture(path); err != nil {
		return Segment{}, err
	}
	decoded, err := decode(path)
	if err != nil {
		return Segment{}, err
	}
	params, err := p.parseMatrixParams()
	if err != nil {
		return Segment{}, err
	}
	return Segment{Path: decoded, Parameters: params}, nil
}

func (p *parser) parseMatrixParams() (map[string]string, error) {
	params := map[string]string{}
	for p.consumeOptional(";") {
		if err := p.parseMatrixParam(params); err != nil {
			return nil, err
		}
	}
	return params, nil
}

func (p *parser) parseMatrixParam(params map[string]string) error {
	key := matrixKeyRe.FindString(p.remaining)
	if key == "" {
		return nil
	}
	if err := p.capture(key); err != nil {
		return err
	}
	value := ""
	if p.consumeOptional("=") {
		value = p.matchSegment()
		if err := p.capture(value); err != nil {
			return err
		}
	}
	decodedKey, err := decode(key)
	if err != nil {
		return err
	}
	decodedValue, err := decode(value)
	if err != nil {
		return err
	}
	params[decodedKey] = decodedValue
	return nil
}

func (p *parser) parseParens(allowPrimary bool) (map[string]*SegmentGroup, error) {
	groups := map[string]*SegmentGroup{}
	if err := p.capture("("); err != nil {
		return nil, err
	}

	for !p.consumeOptional(")") && p.remaining != "" {
		path := p.matchSegment()

		var outletName string
		if idx := strings.Index(path, ":"); idx > -1 {
			outletName = path[:idx]
			if err := p.capture(outletName); err != nil {
				return nil, err
			}
			if err := p.capture(":"); err != nil {
				return nil, err
			}
		} else if allowPrimary {
			outletName = PrimaryOutlet
		} else {
			return nil, fmt.Errorf("named outlet expected at %q", p.remaining)
		}

		children, err := p.parseChildren()
		if err != nil {
			return nil, err
		}
		if len(children) == 1 && children[PrimaryOutlet] != nil {
			groups[outletName] = children[PrimaryOutlet]
		} else {
			groups[outletName] = &SegmentGroup{Children: children}
		}
		p.consumeOptional("//")
	}
	return groups, nil
}

func (p *parser) parseQueryParams() (map[string][]string, error) {
	params := map[string][]string{}
	if p.consumeOptional("?") {
		for {
			if err := p.parseQueryParam(params); err != nil {
				return nil, err
			}
			if !p.consumeOptional("&") {
				break
			}
		}
	}
	return params, nil
}

func (p *parser) parseQueryParam(params map[string][]string) error {
	key := queryParamRe.FindString(p.remaining)
	if key == "" {
		return nil
	}
	if err := p.capture(key); err != nil {
		return err
	}
	value := ""
	if p.consumeOptional("=") {
		value = queryParamValueRe.FindString(p.remaining)
		if err := p.capture(value); err != nil {
			return err
		}
	}
	decodedKey, err := decode(key)
	if err != nil {
		return err
	}
	decodedValue, err := decode(value)
	if err != nil {
		return err
	}
	params[decodedKey] = append(params[decodedKey], decodedValue)
	return nil
}

func (p *parser) parseFragment() (string, error) {
	if p.consumeOptional("#") {
		fragment, err := decode(p.remaining)
		if err != nil {
			return "", err
		}
		p.remaining = ""
		return fragment, nil
	}
	return "", nil
}
