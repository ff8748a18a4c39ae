package resolver

import (
	"sort"

	"github.com/layoutforge/abi/internal/schema"
)

// ParamRef is one runtime input needed to compute a variable-size type's
// footprint: a dotted path to a primitive leaf, and that leaf's type.
type ParamRef struct {
	Path    string
	Type    schema.PrimitiveType
	Derived bool // computed by the system, not user-supplied (spec.md §4.2)
}

// OwnerParams groups the parameters a single field/variant induced.
type OwnerParams struct {
	Owner  string
	Params []ParamRef // sorted by Path
}

// DynamicParams is the ordered mapping owner-segment -> (path -> type)
// from spec.md §3.4, kept sorted by owner so two resolutions of the same
// schema serialize identically (spec.md §3.5 inv. 7).
type DynamicParams struct {
	Owners []OwnerParams
}

// Empty reports whether there are no dynamic parameters at all.
func (d DynamicParams) Empty() bool { return len(d.Owners) == 0 }

// Add inserts (or updates) a single parameter under owner, keeping both the
// owner list and each owner's param list sorted.
func (d *DynamicParams) Add(owner, path string, typ schema.PrimitiveType, derived bool) {
	i := sort.Search(len(d.Owners), func(i int) bool { return d.Owners[i].Owner >= owner })
	if i == len(d.Owners) || d.Owners[i].Owner != owner {
		d.Owners = append(d.Owners, OwnerParams{})
		copy(d.Owners[i+1:], d.Owners[i:])
		d.Owners[i] = OwnerParams{Owner: owner}
	}
	params := &d.Owners[i].Params
	j := sort.Search(len(*params), func(j int) bool { return (*params)[j].Path >= path })
	if j < len(*params) && (*params)[j].Path == path {
		(*params)[j] = ParamRef{Path: path, Type: typ, Derived: derived}
		return
	}
	*params = append(*params, ParamRef{})
	copy((*params)[j+1:], (*params)[j:])
	(*params)[j] = ParamRef{Path: path, Type: typ, Derived: derived}
}

// Merge folds other's owners into d.
func (d *DynamicParams) Merge(other DynamicParams) {
	for _, o := range other.Owners {
		for _, p := range o.Params {
			d.Add(o.Owner, p.Path, p.Type, p.Derived)
		}
	}
}

// MergeDirect folds other's parameters into d under a single owner segment,
// WITHOUT path prefixing. Use this when other was analyzed against the same
// scope frame as the struct doing the rolling-up — i.e. the nested kind is
// an Enum/Array/Union/SDU/Primitive, none of which push a new scope frame
// (spec.md §4.2: "a reference whose first segment names a sibling field at
// the current struct level is kept unprefixed").
func (d *DynamicParams) MergeDirect(owner string, other DynamicParams) {
	for _, o := range other.Owners {
		for _, p := range o.Params {
			d.Add(owner, p.Path, p.Type, p.Derived)
		}
	}
}

// MergeNested folds other's parameters into d under a single owner segment,
// prefixing every path that doesn't already start with ".." with that owner
// segment. Use this when other was analyzed against a new scope frame (a
// nested Struct), so its paths are relative to that nested struct and must
// be re-anchored to remain valid from the outer struct's perspective
// (spec.md §4.2 path-prefixing rules).
func (d *DynamicParams) MergeNested(owner string, other DynamicParams) {
	for _, o := range other.Owners {
		for _, p := range o.Params {
			path := prefixPath(owner, p.Path)
			d.Add(owner, path, p.Type, p.Derived)
		}
	}
}

// prefixPath applies the path-prefixing rule from spec.md §4.2: a parent
// ("..") reference is preserved verbatim; everything else gets the nested
// owner segment prepended so the path remains relative to the outermost
// owning type.
func prefixPath(nestedOwner, path string) string {
	if len(path) >= 2 && path[:2] == ".." {
		return path
	}
	if nestedOwner == "" {
		return path
	}
	return nestedOwner + "." + path
}

// Flatten returns every distinct path across all owners, sorted.
func (d DynamicParams) Flatten() []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range d.Owners {
		for _, p := range o.Params {
			if !seen[p.Path] {
				seen[p.Path] = true
				out = append(out, p.Path)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Normalize canonicalizes a raw field-reference path per spec.md §4.2:
// strip leading "../" repeatedly, strip one leading "./", replace "::" and
// "/" with ".", replace "[" with "." and drop "]", and elide empty segments.
func Normalize(raw string) string {
	s := raw
	for len(s) >= 3 && s[:3] == "../" {
		s = s[3:]
	}
	if len(s) >= 2 && s[:2] == "./" {
		s = s[2:]
	}

	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case i+1 < len(s) && s[i] == ':' && s[i+1] == ':':
			b = append(b, '.')
			i++
		case s[i] == '/':
			b = append(b, '.')
		case s[i] == '[':
			b = append(b, '.')
		case s[i] == ']':
			// dropped
		default:
			b = append(b, s[i])
		}
	}

	segs := splitNonEmpty(string(b), '.')
	return joinDot(segs)
}

func splitNonEmpty(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == sep {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func joinDot(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}
