package parser

import "github.com/layoutforge/abi/internal/resolver"

// parseUnion selects its active variant purely from the caller-supplied
// __variant selector (spec.md §4.2: a plain union is discriminated
// externally, never by buffer size) — unlike an enum tag, there is no
// expression to evaluate here, so the ParamMap is the only source.
func (p *parser) parseUnion(rt *resolver.ResolvedType, k resolver.ResolvedUnion, buf []byte, base int, path string) (*ReflectedValue, error) {
	idx, ok := p.params.Lookup(joinPath(path, "__variant"))
	if !ok {
		return nil, fieldReferenceFailed(rt.Name, base, joinPath(path, "__variant"))
	}
	if idx >= uint64(len(k.Variants)) {
		return nil, invalidEnumTag(rt.Name, base, idx)
	}

	v := k.Variants[idx]
	inner, err := p.parseField(v.Type, buf, base, joinPath(path, v.Name))
	if err != nil {
		return nil, err
	}

	// A constant-size union occupies its max variant's width on the wire
	// regardless of which variant is active; only a variable union's
	// footprint equals exactly what the selected variant consumed.
	length := inner.Length
	if rt.Size.IsConst() {
		length = int(rt.Size.Bytes())
	}
	return &ReflectedValue{Type: rt, Offset: base, Length: length, Value: Union{Variant: v.Name, Inner: inner}}, nil
}
