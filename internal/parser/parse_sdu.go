package parser

import "github.com/layoutforge/abi/internal/resolver"

// parseSDU selects its variant by matching the remaining buffer length
// against each variant's declared expected size (spec.md §3.1: a
// size-discriminated union carries no tag of its own).
func (p *parser) parseSDU(rt *resolver.ResolvedType, k resolver.ResolvedSDU, buf []byte, base int, path string) (*ReflectedValue, error) {
	remaining := len(buf) - base
	if remaining < 0 {
		remaining = 0
	}

	for _, v := range k.Variants {
		if uint64(remaining) != v.ExpectedSize {
			continue
		}
		inner, err := p.parseField(v.Type, buf, base, joinPath(path, v.Name))
		if err != nil {
			return nil, err
		}
		return &ReflectedValue{Type: rt, Offset: base, Length: inner.Length, Value: SizeDiscriminatedUnion{Variant: v.Name, Inner: inner}}, nil
	}

	return nil, invalidSDUSize(rt.Name, base, remaining)
}
