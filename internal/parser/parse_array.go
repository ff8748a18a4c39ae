package parser

import "github.com/layoutforge/abi/internal/resolver"

// parseArray evaluates the count expression, then decodes that many
// elements in sequence. A non-jagged array's elements are all the same
// constant size; a jagged array's elements may each consume a different
// number of bytes, so their lengths must be summed as they're parsed
// rather than multiplied out in advance (spec.md §3.4, §4.5).
func (p *parser) parseArray(rt *resolver.ResolvedType, k resolver.ResolvedArray, buf []byte, base int, path string) (*ReflectedValue, error) {
	count, err := p.evalExpr(rt.Name, base, k.SizeExpr, path)
	if err != nil {
		return nil, err
	}

	elements := make([]*ReflectedValue, 0, count)
	cursor := uint64(0)
	for i := uint64(0); i < count; i++ {
		ev, err := p.parseField(k.Element, buf, base+int(cursor), joinPath(path, "element"))
		if err != nil {
			return nil, err
		}
		elements = append(elements, ev)
		cursor += uint64(ev.Length)
	}

	return &ReflectedValue{Type: rt, Offset: base, Length: int(cursor), Value: Array{Elements: elements}}, nil
}
