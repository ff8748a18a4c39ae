package parser

import "github.com/layoutforge/abi/internal/resolver"

// parseEnum evaluates the tag expression (a bare field reference or a
// richer computed expression — either way, internal/exprextract handles
// both uniformly) and parses the variant it selects (spec.md §4.5).
func (p *parser) parseEnum(rt *resolver.ResolvedType, k resolver.ResolvedEnum, buf []byte, base int, path string) (*ReflectedValue, error) {
	tag, err := p.evalExpr(rt.Name, base, k.TagExpr, path)
	if err != nil {
		return nil, err
	}

	for _, v := range k.Variants {
		if v.TagValue != tag {
			continue
		}

		if v.RequiresPayloadSize {
			prev, hadPrev := p.params.Lookup(joinPath(path, "__payload_size"))
			p.params.Set(joinPath(path, "__payload_size"), uint64(len(buf)-base))
			inner, err := p.parseField(v.Type, buf, base, joinPath(path, v.Name))
			if hadPrev {
				p.params.Set(joinPath(path, "__payload_size"), prev)
			}
			if err != nil {
				return nil, err
			}
			return &ReflectedValue{Type: rt, Offset: base, Length: inner.Length, Value: Enum{Variant: v.Name, TagValue: tag, Inner: inner}}, nil
		}

		inner, err := p.parseField(v.Type, buf, base, joinPath(path, v.Name))
		if err != nil {
			return nil, err
		}
		return &ReflectedValue{Type: rt, Offset: base, Length: inner.Length, Value: Enum{Variant: v.Name, TagValue: tag, Inner: inner}}, nil
	}

	return nil, invalidEnumTag(rt.Name, base, tag)
}
