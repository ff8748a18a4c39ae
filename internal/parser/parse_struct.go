package parser

import "github.com/layoutforge/abi/internal/resolver"

// parseStruct walks fields in declaration order, trusting the resolver's
// precomputed constant offsets wherever present and falling back to a
// running cursor only for the single trailing field the tail rule allows
// to be variable-size (spec.md §4.1, §4.5).
func (p *parser) parseStruct(rt *resolver.ResolvedType, k resolver.ResolvedStruct, buf []byte, base int, path string) (*ReflectedValue, error) {
	fr := &frame{owner: rt, base: base, rootBuf: buf, fields: make(map[string]*ReflectedValue)}
	p.frames = append(p.frames, fr)
	defer func() { p.frames = p.frames[:len(p.frames)-1] }()

	cursor := uint64(0)
	var fields []NamedField
	for _, f := range k.Fields {
		if f.Offset != nil {
			cursor = *f.Offset
		} else if !k.Packed {
			target := p.targetOfNoErr(f.Type)
			if target != nil {
				cursor = alignUp(cursor, target.Alignment)
			}
		}

		fv, err := p.parseField(f.Type, buf, base+int(cursor), joinPath(path, f.Name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, NamedField{Name: f.Name, Value: fv})
		fr.fields[f.Name] = fv
		fr.order = append(fr.order, f.Name)
		cursor += uint64(fv.Length)
	}

	return &ReflectedValue{Type: rt, Offset: base, Length: int(cursor), Value: Struct{Fields: fields}}, nil
}

// parseAlias follows a top-level `type Foo = Bar` alias transparently,
// wrapping the target's decoded value in a TypeRef the same way a named
// field reference would be (spec.md §3.3, §4.5).
func (p *parser) parseAlias(rt *resolver.ResolvedType, k resolver.ResolvedAlias, buf []byte, base int, path string) (*ReflectedValue, error) {
	target, ok := p.model.Lookup(k.Target)
	if !ok {
		return nil, unknownType(k.Target)
	}

	p.roots = append(p.roots, rootCtx{buf: buf, typeName: k.Target})
	inner, err := p.parseType(target, buf, base, path)
	p.roots = p.roots[:len(p.roots)-1]
	if err != nil {
		return nil, err
	}
	return &ReflectedValue{Type: rt, Offset: inner.Offset, Length: inner.Length, Value: TypeRef{Target: k.Target, Inner: inner}}, nil
}
