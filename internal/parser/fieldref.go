package parser

import (
	"fmt"
	"strings"

	"github.com/layoutforge/abi/internal/exprextract"
	"github.com/layoutforge/abi/internal/resolver"
	"github.com/layoutforge/abi/internal/schema"
)

// fieldResolver implements exprextract.Resolver against a live parser
// state, walking the four-level fallback of spec.md §4.5 item 3: an
// injected ParamMap entry, then the live parsed-sibling map at the
// current struct level (handling ".." parent navigation), then the
// owning type's on-disk layout, then the root type's on-disk layout.
type fieldResolver struct {
	p    *parser
	path string
}

func (fr *fieldResolver) FieldValue(path []string) (uint64, error) {
	raw := strings.Join(path, ".")

	if v, ok := fr.p.params.Lookup(joinPath(fr.path, raw)); ok {
		return v, nil
	}
	if v, ok := fr.p.params.Lookup(raw); ok {
		return v, nil
	}
	if v, ok := fr.p.resolveFromFrames(path); ok {
		return v, nil
	}
	if v, ok := fr.p.resolveFromStaticLayout(path); ok {
		return v, nil
	}
	return 0, fmt.Errorf("field reference %q not found in any scope", raw)
}

func (fr *fieldResolver) TypeSize(name string) (uint64, bool, error) {
	rt, ok := fr.p.model.Lookup(name)
	if !ok {
		return 0, false, fmt.Errorf("unknown type %q", name)
	}
	if !rt.Size.IsConst() {
		return 0, false, nil
	}
	return rt.Size.Bytes(), true, nil
}

func (fr *fieldResolver) TypeAlign(name string) (uint64, error) {
	rt, ok := fr.p.model.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("unknown type %q", name)
	}
	return rt.Alignment, nil
}

// evalExpr evaluates e against the live parser state at path, translating
// exprextract's error family into the parser's own (spec.md §4.5).
func (p *parser) evalExpr(typeName string, offset int, e *schema.ExprKind, path string) (uint64, error) {
	v, err := exprextract.Eval(e, &fieldResolver{p: p, path: path})
	if err == nil {
		return v, nil
	}
	ee, ok := err.(*exprextract.Error)
	if !ok {
		return 0, expressionEvaluationFailed(typeName, offset, err)
	}
	switch ee.Kind {
	case exprextract.ErrFieldReferenceFailed:
		return 0, fieldReferenceFailed(typeName, offset, describePath(e))
	case exprextract.ErrTypeResolutionFailed:
		return 0, typeResolutionFailed(typeName, offset, e.TypeName)
	default:
		return 0, expressionEvaluationFailed(typeName, offset, ee)
	}
}

func describePath(e *schema.ExprKind) string {
	if e == nil || e.Op != schema.OpFieldRef {
		return ""
	}
	return strings.Join(e.FieldPath, ".")
}

// resolveFromFrames implements fallback level 2: the live parsed-sibling
// map, walking outward for each leading ".." segment.
func (p *parser) resolveFromFrames(path []string) (uint64, bool) {
	i := 0
	for i < len(path) && path[i] == ".." {
		i++
	}
	remaining := path[i:]
	if len(remaining) == 0 || i >= len(p.frames) {
		return 0, false
	}
	fr := p.frames[len(p.frames)-1-i]
	fv, ok := fr.fields[remaining[0]]
	if !ok {
		return 0, false
	}
	return lookupInValue(fv, remaining[1:])
}

func lookupInValue(rv *ReflectedValue, segs []string) (uint64, bool) {
	if len(segs) == 0 {
		if prim, ok := rv.Value.(Primitive); ok {
			return prim.Bits, true
		}
		return 0, false
	}
	switch v := rv.Value.(type) {
	case Struct:
		for _, f := range v.Fields {
			if f.Name == segs[0] {
				return lookupInValue(f.Value, segs[1:])
			}
		}
	case TypeRef:
		return lookupInValue(v.Inner, segs)
	case Union:
		return lookupInValue(v.Inner, segs)
	case Enum:
		return lookupInValue(v.Inner, segs)
	case SizeDiscriminatedUnion:
		return lookupInValue(v.Inner, segs)
	}
	return 0, false
}

// resolveFromStaticLayout implements fallback levels 3 and 4: decode
// directly from the buffer using precomputed constant field offsets,
// first against the immediately owning struct, then against the current
// root type, when the live parsed-sibling map (level 2) has nothing for
// this path — e.g. a forward reference to a field not yet reached in a
// single left-to-right parse pass.
func (p *parser) resolveFromStaticLayout(path []string) (uint64, bool) {
	if len(p.frames) > 0 {
		top := p.frames[len(p.frames)-1]
		if off, prim, ok := p.staticFieldOffset(top.owner, path); ok {
			return p.readStaticPrimitive(top.rootBuf, top.base+int(off), prim)
		}
	}
	if len(p.roots) > 0 {
		root := p.roots[len(p.roots)-1]
		if rt, ok := p.model.Lookup(root.typeName); ok {
			if off, prim, ok := p.staticFieldOffset(rt, path); ok {
				return p.readStaticPrimitive(root.buf, int(off), prim)
			}
		}
	}
	return 0, false
}

func (p *parser) staticFieldOffset(rt *resolver.ResolvedType, path []string) (uint64, schema.PrimitiveType, bool) {
	if rt == nil || len(path) == 0 {
		return 0, schema.PrimitiveType{}, false
	}
	st, ok := rt.Kind.(resolver.ResolvedStruct)
	if !ok {
		return 0, schema.PrimitiveType{}, false
	}
	for _, f := range st.Fields {
		if f.Name != path[0] || f.Offset == nil {
			continue
		}
		target := p.targetOfNoErr(f.Type)
		if len(path) == 1 {
			prim, ok := target.Kind.(resolver.ResolvedPrimitive)
			if !ok {
				return 0, schema.PrimitiveType{}, false
			}
			return *f.Offset, prim.Type, true
		}
		suboff, prim, ok := p.staticFieldOffset(target, path[1:])
		if !ok {
			return 0, schema.PrimitiveType{}, false
		}
		return *f.Offset + suboff, prim, true
	}
	return 0, schema.PrimitiveType{}, false
}

func (p *parser) readStaticPrimitive(buf []byte, offset int, prim schema.PrimitiveType) (uint64, bool) {
	size := int(prim.Size())
	if offset < 0 || offset+size > len(buf) {
		return 0, false
	}
	return decodeLE(buf[offset : offset+size]), true
}
