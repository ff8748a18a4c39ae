package parser

import (
	"encoding/binary"

	"github.com/layoutforge/abi/internal/debug"
	"github.com/layoutforge/abi/internal/resolver"
)

// frame is one live struct-nesting level: the struct's own ResolvedType,
// where its fields begin in rootBuf, and the fields decoded so far, kept
// both as an ordered slice (for iteration) and a name-indexed map (for
// sibling lookups). Only parsing a Struct pushes a frame — Enum, Union,
// Array and SDU bodies share their enclosing struct's frame, mirroring
// the resolver's own scope-frame rule (spec.md §4.2).
type frame struct {
	owner   *resolver.ResolvedType
	base    int
	rootBuf []byte
	fields  map[string]*ReflectedValue
	order   []string
}

// rootCtx is the buffer/type-name pair the level-4 field-reference
// fallback (spec.md §4.5 item 3) consults. Crossing a named TypeRef
// pushes a fresh one, so a dotted reference evaluated inside the
// referenced type resolves against *that* type's own layout rather than
// the original entry type's — grounded on
// original_source/abi/abi_reflect/src/parser.rs's resolve_field_reference.
type rootCtx struct {
	buf      []byte
	typeName string
}

type parser struct {
	model  *resolver.Model
	params *ParamMap
	opts   Options
	frames []*frame
	roots  []rootCtx
	depth  int
}

// Parse decodes buf against typeName's resolved layout using the default
// Options, supplying params for the dynamic parameters (array counts,
// union selectors, computed tags) the layout needs (spec.md §4.5).
func Parse(model *resolver.Model, typeName string, buf []byte, params *ParamMap) (*ReflectedValue, error) {
	return ParseWithOptions(model, typeName, buf, params, NewOptions())
}

// ParseWithOptions is Parse with explicit Options.
func ParseWithOptions(model *resolver.Model, typeName string, buf []byte, params *ParamMap, opts Options) (rv *ReflectedValue, err error) {
	rt, ok := model.Lookup(typeName)
	if !ok {
		return nil, unknownType(typeName)
	}
	if params == nil {
		params = NewParamMap()
	}
	p := &parser{model: model, params: params, opts: opts, roots: []rootCtx{{buf: buf, typeName: typeName}}}

	// This module performs no unsafe memory access, but a malformed
	// ParamMap or a pathological schema could still drive an internal
	// slice index out of range; convert that into a returned error
	// instead of a crash (SPEC_FULL.md's Ambient Stack hardening note).
	defer func() {
		if r := recover(); r != nil {
			rv, err = nil, internalError(typeName, 0, r)
		}
	}()

	rv, err = p.parseType(rt, buf, 0, "")
	if err != nil {
		return nil, err
	}
	if !opts.DiscardUnknownTrailingBytes && rt.Size.IsConst() && rv.Length < len(buf) {
		return nil, trailingBytes(typeName, rv.Length, len(buf))
	}
	return rv, nil
}

func (p *parser) parseType(rt *resolver.ResolvedType, buf []byte, base int, path string) (*ReflectedValue, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.opts.maxDepth() {
		return nil, &Error{Kind: ErrInternal, Type: rt.Name, Offset: base, Msg: "maximum nesting depth exceeded"}
	}
	debug.Log(nil, "parseType", "%s base=%d path=%q", rt.Name, base, path)

	switch k := rt.Kind.(type) {
	case resolver.ResolvedPrimitive:
		return p.parsePrimitive(rt, k, buf, base)
	case resolver.ResolvedStruct:
		return p.parseStruct(rt, k, buf, base, path)
	case resolver.ResolvedUnion:
		return p.parseUnion(rt, k, buf, base, path)
	case resolver.ResolvedEnum:
		return p.parseEnum(rt, k, buf, base, path)
	case resolver.ResolvedArray:
		return p.parseArray(rt, k, buf, base, path)
	case resolver.ResolvedSDU:
		return p.parseSDU(rt, k, buf, base, path)
	case resolver.ResolvedAlias:
		return p.parseAlias(rt, k, buf, base, path)
	default:
		return nil, &Error{Kind: ErrInternal, Type: rt.Name, Offset: base, Msg: "unrecognized resolved kind"}
	}
}

func (p *parser) parsePrimitive(rt *resolver.ResolvedType, k resolver.ResolvedPrimitive, buf []byte, base int) (*ReflectedValue, error) {
	size := int(k.Type.Size())
	if base < 0 || base+size > len(buf) {
		avail := len(buf) - base
		if avail < 0 {
			avail = 0
		}
		return nil, insufficientData(rt.Name, base, size, avail)
	}
	bits := decodeLE(buf[base : base+size])
	return &ReflectedValue{Type: rt, Offset: base, Length: size, Value: Primitive{Type: k.Type, Bits: bits}}, nil
}

func decodeLE(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	default:
		panic("parser: primitive width must be 1, 2, 4 or 8 bytes")
	}
}

// targetOf resolves a FieldType to its concrete ResolvedType without
// touching the model for inline bodies.
func (p *parser) targetOf(ft resolver.FieldType) (*resolver.ResolvedType, error) {
	if ft.Inline != nil {
		return ft.Inline, nil
	}
	rt, ok := p.model.Lookup(ft.Ref)
	if !ok {
		return nil, unknownType(ft.Ref)
	}
	return rt, nil
}

func (p *parser) targetOfNoErr(ft resolver.FieldType) *resolver.ResolvedType {
	if ft.Inline != nil {
		return ft.Inline
	}
	rt, _ := p.model.Lookup(ft.Ref)
	return rt
}

// parseField decodes one FieldType member (a struct field, a union/enum
// variant, an array element, an SDU variant), wrapping the result in a
// TypeRef value and swapping the root context when the member is reached
// through a *named* reference rather than an inline body (spec.md §4.5:
// "TypeRef(target_name, ReflectedValue)").
func (p *parser) parseField(ft resolver.FieldType, buf []byte, base int, path string) (*ReflectedValue, error) {
	target, err := p.targetOf(ft)
	if err != nil {
		return nil, err
	}
	if ft.Inline != nil {
		return p.parseType(target, buf, base, path)
	}

	p.roots = append(p.roots, rootCtx{buf: buf, typeName: ft.Ref})
	inner, err := p.parseType(target, buf, base, path)
	p.roots = p.roots[:len(p.roots)-1]
	if err != nil {
		return nil, err
	}
	return &ReflectedValue{Type: target, Offset: inner.Offset, Length: inner.Length, Value: TypeRef{Target: ft.Ref, Inner: inner}}, nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func alignUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + (align - rem)
}
