package resolver

import (
	"strings"

	"github.com/layoutforge/abi/internal/schema"
)

// frame is the ordered list of sibling fields visible at one lexical level
// of struct nesting: either the partially-resolved field list of the
// struct currently being resolved, or the (already fully resolved) field
// list of some nested struct reached by descending a dotted path.
type frame = []ResolvedField

// scope is the stack of enclosing struct frames visible to a tag or size
// expression being analyzed inside some nested type. The top of the stack
// (last element) is the struct directly enclosing the expression; a ".."
// path segment pops one level, matching spec.md §4.1/§9 parent navigation.
type scope struct {
	frames []frame
}

func (s *scope) push(f frame) { s.frames = append(s.frames, f) }
func (s *scope) pop()         { s.frames = s.frames[:len(s.frames)-1] }

func (s *scope) clone() *scope {
	return &scope{frames: append([]frame(nil), s.frames...)}
}

// resolvePath navigates a field-reference path (spec.md §3.2, §4.1) against
// the current scope, returning the primitive type of the referenced leaf.
// typeName is used only to build error messages.
func (c *resolver) resolvePath(sc *scope, path []string, typeName string) (schema.PrimitiveType, error) {
	local := sc.clone()
	i := 0
	for i < len(path) && path[i] == ".." {
		if len(local.frames) == 0 {
			return schema.PrimitiveType{}, fieldReferenceNotFound(typeName, strings.Join(path, "."))
		}
		local.pop()
		i++
	}
	if i >= len(path) {
		return schema.PrimitiveType{}, fieldReferenceNotFound(typeName, strings.Join(path, "."))
	}
	if len(local.frames) == 0 {
		return schema.PrimitiveType{}, fieldReferenceNotFound(typeName, strings.Join(path, "."))
	}
	cur := local.frames[len(local.frames)-1]

	for {
		name := path[i]
		var field *ResolvedField
		for idx := range cur {
			if cur[idx].Name == name {
				field = &cur[idx]
				break
			}
		}
		if field == nil {
			return schema.PrimitiveType{}, fieldReferenceNotFound(typeName, strings.Join(path, "."))
		}

		target := c.followFieldType(field.Type)
		last := i == len(path)-1
		if last {
			prim, ok := asPrimitive(target)
			if !ok {
				return schema.PrimitiveType{}, fieldReferenceNotPrimitive(typeName, strings.Join(path, "."))
			}
			return prim, nil
		}

		st, ok := asStruct(target)
		if !ok {
			return schema.PrimitiveType{}, fieldReferenceNotPrimitive(typeName, strings.Join(path, "."))
		}
		cur = st.Fields
		i++
	}
}

// followFieldType resolves a FieldType through any chain of ResolvedAlias
// indirection down to the type that actually carries a body.
func (c *resolver) followFieldType(ft FieldType) *ResolvedType {
	var t *ResolvedType
	if ft.Inline != nil {
		t = ft.Inline
	} else {
		t = c.model.Types[ft.Ref]
	}
	for {
		alias, ok := t.Kind.(ResolvedAlias)
		if !ok {
			return t
		}
		t = c.model.Types[alias.Target]
	}
}

func asPrimitive(t *ResolvedType) (schema.PrimitiveType, bool) {
	if t == nil {
		return schema.PrimitiveType{}, false
	}
	p, ok := t.Kind.(ResolvedPrimitive)
	return p.Type, ok
}

func asStruct(t *ResolvedType) (ResolvedStruct, bool) {
	if t == nil {
		return ResolvedStruct{}, false
	}
	s, ok := t.Kind.(ResolvedStruct)
	return s, ok
}
