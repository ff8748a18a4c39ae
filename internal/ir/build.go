package ir

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/layoutforge/abi/internal/debug"
	"github.com/layoutforge/abi/internal/resolver"
)

// builder walks a resolved model and emits Layout-IR trees (spec.md §4.4).
// extra accumulates side entries for anonymous array elements that need
// their own addressable TypeIr (see buildArray).
type builder struct {
	model *resolver.Model
	extra map[string]TypeIr
	opts  Options
	depth int
}

// Build emits the full Layout-IR artifact for every type in model, in its
// resolution order (spec.md §6 item 3), using the default Options. If
// buildID is empty, a random one is generated (SPEC_FULL.md Domain Stack:
// google/uuid); it distinguishes this build from any other over the same
// model and plays no role in either deterministic encoding.
func Build(model *resolver.Model, buildID string) (*LayoutIR, error) {
	return BuildWithOptions(model, buildID, NewOptions())
}

// BuildWithOptions is Build with caller-supplied Options.
func BuildWithOptions(model *resolver.Model, buildID string, opts Options) (*LayoutIR, error) {
	if buildID == "" {
		buildID = uuid.NewString()
	}
	b := &builder{model: model, extra: make(map[string]TypeIr), opts: opts}
	out := &LayoutIR{Version: CurrentVersion, BuildID: buildID}

	debug.Log(nil, "Build", "build=%s types=%d", buildID, len(model.ResolutionOrder))

	for _, name := range model.ResolutionOrder {
		rt, ok := model.Lookup(name)
		if !ok {
			continue
		}
		root, err := b.nodeFor(rt)
		if err != nil {
			return nil, err
		}
		out.Types = append(out.Types, TypeIr{
			TypeName:   rt.Name,
			Alignment:  rt.Alignment,
			Root:       root,
			Parameters: b.parametersFor(rt),
		})
	}

	for _, name := range sortedKeys(b.extra) {
		out.Types = append(out.Types, b.extra[name])
	}

	return out, nil
}

func sortedKeys(m map[string]TypeIr) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// insertion sort is fine: extra is small (one entry per jagged array
	// with an inline variable element) and this keeps the package
	// dependency-free of slices/sort for a list this short-lived.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func (b *builder) registerExtra(t TypeIr) {
	b.extra[t.TypeName] = t
}

// parametersFor lists the IR-level parameters a variable-size type's
// footprint function needs (spec.md §6 item 3), sorted by owner/path
// already via DynamicParams' own invariant. A derived parameter (e.g.
// __computed_tag) is omitted when Options.SurfaceDerivedParameters is
// false, leaving only the parameters a caller must supply directly.
func (b *builder) parametersFor(rt *resolver.ResolvedType) []IrParameter {
	if rt.Size.IsConst() {
		return nil
	}
	var out []IrParameter
	for _, o := range rt.Size.Dynamic().Owners {
		for _, p := range o.Params {
			if p.Derived && !b.opts.SurfaceDerivedParameters {
				continue
			}
			out = append(out, IrParameter{
				Name:        p.Path,
				Description: fmt.Sprintf("dynamic parameter introduced by %q", o.Owner),
				Derived:     p.Derived,
			})
		}
	}
	return out
}

// nodeFor emits the node for any resolved type, top-level or reached by
// following an inline member (spec.md §4.4 per-kind emission rules).
func (b *builder) nodeFor(rt *resolver.ResolvedType) (Node, error) {
	b.depth++
	defer func() { b.depth-- }()
	if b.depth > b.opts.maxDepth() {
		return nil, recursionLimitExceeded(rt.Name, b.opts.maxDepth())
	}
	debug.Log(nil, "nodeFor", "%s depth=%d", rt.Name, b.depth)

	if rt.Size.IsConst() {
		return Const{Value: rt.Size.Bytes(), Align: rt.Alignment}, nil
	}
	switch k := rt.Kind.(type) {
	case resolver.ResolvedStruct:
		return b.buildStruct(rt, k)
	case resolver.ResolvedEnum:
		return b.buildEnum(rt, k)
	case resolver.ResolvedUnion:
		return b.buildUnion(rt, k)
	case resolver.ResolvedArray:
		return b.buildArray(rt, k)
	case resolver.ResolvedSDU:
		return b.buildSDU(rt, k)
	case resolver.ResolvedAlias:
		return b.buildAlias(rt, k)
	default:
		return nil, unsupportedSize(rt.Name, "unrecognized resolved kind")
	}
}

// followAlias chases ResolvedAlias indirection down to the type that
// actually carries a body, mirroring the resolver's own followFieldType.
func (b *builder) followAlias(t *resolver.ResolvedType) *resolver.ResolvedType {
	for t != nil {
		a, ok := t.Kind.(resolver.ResolvedAlias)
		if !ok {
			return t
		}
		nt, ok := b.model.Lookup(a.Target)
		if !ok {
			return t
		}
		t = nt
	}
	return t
}

func (b *builder) targetOf(ft resolver.FieldType) *resolver.ResolvedType {
	if ft.Inline != nil {
		return b.followAlias(ft.Inline)
	}
	t, ok := b.model.Lookup(ft.Ref)
	if !ok {
		return nil
	}
	return b.followAlias(t)
}

func isStructKind(t *resolver.ResolvedType) bool {
	_, ok := t.Kind.(resolver.ResolvedStruct)
	return ok
}

// fieldNode emits the contribution node for one struct field / enum,
// union or SDU variant. Inline members are emitted directly; named
// references to a constant-size type collapse to a Const; a named
// reference to a variable-size type (only ever admissible as a struct's
// terminal field, per the resolver's tail rule) becomes a CallNested.
func (b *builder) fieldNode(ownerType, fieldName string, ft resolver.FieldType) (Node, error) {
	target := b.targetOf(ft)
	if target == nil {
		return nil, missingType(ownerType, ft.TypeName())
	}
	if ft.Inline != nil {
		return b.nodeFor(target)
	}
	if target.Size.IsConst() {
		return Const{Value: target.Size.Bytes(), Align: target.Alignment}, nil
	}
	return b.callNestedFor(ownerType, fieldName, target, isStructKind(target))
}

// callNestedFor binds target's own dynamic parameters, by canonical name,
// to expressions in the caller's scope (spec.md §4.4: "TypeRef →
// CallNested passing each of the target's dynamic parameters by canonical
// name"). nestedPushesFrame mirrors the resolver's MergeNested/MergeDirect
// split: only a referenced Struct pushed its own scope frame during
// resolution, so only then does the caller-side path get prefixed with
// fieldName.
func (b *builder) callNestedFor(ownerType, fieldName string, target *resolver.ResolvedType, nestedPushesFrame bool) (Node, error) {
	var args []Argument
	for _, o := range target.Size.Dynamic().Owners {
		for _, p := range o.Params {
			callerPath := p.Path
			if nestedPushesFrame {
				callerPath = prefixPath(fieldName, p.Path)
			}
			args = append(args, Argument{
				ParameterName: p.Path,
				Value:         FieldRef{Owner: fieldName, Path: callerPath, Parameter: p.Path},
			})
		}
	}
	if len(args) == 0 {
		return nil, missingDynamicRefs(ownerType, fieldName)
	}
	return CallNested{TypeName: target.Name, Arguments: args}, nil
}

// prefixPath mirrors resolver.DynamicParams' own path-prefixing rule
// (spec.md §4.2): a parent ("..") reference is kept verbatim, everything
// else is anchored under the owning field/variant name.
func prefixPath(owner, path string) string {
	if len(path) >= 2 && path[:2] == ".." {
		return path
	}
	if owner == "" {
		return path
	}
	return owner + "." + path
}

func (b *builder) buildAlias(rt *resolver.ResolvedType, k resolver.ResolvedAlias) (Node, error) {
	target, ok := b.model.Lookup(k.Target)
	if !ok {
		return nil, missingType(rt.Name, k.Target)
	}
	if target.Size.IsConst() {
		return Const{Value: target.Size.Bytes(), Align: target.Alignment}, nil
	}
	// An alias introduces no scope of its own, so its parameter paths pass
	// straight through unchanged (owner-for-owner, path-for-path).
	var args []Argument
	for _, o := range target.Size.Dynamic().Owners {
		for _, p := range o.Params {
			args = append(args, Argument{
				ParameterName: p.Path,
				Value:         FieldRef{Owner: o.Owner, Path: p.Path, Parameter: p.Path},
			})
		}
	}
	return CallNested{TypeName: target.Name, Arguments: args}, nil
}
