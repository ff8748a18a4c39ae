package ir

import "github.com/layoutforge/abi/internal/resolver"

// buildArray emits the two array shapes the IR distinguishes (spec.md
// §4.4): a constant-element array with a non-constant count becomes
// AlignUp(MulChecked(count, Const(elem_size)), array_alignment); a jagged
// array of variable elements becomes SumOverArray. (A fully constant
// array never reaches here — nodeFor already collapsed it to a flat
// Const, per spec.md §3.5 inv. 4.)
func (b *builder) buildArray(rt *resolver.ResolvedType, k resolver.ResolvedArray) (Node, error) {
	elemTarget := b.targetOf(k.Element)
	if elemTarget == nil {
		return nil, missingType(rt.Name, k.Element.TypeName())
	}

	countIR, err := b.liftExpr(rt.Name, k.SizeExpr)
	if err != nil {
		return nil, err
	}

	if elemTarget.Size.IsConst() {
		mul := MulChecked{Left: countIR, Right: Const{Value: elemTarget.Size.Bytes(), Align: elemTarget.Alignment}}
		return AlignUp{Alignment: rt.Alignment, Inner: mul}, nil
	}

	if !k.Jagged {
		return nil, unsupportedArrayElement(rt.Name, k.Element.TypeName())
	}

	elemName := k.Element.TypeName()
	if k.Element.Inline != nil {
		elemNode, err := b.nodeFor(elemTarget)
		if err != nil {
			return nil, err
		}
		b.registerExtra(TypeIr{
			TypeName:   elemName,
			Alignment:  elemTarget.Alignment,
			Root:       elemNode,
			Parameters: b.parametersFor(elemTarget),
		})
	}

	return SumOverArray{Count: countIR, ElementTypeName: elemName, FieldName: "element"}, nil
}
