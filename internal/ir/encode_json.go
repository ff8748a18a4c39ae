package ir

import "encoding/json"

// EncodeJSON produces the canonical JSON encoding of a Layout-IR artifact
// (spec.md §6 item 3): sorted keys, lowercase snake_case field names. Every
// node is marshaled through a map[string]any rather than a tagged struct
// so encoding/json's own key-sorting for map values gives us the sorted
// output the spec requires without hand-rolled sorting.
func EncodeJSON(l *LayoutIR) ([]byte, error) {
	return json.Marshal(layoutToMap(l))
}

func layoutToMap(l *LayoutIR) map[string]any {
	types := make([]any, len(l.Types))
	for i, t := range l.Types {
		types[i] = typeIrToMap(t)
	}
	return map[string]any{
		"version": l.Version,
		"types":   types,
	}
}

func typeIrToMap(t TypeIr) map[string]any {
	return map[string]any{
		"type_name":  t.TypeName,
		"alignment":  t.Alignment,
		"root":       nodeToMap(t.Root),
		"parameters": parametersToMap(t.Parameters),
	}
}

func parametersToMap(params []IrParameter) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"derived":     p.Derived,
		}
	}
	return out
}

func nodeToMap(n Node) map[string]any {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case Const:
		return map[string]any{"kind": "const", "value": v.Value, "align": v.Align}
	case ZeroSize:
		return map[string]any{"kind": "zero_size", "align": v.Align}
	case FieldRef:
		return map[string]any{"kind": "field_ref", "owner": v.Owner, "path": v.Path, "parameter": v.Parameter}
	case AddChecked:
		return map[string]any{"kind": "add_checked", "left": nodeToMap(v.Left), "right": nodeToMap(v.Right)}
	case MulChecked:
		return map[string]any{"kind": "mul_checked", "left": nodeToMap(v.Left), "right": nodeToMap(v.Right)}
	case AlignUp:
		return map[string]any{"kind": "align_up", "alignment": v.Alignment, "inner": nodeToMap(v.Inner)}
	case Switch:
		cases := make([]any, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = map[string]any{
				"tag_value":  c.TagValue,
				"node":       nodeToMap(c.Node),
				"parameters": parametersToMap(c.Parameters),
			}
		}
		m := map[string]any{"kind": "switch", "tag": nodeToMap(v.Tag), "cases": cases}
		if v.Default != nil {
			m["default"] = nodeToMap(v.Default)
		}
		return m
	case SumOverArray:
		return map[string]any{
			"kind":              "sum_over_array",
			"count":             nodeToMap(v.Count),
			"element_type_name": v.ElementTypeName,
			"field_name":        v.FieldName,
		}
	case CallNested:
		args := make([]any, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = map[string]any{"parameter_name": a.ParameterName, "value": nodeToMap(a.Value)}
		}
		return map[string]any{"kind": "call_nested", "type_name": v.TypeName, "arguments": args}
	default:
		return map[string]any{"kind": "unknown"}
	}
}
