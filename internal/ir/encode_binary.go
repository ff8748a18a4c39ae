package ir

import (
	"bytes"
	"encoding/binary"
)

// EncodeBinary produces the length-prefixed binary encoding of a Layout-IR
// artifact (spec.md §6 item 3). Every variable-length field (a string, a
// repeated block) is preceded by its length as an unsigned LEB128 varint,
// so the format self-describes its own framing without needing a schema
// at decode time; this is the module's own wire format rather than an
// embedded protobuf runtime, since protobuf is outside this module's
// domain (see SPEC_FULL.md Domain Stack — the teacher's protobuf
// dependency is one of the ones deliberately not wired).
func EncodeBinary(l *LayoutIR) ([]byte, error) {
	var buf bytes.Buffer
	putUvarint(&buf, uint64(l.Version))
	putUvarint(&buf, uint64(len(l.Types)))
	for _, t := range l.Types {
		writeTypeIr(&buf, t)
	}
	return buf.Bytes(), nil
}

func putUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func putString(buf *bytes.Buffer, s string) {
	putUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func putBool(buf *bytes.Buffer, b bool) {
	if b {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func writeTypeIr(buf *bytes.Buffer, t TypeIr) {
	putString(buf, t.TypeName)
	putUvarint(buf, t.Alignment)
	writeNode(buf, t.Root)
	writeParameters(buf, t.Parameters)
}

func writeParameters(buf *bytes.Buffer, params []IrParameter) {
	putUvarint(buf, uint64(len(params)))
	for _, p := range params {
		putString(buf, p.Name)
		putString(buf, p.Description)
		putBool(buf, p.Derived)
	}
}

// writeNode serializes one Node, tagged by its NodeKind byte so any reader
// of the encoding knows which fields follow.
func writeNode(buf *bytes.Buffer, n Node) {
	if n == nil {
		buf.WriteByte(0xFF) // sentinel: absent node
		return
	}
	buf.WriteByte(byte(n.Kind()))
	switch v := n.(type) {
	case Const:
		putUvarint(buf, v.Value)
		putUvarint(buf, v.Align)
	case ZeroSize:
		putUvarint(buf, v.Align)
	case FieldRef:
		putString(buf, v.Owner)
		putString(buf, v.Path)
		putString(buf, v.Parameter)
	case AddChecked:
		writeNode(buf, v.Left)
		writeNode(buf, v.Right)
	case MulChecked:
		writeNode(buf, v.Left)
		writeNode(buf, v.Right)
	case AlignUp:
		putUvarint(buf, v.Alignment)
		writeNode(buf, v.Inner)
	case Switch:
		writeNode(buf, v.Tag)
		putUvarint(buf, uint64(len(v.Cases)))
		for _, c := range v.Cases {
			putUvarint(buf, c.TagValue)
			writeNode(buf, c.Node)
			writeParameters(buf, c.Parameters)
		}
		if v.Default != nil {
			buf.WriteByte(1)
			writeNode(buf, v.Default)
		} else {
			buf.WriteByte(0)
		}
	case SumOverArray:
		writeNode(buf, v.Count)
		putString(buf, v.ElementTypeName)
		putString(buf, v.FieldName)
	case CallNested:
		putString(buf, v.TypeName)
		putUvarint(buf, uint64(len(v.Arguments)))
		for _, a := range v.Arguments {
			putString(buf, a.ParameterName)
			writeNode(buf, a.Value)
		}
	}
}
