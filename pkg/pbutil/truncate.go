package pbutil

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

const truncatedMarker = "<truncated>"

// TruncateFields shortens every string field of msg longer than maxLen
// bytes, recursing into nested, repeated, and map-valued messages. Each
// shortened string is cut to maxLen bytes and suffixed with a marker.
//
// This mutates msg and exists for logging oversized messages; do not
// persist a truncated message.
func TruncateFields(msg proto.Message, maxLen int) {
	truncateMessage(msg.ProtoReflect(), maxLen)
}

func truncateMessage(m protoreflect.Message, maxLen int) {
	// Collect the populated fields first; mutating while ranging is not
	// allowed by the reflection contract.
	var fields []protoreflect.FieldDescriptor
	m.Range(func(fd protoreflect.FieldDescriptor, _ protoreflect.Value) bool {
		fields = append(fields, fd)
		return true
	})

	for _, fd := range fields {
		switch {
		case fd.IsList():
			truncateList(m.Get(fd).List(), fd, maxLen)
		case fd.IsMap():
			truncateMap(m.Get(fd).Map(), fd, maxLen)
		default:
			switch fd.Kind() {
			case protoreflect.StringKind:
				if s := m.Get(fd).String(); len(s) > maxLen {
					m.Set(fd, protoreflect.ValueOfString(truncateString(s, maxLen)))
				}
			case protoreflect.MessageKind, protoreflect.GroupKind:
				truncateMessage(m.Mutable(fd).Message(), maxLen)
			}
		}
	}
}

func truncateList(list protoreflect.List, fd protoreflect.FieldDescriptor, maxLen int) {
	for i := 0; i < list.Len(); i++ {
		switch fd.Kind() {
		case protoreflect.StringKind:
			if s := list.Get(i).String(); len(s) > maxLen {
				list.Set(i, protoreflect.ValueOfString(truncateString(s, maxLen)))
			}
		case protoreflect.MessageKind, protoreflect.GroupKind:
			truncateMessage(list.Get(i).Message(), maxLen)
		}
	}
}

func truncateMap(mp protoreflect.Map, fd protoreflect.FieldDescriptor, maxLen int) {
	valueKind := fd.MapValue().Kind()

	var keys []protoreflect.MapKey
	mp.Range(func(k protoreflect.MapKey, _ protoreflect.Value) bool {
		keys = append(keys, k)
		return true
	})

	for _, k := range keys {
		switch valueKind {
		case protoreflect.StringKind:
			if s := mp.Get(k).String(); len(s) > maxLen {
				mp.Set(k, protoreflect.ValueOfString(truncateString(s, maxLen)))
			}
		case protoreflect.MessageKind, protoreflect.GroupKind:
			truncateMessage(mp.Mutable(k).Message(), maxLen)
		}
	}
}

func truncateString(s string, maxLen int) string {
	return s[:maxLen] + truncatedMarker
}
