package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrCycle is returned by ToJSON when the graph contains a reference cycle.
var ErrCycle = errors.New("value: cannot encode cyclic graph as JSON")

// FromJSON decodes a JSON document into a graph. Objects become *Object
// (key order preserved), arrays become *List, and scalars decode to string,
// float64, bool, or nil.
func FromJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	// Reject trailing content after the first document.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("value: trailing data after JSON document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("value: object key is not a string: %v", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			list := NewList()
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list.Append(v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("value: unexpected delimiter %q", t)
		}
	case json.Number:
		// Keep integers as int64 when they fit, otherwise float64.
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return t, nil // string, bool, nil
	}
}

// ToJSON encodes a graph as compact JSON. Object and Dict keys are written
// in insertion order; Dict keys must be strings. Set encodes as an array,
// Box as its value, Time as RFC 3339, Pattern as its expression source.
// Cyclic graphs return ErrCycle.
func ToJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	e := &jsonEncoder{buf: &buf, onStack: make(map[any]bool)}
	if err := e.encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToJSONIndent is ToJSON with the output re-indented for display.
func ToJSONIndent(v any, prefix, indent string) ([]byte, error) {
	data, err := ToJSON(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type jsonEncoder struct {
	buf     *bytes.Buffer
	onStack map[any]bool
}

func (e *jsonEncoder) encode(v any) error {
	if IsNode(v) {
		if e.onStack[v] {
			return ErrCycle
		}
		e.onStack[v] = true
		defer delete(e.onStack, v)
	}
	switch n := v.(type) {
	case *Object:
		e.buf.WriteByte('{')
		var err error
		first := true
		n.Range(func(key string, fv any) bool {
			if !first {
				e.buf.WriteByte(',')
			}
			first = false
			if err = e.encodeScalar(key); err != nil {
				return false
			}
			e.buf.WriteByte(':')
			err = e.encode(fv)
			return err == nil
		})
		if err != nil {
			return err
		}
		e.buf.WriteByte('}')
		return nil
	case *List:
		return e.encodeSeq(func(yield func(any) bool) { n.Range(func(_ int, ev any) bool { return yield(ev) }) })
	case *Set:
		return e.encodeSeq(func(yield func(any) bool) { n.Range(yield) })
	case *Dict:
		e.buf.WriteByte('{')
		var err error
		first := true
		n.Range(func(key, dv any) bool {
			ks, ok := key.(string)
			if !ok {
				err = fmt.Errorf("value: dict key %v is not a string", key)
				return false
			}
			if !first {
				e.buf.WriteByte(',')
			}
			first = false
			if err = e.encodeScalar(ks); err != nil {
				return false
			}
			e.buf.WriteByte(':')
			err = e.encode(dv)
			return err == nil
		})
		if err != nil {
			return err
		}
		e.buf.WriteByte('}')
		return nil
	case *Box:
		return e.encode(n.Value())
	case *Time:
		return e.encodeScalar(n.Value().Format(time.RFC3339Nano))
	case *Pattern:
		return e.encodeScalar(n.Regexp().String())
	default:
		return e.encodeScalar(v)
	}
}

func (e *jsonEncoder) encodeSeq(each func(yield func(any) bool)) error {
	e.buf.WriteByte('[')
	var err error
	first := true
	each(func(v any) bool {
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		err = e.encode(v)
		return err == nil
	})
	if err != nil {
		return err
	}
	e.buf.WriteByte(']')
	return nil
}

func (e *jsonEncoder) encodeScalar(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	e.buf.Write(data)
	return nil
}
