package alfa

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Value is one metadata attribute: either a scalar string or a mapping from
// sub-key to string, never both.
type Value struct {
	Scalar  string            `json:"value,omitempty"`
	Entries map[string]string `json:"entries,omitempty"`
}

// IsNested reports whether v is a mapping rather than a scalar.
func (v Value) IsNested() bool { return v.Entries != nil }

// Metadata is the attribute bag read from a run's metadata sidecar.
type Metadata map[string]Value

// Scalar returns the scalar value stored under key.
func (md Metadata) Scalar(key string) (string, bool) {
	v, ok := md[key]
	if !ok || v.IsNested() {
		return "", false
	}
	return v.Scalar, true
}

// Nested returns the mapping stored under key.
func (md Metadata) Nested(key string) (map[string]string, bool) {
	v, ok := md[key]
	if !ok || !v.IsNested() {
		return nil, false
	}
	return v.Entries, true
}

// Keys returns the attribute names in sorted order.
func (md Metadata) Keys() []string {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// metadataElement is an element of the sidecar being read. Only elements
// carrying a Type attribute hold data; Text collects the element's own
// character data, not that of its children.
type metadataElement struct {
	Type *string
	Key  *string
	Text strings.Builder
}

func newMetadataElement(start xml.StartElement) *metadataElement {
	el := &metadataElement{}
	for _, a := range start.Attr {
		v := a.Value
		switch a.Name.Local {
		case "Type":
			el.Type = &v
		case "Key":
			el.Key = &v
		}
	}
	return el
}

// ParseMetadata reads a metadata sidecar. Every element with a Type attribute
// is an attribute, at any depth and also inside another attribute element:
//
//	<Item Type="ProjectionId">A.B.42</Item>        -> md["ProjectionId"] = "A.B.42"
//	<Item Type="Scenario" Key="Rates">Base</Item>  -> md["Scenario"]["Rates"] = "Base"
//
// An attribute's value is its own text. A Type used both as scalar and as
// mapping, or a repeated attribute with a different value, is reported as
// ErrMalformedMetadata.
func ParseMetadata(r io.Reader) (Metadata, error) {
	md := Metadata{}
	dec := xml.NewDecoder(r)
	var open []*metadataElement

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			open = append(open, newMetadataElement(t))
		case xml.CharData:
			if len(open) > 0 {
				open[len(open)-1].Text.Write(t)
			}
		case xml.EndElement:
			el := open[len(open)-1]
			open = open[:len(open)-1]
			if el.Type == nil {
				continue
			}
			if err := md.add(el); err != nil {
				return nil, err
			}
		}
	}

	return md, nil
}

func (md Metadata) add(el *metadataElement) error {
	typ := *el.Type
	text := strings.TrimSpace(el.Text.String())
	existing, seen := md[typ]

	if el.Key == nil {
		if seen && existing.IsNested() {
			return fmt.Errorf("attribute %q is used both as a mapping and as a scalar", typ)
		}
		if seen && existing.Scalar != text {
			return fmt.Errorf("attribute %q is given twice with different values (%q, %q)", typ, existing.Scalar, text)
		}
		md[typ] = Value{Scalar: text}
		return nil
	}

	key := *el.Key
	if seen && !existing.IsNested() {
		return fmt.Errorf("attribute %q is used both as a scalar and as a mapping", typ)
	}
	if !seen {
		existing = Value{Entries: map[string]string{}}
	}
	if prev, dup := existing.Entries[key]; dup && prev != text {
		return fmt.Errorf("attribute %q key %q is given twice with different values (%q, %q)", typ, key, prev, text)
	}
	existing.Entries[key] = text
	md[typ] = existing
	return nil
}

// lastToken returns the part of s after the final sep.
func lastToken(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}
