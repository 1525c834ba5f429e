// Package codec renders introspected beans as maps, JSON and YAML and reads
// them back through a binder. Property declaration order is preserved in
// the encoded output.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/beans/internal/binding"
	"github.com/conduit-lang/beans/runtime/introspection"
)

// Annotations understood by the codec
const (
	IgnoreAnnotation   = "JSONIgnore"
	PropertyAnnotation = "JSONProperty"
)

// Codec encodes and decodes beans.
type Codec struct {
	registry *introspection.Registry
	binder   *binding.Binder
}

// New creates a codec. A nil binder decodes with a strict binder over registry.
func New(registry *introspection.Registry, binder *binding.Binder) *Codec {
	if registry == nil {
		registry = introspection.Default()
	}
	if binder == nil {
		binder = binding.NewBinder(registry)
	}
	return &Codec{registry: registry, binder: binder}
}

// member is one encoded property
type member struct {
	name  string
	value any
}

// object is an encoded bean; it marshals with its members in order
type object []member

// MarshalJSON implements json.Marshaler
func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(m.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler
func (o object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, m := range o {
		var value yaml.Node
		if err := value.Encode(m.value); err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.name},
			&value,
		)
	}
	return node, nil
}

// plain converts encoded values to maps and slices
func plain(v any) any {
	switch x := v.(type) {
	case object:
		m := make(map[string]any, len(x))
		for _, mem := range x {
			m[mem.name] = plain(mem.value)
		}
		return m
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	}
	return v
}

// Name returns the encoded name of a property
func Name(p *introspection.Property) string {
	if name, ok := p.AnnotationMetadata().StringValue(PropertyAnnotation, introspection.ValueMember); ok && name != "" {
		return name
	}
	return p.Name()
}

func (c *Codec) encode(in *introspection.Introspection, bean any) (object, error) {
	obj := make(object, 0, len(in.Properties()))
	for _, p := range in.Properties() {
		if !p.IsReadable() || p.AnnotationMetadata().Has(IgnoreAnnotation) {
			continue
		}
		v, err := p.Get(bean)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		encoded, err := c.encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		obj = append(obj, member{name: Name(p), value: encoded})
	}
	return obj, nil
}

func (c *Codec) encodeValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch x := v.(type) {
	case uuid.UUID:
		return x.String(), nil
	case time.Duration:
		return x.String(), nil
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
	}

	t := rv.Type()
	if c.registry.Contains(t) {
		in, err := c.registry.Lookup(t)
		if err != nil {
			return nil, err
		}
		if in.BeanType() == t {
			return c.encode(in, v)
		}
	}

	if rv.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8 && c.registry.Contains(t.Elem()) {
		out := make([]any, rv.Len())
		for i := range out {
			e, err := c.encodeValue(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = e
		}
		return out, nil
	}
	return v, nil
}

// ToMap returns the readable properties of bean keyed by encoded name.
// Nested introspected beans become nested maps.
func (c *Codec) ToMap(in *introspection.Introspection, bean any) (map[string]any, error) {
	obj, err := c.encode(in, bean)
	if err != nil {
		return nil, err
	}
	return plain(obj).(map[string]any), nil
}

// MarshalJSON encodes bean as a JSON object
func (c *Codec) MarshalJSON(in *introspection.Introspection, bean any) ([]byte, error) {
	obj, err := c.encode(in, bean)
	if err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}

// MarshalJSONIndent is MarshalJSON with indentation
func (c *Codec) MarshalJSONIndent(in *introspection.Introspection, bean any) ([]byte, error) {
	obj, err := c.encode(in, bean)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(obj, "", "  ")
}

// MarshalYAML encodes bean as a YAML document
func (c *Codec) MarshalYAML(in *introspection.Introspection, bean any) ([]byte, error) {
	obj, err := c.encode(in, bean)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(obj); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object and binds it into a new bean
func (c *Codec) UnmarshalJSON(in *introspection.Introspection, data []byte) (any, error) {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return c.binder.Bind(in, values)
}

// UnmarshalYAML decodes a YAML mapping and binds it into a new bean
func (c *Codec) UnmarshalYAML(in *introspection.Introspection, data []byte) (any, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return c.binder.Bind(in, values)
}
