package introspection

import (
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// ValueMember is the member name used for an annotation's single value.
const ValueMember = "value"

// AnnotationMetadata is an immutable set of annotations, each carrying
// named members. Generated code builds it once per type, property, method
// or argument.
type AnnotationMetadata struct {
	annotations map[string]map[string]any
}

// EmptyAnnotationMetadata carries no annotations.
var EmptyAnnotationMetadata = AnnotationMetadata{}

// NewAnnotationMetadata copies the given annotations. A nil member map
// declares a marker annotation.
func NewAnnotationMetadata(annotations map[string]map[string]any) AnnotationMetadata {
	if len(annotations) == 0 {
		return EmptyAnnotationMetadata
	}
	copied := make(map[string]map[string]any, len(annotations))
	for name, members := range annotations {
		m := make(map[string]any, len(members))
		for k, v := range members {
			m[k] = v
		}
		copied[name] = m
	}
	return AnnotationMetadata{annotations: copied}
}

// Annotations is a shorthand for marker annotations without members.
func Annotations(names ...string) AnnotationMetadata {
	m := make(map[string]map[string]any, len(names))
	for _, name := range names {
		m[name] = nil
	}
	return NewAnnotationMetadata(m)
}

// IsEmpty reports whether no annotation is present
func (a AnnotationMetadata) IsEmpty() bool {
	return len(a.annotations) == 0
}

// Has reports whether the annotation is present
func (a AnnotationMetadata) Has(name string) bool {
	_, ok := a.annotations[name]
	return ok
}

// Names returns the annotation names in sorted order
func (a AnnotationMetadata) Names() []string {
	names := make([]string, 0, len(a.annotations))
	for name := range a.annotations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Value returns a member of an annotation.
func (a AnnotationMetadata) Value(name, member string) (any, bool) {
	members, ok := a.annotations[name]
	if !ok {
		return nil, false
	}
	v, ok := members[member]
	return v, ok
}

// StringValue returns a member formatted as a string.
func (a AnnotationMetadata) StringValue(name, member string) (string, bool) {
	v, ok := a.Value(name, member)
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// IntValue returns a member as an int64. String members are parsed.
func (a AnnotationMetadata) IntValue(name, member string) (int64, bool) {
	v, ok := a.Value(name, member)
	if !ok || v == nil {
		return 0, false
	}
	n, err := cast.ToInt64E(v)
	return n, err == nil
}

// Members returns a copy of the members of an annotation
func (a AnnotationMetadata) Members(name string) map[string]any {
	members, ok := a.annotations[name]
	if !ok {
		return nil
	}
	copied := make(map[string]any, len(members))
	for k, v := range members {
		copied[k] = v
	}
	return copied
}
