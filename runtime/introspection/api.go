package introspection

import "reflect"

// GetRegistry returns an API over the default registry.
// This is the primary entry point for tools that inspect beans by name.
//
// Example usage:
//
//	api := introspection.GetRegistry()
//	for _, summary := range api.Summaries() {
//		fmt.Printf("%s: %d properties\n", summary.Name, len(summary.Properties))
//	}
func GetRegistry() *RegistryAPI {
	return &RegistryAPI{registry: globalRegistry}
}

// NewRegistryAPI wraps a specific registry
func NewRegistryAPI(r *Registry) *RegistryAPI {
	return &RegistryAPI{registry: r}
}

// RegistryAPI provides an ergonomic read-only API over a Registry, returning
// plain summaries suitable for serialization.
type RegistryAPI struct {
	registry *Registry
}

// TypeSummary describes one introspected type.
type TypeSummary struct {
	Name                 string            `json:"name" yaml:"name"`
	BeanType             string            `json:"bean_type" yaml:"bean_type"`
	Annotations          []string          `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	ConstructorArguments []ArgumentSummary `json:"constructor_arguments,omitempty" yaml:"constructor_arguments,omitempty"`
	Properties           []PropertySummary `json:"properties" yaml:"properties"`
	Methods              []MethodSummary   `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// ArgumentSummary describes an argument
type ArgumentSummary struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Nullable    bool     `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Annotations []string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// PropertySummary describes a property
type PropertySummary struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	ReadOnly    bool     `json:"read_only,omitempty" yaml:"read_only,omitempty"`
	WriteOnly   bool     `json:"write_only,omitempty" yaml:"write_only,omitempty"`
	Mutable     bool     `json:"mutable,omitempty" yaml:"mutable,omitempty"`
	Annotations []string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// MethodSummary describes a method
type MethodSummary struct {
	Name       string            `json:"name" yaml:"name"`
	ReturnType string            `json:"return_type" yaml:"return_type"`
	Arguments  []ArgumentSummary `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// Entries returns the registered types
func (a *RegistryAPI) Entries() []Entry {
	return a.registry.Entries()
}

// Type returns the introspection registered under name
func (a *RegistryAPI) Type(name string) (*Introspection, error) {
	return a.registry.LookupByName(name)
}

// TypeOf returns the introspection of a Go type
func (a *RegistryAPI) TypeOf(t reflect.Type) (*Introspection, error) {
	return a.registry.Lookup(t)
}

// Summary summarizes the type registered under name
func (a *RegistryAPI) Summary(name string) (*TypeSummary, error) {
	in, err := a.registry.LookupByName(name)
	if err != nil {
		return nil, err
	}
	s := Summarize(in)
	return &s, nil
}

// Summaries summarizes every registered type, building them as needed.
// Types whose definition fails to build are skipped.
func (a *RegistryAPI) Summaries() []TypeSummary {
	entries := a.registry.Entries()
	out := make([]TypeSummary, 0, len(entries))
	for _, e := range entries {
		in, err := a.registry.Lookup(e.BeanType)
		if err != nil {
			continue
		}
		out = append(out, Summarize(in))
	}
	return out
}

// Summarize builds the summary of an introspection
func Summarize(in *Introspection) TypeSummary {
	s := TypeSummary{
		Name:        in.Name(),
		BeanType:    in.BeanType().String(),
		Annotations: in.AnnotationMetadata().Names(),
		Properties:  make([]PropertySummary, 0, len(in.properties)),
	}
	for _, arg := range in.constructorArguments {
		s.ConstructorArguments = append(s.ConstructorArguments, summarizeArgument(arg))
	}
	for _, p := range in.properties {
		s.Properties = append(s.Properties, PropertySummary{
			Name:        p.Name(),
			Type:        p.Argument().TypeName(),
			ReadOnly:    p.IsReadOnly(),
			WriteOnly:   p.IsWriteOnly(),
			Mutable:     p.HasSetterOrConstructorArgument(),
			Annotations: p.AnnotationMetadata().Names(),
		})
	}
	for _, m := range in.methods {
		ms := MethodSummary{Name: m.Name(), ReturnType: m.ReturnType().TypeName()}
		for _, arg := range m.ref.Arguments {
			ms.Arguments = append(ms.Arguments, summarizeArgument(arg))
		}
		s.Methods = append(s.Methods, ms)
	}
	return s
}

func summarizeArgument(arg Argument) ArgumentSummary {
	return ArgumentSummary{
		Name:        arg.Name(),
		Type:        arg.TypeName(),
		Nullable:    arg.IsDeclaredNullable(),
		Annotations: arg.AnnotationMetadata().Names(),
	}
}
