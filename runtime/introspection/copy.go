package introspection

// CopyViaConstructor is a CopyFunc producing a shallow copy of bean: the
// constructor is fed from same-named readable properties, then every other
// readable and writable property is copied through its setter. The changed
// property takes value. Write-only properties are not copied.
func CopyViaConstructor(property *Property, bean any, value any) (any, error) {
	in := property.DeclaringBean()

	consumed := make(map[string]bool, len(in.constructorArguments))
	values := make([]any, 0, len(in.constructorArguments))
	for _, arg := range in.constructorArguments {
		name := arg.Name()
		consumed[name] = true
		if name == property.Name() {
			values = append(values, value)
			continue
		}
		source, ok := in.Property(name)
		if !ok || !source.IsReadable() {
			return nil, newError(ErrUnsupportedOperation, in.name, name, "constructor argument has no readable property to copy from")
		}
		v, err := source.GetUnsafe(bean)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	if !consumed[property.Name()] && !settable(property) {
		return nil, newError(ErrUnsupportedOperation, in.name, property.Name(), "property is neither a constructor argument nor settable")
	}

	copied, err := in.InstantiateWith(false, values...)
	if err != nil {
		return nil, err
	}

	for _, p := range in.properties {
		if consumed[p.Name()] || !settable(p) {
			continue
		}
		v := value
		if p != property {
			if !p.IsReadable() {
				continue
			}
			if v, err = p.GetUnsafe(bean); err != nil {
				return nil, err
			}
		}
		if err := p.SetUnsafe(copied, v); err != nil {
			return nil, err
		}
	}
	return copied, nil
}

func settable(p *Property) bool {
	return !p.ref.ReadOnly && p.ref.SetIndex != NoIndex
}
