package introspection

// Dispatcher performs the field or method access behind a numeric index.
// Generated code supplies one per type; views only pass indexes through.
type Dispatcher interface {
	// Dispatch invokes the operation at index with any number of arguments.
	Dispatch(index int, target any, args []any) (any, error)

	// DispatchOne invokes the operation at index with exactly one argument.
	// Property reads pass a nil argument.
	DispatchOne(index int, target any, arg any) (any, error)
}

// UnimplementedDispatcher fails for every index. Switch-based generated
// dispatchers embed it and override the methods they need.
type UnimplementedDispatcher struct{}

// Dispatch implements Dispatcher
func (UnimplementedDispatcher) Dispatch(index int, _ any, _ []any) (any, error) {
	return nil, UnknownDispatchIndex(index)
}

// DispatchOne implements Dispatcher
func (UnimplementedDispatcher) DispatchOne(index int, _ any, _ any) (any, error) {
	return nil, UnknownDispatchIndex(index)
}

// MultiFunc is a dispatch table entry taking an argument slice.
type MultiFunc func(target any, args []any) (any, error)

// OneFunc is a dispatch table entry taking a single argument.
type OneFunc func(target any, arg any) (any, error)

// DispatchTable is a Dispatcher backed by dense slices of closures, indexed
// by position. A nil slot is an unknown index.
type DispatchTable struct {
	Multi []MultiFunc
	One   []OneFunc
}

// Dispatch implements Dispatcher. Indexes without a multi entry fall back
// to the single-argument entry when exactly one argument is given.
func (t *DispatchTable) Dispatch(index int, target any, args []any) (any, error) {
	if index >= 0 && index < len(t.Multi) && t.Multi[index] != nil {
		return t.Multi[index](target, args)
	}
	if len(args) <= 1 && index >= 0 && index < len(t.One) && t.One[index] != nil {
		var arg any
		if len(args) == 1 {
			arg = args[0]
		}
		return t.One[index](target, arg)
	}
	return nil, UnknownDispatchIndex(index)
}

// DispatchOne implements Dispatcher
func (t *DispatchTable) DispatchOne(index int, target any, arg any) (any, error) {
	if index >= 0 && index < len(t.One) && t.One[index] != nil {
		return t.One[index](target, arg)
	}
	if index >= 0 && index < len(t.Multi) && t.Multi[index] != nil {
		return t.Multi[index](target, []any{arg})
	}
	return nil, UnknownDispatchIndex(index)
}
