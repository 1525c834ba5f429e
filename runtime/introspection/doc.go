// Package introspection provides reflection-free access to beans through
// metadata tables generated ahead of time.
//
// # Overview
//
// For every introspected type a generator emits a Definition: the
// constructor arguments, one PropertyRef per property, one MethodRef per
// method, a Dispatcher mapping numeric indexes to the actual field and
// method accesses, and the instantiation strategy. New turns a Definition
// into an immutable Introspection whose Property and Method views validate
// their inputs and delegate to the Dispatcher by index.
//
// # Core Structures
//
//   - Introspection: per-type bundle of metadata and views
//   - Property: get/set/with access to one property
//   - Method: invocation of one method
//   - Dispatcher: index based virtual call table (switch or DispatchTable)
//   - IndexedSubset: ordered view over selected positions of a slice
//   - Registry: process-wide, lazily built introspections keyed by type
//
// # Generated Code
//
// A generated file registers its types from init():
//
//	func init() {
//		introspection.MustRegister(reflect.TypeFor[*Point](), func() introspection.Definition {
//			return introspection.Definition{
//				BeanType: reflect.TypeFor[*Point](),
//				Properties: []introspection.PropertyRef{
//					{Argument: introspection.ArgumentOf[int]("x"), GetIndex: 0, SetIndex: 1, WithIndex: introspection.NoIndex, Mutable: true},
//				},
//				Dispatcher: pointDispatcher{},
//				New: func() (any, error) { return &Point{}, nil },
//			}
//		})
//	}
//
// # Example Usage
//
//	in := introspection.MustOf[*Point]()
//	bean, _ := in.Instantiate()
//	x, _ := in.RequiredProperty("x")
//	_ = x.Set(bean, 5)
//	v, _ := x.Get(bean) // 5
//
// # Errors
//
// Every failure is returned as an *Error unwrapping to one of the Err*
// sentinels; use errors.Is to classify it.
package introspection
