package introspection

import "testing"

func TestSameValue(t *testing.T) {
	type inner struct {
		v any
	}
	type outer struct {
		Name  string
		Inner inner
		Tags  []string
	}

	shared := []int{1, 2}
	labels := map[string]string{"env": "prod"}
	fn := func() {}
	tags := []string{"a"}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", nil, 1, false},
		{"equal scalars", 5, 5, true},
		{"different types", int32(5), int64(5), false},
		{"same slice", shared, shared, true},
		{"equal but distinct slices", []int{1, 2}, []int{1, 2}, false},
		{"subslice", shared, shared[:1], false},
		{"nil slices", []int(nil), []int(nil), true},
		{"nil and empty slice", []int(nil), []int{}, false},
		{"same map", labels, labels, true},
		{"distinct maps", labels, map[string]string{"env": "prod"}, false},
		{"non-nil funcs", fn, fn, false},
		{"struct holding same slice", outer{Name: "x", Inner: inner{v: shared}, Tags: tags}, outer{Name: "x", Inner: inner{v: shared}, Tags: tags}, true},
		{"struct holding distinct slices", outer{Inner: inner{v: []int{1}}}, outer{Inner: inner{v: []int{1}}}, false},
		{"struct with different field", outer{Name: "x"}, outer{Name: "y"}, false},
		{"interface dynamic types differ", inner{v: 1}, inner{v: "1"}, false},
		{"array of interfaces", [2]any{1, shared}, [2]any{1, shared}, true},
		{"array of distinct maps", [1]any{map[int]int{}}, [1]any{map[int]int{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("sameValue panicked: %v", r)
				}
			}()
			if got := sameValue(tt.a, tt.b); got != tt.want {
				t.Errorf("sameValue(%#v, %#v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
