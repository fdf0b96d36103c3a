package conditioned

// Flatten collects every value leaf under defs, depth first in insertion
// order. A node reachable twice is visited once.
func Flatten[T any](defs ...*Definition[T]) []T {
	var out []T
	seen := make(map[*Definition[T]]struct{})

	var walk func(d *Definition[T])
	walk = func(d *Definition[T]) {
		if d == nil {
			return
		}
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		if d.kind == KindValue {
			out = append(out, d.value)
			return
		}
		for _, child := range d.children {
			walk(child)
		}
	}

	for _, d := range defs {
		walk(d)
	}
	return out
}
