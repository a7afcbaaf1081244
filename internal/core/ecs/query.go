package ecs

// Query combines the masks of up to three component types. Pass None for an
// unused slot. The result is the sum of the single-bit masks; distinct types
// occupy distinct bits, so it is computed as a union and a repeated type adds
// nothing.
//
// World.Query matches any overlapping bit, so the combined mask selects
// entities owning A, B OR C. Use World.QueryAll with the same mask to require
// all of them.
func Query[A, B, C any, M Mask[M]](r *Registry) M {
	return MaskOf[A, M](r).Union(MaskOf[B, M](r)).Union(MaskOf[C, M](r))
}

func Query1[A any, M Mask[M]](r *Registry) M {
	return Query[A, None, None, M](r)
}

func Query2[A, B any, M Mask[M]](r *Registry) M {
	return Query[A, B, None, M](r)
}

func Query8[A, B, C any](r *Registry) Mask8     { return Query[A, B, C, Mask8](r) }
func Query16[A, B, C any](r *Registry) Mask16   { return Query[A, B, C, Mask16](r) }
func Query32[A, B, C any](r *Registry) Mask32   { return Query[A, B, C, Mask32](r) }
func Query64[A, B, C any](r *Registry) Mask64   { return Query[A, B, C, Mask64](r) }
func Query128[A, B, C any](r *Registry) Mask128 { return Query[A, B, C, Mask128](r) }
func Query256[A, B, C any](r *Registry) Mask256 { return Query[A, B, C, Mask256](r) }
