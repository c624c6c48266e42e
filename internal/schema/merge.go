package schema

// Merge folds src into dst with deep-extend semantics: when both are
// objects their properties merge key-wise (recursively, src winning on
// conflicts); otherwise src replaces dst. Omit on either side leaves the
// other untouched. Neither input is modified.
func Merge(dst, src *Schema) *Schema {
	if src == nil {
		return dst
	}
	if dst == nil {
		return src
	}
	if !dst.IsObject() || !src.IsObject() {
		return src
	}

	out := NewObject()
	for _, k := range dst.Properties.Keys() {
		v, _ := dst.Properties.Get(k)
		out.Properties.Set(k, v)
	}
	for _, k := range src.Properties.Keys() {
		v, _ := src.Properties.Get(k)
		existing, _ := out.Properties.Get(k)
		out.Properties.Set(k, Merge(existing, v))
	}
	return out
}

// UnionOf combines the resolved variants of a union. Omitted variants are
// dropped. When every remaining variant is an enum of the same type the
// result is one enum holding the de-duplicated values in first-seen order;
// a single remaining variant is returned as is; anything else is a oneOf.
func UnionOf(variants []*Schema) *Schema {
	kept := make([]*Schema, 0, len(variants))
	for _, v := range variants {
		if v != nil {
			kept = append(kept, v)
		}
	}

	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}

	if merged, ok := mergeEnums(kept); ok {
		return merged
	}
	return NewOneOf(kept)
}

func mergeEnums(variants []*Schema) (*Schema, bool) {
	typ := variants[0].Type
	var values []any
	seen := make(map[any]bool)
	for _, v := range variants {
		if v.Kind != Enum || v.Type != typ {
			return nil, false
		}
		for _, val := range v.Enum {
			if seen[val] {
				continue
			}
			seen[val] = true
			values = append(values, val)
		}
	}
	return NewEnum(typ, values...), true
}

// Pick returns a copy of the object s restricted to keys, in s's order.
func Pick(s *Schema, keys []string) *Schema {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	return filter(s, func(k string) bool { return want[k] })
}

// Omit returns a copy of the object s without keys.
func Omit(s *Schema, keys []string) *Schema {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	return filter(s, func(k string) bool { return !drop[k] })
}

func filter(s *Schema, keep func(string) bool) *Schema {
	if !s.IsObject() {
		return s
	}
	out := NewObject()
	for _, k := range s.Properties.Keys() {
		if !keep(k) {
			continue
		}
		v, _ := s.Properties.Get(k)
		out.Properties.Set(k, v)
	}
	return out
}
