package source

// Locate finds the function u exports as id. The function may be exported
// where it is declared, listed in a separate export clause (optionally
// under an alias), or re-exported from another file.
func Locate(u *Unit, id string) (*Function, bool) {
	return locate(u, id, make(map[*Unit]bool))
}

func locate(u *Unit, id string, seen map[*Unit]bool) (*Function, bool) {
	if u == nil || seen[u] {
		return nil, false
	}
	seen[u] = true

	if local, ok := u.exports[id]; ok {
		if fn, ok := u.functions[local]; ok {
			return fn, true
		}
		if imp, ok := u.imports[local]; ok {
			return locate(imp.unit, imp.name, seen)
		}
	}
	if re, ok := u.reexports[id]; ok {
		return locate(re.unit, re.name, seen)
	}
	for _, other := range u.star {
		if fn, ok := locate(other, id, seen); ok {
			return fn, true
		}
	}
	return nil, false
}
