package recommend

// Order returns s with featured homes moved ahead of the rest. The partition is
// stable and nothing is dropped; the other categories are returned as-is.
func Order(s Set) Set {
	homes := make([]Item, 0, len(s.Homes))
	for _, it := range s.Homes {
		if it.Featured {
			homes = append(homes, it)
		}
	}
	for _, it := range s.Homes {
		if !it.Featured {
			homes = append(homes, it)
		}
	}
	s.Homes = homes
	return s
}
