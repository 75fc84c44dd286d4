package dataset

// Filter keeps rows whose Region is in regions and Gender is in genders.
// An empty set matches nothing.
func Filter(t *Table, regions, genders []string) *Table {
	out := &Table{Header: t.Header}
	if len(regions) == 0 || len(genders) == 0 {
		return out
	}

	rs := toSet(regions)
	gs := toSet(genders)
	for _, c := range t.Rows {
		_, okR := rs[c.Region]
		_, okG := gs[c.Gender]
		if okR && okG {
			out.Rows = append(out.Rows, c)
		}
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
