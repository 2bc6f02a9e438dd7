package solver

// Subproduct bookkeeping. For every unassigned variable the graph maintains
//
//	p     = Π (1 - survey) over enabled positive edges with 1-survey > eps
//	pzero = #   enabled positive edges with 1-survey <= eps
//
// and symmetrically m/mzero over negative edges. Keeping these caches in
// sync with every survey change turns an SP sweep from O(Σ deg²) into
// O(Σ deg). computeSubProducts is the from-scratch rebuild; updateSurvey and
// removeSurvey are the incremental paths.

// computeSubProducts rebuilds p, m, pzero and mzero for every unassigned
// variable from the surveys on its enabled edges.
func (g *graph) computeSubProducts() {
	for vi := range g.vars {
		v := &g.vars[vi]
		if v.assigned {
			continue
		}
		v.p, v.m = 1.0, 1.0
		v.pzero, v.mzero = 0, 0
		for _, ei := range v.edges {
			e := &g.edges[ei]
			if !e.enabled {
				continue
			}
			if e.positive {
				if 1.0-e.survey > g.eps {
					v.p *= 1.0 - e.survey
				} else {
					v.pzero++
				}
			} else {
				if 1.0-e.survey > g.eps {
					v.m *= 1.0 - e.survey
				} else {
					v.mzero++
				}
			}
		}
	}
}

// updateSurvey folds the change of one edge's survey from sOld to sNew into
// the subproducts of variable vi. positive selects the polarity slot.
func (g *graph) updateSurvey(vi int, positive bool, sOld, sNew float64) {
	v := &g.vars[vi]
	oldRegular := 1.0-sOld > g.eps
	newRegular := 1.0-sNew > g.eps
	if positive {
		switch {
		case oldRegular && newRegular:
			v.p *= (1.0 - sNew) / (1.0 - sOld)
		case oldRegular && !newRegular:
			v.p /= 1.0 - sOld
			v.pzero++
		case !oldRegular && newRegular:
			v.p *= 1.0 - sNew
			v.pzero--
		}
	} else {
		switch {
		case oldRegular && newRegular:
			v.m *= (1.0 - sNew) / (1.0 - sOld)
		case oldRegular && !newRegular:
			v.m /= 1.0 - sOld
			v.mzero++
		case !oldRegular && newRegular:
			v.m *= 1.0 - sNew
			v.mzero--
		}
	}
}

// removeSurvey removes a disabled edge's survey contribution from the
// subproducts of variable vi.
func (g *graph) removeSurvey(vi int, positive bool, s float64) {
	v := &g.vars[vi]
	if v.assigned {
		return
	}
	if positive {
		if 1.0-s > g.eps {
			v.p /= 1.0 - s
		} else {
			v.pzero--
		}
	} else {
		if 1.0-s > g.eps {
			v.m /= 1.0 - s
		} else {
			v.mzero--
		}
	}
}
