package solver

// Local search fallback, invoked when decimation reaches the paramagnetic
// state. Operates on the residual formula: the enabled clauses, whose
// variables are exactly the ones decimation left unassigned. Variables fixed
// by decimation are frozen; only free variables are flipped.

type wsOcc struct {
	clause   int
	positive bool
}

// walksat tries to satisfy the residual formula within maxFlips flips,
// starting from a random assignment of the free variables. Each step picks a
// random unsatisfied clause; with probability WalksatNoise it flips a random
// variable of it, otherwise the variable breaking the fewest clauses.
// Returns Sat and a full model on success, Unknown otherwise.
func (s *Solver) walksat(maxFlips int) (Status, []bool) {
	g := s.g
	clauses := make([][]Lit, 0, g.nbEnabledClauses)
	for ci := range g.clauses {
		if !g.clauses[ci].enabled {
			continue
		}
		lits := make([]Lit, 0, len(g.clauses[ci].edges))
		for _, ei := range g.clauses[ci].edges {
			e := &g.edges[ei]
			if e.enabled {
				lits = append(lits, Var(e.v).SignedLit(!e.positive))
			}
		}
		clauses = append(clauses, lits)
	}

	model := g.model()
	occ := make([][]wsOcc, len(g.vars))
	for ci, lits := range clauses {
		for _, l := range lits {
			v := int(l.Var())
			occ[v] = append(occ[v], wsOcc{clause: ci, positive: l.IsPositive()})
		}
	}
	for vi := range g.vars {
		if !g.vars[vi].assigned {
			model[vi] = s.rng.IntN(2) == 1
		}
	}

	// Per-clause count of true literals, plus the unsatisfied-clause list
	// with positional index for O(1) removal.
	trueCount := make([]int, len(clauses))
	unsat := make([]int, 0, len(clauses))
	pos := make([]int, len(clauses))
	for ci, lits := range clauses {
		for _, l := range lits {
			if model[l.Var()] == l.IsPositive() {
				trueCount[ci]++
			}
		}
		pos[ci] = -1
		if trueCount[ci] == 0 {
			pos[ci] = len(unsat)
			unsat = append(unsat, ci)
		}
	}

	breakCount := func(v int) int {
		n := 0
		for _, o := range occ[v] {
			if trueCount[o.clause] == 1 && model[v] == o.positive {
				n++
			}
		}
		return n
	}
	flip := func(v int) {
		model[v] = !model[v]
		for _, o := range occ[v] {
			if model[v] == o.positive {
				trueCount[o.clause]++
				if trueCount[o.clause] == 1 {
					last := unsat[len(unsat)-1]
					unsat[pos[o.clause]] = last
					pos[last] = pos[o.clause]
					unsat = unsat[:len(unsat)-1]
					pos[o.clause] = -1
				}
			} else {
				trueCount[o.clause]--
				if trueCount[o.clause] == 0 {
					pos[o.clause] = len(unsat)
					unsat = append(unsat, o.clause)
				}
			}
		}
	}

	for i := 0; i < maxFlips; i++ {
		if len(unsat) == 0 {
			s.log.WithField("flips", i).Info("local search found a model")
			return Sat, model
		}
		lits := clauses[unsat[s.rng.IntN(len(unsat))]]
		var v int
		if s.rng.Float64() < s.conf.WalksatNoise {
			v = int(lits[s.rng.IntN(len(lits))].Var())
		} else {
			best := -1
			bestBreak := 0
			for _, l := range lits {
				cand := int(l.Var())
				if br := breakCount(cand); best == -1 || br < bestBreak {
					best, bestBreak = cand, br
				}
			}
			v = best
		}
		flip(v)
		s.Stats.NbFlips++
	}
	if len(unsat) == 0 {
		return Sat, model
	}
	return Unknown, nil
}
