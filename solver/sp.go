package solver

import "math"

// Result of one survey propagation run.
type spResult byte

const (
	spConverged spResult = iota
	spTrivial            // all surveys collapsed to zero
	spUnconverged
)

// surveyPropagation iterates survey updates over all enabled clauses until
// the largest per-sweep change drops to SPEpsilon or below, or the sweep budget is
// exhausted. Clauses are visited in a fresh random order on every sweep.
func (s *Solver) surveyPropagation() spResult {
	s.g.computeSubProducts()
	for it := 0; it < s.conf.SPMaxIterations; it++ {
		s.clauseBuf = s.g.appendEnabledClauses(s.clauseBuf[:0])
		clauses := s.clauseBuf
		s.rng.Shuffle(len(clauses), func(i, j int) {
			clauses[i], clauses[j] = clauses[j], clauses[i]
		})
		maxDiff := 0.0
		for _, ci := range clauses {
			if d := s.updateSurveys(ci); d > maxDiff {
				maxDiff = d
			}
		}
		s.Stats.NbSPSweeps++
		if maxDiff <= s.conf.SPEpsilon {
			if maxDiff < s.conf.ZeroEpsilon {
				return spTrivial
			}
			s.log.WithField("sweeps", it+1).Debug("survey propagation converged")
			return spConverged
		}
	}
	return spUnconverged
}

// updateSurveys recomputes the survey of every enabled edge of clause ci and
// returns the largest change. For each edge it first derives a subsurvey:
// the probability that the edge's variable is pushed away from satisfying ci
// by its other clauses. The new survey of an edge is then the product of the
// subsurveys of the *other* edges, obtained by dividing the edge's own
// subsurvey out of the full product, with explicit bookkeeping for
// subsurveys that are zero.
func (s *Solver) updateSurveys(ci int) float64 {
	eps := s.g.eps
	s.edgeBuf = s.edgeBuf[:0]
	s.subBuf = s.subBuf[:0]
	zeros := 0
	allSubSurveys := 1.0
	for _, ei := range s.g.clauses[ci].edges {
		e := &s.g.edges[ei]
		if !e.enabled {
			continue
		}
		v := &s.g.vars[e.v]
		var wn, wt float64
		if e.positive {
			m := v.m
			if v.mzero >= 1 {
				m = 0.0
			}
			var p float64
			switch {
			case v.pzero == 0:
				p = v.p / (1.0 - e.survey)
			case v.pzero == 1 && 1.0-e.survey <= eps:
				p = v.p // this edge is the sole saturated one; removing it leaves the regular product
			default:
				p = 0.0
			}
			wn = p * (1.0 - m)
			wt = m
		} else {
			p := v.p
			if v.pzero >= 1 {
				p = 0.0
			}
			var m float64
			switch {
			case v.mzero == 0:
				m = v.m / (1.0 - e.survey)
			case v.mzero == 1 && 1.0-e.survey <= eps:
				m = v.m
			default:
				m = 0.0
			}
			wn = m * (1.0 - p)
			wt = m
		}
		subSurvey := 0.0
		if wn+wt > 0 {
			subSurvey = wn / (wn + wt)
		}
		s.edgeBuf = append(s.edgeBuf, ei)
		s.subBuf = append(s.subBuf, subSurvey)
		if subSurvey < eps {
			zeros++
		} else {
			allSubSurveys *= subSurvey
		}
	}

	maxDiff := 0.0
	for i, ei := range s.edgeBuf {
		e := &s.g.edges[ei]
		var newSurvey float64
		switch {
		case zeros == 0:
			newSurvey = allSubSurveys / s.subBuf[i]
		case zeros == 1 && s.subBuf[i] < eps:
			newSurvey = allSubSurveys
		default:
			newSurvey = 0.0
		}
		if newSurvey > 1.0 { // guard against rounding when dividing a factor back out
			newSurvey = 1.0
		}
		s.g.updateSurvey(e.v, e.positive, e.survey, newSurvey)
		if d := math.Abs(e.survey - newSurvey); d > maxDiff {
			maxDiff = d
		}
		e.survey = newSurvey
	}
	return maxDiff
}

// initSurveys draws a uniform random survey for every enabled edge and
// resyncs the subproduct caches.
func (s *Solver) initSurveys() {
	for i := range s.g.edges {
		if s.g.edges[i].enabled {
			s.g.edges[i].survey = s.rng.Float64()
		}
	}
	s.g.computeSubProducts()
}
