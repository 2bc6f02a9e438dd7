package solver

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// evaluateVar computes the magnetizations of an unassigned variable from its
// subproducts: hp, hm and hz are the normalized probabilities that the
// variable should be true, false, or is unconstrained, and evalValue is the
// polarization |hp - hm|. A degenerate variable (normalization sum <= 0)
// gets all-zero fields and is left for a later round.
func (s *Solver) evaluateVar(vi int) {
	v := &s.g.vars[vi]
	p := v.p
	if v.pzero >= 1 {
		p = 0.0
	}
	m := v.m
	if v.mzero >= 1 {
		m = 0.0
	}
	hz := p * m
	hp := m - hz
	hm := p - hz
	sum := hp + hm + hz
	if sum <= 0 {
		v.hp, v.hm, v.hz, v.evalValue = 0, 0, 0, 0
		return
	}
	v.hp = hp / sum
	v.hm = hm / sum
	v.hz = hz / sum
	v.evalValue = math.Abs(v.hp - v.hm)
}

// decimate alternates survey propagation with fixing the most polarized
// fraction of the unassigned variables, until the formula is satisfied, a
// contradiction is found, SP stops converging, or the surveys stop being
// informative.
func (s *Solver) decimate() Status {
	// Unit clauses present in the input are forced before any surveys exist.
	if err := s.g.propagateUnits(); err != nil {
		s.log.WithError(errors.Cause(err)).Info("contradiction during initial unit propagation")
		return Contradiction
	}
	if s.g.IsSAT() {
		return Sat
	}

	s.initSurveys()

	for {
		s.Stats.NbRounds++
		switch s.surveyPropagation() {
		case spUnconverged:
			return Unconverged
		case spTrivial:
			s.log.WithField("round", s.Stats.NbRounds).Info("surveys collapsed to zero, requesting local search")
			return WalksatRequested
		}

		unassigned := lo.Filter(lo.Range(len(s.g.vars)), func(vi int, _ int) bool {
			return !s.g.vars[vi].assigned
		})
		for _, vi := range unassigned {
			s.evaluateVar(vi)
		}
		if len(unassigned) == 0 {
			return Sat
		}
		sumMaxBias := lo.SumBy(unassigned, func(vi int) float64 {
			return math.Max(s.g.vars[vi].hp, s.g.vars[vi].hm)
		})
		avgMaxBias := sumMaxBias / float64(len(unassigned))
		if avgMaxBias < s.conf.ParamagneticThreshold {
			s.log.WithFields(logrus.Fields{
				"round":      s.Stats.NbRounds,
				"avgMaxBias": avgMaxBias,
			}).Info("paramagnetic state, requesting local search")
			return WalksatRequested
		}

		sort.Slice(unassigned, func(i, j int) bool {
			vi, vj := &s.g.vars[unassigned[i]], &s.g.vars[unassigned[j]]
			if vi.evalValue != vj.evalValue {
				return vi.evalValue > vj.evalValue
			}
			return unassigned[i] < unassigned[j]
		})

		k := int(float64(len(unassigned)) * s.conf.SIDFraction)
		if k < 1 {
			k = 1
		}
		fixed := 0
		for _, vi := range unassigned {
			if fixed == k {
				break
			}
			// Unit propagation from an earlier fixing in this round may have
			// assigned the variable already; the skip does not consume the
			// fixing budget.
			if s.g.vars[vi].assigned {
				continue
			}
			// Previous fixings shrank the neighborhood, so the biases must be
			// recomputed from the current subproducts.
			s.evaluateVar(vi)
			v := &s.g.vars[vi]
			if v.hp+v.hm+v.hz == 0 {
				continue
			}
			if err := s.g.assign(vi, v.hp > v.hm); err != nil {
				s.log.WithError(errors.Cause(err)).Info("contradiction while fixing variables")
				return Contradiction
			}
			fixed++
		}
		s.Stats.NbFixed += fixed
		if fixed == 0 {
			// Every candidate re-evaluated as degenerate: the surveys carry
			// no information anymore.
			return WalksatRequested
		}

		s.log.WithFields(logrus.Fields{
			"round":      s.Stats.NbRounds,
			"unassigned": s.g.nbUnassigned,
			"clauses":    s.g.nbEnabledClauses,
			"avgMaxBias": avgMaxBias,
			"fixed":      fixed,
		}).Debug("decimation round done")

		if s.g.IsSAT() {
			return Sat
		}
	}
}
