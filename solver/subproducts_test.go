package solver

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

type subProducts struct {
	p, m         float64
	pzero, mzero int
}

func snapshotSubProducts(g *graph) map[int]subProducts {
	snap := make(map[int]subProducts)
	for vi := range g.vars {
		if g.vars[vi].assigned {
			continue
		}
		v := &g.vars[vi]
		snap[vi] = subProducts{p: v.p, m: v.m, pzero: v.pzero, mzero: v.mzero}
	}
	return snap
}

func checkSubProducts(t *testing.T, s *Solver) {
	t.Helper()
	g := NewWithT(t)
	snap := snapshotSubProducts(s.g)
	s.g.computeSubProducts()
	for vi, incr := range snap {
		v := &s.g.vars[vi]
		g.Expect(incr.pzero).To(Equal(v.pzero), "pzero of x%d", vi+1)
		g.Expect(incr.mzero).To(Equal(v.mzero), "mzero of x%d", vi+1)
		g.Expect(incr.p).To(BeNumerically("~", v.p, math.Abs(v.p)*1e-9+1e-12), "p of x%d", vi+1)
		g.Expect(incr.m).To(BeNumerically("~", v.m, math.Abs(v.m)*1e-9+1e-12), "m of x%d", vi+1)
	}
}

// The incrementally maintained subproducts must agree with a from-scratch
// rebuild after SP sweeps, and again after assignments shrank the graph.
func TestSubProductConsistency(t *testing.T) {
	rng, _ := NewRand(3)
	pb := GenerateKSAT(rng, 60, 220, 3)
	s := New(pb, Config{Seed: 3})
	s.initSurveys()

	s.surveyPropagation()
	checkSubProducts(t, s)

	fixed := 0
	for vi := 0; vi < len(s.g.vars) && fixed < 10; vi++ {
		if s.g.vars[vi].assigned {
			continue
		}
		s.evaluateVar(vi)
		if err := s.g.assign(vi, s.g.vars[vi].hp > s.g.vars[vi].hm); err != nil {
			break
		}
		fixed++
	}
	checkSubProducts(t, s)

	s.surveyPropagation()
	checkSubProducts(t, s)
}

func TestUpdateSurveyTable(t *testing.T) {
	g := NewWithT(t)
	pb := ParseSlice([][]int{{1, 2}, {1, -2}})
	gr := newGraph(pb, zeroEpsilon)

	// regular -> regular
	gr.computeSubProducts()
	gr.updateSurvey(0, true, 0.0, 0.5)
	g.Expect(gr.vars[0].p).To(BeNumerically("~", 0.5, 1e-12))
	g.Expect(gr.vars[0].pzero).To(Equal(0))

	// regular -> saturated
	gr.updateSurvey(0, true, 0.5, 1.0)
	g.Expect(gr.vars[0].p).To(BeNumerically("~", 1.0, 1e-12))
	g.Expect(gr.vars[0].pzero).To(Equal(1))

	// saturated -> saturated: no change
	gr.updateSurvey(0, true, 1.0, 1.0)
	g.Expect(gr.vars[0].pzero).To(Equal(1))

	// saturated -> regular
	gr.updateSurvey(0, true, 1.0, 0.25)
	g.Expect(gr.vars[0].p).To(BeNumerically("~", 0.75, 1e-12))
	g.Expect(gr.vars[0].pzero).To(Equal(0))
}
