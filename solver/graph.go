package solver

import (
	"github.com/pkg/errors"
)

// ErrContradiction is returned when unit propagation derives an empty clause
// or a variable is forced to both values.
var ErrContradiction = errors.New("contradiction")

// variable is a variable node of the factor graph. p and m cache the product
// of (1 - survey) over its enabled positive and negative edges whose survey
// is strictly below 1; pzero and mzero count the enabled edges per polarity
// whose survey saturated at 1.
type variable struct {
	p, m         float64
	pzero, mzero int
	hp, hm, hz   float64 // normalized magnetizations: true / false / joker
	evalValue    float64 // |hp - hm|, the polarization score
	edges        []int
	assigned     bool
	value        bool
}

// clause is a factor node. A clause is disabled as soon as one of its
// literals is made true. A clause whose edges are all gone stays enabled and
// unitPropagation reports it as a contradiction.
type clause struct {
	edges   []int
	enabled bool
}

// edge is the occurrence of a literal in a clause. positive is true iff the
// literal occurs positively. survey is the current warning message from the
// clause to the variable.
type edge struct {
	v        int
	c        int
	survey   float64
	positive bool
	enabled  bool
}

// graph is the factor graph of a formula. Variables, clauses and edges live
// in arenas and reference each other by index. Clauses and edges are only
// ever disabled, never re-enabled, and assignments are never undone.
type graph struct {
	vars    []variable
	clauses []clause
	edges   []edge

	eps float64 // survey-saturated-at-1 tolerance

	nbEnabledClauses int
	nbUnassigned     int
	nbAssignments    int
}

func newGraph(pb *Problem, eps float64) *graph {
	nbEdges := 0
	for _, c := range pb.Clauses {
		nbEdges += len(c)
	}
	g := &graph{
		vars:             make([]variable, pb.NbVars),
		clauses:          make([]clause, len(pb.Clauses)),
		edges:            make([]edge, 0, nbEdges),
		eps:              eps,
		nbEnabledClauses: len(pb.Clauses),
		nbUnassigned:     pb.NbVars,
	}
	for i := range g.vars {
		g.vars[i].p = 1.0
		g.vars[i].m = 1.0
	}
	for ci, lits := range pb.Clauses {
		g.clauses[ci].enabled = true
		g.clauses[ci].edges = make([]int, 0, len(lits))
		for _, lit := range lits {
			ei := len(g.edges)
			g.edges = append(g.edges, edge{
				v:        int(lit.Var()),
				c:        ci,
				positive: lit.IsPositive(),
				enabled:  true,
			})
			g.clauses[ci].edges = append(g.clauses[ci].edges, ei)
			g.vars[lit.Var()].edges = append(g.vars[lit.Var()].edges, ei)
		}
	}
	return g
}

// IsSAT is true iff every clause is satisfied.
func (g *graph) IsSAT() bool {
	return g.nbEnabledClauses == 0
}

// appendEnabledClauses appends the indices of all enabled clauses to buf.
func (g *graph) appendEnabledClauses(buf []int) []int {
	for ci := range g.clauses {
		if g.clauses[ci].enabled {
			buf = append(buf, ci)
		}
	}
	return buf
}

// disableEdge removes e from its clause's and its variable's effective
// neighborhoods and folds its survey out of the variable's subproducts, so
// that they stay consistent with the shrunken neighborhood.
func (g *graph) disableEdge(ei int) {
	e := &g.edges[ei]
	if !e.enabled {
		return
	}
	e.enabled = false
	g.removeSurvey(e.v, e.positive, e.survey)
}

// disableClause marks c satisfied and eagerly disables all its edges.
func (g *graph) disableClause(ci int) {
	c := &g.clauses[ci]
	if !c.enabled {
		return
	}
	c.enabled = false
	g.nbEnabledClauses--
	for _, ei := range c.edges {
		g.disableEdge(ei)
	}
}

// enabledEdgeCount returns the number of enabled edges of c and the index of
// the last one seen.
func (g *graph) enabledEdgeCount(ci int) (n, last int) {
	last = -1
	for _, ei := range g.clauses[ci].edges {
		if g.edges[ei].enabled {
			n++
			last = ei
		}
	}
	return n, last
}

// assign fixes v to value and propagates the consequences: clauses satisfied
// by the assignment are disabled, the remaining occurrences of v are removed
// and their clauses unit-propagated. Re-assigning the same value is a no-op;
// the opposite value is a contradiction.
func (g *graph) assign(vi int, value bool) error {
	v := &g.vars[vi]
	if v.assigned {
		if v.value != value {
			return errors.Wrapf(ErrContradiction, "variable x%d already assigned with opposite value", vi+1)
		}
		return nil
	}
	v.assigned = true
	v.value = value
	g.nbUnassigned--
	g.nbAssignments++
	for _, ei := range v.edges {
		e := &g.edges[ei]
		if !e.enabled {
			continue
		}
		if e.positive == value {
			g.disableClause(e.c)
		} else {
			g.disableEdge(ei)
			if err := g.unitPropagation(e.c); err != nil {
				return err
			}
		}
	}
	return nil
}

// unitPropagation forces the single remaining literal of c, if any. An empty
// clause is a contradiction. Forcing recurses through assign.
func (g *graph) unitPropagation(ci int) error {
	if !g.clauses[ci].enabled {
		return nil
	}
	n, last := g.enabledEdgeCount(ci)
	switch n {
	case 0:
		return errors.Wrapf(ErrContradiction, "clause c%d is empty", ci+1)
	case 1:
		e := &g.edges[last]
		return g.assign(e.v, e.positive)
	default:
		return nil
	}
}

// propagateUnits runs unit propagation over every clause. Called once before
// surveys exist, so that unit clauses present in the input are forced first.
func (g *graph) propagateUnits() error {
	for ci := range g.clauses {
		if err := g.unitPropagation(ci); err != nil {
			return err
		}
	}
	return nil
}

// model returns the current assignment. Unassigned variables read as false.
func (g *graph) model() []bool {
	res := make([]bool, len(g.vars))
	for i := range g.vars {
		res[i] = g.vars[i].assigned && g.vars[i].value
	}
	return res
}
