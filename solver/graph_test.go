package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitCascade(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {-1, 2}, {-2, 3}})
	g := newGraph(pb, zeroEpsilon)
	require.NoError(t, g.propagateUnits())
	assert.True(t, g.IsSAT())
	for vi := 0; vi < 3; vi++ {
		assert.True(t, g.vars[vi].assigned, "x%d should be assigned", vi+1)
		assert.True(t, g.vars[vi].value, "x%d should be true", vi+1)
	}
}

func TestEmptyClauseContradiction(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {-1}})
	g := newGraph(pb, zeroEpsilon)
	err := g.propagateUnits()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContradiction))
}

func TestAssignTwice(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2, 3}})
	g := newGraph(pb, zeroEpsilon)
	require.NoError(t, g.assign(0, true))
	require.NoError(t, g.assign(0, true)) // same value: no-op
	err := g.assign(0, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContradiction))
}

func TestAssignSatisfiesAndShortens(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2, 3}, {-1, 2, 3}})
	g := newGraph(pb, zeroEpsilon)
	require.NoError(t, g.assign(0, true))
	assert.False(t, g.clauses[0].enabled, "clause containing the true literal must be disabled")
	assert.True(t, g.clauses[1].enabled, "shortened clause stays enabled")
	n, _ := g.enabledEdgeCount(1)
	assert.Equal(t, 2, n)
	for _, ei := range g.clauses[0].edges {
		assert.False(t, g.edges[ei].enabled, "edges of a disabled clause are disabled eagerly")
	}
}

// After any successful assignment, no enabled clause may be left with a
// single enabled edge: unit propagation must have consumed it.
func TestUnitPropagationCompleteness(t *testing.T) {
	rng, _ := NewRand(42)
	pb := GenerateKSAT(rng, 50, 150, 3)
	g := newGraph(pb, zeroEpsilon)
	for vi := 0; vi < len(g.vars); vi++ {
		if g.vars[vi].assigned {
			continue
		}
		if err := g.assign(vi, rng.IntN(2) == 1); err != nil {
			break // a contradiction ends the walk, nothing left to check
		}
		for ci := range g.clauses {
			if !g.clauses[ci].enabled {
				continue
			}
			n, _ := g.enabledEdgeCount(ci)
			assert.NotEqual(t, 1, n, "clause c%d left unit after assigning x%d", ci+1, vi+1)
		}
	}
}

// Enabled clauses and edges only ever shrink, and assignments are never
// undone.
func TestMonotonicity(t *testing.T) {
	rng, _ := NewRand(7)
	pb := GenerateKSAT(rng, 40, 120, 3)
	g := newGraph(pb, zeroEpsilon)

	snapshot := func() (clauses, edges map[int]bool, assigned map[int]bool) {
		clauses, edges, assigned = map[int]bool{}, map[int]bool{}, map[int]bool{}
		for ci := range g.clauses {
			if g.clauses[ci].enabled {
				clauses[ci] = true
			}
		}
		for ei := range g.edges {
			if g.edges[ei].enabled {
				edges[ei] = true
			}
		}
		for vi := range g.vars {
			if g.vars[vi].assigned {
				assigned[vi] = g.vars[vi].value
			}
		}
		return clauses, edges, assigned
	}

	prevClauses, prevEdges, prevAssigned := snapshot()
	for vi := 0; vi < len(g.vars); vi++ {
		if g.vars[vi].assigned {
			continue
		}
		if err := g.assign(vi, vi%2 == 0); err != nil {
			break
		}
		clauses, edges, assigned := snapshot()
		for ci := range clauses {
			assert.True(t, prevClauses[ci], "clause c%d was re-enabled", ci+1)
		}
		for ei := range edges {
			assert.True(t, prevEdges[ei], "edge %d was re-enabled", ei)
		}
		for wi, val := range prevAssigned {
			got, ok := assigned[wi]
			require.True(t, ok, "x%d was unassigned", wi+1)
			assert.Equal(t, val, got, "x%d changed value", wi+1)
		}
		prevClauses, prevEdges, prevAssigned = clauses, edges, assigned
	}
}
