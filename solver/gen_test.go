package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKSAT(t *testing.T) {
	rng, _ := NewRand(6)
	pb := GenerateKSAT(rng, 30, 90, 3)
	assert.Equal(t, 30, pb.NbVars)
	require.Len(t, pb.Clauses, 90)
	for _, clause := range pb.Clauses {
		require.Len(t, clause, 3)
		seen := map[Var]bool{}
		for _, lit := range clause {
			assert.False(t, seen[lit.Var()], "variables within a clause must be distinct")
			seen[lit.Var()] = true
			assert.Less(t, int(lit.Var()), 30)
		}
	}
}

func TestGenerateKSATDeterministic(t *testing.T) {
	rng1, _ := NewRand(8)
	rng2, _ := NewRand(8)
	assert.Equal(t, GenerateKSAT(rng1, 20, 40, 3), GenerateKSAT(rng2, 20, 40, 3))
}
