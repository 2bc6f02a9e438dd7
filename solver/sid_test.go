package solver

import (
	"testing"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// giniStatus solves pb with an independent CDCL solver and returns 1 for
// SAT, -1 for UNSAT.
func giniStatus(pb *Problem) int {
	g := gini.New()
	for _, clause := range pb.Clauses {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit.Int()))
		}
		g.Add(z.LitNull)
	}
	return g.Solve()
}

// A test associates a problem with the statuses accepted for it.
type test struct {
	name     string
	clauses  [][]int
	accepted []Status
}

var tests = []test{
	{"trivially sat", [][]int{{1, 2, 3}}, []Status{Sat}},
	{"unit cascade", [][]int{{1}, {-1, 2}, {-2, 3}}, []Status{Sat}},
	{"direct contradiction", [][]int{{1}, {-1}}, []Status{Contradiction}},
	{"two chains", [][]int{{1, 2}, {-1, 2}, {1, -2}}, []Status{Sat}},
}

func TestScenarios(t *testing.T) {
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pb := ParseSlice(test.clauses)
			s := New(pb, Config{Seed: 1})
			status := s.Solve()
			assert.Contains(t, test.accepted, status)
			if status == Sat {
				assert.True(t, pb.Verify(s.Model()), "returned model must satisfy the formula")
			}
		})
	}
}

func TestUnitCascadeModel(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {-1, 2}, {-2, 3}})
	s := New(pb, Config{Seed: 1})
	require.Equal(t, Sat, s.SID())
	assert.Equal(t, []bool{true, true, true}, s.Model())
	assert.Equal(t, 3, s.Stats.NbUnitProps)
	assert.Zero(t, s.Stats.NbFixed)
}

func TestRandomBelowThreshold(t *testing.T) {
	rng, _ := NewRand(1)
	pb := GenerateKSAT(rng, 100, 300, 3) // alpha = 3.0, comfortably below threshold
	require.Equal(t, 1, giniStatus(pb), "generated instance should be satisfiable")

	s := New(pb, Config{Seed: 1, WalksatMaxFlipsPerVar: 1000})
	require.Equal(t, Sat, s.Solve())
	assert.True(t, pb.Verify(s.Model()))
}

func TestRandomNearThreshold(t *testing.T) {
	rng, _ := NewRand(1)
	pb := GenerateKSAT(rng, 500, 2125, 3) // alpha = 4.25

	s := New(pb, Config{Seed: 1})
	status := s.SID()
	assert.Contains(t, []Status{Sat, WalksatRequested, Unconverged, Contradiction}, status)
	if status == Sat {
		assert.True(t, pb.Verify(s.Model()))
	}

	// A contradiction, like every other outcome, must be reproducible.
	s2 := New(pb, Config{Seed: 1})
	assert.Equal(t, status, s2.SID())
}

// Far below the threshold the surveys decay to nothing: decimation must
// hand over to local search instead of fixing variables blindly.
func TestParamagneticTrigger(t *testing.T) {
	rng, _ := NewRand(1)
	pb := GenerateKSAT(rng, 100, 50, 3) // alpha = 0.5
	s := New(pb, Config{Seed: 1})
	assert.Equal(t, WalksatRequested, s.SID())
}

func TestDeterminism(t *testing.T) {
	rng, _ := NewRand(9)
	pb := GenerateKSAT(rng, 80, 250, 3)

	s1 := New(pb, Config{Seed: 4})
	s2 := New(pb, Config{Seed: 4})
	status1, status2 := s1.Solve(), s2.Solve()
	require.Equal(t, status1, status2)
	if status1 == Sat {
		assert.Equal(t, s1.Model(), s2.Model())
	}
	assert.Equal(t, s1.Stats, s2.Stats)
}

func TestAutoSeedIsRecorded(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2}})
	s := New(pb, Config{})
	assert.NotZero(t, s.Seed())

	// Replaying with the recorded seed reproduces the run.
	s2 := New(pb, Config{Seed: s.Seed()})
	assert.Equal(t, s.Solve(), s2.Solve())
}

func TestGiniAgreesOnContradiction(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {-1}})
	assert.Equal(t, -1, giniStatus(pb))
	s := New(pb, Config{Seed: 1})
	assert.Equal(t, Contradiction, s.Solve())
}
