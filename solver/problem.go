package solver

import (
	"fmt"
	"strings"
)

// A Problem is a list of clauses & a nb of vars.
type Problem struct {
	NbVars  int     // Total nb of vars
	Clauses [][]Lit // Clauses as parsed; never reordered, so a Problem can verify a model found on its graph.
}

// ParseSlice parses a slice of slices of ints and returns the equivalent
// problem. The argument is supposed to be a well-formed CNF: no empty
// clauses, no null literals.
func ParseSlice(cnf [][]int) *Problem {
	var pb Problem
	for _, line := range cnf {
		if len(line) == 0 {
			panic("empty clause in input")
		}
		lits := make([]Lit, len(line))
		for j, val := range line {
			if val == 0 {
				panic("null literal in clause")
			}
			lits[j] = IntToLit(val)
			if v := int(lits[j].Var()); v >= pb.NbVars {
				pb.NbVars = v + 1
			}
		}
		pb.Clauses = append(pb.Clauses, lits)
	}
	return &pb
}

// CNF returns a DIMACS CNF representation of the problem.
func (pb *Problem) CNF() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p cnf %d %d\n", pb.NbVars, len(pb.Clauses))
	for _, clause := range pb.Clauses {
		for _, lit := range clause {
			fmt.Fprintf(&sb, "%d ", lit.Int())
		}
		sb.WriteString("0\n")
	}
	return sb.String()
}

// Verify returns true iff model satisfies every clause of pb.
// model[i] is the binding of the CNF variable i+1.
func (pb *Problem) Verify(model []bool) bool {
	if len(model) < pb.NbVars {
		return false
	}
	for _, clause := range pb.Clauses {
		sat := false
		for _, lit := range clause {
			if model[lit.Var()] == lit.IsPositive() {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}
