/*
Package solver decides satisfiability of large random k-SAT formulas near the
SAT/UNSAT threshold with Survey Inspired Decimation (SID).

The solver builds the factor graph of the formula and runs Survey
Propagation (SP) on it: every clause sends each of its variables a "warning"
message, the probability that the clause needs that variable to satisfy it.
Once the messages reach a fixed point, the most polarized variables are
fixed, the formula is simplified by unit propagation, and the process
recurses on the residual formula. When the messages stop carrying
information, the remaining formula is handed to a WalkSAT-style local
search.

A problem can be parsed from a DIMACS stream:

	pb, err := solver.ParseCNF(f)

or created programmatically from a list of clauses:

	pb := solver.ParseSlice([][]int{{1, 2, 3}, {-1, -2}, {-3}})

or drawn at random near the threshold:

	pb := solver.GenerateKSAT(rng, 500, 2125, 3)

Solving follows the usual create-then-solve pattern:

	s := solver.New(pb, solver.DefaultConfig())
	status := s.Solve()
	if status == solver.Sat {
		model := s.Model()
		...
	}

Solve returns Sat, Contradiction, Unconverged or Unknown. A Contradiction is
not an UNSAT proof: decimation may simply have fixed a variable the wrong
way, and a caller may retry with a different seed. Runs are fully
deterministic for a given (problem, seed) pair.
*/
package solver
