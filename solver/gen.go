package solver

import "math/rand/v2"

// GenerateKSAT draws a uniform random k-SAT instance: each of the nbClauses
// clauses picks k distinct variables among nbVars and negates each with
// probability 1/2.
func GenerateKSAT(rng *rand.Rand, nbVars, nbClauses, k int) *Problem {
	if k > nbVars {
		k = nbVars
	}
	pb := &Problem{
		NbVars:  nbVars,
		Clauses: make([][]Lit, nbClauses),
	}
	picked := make([]int, 0, k)
	for i := range pb.Clauses {
		picked = picked[:0]
		for len(picked) < k {
			v := rng.IntN(nbVars)
			dup := false
			for _, w := range picked {
				if w == v {
					dup = true
					break
				}
			}
			if !dup {
				picked = append(picked, v)
			}
		}
		lits := make([]Lit, k)
		for j, v := range picked {
			lits[j] = Var(v).SignedLit(rng.IntN(2) == 1)
		}
		pb.Clauses[i] = lits
	}
	return pb
}
