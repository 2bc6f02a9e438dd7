package solver

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Stats are statistics about the resolution of the problem.
// They are provided for information purpose only.
type Stats struct {
	NbRounds    int // How many decimation rounds were run
	NbSPSweeps  int // How many survey propagation sweeps were run in total
	NbFixed     int // How many variables were fixed by decimation
	NbUnitProps int // How many variables were assigned by unit propagation
	NbFlips     int // How many local search flips were performed
}

// A Solver runs survey inspired decimation on a problem.
// It is the main data structure.
type Solver struct {
	pb     *Problem
	g      *graph
	conf   Config
	rng    *rand.Rand
	seed   uint64
	log    logrus.FieldLogger
	model  []bool
	status Status

	// Statistics about the solving process.
	Stats Stats

	// Scratch buffers reused across sweeps and clauses.
	clauseBuf []int
	edgeBuf   []int
	subBuf    []float64
}

// New makes a solver for the given problem. Zero-valued tunables in conf are
// replaced by their defaults, so callers only set what they change.
func New(pb *Problem, conf Config) *Solver {
	def := DefaultConfig()
	if conf.SIDFraction == 0 {
		conf.SIDFraction = def.SIDFraction
	}
	if conf.SPMaxIterations == 0 {
		conf.SPMaxIterations = def.SPMaxIterations
	}
	if conf.SPEpsilon == 0 {
		conf.SPEpsilon = def.SPEpsilon
	}
	if conf.ParamagneticThreshold == 0 {
		conf.ParamagneticThreshold = def.ParamagneticThreshold
	}
	if conf.ZeroEpsilon == 0 {
		conf.ZeroEpsilon = def.ZeroEpsilon
	}
	if conf.WalksatMaxFlipsPerVar == 0 {
		conf.WalksatMaxFlipsPerVar = def.WalksatMaxFlipsPerVar
	}
	if conf.WalksatNoise == 0 {
		conf.WalksatNoise = def.WalksatNoise
	}
	rng, seed := NewRand(conf.Seed)
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	return &Solver{
		pb:   pb,
		g:    newGraph(pb, conf.ZeroEpsilon),
		conf: conf,
		rng:  rng,
		seed: seed,
		log:  quiet,
	}
}

// SetLogger installs the logger used to report solving progress.
func (s *Solver) SetLogger(log logrus.FieldLogger) {
	s.log = log
}

// Seed returns the seed the PRNG was effectively started with, which is the
// configured one unless it was 0 (auto-seeded). Replaying a run with this
// seed reproduces it exactly.
func (s *Solver) Seed() uint64 {
	return s.seed
}

// SID runs survey inspired decimation and returns Sat, Contradiction,
// Unconverged or WalksatRequested. On WalksatRequested the graph holds a
// partially simplified formula the caller can hand to a local search; Solve
// does exactly that.
func (s *Solver) SID() Status {
	s.status = s.decimate()
	s.Stats.NbUnitProps = s.g.nbAssignments - s.Stats.NbFixed
	if s.status == Sat {
		s.model = s.g.model()
	}
	return s.status
}

// Solve runs SID and, if the surveys become uninformative, local search on
// the residual formula. Returns Sat, Contradiction, Unconverged or Unknown.
func (s *Solver) Solve() Status {
	status := s.SID()
	if status == WalksatRequested {
		status = Unknown
		if wsStatus, model := s.walksat(s.conf.WalksatMaxFlipsPerVar * s.pb.NbVars); wsStatus == Sat {
			s.model = model
			status = Sat
		}
	}
	if status == Sat && !s.pb.Verify(s.model) {
		panic("model found does not satisfy the formula")
	}
	s.status = status
	return status
}

// Model returns a slice that associates, to each variable, its binding.
// If s's status is not Sat, the method will panic.
func (s *Solver) Model() []bool {
	if s.status != Sat || s.model == nil {
		panic("cannot call Model() from a non-Sat solver")
	}
	res := make([]bool, len(s.model))
	copy(res, s.model)
	return res
}

// OutputModel outputs the result and, if any, the model for the problem on stdout.
func (s *Solver) OutputModel() {
	if s.status == Sat {
		fmt.Printf("s SATISFIABLE\nv ")
		for i, val := range s.model {
			if val {
				fmt.Printf("%d ", i+1)
			} else {
				fmt.Printf("%d ", -i-1)
			}
		}
		fmt.Printf("\n")
	} else {
		fmt.Printf("s %s\n", s.status)
	}
}
