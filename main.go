package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/crillab/surveysat/solver"
)

var log = logrus.New()

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "surveysat",
		Short:         "survey inspired decimation solver for random k-SAT",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			log.SetLevel(logrus.InfoLevel)
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			color.NoColor = color.NoColor || !isatty.IsTerminal(os.Stdout.Fd())
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log solving progress")
	cmd.AddCommand(solveCmd(), genCmd())
	return cmd
}

func solveCmd() *cobra.Command {
	conf := solver.DefaultConfig()
	var confPath string
	cmd := &cobra.Command{
		Use:   "solve file.cnf",
		Short: "solve a DIMACS CNF instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := conf
			if confPath != "" {
				var err error
				if conf, err = solver.LoadConfig(confPath); err != nil {
					return err
				}
			}
			// Explicit flags win over the parameter file.
			if cmd.Flags().Changed("seed") {
				conf.Seed = flags.Seed
			}
			if cmd.Flags().Changed("fraction") {
				conf.SIDFraction = flags.SIDFraction
			}
			if cmd.Flags().Changed("sp-max-it") {
				conf.SPMaxIterations = flags.SPMaxIterations
			}
			if cmd.Flags().Changed("sp-epsilon") {
				conf.SPEpsilon = flags.SPEpsilon
			}
			if cmd.Flags().Changed("paramagnetic") {
				conf.ParamagneticThreshold = flags.ParamagneticThreshold
			}
			if cmd.Flags().Changed("ws-max-flips") {
				conf.WalksatMaxFlipsPerVar = flags.WalksatMaxFlipsPerVar
			}
			if cmd.Flags().Changed("ws-noise") {
				conf.WalksatNoise = flags.WalksatNoise
			}
			if err := conf.Validate(); err != nil {
				return err
			}
			return solve(args[0], conf)
		},
	}
	cmd.Flags().StringVarP(&confPath, "config", "c", "", "JSON parameter file")
	cmd.Flags().Uint64Var(&conf.Seed, "seed", 0, "PRNG seed, 0 picks one from entropy")
	cmd.Flags().Float64Var(&conf.SIDFraction, "fraction", conf.SIDFraction, "fraction of unassigned variables fixed per decimation round")
	cmd.Flags().IntVar(&conf.SPMaxIterations, "sp-max-it", conf.SPMaxIterations, "maximum number of survey propagation sweeps")
	cmd.Flags().Float64Var(&conf.SPEpsilon, "sp-epsilon", conf.SPEpsilon, "survey propagation convergence threshold")
	cmd.Flags().Float64Var(&conf.ParamagneticThreshold, "paramagnetic", conf.ParamagneticThreshold, "average bias under which local search takes over")
	cmd.Flags().IntVar(&conf.WalksatMaxFlipsPerVar, "ws-max-flips", conf.WalksatMaxFlipsPerVar, "local search flips per variable")
	cmd.Flags().Float64Var(&conf.WalksatNoise, "ws-noise", conf.WalksatNoise, "local search random walk probability")
	return cmd
}

func solve(path string, conf solver.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	pb, err := solver.ParseCNF(f)
	if err != nil {
		return err
	}
	s := solver.New(pb, conf)
	s.SetLogger(log)
	log.WithFields(logrus.Fields{
		"file":    path,
		"vars":    pb.NbVars,
		"clauses": len(pb.Clauses),
		"seed":    s.Seed(),
	}).Info("solving")
	status := s.Solve()
	log.WithFields(logrus.Fields{
		"rounds":    s.Stats.NbRounds,
		"sweeps":    s.Stats.NbSPSweeps,
		"fixed":     s.Stats.NbFixed,
		"unitProps": s.Stats.NbUnitProps,
		"flips":     s.Stats.NbFlips,
	}).Debug("done")
	switch status {
	case solver.Sat:
		color.New(color.FgGreen).Println("s SATISFIABLE")
		lits := lo.Map(s.Model(), func(val bool, i int) string {
			if val {
				return strconv.Itoa(i + 1)
			}
			return strconv.Itoa(-i - 1)
		})
		fmt.Printf("v %s\n", strings.Join(lits, " "))
	default:
		color.New(color.FgYellow).Printf("s %s\n", status)
	}
	return nil
}

func genCmd() *cobra.Command {
	var (
		nbVars int
		alpha  float64
		k      int
		seed   uint64
		out    string
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "generate a random k-SAT instance in DIMACS format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if nbVars < 1 || alpha <= 0 || k < 1 {
				return fmt.Errorf("invalid instance shape: n=%d alpha=%v k=%d", nbVars, alpha, k)
			}
			rng, effSeed := solver.NewRand(seed)
			pb := solver.GenerateKSAT(rng, nbVars, int(alpha*float64(nbVars)), k)
			text := fmt.Sprintf("c random %d-SAT, n=%d alpha=%v seed=%d\n%s", k, nbVars, alpha, effSeed, pb.CNF())
			if out == "" {
				fmt.Print(text)
				return nil
			}
			return os.WriteFile(out, []byte(text), 0o644)
		},
	}
	cmd.Flags().IntVarP(&nbVars, "vars", "n", 500, "number of variables")
	cmd.Flags().Float64VarP(&alpha, "alpha", "a", 4.25, "clause to variable ratio")
	cmd.Flags().IntVarP(&k, "literals", "k", 3, "literals per clause")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "PRNG seed, 0 picks one from entropy")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, stdout if empty")
	return cmd
}
