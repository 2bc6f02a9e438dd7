package solver

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// zeroEpsilon is the tolerance below which a quantity is considered zero:
// a survey with 1-survey <= zeroEpsilon counts as saturated at 1, and a
// subsurvey below it counts as an exact zero.
const zeroEpsilon = 1e-16

// Config gathers the solver tunables.
type Config struct {
	// Seed for the solver PRNG. 0 draws a seed from entropy.
	Seed uint64 `mapstructure:"seed"`
	// SIDFraction is the fraction of still-unassigned variables fixed per
	// decimation round (at least one variable is always fixed).
	SIDFraction float64 `mapstructure:"sidFraction"`
	// SPMaxIterations bounds the number of survey propagation sweeps.
	SPMaxIterations int `mapstructure:"spMaxIt"`
	// SPEpsilon is the convergence threshold on the largest per-sweep
	// survey change.
	SPEpsilon float64 `mapstructure:"spEpsilon"`
	// ParamagneticThreshold is the average maximum bias under which the
	// surveys are considered uninformative and local search takes over.
	ParamagneticThreshold float64 `mapstructure:"paramagneticThreshold"`
	// ZeroEpsilon is the saturated-survey tolerance. Exposed for
	// experiments; the default suits double precision.
	ZeroEpsilon float64 `mapstructure:"zeroEpsilon"`
	// WalksatMaxFlipsPerVar scales the local search flip budget with the
	// number of variables.
	WalksatMaxFlipsPerVar int `mapstructure:"wsMaxFlipsPerVar"`
	// WalksatNoise is the random walk probability of the local search.
	WalksatNoise float64 `mapstructure:"wsNoise"`
}

// DefaultConfig returns the standard tunables for instances near the
// SAT/UNSAT threshold.
func DefaultConfig() Config {
	return Config{
		SIDFraction:           0.01,
		SPMaxIterations:       1000,
		SPEpsilon:             1e-3,
		ParamagneticThreshold: 0.01,
		ZeroEpsilon:           zeroEpsilon,
		WalksatMaxFlipsPerVar: 100,
		WalksatNoise:          0.5,
	}
}

// Validate reports the first out-of-range tunable.
func (c Config) Validate() error {
	if c.SIDFraction <= 0 || c.SIDFraction > 1 {
		return errors.Errorf("sidFraction %v out of (0, 1]", c.SIDFraction)
	}
	if c.SPMaxIterations < 1 {
		return errors.Errorf("spMaxIt %d must be at least 1", c.SPMaxIterations)
	}
	if c.SPEpsilon <= 0 {
		return errors.Errorf("spEpsilon %v must be positive", c.SPEpsilon)
	}
	if c.ParamagneticThreshold < 0 {
		return errors.Errorf("paramagneticThreshold %v must not be negative", c.ParamagneticThreshold)
	}
	if c.ZeroEpsilon <= 0 || c.ZeroEpsilon >= c.SPEpsilon {
		return errors.Errorf("zeroEpsilon %v must lie in (0, spEpsilon)", c.ZeroEpsilon)
	}
	if c.WalksatMaxFlipsPerVar < 0 {
		return errors.Errorf("wsMaxFlipsPerVar %d must not be negative", c.WalksatMaxFlipsPerVar)
	}
	if c.WalksatNoise < 0 || c.WalksatNoise > 1 {
		return errors.Errorf("wsNoise %v out of [0, 1]", c.WalksatNoise)
	}
	return nil
}

// LoadConfig reads a JSON parameter file and decodes it over the defaults,
// so a file only needs to name the tunables it changes.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return conf, errors.Wrapf(err, "cannot read config %q", path)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return conf, errors.Wrapf(err, "cannot parse config %q", path)
	}
	if err := mapstructure.Decode(fields, &conf); err != nil {
		return conf, errors.Wrapf(err, "invalid config %q", path)
	}
	return conf, conf.Validate()
}
