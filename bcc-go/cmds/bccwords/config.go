package main

import (
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/usptact/BCCWords/bcc-golib/errors"
)

// Config collects the tunables shared by the infer and eval commands.
// Values left zero fall back to the model and vocabulary defaults;
// command-line flags override anything set here.
type Config struct {
	NumClasses          int     `yaml:"num_classes"`
	InitialWorkerBelief float64 `yaml:"initial_worker_belief"`
	NumIterations       int     `yaml:"num_iterations"`
	MaxVocabulary       int     `yaml:"max_vocabulary"`
	MinTermCount        int     `yaml:"min_term_count"`
	Parallelism         int     `yaml:"parallelism"`
}

func defaultConfig() Config {
	return Config{
		NumClasses:   2,
		MinTermCount: 2,
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing %s", path)
	}
	return cfg, nil
}

// override replaces a config value with a flag value when the flag was
// set; flags keep their zero value when absent.
func overrideInt(dst *int, flag int) {
	if flag != 0 {
		*dst = flag
	}
}

func overrideFloat(dst *float64, flag float64) {
	if flag != 0 {
		*dst = flag
	}
}
