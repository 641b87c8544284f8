package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"learnsort/pkg/model"
)

type Config struct {
	Model ModelConfig `yaml:"model"`
	Bench BenchConfig `yaml:"bench"`
}

type ModelConfig struct {
	BatchSize      int     `yaml:"batch_size"`
	Fanout         int     `yaml:"fanout"`
	OverallocRatio float64 `yaml:"overalloc_ratio"`
	SamplingRate   float64 `yaml:"sampling_rate"`
	Threshold      int     `yaml:"threshold"`
	NumLeaves      int     `yaml:"num_leaves"`
}

type BenchConfig struct {
	Sizes         []int    `yaml:"sizes"`
	Distributions []string `yaml:"distributions"`
	Seed          int64    `yaml:"seed"`
	ResultsPath   string   `yaml:"results_path"`
}

func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Model: ModelConfig{
			BatchSize:      model.DefaultBatchSize,
			Fanout:         model.DefaultFanout,
			OverallocRatio: model.DefaultOverallocRatio,
			SamplingRate:   model.DefaultSamplingRate,
			Threshold:      model.DefaultThreshold,
			NumLeaves:      model.DefaultNumLeaves,
		},
		Bench: BenchConfig{
			Sizes:         []int{1_000_000, 10_000_000},
			Distributions: []string{"uniform", "normal", "lognormal", "mix_gauss", "zipf", "root_dups", "mod_dups"},
			Seed:          42,
			ResultsPath:   "learnsort_bench.db",
		},
	}

	if configPath == "" {
		for _, p := range []string{"configs/learnsort.yaml", "learnsort.yaml"} {
			data, err := os.ReadFile(p)
			if err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					return cfg, err
				}
				applyBenchDefaults(cfg)
				return cfg, nil
			}
		}
		applyBenchDefaults(cfg)
		return cfg, nil // no file found: use defaults
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	applyBenchDefaults(cfg)
	return cfg, nil
}

func applyBenchDefaults(cfg *Config) {
	if len(cfg.Bench.Sizes) == 0 {
		cfg.Bench.Sizes = []int{1_000_000, 10_000_000}
	}
	if len(cfg.Bench.Distributions) == 0 {
		cfg.Bench.Distributions = []string{"uniform", "normal", "lognormal", "mix_gauss", "zipf", "root_dups", "mod_dups"}
	}
	if cfg.Bench.ResultsPath == "" {
		cfg.Bench.ResultsPath = "learnsort_bench.db"
	}
}

// Params converts the model section into sorter hyperparameters. Out-of-range
// values are left as-is here; the sorter repairs them on entry.
func (mc ModelConfig) Params() *model.Params {
	return &model.Params{
		BatchSize:      mc.BatchSize,
		Fanout:         mc.Fanout,
		OverallocRatio: mc.OverallocRatio,
		SamplingRate:   mc.SamplingRate,
		Threshold:      mc.Threshold,
		Arch:           []int{1, mc.NumLeaves},
	}
}
