package hcitest

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// WorkerSpec is one entry of the `worker` list in a scenario file: the
// attribute name a scenario's main() uses to look the worker up, paired
// with the registered worker type that implements it (§6, §4.8).
type WorkerSpec struct {
	AttributeName string `yaml:"attribute_name"`
	WorkerClass   string `yaml:"worker_class"`
}

// Config is the parsed shape of a scenario YAML file (§6 "Scenario
// configuration"). Device defaults to 0..len(Worker) when omitted, matching
// one HCI device index per worker in declaration order.
type Config struct {
	Coordinator string       `yaml:"coordinator"`
	Worker      []WorkerSpec `yaml:"worker"`
	Device      []int        `yaml:"device"`
}

// LoadConfig reads and parses a scenario file at path, filling in Device
// when the file leaves it out.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario config %s", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing scenario config %s", path)
	}
	if cfg.Device == nil {
		cfg.Device = make([]int, len(cfg.Worker))
		for i := range cfg.Device {
			cfg.Device[i] = i
		}
	}
	return &cfg, nil
}
