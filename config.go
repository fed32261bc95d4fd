package marker

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/marker/service/dao"
	"github.com/viant/marker/service/supervisor"
	"github.com/viant/marker/service/worker"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the run configuration. It can
// be populated from YAML; fields left out keep their defaults.
type Config struct {
	Workers        int          `json:"workers" yaml:"workers"`
	Review         worker.Delay `json:"review" yaml:"review"`
	Marking        worker.Delay `json:"marking" yaml:"marking"`
	Retry          worker.Delay `json:"retry" yaml:"retry"`
	CorrectionRate float64      `json:"correctionRate" yaml:"correctionRate"`
	Verbose        bool         `json:"verbose" yaml:"verbose"`
	TraceFile      string       `json:"traceFile,omitempty" yaml:"traceFile,omitempty"`
	Seed           int64        `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// DefaultConfig returns a Config populated with the default review, marking
// and retry latencies and a single worker.
func DefaultConfig() *Config {
	workerConfig := worker.DefaultConfig()
	return &Config{
		Workers:        1,
		Review:         workerConfig.Review,
		Marking:        workerConfig.Marking,
		Retry:          workerConfig.Retry,
		CorrectionRate: workerConfig.CorrectionRate,
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0")
	}
	if err := c.worker().Validate(); err != nil {
		return err
	}
	return nil
}

func (c *Config) worker() worker.Config {
	return worker.Config{
		Review:         c.Review,
		Marking:        c.Marking,
		Retry:          c.Retry,
		CorrectionRate: c.CorrectionRate,
	}
}

func (c *Config) supervisor() supervisor.Config {
	return supervisor.Config{
		Workers: c.Workers,
		Worker:  c.worker(),
		Diff:    c.Verbose,
	}
}

// DecodeConfig decodes YAML on top of the defaults
func DecodeConfig(data []byte) (*Config, error) {
	ret := DefaultConfig()
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return ret, nil
}

// LoadConfig downloads and decodes a YAML config from a local path or afs URL
func LoadConfig(ctx context.Context, fs afs.Service, location string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, dao.Normalize(location))
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", location, err)
	}
	return DecodeConfig([]byte(expandEnv(string(data))))
}

// expandEnv replaces ${env.KEY} with the value of environment variable KEY.
// Malformed expressions are kept verbatim.
func expandEnv(value string) string {
	const prefix = "${env."
	var b strings.Builder
	for {
		start := strings.Index(value, prefix)
		if start < 0 {
			b.WriteString(value)
			return b.String()
		}
		end := strings.IndexByte(value[start:], '}')
		if end < 0 {
			b.WriteString(value)
			return b.String()
		}
		key := value[start+len(prefix) : start+end]
		b.WriteString(value[:start])
		if validEnvKey(key) {
			b.WriteString(os.Getenv(key))
		} else {
			b.WriteString(value[start : start+end+1])
		}
		value = value[start+end+1:]
	}
}

func validEnvKey(key string) bool {
	for _, r := range key {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return key != ""
}
