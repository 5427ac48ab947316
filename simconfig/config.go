// Package simconfig reads the bufferbloater simulator configuration so runs
// can be validated before launch and labelled in their reports.
package simconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gangmuk/bufferbloater/common"
)

// FileName is the name the driver archives the configuration under.
const FileName = "config.yaml"

type (
	WorkloadStage struct {
		RPS      uint            `yaml:"rps"`
		Duration common.Duration `yaml:"duration"`
	}

	Target struct {
		Address string `yaml:"address"`
		Port    uint   `yaml:"port"`
	}

	Retry struct {
		Count       int             `yaml:"count"`
		Factor      int             `yaml:"factor"`
		Base        common.Duration `yaml:"base"`
		MaxInterval common.Duration `yaml:"max_interval"`
	}

	Client struct {
		Workload       []WorkloadStage `yaml:"workload"`
		RequestTimeout common.Duration `yaml:"request_timeout"`
		Retry          Retry           `yaml:"retry"`
		TargetServer   Target          `yaml:"target_server"`
	}

	Server struct {
		ListenPort uint `yaml:"listen_port"`
		// Fields the report does not use.
		Rest map[string]interface{} `yaml:",inline"`
	}

	Config struct {
		Clients []Client `yaml:"clients"`
		Server  Server   `yaml:"server"`
	}
)

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the parts of the configuration the simulator would
// otherwise reject at runtime.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Clients) == 0 {
		errs = append(errs, errors.New("no clients configured"))
	}
	for i, cl := range c.Clients {
		if len(cl.Workload) == 0 {
			errs = append(errs, fmt.Errorf("client %d: empty workload", i))
		}
		for j, st := range cl.Workload {
			if st.RPS == 0 {
				errs = append(errs, fmt.Errorf("client %d stage %d: rps must be positive", i, j))
			}
			if st.Duration <= 0 {
				errs = append(errs, fmt.Errorf("client %d stage %d: duration must be positive", i, j))
			}
		}
		if cl.Retry.Count < 0 {
			errs = append(errs, fmt.Errorf("client %d: negative retry count", i))
		}
	}
	return errors.Join(errs...)
}

// Duration is the longest client workload.
func (c *Config) Duration() time.Duration {
	var longest time.Duration
	for _, cl := range c.Clients {
		var d time.Duration
		for _, st := range cl.Workload {
			d += time.Duration(st.Duration)
		}
		if d > longest {
			longest = d
		}
	}
	return longest
}

// Title describes client replicate 0 in one line, for the report header.
func (c *Config) Title() string {
	if len(c.Clients) == 0 {
		return ""
	}
	cl := c.Clients[0]
	rps := make([]string, 0, len(cl.Workload))
	for _, st := range cl.Workload {
		rps = append(rps, fmt.Sprint(st.RPS))
	}
	return fmt.Sprintf("rps %s | timeout %v | retries %d",
		strings.Join(rps, "→"), cl.RequestTimeout, cl.Retry.Count)
}
