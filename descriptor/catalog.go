package descriptor

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/pktchain/errors"
	"github.com/kbukum/pktchain/filter"
)

// Catalog holds named chains loaded from YAML:
//
//	chains:
//	  split-join:
//	    descriptor: "tok,concat"
//	  semicolons:
//	    description: split on ';' and pair up
//	    stages:
//	      - filter: tok
//	        options: {delim: ";", flush_nr: 0}
//	      - include: pairs
//	  pairs:
//	    stages:
//	      - filter: concat
//	        options: {nr: 2}
type Catalog struct {
	Chains map[string]ChainDef `yaml:"chains"`
}

// ChainDef defines one chain by descriptor or by stage list.
type ChainDef struct {
	Description string     `yaml:"description"`
	Descriptor  string     `yaml:"descriptor"`
	Stages      []StageDef `yaml:"stages"`
}

// StageDef is either a filter with options or the stages of another chain.
type StageDef struct {
	Filter  string         `yaml:"filter"`
	Options map[string]any `yaml:"options"`
	Include string         `yaml:"include"`
}

// LoadCatalog reads a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.InvalidConfig(fmt.Sprintf("reading catalog %s", path)).WithCause(err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			appErr.WithDetail("path", path)
		}
		return nil, err
	}
	return c, nil
}

// ParseCatalog decodes and checks catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.InvalidConfig("parsing catalog").WithCause(err)
	}
	for name, def := range c.Chains {
		if def.Descriptor != "" && len(def.Stages) > 0 {
			return nil, errors.InvalidConfig(fmt.Sprintf("chain %q sets both descriptor and stages", name))
		}
		for i, st := range def.Stages {
			if (st.Filter == "") == (st.Include == "") {
				return nil, errors.InvalidConfig(fmt.Sprintf("chain %q stage %d must set exactly one of filter or include", name, i))
			}
		}
	}
	return &c, nil
}

// Names returns sorted chain names.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Chains))
	for name := range c.Chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Configs resolves a chain, inlining included chains.
func (c *Catalog) Configs(name string) ([]FilterConfig, error) {
	return c.resolve(name, make(map[string]bool))
}

func (c *Catalog) resolve(name string, stack map[string]bool) ([]FilterConfig, error) {
	def, ok := c.Chains[name]
	if !ok {
		return nil, errors.NotFound("chain", name)
	}
	if stack[name] {
		return nil, errors.InvalidConfig(fmt.Sprintf("chain %q includes itself", name))
	}
	stack[name] = true
	defer delete(stack, name)

	if def.Descriptor != "" {
		return Parse(def.Descriptor)
	}

	var configs []FilterConfig
	for _, st := range def.Stages {
		if st.Include != "" {
			sub, err := c.resolve(st.Include, stack)
			if err != nil {
				return nil, err
			}
			configs = append(configs, sub...)
			continue
		}

		cfg := FilterConfig{Name: st.Filter}
		if len(st.Options) > 0 {
			cfg.Options = make(map[string]string, len(st.Options))
			for k, v := range st.Options {
				cfg.Options[k] = fmt.Sprint(v)
			}
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// Descriptor returns the descriptor form of a chain.
func (c *Catalog) Descriptor(name string) (string, error) {
	if def, ok := c.Chains[name]; ok && def.Descriptor != "" {
		return def.Descriptor, nil
	}
	configs, err := c.Configs(name)
	if err != nil {
		return "", err
	}
	return Format(configs), nil
}

// Build constructs the named chain from reg.
func (c *Catalog) Build(name string, reg *filter.Registry, opts ...BuildOption) (*filter.Chain, error) {
	desc, err := c.Descriptor(name)
	if err != nil {
		return nil, err
	}
	return Build(desc, reg, opts...)
}
