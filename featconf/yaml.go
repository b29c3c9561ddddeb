package featconf

import (
	"io"

	"gopkg.in/yaml.v3"
)

// yamlGroup names a set of feature templates that are loaded together —
// the modern equivalent of the teacher's FeatureGroup
// (algorithm/transition/featurereader.go), which grouped MorphTemplates
// under a shared label for logging and selective disabling.
type yamlGroup struct {
	Name      string   `yaml:"name"`
	Templates []string `yaml:"templates"`
}

// yamlSetup is the top-level document shape LoadYAML expects: named
// template groups plus a flat map of scalar option overrides, replacing
// the teacher's dead launchpad.net/goyaml-based FeatureSetup with the
// same two-part structure on gopkg.in/yaml.v3.
type yamlSetup struct {
	Groups  []yamlGroup       `yaml:"groups"`
	Options map[string]string `yaml:"options"`
}

// LoadYAML decodes a feature-template setup document and returns the
// resulting Config: scalar Options are applied the same way Load applies
// key=value pairs, and every template in every group is compiled and
// appended to Feature in document order.
func LoadYAML(r io.Reader) (*Config, error) {
	var setup yamlSetup
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&setup); err != nil {
		return nil, err
	}

	c := Default()
	for key, val := range setup.Options {
		if err := c.set(key, val); err != nil {
			return nil, err
		}
	}
	for _, group := range setup.Groups {
		for _, tmpl := range group.Templates {
			spec, err := CompileChain(tmpl)
			if err != nil {
				return nil, err
			}
			c.Feature = append(c.Feature, spec)
		}
	}
	return c, nil
}
