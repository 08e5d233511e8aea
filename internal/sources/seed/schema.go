package seed

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the root structure of the seed file:
//
//	cities:
//	  - label: London, GB
//	    id: 2643743
//	  - Lviv
type File struct {
	Cities []City `yaml:"cities"`
}

// City is one seeded bookmark. A bare string is a label without an id.
type City struct {
	ID    *int64 `yaml:"id"`
	Label string `yaml:"label"`
}

// UnmarshalYAML accepts both the mapping and the bare string form.
func (c *City) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		c.ID = nil
		return node.Decode(&c.Label)
	case yaml.MappingNode:
		type plain City
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*c = City(p)
		return nil
	default:
		return fmt.Errorf("line %d: city must be a string or a mapping", node.Line)
	}
}
