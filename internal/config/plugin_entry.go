package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PluginEntry is a (name, options) pair from the presets or themes list.
//
// The document may spell an entry as a bare name, a two element sequence
// [name, options] or a mapping {name, options}. Options holds the typed value
// produced by the extension's decoder once extensions are resolved.
type PluginEntry struct {
	Name    string `yaml:"name" json:"name"`
	Options any    `yaml:"options,omitempty" json:"options,omitempty"`

	// Raw is the undecoded options node; cleared once Options is decoded.
	Raw *yaml.Node `yaml:"-" json:"-"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PluginEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&p.Name)
	case yaml.SequenceNode:
		if len(node.Content) == 0 || len(node.Content) > 2 {
			return fmt.Errorf("line %d: plugin entry must be [name] or [name, options]", node.Line)
		}
		if node.Content[0].Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: plugin name must be a string", node.Line)
		}
		p.Name = node.Content[0].Value
		if len(node.Content) == 2 {
			if err := p.setRaw(node.Content[1]); err != nil {
				return err
			}
		}
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			switch key.Value {
			case "name":
				if err := val.Decode(&p.Name); err != nil {
					return err
				}
			case "options":
				if err := p.setRaw(val); err != nil {
					return err
				}
			default:
				return fmt.Errorf("line %d: field %s not found in plugin entry", key.Line, key.Value)
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: plugin entry must be a name, a [name, options] pair or a mapping", node.Line)
	}
}

func (p *PluginEntry) setRaw(node *yaml.Node) error {
	switch {
	case node.Kind == yaml.MappingNode:
		p.Raw = node
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		p.Raw = nil
	default:
		return fmt.Errorf("line %d: plugin options must be a mapping", node.Line)
	}
	return nil
}
