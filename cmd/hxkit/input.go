package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pthm/hxkit/lib/markup"
	"github.com/pthm/hxkit/lib/params"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// readInput returns the contents of the file named by args[0], or stdin
// when there is no argument or it is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

// parseForm decodes a YAML (or JSON) document into a template form.
// Mappings become markup.Attrs in document order.
func parseForm(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return fromNode(&doc)
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])

	case yaml.SequenceNode:
		seq := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			seq[i] = v
		}
		return seq, nil

	case yaml.MappingNode:
		attrs := make(markup.Attrs, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			attrs = attrs.Set(n.Content[i].Value, v)
		}
		return attrs, nil

	case yaml.AliasNode:
		return fromNode(n.Alias)

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// parseTree decodes a YAML (or JSON) mapping into a tree.
func parseTree(data []byte) (params.Tree, error) {
	var tree params.Tree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing tree: %w", err)
	}
	if tree == nil {
		tree = params.Tree{}
	}
	return tree, nil
}

// loadDefines reads the defines section of the config file. It is parsed
// separately from viper so that names keep their case and attribute
// mappings keep their order.
func (c *cli) loadDefines() (map[string]any, error) {
	path := c.v.ConfigFileUsed()
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg struct {
		Defines yaml.Node `yaml:"defines"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Defines.Kind == 0 {
		return nil, nil
	}
	if cfg.Defines.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config: defines must be a mapping")
	}

	defines := make(map[string]any, len(cfg.Defines.Content)/2)
	for i := 0; i+1 < len(cfg.Defines.Content); i += 2 {
		v, err := fromNode(cfg.Defines.Content[i+1])
		if err != nil {
			return nil, err
		}
		defines[cfg.Defines.Content[i].Value] = v
	}
	return defines, nil
}

// writeTree prints tree in the configured format.
func (c *cli) writeTree(cmd *cobra.Command, tree params.Tree) error {
	out := cmd.OutOrStdout()
	switch format := c.v.GetString("format"); format {
	case "yaml", "yml":
		data, err := yaml.Marshal(map[string]any(tree))
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "json", "":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	default:
		return fmt.Errorf("unsupported format: %s (supported: json, yaml)", format)
	}
}
