package storage

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlPair is a key and its value in a mapping node
type yamlPair struct {
	key   string
	value *yaml.Node
}

// mappingPairs returns the pairs of a mapping node, in document order
func mappingPairs(node *yaml.Node) ([]yamlPair, error) {
	node = resolveAlias(node)
	if node == nil {
		return nil, nil
	} else if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expecting a mapping", node.Line)
	}

	result := make([]yamlPair, 0, len(node.Content)/2)
	for index := 0; index+1 < len(node.Content); index += 2 {
		result = append(result, yamlPair{key: node.Content[index].Value, value: resolveAlias(node.Content[index+1])})
	}

	return result, nil
}

// lookup returns the value of the first key found, nil if none
func lookup(pairs []yamlPair, keys ...string) *yaml.Node {
	for _, key := range keys {
		for _, pair := range pairs {
			if pair.key == key {
				return pair.value
			}
		}
	}

	return nil
}

// scalarValue returns the value of a scalar node, empty for nil or null
func scalarValue(node *yaml.Node) string {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return ""
	}

	return strings.TrimSpace(node.Value)
}

// boolValue decodes a boolean scalar, the second value is false if not set
func boolValue(node *yaml.Node) (bool, bool, error) {
	if scalarValue(node) == "" {
		return false, false, nil
	}

	var result bool
	if err := node.Decode(&result); err != nil {
		return false, false, fmt.Errorf("line %d: expecting a boolean: %w", node.Line, err)
	}

	return result, true, nil
}

// sequenceOrSingle returns the elements of a sequence, or the node itself
func sequenceOrSingle(node *yaml.Node) []*yaml.Node {
	node = resolveAlias(node)
	if node == nil {
		return nil
	} else if node.Kind == yaml.SequenceNode {
		result := make([]*yaml.Node, 0, len(node.Content))
		for _, child := range node.Content {
			result = append(result, resolveAlias(child))
		}

		return result
	}

	return []*yaml.Node{node}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		return resolveAlias(node.Content[0])
	}

	return node
}

// newMapping returns an empty mapping node
func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// addScalar adds key: value to a mapping, nothing if value is empty
func addScalar(mapping *yaml.Node, key, value string) {
	if value == "" {
		return
	}

	addNode(mapping, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

// addBool adds key: true or false to a mapping
func addBool(mapping *yaml.Node, key string, value bool) {
	addNode(mapping, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprintf("%t", value)})
}

// addNode adds key: value to a mapping
func addNode(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
}
