package emit

import (
	"strings"

	"github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

const (
	ErrCodeReadNotSupported = "READ_NOT_SUPPORTED"
	ErrCodeEncodeFailed     = "YAML_ENCODE_FAILED"
	ErrCodeUnsupportedNode  = "YAML_UNSUPPORTED_NODE"
)

var (
	// ErrReadNotSupported is returned by every read path: pipeline documents are write-only.
	ErrReadNotSupported = errors.New("reading pipeline YAML is not implemented", errors.CategoryOperation).
				WithTextCode(ErrCodeReadNotSupported)
	ErrUnsupportedNode = errors.New("unsupported yaml node", errors.CategoryInternal).
				WithTextCode(ErrCodeUnsupportedNode)
)

// ConditionalKeyPrefix marks mapping keys produced by template expressions.
const ConditionalKeyPrefix = "${{"

// Marshal serializes v through yaml.v3, drops empty collections and renders the
// result in the compact block layout used by Azure Pipelines documents.
func Marshal(v any) ([]byte, error) {
	node, err := Encode(v)
	if err != nil {
		return nil, err
	}
	return Render(node)
}

// Encode converts v into a pruned yaml.v3 node tree.
func Encode(v any) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		var ge *errors.Error
		if errors.As(err, &ge) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "yaml encode failed").
			WithTextCode(ErrCodeEncodeFailed)
	}
	return Prune(&node), nil
}

// Unmarshal always fails: the model has no read path.
func Unmarshal([]byte, any) error {
	return ErrReadNotSupported.Clone()
}

// Prune removes mapping entries whose value is an empty sequence or mapping.
// Entries keyed by template expressions are structural and always kept.
func Prune(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			Prune(child)
		}
	case yaml.MappingNode:
		content := node.Content[:0]
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			Prune(value)
			if isEmptyCollection(value) && !isConditionalKey(key) {
				continue
			}
			content = append(content, key, value)
		}
		node.Content = content
	}
	return node
}

func isEmptyCollection(node *yaml.Node) bool {
	switch node.Kind {
	case yaml.SequenceNode, yaml.MappingNode:
		return len(node.Content) == 0
	}
	return false
}

func isConditionalKey(key *yaml.Node) bool {
	return key.Kind == yaml.ScalarNode && strings.HasPrefix(key.Value, ConditionalKeyPrefix)
}
