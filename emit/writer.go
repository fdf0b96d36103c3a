package emit

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Render writes a node tree as block YAML: two space indentation, sequences
// aligned with their parent key and no line folding.
func Render(node *yaml.Node) ([]byte, error) {
	w := &writer{}
	if err := w.document(node); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type writer struct {
	buf bytes.Buffer
}

func (w *writer) document(node *yaml.Node) error {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.MappingNode:
		if len(node.Content) == 0 {
			w.buf.WriteString("{}\n")
			return nil
		}
		return w.mapping(node, 0, false)
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			w.buf.WriteString("[]\n")
			return nil
		}
		return w.sequence(node, 0)
	case yaml.ScalarNode:
		w.buf.WriteString(scalar(node, 0))
		w.buf.WriteByte('\n')
		return nil
	}
	return unsupported(node)
}

// mapping writes key/value pairs aligned at indent. When inline is set the
// first key continues the current line (after a sequence dash).
func (w *writer) mapping(node *yaml.Node, indent int, inline bool) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolveAlias(node.Content[i])
		if key.Kind != yaml.ScalarNode {
			return unsupported(key)
		}
		if i > 0 || !inline {
			w.pad(indent)
		}
		w.buf.WriteString(keyScalar(key))
		w.buf.WriteByte(':')
		if err := w.value(resolveAlias(node.Content[i+1]), indent); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) value(node *yaml.Node, indent int) error {
	switch node.Kind {
	case yaml.ScalarNode:
		w.buf.WriteByte(' ')
		w.buf.WriteString(scalar(node, indent))
		w.buf.WriteByte('\n')
		return nil
	case yaml.MappingNode:
		if len(node.Content) == 0 {
			w.buf.WriteString(" {}\n")
			return nil
		}
		w.buf.WriteByte('\n')
		return w.mapping(node, indent+2, false)
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			w.buf.WriteString(" []\n")
			return nil
		}
		w.buf.WriteByte('\n')
		return w.sequence(node, indent)
	}
	return unsupported(node)
}

func (w *writer) sequence(node *yaml.Node, indent int) error {
	for _, item := range node.Content {
		item = resolveAlias(item)
		w.pad(indent)
		w.buf.WriteByte('-')
		switch item.Kind {
		case yaml.ScalarNode:
			w.buf.WriteByte(' ')
			w.buf.WriteString(scalar(item, indent))
			w.buf.WriteByte('\n')
		case yaml.MappingNode:
			if len(item.Content) == 0 {
				w.buf.WriteString(" {}\n")
				continue
			}
			w.buf.WriteByte(' ')
			if err := w.mapping(item, indent+2, true); err != nil {
				return err
			}
		case yaml.SequenceNode:
			if len(item.Content) == 0 {
				w.buf.WriteString(" []\n")
				continue
			}
			w.buf.WriteByte('\n')
			if err := w.sequence(item, indent+2); err != nil {
				return err
			}
		default:
			return unsupported(item)
		}
	}
	return nil
}

func (w *writer) pad(n int) {
	for i := 0; i < n; i++ {
		w.buf.WriteByte(' ')
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func unsupported(node *yaml.Node) error {
	kind := "nil"
	if node != nil {
		kind = strconv.Itoa(int(node.Kind))
	}
	return ErrUnsupportedNode.Clone().WithMetadata(map[string]any{"kind": kind})
}

func keyScalar(node *yaml.Node) string {
	if strings.ContainsAny(node.Value, "\n\r") {
		return strconv.Quote(node.Value)
	}
	return scalar(node, 0)
}

// scalar picks the lightest style that reads back as the same text. Values
// are not quoted to preserve their YAML type: pipeline values are strings.
func scalar(node *yaml.Node, indent int) string {
	value := node.Value
	switch {
	case node.Tag == "!!null" && node.Style == 0:
		return "null"
	case value == "":
		return "''"
	case hasControl(value), strings.Contains(value, "\n") && strings.TrimSpace(value) == "":
		return strconv.Quote(value)
	case strings.Contains(value, "\n"):
		return literal(value, indent)
	case isNullLike(value):
		return singleQuote(value)
	case plainSafe(value):
		return value
	}
	return singleQuote(value)
}

func singleQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// literal writes a block scalar. The indentation indicator is required when
// the first non-empty line starts with a space, otherwise the reader would
// take that line's indentation as the block's.
func literal(value string, indent int) string {
	header := "|"
	if strings.HasPrefix(firstContentLine(value), " ") {
		header += "2"
	}
	content := value
	switch {
	case strings.HasSuffix(value, "\n\n"):
		header += "+"
		content = value[:len(value)-1]
	case strings.HasSuffix(value, "\n"):
		content = value[:len(value)-1]
	default:
		header += "-"
	}

	var b strings.Builder
	b.WriteString(header)
	prefix := strings.Repeat(" ", indent+2)
	for _, line := range strings.Split(content, "\n") {
		b.WriteByte('\n')
		if line != "" {
			b.WriteString(prefix)
			b.WriteString(line)
		}
	}
	return b.String()
}

func firstContentLine(value string) string {
	for _, line := range strings.Split(value, "\n") {
		if line != "" {
			return line
		}
	}
	return ""
}

func hasControl(value string) bool {
	for _, r := range value {
		if r == '\n' {
			continue
		}
		if r == '\t' || unicode.IsControl(r) || r == unicode.ReplacementChar {
			return true
		}
	}
	return false
}

func isNullLike(value string) bool {
	switch value {
	case "~", "null", "Null", "NULL":
		return true
	}
	return false
}

func plainSafe(value string) bool {
	if value != strings.TrimSpace(value) {
		return false
	}
	if strings.HasPrefix(value, "---") || strings.HasPrefix(value, "...") {
		return false
	}
	first := value[0]
	switch first {
	case '[', ']', '{', '}', ',', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return false
	case '-', '?', ':':
		if len(value) == 1 || value[1] == ' ' {
			return false
		}
	}
	if strings.Contains(value, ": ") || strings.Contains(value, " #") || strings.HasSuffix(value, ":") {
		return false
	}
	return true
}
