package templates

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Meta is the descriptive header of a nuclei template.
type Meta struct {
	ID   string `yaml:"id"`
	Info struct {
		Name        string    `yaml:"name"`
		Author      stringSet `yaml:"author"`
		Severity    string    `yaml:"severity"`
		Description string    `yaml:"description"`
		Tags        stringSet `yaml:"tags"`
		Reference   stringSet `yaml:"reference"`
	} `yaml:"info"`
}

// stringSet accepts either a comma-separated scalar or a YAML sequence.
type stringSet []string

func (s *stringSet) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*s = nil
		for _, p := range strings.Split(n.Value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				*s = append(*s, p)
			}
		}
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := n.Decode(&arr); err != nil {
			return err
		}
		*s = arr
		return nil
	}
	return fmt.Errorf("line %d: expected string or list", n.Line)
}

// ReadMeta parses the id and info block of the template at path. Only the
// header is read; the rest of the template is not interpreted.
func ReadMeta(path string) (Meta, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Meta{}, err
	}
	return ParseMeta(b)
}

// ParseMeta is ReadMeta for in-memory content.
func ParseMeta(b []byte) (Meta, error) {
	var m Meta
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Meta{}, err
	}
	return m, nil
}

// Markdown renders m and the raw template as a markdown document.
func (m Meta) Markdown(path string, raw []byte) string {
	var sb strings.Builder
	title := m.Info.Name
	if title == "" {
		title = DisplayName(path)
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| id | `%s` |\n", m.ID)
	if m.Info.Severity != "" {
		fmt.Fprintf(&sb, "| severity | **%s** |\n", m.Info.Severity)
	}
	if len(m.Info.Author) > 0 {
		fmt.Fprintf(&sb, "| author | %s |\n", strings.Join(m.Info.Author, ", "))
	}
	if len(m.Info.Tags) > 0 {
		fmt.Fprintf(&sb, "| tags | %s |\n", strings.Join(m.Info.Tags, ", "))
	}
	fmt.Fprintf(&sb, "| path | `%s` |\n\n", path)
	if d := strings.TrimSpace(m.Info.Description); d != "" {
		sb.WriteString(d + "\n\n")
	}
	for _, r := range m.Info.Reference {
		fmt.Fprintf(&sb, "- %s\n", r)
	}
	if len(raw) > 0 {
		sb.WriteString("\n```yaml\n")
		sb.Write(raw)
		if !strings.HasSuffix(string(raw), "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("```\n")
	}
	return sb.String()
}
