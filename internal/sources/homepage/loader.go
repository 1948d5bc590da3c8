package homepage

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader reads a Homepage bookmarks.yaml or services.yaml file.
// Both share the group/name layout; only the value under each name differs.
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Path is the seed file location.
func (l *Loader) Path() string { return l.filePath }

// Load reads the file and returns its entries in file order.
func (l *Loader) Load() ([]Entry, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes homepage YAML. Template variables ({{HOMEPAGE_VAR_...}}) are stripped first.
func Parse(data []byte) ([]Entry, error) {
	data = stripTemplateVariables(data)

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, errors.New("seed yaml: top level must be a list of groups")
	}

	var entries []Entry
	for _, group := range root.Content {
		if group.Kind != yaml.MappingNode {
			continue
		}
		for i := 0; i+1 < len(group.Content); i += 2 {
			groupName, items := group.Content[i].Value, group.Content[i+1]
			found, err := parseGroup(groupName, items)
			if err != nil {
				return nil, err
			}
			entries = append(entries, found...)
		}
	}
	return entries, nil
}

func parseGroup(groupName string, items *yaml.Node) ([]Entry, error) {
	if items.Kind != yaml.SequenceNode {
		return nil, nil
	}

	var entries []Entry
	for _, item := range items.Content {
		if item.Kind != yaml.MappingNode {
			continue
		}
		for i := 0; i+1 < len(item.Content); i += 2 {
			name, value := item.Content[i].Value, item.Content[i+1]

			switch value.Kind {
			case yaml.SequenceNode: // bookmarks.yaml
				var list []BookmarkEntry
				if err := value.Decode(&list); err != nil {
					return nil, fmt.Errorf("seed yaml: bookmark %q: %w", name, err)
				}
				if len(list) == 0 {
					continue
				}
				b := list[0]
				entries = append(entries, Entry{
					Group: groupName, Name: name, Abbr: b.Abbr, Href: b.Href, Description: b.Description,
				})

			case yaml.MappingNode: // services.yaml
				var svc ServiceProps
				if err := value.Decode(&svc); err != nil {
					return nil, fmt.Errorf("seed yaml: service %q: %w", name, err)
				}
				entries = append(entries, Entry{
					Group: groupName, Name: name, Href: svc.Href, Description: svc.Description,
				})
			}
		}
	}
	return entries, nil
}

// stripTemplateVariables removes Homepage template variables from YAML
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
