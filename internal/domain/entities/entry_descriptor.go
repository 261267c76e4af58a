package entities

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultCatalogFile is validated when an entry names no file.
	DefaultCatalogFile = "catalog.bom"

	keyRepository = "repository"
	keyRepoAlias  = "repo"
	keyFile       = "file"
	keyParentID   = "parentId"
)

// EntryDescriptor is one catalog entry proposed by a pull request.
type EntryDescriptor struct {
	RepositoryURL string
	FilePath      string
	ParentID      string // empty when absent
}

// HasParent reports whether validation should be scoped to a parent item.
func (d EntryDescriptor) HasParent() bool {
	return d.ParentID != ""
}

func (d EntryDescriptor) String() string {
	if d.HasParent() {
		return fmt.Sprintf("%s (%s, parent %s)", d.RepositoryURL, d.FilePath, d.ParentID)
	}
	return fmt.Sprintf("%s (%s)", d.RepositoryURL, d.FilePath)
}

// ParseEntryDescriptor turns one added record into an EntryDescriptor.
//
// Two shapes are accepted:
//   - a bare string, taken as the repository URL;
//   - a mapping with "repository" (or its alias "repo"), and optionally "file"
//     and "parentId".
//
// Every failure is reported as a *MalformedEntryError.
func ParseEntryDescriptor(raw, defaultFile string) (EntryDescriptor, error) {
	if defaultFile == "" {
		defaultFile = DefaultCatalogFile
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return EntryDescriptor{}, malformed(raw, "empty record")
	}

	node, err := decodeSingleDocument(text)
	if err != nil {
		return EntryDescriptor{}, malformed(raw, err.Error())
	}

	switch node.Kind {
	case yaml.ScalarNode:
		url := strings.TrimSpace(node.Value)
		if url == "" || node.ShortTag() == "!!null" {
			return EntryDescriptor{}, malformed(raw, "empty repository URL")
		}
		return EntryDescriptor{RepositoryURL: url, FilePath: defaultFile}, nil
	case yaml.MappingNode:
		return descriptorFromMapping(raw, node, defaultFile)
	default:
		return EntryDescriptor{}, malformed(raw, "expected a string or a mapping")
	}
}

func decodeSingleDocument(text string) (*yaml.Node, error) {
	decoder := yaml.NewDecoder(strings.NewReader(text))

	var doc yaml.Node
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("expected a single YAML document")
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, errors.New("expected a single YAML value")
	}
	return doc.Content[0], nil
}

func descriptorFromMapping(raw string, node *yaml.Node, defaultFile string) (EntryDescriptor, error) {
	fields := make(map[string]string, len(node.Content)/2) //nolint:mnd // key/value pairs
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if !isRecognizedKey(key.Value) {
			continue
		}
		if value.Kind != yaml.ScalarNode {
			return EntryDescriptor{}, malformed(raw, fmt.Sprintf("%q must be a string", key.Value))
		}
		if value.ShortTag() == "!!null" {
			continue
		}
		fields[key.Value] = strings.TrimSpace(value.Value)
	}

	url := fields[keyRepository]
	if url == "" {
		url = fields[keyRepoAlias]
	}
	if url == "" {
		return EntryDescriptor{}, malformed(raw, fmt.Sprintf("missing required key %q", keyRepository))
	}

	file := fields[keyFile]
	if file == "" {
		file = defaultFile
	}

	return EntryDescriptor{
		RepositoryURL: url,
		FilePath:      file,
		ParentID:      fields[keyParentID],
	}, nil
}

func isRecognizedKey(key string) bool {
	switch key {
	case keyRepository, keyRepoAlias, keyFile, keyParentID:
		return true
	default:
		return false
	}
}

func malformed(raw, reason string) *MalformedEntryError {
	return &MalformedEntryError{Record: raw, Reason: reason}
}
