package validator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

const bomValidatorName = "bom"

// BOMCatalogValidator performs structural checks on a catalog.bom file: it
// must parse, declare a "brooklyn.catalog" section with identified items, and
// carry semantic versions.
type BOMCatalogValidator struct{}

// NewBOMCatalogValidator creates a new BOMCatalogValidator.
func NewBOMCatalogValidator(_ entities.ValidatorSettings) repositories.CatalogValidator {
	return &BOMCatalogValidator{}
}

func (v *BOMCatalogValidator) Name() string { return bomValidatorName }

func (v *BOMCatalogValidator) Validate(ctx context.Context, location, filePath string) error {
	return v.validate(ctx, location, filePath, "")
}

func (v *BOMCatalogValidator) ValidateWithParent(ctx context.Context, location, filePath, parentID string) error {
	return v.validate(ctx, location, filePath, parentID)
}

type bomDocument struct {
	Catalog *catalogSection `yaml:"brooklyn.catalog"`
}

type catalogSection struct {
	ID      string      `yaml:"id"`
	Version string      `yaml:"version"`
	Item    yaml.Node   `yaml:"item"`
	Items   []yaml.Node `yaml:"items"`
}

type catalogItem struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
}

func (v *BOMCatalogValidator) validate(ctx context.Context, location, filePath, parentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := readCatalogFile(location, filePath)
	if err != nil {
		return failure(err)
	}

	var doc bomDocument
	if unmarshalErr := yaml.Unmarshal(data, &doc); unmarshalErr != nil {
		return failure(fmt.Errorf("%s is not valid YAML: %w", filePath, unmarshalErr))
	}
	if doc.Catalog == nil {
		return failure(fmt.Errorf("%s has no brooklyn.catalog section", filePath))
	}

	items, err := collectItems(doc.Catalog)
	if err != nil {
		return failure(fmt.Errorf("%s: %w", filePath, err))
	}

	var problems []error
	for i, item := range items {
		if item.ID == "" {
			problems = append(problems, fmt.Errorf("item %d has no id", i+1))
		}
		if item.Version == "" {
			problems = append(problems, fmt.Errorf("item %q declares no version", item.ID))
		} else if !isValidVersion(item.Version) {
			problems = append(problems, fmt.Errorf("item %q has invalid version %q", item.ID, item.Version))
		}
	}

	if parentID != "" && !declaresID(doc.Catalog, items, parentID) {
		problems = append(problems, fmt.Errorf("parent %q is not declared in the catalog", parentID))
	}

	if len(problems) > 0 {
		return failure(fmt.Errorf("%s: %w", filePath, errors.Join(problems...)))
	}

	logger.Debugf("[bom] %s declares %d item(s)", filePath, len(items))
	return nil
}

// readCatalogFile reads filePath relative to location, refusing paths that
// leave the checkout, symlinks included.
func readCatalogFile(location, filePath string) ([]byte, error) {
	fullPath := filepath.Join(location, filePath)
	if !isInside(location, fullPath) {
		return nil, fmt.Errorf("catalog file %q is outside the repository", filePath)
	}

	resolved, err := filepath.EvalSymlinks(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("catalog file %q not found", filePath)
		}
		return nil, fmt.Errorf("resolving catalog file %q: %w", filePath, err)
	}
	root, err := filepath.EvalSymlinks(location)
	if err != nil {
		return nil, fmt.Errorf("resolving repository %q: %w", location, err)
	}
	if !isInside(root, resolved) {
		return nil, fmt.Errorf("catalog file %q links outside the repository", filePath)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %q: %w", filePath, err)
	}
	return data, nil
}

func isInside(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// collectItems flattens "item" and "items" into catalog items, inheriting the
// catalog id (single item only) and version. Scalar entries in "items" are
// references to other catalogs and are skipped.
func collectItems(catalog *catalogSection) ([]catalogItem, error) {
	var nodes []*yaml.Node
	if catalog.Item.Kind != 0 {
		nodes = append(nodes, &catalog.Item)
	}
	for i := range catalog.Items {
		nodes = append(nodes, &catalog.Items[i])
	}
	if len(nodes) == 0 {
		return nil, errors.New("catalog declares no items")
	}

	items := make([]catalogItem, 0, len(nodes))
	for i, node := range nodes {
		if node.Kind == yaml.ScalarNode {
			continue
		}
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("item %d must be a mapping", i+1)
		}

		var item catalogItem
		if err := node.Decode(&item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		if item.ID == "" && len(nodes) == 1 {
			item.ID = catalog.ID
		}
		if item.Version == "" {
			item.Version = catalog.Version
		}
		items = append(items, item)
	}
	return items, nil
}

func declaresID(catalog *catalogSection, items []catalogItem, id string) bool {
	if catalog.ID == id {
		return true
	}
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// isValidVersion accepts semantic versions as well as OSGi-style versions
// whose fourth segment is a qualifier ("1.0.0.SNAPSHOT").
func isValidVersion(version string) bool {
	canonical := "v" + strings.TrimPrefix(version, "v")
	if semver.IsValid(canonical) {
		return true
	}

	segments := strings.SplitN(canonical, ".", 4) //nolint:mnd // major.minor.patch.qualifier
	if len(segments) == 4 && segments[3] != "" {
		return semver.IsValid(strings.Join(segments[:3], ".") + "-" + segments[3])
	}
	return false
}

func failure(err error) error {
	return &entities.ValidationFailure{Validator: bomValidatorName, Err: err}
}
