package catalog

import (
	"context"
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"github.com/shard-legends/loadout-service/internal/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalogYAML []byte

// Source supplies raw catalog tables.
type Source interface {
	LoadItems(ctx context.Context) ([]models.Item, error)
	LoadResources(ctx context.Context) ([]models.Resource, error)
}

// File is the YAML document layout of a catalog file.
type File struct {
	Resources []models.Resource `yaml:"resources"`
	Items     []models.Item     `yaml:"items"`
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog yaml")
	}
	return &file, nil
}

// YAMLSource reads the catalog from a YAML file, or from the embedded
// default catalog when Path is empty.
type YAMLSource struct {
	Path string

	file *File
}

// NewYAMLSource creates a YAML catalog source.
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{Path: path}
}

func (s *YAMLSource) read() (*File, error) {
	if s.file != nil {
		return s.file, nil
	}

	data := defaultCatalogYAML
	if s.Path != "" {
		raw, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read catalog file %s", s.Path)
		}
		data = raw
	}

	file, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.file = file
	return file, nil
}

// LoadItems implements Source.
func (s *YAMLSource) LoadItems(ctx context.Context) ([]models.Item, error) {
	file, err := s.read()
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}

// LoadResources implements Source.
func (s *YAMLSource) LoadResources(ctx context.Context) ([]models.Resource, error) {
	file, err := s.read()
	if err != nil {
		return nil, err
	}
	return file.Resources, nil
}

// Load reads both tables from src, builds the catalog and validates it.
func Load(ctx context.Context, src Source, logger *zap.Logger) (*Catalog, error) {
	resources, err := src.LoadResources(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load resources")
	}

	items, err := src.LoadItems(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load items")
	}

	c := New(items, resources)
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "catalog validation failed")
	}

	logger.Info("Catalog loaded",
		zap.Int("items", c.ItemCount()),
		zap.Int("resources", c.ResourceCount()),
	)

	return c, nil
}

// Default loads the embedded catalog.
func Default() (*Catalog, error) {
	return Load(context.Background(), NewYAMLSource(""), zap.NewNop())
}
