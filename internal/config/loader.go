// Package config loads the declarative databases document into schema
// objects. The document is YAML with a top-level "databases" mapping;
// environment variables referenced as ${VAR_NAME} are expanded before
// parsing so database ids can live outside the file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/barbackhq/barback/internal/schema"
)

// DefaultPrimaryKey is assumed when a database omits primary_key_column.
const DefaultPrimaryKey = "Name"

type document struct {
	Databases yaml.Node `yaml:"databases"`
}

type databaseDoc struct {
	DatabaseID       string    `yaml:"database_id"`
	Description      string    `yaml:"description"`
	PrimaryKeyColumn string    `yaml:"primary_key_column"`
	Columns          yaml.Node `yaml:"columns"`
	Filters          yaml.Node `yaml:"filters"`
}

type columnDoc struct {
	Type        *string `yaml:"type"`
	Permission  *string `yaml:"permission"`
	Description string  `yaml:"description"`
	Required    bool    `yaml:"required"`
}

type filterDoc struct {
	ColumnName  string    `yaml:"column_name"`
	FilterType  string    `yaml:"filter_type"`
	Value       yaml.Node `yaml:"value"`
	Description string    `yaml:"description"`
}

// Load reads, expands, and parses a databases document from a file,
// returning a freshly built registry. An existing registry is never
// touched; merging is the caller's explicit choice via registry.Register.
func Load(path string) (*schema.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Reason: "cannot read configuration file", Err: err}
	}
	return Parse(data)
}

// Parse builds a registry from a raw databases document. Environment
// variables referenced as ${VAR_NAME} are expanded first.
func Parse(data []byte) (*schema.Registry, error) {
	expanded := os.ExpandEnv(string(data))

	var doc document
	if err := yaml.Unmarshal([]byte(expanded), &doc); err != nil {
		return nil, &ConfigurationError{Reason: "cannot parse configuration document", Err: err}
	}
	if doc.Databases.Kind == 0 {
		return nil, &ConfigurationError{Field: "databases", Reason: "missing top-level databases mapping"}
	}
	if doc.Databases.Kind != yaml.MappingNode {
		return nil, &ConfigurationError{Field: "databases", Reason: "databases must be a mapping"}
	}

	registry := schema.NewRegistry()
	seen := make(map[string]bool)
	for i := 0; i+1 < len(doc.Databases.Content); i += 2 {
		name := doc.Databases.Content[i].Value
		if seen[name] {
			return nil, &ConfigurationError{Database: name, Reason: "database is declared more than once"}
		}
		seen[name] = true
		db, err := parseDatabase(name, doc.Databases.Content[i+1])
		if err != nil {
			return nil, err
		}
		if err := registry.Register(db); err != nil {
			return nil, &ConfigurationError{Database: name, Reason: "cannot register database", Err: err}
		}
	}
	return registry, nil
}

// ParseDatabase parses a single database entry, as used for runtime
// registration of a dynamically added database. The input is the YAML body
// of one databases.<name> entry.
func ParseDatabase(name string, data []byte) (*schema.Database, error) {
	expanded := os.ExpandEnv(string(data))

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(expanded), &node); err != nil {
		return nil, &ConfigurationError{Database: name, Reason: "cannot parse database entry", Err: err}
	}
	if len(node.Content) == 0 {
		return nil, &ConfigurationError{Database: name, Reason: "empty database entry"}
	}
	return parseDatabase(name, node.Content[0])
}

func parseDatabase(name string, node *yaml.Node) (*schema.Database, error) {
	var doc databaseDoc
	if err := node.Decode(&doc); err != nil {
		return nil, &ConfigurationError{Database: name, Reason: "cannot decode database entry", Err: err}
	}
	if doc.DatabaseID == "" {
		return nil, &ConfigurationError{Database: name, Field: "database_id", Reason: "required key is absent"}
	}

	db := &schema.Database{
		Name:             name,
		DatabaseID:       doc.DatabaseID,
		Description:      doc.Description,
		PrimaryKeyColumn: doc.PrimaryKeyColumn,
	}
	if db.PrimaryKeyColumn == "" {
		db.PrimaryKeyColumn = DefaultPrimaryKey
	}

	if err := parseColumns(db, &doc.Columns); err != nil {
		return nil, err
	}
	if len(db.Columns) == 0 {
		return nil, &ConfigurationError{Database: name, Field: "columns", Reason: "at least one column is required"}
	}
	if _, ok := db.Column(db.PrimaryKeyColumn); !ok {
		return nil, &ConfigurationError{
			Database: name,
			Field:    "primary_key_column",
			Reason:   fmt.Sprintf("references non-existent column %q", db.PrimaryKeyColumn),
		}
	}

	if err := parseFilters(db, &doc.Filters); err != nil {
		return nil, err
	}
	return db, nil
}

// parseColumns decodes the columns mapping while preserving declaration
// order, which sorted Go maps would destroy. Tool enumeration depends on it.
func parseColumns(db *schema.Database, node *yaml.Node) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return &ConfigurationError{Database: db.Name, Field: "columns", Reason: "columns must be a mapping"}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		colName := node.Content[i].Value

		var doc columnDoc
		if err := node.Content[i+1].Decode(&doc); err != nil {
			return &ConfigurationError{Database: db.Name, Field: colName, Reason: "cannot decode column", Err: err}
		}
		if doc.Type == nil {
			return &ConfigurationError{Database: db.Name, Field: colName, Reason: "column type is required"}
		}
		if doc.Permission == nil {
			return &ConfigurationError{Database: db.Name, Field: colName, Reason: "column permission is required"}
		}

		colType, err := schema.ParseColumnType(*doc.Type)
		if err != nil {
			return &ConfigurationError{Database: db.Name, Field: colName, Reason: "invalid column type", Err: err}
		}
		perm, err := schema.ParsePermission(*doc.Permission)
		if err != nil {
			return &ConfigurationError{Database: db.Name, Field: colName, Reason: "invalid permission", Err: err}
		}

		db.Columns = append(db.Columns, schema.ColumnSpec{
			Name:        colName,
			Type:        colType,
			Permission:  perm,
			Description: doc.Description,
			Required:    doc.Required,
		})
	}
	return nil
}

func parseFilters(db *schema.Database, node *yaml.Node) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return &ConfigurationError{Database: db.Name, Field: "filters", Reason: "filters must be a mapping"}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		filterName := node.Content[i].Value

		var doc filterDoc
		if err := node.Content[i+1].Decode(&doc); err != nil {
			return &ConfigurationError{Database: db.Name, Field: filterName, Reason: "cannot decode filter", Err: err}
		}
		if doc.ColumnName == "" {
			return &ConfigurationError{Database: db.Name, Field: filterName, Reason: "filter column_name is required"}
		}
		if doc.FilterType == "" {
			return &ConfigurationError{Database: db.Name, Field: filterName, Reason: "filter filter_type is required"}
		}

		filterType, err := schema.ParseFilterType(doc.FilterType)
		if err != nil {
			return &ConfigurationError{Database: db.Name, Field: filterName, Reason: "invalid filter type", Err: err}
		}
		if _, ok := db.Column(doc.ColumnName); !ok {
			return &ConfigurationError{
				Database: db.Name,
				Field:    filterName,
				Reason:   fmt.Sprintf("filter references non-existent column %q", doc.ColumnName),
			}
		}

		var value any
		if doc.Value.Kind != 0 {
			if err := doc.Value.Decode(&value); err != nil {
				return &ConfigurationError{Database: db.Name, Field: filterName, Reason: "cannot decode filter value", Err: err}
			}
		}

		db.Filters = append(db.Filters, schema.NamedFilter{
			Name: filterName,
			Spec: schema.FilterSpec{
				ColumnName:  doc.ColumnName,
				FilterType:  filterType,
				Value:       value,
				Description: doc.Description,
			},
		})
	}
	return nil
}
