package config

import (
	"os"

	"github.com/barbackhq/barback/internal/schema"
)

// Environment variables consulted by the built-in configuration.
const (
	EnvBottleInventoryDB = "BARBACK_BOTTLE_INVENTORY_DB"
	EnvSyrupsAndJuicesDB = "BARBACK_SYRUPS_AND_JUICES_DB"
	EnvCocktailDB        = "BARBACK_COCKTAIL_PROJECTS_DB"
	EnvWinesDB           = "BARBACK_WINES_DB"
)

// Builtin returns the registry for the original hand-maintained cocktail
// workspace. It is the fallback when no databases document is configured;
// database ids come from the environment.
func Builtin() *schema.Registry {
	rw := schema.PermissionReadWrite
	registry := schema.NewRegistry()

	registry.Register(&schema.Database{
		Name:             "bottle_inventory",
		DatabaseID:       os.Getenv(EnvBottleInventoryDB),
		Description:      "Cocktail bottle inventory",
		PrimaryKeyColumn: "Name",
		Columns: []schema.ColumnSpec{
			{Name: "Name", Type: schema.TypeTitle, Permission: rw, Required: true},
			{Name: "Type", Type: schema.TypeMultiSelect, Permission: rw},
			{Name: "Notes", Type: schema.TypeRichText, Permission: rw},
			{Name: "Technical Notes", Type: schema.TypeRichText, Permission: rw},
			{Name: "almost_gone", Type: schema.TypeCheckbox, Permission: rw},
			{Name: "not_for_mixing", Type: schema.TypeCheckbox, Permission: rw},
		},
		Filters: []schema.NamedFilter{
			{Name: "available", Spec: schema.FilterSpec{
				ColumnName: "almost_gone", FilterType: schema.FilterEquals, Value: false,
				Description: "Bottles that are not almost gone",
			}},
			{Name: "for_mixing", Spec: schema.FilterSpec{
				ColumnName: "not_for_mixing", FilterType: schema.FilterEquals, Value: false,
				Description: "Bottles suitable for mixing",
			}},
		},
	})

	registry.Register(&schema.Database{
		Name:             "syrups_and_juices",
		DatabaseID:       os.Getenv(EnvSyrupsAndJuicesDB),
		Description:      "Syrups and juices inventory",
		PrimaryKeyColumn: "Name",
		Columns: []schema.ColumnSpec{
			{Name: "Name", Type: schema.TypeTitle, Permission: rw, Required: true},
			{Name: "Have", Type: schema.TypeCheckbox, Permission: rw},
		},
		Filters: []schema.NamedFilter{
			{Name: "available", Spec: schema.FilterSpec{
				ColumnName: "Have", FilterType: schema.FilterEquals, Value: true,
				Description: "Ingredients currently on hand",
			}},
		},
	})

	registry.Register(&schema.Database{
		Name:             "cocktail_projects",
		DatabaseID:       os.Getenv(EnvCocktailDB),
		Description:      "Cocktail projects and recipes",
		PrimaryKeyColumn: "Name",
		Columns: []schema.ColumnSpec{
			{Name: "Name", Type: schema.TypeTitle, Permission: rw, Required: true},
			{Name: "Spec", Type: schema.TypeRichText, Permission: rw},
			{Name: "Tags", Type: schema.TypeMultiSelect, Permission: rw},
			{Name: "Preference", Type: schema.TypeNumber, Permission: rw},
			{Name: "Notes", Type: schema.TypeRichText, Permission: rw},
		},
	})

	registry.Register(&schema.Database{
		Name:             "wines",
		DatabaseID:       os.Getenv(EnvWinesDB),
		Description:      "Wine inventory",
		PrimaryKeyColumn: "Name",
		Columns: []schema.ColumnSpec{
			{Name: "Name", Type: schema.TypeTitle, Permission: rw, Required: true},
			{Name: "Notes", Type: schema.TypeRichText, Permission: rw},
			{Name: "Technical Notes", Type: schema.TypeRichText, Permission: rw},
			{Name: "Vintage Year", Type: schema.TypeNumber, Permission: rw},
			{Name: "Cellar", Type: schema.TypeCheckbox, Permission: rw},
			{Name: "Drank", Type: schema.TypeCheckbox, Permission: rw},
		},
		Filters: []schema.NamedFilter{
			{Name: "available", Spec: schema.FilterSpec{
				ColumnName: "Cellar", FilterType: schema.FilterEquals, Value: false,
				Description: "Wines not in the cellar",
			}},
			{Name: "not_drank", Spec: schema.FilterSpec{
				ColumnName: "Drank", FilterType: schema.FilterEquals, Value: false,
				Description: "Wines not yet consumed",
			}},
		},
	})

	return registry
}
