// pkg/config/dataset.go
package config

import (
	"errors"
	"fmt"

	"github.com/David-Botos/app-profiles/pkg/model"
)

// DatasetConfig holds the location and column layout of one storefront export
type DatasetConfig struct {
	Name      string
	Path      string
	Delimiter rune
	Schema    model.Schema
}

// AndroidDefaults describes the Google Play export (googleplaystore.csv)
func AndroidDefaults() DatasetConfig {
	return DatasetConfig{
		Name:      "android",
		Path:      "googleplaystore.csv",
		Delimiter: ',',
		Schema: model.Schema{
			Name:           0,  // App
			Category:       1,  // Category
			Reviews:        3,  // Reviews
			Popularity:     5,  // Installs
			Price:          7,  // Price
			PopularityKind: model.PopularityInstalls,
			FreeToken:      "0",
			Deduplicate:    true,
		},
	}
}

// IOSDefaults describes the App Store export (AppleStore.csv)
func IOSDefaults() DatasetConfig {
	return DatasetConfig{
		Name:      "ios",
		Path:      "AppleStore.csv",
		Delimiter: ',',
		Schema: model.Schema{
			Name:           1,  // track_name
			Category:       11, // prime_genre
			Reviews:        5,  // rating_count_tot
			Popularity:     5,  // rating_count_tot
			Price:          4,  // price
			PopularityKind: model.PopularityPlain,
			FreeToken:      "0.0",
			Deduplicate:    false, // distinct apps share names (e.g. "VR Roller Coaster")
		},
	}
}

// LoadDatasetConfig loads a dataset configuration from variables named
// <prefix>_PATH, <prefix>_NAME_COLUMN and so on, falling back to defaults
func LoadDatasetConfig(prefix string, defaults DatasetConfig) (*DatasetConfig, error) {
	key := func(suffix string) string {
		return prefix + "_" + suffix
	}

	delimiter := getEnv(key("DELIMITER"), string(defaults.Delimiter))
	runes := []rune(delimiter)
	if len(runes) != 1 {
		return nil, fmt.Errorf("%s must be a single character, got %q", key("DELIMITER"), delimiter)
	}

	kind := model.PopularityKind(getEnv(key("POPULARITY_KIND"), string(defaults.Schema.PopularityKind)))

	cfg := &DatasetConfig{
		Name:      defaults.Name,
		Path:      getEnv(key("PATH"), defaults.Path),
		Delimiter: runes[0],
		Schema: model.Schema{
			Name:           getEnvAsInt(key("NAME_COLUMN"), defaults.Schema.Name),
			Category:       getEnvAsInt(key("CATEGORY_COLUMN"), defaults.Schema.Category),
			Reviews:        getEnvAsInt(key("REVIEWS_COLUMN"), defaults.Schema.Reviews),
			Popularity:     getEnvAsInt(key("POPULARITY_COLUMN"), defaults.Schema.Popularity),
			Price:          getEnvAsInt(key("PRICE_COLUMN"), defaults.Schema.Price),
			PopularityKind: kind,
			FreeToken:      getEnv(key("FREE_TOKEN"), defaults.Schema.FreeToken),
			NumericPrice:   getEnvAsBool(key("NUMERIC_PRICE"), defaults.Schema.NumericPrice),
			Deduplicate:    getEnvAsBool(key("DEDUPLICATE"), defaults.Schema.Deduplicate),
			FieldCount:     getEnvAsInt(key("FIELD_COUNT"), defaults.Schema.FieldCount),
		},
	}

	return cfg, nil
}

// Validate ensures the dataset configuration is usable
func (c *DatasetConfig) Validate() error {
	if c.Path == "" {
		return errors.New("dataset path is required")
	}

	for _, idx := range c.Schema.Indices() {
		if idx < 0 {
			return fmt.Errorf("column index cannot be negative: %d", idx)
		}
	}

	if c.Schema.FieldCount < 0 {
		return errors.New("field count cannot be negative")
	}

	switch c.Schema.PopularityKind {
	case model.PopularityPlain, model.PopularityInstalls:
	default:
		return fmt.Errorf("unknown popularity kind: %s", c.Schema.PopularityKind)
	}

	if c.Schema.FreeToken == "" && !c.Schema.NumericPrice {
		return errors.New("free token is required unless numeric price matching is enabled")
	}

	return nil
}
