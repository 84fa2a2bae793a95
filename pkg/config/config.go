// Package config holds the top-level marketplace configuration loaded from
// yaml files.
package config

import (
	"fmt"
	"os"

	"github.com/nspcc-dev/tokenmart/pkg/market/storage"
	"gopkg.in/yaml.v3"
)

// DefaultFeeBasisPoints is the platform fee applied when the config leaves
// FeeBasisPoints unset, one tenth of every settled purchase.
const DefaultFeeBasisPoints = 1000

// Version is the version of the marketplace, set at build time.
var Version string

// Config is the top-level struct representing the marketplace config.
type Config struct {
	MarketConfiguration      MarketConfiguration      `yaml:"MarketConfiguration"`
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
}

// MarketConfiguration describes the marketplace policy: the two role
// accounts, the platform fee and whether priced tokens may be re-priced.
type MarketConfiguration struct {
	// Owner is the address of the platform operator.
	Owner string `yaml:"Owner"`
	// Service is the address of the account allowed to create collections.
	Service string `yaml:"Service"`
	// FeeBasisPoints is the platform's share of every purchase in basis
	// points (1000 = 10%). Zero means the default, not a zero fee.
	FeeBasisPoints uint64 `yaml:"FeeBasisPoints"`
	// AllowRepricing permits the service to overwrite the price of an
	// already priced token.
	AllowRepricing bool `yaml:"AllowRepricing"`
}

// ApplicationConfiguration config specific to the node process itself.
type ApplicationConfiguration struct {
	DBConfiguration storage.DBConfiguration `yaml:"DBConfiguration"`
	LogLevel        string                  `yaml:"LogLevel"`
}

// Load attempts to load the config from the given path.
func Load(path string) (Config, error) {
	configData, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	config := Config{
		MarketConfiguration: MarketConfiguration{
			FeeBasisPoints: DefaultFeeBasisPoints,
		},
		ApplicationConfiguration: ApplicationConfiguration{
			DBConfiguration: storage.DBConfiguration{
				Type: "inmemory",
			},
		},
	}
	if err = yaml.Unmarshal(configData, &config); err != nil {
		return Config{}, fmt.Errorf("problem unmarshaling config data: %w", err)
	}
	return config, nil
}
