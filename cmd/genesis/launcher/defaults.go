package launcher

import (
	"github.com/rony4d/go-edgeware-genesis/genesis/allocation"
	"github.com/rony4d/go-edgeware-genesis/network"
)

// Baseline values used before the config file and flags override them.
const (
	DefaultVerbosity = 4 // info
	DefaultLogFormat = "text"
)

func defaultConfig() Config {
	return Config{
		Genesis: GenesisConfig{
			Chain:          network.Development,
			AllocationPath: allocation.DefaultPath,
		},
		Logging: LoggingConfig{
			Verbosity: DefaultVerbosity,
			Format:    DefaultLogFormat,
		},
	}
}
