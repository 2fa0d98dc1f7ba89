// This file maps the CLI context and the optional TOML file onto Config.

package launcher

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-edgeware-genesis/network"
	"github.com/rony4d/go-edgeware-genesis/utils/num"
)

// Config aggregates everything a command needs.
type Config struct {
	Genesis GenesisConfig
	Logging LoggingConfig
	Output  OutputConfig
}

// GenesisConfig selects the network and the inputs of its genesis.
type GenesisConfig struct {
	Chain network.Profile
	// Authorities replace the preset's authority seeds when non-empty.
	Authorities    []string
	AllocationPath string
	// Equalize overrides the profile's equalization default when set.
	Equalize         *bool       `toml:",omitempty"`
	EqualizedBalance num.Balance `toml:",omitempty"`
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

type OutputConfig struct {
	Path string
	Raw  bool
}

// MakeAllConfigs merges defaults, config-file values and CLI overrides into a
// single config struct.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := ctx.String("config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}
	md, err := toml.Decode(string(buf), cfg)
	if err != nil {
		return errors.Wrapf(err, "decode config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return errors.Errorf("config file %s: unknown keys %v", path, undecoded)
	}
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if ctx.IsSet("chain") {
		p, err := network.ParseProfile(ctx.String("chain"))
		if err != nil {
			return err
		}
		cfg.Genesis.Chain = p
	}
	if ctx.IsSet("authority") {
		var seeds []string
		for _, raw := range ctx.StringSlice("authority") {
			seeds = append(seeds, splitCSV(raw)...)
		}
		cfg.Genesis.Authorities = seeds
	}
	if ctx.IsSet("allocation") {
		cfg.Genesis.AllocationPath = ctx.String("allocation")
	}
	if ctx.IsSet("allocation.equalize") {
		v := ctx.Bool("allocation.equalize")
		cfg.Genesis.Equalize = &v
	}
	if ctx.IsSet("allocation.balance") {
		b, err := num.ParseBalance(ctx.String("allocation.balance"))
		if err != nil {
			return errors.Wrap(err, "--allocation.balance")
		}
		cfg.Genesis.EqualizedBalance = b
	}

	if ctx.IsSet("log.format") {
		cfg.Logging.Format = ctx.String("log.format")
	}
	if ctx.IsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.Int("log.verbosity")
	}
	if ctx.IsSet("log.color") {
		cfg.Logging.Color = ctx.Bool("log.color")
	}
	if ctx.IsSet("sentry.dsn") {
		cfg.Logging.SentryDSN = ctx.String("sentry.dsn")
	}

	if ctx.IsSet("out") {
		cfg.Output.Path = ctx.String("out")
	}
	if ctx.IsSet("raw") {
		cfg.Output.Raw = ctx.Bool("raw")
	}
	return nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
