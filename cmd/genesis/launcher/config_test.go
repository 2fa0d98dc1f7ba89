package launcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-edgeware-genesis/flags"
	"github.com/rony4d/go-edgeware-genesis/network"
)

// runConfigFromArgs runs MakeAllConfigs against a synthetic CLI context.
func runConfigFromArgs(t *testing.T, args []string) (Config, error) {
	t.Helper()

	app := cli.NewApp()
	app.HideHelp = true
	app.HideVersion = true
	app.Flags = commandFlags(flags.NetworkFlags(), flags.OutputFlags())

	var (
		got    Config
		gotErr error
	)
	app.Action = func(c *cli.Context) error {
		got, gotErr = MakeAllConfigs(c)
		return nil
	}

	require.NoError(t, app.Run(append([]string{"edgeware-genesis"}, args...)))
	return got, gotErr
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMakeAllConfigsDefaults(t *testing.T) {
	require := require.New(t)

	cfg, err := runConfigFromArgs(t, nil)
	require.NoError(err)
	require.Equal(defaultConfig(), cfg)
	require.Equal(network.Development, cfg.Genesis.Chain)
	require.Equal("lockdrop_allocations.json", cfg.Genesis.AllocationPath)
	require.Nil(cfg.Genesis.Equalize)
	require.True(cfg.Genesis.EqualizedBalance.IsZero())
	require.Equal(DefaultVerbosity, cfg.Logging.Verbosity)
}

func TestMakeAllConfigsFlagOverrides(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want func(t *testing.T, cfg Config)
	}{
		{
			name: "chain and authorities",
			args: []string{"--chain", "local", "--authority", "Alice, Bob", "--authority", "Charlie"},
			want: func(t *testing.T, cfg Config) {
				require.Equal(t, network.LocalTestnet, cfg.Genesis.Chain)
				require.Equal(t, []string{"Alice", "Bob", "Charlie"}, cfg.Genesis.Authorities)
			},
		},
		{
			name: "allocation",
			args: []string{"--chain", "edgeware", "--allocation", "alloc.json", "--allocation.equalize=false", "--allocation.balance", "5000"},
			want: func(t *testing.T, cfg Config) {
				require.Equal(t, network.PublicMainnet, cfg.Genesis.Chain)
				require.Equal(t, "alloc.json", cfg.Genesis.AllocationPath)
				require.NotNil(t, cfg.Genesis.Equalize)
				require.False(t, *cfg.Genesis.Equalize)
				require.Equal(t, "5000", cfg.Genesis.EqualizedBalance.String())
			},
		},
		{
			name: "logging",
			args: []string{"--log.format", "json", "--log.verbosity", "5", "--log.color", "--sentry.dsn", "https://key@sentry.example/1"},
			want: func(t *testing.T, cfg Config) {
				require.Equal(t, LoggingConfig{
					Verbosity: 5,
					Format:    "json",
					Color:     true,
					SentryDSN: "https://key@sentry.example/1",
				}, cfg.Logging)
			},
		},
		{
			name: "output",
			args: []string{"--out", "spec.json", "--raw"},
			want: func(t *testing.T, cfg Config) {
				require.Equal(t, OutputConfig{Path: "spec.json", Raw: true}, cfg.Output)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := runConfigFromArgs(t, tt.args)
			require.NoError(t, err)
			tt.want(t, cfg)
		})
	}
}

func TestMakeAllConfigsFile(t *testing.T) {
	require := require.New(t)

	path := writeConfigFile(t, `
[Genesis]
Chain = "testnet"
Authorities = ["Dave"]
AllocationPath = "from-file.json"
Equalize = false
EqualizedBalance = "2000"

[Logging]
Verbosity = 2
Format = "json"
`)

	cfg, err := runConfigFromArgs(t, []string{"--config", path})
	require.NoError(err)
	require.Equal(network.PublicTestnet, cfg.Genesis.Chain)
	require.Equal([]string{"Dave"}, cfg.Genesis.Authorities)
	require.Equal("from-file.json", cfg.Genesis.AllocationPath)
	require.NotNil(cfg.Genesis.Equalize)
	require.False(*cfg.Genesis.Equalize)
	require.Equal("2000", cfg.Genesis.EqualizedBalance.String())
	require.Equal(2, cfg.Logging.Verbosity)

	// flags win over the file
	cfg, err = runConfigFromArgs(t, []string{"--config", path, "--chain", "mainnet", "--log.verbosity", "4"})
	require.NoError(err)
	require.Equal(network.PublicMainnet, cfg.Genesis.Chain)
	require.Equal("from-file.json", cfg.Genesis.AllocationPath)
	require.Equal(4, cfg.Logging.Verbosity)
	require.Equal("json", cfg.Logging.Format)
}

func TestMakeAllConfigsErrors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
	}{
		{"unknown chain", func(*testing.T) []string { return []string{"--chain", "fakenet"} }},
		{"bad balance", func(*testing.T) []string { return []string{"--allocation.balance", "1e18"} }},
		{"missing file", func(t *testing.T) []string {
			return []string{"--config", filepath.Join(t.TempDir(), "none.toml")}
		}},
		{"unknown key", func(t *testing.T) []string {
			return []string{"--config", writeConfigFile(t, "[Genesis]\nNetwork = \"dev\"\n")}
		}},
		{"bad chain in file", func(t *testing.T) []string {
			return []string{"--config", writeConfigFile(t, "[Genesis]\nChain = \"fakenet\"\n")}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runConfigFromArgs(t, tt.args(t))
			require.Error(t, err)
		})
	}
}

func TestSplitCSV(t *testing.T) {
	require.Nil(t, splitCSV(""))
	require.Equal(t, []string{"a", "b"}, splitCSV(" a ,, b,"))
}
