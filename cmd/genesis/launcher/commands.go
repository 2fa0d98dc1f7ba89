package launcher

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-edgeware-genesis/genesis"
	"github.com/rony4d/go-edgeware-genesis/genesis/assembler"
	"github.com/rony4d/go-edgeware-genesis/genesis/fixtures"
	"github.com/rony4d/go-edgeware-genesis/genesis/keyring"
	"github.com/rony4d/go-edgeware-genesis/integration"
)

type commandFunc func(ctx *cli.Context, cfg Config, log *logrus.Logger) error

// action resolves the config and the logger before running fn. Failures are
// logged at error level so that they reach the Sentry hook.
func action(fn commandFunc) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := MakeAllConfigs(ctx)
		if err != nil {
			return err
		}
		errw := ctx.App.ErrWriter
		if errw == nil {
			errw = os.Stderr
		}
		log, err := newLogger(cfg.Logging, errw)
		if err != nil {
			return err
		}
		if err := fn(ctx, cfg, log); err != nil {
			log.WithError(err).Error("Command failed")
			return err
		}
		return nil
	}
}

func makeChainSpec(cfg Config, log *logrus.Logger) (*genesis.ChainSpec, error) {
	preset, err := integration.PresetByName(cfg.Genesis.Chain.String())
	if err != nil {
		return nil, genesis.NewError(genesis.ErrConfiguration, nil, "chain", err)
	}
	integration.ApplyOverrides(&preset, cfg.Genesis.Authorities, cfg.Genesis.Equalize)

	table, err := fixtures.Builtin()
	if err != nil {
		return nil, err
	}
	asm := assembler.New(table, assembler.Config{
		AllocationPath:   cfg.Genesis.AllocationPath,
		EqualizedBalance: cfg.Genesis.EqualizedBalance,
	}, log)
	return integration.BuildChainSpec(preset, asm, table)
}

func buildCommand(ctx *cli.Context, cfg Config, log *logrus.Logger) error {
	spec, err := makeChainSpec(cfg, log)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return errors.Wrap(err, "create output file")
		}
		defer f.Close()
		w = f
	}

	if err := writeChainSpec(w, spec, cfg.Output.Raw); err != nil {
		return err
	}
	if cfg.Output.Path != "" {
		log.WithFields(logrus.Fields{
			"path": cfg.Output.Path,
			"raw":  cfg.Output.Raw,
		}).Info("Chain spec written")
	}
	return nil
}

func writeChainSpec(w io.Writer, spec *genesis.ChainSpec, raw bool) error {
	if !raw {
		_, err := spec.WriteTo(w)
		return err
	}
	b, err := spec.Genesis.Bytes()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hexutil.Encode(b))
	return err
}

func hashCommand(ctx *cli.Context, cfg Config, log *logrus.Logger) error {
	spec, err := makeChainSpec(cfg, log)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, spec.Hash().Hex())
	return err
}

func verifyCommand(ctx *cli.Context, cfg Config, log *logrus.Logger) error {
	path := ctx.Args().First()
	if path == "" {
		return errors.New("missing chain spec file argument")
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open chain spec")
	}
	defer f.Close()

	onDisk, err := genesis.ReadChainSpec(f)
	if err != nil {
		return err
	}
	built, err := makeChainSpec(cfg, log)
	if err != nil {
		return err
	}
	if onDisk.Hash() != built.Hash() {
		return errors.Errorf("genesis mismatch: %s has %s, built %s", path, onDisk.Hash().Hex(), built.Hash().Hex())
	}
	if onDisk.ID != built.ID {
		return errors.Errorf("chain id mismatch: %s has %q, built %q", path, onDisk.ID, built.ID)
	}

	log.WithFields(logrus.Fields{
		"chain": built.ID,
		"hash":  built.Hash().Hex(),
	}).Info("Chain spec matches")
	return nil
}

func keyInspectCommand(ctx *cli.Context, cfg Config, log *logrus.Logger) error {
	seed := ctx.String("seed")
	if seed == "" {
		seed = ctx.Args().First()
	}
	if seed == "" {
		return errors.New("missing seed")
	}

	auth, err := keyring.NewAuthority(seed)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "Seed:       %s\n", auth.Seed)
	fmt.Fprintf(w, "Account:    %s\n", auth.Controller.Hex())
	fmt.Fprintf(w, "Stash:      %s\n", auth.Stash.Hex())
	fmt.Fprintf(w, "Consensus:  %s\n", hexutil.Encode(auth.Keys.Consensus.Raw))
	fmt.Fprintf(w, "Finality:   %s\n", hexutil.Encode(auth.Keys.Finality.Raw))
	_, err = fmt.Fprintf(w, "Online:     %s\n", hexutil.Encode(auth.Keys.Online.Raw))
	return err
}

func dumpConfigCommand(ctx *cli.Context, cfg Config, log *logrus.Logger) error {
	return toml.NewEncoder(ctx.App.Writer).Encode(&cfg)
}
