// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/luxfi/aggsig"
	"github.com/luxfi/aggsig/config"
	"github.com/luxfi/aggsig/database/factory"
	"github.com/luxfi/aggsig/logging"
	"github.com/luxfi/aggsig/registry"
)

const (
	configFlag    = "config"
	schemeFlag    = "scheme"
	keyFlag       = "key"
	outFlag       = "out"
	messageFlag   = "message"
	publicKeyFlag = "public-key"
	signatureFlag = "signature"
	idFlag        = "id"

	keyFilePerms = 0o600
)

var errMissingArgs = errors.New("at least one value is required")

// commands returns a fresh command tree. The cli package records parse state
// on flags and commands, so each run builds its own.
func commands() []*cli.Command {
	messageCLIFlag := &cli.StringFlag{
		Name:     messageFlag,
		Usage:    "message that was signed",
		Required: true,
	}
	signatureCLIFlag := &cli.StringFlag{
		Name:     signatureFlag,
		Usage:    "hex encoded compressed signature",
		Required: true,
	}

	keygenCommand := &cli.Command{
		Name:  "keygen",
		Usage: "generate a secret key and print its public keys",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     outFlag,
				Usage:    "file the secret key is written to",
				Required: true,
			},
		},
		Action: keygen,
	}

	signCommand := &cli.Command{
		Name:  "sign",
		Usage: "sign a message with a secret key file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     keyFlag,
				Usage:    "secret key file written by keygen",
				Required: true,
			},
			messageCLIFlag,
		},
		Action: sign,
	}

	aggregateCommand := &cli.Command{
		Name:  "aggregate",
		Usage: "sum compressed public keys or signatures",
		Subcommands: []*cli.Command{
			{
				Name:      "keys",
				Usage:     "aggregate hex encoded compressed public keys",
				ArgsUsage: "KEY...",
				Action:    aggregateKeys,
			},
			{
				Name:      "signatures",
				Usage:     "aggregate hex encoded compressed signatures",
				ArgsUsage: "SIGNATURE...",
				Action:    aggregateSignatures,
			},
		},
	}

	registerCommand := &cli.Command{
		Name:  "register",
		Usage: "record a signer's uncompressed public key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     idFlag,
				Usage:    "base58 signer identity",
				Required: true,
			},
			&cli.StringFlag{
				Name:     publicKeyFlag,
				Usage:    "hex encoded uncompressed public key",
				Required: true,
			},
		},
		Action: register,
	}

	verifyCommand := &cli.Command{
		Name:  "verify",
		Usage: "verify a signature against an aggregated public key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     publicKeyFlag,
				Usage:    "hex encoded compressed aggregated public key",
				Required: true,
			},
			signatureCLIFlag,
			messageCLIFlag,
		},
		Action: verify,
	}

	verifyRegisteredCommand := &cli.Command{
		Name:  "verify-registered",
		Usage: "verify a signature against registered signers",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     idFlag,
				Usage:    "base58 identity of a signer, repeated for each signer",
				Required: true,
			},
			signatureCLIFlag,
			messageCLIFlag,
		},
		Action: verifyRegistered,
	}

	signersCommand := &cli.Command{
		Name:   "signers",
		Usage:  "list registered signer identities",
		Action: signers,
	}

	return []*cli.Command{
		keygenCommand,
		signCommand,
		aggregateCommand,
		registerCommand,
		verifyCommand,
		verifyRegisteredCommand,
		signersCommand,
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String(configFlag); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	}
	if scheme := c.String(schemeFlag); scheme != "" {
		cfg.Scheme = scheme
	}
	return cfg, cfg.Validate()
}

// withProtocol opens the configured database and protocol for the duration
// of [f].
func withProtocol(c *cli.Context, f func(aggsig.Protocol) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	zapLogger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return errors.Wrap(err, "couldn't create logger")
	}
	defer func() {
		_ = zapLogger.Sync()
		_ = closer.Close()
	}()
	log := logging.NewZapAdapter(zapLogger)

	reg := prometheus.NewRegistry()
	db, err := factory.New(cfg.Database, log, reg)
	if err != nil {
		return errors.Wrap(err, "couldn't open database")
	}
	defer db.Close()

	p, err := aggsig.Open(cfg, db, log, reg)
	if err != nil {
		return errors.Wrap(err, "couldn't open protocol")
	}
	return f(p)
}

func keygen(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	signer, err := aggsig.GenerateSigner(cfg.Scheme)
	if err != nil {
		return err
	}

	out := c.String(outFlag)
	keyHex := hex.EncodeToString(signer.Bytes()) + "\n"
	if err := renameio.WriteFile(out, []byte(keyHex), keyFilePerms); err != nil {
		return errors.Wrapf(err, "couldn't write secret key to %q", out)
	}

	fmt.Fprintf(c.App.Writer, "public key:        %x\n", signer.PublicKey())
	fmt.Fprintf(c.App.Writer, "stored public key: %x\n", signer.StoredPublicKey())
	return nil
}

func sign(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	path := c.String(keyFlag)
	keyHex, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "couldn't read secret key %q", path)
	}
	keyBytes, err := hex.DecodeString(strings.TrimSpace(string(keyHex)))
	if err != nil {
		return errors.Wrapf(err, "couldn't decode secret key %q", path)
	}
	signer, err := aggsig.SignerFromBytes(cfg.Scheme, keyBytes)
	if err != nil {
		return errors.Wrapf(err, "couldn't parse secret key %q", path)
	}

	sig, err := signer.Sign([]byte(c.String(messageFlag)))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%x\n", sig)
	return nil
}

func aggregateKeys(c *cli.Context) error {
	return aggregate(c, aggsig.Protocol.AggregatePublicKeys)
}

func aggregateSignatures(c *cli.Context) error {
	return aggregate(c, aggsig.Protocol.AggregateSignatures)
}

func aggregate(c *cli.Context, f func(aggsig.Protocol, [][]byte) ([]byte, error)) error {
	if c.NArg() == 0 {
		return errMissingArgs
	}
	values := make([][]byte, c.NArg())
	for i, arg := range c.Args().Slice() {
		b, err := decodeHex(arg)
		if err != nil {
			return errors.Wrapf(err, "argument %d", i)
		}
		values[i] = b
	}
	return withProtocol(c, func(p aggsig.Protocol) error {
		agg, err := f(p, values)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%x\n", agg)
		return nil
	})
}

func register(c *cli.Context) error {
	id, err := registry.ParseIdentity(c.String(idFlag))
	if err != nil {
		return err
	}
	publicKey, err := decodeHex(c.String(publicKeyFlag))
	if err != nil {
		return errors.Wrap(err, "public key")
	}
	return withProtocol(c, func(p aggsig.Protocol) error {
		if err := p.Register(id, publicKey); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "registered %s\n", id)
		return nil
	})
}

func verify(c *cli.Context) error {
	publicKey, err := decodeHex(c.String(publicKeyFlag))
	if err != nil {
		return errors.Wrap(err, "public key")
	}
	sig, err := decodeHex(c.String(signatureFlag))
	if err != nil {
		return errors.Wrap(err, "signature")
	}
	msg := []byte(c.String(messageFlag))
	return withProtocol(c, func(p aggsig.Protocol) error {
		if err := p.VerifyStateless(publicKey, sig, msg); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, "valid")
		return nil
	})
}

func verifyRegistered(c *cli.Context) error {
	rawIDs := c.StringSlice(idFlag)
	ids := make([]registry.Identity, len(rawIDs))
	for i, raw := range rawIDs {
		id, err := registry.ParseIdentity(raw)
		if err != nil {
			return err
		}
		ids[i] = id
	}
	sig, err := decodeHex(c.String(signatureFlag))
	if err != nil {
		return errors.Wrap(err, "signature")
	}
	msg := []byte(c.String(messageFlag))
	return withProtocol(c, func(p aggsig.Protocol) error {
		if err := p.VerifyStateful(ids, sig, msg); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, "valid")
		return nil
	})
}

func signers(c *cli.Context) error {
	return withProtocol(c, func(p aggsig.Protocol) error {
		ids, err := p.Signers()
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(c.App.Writer, id)
		}
		return nil
	})
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}
