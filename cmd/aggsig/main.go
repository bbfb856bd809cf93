// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// aggsig generates keys, signs, aggregates and verifies multi-signatures, and
// manages the signer registry.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "aggsig: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	app := &cli.App{
		Name:  "aggsig",
		Usage: "aggregate pairing-based multi-signatures",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Usage:   "path to a YAML config file",
				EnvVars: []string{"AGGSIG_CONFIG"},
			},
			&cli.StringFlag{
				Name:  schemeFlag,
				Usage: "signature scheme, overrides the config file (bn254 or bls12381)",
			},
		},
		Commands:        commands(),
		Writer:          stdout,
		HideHelpCommand: true,
	}
	return app.Run(args)
}
