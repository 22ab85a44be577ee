// Package main provides the txhandler command line tool, which runs the batch transaction
// handler over JSON encoded pools and batches.
//
// Usage:
//
//	txhandler handle --pool pool.json --batch batch.json
//	txhandler validate --pool pool.json --batch batch.json
//
// A pool file holds a JSON array of utxos ({"txid", "index", "value", "address"}), a batch
// file a JSON array of transactions ({"inputs": [...], "outputs": [...]}). Settings are read
// through gocore (settings.conf or environment), logs are written to stderr.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	poolFlag := &cli.StringFlag{
		Name:     "pool",
		Usage:    "path of the JSON file holding the initial utxo pool",
		Required: true,
	}

	batchFlag := &cli.StringFlag{
		Name:     "batch",
		Usage:    "path of the JSON file holding the candidate transactions",
		Required: true,
	}

	return &cli.App{
		Name:      "txhandler",
		Usage:     "Validate batches of transactions against a utxo pool",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:   "handle",
				Usage:  "Commit the valid, mutually consistent subset of a batch and print the resulting pool",
				Action: handle,
				Flags: []cli.Flag{
					poolFlag,
					batchFlag,
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "signature pre-verification goroutines, 0 verifies inline, -1 uses one per CPU (default from validator_verifyConcurrency)",
					},
					&cli.StringFlag{
						Name:  "scheme",
						Usage: "signature scheme, ecdsa or ed25519 (default from validator_signatureScheme)",
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "Check every transaction of a batch independently against the pool",
				Action: validate,
				Flags: []cli.Flag{
					poolFlag,
					batchFlag,
					&cli.StringFlag{
						Name:  "scheme",
						Usage: "signature scheme, ecdsa or ed25519 (default from validator_signatureScheme)",
					},
				},
			},
		},
	}
}
