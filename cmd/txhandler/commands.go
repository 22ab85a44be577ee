package main

import (
	"os"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/txhandler/errors"
	"github.com/bsv-blockchain/txhandler/model"
	"github.com/bsv-blockchain/txhandler/services/validator"
	"github.com/bsv-blockchain/txhandler/settings"
	"github.com/bsv-blockchain/txhandler/stores/utxo"
	"github.com/bsv-blockchain/txhandler/stores/utxo/factory"
	"github.com/bsv-blockchain/txhandler/ulogger"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rejection struct {
	TxID  string `json:"txid"`
	Rule  string `json:"rule"`
	Index int    `json:"index"`
	Error string `json:"error"`
}

type handleOutput struct {
	Epoch    uint64       `json:"epoch"`
	Accepted []string     `json:"accepted"`
	Rejected []rejection  `json:"rejected"`
	Pool     []model.UTXO `json:"pool"`
}

type validateOutput struct {
	TxID  string `json:"txid"`
	Valid bool   `json:"valid"`
	Rule  string `json:"rule,omitempty"`
	Index *int   `json:"index,omitempty"`
	Error string `json:"error,omitempty"`
}

func handle(c *cli.Context) error {
	tSettings := commandSettings(c)
	logger := commandLogger(c, tSettings)

	pool, batch, err := load(c, logger, tSettings)
	if err != nil {
		return err
	}

	var opts []validator.Option
	if c.IsSet("concurrency") {
		opts = append(opts, validator.WithVerifyConcurrency(c.Int("concurrency")))
	}

	handler, err := validator.NewTxHandler(logger, tSettings, pool, opts...)
	if err != nil {
		return err
	}

	result, err := handler.HandleTxsWithResult(c.Context, batch)
	if err != nil {
		return err
	}

	output := handleOutput{
		Epoch:    handler.Epoch(),
		Accepted: make([]string, 0, len(result.Accepted)),
		Rejected: make([]rejection, 0),
		Pool:     utxo.Snapshot(handler.Pool()),
	}

	for _, tx := range result.Accepted {
		output.Accepted = append(output.Accepted, tx.Hash().String())
	}

	for _, r := range result.Results {
		if r.Accepted {
			continue
		}

		if !errors.IsTxRejection(r.Err) {
			return r.Err
		}

		output.Rejected = append(output.Rejected, newRejection(r.Tx.Hash(), r.Err))
	}

	return writeJSON(c, output)
}

func validate(c *cli.Context) error {
	tSettings := commandSettings(c)
	logger := commandLogger(c, tSettings)

	pool, batch, err := load(c, logger, tSettings)
	if err != nil {
		return err
	}

	verifier, err := validator.NewSignatureVerifier(logger, tSettings)
	if err != nil {
		return err
	}

	txValidator := validator.NewTxValidator(logger, verifier)

	outputs := make([]validateOutput, 0, len(batch))

	for _, tx := range batch {
		out := validateOutput{TxID: tx.Hash().String(), Valid: true}

		if err = txValidator.ValidateTransaction(tx, pool); err != nil {
			if !errors.IsTxRejection(err) {
				return err
			}

			r := newRejection(tx.Hash(), err)

			out.Valid = false
			out.Rule = r.Rule
			out.Index = &r.Index
			out.Error = r.Error
		}

		outputs = append(outputs, out)
	}

	return writeJSON(c, outputs)
}

func commandSettings(c *cli.Context) *settings.Settings {
	tSettings := settings.NewSettings()

	if scheme := c.String("scheme"); scheme != "" {
		tSettings.Validator.SignatureScheme = scheme
	}

	return tSettings
}

func commandLogger(c *cli.Context, tSettings *settings.Settings) ulogger.Logger {
	return ulogger.New(tSettings.ClientName,
		ulogger.WithLevel(tSettings.LogLevel),
		ulogger.WithLoggerType(tSettings.LoggerType),
		ulogger.WithWriter(c.App.ErrWriter),
	)
}

func load(c *cli.Context, logger ulogger.Logger, tSettings *settings.Settings) (utxo.Interface, []*model.Transaction, error) {
	var utxos []model.UTXO
	if err := readJSON(c.String("pool"), &utxos); err != nil {
		return nil, nil, err
	}

	var batch []*model.Transaction
	if err := readJSON(c.String("batch"), &batch); err != nil {
		return nil, nil, err
	}

	for i, tx := range batch {
		if tx == nil {
			return nil, nil, errors.NewInvalidArgumentError("batch entry %d is null", i)
		}
	}

	pool, err := factory.New(logger, tSettings)
	if err != nil {
		return nil, nil, err
	}

	for _, u := range utxos {
		pool.Set(u.Outpoint, u.Output)
	}

	logger.Infof("[txhandler] loaded pool of %d utxos and batch of %d transactions", pool.Len(), len(batch))

	return pool, batch, nil
}

func newRejection(txID chainhash.Hash, err error) rejection {
	r := rejection{
		TxID:  txID.String(),
		Rule:  errors.RejectionCode(err).String(),
		Index: -1,
		Error: err.Error(),
	}

	var data *errors.TxRejectedErrData
	if errors.AsData(err, &data) {
		r.Rule = data.Rule
		r.Index = data.Index
	}

	return r
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewInvalidArgumentError("could not read %s", path, err)
	}

	if err = json.Unmarshal(data, v); err != nil {
		return errors.NewInvalidArgumentError("could not decode %s", path, err)
	}

	return nil
}

func writeJSON(c *cli.Context, v interface{}) error {
	encoder := json.NewEncoder(c.App.Writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
