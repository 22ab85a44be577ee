package validator

import (
	"context"
	"sync"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/txhandler/errors"
	"github.com/bsv-blockchain/txhandler/model"
	"github.com/bsv-blockchain/txhandler/settings"
	"github.com/bsv-blockchain/txhandler/stores/utxo"
	"github.com/bsv-blockchain/txhandler/ulogger"
	"github.com/bsv-blockchain/txhandler/util"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// TxResult is the outcome for one candidate of a batch.
type TxResult struct {
	Tx       *model.Transaction
	Accepted bool

	// Err is the rule tagged rejection error when Accepted is false
	Err error
}

// BatchResult is the outcome of one call to HandleTxsWithResult.
type BatchResult struct {
	// Accepted holds the accepted transactions, without duplicates, in the order they were
	// first accepted
	Accepted []*model.Transaction

	// Results holds one entry per candidate, in batch order
	Results []TxResult
}

// TxHandler owns a utxo pool and commits batches of transactions to it. Candidates are
// processed in the order of the batch slice, each one validated against the pool as updated
// by every earlier acceptance of the same batch. When two candidates spend the same output
// the one earlier in the slice wins.
//
// Calls on one handler are serialized.
type TxHandler struct {
	mu                sync.Mutex
	logger            ulogger.Logger
	settings          *settings.Settings
	pool              utxo.Interface
	validator         *TxValidator
	verifier          SignatureVerifier
	verifyConcurrency int
	epoch             atomic.Uint64
}

// NewTxHandler creates a handler that owns a copy of pool. Later changes to pool are not seen
// by the handler and the handler never changes pool.
func NewTxHandler(logger ulogger.Logger, tSettings *settings.Settings, pool utxo.Interface, opts ...Option) (*TxHandler, error) {
	if pool == nil {
		panic("validator: utxo pool is nil")
	}

	options := ProcessOptions(tSettings, opts...)

	verifier := options.verifier
	if verifier == nil {
		var err error

		if verifier, err = NewSignatureVerifier(logger, tSettings); err != nil {
			return nil, err
		}
	}

	initPrometheusMetrics()

	h := &TxHandler{
		logger:            logger,
		settings:          tSettings,
		pool:              pool.Clone(),
		validator:         NewTxValidator(logger, verifier),
		verifier:          verifier,
		verifyConcurrency: util.ResolveConcurrency(options.verifyConcurrency),
	}

	prometheusPoolSize.Set(float64(h.pool.Len()))

	return h, nil
}

// IsValidTx reports whether tx is valid against the handler's current pool.
func (h *TxHandler) IsValidTx(tx *model.Transaction) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.validator.IsValid(tx, h.pool)
}

// ValidateTx returns the rule tagged rejection error of tx against the handler's current
// pool, or nil when tx is valid.
func (h *TxHandler) ValidateTx(tx *model.Transaction) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.validator.ValidateTransaction(tx, h.pool)
}

// Pool returns a copy of the handler's current pool.
func (h *TxHandler) Pool() utxo.Interface {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pool.Clone()
}

// Epoch returns the number of batches committed so far.
func (h *TxHandler) Epoch() uint64 {
	return h.epoch.Load()
}

// HandleTxs commits the valid, mutually consistent subset of txs to the pool and returns it
// without duplicates, in the order of first acceptance. All transactions must be finalized.
func (h *TxHandler) HandleTxs(ctx context.Context, txs []*model.Transaction) ([]*model.Transaction, error) {
	result, err := h.HandleTxsWithResult(ctx, txs)
	if err != nil {
		return nil, err
	}

	return result.Accepted, nil
}

// HandleTxsWithResult is HandleTxs with the outcome of every candidate. The context is only
// observed before the pool is changed: a canceled batch leaves the pool untouched, a batch
// that started committing always runs to completion.
func (h *TxHandler) HandleTxsWithResult(ctx context.Context, txs []*model.Transaction) (*BatchResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	batch := h.epoch.Load() + 1

	for i, tx := range txs {
		if tx == nil {
			panic("validator: batch contains a nil transaction")
		}

		if !tx.IsFinalized() {
			return nil, errors.NewInvalidArgumentError("[HandleTxs][%d] transaction %d is not finalized", batch, i)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.NewContextCanceledError("[HandleTxs][%d] batch canceled before processing", batch, err)
	}

	verifier := h.verifier

	if h.verifyConcurrency > 0 && len(txs) > 0 {
		verdicts, err := h.preVerify(ctx, txs)
		if err != nil {
			return nil, errors.NewContextCanceledError("[HandleTxs][%d] batch canceled during signature pre-verification", batch, err)
		}

		verifier = &memoVerifier{verdicts: verdicts, verifier: h.verifier}
	}

	result := &BatchResult{
		Accepted: make([]*model.Transaction, 0, len(txs)),
		Results:  make([]TxResult, 0, len(txs)),
	}

	accepted := make(map[chainhash.Hash]struct{}, len(txs))

	for _, tx := range txs {
		if err := h.validator.validate(tx, h.pool, verifier); err != nil {
			result.Results = append(result.Results, TxResult{Tx: tx, Err: err})

			prometheusHandleTxsRejected.WithLabelValues(errors.RejectionCode(err).String()).Inc()

			if h.settings.Validator.LogRejections {
				h.logger.Debugf("[HandleTxs][%d] rejected tx %s: %v", batch, tx.Hash(), err)
			}

			continue
		}

		h.commit(tx)

		result.Results = append(result.Results, TxResult{Tx: tx, Accepted: true})

		if _, found := accepted[tx.Hash()]; !found {
			accepted[tx.Hash()] = struct{}{}
			result.Accepted = append(result.Accepted, tx)
		}
	}

	h.epoch.Inc()

	prometheusHandleTxsBatches.Inc()
	prometheusHandleTxsTransactions.Add(float64(len(txs)))
	prometheusHandleTxsAccepted.Add(float64(len(result.Accepted)))
	prometheusHandleTxsBatchSize.Observe(float64(len(txs)))
	prometheusPoolSize.Set(float64(h.pool.Len()))
	prometheusHandleTxs.Observe(time.Since(start).Seconds())

	h.logger.Infof("[HandleTxs][%d] accepted %d of %d transactions, pool size %d, took %s", batch, len(result.Accepted), len(txs), h.pool.Len(), time.Since(start))

	return result, nil
}

// commit spends the inputs of tx and adds its outputs to the pool.
func (h *TxHandler) commit(tx *model.Transaction) {
	for _, input := range tx.Inputs() {
		h.pool.Delete(input.Outpoint())
	}

	for i, output := range tx.Outputs() {
		h.pool.Set(tx.OutputOutpoint(i), output)
	}
}

type verifyJob struct {
	pubKey    []byte
	message   []byte
	signature []byte
}

// preVerify verifies, in parallel, the signature of every input whose spent output is in the
// pool at the start of the batch. Inputs spending outputs created within the batch are left
// to the sequential phase.
func (h *TxHandler) preVerify(ctx context.Context, txs []*model.Transaction) (map[chainhash.Hash]bool, error) {
	start := time.Now()
	defer func() {
		prometheusHandleTxsPreVerify.Observe(time.Since(start).Seconds())
	}()

	jobs := make([]verifyJob, 0, len(txs))

	for _, tx := range txs {
		for i, input := range tx.Inputs() {
			output, err := h.pool.Get(input.Outpoint())
			if err != nil {
				continue
			}

			jobs = append(jobs, verifyJob{
				pubKey:    output.Address,
				message:   tx.SigningPayload(i),
				signature: input.Signature,
			})
		}
	}

	valid := make([]bool, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	util.SafeSetLimit(g, h.verifyConcurrency)

	for idx := range jobs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			valid[idx] = h.verifier.Verify(jobs[idx].pubKey, jobs[idx].message, jobs[idx].signature)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	verdicts := make(map[chainhash.Hash]bool, len(jobs))
	for idx, job := range jobs {
		verdicts[verdictKey(job.pubKey, job.message, job.signature)] = valid[idx]
	}

	h.logger.Debugf("[HandleTxs] pre-verified %d signatures with %d goroutines in %s", len(jobs), h.verifyConcurrency, time.Since(start))

	return verdicts, nil
}

// memoVerifier answers from the verdicts of a pre-verification and falls back to the wrapped
// verifier for triples that were not pre-verified.
type memoVerifier struct {
	verdicts map[chainhash.Hash]bool
	verifier SignatureVerifier
}

func (m *memoVerifier) Verify(pubKey, message, signature []byte) bool {
	if valid, found := m.verdicts[verdictKey(pubKey, message, signature)]; found {
		return valid
	}

	return m.verifier.Verify(pubKey, message, signature)
}
