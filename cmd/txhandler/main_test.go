package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bsv-blockchain/txhandler/model"
	"github.com/bsv-blockchain/txhandler/util/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	poolPath  string
	batchPath string
	t1        *model.Transaction
	t2        *model.Transaction
	t3        *model.Transaction
}

// newFixture seeds a pool with u1 (10 to alice) and u2 (5 to bob). t1 spends u1 correctly, t2
// spends u2 with alice's signature and t3 spends u1 again.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	alice := test.NewECDSAKey("alice")
	bob := test.NewECDSAKey("bob")
	carol := test.NewECDSAKey("carol")

	u1 := test.GenesisOutpoint("u1", 0)
	u2 := test.GenesisOutpoint("u2", 0)

	utxos := []model.UTXO{
		{Outpoint: u1, Output: model.NewOutput(10, alice.Address())},
		{Outpoint: u2, Output: model.NewOutput(5, bob.Address())},
	}

	f := &fixture{
		t1: test.CreateTx(t, []test.Spend{{Outpoint: u1, Signer: alice}}, []test.Pay{{Value: 6, To: carol}, {Value: 4, To: alice}}),
		t2: test.CreateTx(t, []test.Spend{{Outpoint: u2, Signer: alice}}, []test.Pay{{Value: 5, To: carol}}),
		t3: test.CreateTx(t, []test.Spend{{Outpoint: u1, Signer: alice}}, []test.Pay{{Value: 10, To: bob}}),
	}

	dir := t.TempDir()
	f.poolPath = writeFile(t, dir, "pool.json", utxos)
	f.batchPath = writeFile(t, dir, "batch.json", []*model.Transaction{f.t1, f.t2, f.t3})

	return f
}

func writeFile(t *testing.T, dir, name string, v interface{}) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func run(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	err := newApp(&stdout, &stderr).Run(append([]string{"txhandler"}, args...))

	return stdout.Bytes(), err
}

func TestHandle(t *testing.T) {
	for _, concurrency := range []string{"0", "4"} {
		t.Run("concurrency "+concurrency, func(t *testing.T) {
			f := newFixture(t)

			out, err := run(t, "handle", "--pool", f.poolPath, "--batch", f.batchPath, "--concurrency", concurrency)
			require.NoError(t, err)

			var result handleOutput
			require.NoError(t, json.Unmarshal(out, &result))

			assert.Equal(t, uint64(1), result.Epoch)
			assert.Equal(t, []string{f.t1.Hash().String()}, result.Accepted)

			require.Len(t, result.Rejected, 2)
			assert.Equal(t, f.t2.Hash().String(), result.Rejected[0].TxID)
			assert.Equal(t, "TX_INVALID_SIGNATURE", result.Rejected[0].Rule)
			assert.Equal(t, 0, result.Rejected[0].Index)
			assert.Equal(t, f.t3.Hash().String(), result.Rejected[1].TxID)
			assert.Equal(t, "TX_MISSING_INPUT", result.Rejected[1].Rule)

			require.Len(t, result.Pool, 3)

			values := map[model.Outpoint]int64{}
			for _, u := range result.Pool {
				values[u.Outpoint] = u.Output.Value
			}

			assert.Equal(t, int64(5), values[test.GenesisOutpoint("u2", 0)])
			assert.Equal(t, int64(6), values[f.t1.OutputOutpoint(0)])
			assert.Equal(t, int64(4), values[f.t1.OutputOutpoint(1)])
		})
	}
}

func TestValidate(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "validate", "--pool", f.poolPath, "--batch", f.batchPath)
	require.NoError(t, err)

	var results []validateOutput
	require.NoError(t, json.Unmarshal(out, &results))
	require.Len(t, results, 3)

	assert.True(t, results[0].Valid)
	assert.Nil(t, results[0].Index)

	assert.False(t, results[1].Valid)
	assert.Equal(t, "TX_INVALID_SIGNATURE", results[1].Rule)
	require.NotNil(t, results[1].Index)
	assert.Equal(t, 0, *results[1].Index)

	// each transaction is checked against the untouched pool, so the conflicting spend is valid
	assert.True(t, results[2].Valid)
}

func TestCommandErrors(t *testing.T) {
	f := newFixture(t)

	t.Run("missing flag", func(t *testing.T) {
		_, err := run(t, "handle", "--pool", f.poolPath)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "handle", "--pool", filepath.Join(t.TempDir(), "nope.json"), "--batch", f.batchPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not read")
	})

	t.Run("malformed batch", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "batch.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0o600))

		_, err := run(t, "validate", "--pool", f.poolPath, "--batch", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not decode")
	})

	t.Run("null transaction", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "batch.json")
		require.NoError(t, os.WriteFile(path, []byte(`[null]`), 0o600))

		_, err := run(t, "handle", "--pool", f.poolPath, "--batch", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch entry 0 is null")
	})

	t.Run("unknown scheme", func(t *testing.T) {
		_, err := run(t, "handle", "--pool", f.poolPath, "--batch", f.batchPath, "--scheme", "rsa")
		require.Error(t, err)

		_, err = run(t, "validate", "--pool", f.poolPath, "--batch", f.batchPath, "--scheme", "rsa")
		require.Error(t, err)
	})

	t.Run("wrong scheme rejects everything", func(t *testing.T) {
		out, err := run(t, "handle", "--pool", f.poolPath, "--batch", f.batchPath, "--scheme", "ed25519")
		require.NoError(t, err)

		var result handleOutput
		require.NoError(t, json.Unmarshal(out, &result))

		assert.Empty(t, result.Accepted)
		assert.Len(t, result.Rejected, 3)
		assert.Len(t, result.Pool, 2)
	})
}

func TestLogsUseClientName(t *testing.T) {
	t.Setenv("clientName", "settler")

	f := newFixture(t)

	var stdout, stderr bytes.Buffer

	err := newApp(&stdout, &stderr).Run([]string{"txhandler", "handle", "--pool", f.poolPath, "--batch", f.batchPath})
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "settler")
	assert.Contains(t, stderr.String(), "loaded pool of 2 utxos")
	assert.NotContains(t, stdout.String(), "loaded pool")
}
