package memory

import (
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/bsv-blockchain/txhandler/errors"
	"github.com/bsv-blockchain/txhandler/model"
	"github.com/bsv-blockchain/txhandler/stores/utxo"
	"github.com/dolthub/swiss"
)

// SwissMap is a utxo pool backed by a swiss table, which uses a lot less memory than the
// builtin map for large pools. Outputs are copied on the way in and on the way out.
type SwissMap struct {
	m *swiss.Map[model.Outpoint, *model.Output]
}

// NewSwissMap returns an empty pool sized for initialCapacity outputs. The capacity must fit
// in a uint32.
func NewSwissMap(initialCapacity int) (*SwissMap, error) {
	capacity, err := safeconversion.IntToUint32(initialCapacity)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid swiss map capacity %d", initialCapacity, err)
	}

	return &SwissMap{
		m: swiss.NewMap[model.Outpoint, *model.Output](capacity),
	}, nil
}

func (s *SwissMap) Contains(outpoint model.Outpoint) bool {
	return s.m.Has(outpoint)
}

func (s *SwissMap) Get(outpoint model.Outpoint) (*model.Output, error) {
	output, ok := s.m.Get(outpoint)
	if !ok {
		return nil, errors.NewUtxoNotFoundError("utxo %s not found", outpoint)
	}

	return output.Clone(), nil
}

func (s *SwissMap) Set(outpoint model.Outpoint, output *model.Output) {
	s.m.Put(outpoint, output.Clone())
}

func (s *SwissMap) Delete(outpoint model.Outpoint) {
	s.m.Delete(outpoint)
}

func (s *SwissMap) Clone() utxo.Interface {
	// the table grows past its initial size, so an oversized count only loses the presizing
	capacity, err := safeconversion.IntToUint32(s.m.Count())
	if err != nil {
		capacity = 0
	}

	clone := &SwissMap{m: swiss.NewMap[model.Outpoint, *model.Output](capacity)}

	s.m.Iter(func(outpoint model.Outpoint, output *model.Output) bool {
		clone.m.Put(outpoint, output.Clone())
		return false
	})

	return clone
}

func (s *SwissMap) Len() int {
	return s.m.Count()
}

func (s *SwissMap) ForEach(fn func(outpoint model.Outpoint, output *model.Output) bool) {
	s.m.Iter(func(outpoint model.Outpoint, output *model.Output) bool {
		return !fn(outpoint, output.Clone())
	})
}
