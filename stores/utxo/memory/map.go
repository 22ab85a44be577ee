package memory

import (
	"github.com/bsv-blockchain/txhandler/errors"
	"github.com/bsv-blockchain/txhandler/model"
	"github.com/bsv-blockchain/txhandler/stores/utxo"
)

// Map is a utxo pool backed by the builtin map. Outputs are copied on the way in and on the
// way out.
type Map struct {
	m map[model.Outpoint]*model.Output
}

func NewMap(initialCapacity int) (*Map, error) {
	if initialCapacity < 0 {
		return nil, errors.NewInvalidArgumentError("invalid map capacity %d", initialCapacity)
	}

	return &Map{
		m: make(map[model.Outpoint]*model.Output, initialCapacity),
	}, nil
}

func (mm *Map) Contains(outpoint model.Outpoint) bool {
	_, ok := mm.m[outpoint]
	return ok
}

func (mm *Map) Get(outpoint model.Outpoint) (*model.Output, error) {
	if output, ok := mm.m[outpoint]; ok {
		return output.Clone(), nil
	}

	return nil, errors.NewUtxoNotFoundError("utxo %s not found", outpoint)
}

func (mm *Map) Set(outpoint model.Outpoint, output *model.Output) {
	mm.m[outpoint] = output.Clone()
}

func (mm *Map) Delete(outpoint model.Outpoint) {
	delete(mm.m, outpoint)
}

func (mm *Map) Clone() utxo.Interface {
	clone := &Map{m: make(map[model.Outpoint]*model.Output, len(mm.m))}

	for outpoint, output := range mm.m {
		clone.m[outpoint] = output.Clone()
	}

	return clone
}

func (mm *Map) Len() int {
	return len(mm.m)
}

func (mm *Map) ForEach(fn func(outpoint model.Outpoint, output *model.Output) bool) {
	for outpoint, output := range mm.m {
		if !fn(outpoint, output.Clone()) {
			return
		}
	}
}
