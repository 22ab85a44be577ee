// Package logger wraps a utxo pool and logs every operation together with its caller.
package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bsv-blockchain/txhandler/model"
	"github.com/bsv-blockchain/txhandler/stores/utxo"
	"github.com/bsv-blockchain/txhandler/ulogger"
)

type Store struct {
	logger ulogger.Logger
	store  utxo.Interface
}

func New(logger ulogger.Logger, store utxo.Interface) utxo.Interface {
	return &Store{
		logger: logger,
		store:  store,
	}
}

func caller() string {
	var callers []string

	depth := 3

	for i := 0; i < depth; i++ {
		pc, file, line, ok := runtime.Caller(2 + i)
		if !ok {
			break
		}

		file = filepath.Join(filepath.Base(filepath.Dir(file)), filepath.Base(file))

		funcName := runtime.FuncForPC(pc).Name()
		funcPaths := strings.Split(funcName, "/")
		funcName = funcPaths[len(funcPaths)-1]

		callers = append(callers, fmt.Sprintf("called from %s: %s:%d", funcName, file, line))
	}

	return strings.Join(callers, ",")
}

func (s *Store) Contains(outpoint model.Outpoint) bool {
	found := s.store.Contains(outpoint)
	s.logger.Debugf("[UTXOStore][logger][Contains] outpoint %s found %t : %s", outpoint, found, caller())

	return found
}

func (s *Store) Get(outpoint model.Outpoint) (*model.Output, error) {
	output, err := s.store.Get(outpoint)
	if err != nil {
		s.logger.Debugf("[UTXOStore][logger][Get] outpoint %s err %v : %s", outpoint, err, caller())
	} else {
		s.logger.Debugf("[UTXOStore][logger][Get] outpoint %s value %d address %x : %s", outpoint, output.Value, output.Address, caller())
	}

	return output, err
}

func (s *Store) Set(outpoint model.Outpoint, output *model.Output) {
	s.store.Set(outpoint, output)
	s.logger.Debugf("[UTXOStore][logger][Set] outpoint %s value %d address %x : %s", outpoint, output.Value, output.Address, caller())
}

func (s *Store) Delete(outpoint model.Outpoint) {
	s.store.Delete(outpoint)
	s.logger.Debugf("[UTXOStore][logger][Delete] outpoint %s : %s", outpoint, caller())
}

// Clone clones the wrapped pool and wraps the clone with the same logger.
func (s *Store) Clone() utxo.Interface {
	s.logger.Debugf("[UTXOStore][logger][Clone] size %d : %s", s.store.Len(), caller())

	return &Store{
		logger: s.logger,
		store:  s.store.Clone(),
	}
}

func (s *Store) Len() int {
	return s.store.Len()
}

func (s *Store) ForEach(fn func(outpoint model.Outpoint, output *model.Output) bool) {
	s.logger.Debugf("[UTXOStore][logger][ForEach] size %d : %s", s.store.Len(), caller())
	s.store.ForEach(fn)
}
