package history

import (
	"github.com/anishathalye/porcupine"
	"github.com/google/uuid"
	"github.com/phrazzld/calculator-api/internal/domain/calc"
)

// Input is one recorded call against a session. A nil Action is a read of the
// current state.
type Input struct {
	SessionID uuid.UUID
	Action    calc.Action
}

// Output is the state a call observed.
type Output struct {
	State calc.State
}

// Model returns a porcupine model of sessions that start empty and apply
// actions with service. Calls are partitioned by session, so histories that
// span several sessions are checked one session at a time.
func Model(service calc.Service) porcupine.Model {
	return porcupine.Model{
		Partition: partitionBySession,
		Init: func() interface{} {
			return calc.NewState()
		},
		Step: func(state interface{}, input interface{}, output interface{}) (bool, interface{}) {
			st := state.(calc.State)
			inp := input.(Input)
			out := output.(Output)

			// read
			if inp.Action == nil {
				return out.State == st, st
			}

			next := service.Apply(st, inp.Action)
			return out.State == next, next
		},
		Equal: func(state1, state2 interface{}) bool {
			return state1.(calc.State) == state2.(calc.State)
		},
	}
}

func partitionBySession(ops []porcupine.Operation) [][]porcupine.Operation {
	index := make(map[uuid.UUID]int)
	var partitions [][]porcupine.Operation
	for _, op := range ops {
		id := op.Input.(Input).SessionID
		i, ok := index[id]
		if !ok {
			i = len(partitions)
			index[id] = i
			partitions = append(partitions, nil)
		}
		partitions[i] = append(partitions[i], op)
	}
	return partitions
}

// Check reports whether ops is linearizable under Model(service).
func Check(service calc.Service, ops []porcupine.Operation) bool {
	return porcupine.CheckOperations(Model(service), ops)
}
