package exec

import "raftsql/kv"

// nothingIter yields exactly one empty row then ends.
type nothingIter struct {
	done bool
}

func (it *nothingIter) Next() ([]kv.Value, bool, error) {
	if it.done {
		return nil, false, nil
	}
	it.done = true
	return nil, true, nil
}
