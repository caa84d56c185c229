package batch

import (
	"fmt"

	"boltgen/internal/calc/bolt"
)

const MaxItems = 200

type Input struct {
	Items []bolt.Parameters `json:"items"`
}

// ItemResult carries either the stats of a built model or the reason it
// could not be built. One bad item does not fail the batch.
type ItemResult struct {
	Index int         `json:"index"`
	Stats *bolt.Stats `json:"stats,omitempty"`
	Error string      `json:"error,omitempty"`
}

type Result struct {
	Count   int          `json:"count"`
	Failed  int          `json:"failed"`
	Results []ItemResult `json:"results"`
}

func Calculate(in Input, opts bolt.Options) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("too many items: %d > %d", len(in.Items), MaxItems)
	}
	out := Result{Results: make([]ItemResult, 0, len(in.Items))}
	for i, item := range in.Items {
		out.Results = append(out.Results, Run(i, item, opts))
	}
	for _, r := range out.Results {
		if r.Error != "" {
			out.Failed++
		}
	}
	out.Count = len(out.Results)
	return out, nil
}

// Run builds a single item.
func Run(index int, p bolt.Parameters, opts bolt.Options) ItemResult {
	m, err := bolt.BuildWith(p, opts)
	if err != nil {
		return ItemResult{Index: index, Error: err.Error()}
	}
	st := m.Stats()
	return ItemResult{Index: index, Stats: &st}
}
