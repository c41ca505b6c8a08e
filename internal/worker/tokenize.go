package worker

import (
	"sort"

	"github.com/eikopf/konig/internal/pgn"
)

// Tokenize is a ProcessFunc that counts the tokens of item by kind. It
// stops at the first tokenizer error and reports the counts so far.
func Tokenize(item WorkItem) ProcessResult {
	res := ProcessResult{
		Index:  item.Index,
		Name:   item.Name,
		Counts: make(map[pgn.Kind]int),
	}

	tz := pgn.NewTokenizer(item.Data)
	for {
		tok, err := tz.Next()
		if err != nil {
			res.Err = err
			return res
		}
		if tok.Kind == pgn.EOF {
			return res
		}
		res.Counts[tok.Kind]++
		res.Lines = tok.Line
	}
}

// RunAll tokenizes every item on a pool of n workers and returns the
// results in submission order. The queues hold buffer items, or every
// item when buffer is below 1.
func RunAll(items []WorkItem, n, buffer int) []ProcessResult {
	if buffer < 1 {
		buffer = len(items)
	}
	pool := NewPool(Tokenize, WithWorkers(n), WithBufferSize(buffer))
	pool.Start()

	go func() {
		for _, item := range items {
			pool.Submit(item)
		}
		pool.Close()
	}()

	results := make([]ProcessResult, 0, len(items))
	for res := range pool.Results() {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}
