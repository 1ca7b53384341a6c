// Package weakkey recovers RSA plaintexts encrypted under a key whose prime p
// has p-1 divisible by the public exponent e.
//
// For such a key e has no inverse modulo φ(N), but it has one modulo φ(N)/e.
// Raising the ciphertext to that partial exponent gives the plaintext up to a
// factor in the subgroup of order e, which a generator of that subgroup lets
// us enumerate. Each of the e-1 candidates is handed to an Oracle that
// decides whether it looks like the plaintext.
package weakkey

import (
	"context"
	"math/big"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a search.
type Result struct {
	// Candidates holds every accepted candidate, by increasing Index.
	Candidates []Candidate
	// Queries is the number of candidates handed to the oracle.
	Queries int
	// SquareDivisible is copied from the Context.
	SquareDivisible bool
	Timings         Timings
}

// shard is a contiguous range [start, end) of enumeration indices, with the
// candidates accepted in it. Only the goroutine running it writes to it.
type shard struct {
	start, end int
	found      []Candidate
	done       bool
}

// Run is the whole attack: NewContext followed by Search.
func Run(ctx context.Context, p, q *big.Int, e int, ciphertext *big.Int, o Oracle, opts ...Option) (*Result, error) {
	c, err := NewContext(p, q, e, ciphertext, opts...)
	if err != nil {
		return nil, err
	}
	return c.Search(ctx, o)
}

// Search hands z * t^i mod N to the oracle for every i in [1, e), z being the
// partial plaintext and t the torsion generator, and collects all the
// candidates the oracle accepts. It does not stop at the first one: a padding
// oracle can accept a wrong candidate and the caller gets to see them all.
//
// The range is split into shards run by concurrent workers. The result is the
// same whatever the number of workers. When ctx is cancelled no further shard
// is started, and Search returns the candidates of the shards that ran to the
// end along with ctx.Err().
func (c *Context) Search(ctx context.Context, o Oracle) (*Result, error) {
	start := time.Now()
	shards := c.shards()

	var g errgroup.Group
	g.SetLimit(c.cfg.workers)
	for i := range shards {
		if ctx.Err() != nil {
			break
		}
		s := &shards[i]
		g.Go(func() error {
			// g.Go may have waited for a free worker
			if ctx.Err() != nil {
				return nil
			}
			c.searchShard(s, o)
			return nil
		})
	}
	g.Wait()

	res := &Result{
		SquareDivisible: c.SquareDivisible,
		Timings:         c.Timings,
	}
	complete := true
	for _, s := range shards {
		if !s.done {
			complete = false
			continue
		}
		res.Queries += s.end - s.start
		res.Candidates = append(res.Candidates, s.found...)
	}
	res.Timings.Search = time.Since(start)

	for _, cand := range res.Candidates {
		c.cfg.logger.Printf("candidate accepted at index %d", cand.Index)
	}
	c.cfg.logger.Printf("search over %d candidates done in %v, %d accepted", res.Queries, res.Timings.Search, len(res.Candidates))

	if !complete {
		return res, ctx.Err()
	}
	return res, nil
}

// shards splits [1, e) into contiguous ranges, shardsPerWorker per worker.
func (c *Context) shards() []shard {
	total := c.E - 1
	count := c.cfg.workers * shardsPerWorker
	if count > total {
		count = total
	}
	if count < 1 {
		return nil
	}
	size := (total + count - 1) / count

	out := make([]shard, 0, count)
	for start := 1; start < c.E; start += size {
		end := start + size
		if end > c.E {
			end = c.E
		}
		out = append(out, shard{start: start, end: end})
	}
	return out
}

// searchShard walks one shard. The first power of the torsion generator is
// computed directly, the following ones by multiplying by t.
func (c *Context) searchShard(s *shard, o Oracle) {
	t := c.TorsionGenerator
	ell := c.crt.Exp(t, big.NewInt(int64(s.start)))
	for i := s.start; i < s.end; i++ {
		candidate := new(big.Int).Mul(ell, c.PartialPlaintext)
		candidate.Mod(candidate, c.N)
		if rec, ok := o.Query(c.N, candidate); ok {
			rec.Index = i
			rec.Value = candidate
			s.found = append(s.found, rec)
		}
		ell.Mul(ell, t)
		ell.Mod(ell, c.N)
	}
	s.done = true
}
