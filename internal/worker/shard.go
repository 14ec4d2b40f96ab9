package worker

import "context"

// ShardFunc processes the half-open index range [lo, hi)
type ShardFunc func(ctx context.Context, lo, hi int) error

type shardJob struct {
	lo, hi int
	fn     ShardFunc
}

func (j *shardJob) Execute(ctx context.Context) error {
	return j.fn(ctx, j.lo, j.hi)
}

// Shard is a half-open index range
type Shard struct {
	Lo, Hi int
}

// Shards splits n items into consecutive ranges of at most size items
func Shards(n, size int) []Shard {
	if size <= 0 {
		size = 1
	}

	shards := make([]Shard, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		shards = append(shards, Shard{Lo: lo, Hi: hi})
	}
	return shards
}

// RunShards runs fn over n items split into shards of the given size, using
// the given number of workers. fn must only touch indices inside its range.
func RunShards(ctx context.Context, n, workers, size int, fn ShardFunc) error {
	if n == 0 {
		return ctx.Err()
	}

	pool := NewPool(ctx, workers)
	pool.Start()

	for _, s := range Shards(n, size) {
		if !pool.Submit(&shardJob{lo: s.Lo, hi: s.Hi, fn: fn}) {
			break
		}
	}

	return pool.Wait()
}
