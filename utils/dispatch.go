package utils

import (
	"math"
	"runtime"
	"sync"
)

/*
DispatchContext executes per-cell and per-face loops over a partitioned
index space, one goroutine per partition. The same context is shared by
every stage of an outer iteration; a stage boundary is a Wait() on the
context, after which all partitions have completed.
*/
type DispatchContext struct {
	PM *PartitionMap
	wg sync.WaitGroup
}

func NewDispatchContext(procLimit, maxIndex int) (ctx *DispatchContext) {
	var (
		nPar = procLimit
	)
	if nPar <= 0 {
		nPar = runtime.NumCPU()
	}
	if nPar > maxIndex && maxIndex > 0 {
		nPar = maxIndex
	}
	ctx = &DispatchContext{
		PM: NewPartitionMap(nPar, maxIndex),
	}
	return
}

func (ctx *DispatchContext) ParallelDegree() int { return ctx.PM.ParallelDegree }

// ParallelFor runs f over [min,max) ranges of the context's own index space,
// one call per partition, and returns after all partitions complete.
func (ctx *DispatchContext) ParallelFor(f func(np, min, max int)) {
	var (
		nPar = ctx.PM.ParallelDegree
	)
	for np := 0; np < nPar; np++ {
		ctx.wg.Add(1)
		go func(np int) {
			min, max := ctx.PM.GetBucketRange(np)
			f(np, min, max)
			ctx.wg.Done()
		}(np)
	}
	ctx.wg.Wait()
}

// ParallelForN partitions an index space of a different size than the
// context's own, used when a face loop shares a context sized by cells.
func (ctx *DispatchContext) ParallelForN(n int, f func(np, min, max int)) {
	var (
		nPar = ctx.PM.ParallelDegree
		pm   = NewPartitionMap(nPar, n)
	)
	for np := 0; np < nPar; np++ {
		ctx.wg.Add(1)
		go func(np int) {
			min, max := pm.GetBucketRange(np)
			f(np, min, max)
			ctx.wg.Done()
		}(np)
	}
	ctx.wg.Wait()
}

// ReduceMin runs f per partition, each returning a partial minimum, and
// combines the partials. Equivalent of the rank-local part of an
// Allreduce(min).
func (ctx *DispatchContext) ReduceMin(f func(np, min, max int) float64) (globMin float64) {
	var (
		nPar     = ctx.PM.ParallelDegree
		partials = make([]float64, nPar)
	)
	for np := 0; np < nPar; np++ {
		ctx.wg.Add(1)
		go func(np int) {
			min, max := ctx.PM.GetBucketRange(np)
			partials[np] = f(np, min, max)
			ctx.wg.Done()
		}(np)
	}
	ctx.wg.Wait()
	globMin = math.Inf(1)
	for _, p := range partials {
		if p < globMin {
			globMin = p
		}
	}
	return
}

// ReduceMax is the max-combining twin of ReduceMin.
func (ctx *DispatchContext) ReduceMax(f func(np, min, max int) float64) (globMax float64) {
	var (
		nPar     = ctx.PM.ParallelDegree
		partials = make([]float64, nPar)
	)
	for np := 0; np < nPar; np++ {
		ctx.wg.Add(1)
		go func(np int) {
			min, max := ctx.PM.GetBucketRange(np)
			partials[np] = f(np, min, max)
			ctx.wg.Done()
		}(np)
	}
	ctx.wg.Wait()
	globMax = math.Inf(-1)
	for _, p := range partials {
		if p > globMax {
			globMax = p
		}
	}
	return
}

// ReduceSumInt accumulates per-partition integer counts (clip counters).
func (ctx *DispatchContext) ReduceSumInt(f func(np, min, max int) int) (total int) {
	var (
		nPar     = ctx.PM.ParallelDegree
		partials = make([]int, nPar)
	)
	for np := 0; np < nPar; np++ {
		ctx.wg.Add(1)
		go func(np int) {
			min, max := ctx.PM.GetBucketRange(np)
			partials[np] = f(np, min, max)
			ctx.wg.Done()
		}(np)
	}
	ctx.wg.Wait()
	for _, p := range partials {
		total += p
	}
	return
}
