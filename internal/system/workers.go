package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// memoryShare is the part of available memory the frame buffers of one batch
// may take.
const memoryShare = 0.5

// DefaultWorkers sizes the render pool: one worker per logical CPU, fewer if
// a batch of frames of frameBytes each would not fit in memory.
func DefaultWorkers(frameBytes int) int {
	workers, err := cpu.Counts(true)
	if err != nil || workers <= 0 {
		workers = runtime.NumCPU()
	}

	if vm, err := mem.VirtualMemory(); err == nil && frameBytes > 0 {
		workers = capByMemory(workers, vm.Available, frameBytes)
	}
	return workers
}

// capByMemory limits workers so that workers*batchPerWorker frames fit in
// memoryShare of available bytes. At least one worker is kept.
func capByMemory(workers int, available uint64, frameBytes int) int {
	budget := uint64(float64(available) * memoryShare)
	perWorker := uint64(frameBytes) * BatchPerWorker
	if perWorker == 0 {
		return workers
	}
	if limit := int(budget / perWorker); limit < workers {
		workers = limit
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// BatchPerWorker is how many frames each worker renders per batch.
const BatchPerWorker = 4
