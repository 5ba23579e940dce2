// Implements the ReadyQueue used by round-robin: process IDs are enqueued on
// arrival and re-enqueued at the tail when their quantum expires.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a FIFO queue of process IDs.
type ReadyQueue struct {
	queue []int
}

// Enqueue adds a process ID to the back of the queue.
func (rq *ReadyQueue) Enqueue(id int) {
	rq.queue = append(rq.queue, id)
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range rq.queue {
		sb.WriteString(fmt.Sprint(id))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of queued processes.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Dequeue removes and returns the ID at the front of the queue.
// Returns NoProcess if the queue is empty.
func (rq *ReadyQueue) Dequeue() int {
	if len(rq.queue) == 0 {
		return NoProcess
	}
	id := rq.queue[0]
	rq.queue = rq.queue[1:]
	return id
}
