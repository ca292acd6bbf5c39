package coordinator

import "sync/atomic"

// atomicBool is the single interrupted flag Run sets from whichever
// goroutine (OS signal handler or abort watcher) notices trouble first.
type atomicBool struct {
	v int32
}

func (b *atomicBool) set()        { atomic.StoreInt32(&b.v, 1) }
func (b *atomicBool) get() bool   { return atomic.LoadInt32(&b.v) != 0 }
