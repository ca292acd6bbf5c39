// Package coordinator implements the coordinator (C9): it owns the set of
// workers for one scenario run, starts and joins them, and tears the whole
// run down the moment any one of them fails (§4.9, §5, P9, P10, S6).
package coordinator

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bthci/hcitest"
	"github.com/bthci/hcitest/hci/cmd"
	"github.com/bthci/hcitest/hci/socket"
	"github.com/bthci/hcitest/hci/task"
	"github.com/bthci/hcitest/worker"
	"github.com/google/uuid"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

// bdAddrTimeout bounds the one-shot Read BD_ADDR task AddWorker issues
// before a newly opened socket is considered usable.
const bdAddrTimeout = 5 * time.Second

// OpenConn opens the raw transport for controller index devID. The linux
// build wires this to socket.Open; tests inject a func returning a
// socket.ScriptedConn instead.
type OpenConn func(devID int) (socket.Conn, error)

// Coordinator holds an ordered list of workers plus a name→worker index, a
// terminated-workers queue, and an error fan-in channel workers report
// failure on (§5 "multi-producer single-consumer" / "error fan-in").
type Coordinator struct {
	log      *logging.Logger
	openConn OpenConn

	mu          sync.Mutex
	workers     []*worker.Worker
	byName      map[string]*worker.Worker
	pendingMain map[*worker.Worker]worker.Main

	terminated chan string
	aborted    chan error
}

// New builds an empty Coordinator. log may be nil. openConn is injectable
// so tests never touch a real kernel socket (P9, P10, S6); pass nil to use
// socket.Open.
func New(log *logging.Logger, openConn OpenConn) *Coordinator {
	if openConn == nil {
		openConn = socket.Open
	}
	return &Coordinator{
		log:         log,
		openConn:    openConn,
		byName:      make(map[string]*worker.Worker),
		pendingMain: make(map[*worker.Worker]worker.Main),
		terminated:  make(chan string, 64),
		aborted:     make(chan error, 64),
	}
}

func (c *Coordinator) infof(format string, args ...interface{}) {
	if c.log != nil {
		c.log.Infof(format, args...)
	}
}

// AddWorker opens a socket on devID, reads the controller's BD_ADDR as a
// one-shot task, and registers a worker named name running fn (§4.9
// add_worker). name must be unique.
func (c *Coordinator) AddWorker(name string, devID int, fn worker.Main) error {
	c.mu.Lock()
	if _, exists := c.byName[name]; exists {
		c.mu.Unlock()
		return errors.Errorf("coordinator: worker %q already registered", name)
	}
	c.mu.Unlock()

	conn, err := c.openConn(devID)
	if err != nil {
		return errors.Wrapf(err, "coordinator: opening device %d for worker %q", devID, name)
	}
	sock := socket.New(conn, c.log)
	t := task.New(sock, c.log)

	cc, err := t.SendCmdWaitCompleteCheckStatus(&cmd.ReadBDAddr{}, bdAddrTimeout)
	if err != nil {
		sock.Close()
		return errors.Wrapf(err, "coordinator: reading BD_ADDR for worker %q", name)
	}
	rp := cc.ReturnParams.(*cmd.ReadBDAddrRP)

	w := worker.New(name, rp.BDAddr, t, c.log, c.terminated, c.aborted)

	c.mu.Lock()
	c.workers = append(c.workers, w)
	c.byName[name] = w
	c.pendingMain[w] = fn
	c.mu.Unlock()

	return nil
}

// AdoptForTest registers an already-built worker without opening a socket
// or a pending Main, bypassing AddWorker's transport/BD_ADDR handshake.
// Exported for scenario packages to test their CoordinatorMain against bare
// workers; production code builds workers exclusively through AddWorker/Load.
func (c *Coordinator) AdoptForTest(w *worker.Worker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workers = append(c.workers, w)
	c.byName[w.Name] = w
}

// Worker returns the registered worker named name, or nil.
func (c *Coordinator) Worker(name string) *worker.Worker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byName[name]
}

// Load builds one worker per entry of cfg.Worker/cfg.Device, looking up
// each worker_class in the worker package's type registry (§6: "worker" is
// an ordered list of (attribute_name, worker_class) pairs; "device" is an
// optional parallel list of controller indices).
func (c *Coordinator) Load(cfg *hcitest.Config) error {
	for i, spec := range cfg.Worker {
		fn, ok := worker.LookupType(spec.WorkerClass)
		if !ok {
			return errors.Errorf("coordinator: unregistered worker_class %q", spec.WorkerClass)
		}
		devID := i
		if i < len(cfg.Device) {
			devID = cfg.Device[i]
		}
		if err := c.AddWorker(spec.AttributeName, devID, fn); err != nil {
			return err
		}
	}
	return nil
}

// Main is a scenario's coordinator-side entry point: it orchestrates the
// run via worker.Send/RecvFromWorker/Signal/Wait on the Coordinator's
// registered workers, and returns the process exit code on success.
type Main func(ctx context.Context, c *Coordinator) int

// Run implements the five-step contract of §4.9:
//  1. start every worker
//  2. call main()
//  3. on interrupt (external Ctrl-C or a worker's failure), drain the
//     terminated queue, then terminate every remaining worker
//  4. join every worker
//  5. return main's int, or 1 on interrupt
func (c *Coordinator) Run(main Main) int {
	runID := uuid.New()
	c.infof("run %s: starting %d worker(s)", runID, len(c.workers))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var interrupted atomicBool

	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, os.Interrupt)
	defer signal.Stop(osSignal)

	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		select {
		case <-osSignal:
			c.infof("run %s: interrupted by signal", runID)
			interrupted.set()
			cancel()
		case err := <-c.aborted:
			c.infof("run %s: %v", runID, err)
			interrupted.set()
			cancel()
		case <-ctx.Done():
		}
	}()

	c.mu.Lock()
	pending := make(map[*worker.Worker]worker.Main, len(c.pendingMain))
	for w, fn := range c.pendingMain {
		pending[w] = fn
	}
	c.mu.Unlock()

	var wg sync.WaitGroup
	for w, fn := range pending {
		wg.Add(1)
		go func(w *worker.Worker, fn worker.Main) {
			defer wg.Done()
			w.RunMain(ctx, fn)
		}(w, fn)
	}

	rc := main(ctx, c)

	c.drainTerminated()
	cancel() // step 3's "terminate every remaining worker"
	wg.Wait() // step 4
	<-watchDone

	if interrupted.get() {
		return 1
	}
	return rc
}

func (c *Coordinator) drainTerminated() {
	for {
		select {
		case name := <-c.terminated:
			c.infof("worker %q terminated", name)
		default:
			return
		}
	}
}
