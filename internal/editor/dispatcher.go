package editor

import "fmt"

// Dispatcher serializes command handling onto a single goroutine,
// making the "no two commands interleave" guarantee an explicit
// contract: the document model has exactly one writer.
type Dispatcher struct {
	session *Session
	ops     chan dispatchOp
	quit    chan struct{}
	done    chan struct{}
}

type dispatchOp struct {
	fn     func(*Session) error
	result chan error
}

func NewDispatcher(session *Session) *Dispatcher {
	d := &Dispatcher{
		session: session,
		ops:     make(chan dispatchOp),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go d.loop()
	return d
}

func (d *Dispatcher) loop() {
	defer close(d.done)
	for {
		select {
		case op := <-d.ops:
			op.result <- op.fn(d.session)
		case <-d.quit:
			return
		}
	}
}

// Do runs fn on the dispatcher goroutine and waits for its result.
// Calls never overlap; each observes the document state the previous
// one left behind.
func (d *Dispatcher) Do(fn func(*Session) error) error {
	op := dispatchOp{fn: fn, result: make(chan error, 1)}
	select {
	case d.ops <- op:
		return <-op.result
	case <-d.done:
		return fmt.Errorf("dispatcher closed")
	}
}

// Close stops the dispatcher after the in-flight operation finishes.
func (d *Dispatcher) Close() {
	select {
	case <-d.done:
		return
	default:
	}
	close(d.quit)
	<-d.done
}
