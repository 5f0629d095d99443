package annotate

import "go.uber.org/zap"

// unit is one deferred piece of attribution work.
type unit struct {
	desc string
	run  func()
}

// workQueue is a FIFO queue of deferred work.
type workQueue []unit

func (q *workQueue) add(u unit) {
	*q = append(*q, u)
}

func (q *workQueue) nonEmpty() bool {
	return len(*q) > 0
}

func (q *workQueue) next() unit {
	u := (*q)[0]
	*q = (*q)[1:]
	return u
}

// Block delays all annotation processing until a matching Unblock.
// Blocks nest; work queued while blocked runs only when the outermost
// block is released.
func (a *Annotator) Block() {
	a.blockCount++
}

// Unblock releases one level of blocking and flushes the queues if
// annotation processing is no longer blocked.
func (a *Annotator) Unblock() {
	a.blockCount--
	if a.blockCount == 0 {
		a.Flush()
	}
}

// UnblockNoFlush releases one level of blocking without flushing. The
// caller takes responsibility for a later Flush.
func (a *Annotator) UnblockNoFlush() {
	a.blockCount--
}

// Blocked reports whether annotation processing is currently delayed.
func (a *Annotator) Blocked() bool {
	return a.blockCount > 0
}

// Normal queues a unit of ordinary annotation attribution work.
func (a *Annotator) Normal(desc string, run func()) {
	a.q.add(unit{desc, run})
}

// TypeAnnotation queues a unit of type-annotation work, run after all
// normal work.
func (a *Annotator) TypeAnnotation(desc string, run func()) {
	a.typesQ.add(unit{desc, run})
}

// AfterTypes queues work to run after all type-annotation work.
func (a *Annotator) AfterTypes(desc string, run func()) {
	a.afterTypes.add(unit{desc, run})
}

// Validate queues validation work, run last of all.
func (a *Annotator) Validate(desc string, run func()) {
	a.validateQ.add(unit{desc, run})
}

// Flush drains all queued work in phase order: normal, type annotations,
// after-types, validation. Work queued by a running unit lands on the same
// queues and is drained in the same pass. Flush is a no-op while blocked or
// while a flush is already in progress.
func (a *Annotator) Flush() {
	if a.Blocked() {
		return
	}
	if a.flushing() {
		return
	}

	a.startFlushing()
	defer a.doneFlushing()

	for a.q.nonEmpty() {
		a.runUnit(a.q.next())
	}
	for a.typesQ.nonEmpty() {
		a.runUnit(a.typesQ.next())
	}
	for a.afterTypes.nonEmpty() {
		a.runUnit(a.afterTypes.next())
	}
	for a.validateQ.nonEmpty() {
		a.runUnit(a.validateQ.next())
	}
}

func (a *Annotator) runUnit(u unit) {
	a.logger.Debug("running deferred annotation work", zap.String("unit", u.desc))
	u.run()
}

func (a *Annotator) flushing() bool { return a.flushCount > 0 }
func (a *Annotator) startFlushing() { a.flushCount++ }
func (a *Annotator) doneFlushing()  { a.flushCount-- }
