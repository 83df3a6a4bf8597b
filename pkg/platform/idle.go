// pkg/platform/idle.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

// IdleQueue holds deferred work that should run on the event loop between
// frames rather than in the middle of whatever triggered it; GL object
// construction is queued here so that adding an overlay never blocks on
// the GL context. There is no concurrency: tasks are queued and drained
// on the one event-loop goroutine, and a task must re-validate any state
// it depends on when it finally runs, since an earlier task (or a
// teardown that ran before the drain) may have invalidated it.
type IdleQueue struct {
	tasks []func()
}

// Schedule adds the given task to the queue; it will run during a
// subsequent Drain call.
func (q *IdleQueue) Schedule(task func()) {
	q.tasks = append(q.tasks, task)
}

// Drain runs all of the tasks that were queued when it was called. Tasks
// scheduled by a running task are held until the next Drain, so a task
// that reschedules itself cannot starve the loop.
func (q *IdleQueue) Drain() {
	tasks := q.tasks
	q.tasks = nil
	for _, task := range tasks {
		task()
	}
}

// Pending returns the number of queued tasks.
func (q *IdleQueue) Pending() int {
	return len(q.tasks)
}
