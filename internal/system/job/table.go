// Released under an MIT license. See LICENSE.

package job

import (
	"sort"

	"golang.org/x/sys/unix"
)

// table is the authoritative record of tracked jobs. It is a pure data
// structure and does no I/O. The monitor goroutine is its only user; that
// gives every read-modify-write sequence mutual exclusion with child
// state-change notifications, which arrive on the same select loop.
type table struct {
	jobs map[int]*T
	pids map[int]*T
}

// transition is the job-level effect of one wait4 report.
type transition int

const (
	transitionNone transition = iota
	transitionStopped
	transitionContinued
	transitionDone
)

func newTable() *table {
	return &table{jobs: map[int]*T{}, pids: map[int]*T{}}
}

// add inserts a new Running job, allocating the lowest unused job id so
// numbering stays compact as jobs come and go.
func (t *table) add(group int, line string, background bool) *T {
	id := 1
	for t.jobs[id] != nil {
		id++
	}

	j := &T{
		ID:         id,
		Group:      group,
		Line:       line,
		State:      Running,
		Background: background,
		procs:      map[int]bool{},
	}

	t.jobs[id] = j

	return j
}

// adopt records pid as one of j's processes.
func (t *table) adopt(j *T, pid int) {
	j.procs[pid] = false
	t.pids[pid] = j
}

// apply folds one wait4 report into the table and returns the affected
// job, if any, with the transition the report caused. A pid with no
// matching job is dropped without complaint; the report may be for a
// process reaped and forgotten in an earlier pass.
func (t *table) apply(pid int, status unix.WaitStatus) (*T, transition) {
	j := t.pids[pid]
	if j == nil {
		return nil, transitionNone
	}

	switch {
	case status.Stopped():
		j.procs[pid] = true

		if j.State != Stopped && j.allStopped() {
			j.State = Stopped

			return j, transitionStopped
		}

	case status.Continued():
		j.procs[pid] = false

		if j.State == Stopped {
			j.State = Running

			return j, transitionContinued
		}

	case status.Exited(), status.Signaled():
		delete(j.procs, pid)
		delete(t.pids, pid)

		j.status = status

		if len(j.procs) == 0 {
			j.State = Done

			return j, transitionDone
		}
	}

	return j, transitionNone
}

func (t *table) byGroup(group int) *T {
	for _, j := range t.jobs {
		if j.Group == group {
			return j
		}
	}

	return nil
}

func (t *table) byID(id int) *T {
	return t.jobs[id]
}

func (t *table) byPid(pid int) *T {
	return t.pids[pid]
}

// list returns all tracked jobs ordered by job id.
func (t *table) list() []*T {
	ids := make([]int, 0, len(t.jobs))
	for id := range t.jobs {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	js := make([]*T, 0, len(ids))
	for _, id := range ids {
		js = append(js, t.jobs[id])
	}

	return js
}

// marker returns the jobs-listing mark for j: '+' for the current job,
// '-' for the previous one, a space otherwise. A Done job being reported
// keeps the mark it held while it was still eligible.
func (t *table) marker(j *T) byte {
	first, second := 0, 0

	consider := func(id int) {
		switch {
		case id > first:
			first, second = id, first
		case id > second:
			second = id
		}
	}

	for _, o := range t.jobs {
		if o == j || o.State == Done {
			continue
		}

		consider(o.ID)
	}

	consider(j.ID)

	switch j.ID {
	case first:
		return '+'
	case second:
		return '-'
	}

	return ' '
}

// mostRecent returns the current job: the highest-numbered job still
// Running or Stopped. fg and bg operate on it when given no argument.
func (t *table) mostRecent() *T {
	var r *T

	for _, j := range t.jobs {
		if j.State == Done {
			continue
		}

		if r == nil || j.ID > r.ID {
			r = j
		}
	}

	return r
}

// remove deletes the entry for id and forgets its pids.
func (t *table) remove(id int) {
	j := t.jobs[id]
	if j == nil {
		return
	}

	for pid := range j.procs {
		delete(t.pids, pid)
	}

	delete(t.jobs, id)
}
