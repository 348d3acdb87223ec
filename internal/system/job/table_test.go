// Released under an MIT license. See LICENSE.

package job

import "testing"

func TestAddAllocatesLowestFreeID(t *testing.T) {
	tbl := newTable()

	j1 := tbl.add(101, "sleep 100 &", true)
	j2 := tbl.add(102, "sleep 200 &", true)
	j3 := tbl.add(103, "sleep 300 &", true)

	for i, j := range []*T{j1, j2, j3} {
		if j.ID != i+1 {
			t.Errorf("job %d: expected id %d, got %d", i, i+1, j.ID)
		}

		if j.State != Running {
			t.Errorf("job %d: expected Running, got %v", i, j.State)
		}
	}

	tbl.remove(j2.ID)

	if got := tbl.add(104, "sleep 400 &", true).ID; got != 2 {
		t.Errorf("expected freed id 2 to be reused, got %d", got)
	}

	if got := tbl.add(105, "sleep 500 &", true).ID; got != 4 {
		t.Errorf("expected id 4, got %d", got)
	}
}

func TestListOrderedAndIdempotent(t *testing.T) {
	tbl := newTable()

	tbl.add(101, "a", false)
	tbl.add(102, "b", false)
	tbl.add(103, "c", false)
	tbl.remove(1)
	tbl.add(104, "d", false)

	expected := []string{"d", "b", "c"}

	for n := 0; n < 3; n++ {
		js := tbl.list()
		if len(js) != len(expected) {
			t.Fatalf("expected %d jobs, got %d", len(expected), len(js))
		}

		for i, j := range js {
			if j.ID != i+1 {
				t.Errorf("position %d: expected id %d, got %d", i, i+1, j.ID)
			}

			if j.Line != expected[i] {
				t.Errorf("position %d: expected %q, got %q", i, expected[i], j.Line)
			}
		}
	}
}

func TestMostRecent(t *testing.T) {
	tbl := newTable()

	if tbl.mostRecent() != nil {
		t.Error("empty table should have no current job")
	}

	tbl.add(101, "a", false)
	j2 := tbl.add(102, "b", false)

	j2.State = Stopped

	if j := tbl.mostRecent(); j != j2 {
		t.Errorf("expected job 2 to be current, got %+v", j)
	}

	tbl.remove(j2.ID)

	if j := tbl.mostRecent(); j == nil || j.ID != 1 {
		t.Errorf("expected job 1 to be current, got %+v", j)
	}
}

func TestLookups(t *testing.T) {
	tbl := newTable()

	j := tbl.add(101, "a", false)
	tbl.adopt(j, 101)

	if tbl.byID(1) != j || tbl.byGroup(101) != j || tbl.byPid(101) != j {
		t.Error("expected every lookup to find the job")
	}

	if tbl.byID(2) != nil {
		t.Error("unknown id should find nothing")
	}

	if tbl.byGroup(999) != nil {
		t.Error("unknown group should find nothing")
	}

	if tbl.byPid(999) != nil {
		t.Error("unknown pid should find nothing")
	}

	tbl.remove(j.ID)

	if tbl.byPid(101) != nil {
		t.Error("remove should forget the job's pids")
	}
}

func TestMarker(t *testing.T) {
	tbl := newTable()

	j1 := tbl.add(101, "a", false)
	j2 := tbl.add(102, "b", false)
	j3 := tbl.add(103, "c", false)

	if m := tbl.marker(j3); m != '+' {
		t.Errorf("expected '+' for current job, got %q", m)
	}

	if m := tbl.marker(j2); m != '-' {
		t.Errorf("expected '-' for previous job, got %q", m)
	}

	if m := tbl.marker(j1); m != ' ' {
		t.Errorf("expected ' ' for job 1, got %q", m)
	}

	// A Done job being reported keeps its mark until removed.
	j3.State = Done

	if m := tbl.marker(j3); m != '+' {
		t.Errorf("expected '+' for done job being reported, got %q", m)
	}
}
