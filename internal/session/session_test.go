package session

import (
	"slices"
	"testing"

	"github.com/llehouerou/qss/internal/sequence"
)

func testSequence(n int) *sequence.Sequence {
	paths := make([]string, n)
	for i := range paths {
		paths[i] = "/images/img" + string(rune('a'+i)) + ".jpg"
	}
	return sequence.New(paths)
}

func TestSession_AdvanceSaturates(t *testing.T) {
	s := New(testSequence(3), Options{})

	tests := []struct {
		name string
		want int
	}{
		{"first advance", 1},
		{"second advance", 2},
		{"saturates at last", 2},
		{"stays saturated", 2},
	}
	for _, tt := range tests {
		got, err := s.Advance()
		if err != nil {
			t.Fatalf("%s: Advance() error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: Advance() = %d, want %d", tt.name, got, tt.want)
		}
	}
	if s.RepeatCount() != 0 {
		t.Errorf("RepeatCount() = %d, want 0 without repeat", s.RepeatCount())
	}
}

func TestSession_AdvanceWrapsWithRepeat(t *testing.T) {
	s := New(testSequence(3), Options{Repeat: true})

	for range 2 {
		if _, err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.Advance()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("Advance() past end = %d, want 0", got)
	}
	if s.RepeatCount() != 1 {
		t.Errorf("RepeatCount() = %d, want 1 after a full cycle", s.RepeatCount())
	}
}

func TestSession_RetreatSaturatesAtZero(t *testing.T) {
	s := New(testSequence(3), Options{})

	got, err := s.Retreat()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("Retreat() at start = %d, want 0", got)
	}
}

func TestSession_RetreatWrapsWithoutCountingCycle(t *testing.T) {
	s := New(testSequence(3), Options{Repeat: true})

	got, err := s.Retreat()
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("Retreat() at start = %d, want 2", got)
	}
	// Backward wrap is navigation, not a completed cycle.
	if s.RepeatCount() != 0 {
		t.Errorf("RepeatCount() = %d, want 0 after backward wrap", s.RepeatCount())
	}
}

func TestSession_EmptySequence(t *testing.T) {
	s := New(testSequence(0), Options{})

	if _, err := s.Advance(); err != ErrNoItems {
		t.Errorf("Advance() error = %v, want ErrNoItems", err)
	}
	if _, err := s.Retreat(); err != ErrNoItems {
		t.Errorf("Retreat() error = %v, want ErrNoItems", err)
	}
	if _, ok := s.CurrentPath(); ok {
		t.Error("CurrentPath() on empty sequence should report false")
	}
}

func TestSession_SpeedClamps(t *testing.T) {
	s := New(testSequence(1), Options{Speed: 59.5})

	if got := s.IncreaseSpeed(); got != MaxSpeed {
		t.Errorf("IncreaseSpeed() = %v, want clamp at %v", got, MaxSpeed)
	}
	if got := s.IncreaseSpeed(); got != MaxSpeed {
		t.Errorf("IncreaseSpeed() at max = %v, want %v", got, MaxSpeed)
	}

	s2 := New(testSequence(1), Options{Speed: 1.2})
	if got := s2.DecreaseSpeed(); got != MinSpeed {
		t.Errorf("DecreaseSpeed() = %v, want clamp at %v", got, MinSpeed)
	}
}

func TestSession_SpeedClampedAtCreation(t *testing.T) {
	tests := []struct {
		speed float64
		want  float64
	}{
		{0, MinSpeed},
		{0.1, MinSpeed},
		{3, 3},
		{120, MaxSpeed},
	}
	for _, tt := range tests {
		s := New(testSequence(1), Options{Speed: tt.speed})
		if got := s.Speed(); got != tt.want {
			t.Errorf("New(speed=%v).Speed() = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestSession_ToggleShuffleKeepsCurrentItem(t *testing.T) {
	s := New(testSequence(20), Options{})
	for range 7 {
		_, _ = s.Advance()
	}
	pathBefore, _ := s.CurrentPath()

	on, _ := s.ToggleShuffle()
	if !on {
		t.Fatal("expected shuffle on")
	}
	pathAfter, _ := s.CurrentPath()
	if pathAfter != pathBefore {
		t.Errorf("current item changed across shuffle on: %q -> %q", pathBefore, pathAfter)
	}

	// The order must still be a permutation of all real indices.
	order := s.Order()
	sorted := slices.Clone(order)
	slices.Sort(sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("order is not a permutation: %v", order)
		}
	}
}

func TestSession_ToggleShuffleOffRestoresIdentity(t *testing.T) {
	s := New(testSequence(10), Options{Shuffle: true})
	for range 3 {
		_, _ = s.Advance()
	}
	real, _ := s.RealIndex()

	on, idx := s.ToggleShuffle()
	if on {
		t.Fatal("expected shuffle off")
	}
	if idx != real {
		t.Errorf("current index = %d, want real index %d after shuffle off", idx, real)
	}
	order := s.Order()
	for i, v := range order {
		if v != i {
			t.Fatalf("order not identity after shuffle off: %v", order)
		}
	}
	pathNow, _ := s.CurrentPath()
	if want := testSequence(10).Path(real); pathNow != want {
		t.Errorf("CurrentPath() = %q, want %q", pathNow, want)
	}
}

func TestSession_RemoveAndRestore(t *testing.T) {
	s := New(testSequence(3), Options{})
	_, _ = s.Advance() // index 1

	rem, err := s.RemoveCurrent()
	if err != nil {
		t.Fatal(err)
	}
	if rem.Real != 1 || rem.Pos != 1 {
		t.Errorf("Removed = %+v, want Real=1 Pos=1", rem)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	s.Restore(rem)
	if s.Len() != 3 {
		t.Errorf("Len() = %d after restore, want 3", s.Len())
	}
	if got := s.CurrentIndex(); got != 1 {
		t.Errorf("CurrentIndex() = %d after restore, want 1", got)
	}
	order := s.Order()
	if !slices.Equal(order, []int{0, 1, 2}) {
		t.Errorf("order = %v after restore, want [0 1 2]", order)
	}
}

func TestSession_RemoveLastClampsIndex(t *testing.T) {
	s := New(testSequence(2), Options{})
	_, _ = s.Advance() // at last item

	if _, err := s.RemoveCurrent(); err != nil {
		t.Fatal(err)
	}
	if got := s.CurrentIndex(); got != 0 {
		t.Errorf("CurrentIndex() = %d after removing last item, want 0", got)
	}
}

func TestSession_Toggles(t *testing.T) {
	s := New(testSequence(1), Options{})

	if !s.TogglePause() || s.TogglePause() {
		t.Error("TogglePause should flip true then false")
	}
	if !s.ToggleRepeat() || s.ToggleRepeat() {
		t.Error("ToggleRepeat should flip true then false")
	}
	if !s.ToggleAlwaysOnTop() || s.ToggleAlwaysOnTop() {
		t.Error("ToggleAlwaysOnTop should flip true then false")
	}
}

func TestSession_Snapshot(t *testing.T) {
	s := New(testSequence(5), Options{Speed: 4, Repeat: true, Paused: true})
	_, _ = s.Advance()

	st := s.Snapshot()
	if st.CurrentIndex != 1 || st.TotalItems != 5 {
		t.Errorf("Snapshot position = %d/%d, want 1/5", st.CurrentIndex, st.TotalItems)
	}
	if !st.Paused || !st.Repeat || st.Shuffle {
		t.Errorf("Snapshot flags = %+v", st)
	}
	if st.Speed != 4 {
		t.Errorf("Snapshot speed = %v, want 4", st.Speed)
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	m := NewManager(testSequence(5), Options{Speed: 3})

	a := m.GetOrCreate("a")
	b := m.GetOrCreate("b")

	for range 3 {
		_, _ = a.Advance()
	}
	a.TogglePause()

	if got := b.CurrentIndex(); got != 0 {
		t.Errorf("session b index = %d, want 0 after advancing a", got)
	}
	if b.Paused() {
		t.Error("session b paused after pausing a")
	}
	if got := m.Len(); got != 2 {
		t.Errorf("Manager.Len() = %d, want 2", got)
	}
}

func TestManager_GetOrCreateReturnsSame(t *testing.T) {
	m := NewManager(testSequence(2), Options{})

	a1 := m.GetOrCreate("a")
	a2 := m.GetOrCreate("a")
	if a1 != a2 {
		t.Error("GetOrCreate should return the existing session")
	}

	m.Remove("a")
	if _, ok := m.Get("a"); ok {
		t.Error("session survived Remove")
	}
}

func TestSession_RemovalIsPerSession(t *testing.T) {
	m := NewManager(testSequence(4), Options{})
	a := m.GetOrCreate("a")
	b := m.GetOrCreate("b")

	if _, err := a.RemoveCurrent(); err != nil {
		t.Fatal(err)
	}
	if a.Len() != 3 {
		t.Errorf("a.Len() = %d, want 3", a.Len())
	}
	if b.Len() != 4 {
		t.Errorf("b.Len() = %d, want 4: removal leaked across sessions", b.Len())
	}
	if m.Sequence().Len() != 4 {
		t.Error("shared sequence mutated by session removal")
	}
}
