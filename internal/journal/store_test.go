package journal

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/moodlit/internal/models"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
	title string
	err   error
	panic bool
}

func (n *recordingNotifier) Notify(title, message string) error {
	n.mu.Lock()
	n.calls = append(n.calls, message)
	n.title = title
	n.mu.Unlock()
	if n.panic {
		panic("notifier exploded")
	}
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

type fixedRand int

func (f fixedRand) Intn(n int) int {
	return int(f) % n
}

func day(d int) models.Date {
	return models.NewDate(2024, time.January, d)
}

func TestAddAssignsIncreasingIDs(t *testing.T) {
	s := New()
	first := s.Add("one", day(1), models.MoodNormal)
	second := s.Add("two", day(2), models.MoodGood)
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}

	s.Delete(second.ID)
	third := s.Add("three", day(3), models.MoodGood)
	if third.ID != 3 {
		t.Errorf("id after delete = %d, want 3 (ids are never reused)", third.ID)
	}
}

func TestAddTrimsComment(t *testing.T) {
	s := New()
	e := s.Add("  walked the dog \n", day(1), models.MoodGood)
	if e.Comment != "walked the dog" {
		t.Errorf("comment = %q", e.Comment)
	}
	if got := s.Snapshot()[0].Comment; got != "walked the dog" {
		t.Errorf("stored comment = %q", got)
	}
}

func TestSnapshotOrderAndIsolation(t *testing.T) {
	s := New()
	s.Add("c", day(3), models.MoodBad)
	s.Add("a", day(1), models.MoodGood)
	s.Add("b", day(2), models.MoodNormal)

	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "a", "b"} {
		if snap[i].Comment != want {
			t.Errorf("snap[%d] = %q, want %q (insertion order)", i, snap[i].Comment, want)
		}
	}

	snap[0].Comment = "mutated"
	if s.Snapshot()[0].Comment != "c" {
		t.Error("mutating a snapshot changed the store")
	}
}

func TestDelete(t *testing.T) {
	s := New()
	a := s.Add("a", day(1), models.MoodGood)
	b := s.Add("b", day(2), models.MoodNormal)

	if !s.Delete(a.ID) {
		t.Fatal("expected delete of existing id to report true")
	}
	if s.Delete(a.ID) {
		t.Error("second delete of the same id should report false")
	}
	if s.Delete(999) {
		t.Error("delete of unknown id should report false")
	}

	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].ID != b.ID {
		t.Errorf("unexpected entries after delete: %+v", snap)
	}
}

func TestDeleteMissingDoesNotPublish(t *testing.T) {
	s := New()
	s.Add("a", day(1), models.MoodGood)

	var published int
	unsubscribe := s.Subscribe(func(models.Snapshot) { published++ })
	defer unsubscribe()

	s.Delete(42)
	if published != 1 {
		t.Errorf("published %d times, want only the initial delivery", published)
	}
}

func TestSubscribe(t *testing.T) {
	s := New()
	s.Add("existing", day(1), models.MoodNormal)

	var got []models.Snapshot
	unsubscribe := s.Subscribe(func(snap models.Snapshot) {
		got = append(got, snap)
	})

	if len(got) != 1 || len(got[0].Entries) != 1 {
		t.Fatalf("expected immediate delivery of current state, got %+v", got)
	}

	e := s.Add("new", day(2), models.MoodGood)
	s.Delete(e.ID)

	if len(got) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(got))
	}
	if len(got[1].Entries) != 2 || len(got[2].Entries) != 1 {
		t.Errorf("snapshots out of order: %d then %d entries", len(got[1].Entries), len(got[2].Entries))
	}
	if !(got[0].Version < got[1].Version && got[1].Version < got[2].Version) {
		t.Errorf("versions not increasing: %d %d %d", got[0].Version, got[1].Version, got[2].Version)
	}

	unsubscribe()
	unsubscribe()
	s.Add("after", day(3), models.MoodGood)
	if len(got) != 3 {
		t.Errorf("observer called after unsubscribe")
	}
}

func TestPanickingObserverDoesNotWedgeStore(t *testing.T) {
	s := New()
	calls := 0
	s.Subscribe(func(models.Snapshot) {
		calls++
		if calls == 2 {
			panic("observer exploded")
		}
	})
	var seen int
	s.Subscribe(func(snap models.Snapshot) {
		seen = len(snap.Entries)
	})

	first := s.Add("first", day(1), models.MoodGood)
	if seen != 1 {
		t.Errorf("later observer saw %d entries, want 1", seen)
	}

	done := make(chan models.MoodEntry, 1)
	go func() {
		done <- s.Add("second", day(2), models.MoodNormal)
	}()
	select {
	case second := <-done:
		if second.ID != first.ID+1 {
			t.Errorf("second id = %d, want %d", second.ID, first.ID+1)
		}
	case <-time.After(time.Second):
		t.Fatal("Add blocked after an observer panicked")
	}

	if !s.Delete(first.ID) || s.Len() != 1 {
		t.Errorf("store unusable after observer panic: %+v", s.Snapshot())
	}
}

func TestSubscribeObserversAreIsolated(t *testing.T) {
	s := New()
	s.Subscribe(func(snap models.Snapshot) {
		for i := range snap.Entries {
			snap.Entries[i].Comment = "scribbled"
		}
	})
	var seen string
	s.Subscribe(func(snap models.Snapshot) {
		if len(snap.Entries) > 0 {
			seen = snap.Entries[0].Comment
		}
	})

	s.Add("clean", day(1), models.MoodGood)
	if seen != "clean" {
		t.Errorf("second observer saw %q", seen)
	}
	if s.Snapshot()[0].Comment != "clean" {
		t.Error("observer mutation leaked into the store")
	}
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name     string
		snap     models.Snapshot
		wantNext int
	}{
		{
			name:     "empty",
			snap:     models.Snapshot{},
			wantNext: 1,
		},
		{
			name: "counter ahead of entries",
			snap: models.Snapshot{
				Entries: []models.MoodEntry{{ID: 2, Mood: models.MoodGood, Date: day(1)}},
				NextID:  10,
			},
			wantNext: 10,
		},
		{
			name: "counter behind entries",
			snap: models.Snapshot{
				Entries: []models.MoodEntry{
					{ID: 4, Mood: models.MoodGood, Date: day(1)},
					{ID: 7, Mood: models.MoodBad, Date: day(2)},
				},
				NextID: 3,
			},
			wantNext: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Restore(tt.snap)
			if got := s.State().NextID; got != tt.wantNext {
				t.Errorf("NextID = %d, want %d", got, tt.wantNext)
			}
			if got := s.Add("next", day(5), models.MoodGood).ID; got != tt.wantNext {
				t.Errorf("next id = %d, want %d", got, tt.wantNext)
			}
			if s.Len() != len(tt.snap.Entries)+1 {
				t.Errorf("Len = %d", s.Len())
			}
		})
	}
}

func TestBadMoodRequestsSupportOnce(t *testing.T) {
	quotes := []string{"first", "second", "third"}
	n := &recordingNotifier{}
	s := New(WithNotifier(n), WithQuotes(quotes), WithRand(fixedRand(1)), WithSupportTitle("Hang in there"))

	s.Add("fine", day(1), models.MoodNormal)
	s.Add("great", day(2), models.MoodGood)
	if n.count() != 0 {
		t.Fatalf("non-bad moods sent %d notifications", n.count())
	}

	s.Add("awful", day(3), models.MoodBad)
	if n.count() != 1 {
		t.Fatalf("bad mood sent %d notifications, want 1", n.count())
	}
	if n.calls[0] != "second" {
		t.Errorf("quote = %q, want %q", n.calls[0], "second")
	}
	if n.title != "Hang in there" {
		t.Errorf("title = %q", n.title)
	}
}

func TestQuotesAreCopied(t *testing.T) {
	quotes := []string{"original"}
	n := &recordingNotifier{}
	s := New(WithNotifier(n), WithQuotes(quotes), WithRand(fixedRand(0)))
	quotes[0] = "changed"

	s.Add("", day(1), models.MoodBad)
	if n.calls[0] != "original" {
		t.Errorf("quote = %q", n.calls[0])
	}
}

func TestNotifierFailureDoesNotAffectState(t *testing.T) {
	tests := []struct {
		name     string
		notifier *recordingNotifier
	}{
		{"error", &recordingNotifier{err: errors.New("tray unavailable")}},
		{"panic", &recordingNotifier{panic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithNotifier(tt.notifier), WithQuotes([]string{"q"}))
			e := s.Add("bad day", day(1), models.MoodBad)
			if e.ID != 1 {
				t.Errorf("id = %d", e.ID)
			}
			if s.Len() != 1 {
				t.Errorf("Len = %d, want 1", s.Len())
			}
			if tt.notifier.count() != 1 {
				t.Errorf("notify calls = %d", tt.notifier.count())
			}
		})
	}
}

func TestNoNotifierNoQuotes(t *testing.T) {
	s := New(WithQuotes(nil))
	s.Add("bad", day(1), models.MoodBad)

	n := &recordingNotifier{}
	s = New(WithNotifier(n), WithQuotes(nil))
	s.Add("bad", day(1), models.MoodBad)
	if n.count() != 0 {
		t.Errorf("notified with no quotes configured")
	}
}

func TestConcurrentAddsProduceUniqueIDs(t *testing.T) {
	n := &recordingNotifier{}
	s := New(WithNotifier(n), WithQuotes([]string{"a", "b"}))

	var versions []uint64
	var vmu sync.Mutex
	s.Subscribe(func(snap models.Snapshot) {
		vmu.Lock()
		versions = append(versions, snap.Version)
		vmu.Unlock()
	})

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	ids := make(chan int, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				mood := models.Moods[(w+i)%len(models.Moods)]
				ids <- s.Add("", day(1+i%28), mood).ID
				_ = s.Snapshot()
			}
		}(w)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != workers*perWorker || s.Len() != workers*perWorker {
		t.Errorf("got %d ids and %d entries", len(seen), s.Len())
	}

	for i := 1; i < len(versions); i++ {
		if versions[i] <= versions[i-1] {
			t.Fatalf("observer saw version %d after %d", versions[i], versions[i-1])
		}
	}
}
