package resolver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sksahoo1435/scintillate-project/internal/swapi"
)

const (
	timeoutForTest = time.Second
	tick           = 5 * time.Millisecond
)

type fakeGateway struct {
	mu sync.Mutex

	entries    map[string]swapi.Entry
	entryErrs  map[string]error
	entryGates map[string]chan struct{}

	filmErrs   map[string]error
	filmGates  map[string]chan struct{}
	filmCalls  []string
	entryCalls []string
	canceled   int
}

func (f *fakeGateway) FetchEntry(_ context.Context, id string) (swapi.Entry, error) {
	f.mu.Lock()
	f.entryCalls = append(f.entryCalls, id)
	gate := f.entryGates[id]
	err := f.entryErrs[id]
	entry := f.entries[id]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return swapi.Entry{}, err
	}
	return entry, nil
}

func (f *fakeGateway) FetchDependent(ctx context.Context, url string) (swapi.Film, error) {
	f.mu.Lock()
	f.filmCalls = append(f.filmCalls, url)
	gate := f.filmGates[url]
	err := f.filmErrs[url]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			f.mu.Lock()
			f.canceled++
			f.mu.Unlock()
			return swapi.Film{}, ctx.Err()
		}
	}
	if err != nil {
		return swapi.Film{}, err
	}
	return swapi.Film{Title: "title of " + url, URL: url}, nil
}

func (f *fakeGateway) counts() (entries, films, canceled int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entryCalls), len(f.filmCalls), f.canceled
}

func filmURL(n string) string { return "https://swapi.dev/api/films/" + n + "/" }

func TestResolve_NoReferencesSkipsDependentFetches(t *testing.T) {
	gw := &fakeGateway{entries: map[string]swapi.Entry{
		"7": {Name: "Beru Whitesun lars", URL: "https://swapi.dev/api/people/7/"},
	}}
	r := New(gw)

	snap, err := r.Resolve(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, Resolved, snap.Status)
	require.NotNil(t, snap.Entry)
	assert.Equal(t, "Beru Whitesun lars", snap.Entry.Name)
	assert.NotNil(t, snap.Films)
	assert.Empty(t, snap.Films)

	_, films, _ := gw.counts()
	assert.Zero(t, films)
	assert.Equal(t, snap, r.Snapshot())
}

func TestResolve_FilmsFollowReferenceOrder(t *testing.T) {
	refs := []string{filmURL("1"), filmURL("2"), filmURL("3")}
	gates := map[string]chan struct{}{}
	for _, ref := range refs {
		gates[ref] = make(chan struct{})
	}
	gw := &fakeGateway{
		entries:   map[string]swapi.Entry{"1": {Name: "Luke Skywalker", Films: refs}},
		filmGates: gates,
	}
	r := New(gw)

	done := make(chan Snapshot, 1)
	go func() {
		snap, err := r.Resolve(context.Background(), "1")
		assert.NoError(t, err)
		done <- snap
	}()

	require.Eventually(t, func() bool {
		_, films, _ := gw.counts()
		return films == 3
	}, timeoutForTest, tick)
	assert.Equal(t, Loading, r.Snapshot().Status)

	// complete in reverse
	for i := len(refs) - 1; i >= 0; i-- {
		close(gates[refs[i]])
	}

	snap := <-done
	require.Equal(t, Resolved, snap.Status)
	require.Len(t, snap.Films, 3)
	for i, ref := range refs {
		assert.Equal(t, ref, snap.Films[i].URL)
	}
}

func TestResolve_EntryFailureKeepsNoPartialEntry(t *testing.T) {
	boom := errors.New("not reachable")
	gw := &fakeGateway{entryErrs: map[string]error{"3": boom}}
	r := New(gw)

	snap, err := r.Resolve(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, Failed, snap.Status)
	assert.Nil(t, snap.Entry)
	assert.Nil(t, snap.Films)
	assert.ErrorIs(t, snap.Err, boom)
	assert.Equal(t, "not reachable", snap.Message())
}

func TestResolve_OneFailingReferenceFailsWholeAttempt(t *testing.T) {
	refs := []string{filmURL("1"), filmURL("2"), filmURL("3")}
	boom := errors.New("film 2 broke")
	gw := &fakeGateway{
		entries:  map[string]swapi.Entry{"1": {Name: "Luke Skywalker", Films: refs}},
		filmErrs: map[string]error{refs[1]: boom},
		filmGates: map[string]chan struct{}{
			refs[0]: make(chan struct{}),
			refs[2]: make(chan struct{}),
		},
	}
	r := New(gw)

	snap, err := r.Resolve(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, Failed, snap.Status)
	assert.ErrorIs(t, snap.Err, boom)
	assert.Nil(t, snap.Films, "no film may be exposed after a failure")

	_, _, canceled := gw.counts()
	assert.Equal(t, 2, canceled, "siblings are cancelled on first failure")
}

func TestResolve_NewerAttemptSupersedesOlder(t *testing.T) {
	gateA := make(chan struct{})
	gw := &fakeGateway{
		entries: map[string]swapi.Entry{
			"A": {Name: "Entry A"},
			"B": {Name: "Entry B"},
		},
		entryGates: map[string]chan struct{}{"A": gateA},
	}
	r := New(gw)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := r.Resolve(ctx, "A")
		done <- err
	}()
	require.Eventually(t, func() bool {
		entries, _, _ := gw.counts()
		return entries == 1
	}, timeoutForTest, tick)

	snapB, err := r.Resolve(ctx, "B")
	require.NoError(t, err)
	require.Equal(t, Resolved, snapB.Status)

	close(gateA)
	assert.ErrorIs(t, <-done, ErrSuperseded)

	final := r.Snapshot()
	assert.Equal(t, "B", final.ID)
	assert.Equal(t, Resolved, final.Status)
	require.NotNil(t, final.Entry)
	assert.Equal(t, "Entry B", final.Entry.Name)
}

func TestResolve_SupersededAttemptIsCancelled(t *testing.T) {
	ref := filmURL("1")
	gw := &fakeGateway{
		entries: map[string]swapi.Entry{
			"A": {Name: "Entry A", Films: []string{ref}},
			"B": {Name: "Entry B"},
		},
		filmGates: map[string]chan struct{}{ref: make(chan struct{})},
	}
	r := New(gw)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := r.Resolve(ctx, "A")
		done <- err
	}()
	require.Eventually(t, func() bool {
		_, films, _ := gw.counts()
		return films == 1
	}, timeoutForTest, tick)

	_, err := r.Resolve(ctx, "B")
	require.NoError(t, err)

	assert.ErrorIs(t, <-done, ErrSuperseded)
	_, _, canceled := gw.counts()
	assert.Equal(t, 1, canceled)
	assert.Equal(t, "B", r.Snapshot().ID)
}

func TestReset_ReturnsToIdleAndDropsInflight(t *testing.T) {
	gate := make(chan struct{})
	gw := &fakeGateway{
		entries:    map[string]swapi.Entry{"A": {Name: "Entry A"}},
		entryGates: map[string]chan struct{}{"A": gate},
	}
	r := New(gw)

	done := make(chan error, 1)
	go func() {
		_, err := r.Resolve(context.Background(), "A")
		done <- err
	}()
	require.Eventually(t, func() bool { return r.Snapshot().Status == Loading }, timeoutForTest, tick)

	r.Reset()
	close(gate)

	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Equal(t, Idle, r.Snapshot().Status)
	assert.Nil(t, r.Snapshot().Entry)
}

func TestResolve_FanOutLimitStillResolvesAll(t *testing.T) {
	refs := []string{filmURL("1"), filmURL("2"), filmURL("3"), filmURL("4")}
	gw := &fakeGateway{entries: map[string]swapi.Entry{"1": {Name: "Luke Skywalker", Films: refs}}}
	r := New(gw, WithFanOutLimit(2))

	snap, err := r.Resolve(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, snap.Films, 4)
	assert.Equal(t, refs[3], snap.Films[3].URL)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "resolved", Resolved.String())
	assert.Equal(t, "failed", Failed.String())
}
