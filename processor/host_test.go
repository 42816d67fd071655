package processor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu       sync.Mutex
	notes    []string
	warnings []string
}

func (r *recorder) Note(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, fmt.Sprintf(format, args...))
}

func (r *recorder) Warning(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

type fakeProcessor struct {
	types   []string
	version SourceVersion
	opts    []string
	claim   bool

	inits   int
	env     Environment
	offered []NameSet
}

func (p *fakeProcessor) Init(env Environment) {
	p.inits++
	p.env = env
}

func (p *fakeProcessor) SupportedAnnotationTypes() NameSet { return NewNameSet(p.types...) }
func (p *fakeProcessor) SupportedOptions() []string        { return p.opts }

func (p *fakeProcessor) SupportedSourceVersion() SourceVersion {
	if p.version == "" {
		return LatestSourceVersion()
	}
	return p.version
}

func (p *fakeProcessor) Process(annotations NameSet, _ *Round) bool {
	p.offered = append(p.offered, annotations)
	return p.claim
}

func reg(name string, p *fakeProcessor) Registration {
	return Registration{Name: name, New: func() Processor { return p }}
}

func round(names ...string) *Round {
	r := &Round{PkgPath: "example.com/p", GoVersion: "go1.21"}
	for _, n := range names {
		r.Occurrences = append(r.Occurrences, Occurrence{Name: n, Raw: n})
	}
	return r
}

func TestHostClaimsOfferedNames(t *testing.T) {
	p := &fakeProcessor{types: []string{"a.A", "b.B"}, claim: true}
	h := NewHost([]Registration{reg("p", p)}, nil, &recorder{})

	res := h.Process(round("a.A", "c.C", "a.A"))

	require.Len(t, p.offered, 1)
	assert.Equal(t, []string{"a.A"}, p.offered[0].Names())
	assert.Equal(t, []string{"a.A", "c.C"}, res.Present.Names())
	assert.Equal(t, map[string]string{"a.A": "p"}, res.Claimed)
	assert.Equal(t, []string{"c.C"}, res.Unclaimed.Names())
}

func TestHostDeclinedNamesStayUnclaimed(t *testing.T) {
	p := &fakeProcessor{types: []string{"a.A"}, claim: false}
	h := NewHost([]Registration{reg("p", p)}, nil, &recorder{})

	res := h.Process(round("a.A"))

	assert.Len(t, p.offered, 1)
	assert.Empty(t, res.Claimed)
	assert.Equal(t, []string{"a.A"}, res.Unclaimed.Names())
}

func TestHostSkipsProcessorWithoutMatches(t *testing.T) {
	p := &fakeProcessor{types: []string{"a.A"}, claim: true}
	h := NewHost([]Registration{reg("p", p)}, nil, &recorder{})

	h.Process(round("b.B"))
	h.Process(round())

	assert.Empty(t, p.offered)
}

func TestHostClaimedNamesNotOfferedAgain(t *testing.T) {
	first := &fakeProcessor{types: []string{"a.*"}, claim: true}
	second := &fakeProcessor{types: []string{"*"}, claim: false}
	h := NewHost([]Registration{reg("first", first), reg("second", second)}, nil, &recorder{})

	res := h.Process(round("a.A", "b.B"))

	require.Len(t, second.offered, 1)
	assert.Equal(t, []string{"b.B"}, second.offered[0].Names())
	assert.Equal(t, map[string]string{"a.A": "first"}, res.Claimed)
	assert.Equal(t, []string{"b.B"}, res.Unclaimed.Names())
}

func TestHostWildcardCalledForEmptyRound(t *testing.T) {
	p := &fakeProcessor{types: []string{"*"}, claim: true}
	h := NewHost([]Registration{reg("p", p)}, nil, &recorder{})

	res := h.Process(round())

	require.Len(t, p.offered, 1)
	assert.Equal(t, 0, p.offered[0].Len())
	assert.Equal(t, 0, res.Unclaimed.Len())
}

func TestHostPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"*", "any.Thing", true},
		{"example.com/anno.*", "example.com/anno.Cacheable", true},
		{"example.com/anno.*", "example.com/anno/sub.Cacheable", false},
		{"example.com/anno.*", "example.com/annotation.Cacheable", false},
		{"example.com/anno.Cacheable", "example.com/anno.Cacheable", true},
		{"example.com/anno.Cacheable", "example.com/anno.CacheableX", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			st := &procState{}
			NewHost(nil, nil, nil).compilePatterns(st, NewNameSet(tt.pattern))
			assert.Equal(t, tt.want, st.matches(tt.name))
		})
	}
}

func TestHostMalformedPattern(t *testing.T) {
	rec := &recorder{}
	p := &fakeProcessor{types: []string{"a.*.B", "c*"}, claim: true}
	h := NewHost([]Registration{reg("p", p)}, nil, rec)

	res := h.Process(round("a.X.B", "c", "cd"))

	assert.Empty(t, p.offered)
	assert.Equal(t, 3, res.Unclaimed.Len())
	assert.Len(t, rec.warnings, 2)
	assert.Contains(t, rec.warnings[0], "Malformed supported annotation type pattern")
}

func TestHostInitOnce(t *testing.T) {
	p := &fakeProcessor{types: []string{"a.A"}, claim: true}
	h := NewHost([]Registration{reg("p", p)}, map[string]string{"k": "v"}, &recorder{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Init()
		}()
	}
	wg.Wait()
	h.Process(round("a.A"))

	assert.Equal(t, 1, p.inits)
	assert.Equal(t, map[string]string{"k": "v"}, p.env.Options())
}

func TestHostOptionsAreCopied(t *testing.T) {
	opts := map[string]string{"k": "v"}
	p := &fakeProcessor{opts: []string{"k"}}
	h := NewHost([]Registration{reg("p", p)}, opts, &recorder{})
	opts["k"] = "changed"

	h.Init()
	got := p.env.Options()
	got["k"] = "mutated by processor"

	assert.Equal(t, "v", p.env.Options()["k"])
}

func TestHostUnrecognizedOptions(t *testing.T) {
	rec := &recorder{}
	p := &fakeProcessor{opts: []string{"known"}}
	h := NewHost([]Registration{reg("p", p)}, map[string]string{
		"known": "1",
		"zeta":  "2",
		"alpha": "3",
	}, rec)

	h.Init()

	assert.Equal(t, []string{
		"The following options were not recognized by any processor: '[alpha, zeta]'",
	}, rec.warnings)
}

func TestHostSourceVersionWarnsOnce(t *testing.T) {
	rec := &recorder{}
	p := &fakeProcessor{types: []string{"a.A"}, version: "go1.20", claim: true}
	h := NewHost([]Registration{reg("p", p)}, nil, rec)

	r := round("a.A")
	r.GoVersion = "go1.22"
	res := h.Process(r)
	h.Process(r)

	// still processed
	assert.Len(t, p.offered, 2)
	assert.Equal(t, 0, res.Unclaimed.Len())
	require.Len(t, rec.warnings, 1)
	assert.Equal(t, "Supported source version 'go1.20' from annotation processor 'p' less than package example.com/p language version 'go1.22'", rec.warnings[0])
}

func TestHostNilMessager(t *testing.T) {
	p := &fakeProcessor{types: []string{"a*"}}
	h := NewHost([]Registration{reg("p", p)}, map[string]string{"unknown": ""}, nil)

	assert.NotPanics(t, func() {
		h.Process(round("a.A"))
	})
}

// overlapProcessor records how many Process calls run at the same time.
type overlapProcessor struct {
	fakeProcessor

	running atomic.Int32
	maxSeen atomic.Int32
}

func (p *overlapProcessor) Process(NameSet, *Round) bool {
	n := p.running.Add(1)
	defer p.running.Add(-1)
	for {
		seen := p.maxSeen.Load()
		if n <= seen || p.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)
	return true
}

func TestHostRoundsAreSequential(t *testing.T) {
	p := &overlapProcessor{fakeProcessor: fakeProcessor{types: []string{"*"}}}
	h := NewHost([]Registration{{Name: "p", New: func() Processor { return p }}}, nil, &recorder{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Process(round("a.A"))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), p.maxSeen.Load())
}
