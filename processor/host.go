package processor

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// RoundResult describes how the annotations of one round were handled.
type RoundResult struct {
	// Present holds every annotation name found in the round.
	Present NameSet
	// Claimed maps each claimed annotation name to the processor that
	// claimed it.
	Claimed map[string]string
	// Unclaimed holds the names no processor claimed.
	Unclaimed NameSet
}

// Host drives a set of processors through their lifecycle. Processors are
// created and initialized lazily, exactly once, on the first round. Process
// may be called from several goroutines; rounds are still delivered to the
// processors one at a time.
type Host struct {
	regs     []Registration
	options  map[string]string
	messager Messager

	once  sync.Once
	procs []*procState

	mu sync.Mutex // serializes rounds
}

type procState struct {
	name     string
	proc     Processor
	version  SourceVersion
	matchAll bool
	exact    NameSet
	prefixes []string

	versionWarned bool
}

// NewHost returns a host for the given processors and option map.
func NewHost(regs []Registration, options map[string]string, m Messager) *Host {
	if m == nil {
		m = discard{}
	}
	return &Host{
		regs:     regs,
		options:  maps.Clone(options),
		messager: m,
	}
}

// Init creates and initializes the processors if that has not happened yet.
// Process calls it implicitly.
func (h *Host) Init() {
	h.once.Do(h.init)
}

func (h *Host) init() {
	env := &environment{options: h.options, messager: h.messager}
	recognized := map[string]bool{}

	for _, reg := range h.regs {
		p := reg.New()
		p.Init(env)

		st := &procState{
			name:    reg.Name,
			proc:    p,
			version: p.SupportedSourceVersion(),
		}
		h.compilePatterns(st, p.SupportedAnnotationTypes())
		for _, opt := range p.SupportedOptions() {
			recognized[opt] = true
		}
		h.procs = append(h.procs, st)
	}

	var unknown []string
	for _, k := range slices.Sorted(maps.Keys(h.options)) {
		if !recognized[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		h.messager.Warning("The following options were not recognized by any processor: '[%s]'",
			strings.Join(unknown, ", "))
	}
}

// compilePatterns splits supported annotation type patterns into exact names
// and prefixes.
func (h *Host) compilePatterns(st *procState, patterns NameSet) {
	var exact []string
	for _, pat := range patterns.Names() {
		switch {
		case pat == "*":
			st.matchAll = true
		case strings.HasSuffix(pat, ".*") && !strings.Contains(strings.TrimSuffix(pat, ".*"), "*"):
			st.prefixes = append(st.prefixes, strings.TrimSuffix(pat, "*"))
		case strings.Contains(pat, "*"):
			h.messager.Warning("Malformed supported annotation type pattern '%s' from processor '%s'; ignoring",
				pat, st.name)
		default:
			exact = append(exact, pat)
		}
	}
	st.exact = NewNameSet(exact...)
}

func (st *procState) matches(name string) bool {
	if st.matchAll || st.exact.Contains(name) {
		return true
	}
	for _, prefix := range st.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Process runs one round. Each processor in turn is offered the still
// unclaimed names its patterns match; a processor that returns true claims
// the names it was offered. Concurrent calls wait for the running round to
// finish.
func (h *Host) Process(round *Round) *RoundResult {
	h.Init()

	h.mu.Lock()
	defer h.mu.Unlock()

	present := round.Names()
	result := &RoundResult{
		Present: present,
		Claimed: map[string]string{},
	}
	unmatched := present

	for _, st := range h.procs {
		var offered []string
		for _, name := range unmatched.Names() {
			if st.matches(name) {
				offered = append(offered, name)
			}
		}
		if len(offered) == 0 && !st.matchAll {
			continue
		}

		h.checkVersion(st, round)

		offeredSet := NewNameSet(offered...)
		if st.proc.Process(offeredSet, round) {
			for _, name := range offered {
				result.Claimed[name] = st.name
			}
			unmatched = unmatched.Minus(offeredSet)
		}
	}

	result.Unclaimed = unmatched
	return result
}

func (h *Host) checkVersion(st *procState, round *Round) {
	if st.version.Supports(round.GoVersion) {
		return
	}
	if !st.versionWarned {
		st.versionWarned = true
		h.messager.Warning("Supported source version '%s' from annotation processor '%s' less than package %s language version '%s'",
			st.version, st.name, round.PkgPath, round.GoVersion)
	}
}
