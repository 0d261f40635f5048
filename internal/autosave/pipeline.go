// Package autosave implements the debounced autosave and ATS-analysis
// pipeline over a single resume document.
//
// The pipeline consumes whole-document snapshots, one per edit. Each snapshot
// restarts two independent debounce timers: a save timer that persists the
// trailing snapshot after a quiet period, and an analysis timer that re-scores
// the document against its target job description. Collaborator failures are
// reported through Notify and never corrupt in-memory state.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// Default debounce delays.
const (
	DefaultSaveDelay    = 1 * time.Second
	DefaultAnalyzeDelay = 2 * time.Second
	DefaultCallTimeout  = 30 * time.Second
)

// Stage identifies the pipeline lane an event belongs to.
type Stage string

// Pipeline stages.
const (
	StageSave     Stage = "save"
	StageAnalysis Stage = "analysis"
)

// Event is a non-fatal notification: a collaborator failure the user should
// see. The pipeline keeps running; the next cycle retries with current data.
type Event struct {
	Stage Stage
	Err   error
}

// Options configures a Pipeline.
type Options struct {
	Store    store.Store
	Analyzer analysis.Analyzer

	// SaveDelay and AnalyzeDelay are the debounce quiet periods. Zero values
	// use the defaults.
	SaveDelay    time.Duration
	AnalyzeDelay time.Duration

	// CallTimeout bounds each collaborator call.
	CallTimeout time.Duration

	// Notify receives failure events. Optional; nil falls back to logging.
	Notify func(Event)
}

// Pipeline owns the document's mutation stream. All state sits behind one
// mutex, the Go analog of the reference's single-threaded event loop: timer
// callbacks and collaborator completions serialize through it, and
// collaborator calls themselves run outside the lock.
type Pipeline struct {
	opts Options

	mu  sync.Mutex
	doc *types.ResumeDocument

	saveTimer    *time.Timer
	analyzeTimer *time.Timer

	// saveSeq stamps each snapshot; a completed write only clears the
	// pending flag if no newer snapshot arrived while it was in flight.
	saveSeq      uint64
	savePending  bool
	saveInFlight bool
	everSaved    bool
	lastSavedAt  time.Time

	// analysisSeq stamps each issued analysis call. A completion whose
	// stamp is no longer current is stale and discarded, so a late-arriving
	// older result can never overwrite a newer one.
	analysisSeq uint64
	analysisRes *types.AtsAnalysis

	profileSeeded bool
	closed        bool

	wg sync.WaitGroup
}

// New creates a pipeline. Store and Analyzer are required.
func New(opts Options) (*Pipeline, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if opts.Analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}
	if opts.SaveDelay <= 0 {
		opts.SaveDelay = DefaultSaveDelay
	}
	if opts.AnalyzeDelay <= 0 {
		opts.AnalyzeDelay = DefaultAnalyzeDelay
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	return &Pipeline{
		opts:        opts,
		analysisRes: types.SentinelAnalysis(),
	}, nil
}

// Load initializes the pipeline for the document with the given id. A found
// document is treated as already saved, and if it carries a job description
// one analysis call is issued immediately, bypassing the debounce. A missing
// id yields an unsaved default document under that id.
func (p *Pipeline) Load(ctx context.Context, id string) (*types.ResumeDocument, error) {
	doc, err := store.Get(ctx, p.opts.Store, id)
	var notFound *store.ErrNotFound
	if errors.As(err, &notFound) {
		fresh := types.NewDocument("")
		fresh.ID = id

		p.mu.Lock()
		p.doc = fresh
		p.everSaved = false
		p.analysisRes = types.SentinelAnalysis()
		p.profileSeeded = false
		p.mu.Unlock()
		return fresh.Clone(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	p.mu.Lock()
	p.doc = doc
	p.everSaved = true
	p.lastSavedAt = time.Now()
	p.analysisRes = types.SentinelAnalysis()
	p.profileSeeded = false
	var issue func()
	if doc.JobDescription != "" {
		issue = p.issueAnalysisLocked(doc.Clone())
	}
	p.mu.Unlock()

	if issue != nil {
		issue()
	}
	return doc.Clone(), nil
}

// Update ingests a whole-document snapshot and restarts both debounce
// timers. Only the trailing snapshot after a quiet period is ever persisted
// or analyzed; snapshots superseded inside the window are dropped.
func (p *Pipeline) Update(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	p.doc = doc.Clone()
	p.saveSeq++
	p.savePending = true

	if p.saveTimer != nil {
		p.saveTimer.Stop()
	}
	p.saveTimer = time.AfterFunc(p.opts.SaveDelay, p.onSaveTimer)

	if p.analyzeTimer != nil {
		p.analyzeTimer.Stop()
	}
	p.analyzeTimer = time.AfterFunc(p.opts.AnalyzeDelay, p.onAnalyzeTimer)
}

// Document returns the current snapshot.
func (p *Pipeline) Document() *types.ResumeDocument {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Clone()
}

// Analysis returns the currently displayed analysis.
func (p *Pipeline) Analysis() *types.AtsAnalysis {
	p.mu.Lock()
	defer p.mu.Unlock()
	a := *p.analysisRes
	return &a
}

// SeedProfileName overwrites the document's personal name from the user
// profile, once per load, and only while the name is still empty or the
// placeholder. It is a one-way seed: later profile changes never touch a
// manually edited name.
func (p *Pipeline) SeedProfileName(profile *types.UserProfile) {
	if profile == nil || profile.Name == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.profileSeeded || p.doc == nil {
		return
	}
	p.profileSeeded = true

	name := p.doc.PersonalDetails.Name
	if name != "" && name != types.DefaultPersonalName {
		return
	}

	// The seed counts as an edit: it goes through the save debounce.
	seeded := p.doc.Clone()
	seeded.PersonalDetails.Name = profile.Name
	p.doc = seeded
	p.saveSeq++
	p.savePending = true
	if p.saveTimer != nil {
		p.saveTimer.Stop()
	}
	p.saveTimer = time.AfterFunc(p.opts.SaveDelay, p.onSaveTimer)
}

// Flush persists the pending snapshot immediately, if there is one. Used on
// shutdown so a trailing edit inside the debounce window is not lost.
func (p *Pipeline) Flush(ctx context.Context) error {
	p.mu.Lock()
	if !p.savePending || p.doc == nil {
		p.mu.Unlock()
		return nil
	}
	if p.saveTimer != nil {
		p.saveTimer.Stop()
	}
	snapshot := p.doc.Clone()
	seq := p.saveSeq
	p.mu.Unlock()

	if err := store.Upsert(ctx, p.opts.Store, snapshot); err != nil {
		return fmt.Errorf("flush failed: %w", err)
	}

	p.mu.Lock()
	p.everSaved = true
	p.lastSavedAt = time.Now()
	if p.saveSeq == seq {
		p.savePending = false
	}
	p.mu.Unlock()
	return nil
}

// Close stops the debounce timers and marks the pipeline closed. In-flight
// collaborator calls are not cancelled; their late results are discarded by
// the staleness guard. Close waits for them to drain.
func (p *Pipeline) Close() {
	p.mu.Lock()
	p.closed = true
	if p.saveTimer != nil {
		p.saveTimer.Stop()
	}
	if p.analyzeTimer != nil {
		p.analyzeTimer.Stop()
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// onSaveTimer fires after a quiet period on the save lane. Exactly one write
// is performed with the latest snapshot at elapse time. The savePending check
// drops a stale callback that lost the race with Update's timer restart, so a
// burst never writes twice.
func (p *Pipeline) onSaveTimer() {
	p.mu.Lock()
	if p.closed || p.doc == nil || !p.savePending {
		p.mu.Unlock()
		return
	}
	snapshot := p.doc.Clone()
	seq := p.saveSeq
	p.saveInFlight = true
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), p.opts.CallTimeout)
		defer cancel()
		err := store.Upsert(ctx, p.opts.Store, snapshot)

		p.mu.Lock()
		p.saveInFlight = false
		if err == nil {
			p.everSaved = true
			p.lastSavedAt = time.Now()
			if p.saveSeq == seq {
				p.savePending = false
			}
		}
		// On failure the snapshot stays pending, so Status keeps reporting
		// "saving" and Flush or the next debounce cycle retries the write.
		p.mu.Unlock()

		if err != nil {
			p.notify(Event{Stage: StageSave, Err: err})
		}
	}()
}

// onAnalyzeTimer fires after a quiet period on the analysis lane.
func (p *Pipeline) onAnalyzeTimer() {
	p.mu.Lock()
	if p.closed || p.doc == nil {
		p.mu.Unlock()
		return
	}
	if p.doc.JobDescription == "" {
		// Sentinel state: no model call, fixed analysis. Invalidate any
		// in-flight call so its late result cannot resurface.
		p.analysisSeq++
		p.analysisRes = types.SentinelAnalysis()
		p.mu.Unlock()
		return
	}
	issue := p.issueAnalysisLocked(p.doc.Clone())
	p.mu.Unlock()
	issue()
}

// issueAnalysisLocked stamps a new analysis call for the snapshot and returns
// the function that runs it. Callers must hold mu and invoke the returned
// function after releasing it.
func (p *Pipeline) issueAnalysisLocked(snapshot *types.ResumeDocument) func() {
	p.analysisSeq++
	seq := p.analysisSeq
	input := analysis.InputFromDocument(snapshot)

	return func() {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), p.opts.CallTimeout)
			defer cancel()
			result, err := p.opts.Analyzer.Analyze(ctx, input)

			p.mu.Lock()
			stale := p.closed || seq != p.analysisSeq
			if !stale && err == nil {
				p.analysisRes = result
			}
			p.mu.Unlock()

			// Failures keep the previous analysis displayed. Stale failures
			// are not worth reporting; a newer call already superseded them.
			if err != nil && !stale {
				p.notify(Event{Stage: StageAnalysis, Err: err})
			}
		}()
	}
}

func (p *Pipeline) notify(ev Event) {
	if p.opts.Notify != nil {
		p.opts.Notify(ev)
		return
	}
	log.Printf("[autosave] %s failed: %v", ev.Stage, ev.Err)
}
