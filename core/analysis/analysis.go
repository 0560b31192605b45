// Package analysis guards the AI analysis of a student's results behind a request state machine:
// Idle -> Pending -> {Succeeded, Failed}. A Pending request rejects new triggers.
package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/student"
)

// FailureMessage is shown for any analysis failure, with a retry action.
const FailureMessage = "ไม่สามารถวิเคราะห์ข้อมูลได้ กรุณาลองใหม่ภายหลัง"

var (
	ErrAnalysisPending = errors.New("an analysis is already pending")
	ErrAnalysisFailed  = errors.New(FailureMessage)
)

// Analyzer writes a free-form analysis of a student's results.
type Analyzer interface {
	Analyze(ctx context.Context, s student.Student) (string, error)
}

type State string

const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Result is a snapshot of a Requester.
type Result struct {
	State   State  `json:"state"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Requester runs one analysis at a time for one student.
type Requester struct {
	analyzer Analyzer
	timeout  time.Duration
	log      core.Logger

	mu      sync.Mutex
	state   State
	content string
}

func NewRequester(analyzer Analyzer, timeout time.Duration, logger core.Logger) *Requester {
	return &Requester{analyzer: analyzer, timeout: timeout, log: logger, state: StateIdle}
}

func (r *Requester) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result()
}

func (r *Requester) result() Result {
	res := Result{State: r.state, Content: r.content}
	if r.state == StateFailed {
		res.Error = FailureMessage
	}
	return res
}

// Run analyzes s and blocks until the analyzer answers.
// Pending: ErrAnalysisPending. Succeeded: the previous analysis, the analyzer is not called again.
// Idle and Failed (retry): a new analysis; any analyzer failure is reported as ErrAnalysisFailed.
func (r *Requester) Run(ctx context.Context, s student.Student) (Result, error) {
	r.mu.Lock()
	switch r.state {
	case StatePending:
		r.mu.Unlock()
		return Result{State: StatePending}, ErrAnalysisPending
	case StateSucceeded:
		defer r.mu.Unlock()
		return r.result(), nil
	}
	r.state = StatePending
	r.content = ""
	r.mu.Unlock()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	content, err := r.analyzer.Analyze(ctx, s)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil || content == "" {
		if err == nil {
			err = errors.New("empty analysis")
		}
		r.state = StateFailed
		r.log.Error("analysis failed", errors.Wrap(err, "analyzing student"), s)
		return r.result(), ErrAnalysisFailed
	}
	r.state = StateSucceeded
	r.content = content
	return r.result(), nil
}

// Reset forgets the previous analysis. A pending analysis cannot be reset.
func (r *Requester) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StatePending {
		return ErrAnalysisPending
	}
	r.state = StateIdle
	r.content = ""
	return nil
}

// Registry keeps one Requester per student uid.
type Registry struct {
	analyzer Analyzer
	timeout  time.Duration
	log      core.Logger

	mu         sync.Mutex
	requesters map[string]*Requester
}

func NewRegistry(analyzer Analyzer, conf *core.Config, logger core.Logger) *Registry {
	return &Registry{
		analyzer:   analyzer,
		timeout:    conf.Gemini.Timeout,
		log:        logger,
		requesters: make(map[string]*Requester),
	}
}

// For returns the Requester of a student, creating an idle one on first use.
func (reg *Registry) For(uid string) *Requester {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	r, ok := reg.requesters[uid]
	if !ok {
		r = NewRequester(reg.analyzer, reg.timeout, reg.log)
		reg.requesters[uid] = r
	}
	return r
}

// Lookup returns the Requester of a student without creating one.
func (reg *Registry) Lookup(uid string) (*Requester, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.requesters[uid]
	return r, ok
}

// Forget drops the Requester of a deleted or edited student.
func (reg *Registry) Forget(uid string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.requesters, uid)
}
