package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// OutcomeLabel is the final status of a whole check run.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeWarning  OutcomeLabel = "warning"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for check runs and their stages.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveCheckDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncCheckOutcome(outcome OutcomeLabel)
	AddProblems(class, policy string, n int)
	SetDocs(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveCheckDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncCheckOutcome(OutcomeLabel)               {}
func (NoopRecorder) AddProblems(string, string, int)            {}
func (NoopRecorder) SetDocs(int)                                {}
