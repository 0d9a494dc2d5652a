// Package problems collects unresolved references found while checking a site
// and applies the configured broken-link policy to each of them.
package problems

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Rafailong/clojure-journal/internal/config"
	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
	"github.com/Rafailong/clojure-journal/internal/logfields"
	"github.com/Rafailong/clojure-journal/internal/observability"
)

// Class groups problems by what kind of reference broke.
type Class string

const (
	ClassLink         Class = "link"
	ClassMarkdownLink Class = "markdown-link"
	ClassAsset        Class = "asset"
	ClassRoute        Class = "route"
)

// Problem is a single unresolved reference.
type Problem struct {
	Class  Class
	Source string // where the reference was written, e.g. "themeConfig.navbar.items[0]" or "docs/intro.md:12"
	Target string
	Policy config.BrokenLinkPolicy
	Err    *ferrors.ClassifiedError
}

// Report accumulates problems. It is not safe for concurrent use.
type Report struct {
	problems []Problem
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add records a ReferenceError for target under policy and returns it. Nothing
// is recorded, and nil is returned, when the policy ignores the class.
func (r *Report) Add(policy config.BrokenLinkPolicy, class Class, source, target, message string) *ferrors.ClassifiedError {
	if policy.Silent() {
		return nil
	}
	err := ferrors.ReferenceError(message).
		WithSeverity(policy.Severity()).
		WithContext("class", string(class)).
		WithContext("source", source).
		WithContext("target", target).
		WithContext("policy", string(policy)).
		Build()
	r.problems = append(r.problems, Problem{Class: class, Source: source, Target: target, Policy: policy, Err: err})
	return err
}

// Merge appends the problems of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.problems = append(r.problems, other.problems...)
}

// Problems returns the recorded problems in insertion order.
func (r *Report) Problems() []Problem {
	out := make([]Problem, len(r.problems))
	copy(out, r.problems)
	return out
}

// Len is the number of recorded problems.
func (r *Report) Len() int { return len(r.problems) }

// Count returns the number of problems of class.
func (r *Report) Count(class Class) int {
	n := 0
	for _, p := range r.problems {
		if p.Class == class {
			n++
		}
	}
	return n
}

// Counts returns problem totals keyed by class.
func (r *Report) Counts() map[Class]int {
	out := map[Class]int{}
	for _, p := range r.problems {
		out[p.Class]++
	}
	return out
}

// Fatal returns the problems recorded under the throw policy.
func (r *Report) Fatal() []Problem {
	var out []Problem
	for _, p := range r.problems {
		if p.Err.IsFatal() {
			out = append(out, p)
		}
	}
	return out
}

// Err returns a fatal ReferenceError summarizing every problem recorded under
// the throw policy, or nil when there is none.
func (r *Report) Err() error {
	fatal := r.Fatal()
	if len(fatal) == 0 {
		return nil
	}
	errs := make([]error, 0, len(fatal))
	for _, p := range fatal {
		errs = append(errs, p.Err)
	}
	msg := fmt.Sprintf("%d broken reference(s)", len(fatal))
	if len(fatal) == 1 {
		msg = fatal[0].Err.Message()
	}
	return ferrors.ReferenceError(msg).
		Fatal().
		WithCause(errors.Join(errs...)).
		WithContext("count", len(fatal)).
		Build()
}

// Log writes each problem at the level its policy asks for.
func (r *Report) Log(ctx context.Context) {
	for _, p := range r.problems {
		observability.Log(ctx, ferrors.SlogLevel(p.Err.Severity()), p.Err.Message(),
			logfields.Class(string(p.Class)),
			logfields.Path(p.Source),
			logfields.URL(p.Target),
			logfields.Policy(string(p.Policy)),
		)
	}
}

// Sorted returns problems ordered by class, source and target.
func (r *Report) Sorted() []Problem {
	out := r.Problems()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}
