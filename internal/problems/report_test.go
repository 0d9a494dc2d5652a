package problems

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafailong/clojure-journal/internal/config"
	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
)

func TestReportPolicies(t *testing.T) {
	tests := []struct {
		policy   config.BrokenLinkPolicy
		recorded bool
		severity ferrors.ErrorSeverity
		fatal    bool
	}{
		{config.PolicyIgnore, false, "", false},
		{config.PolicyLog, true, ferrors.SeverityInfo, false},
		{config.PolicyWarn, true, ferrors.SeverityWarning, false},
		{config.PolicyThrow, true, ferrors.SeverityFatal, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			r := NewReport()
			err := r.Add(tt.policy, ClassLink, "themeConfig.navbar.items[0]", "intro", "doc intro not found")
			if !tt.recorded {
				assert.Nil(t, err)
				assert.Equal(t, 0, r.Len())
				assert.NoError(t, r.Err())
				return
			}
			require.NotNil(t, err)
			assert.True(t, ferrors.IsReferenceError(err))
			assert.Equal(t, tt.severity, err.Severity())
			assert.Equal(t, 1, r.Count(ClassLink))

			if !tt.fatal {
				assert.NoError(t, r.Err())
				return
			}
			summary := r.Err()
			require.Error(t, summary)
			ce, ok := ferrors.AsClassified(summary)
			require.True(t, ok)
			assert.Equal(t, ferrors.CategoryReference, ce.Category())
			assert.True(t, ce.IsFatal())
			assert.Equal(t, "doc intro not found", ce.Message())
		})
	}
}

func TestReportErrSummarizesFatalProblems(t *testing.T) {
	r := NewReport()
	r.Add(config.PolicyThrow, ClassLink, "a", "x", "x missing")
	r.Add(config.PolicyWarn, ClassAsset, "b", "y", "y missing")
	r.Add(config.PolicyThrow, ClassMarkdownLink, "c", "z", "z missing")

	assert.Len(t, r.Fatal(), 2)
	ce, ok := ferrors.AsClassified(r.Err())
	require.True(t, ok)
	assert.Equal(t, "2 broken reference(s)", ce.Message())
	assert.Equal(t, map[Class]int{ClassLink: 1, ClassAsset: 1, ClassMarkdownLink: 1}, r.Counts())
}

func TestReportMergeAndSorted(t *testing.T) {
	a := NewReport()
	a.Add(config.PolicyWarn, ClassMarkdownLink, "docs/b.md", "t", "m")
	b := NewReport()
	b.Add(config.PolicyWarn, ClassAsset, "favicon", "t", "m")
	a.Merge(b)
	a.Merge(nil)

	sorted := a.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, ClassAsset, sorted[0].Class)
	assert.Equal(t, ClassMarkdownLink, a.Problems()[0].Class)
}

func TestReportLogUsesPolicyLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := NewReport()
	r.Add(config.PolicyLog, ClassLink, "footer", "/nowhere", "route /nowhere not found")
	r.Add(config.PolicyWarn, ClassAsset, "favicon", "img/x.ico", "asset img/x.ico not found")
	r.Log(context.Background())

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=\"route /nowhere not found\"")
	assert.Contains(t, out, "level=WARN msg=\"asset img/x.ico not found\"")
	assert.Contains(t, out, "class=asset")
	assert.Contains(t, out, "policy=warn")
}
