package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestWithRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")

	lc := GetContext(ctx)
	if lc.RunID != "run-123" {
		t.Errorf("expected run-123, got %s", lc.RunID)
	}
}

func TestWithNewRunIDIsUUID(t *testing.T) {
	ctx, id := WithNewRunID(context.Background())

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("run id is not a uuid: %v", err)
	}
	if GetContext(ctx).RunID != id {
		t.Errorf("context run id mismatch")
	}
}

func TestContextChaining(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithConfigPath(ctx, "journal.config.yaml")
	loadCtx := WithStage(ctx, "load")
	resolveCtx := WithStage(ctx, "resolve_links")

	if GetContext(loadCtx).Stage != "load" || GetContext(resolveCtx).Stage != "resolve_links" {
		t.Error("stages leaked between derived contexts")
	}
	if GetContext(resolveCtx).ConfigPath != "journal.config.yaml" {
		t.Error("config path lost on derived context")
	}
	if GetContext(ctx).Stage != "" {
		t.Error("parent context was modified")
	}
}

func TestEmptyContext(t *testing.T) {
	if attrs := getLogAttrs(context.Background()); len(attrs) != 0 {
		t.Errorf("expected no attrs, got %v", attrs)
	}
}

func TestInfoContextIncludesContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(NewLogger(&buf, slog.LevelDebug, "json"))
	defer slog.SetDefault(prev)

	ctx := WithStage(WithRunID(context.Background(), "run-9"), "scan_docs")
	InfoContext(ctx, "docs scanned", slog.Int("docs", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}
	if rec["run.id"] != "run-9" || rec["stage"] != "scan_docs" || rec["docs"] != float64(3) {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestNewLoggerLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, "text")
	logger.Debug("hidden")
	logger.Warn("shown", "field", "baseUrl")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered at info level")
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "field=baseUrl") {
		t.Errorf("unexpected text output: %s", out)
	}
}
