package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Stage", KeyStage, "load", Stage("load")},
		{"Field", KeyField, "baseUrl", Field("baseUrl")},
		{"DocID", KeyDocID, "intro", DocID("intro")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"URL", KeyURL, "/clojure-journal/blog", URL("/clojure-journal/blog")},
		{"Label", KeyLabel, "Projects", Label("Projects")},
		{"Class", KeyClass, "link", Class("link")},
		{"Policy", KeyPolicy, "throw", Policy("throw")},
		{"Branch", KeyBranch, "deployment", Branch("deployment")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey || c.attr.Value.String() != c.attrVal {
			t.Errorf("%s: got %s=%s", c.name, c.attr.Key, c.attr.Value.String())
		}
	}
}

func TestErrorHelper(t *testing.T) {
	if a := Error(nil); a.Key != KeyError || a.Value.String() != "" {
		t.Errorf("nil error attr: %v", a)
	}
	if a := Error(errors.New("boom")); a.Value.String() != "boom" {
		t.Errorf("error attr: %v", a)
	}
	if a := DurationMS(1.5); a.Value.Float64() != 1.5 {
		t.Errorf("duration attr: %v", a)
	}
}
