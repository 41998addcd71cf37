package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/garnizeh/incollege/internal/logging"
)

func TestNewLogger_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewLogger(logging.Config{Environment: "test", Level: "warn", Output: &buf})

	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info record should be filtered at warn level, got %q", buf.String())
	}

	l.Warn("kept", "op", "delete_job")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal log record: %v", err)
	}
	if rec["msg"] != "kept" || rec["service"] != "incollege" || rec["env"] != "test" || rec["op"] != "delete_job" {
		t.Fatalf("unexpected record: %v", rec)
	}
}
