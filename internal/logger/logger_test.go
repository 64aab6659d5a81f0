package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNew_WritesDailyJSONFile(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	root := t.TempDir()
	log, err := New(root, "debug", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debugw("inline template compiled", "key", "a.go:1.erb")
	_ = log.Sync()

	path := filepath.Join(root, "logs", time.Now().Format("2006-01-02")+".log")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{`"msg":"logger online"`, `"key":"a.go:1.erb"`, `"level":"debug"`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("log missing %s:\n%s", want, b)
		}
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New(t.TempDir(), "chatty", false); err == nil {
		t.Fatalf("expected level parse error")
	}
}
