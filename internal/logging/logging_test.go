package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rwim.log")
	if err := Init(Config{Level: "debug", Format: "json", OutputPath: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { Replace(nil) })

	L().Info("ingestion finished", Generation(3), String("file", "install.wim"))
	_ = Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"generation":3`) {
		t.Fatalf("log line missing structured field: %s", data)
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rwim.log")
	if err := Init(Config{Level: "chatty", OutputPath: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { Replace(nil) })
	if Level() != zapcore.InfoLevel {
		t.Fatalf("level = %v, want info", Level())
	}
}

func TestSetLevel(t *testing.T) {
	SetLevel("warn")
	if Level() != zapcore.WarnLevel {
		t.Fatalf("level = %v, want warn", Level())
	}
	SetLevel("nonsense")
	if Level() != zapcore.WarnLevel {
		t.Fatal("invalid level must leave the current one in place")
	}
	SetLevel("info")
}

func TestReplace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.New(core))
	t.Cleanup(func() { Replace(nil) })

	S().Warnw("orphaned entry", "path", `\a\b`)
	if logs.Len() != 1 || logs.All()[0].Message != "orphaned entry" {
		t.Fatalf("unexpected entries: %+v", logs.All())
	}
}
