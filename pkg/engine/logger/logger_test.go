package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInit_FileAndLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nhport.log")
	closer, err := Init(Options{Level: "debug", Format: "json", File: path})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Init(Options{})

	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", Log.GetLevel())
	}
	Log.WithField("component", "test").Debug("hello")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"component":"test"`) {
		t.Errorf("log file = %q", data)
	}
}

func TestInit_BadLevelFallsBack(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	if _, err := Init(Options{Level: "loud"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", Log.GetLevel())
	}
}
