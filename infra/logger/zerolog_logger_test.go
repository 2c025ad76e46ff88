package logger

import (
	"testing"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewDefaultsToJSON(t *testing.T) {
	t.Setenv("APP_ENV", "")
	l := New("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Infof("info")
}
