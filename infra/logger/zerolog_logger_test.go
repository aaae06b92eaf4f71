package logger

import (
	"testing"
)

func exercise(l Logger) {
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerDevConsole(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	exercise(l)
}

func TestZerologLoggerJSON(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	exercise(NewZerologLogger("test"))
}

func TestNewReturnsLogger(t *testing.T) {
	if l := New("component"); l == nil {
		t.Fatalf("nil logger")
	}
}

func TestNopLogger(t *testing.T) {
	exercise(NopLogger{})
}
