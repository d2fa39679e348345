package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLoggerRedirects(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("dropped %d bytes", 3)

	if got != "dropped 3 bytes" {
		t.Errorf("captured log = %q, want %q", got, "dropped 3 bytes")
	}
}

func TestSetLoggerNilMutes(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(string, ...interface{}) { called = true })
	SetLogger(nil)
	Logf("should go nowhere")

	if called {
		t.Error("nil logger should mute output, not call the previous logger")
	}
}
