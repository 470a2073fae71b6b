package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("loaded %d starts", 3)
	if got != "loaded 3 starts" {
		t.Errorf("Logf output = %q, want %q", got, "loaded 3 starts")
	}
}

func TestSetLoggerNil(t *testing.T) {
	SetLogger(nil)
	// Must not panic.
	Logf("ignored %s", "message")
	SetLogger(nil)
}
