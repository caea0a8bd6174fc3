package errors

import (
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := Format(fmt.Errorf("boom")); got != "Error: boom" {
		t.Errorf("Format = %q, want %q", got, "Error: boom")
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("task %q missing", "a"); got != "Error: task \"a\" missing" {
		t.Errorf("Formatf = %q", got)
	}
}
