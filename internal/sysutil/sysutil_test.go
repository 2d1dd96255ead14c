package sysutil

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLogLevel(t *testing.T) {
	orig := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(orig) })

	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"  WaRn ", zerolog.WarnLevel}, // case + trim
		{"warning", zerolog.WarnLevel}, // alias
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"bogus", zerolog.InfoLevel}, // default
	}

	for _, tc := range cases {
		SetLogLevel(tc.in)
		if got := zerolog.GlobalLevel(); got != tc.want {
			t.Fatalf("SetLogLevel(%q) -> %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes ", "Y", "on"} {
		if !IsTruthy(v) {
			t.Fatalf("IsTruthy(%q) = false; want true", v)
		}
	}
	for _, v := range []string{"", "0", "false", "off", "n", "whatever"} {
		if IsTruthy(v) {
			t.Fatalf("IsTruthy(%q) = true; want false", v)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("FirstNonEmpty() = %q; want empty", got)
	}
	if got := FirstNonEmpty(" ", "\t"); got != "" {
		t.Fatalf("FirstNonEmpty(blanks) = %q; want empty", got)
	}
	// Preserves original spacing of the winner.
	if got := FirstNonEmpty("  ", " first ", "second"); got != " first " {
		t.Fatalf("FirstNonEmpty(...) = %q; want %q", got, " first ")
	}
}
