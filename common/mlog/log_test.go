package mlog

import "testing"

func TestNoneLogger_SatisfiesLoggerInterface(t *testing.T) {
	var _ Logger = &NoneLogger{}
}

func TestGoLogger_SatisfiesLoggerInterface(t *testing.T) {
	var _ Logger = &GoLogger{}
}

func TestNoneLogger_WithFieldsReturnsItself(t *testing.T) {
	l := &NoneLogger{}

	got := l.WithFields("key", "value")

	if got != l {
		t.Fatalf("expected WithFields to return the same NoneLogger instance")
	}
}

func TestNoneLogger_SyncNeverErrors(t *testing.T) {
	if err := (&NoneLogger{}).Sync(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{input: "fatal", want: FatalLevel},
		{input: "error", want: ErrorLevel},
		{input: "warn", want: WarnLevel},
		{input: "warning", want: WarnLevel},
		{input: "info", want: InfoLevel},
		{input: "debug", want: DebugLevel},
		{input: "DEBUG", want: DebugLevel},
		{input: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error for input %q", tt.input)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGoLogger_WithFieldsAppendsAndReturnsLogger(t *testing.T) {
	l := &GoLogger{}

	got := l.WithFields("request_id", "abc123")

	gl, ok := got.(*GoLogger)
	if !ok {
		t.Fatalf("expected WithFields to return a *GoLogger")
	}

	if len(gl.fields) != 2 {
		t.Fatalf("expected 2 field entries, got %d", len(gl.fields))
	}
}
