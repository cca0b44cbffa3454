package domain

import (
	"errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("underlying")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with cause",
			err:  ValidationError("bad input", cause),
			want: "validation: bad input: underlying",
		},
		{
			name: "without cause",
			err:  IOError("disk full", nil),
			want: "io: disk full",
		},
		{
			name: "extraction",
			err:  ExtractionError("engine failure", nil),
			want: "extraction: engine failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ConfigError("bad config", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}
