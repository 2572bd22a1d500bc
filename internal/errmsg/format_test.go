package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFileDelete,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpFileDelete,
			err:      errors.New("file not found"),
			expected: "Failed to delete image: file not found",
		},
		{
			name:     "tool run operation",
			op:       OpToolRun,
			err:      errors.New("exit status 3"),
			expected: "Failed to run external tool: exit status 3",
		},
		{
			name:     "config load operation",
			op:       OpConfigLoad,
			err:      errors.New("permission denied"),
			expected: "Failed to load configuration: permission denied",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("no such file")

	got := FormatWith(OpFileRestore, "photo.jpg", err)
	want := "Failed to restore image from trash 'photo.jpg': no such file"
	if got != want {
		t.Errorf("FormatWith() = %q, want %q", got, want)
	}

	if got := FormatWith(OpFileRestore, "", err); got != Format(OpFileRestore, err) {
		t.Errorf("FormatWith with empty context = %q", got)
	}
	if got := FormatWith(OpFileRestore, "photo.jpg", nil); got != "" {
		t.Errorf("FormatWith with nil error = %q, want empty", got)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(OpServerStart, cause)

	if got, want := err.Error(), Format(OpServerStart, cause); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("cause is not reachable through errors.Is")
	}
	if Wrap(OpServerStart, nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}
