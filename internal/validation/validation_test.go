package validation

import (
	"errors"
	"testing"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		count   int
		want    int
		wantErr error
	}{
		{
			name:  "first entry",
			line:  "1",
			count: 2,
			want:  1,
		},
		{
			name:  "last entry with whitespace",
			line:  "  2 \n",
			count: 2,
			want:  2,
		},
		{
			name:    "zero is out of range",
			line:    "0",
			count:   2,
			wantErr: ErrOutOfRange,
		},
		{
			name:    "past the end",
			line:    "3",
			count:   2,
			wantErr: ErrOutOfRange,
		},
		{
			name:    "negative",
			line:    "-1",
			count:   2,
			wantErr: ErrOutOfRange,
		},
		{
			name:    "not a number",
			line:    "pizza",
			count:   2,
			wantErr: ErrNotANumber,
		},
		{
			name:    "empty line",
			line:    "",
			count:   2,
			wantErr: ErrNotANumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection("restaurant", tt.line, tt.count)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseSelection() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSelection() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSelection() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInputErrorFields(t *testing.T) {
	_, err := ParseChoice("choice", "abc")

	var inputErr InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %T", err)
	}
	if inputErr.Kind != KindParse {
		t.Errorf("Kind = %v, want KindParse", inputErr.Kind)
	}
	if inputErr.Field != "choice" || inputErr.Input != "abc" {
		t.Errorf("unexpected fields: %+v", inputErr)
	}
	if inputErr.Error() != `choice: "abc" is not a number` {
		t.Errorf("Error() = %q", inputErr.Error())
	}
}

func TestCheckRange(t *testing.T) {
	if err := CheckRange("item", 0, 0, 3); err != nil {
		t.Errorf("0 within [0,3]: %v", err)
	}
	if err := CheckRange("item", 4, 0, 3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("4 outside [0,3]: got %v", err)
	}
}
