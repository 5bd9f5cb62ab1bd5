package pre_test

import (
	"reflect"
	"testing"

	"github.com/elsinore/hasm/internal/pre"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    []string
		wantErr bool
	}{
		{
			name: "no macros",
			lines: []string{
				"rts",
			},
			want: []string{"rts"},
		},
		{
			name: "simple macro",
			lines: []string{
				"macr CLEAR",
				"clr r1",
				"clr r2",
				"endmacr",
				"CLEAR",
				"stop",
			},
			want: []string{"clr r1", "clr r2", "stop"},
		},
		{
			name: "macro used twice",
			lines: []string{
				"macr CLEAR",
				"clr r1",
				"endmacr",
				"CLEAR",
				"CLEAR",
			},
			want: []string{"clr r1", "clr r1"},
		},
		{
			name: "blank and comment lines dropped",
			lines: []string{
				"",
				"; a comment",
				"rts",
			},
			want: []string{"rts"},
		},
		{
			name: "nested macro is an error",
			lines: []string{
				"macr OUTER",
				"macr INNER",
				"endmacr",
				"endmacr",
			},
			wantErr: true,
		},
		{
			name: "endmacr without macr is an error",
			lines: []string{
				"endmacr",
			},
			wantErr: true,
		},
		{
			name: "unterminated macro is an error",
			lines: []string{
				"macr FOO",
				"rts",
			},
			wantErr: true,
		},
		{
			name: "duplicate macro name is an error",
			lines: []string{
				"macr FOO",
				"rts",
				"endmacr",
				"macr FOO",
				"stop",
				"endmacr",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pre.Expand(tt.lines, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expand(%v): expected error", tt.lines)
				}

				return
			}

			if err != nil {
				t.Fatalf("Expand(%v): unexpected error: %s", tt.lines, err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand(%v) = %v, want %v", tt.lines, got, tt.want)
			}
		})
	}
}

func TestExpand_ReservedMacroName(t *testing.T) {
	lines := []string{"macr mov", "rts", "endmacr"}

	isReserved := func(name string) bool { return name == "mov" }

	if _, err := pre.Expand(lines, isReserved); err == nil {
		t.Fatal("Expand: expected reserved-name error")
	}
}
