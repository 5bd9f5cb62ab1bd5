package asm

import "testing"

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    ParsedLine
		wantErr bool
	}{
		{
			name: "no operands",
			line: "rts",
			want: ParsedLine{Mnemonic: "rts"},
		},
		{
			name: "labeled instruction",
			line: "LOOP: dec r3",
			want: ParsedLine{Label: "LOOP", Mnemonic: "dec", Operands: []string{"r3"}},
		},
		{
			name: "two operands",
			line: "mov r3, r5",
			want: ParsedLine{Mnemonic: "mov", Operands: []string{"r3", "r5"}},
		},
		{
			name: "directive with values",
			line: ".data 7, -1, 16383",
			want: ParsedLine{Mnemonic: "data", Operands: []string{"7", "-1", "16383"}},
		},
		{
			name: "string literal",
			line: `.string "hi there"`,
			want: ParsedLine{Mnemonic: "string", Operands: []string{`"hi there"`}},
		},
		{
			name:    "unknown opcode",
			line:    "frobnicate r1",
			wantErr: true,
		},
		{
			name:    "trailing comma",
			line:    ".data 1, 2,",
			wantErr: true,
		},
		{
			name:    "two tokens without comma",
			line:    "mov r1 r2",
			wantErr: true,
		},
		{
			name:    "reserved word as label",
			line:    "mov: rts",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLine(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseLine(%q): expected error", tt.line)
				}

				return
			}

			if err != nil {
				t.Fatalf("parseLine(%q): unexpected error: %s", tt.line, err)
			}

			if got.Label != tt.want.Label || got.Mnemonic != tt.want.Mnemonic || len(got.Operands) != len(tt.want.Operands) {
				t.Fatalf("parseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}

			for i := range got.Operands {
				if got.Operands[i] != tt.want.Operands[i] {
					t.Errorf("parseLine(%q).Operands[%d] = %q, want %q", tt.line, i, got.Operands[i], tt.want.Operands[i])
				}
			}
		})
	}
}

func TestValidLabel(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"LOOP", true},
		{"a1", true},
		{"1a", false},
		{"", false},
		{"mov", false},
		{"r3", false},
		{"macr", false},
		{"data", false},
	}

	for _, tt := range tests {
		if got := validLabel(tt.name); got != tt.want {
			t.Errorf("validLabel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
