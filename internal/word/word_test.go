package word

import "testing"

func TestInstruction_Encode(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		src    Mode
		dst    Mode
		want   Word
	}{
		{"rts", 14, NoOperand, NoOperand, 0x7004},
		{"stop", 15, NoOperand, NoOperand, 0x7804},
		{"mov reg reg", 0, DirectReg, DirectReg, 1092},
		{"mov imm reg", 0, Immediate, DirectReg, 196},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewInstruction(tt.opcode, tt.src, tt.dst).Encode()
			if got != tt.want {
				t.Errorf("Encode() = %#v (%s), want %#v", got, got, tt.want)
			}
		})
	}
}

func TestSharedRegisterOperand(t *testing.T) {
	got := SharedRegisterOperand(3, 5)
	want := Word(236)

	if got != want {
		t.Errorf("SharedRegisterOperand(3, 5) = %d, want %d", got, want)
	}
}

func TestImmediateOperand(t *testing.T) {
	got := ImmediateOperand(-1)
	want := Word(0x7ffc)

	if got != want {
		t.Errorf("ImmediateOperand(-1) = %#o, want %#o", got, want)
	}
}

func TestRelativeOperand(t *testing.T) {
	got := RelativeOperand(101)
	want := Word(101<<3) | Word(Relative)

	if got != want {
		t.Errorf("RelativeOperand(101) = %d, want %d", got, want)
	}
}

func TestWord_Sext(t *testing.T) {
	w := Word(0x0fff) // lower 12 bits all set: -1 in two's complement
	w.Sext(12)

	if w != Mask {
		t.Errorf("Sext(12) = %#o, want %#o", w, Mask)
	}
}
