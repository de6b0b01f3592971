package types

import "testing"

func TestIdentical(t *testing.T) {
	tests := []struct {
		name string
		a, b *Basic
		want bool
	}{
		{"same", Typ[I32], Typ[I32], true},
		{"diff width", Typ[I32], Typ[I64], false},
		{"diff sign", Typ[I8], Typ[U8], false},
		{"untyped vs typed", Typ[UntypedInt], Typ[I32], false},
		{"nil vs typed", nil, Typ[I32], false},
		{"nil vs nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identical(tt.a, tt.b); got != tt.want {
				t.Errorf("Identical(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAssignableTo(t *testing.T) {
	tests := []struct {
		src, dst *Basic
		want     bool
	}{
		{Typ[UntypedInt], Typ[I8], true},
		{Typ[UntypedInt], Typ[U64], true},
		{Typ[I32], Typ[I32], true},
		{Typ[I32], Typ[I64], false},
		{Typ[U8], Typ[I8], false},
		{Typ[String], Typ[String], true},
		{Typ[String], Typ[I32], false},
		{Typ[UntypedInt], Typ[String], false},
		{Typ[Void], Typ[I32], false},
	}

	for _, tt := range tests {
		if got := AssignableTo(tt.src, tt.dst); got != tt.want {
			t.Errorf("AssignableTo(%s, %s) = %v, want %v", tt.src, tt.dst, got, tt.want)
		}
	}
}

func TestUnify(t *testing.T) {
	tests := []struct {
		x, y *Basic
		want *Basic
	}{
		{Typ[UntypedInt], Typ[UntypedInt], Typ[UntypedInt]},
		{Typ[UntypedInt], Typ[I8], Typ[UntypedInt]},
		{Typ[U32], Typ[UntypedInt], Typ[UntypedInt]},
		{Typ[I64], Typ[I64], Typ[UntypedInt]},
		{Typ[I64], Typ[I32], Typ[UntypedInt]},
		{Typ[I8], Typ[U64], Typ[UntypedInt]},
		{Typ[String], Typ[UntypedInt], nil},
		{Typ[Void], Typ[I32], nil},
	}

	for _, tt := range tests {
		if got := Unify(tt.x, tt.y); got != tt.want {
			t.Errorf("Unify(%s, %s) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
