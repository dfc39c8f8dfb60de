package instruction

import "testing"

func TestKinds(t *testing.T) {
	tests := []struct {
		in   Instruction
		want Kind
	}{
		{in: From{Image: "debian:11"}, want: KindFrom},
		{in: Run{Command: "echo hi"}, want: KindRun},
		{in: Env{Key: "K", Value: "v"}, want: KindEnv},
		{in: Copy{Sources: []string{"a"}, Destination: "/b"}, want: KindCopy},
		{in: Workdir{Path: "/srv"}, want: KindWorkdir},
		{in: User{Name: "builder"}, want: KindUser},
		{in: Label{Key: "k", Value: "v"}, want: KindLabel},
		{in: Arg{Name: "A"}, want: KindArg},
		{in: Entrypoint{Args: []string{"sh"}}, want: KindEntrypoint},
	}
	for _, tt := range tests {
		if got := tt.in.Kind(); got != tt.want {
			t.Fatalf("%T.Kind() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Copy{Sources: []string{"a"}, Destination: "/b"}, Copy{Sources: []string{"a"}, Destination: "/b"}) {
		t.Fatal("identical instructions must compare equal")
	}
	if Equal(Run{Command: "a"}, Run{Command: "b"}) {
		t.Fatal("different commands must not compare equal")
	}
	if Equal(Run{Command: "a"}, User{Name: "a"}) {
		t.Fatal("different kinds must not compare equal")
	}
}
