package router

import "testing"

func TestDispatchFirstMatchWins(t *testing.T) {
	r := New()
	var got string
	record := func(name string) HandlerFunc {
		return func(message string) error {
			got = name
			return nil
		}
	}

	r.Handle("/agent on", record("agent-on"))
	r.Handle("/agent off", record("agent-off"))
	r.Handle("/agent", record("agent-toggle"))
	r.Handle("/roles", record("list-roles"))
	r.Handle("/role", record("set-role"))

	tests := []struct {
		message string
		want    string
	}{
		{"/agent on", "agent-on"},
		{"/agent off", "agent-off"},
		{"/agent", "agent-toggle"},
		{"/roles", "list-roles"},
		{"/roles please", "list-roles"},
		{"/role frontend", "set-role"},
		{"  /agent on  ", "agent-on"},
	}

	for _, tt := range tests {
		got = ""
		handled, err := r.Dispatch(tt.message)
		if err != nil {
			t.Fatalf("Dispatch(%q): %v", tt.message, err)
		}
		if !handled {
			t.Errorf("Dispatch(%q) not handled", tt.message)
			continue
		}
		if got != tt.want {
			t.Errorf("Dispatch(%q) hit %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestDispatchUnmatched(t *testing.T) {
	r := New()
	r.Handle("/help", func(string) error { return nil })

	handled, err := r.Dispatch("how do I write a goroutine?")
	if err != nil {
		t.Fatal(err)
	}
	if handled {
		t.Error("free-form message should not be handled")
	}
}
