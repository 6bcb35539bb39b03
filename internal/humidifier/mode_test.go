package humidifier

import "testing"

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeOff, "OFF"},
		{ModeOn, "ON"},
		{ModeAuto, "AUTO"},
		{Mode(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name   string
		want   Mode
		wantOK bool
	}{
		{"OFF", ModeOff, true},
		{"ON", ModeOn, true},
		{"AUTO", ModeAuto, true},
		{"auto", ModeAuto, true},
		{"  On ", ModeOn, true},
		{"TURBO", ModeOff, false},
		{"", ModeOff, false},
	}

	for _, tt := range tests {
		got, ok := ParseMode(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMode(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseMode_RoundTripsCanonicalNames(t *testing.T) {
	for _, mode := range []Mode{ModeOff, ModeOn, ModeAuto} {
		got, ok := ParseMode(mode.String())
		if !ok || got != mode {
			t.Errorf("ParseMode(%q) = (%v, %v), want (%v, true)", mode.String(), got, ok, mode)
		}
	}
}

func TestAction_String(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionOff, "OFF"},
		{ActionIdle, "IDLE"},
		{ActionHumidifying, "HUMIDIFYING"},
		{Action(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}
