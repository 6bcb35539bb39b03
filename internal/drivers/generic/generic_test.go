package generic

import (
	"testing"

	"github.com/nerrad567/humidcore/internal/humidifier"
	"github.com/nerrad567/humidcore/internal/infrastructure/config"
)

func testConfig() config.HumidifierConfig {
	return config.HumidifierConfig{
		Name:        "bedroom",
		Modes:       []string{"OFF", "ON", "AUTO"},
		MinHumidity: 30,
		MaxHumidity: 70,
		Step:        5,
	}
}

func newBoundDriver(t *testing.T) (*Humidifier, *humidifier.Humidifier) {
	t.Helper()

	driver, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	entity, err := humidifier.New("bedroom", driver, nil)
	if err != nil {
		t.Fatalf("humidifier.New() error = %v", err)
	}
	driver.Bind(entity)
	return driver, entity
}

func TestNewParsesModes(t *testing.T) {
	driver, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	traits := driver.Traits()
	for _, mode := range []humidifier.Mode{humidifier.ModeOff, humidifier.ModeOn, humidifier.ModeAuto} {
		if !traits.SupportsMode(mode) {
			t.Errorf("SupportsMode(%v) = false, want true", mode)
		}
	}
	if traits.MinHumidity() != 30 || traits.MaxHumidity() != 70 {
		t.Errorf("range = [%v, %v], want [30, 70]", traits.MinHumidity(), traits.MaxHumidity())
	}
	if traits.TargetHumidityStep() != 5 {
		t.Errorf("target step = %v, want 5", traits.TargetHumidityStep())
	}
}

func TestNewRejectsUnknownMode(t *testing.T) {
	cfg := testConfig()
	cfg.Modes = []string{"OFF", "TURBO"}

	if _, err := New(cfg); err == nil {
		t.Fatal("New() expected error for unrecognised mode name")
	}
}

func TestControlAppliesFields(t *testing.T) {
	_, entity := newBoundDriver(t)

	err := entity.MakeCall().SetMode(humidifier.ModeOn).SetTargetHumidity(45).Perform()
	if err != nil {
		t.Fatalf("Perform() error = %v", err)
	}

	if entity.Mode != humidifier.ModeOn {
		t.Errorf("Mode = %v, want ModeOn", entity.Mode)
	}
	if entity.TargetHumidity != 45 {
		t.Errorf("TargetHumidity = %v, want 45", entity.TargetHumidity)
	}
	if entity.Action != humidifier.ActionHumidifying {
		t.Errorf("Action = %v, want ActionHumidifying in continuous mode", entity.Action)
	}
}

func TestActionOffWhenModeOff(t *testing.T) {
	_, entity := newBoundDriver(t)

	if err := entity.MakeCall().SetMode(humidifier.ModeOff).Perform(); err != nil {
		t.Fatalf("Perform() error = %v", err)
	}

	if entity.Action != humidifier.ActionOff {
		t.Errorf("Action = %v, want ActionOff", entity.Action)
	}
}

func TestAutoIdlesWithoutReading(t *testing.T) {
	_, entity := newBoundDriver(t)

	err := entity.MakeCall().SetMode(humidifier.ModeAuto).SetTargetHumidity(50).Perform()
	if err != nil {
		t.Fatalf("Perform() error = %v", err)
	}

	// No sensor reading yet: the unit must not run blind.
	if entity.Action != humidifier.ActionIdle {
		t.Errorf("Action = %v, want ActionIdle before first reading", entity.Action)
	}
}

func TestAutoHumidifiesBelowTarget(t *testing.T) {
	driver, entity := newBoundDriver(t)

	err := entity.MakeCall().SetMode(humidifier.ModeAuto).SetTargetHumidity(50).Perform()
	if err != nil {
		t.Fatalf("Perform() error = %v", err)
	}

	driver.SetCurrentHumidity(40)
	if entity.Action != humidifier.ActionHumidifying {
		t.Errorf("Action = %v, want ActionHumidifying below target", entity.Action)
	}

	driver.SetCurrentHumidity(55)
	if entity.Action != humidifier.ActionIdle {
		t.Errorf("Action = %v, want ActionIdle at/above target", entity.Action)
	}
}

func TestSetCurrentHumidityPublishes(t *testing.T) {
	driver, entity := newBoundDriver(t)

	published := 0
	entity.AddOnStateCallback(func(*humidifier.Humidifier) { published++ })

	driver.SetCurrentHumidity(42)

	if entity.CurrentHumidity != 42 {
		t.Errorf("CurrentHumidity = %v, want 42", entity.CurrentHumidity)
	}
	if published != 1 {
		t.Errorf("state callbacks = %d, want 1", published)
	}
}
