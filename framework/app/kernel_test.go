package app_test

import (
	"testing"

	"github.com/km-arc/go-container/framework/app"
	"github.com/km-arc/go-container/framework/container"
)

func newApp(t *testing.T) *app.Application {
	t.Helper()
	a, err := app.New("testdata/missing.env")
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	return a
}

// ── Bootstrap ────────────────────────────────────────────────────────────────

func TestNew_CoreServicesBound(t *testing.T) {
	a := newApp(t)

	if _, err := a.Config(); err != nil {
		t.Errorf("Config: %v", err)
	}
	if _, err := a.Router(); err != nil {
		t.Errorf("Router: %v", err)
	}
}

func TestNew_ConfigIsSingleton(t *testing.T) {
	a := newApp(t)

	first, err := a.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	second, err := a.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if first != second {
		t.Error("config should resolve to the same instance")
	}
}

func TestBoot_Idempotent(t *testing.T) {
	a := newApp(t)

	if err := a.Boot(); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if err := a.Boot(); err != nil {
		t.Fatalf("second Boot: %v", err)
	}
	if !a.Providers.Booted() {
		t.Error("Booted() should be true after Boot()")
	}
}

// ── Environment ──────────────────────────────────────────────────────────────

func TestEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "testing")

	a := newApp(t)
	if env := a.Environment(); env != "testing" {
		t.Errorf("Environment: got %q want %q", env, "testing")
	}
	if !a.IsTesting() {
		t.Error("IsTesting should be true")
	}
	if a.IsLocal() || a.IsProduction() {
		t.Error("IsLocal/IsProduction should be false")
	}
}

// ── User providers ───────────────────────────────────────────────────────────

type clockProvider struct {
	container.BaseProvider
}

func (p *clockProvider) Register(c *container.Container) error {
	return c.Instance("tick", 42)
}

func TestRegister_UserProvider(t *testing.T) {
	a := newApp(t)

	if err := a.Register(&clockProvider{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	v, err := a.Resolve("tick")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if v != 42 {
		t.Errorf("tick: got %v want 42", v)
	}
}
