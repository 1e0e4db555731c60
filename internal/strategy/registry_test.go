package strategy

import (
	"context"
	"testing"

	"backcast/internal/backtest"
	"backcast/internal/domain"
)

// stubStrategy is a minimal Strategy implementation used in registry tests.
type stubStrategy struct {
	name    string
	capital float64
}

func (s *stubStrategy) Name() string { return s.name }
func (s *stubStrategy) GenerateSignals(_ context.Context, _ backtest.View, _ *backtest.SignalBook) error {
	return nil
}
func (s *stubStrategy) ExecuteTrade(_ context.Context, _ domain.Signal) error { return nil }
func (s *stubStrategy) ManageRisk(_ context.Context) error                    { return nil }
func (s *stubStrategy) EvaluatePerformance(_ context.Context) (backtest.Report, error) {
	return nil, nil
}

func stubFactory(name string) Factory {
	return func(p Params) (backtest.Strategy, error) {
		return &stubStrategy{name: name, capital: p.InitialCapital}, nil
	}
}

func TestRegistryRegisterAndNew(t *testing.T) {
	r := NewRegistry()
	r.Register("test-strategy", stubFactory("test-strategy"))

	got, err := r.New("test-strategy", Params{InitialCapital: 5000})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if got.Name() != "test-strategy" {
		t.Errorf("New returned strategy with Name() = %q, want %q", got.Name(), "test-strategy")
	}
	if got.(*stubStrategy).capital != 5000 {
		t.Errorf("factory received capital %v, want 5000", got.(*stubStrategy).capital)
	}
}

func TestRegistryNew_Unknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.New("nonexistent", Params{}); err == nil {
		t.Error("New returned nil error for unregistered strategy")
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register("beta", stubFactory("beta"))
	r.Register("alpha", stubFactory("alpha"))

	names := r.List()
	if len(names) != 2 {
		t.Fatalf("List returned %d names, want 2", len(names))
	}
	// List returns sorted names.
	if names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("List returned %v, want [alpha beta]", names)
	}
}

func TestParamsOption(t *testing.T) {
	p := Params{Options: map[string]float64{"short": 5}}

	if got := p.Option("short", 10); got != 5 {
		t.Errorf("Option(short) = %v, want 5", got)
	}
	if got := p.Option("long", 30); got != 30 {
		t.Errorf("Option(long) fallback = %v, want 30", got)
	}
}
