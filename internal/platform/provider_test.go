package platform

import (
	"errors"
	"testing"
)

func TestNewProvider_UsesRegisteredFunc(t *testing.T) {
	orig := NewProviderFunc
	defer func() { NewProviderFunc = orig }()

	var gotOpts Options
	NewProviderFunc = func(opts Options) (*Provider, error) {
		gotOpts = opts
		return &Provider{}, nil
	}

	p, err := NewProvider(Options{Display: Size{10, 20}})
	if err != nil {
		t.Fatal(err)
	}
	if p == nil {
		t.Fatal("expected provider")
	}
	if gotOpts.Display != (Size{10, 20}) {
		t.Errorf("options not passed through: %+v", gotOpts)
	}
}

func TestNewProvider_Unregistered(t *testing.T) {
	orig := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = orig }()

	_, err := NewProvider(Options{})
	if err == nil {
		t.Fatal("expected error without a registered backend")
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}
