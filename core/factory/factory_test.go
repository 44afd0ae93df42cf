package factory

import (
	"errors"
	"reflect"
	"testing"
)

type sample struct {
	A    int
	Rate float32
}

type sampleConf struct {
	A    int     `json:"a"`
	Rate float32 `json:"rate"`
}

func sampleFactory(conf map[string]any) (*sample, error) {
	var c sampleConf
	if err := Decode(conf, &c); err != nil {
		return nil, err
	}
	return &sample{A: c.A, Rate: c.Rate}, nil
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	if err := reg.Register("s", sampleFactory); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "s", Conf: map[string]any{"a": 3, "rate": 0.5}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.A != 3 || inst.Rate != 0.5 {
		t.Fatalf("unexpected instance %+v", inst)
	}
}

// Environment overrides arrive as strings.
func TestDecode_WeakStrings(t *testing.T) {
	var c sampleConf
	if err := Decode(map[string]any{"a": "7", "rate": "0.25"}, &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.A != 7 || c.Rate != 0.25 {
		t.Fatalf("unexpected conf %+v", c)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatal("expected duplicate error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "y"}); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
	if got := reg.Types(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("unexpected types %v", got)
	}
}
