package ml

import (
	"errors"
	"testing"
)

func blankInputs() []string {
	return make([]string, FeatureCount)
}

func TestFeatureNamesOrder(t *testing.T) {
	names := FeatureNames()
	if len(names) != FeatureCount {
		t.Fatalf("expected %d names, got %d", FeatureCount, len(names))
	}
	if names[0] != "Node_ID" || names[6] != "SNR" || names[14] != "Bandwidth" {
		t.Fatalf("unexpected order: %v", names)
	}
	names[0] = "changed"
	if FeatureNames()[0] != "Node_ID" {
		t.Fatal("FeatureNames must return a copy")
	}
	if idx, ok := FeatureIndex("CPU_Usage"); !ok || idx != 12 {
		t.Fatalf("expected CPU_Usage at 12, got %d %v", idx, ok)
	}
	if _, ok := FeatureIndex("cpu_usage"); ok {
		t.Fatal("field lookup must be exact")
	}
}

func TestParseFeaturesBlankSubstitution(t *testing.T) {
	raw := blankInputs()
	raw[1] = "1.0"
	vector, err := ParseFeatures(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vector[0] != 0 || vector[1] != 1.0 || vector[2] != 0 {
		t.Fatalf("unexpected vector: %v", vector)
	}
}

func TestParseFeaturesTrimsWhitespace(t *testing.T) {
	raw := blankInputs()
	raw[0] = "  42 "
	raw[3] = "\t"
	raw[4] = "-3.5e2"
	vector, err := ParseFeatures(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vector[0] != 42 || vector[3] != 0 || vector[4] != -350 {
		t.Fatalf("unexpected vector: %v", vector)
	}
}

func TestParseFeaturesInvalid(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"letters", "abc"},
		{"mixed", "12abc"},
		{"nan", "NaN"},
		{"inf", "Inf"},
		{"overflow", "1e400"},
		{"dotted quad", "10.0.0.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := blankInputs()
			raw[5] = tc.value
			_, err := ParseFeatures(raw)
			if !errors.Is(err, ErrInvalidNumber) {
				t.Fatalf("expected invalid number, got %v", err)
			}
			var invalid *InvalidNumberError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidNumberError, got %T", err)
			}
			if invalid.Value != tc.value || invalid.Field != "Signal_Strength" {
				t.Fatalf("unexpected error detail: %+v", invalid)
			}
		})
	}
}

func TestParseFeaturesWrongLength(t *testing.T) {
	_, err := ParseFeatures([]string{"1", "2"})
	if !errors.Is(err, ErrInvalidNumber) {
		t.Fatalf("expected invalid number, got %v", err)
	}
}

func TestInvalidNumberMessageIncludesValue(t *testing.T) {
	err := &InvalidNumberError{Field: "SNR", Value: "abc"}
	want := "Error converting input to float: could not convert string to float: 'abc'"
	if err.Error() != want {
		t.Fatalf("got %q", err.Error())
	}
}
