package slug_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/slug"
)

func alwaysAvailable(_ context.Context, _ string) (bool, error) { return true, nil }
func neverAvailable(_ context.Context, _ string) (bool, error)  { return false, nil }

func TestValidate_TooShort(t *testing.T) {
	err := slug.Validate(context.Background(), "ab", alwaysAvailable)
	if !errors.Is(err, slug.ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

func TestValidate_InvalidCharacters(t *testing.T) {
	for _, s := range []string{"My Store!", "UPPER", "double--hyphen", "-leading", "trailing-", "spa ce"} {
		err := slug.Validate(context.Background(), s, alwaysAvailable)
		if !errors.Is(err, slug.ErrInvalidFormat) {
			t.Errorf("%q: expected ErrInvalidFormat, got %v", s, err)
		}
	}
}

func TestValidate_Taken(t *testing.T) {
	err := slug.Validate(context.Background(), "my-store", neverAvailable)
	if !errors.Is(err, slug.ErrTaken) {
		t.Fatalf("expected ErrTaken, got %v", err)
	}
}

func TestValidate_Accepted(t *testing.T) {
	if err := slug.Validate(context.Background(), "green-leaf-99", alwaysAvailable); err != nil {
		t.Fatalf("expected valid slug, got %v", err)
	}
}

func TestValidate_ShortCircuitsBeforeGateway(t *testing.T) {
	called := false
	check := func(_ context.Context, _ string) (bool, error) {
		called = true
		return true, nil
	}
	_ = slug.Validate(context.Background(), "Bad Slug", check)
	if called {
		t.Fatal("gateway should not be called when format validation fails")
	}
}

func TestValidate_GatewayError(t *testing.T) {
	boom := errors.New("gateway down")
	err := slug.Validate(context.Background(), "fine-slug", func(_ context.Context, _ string) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped gateway error, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	cases := map[string]string{
		"My Store!":        "my-store",
		"Green Leaf  99":   "green-leaf-99",
		"--Dash--Heavy--":  "dash-heavy",
		"Już herbal café":  "ju-herbal-caf",
		"   spaced   out ": "spaced-out",
		"simple":           "simple",
	}
	for in, want := range cases {
		if got := slug.Generate(in); got != want {
			t.Errorf("Generate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateThenValidate(t *testing.T) {
	// A generated suggestion is not pre-validated, but well-formed names
	// should pass the format rules.
	s := slug.Generate("My Store!")
	if err := slug.Validate(context.Background(), s, alwaysAvailable); err != nil {
		t.Fatalf("generated slug %q failed validation: %v", s, err)
	}
}
