package inputval

import (
	"strings"
	"testing"
)

type postInput struct {
	Text string `validate:"required,max=10000" label:"Text"`
}

type signupInput struct {
	Username string `validate:"required,alphanum,max=150" label:"Username"`
	Password string `validate:"required,min=8" label:"Password"`
}

func TestValidate_Required(t *testing.T) {
	res := Validate(postInput{Text: ""})
	if !res.HasErrors() {
		t.Fatal("expected validation errors for empty text")
	}
	if !strings.Contains(res.First(), "Text") {
		t.Errorf("message should name the field label, got %q", res.First())
	}

	res = Validate(postInput{Text: "hello"})
	if res.HasErrors() {
		t.Errorf("unexpected errors: %v", res.All())
	}
}

func TestValidate_MultipleFields(t *testing.T) {
	res := Validate(signupInput{Username: "", Password: "short"})
	if len(res.All()) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(res.All()), res.All())
	}
	if !strings.Contains(res.First(), "Username") {
		t.Errorf("first error should be about Username, got %q", res.First())
	}
}

func TestValidate_Alphanum(t *testing.T) {
	res := Validate(signupInput{Username: "not valid!", Password: "longenough"})
	if !res.HasErrors() {
		t.Fatal("expected error for non-alphanumeric username")
	}
}

func TestNonEmpty(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"text", true},
		{"  text  ", true},
		{"", false},
		{"   ", false},
		{"\n\t", false},
	}

	for _, tt := range tests {
		if got := NonEmpty(tt.input); got != tt.want {
			t.Errorf("NonEmpty(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
