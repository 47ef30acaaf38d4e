package errors

import (
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	valid := []string{"ops", "order_queue", "fleet-overview", "a", "Region9"}
	for _, name := range valid {
		if err := ValidateIdentifier(name); err != nil {
			t.Errorf("ValidateIdentifier(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{
		"",
		"9region",
		"_leading",
		"has space",
		"semi;colon",
		"tab\tname",
		strings.Repeat("a", 129),
	}
	for _, name := range invalid {
		if err := ValidateIdentifier(name); err == nil {
			t.Errorf("ValidateIdentifier(%q) = nil, want error", name)
		}
	}
}

func TestValidateManifestFilename(t *testing.T) {
	if err := ValidateManifestFilename("dazzle.toml"); err != nil {
		t.Errorf("valid filename rejected: %v", err)
	}
	for _, name := range []string{"", "dir/dazzle.toml", `dir\dazzle.toml`, ".hidden"} {
		if err := ValidateManifestFilename(name); err == nil {
			t.Errorf("ValidateManifestFilename(%q) = nil, want error", name)
		}
	}
}

func TestValidatePath(t *testing.T) {
	valid := []string{"dazzle.toml", "configs/prod/dazzle.toml", "/etc/dazzle/dazzle.toml"}
	for _, p := range valid {
		if err := ValidatePath(p); err != nil {
			t.Errorf("ValidatePath(%q) = %v, want nil", p, err)
		}
	}

	invalid := []string{
		"",
		"../escape.toml",
		"a\x00b",
		`windows\path.toml`,
		strings.Repeat("a", 501),
	}
	for _, p := range invalid {
		if err := ValidatePath(p); err == nil {
			t.Errorf("ValidatePath(%q) = nil, want error", p)
		}
	}
}
