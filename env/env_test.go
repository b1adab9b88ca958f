package env

import (
	"os"
	"testing"
)

func TestInt(t *testing.T) {
	result := Int("nonexistent", 15)
	Parse()

	if *result != 15 {
		t.Fatalf("expected result=15, got result=%d", *result)
	}

	err := os.Setenv("int-key", "25")
	if err != nil {
		t.Fatal("unexpected error", err)
	}

	result = Int("int-key", 15)
	Parse()

	if *result != 25 {
		t.Fatalf("expected result=25, got result=%d", *result)
	}
}

func TestBool(t *testing.T) {
	result := Bool("nonexistent", true)
	Parse()

	if *result != true {
		t.Fatalf("expected result=true, got result=%t", *result)
	}

	err := os.Setenv("bool-key", "false")
	if err != nil {
		t.Fatal("unexpected error", err)
	}

	result = Bool("bool-key", true)
	Parse()

	if *result != false {
		t.Fatalf("expected result=false, got result=%t", *result)
	}
}

func TestString(t *testing.T) {
	result := String("nonexistent", "default")
	Parse()

	if *result != "default" {
		t.Fatalf("expected result=default, got result=%s", *result)
	}

	err := os.Setenv("string-key", "plutus.json")
	if err != nil {
		t.Fatal("unexpected error", err)
	}

	result = String("string-key", "default")
	Parse()

	if *result != "plutus.json" {
		t.Fatalf("expected result=plutus.json, got result=%s", *result)
	}
}
