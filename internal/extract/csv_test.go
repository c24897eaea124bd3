package extract

import (
	"strings"
	"testing"
)

func TestCSVExtractor_RowsBecomeBullets(t *testing.T) {
	input := "name,role\nAda,engineer\nBob,operator\n"
	e := &CSVExtractor{}
	got, err := e.Extract(strings.NewReader(input), "people.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "name, role\n\n- name: Ada, role: engineer\n- name: Bob, role: operator"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCSVExtractor_HeaderOnly(t *testing.T) {
	e := &CSVExtractor{}
	got, err := e.Extract(strings.NewReader("a,b,c\n"), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a, b, c" {
		t.Errorf("expected header line, got %q", got)
	}
}

func TestCSVExtractor_EmptyInput(t *testing.T) {
	e := &CSVExtractor{}
	got, err := e.Extract(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
