package model

import "testing"

func TestRoleFromPath_VendorWinsOverTests(t *testing.T) {
	// S5: tests/vendor/x.rs classifies as Generated (vendor wins over tests).
	got := RoleFromPath("tests/vendor/x.rs")
	if got != RoleGenerated {
		t.Fatalf("got %v, want %v", got, RoleGenerated)
	}
}

func TestRoleFromPath_Cases(t *testing.T) {
	cases := []struct {
		path string
		want FileRole
	}{
		{"src/main.rs", RoleImplementation},
		{"src/main_test.go", RoleTest},
		{"internal/app_test.py", RoleTest},
		{"test_helpers.py", RoleTest},
		{"docs/guide.md", RoleDocumentation},
		{"README.md", RoleDocumentation},
		{"Makefile", RoleBuild},
		{"go.mod", RoleBuild},
		{"config.yaml", RoleConfig},
		{".gitignore", RoleConfig},
		{"vendor/lib/x.go", RoleGenerated},
		{"proto/api.pb.go", RoleGenerated},
		{"data/file.bin", RoleOther},
	}
	for _, c := range cases {
		if got := RoleFromPath(c.path); got != c.want {
			t.Errorf("RoleFromPath(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestTokenBudget_Enforce_S6(t *testing.T) {
	files := []ScoredFile{
		{Path: "a", Tokens: 1000},
		{Path: "b", Tokens: 400},
		{Path: "c", Tokens: 200},
		{Path: "d", Tokens: 50},
	}

	max2000 := uint64(2000)
	got := TokenBudget{MaxBytes: &max2000}.Enforce(files)
	if len(got) != 1 || got[0].Path != "a" {
		t.Fatalf("max_bytes=2000: got %v, want [a]", got)
	}

	max6000 := uint64(6000)
	got = TokenBudget{MaxBytes: &max6000}.Enforce(files)
	if len(got) != 2 || got[0].Path != "a" || got[1].Path != "b" {
		t.Fatalf("max_bytes=6000: got %v, want [a b]", got)
	}
}

func TestTokenBudget_Enforce_Monotone(t *testing.T) {
	files := []ScoredFile{{Path: "a", Tokens: 10}, {Path: "b", Tokens: 10}, {Path: "c", Tokens: 10}}
	small := uint64(40)
	large := uint64(120)
	resultSmall := TokenBudget{MaxBytes: &small}.Enforce(files)
	resultLarge := TokenBudget{MaxBytes: &large}.Enforce(files)
	if len(resultLarge) < len(resultSmall) {
		t.Fatalf("larger budget produced fewer files: %d < %d", len(resultLarge), len(resultSmall))
	}
}

func TestTokenBudget_Enforce_NeverEmptyForNonEmptyInput(t *testing.T) {
	files := []ScoredFile{{Path: "a", Tokens: 100000}}
	tiny := uint64(1)
	got := TokenBudget{MaxBytes: &tiny}.Enforce(files)
	if len(got) != 1 {
		t.Fatalf("expected non-empty result guarantee, got %v", got)
	}
}
