package score

import (
	"testing"

	"github.com/Demwunz/topo/internal/model"
)

func TestHeuristic_ScoreIsBounded(t *testing.T) {
	s := NewHeuristicScorer("auth middleware")
	got := s.Score("src/auth/middleware.rs", model.RoleImplementation, 500)
	if got < 0 || got > 1 {
		t.Errorf("Score = %v, want in [0,1]", got)
	}
}

func TestHeuristic_KeywordMatchBoostsScore(t *testing.T) {
	s := NewHeuristicScorer("auth")
	withMatch := s.Score("src/auth/handler.rs", model.RoleImplementation, 500)
	withoutMatch := s.Score("src/utils/helper.rs", model.RoleImplementation, 500)
	if withMatch <= withoutMatch {
		t.Errorf("withMatch = %v, withoutMatch = %v; expected a path match to score higher", withMatch, withoutMatch)
	}
}

func TestHeuristic_ImplScoresHigherThanTest(t *testing.T) {
	s := NewHeuristicScorer("handler")
	impl := s.Score("src/handler.rs", model.RoleImplementation, 500)
	test := s.Score("tests/handler_test.rs", model.RoleTest, 500)
	if impl <= test {
		t.Errorf("impl = %v, test = %v; implementation role should outscore test role", impl, test)
	}
}

func TestHeuristic_ShallowFilesScoreHigher(t *testing.T) {
	s := NewHeuristicScorer("main")
	shallow := s.Score("src/main.rs", model.RoleImplementation, 500)
	deep := s.Score("src/deeply/nested/path/main.rs", model.RoleImplementation, 500)
	if shallow <= deep {
		t.Errorf("shallow = %v, deep = %v; shallower paths should score higher", shallow, deep)
	}
}

func TestHeuristic_LargeFilesPenalized(t *testing.T) {
	s := NewHeuristicScorer("utils")
	small := s.Score("src/utils.rs", model.RoleImplementation, 500)
	large := s.Score("src/utils.rs", model.RoleImplementation, 500_000)
	if small <= large {
		t.Errorf("small = %v, large = %v; large files should be penalized", small, large)
	}
}

func TestHeuristic_WellKnownPathsBoosted(t *testing.T) {
	s := NewHeuristicScorer("module")
	src := s.Score("src/module.rs", model.RoleImplementation, 500)
	random := s.Score("random/module.rs", model.RoleImplementation, 500)
	if src <= random {
		t.Errorf("src = %v, random = %v; a well-known root should score higher", src, random)
	}
}

func TestHeuristic_EmptyQueryStillBounded(t *testing.T) {
	s := NewHeuristicScorer("")
	got := s.Score("src/main.rs", model.RoleImplementation, 500)
	if got < 0 || got > 1 {
		t.Errorf("Score = %v, want in [0,1]", got)
	}
}

func TestHeuristic_GeneratedFilesPenalized(t *testing.T) {
	s := NewHeuristicScorer("errors")
	impl := s.Score("src/errors.rs", model.RoleImplementation, 500)
	generated := s.Score("generated/errors.rs", model.RoleGenerated, 500)
	if impl <= generated {
		t.Errorf("impl = %v, generated = %v; generated role should score lower", impl, generated)
	}
}
