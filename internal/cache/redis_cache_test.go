package cache

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func matchesAny(patterns []string, key string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, key); ok {
			return true
		}
	}
	return false
}

func TestKeys_EscapeSegments(t *testing.T) {
	assert.Equal(t, "summary:st1:A1:-", SummaryKey("st1", "A1", "-"))
	assert.Equal(t, "report:st1:A1+Beginner:g1", ReportKey("st1", "A1 Beginner", "g1"))
	assert.Equal(t, "summary:st1%3Ax:A1:-", SummaryKey("st1:x", "A1", "-"))
	assert.Equal(t, "summary:%2A:lvl%3F:-", SummaryKey("*", "lvl?", "-"))
}

func TestStudentPatterns(t *testing.T) {
	patterns := StudentPatterns("st1")
	assert.Equal(t, []string{"summary:st1:*", "report:st1:*"}, patterns)

	assert.True(t, matchesAny(patterns, SummaryKey("st1", "A1", "-")))
	assert.True(t, matchesAny(patterns, ReportKey("st1", "B2", "g7")))

	assert.False(t, matchesAny(patterns, SummaryKey("st2", "st1", "-")))
	assert.False(t, matchesAny(patterns, ReportKey("st3", "A1", "st1")))
	assert.False(t, matchesAny(patterns, SummaryKey("st1:x", "A1", "-")))
	assert.False(t, matchesAny(patterns, SummaryKey("st10", "A1", "-")))
}

func TestStudentPatterns_GlobIDsMatchNothingElse(t *testing.T) {
	keys := []string{
		SummaryKey("st1", "A1", "-"),
		ReportKey("st2", "A1", "g1"),
	}
	for _, id := range []string{"*", "st?", "[s]t1", `\*`} {
		for _, key := range keys {
			assert.False(t, matchesAny(StudentPatterns(id), key), "%s vs %s", id, key)
		}
	}
}
