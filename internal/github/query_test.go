package github

import "testing"

func TestQueryString(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			name:  "term only",
			query: Query{Term: "torvalds"},
			want:  "torvalds",
		},
		{
			name:  "term is trimmed",
			query: Query{Term: "  torvalds  "},
			want:  "torvalds",
		},
		{
			name: "all qualifiers",
			query: Query{
				Term:         "linus",
				Location:     "finland",
				MinRepos:     5,
				MinFollowers: 1000,
				Type:         "user",
				Sort:         "followers",
			},
			want: "linus location:finland repos:>=5 followers:>=1000 type:user sort:followers",
		},
		{
			name:  "zero thresholds are skipped",
			query: Query{Term: "linus", MinRepos: 0, MinFollowers: 0},
			want:  "linus",
		},
		{
			name:  "qualifiers without a term",
			query: Query{Location: "berlin", Type: "org"},
			want:  "location:berlin type:org",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryIsEmpty(t *testing.T) {
	if !(Query{Term: "   "}).IsEmpty() {
		t.Error("IsEmpty() should be true for a whitespace-only term")
	}
	if (Query{Term: "octocat"}).IsEmpty() {
		t.Error("IsEmpty() should be false when a term is set")
	}
}
