package overview

import (
	"strings"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
)

// Matcher filters a commit sequence down to the commits attributable to a
// target username. Matching is a heuristic over three identity candidates
// (login, author name, author email): the lowercased username matching or
// containing/being contained in any candidate counts as a hit.
//
// The fallback policy lives here too, as an explicit two-phase decision:
// when nothing matches, the newest commits are returned unfiltered so the
// overview degrades to "most recent activity" instead of coming up empty.
type Matcher struct{}

// NewMatcher creates an author matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// MatchOrFallback returns at most limit commits attributed to username.
// An empty username skips matching entirely; zero matches fall back to the
// first limit commits in their original order.
func (m *Matcher) MatchOrFallback(commits []model.Commit, username string, limit int) []model.Commit {
	if limit <= 0 || len(commits) == 0 {
		return nil
	}
	if username == "" {
		return head(commits, limit)
	}

	target := strings.ToLower(username)
	matched := make([]model.Commit, 0, limit)
	for _, c := range commits {
		if matchesAuthor(c.Author, target) {
			matched = append(matched, c)
			if len(matched) == limit {
				break
			}
		}
	}

	if len(matched) == 0 {
		return head(commits, limit)
	}
	return matched
}

// matchesAuthor checks the target against login, name and email. Substring
// containment goes both ways: short usernames inside long names and
// truncated names inside usernames both count.
func matchesAuthor(author model.CommitAuthor, target string) bool {
	for _, candidate := range []string{author.Login, author.Name, author.Email} {
		candidate = strings.ToLower(candidate)
		if candidate == "" {
			continue
		}
		if candidate == target || strings.Contains(candidate, target) || strings.Contains(target, candidate) {
			return true
		}
	}
	return false
}

func head(commits []model.Commit, limit int) []model.Commit {
	if len(commits) <= limit {
		return commits
	}
	return commits[:limit]
}
