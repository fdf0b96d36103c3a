package expr

import "strings"

const (
	sourceBranch = "Build.SourceBranch"
	buildReason  = "Build.Reason"
	branchPrefix = "refs/heads/"
)

// Variable renders a variables['name'] lookup.
func Variable(name string) string {
	return "variables[" + Quote(name) + "]"
}

// Parameter renders a parameters.name lookup.
func Parameter(name string) string {
	return "parameters." + name
}

// Quote renders s as an expression string literal.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// BranchRef expands a short branch name to its refs/heads/ form.
func BranchRef(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "refs/") {
		return name
	}
	return branchPrefix + name
}

// IsBranch matches the source branch of the run.
func IsBranch(name string) Condition {
	return Equal(Variable(sourceBranch), Quote(BranchRef(name)))
}

func IsNotBranch(name string) Condition {
	return NotEqual(Variable(sourceBranch), Quote(BranchRef(name)))
}

// IsPullRequest matches runs triggered by a pull request.
func IsPullRequest() Condition {
	return Equal(Variable(buildReason), Quote("PullRequest"))
}

func IsNotPullRequest() Condition {
	return NotEqual(Variable(buildReason), Quote("PullRequest"))
}
