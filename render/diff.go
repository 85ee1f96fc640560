package render

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/stagehand-dev/stagehand"
)

// ContextDiff renders a unified diff between the permanent record and the
// context view of a transcript. Useful for debugging purge directives: the
// diff shows exactly what the model can no longer see.
func ContextDiff(t *stagehand.Transcript) (string, error) {
	permanent := Messages(t.Permanent())
	context := Messages(t.ContextView())
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(permanent),
		B:        difflib.SplitLines(context),
		FromFile: "permanent",
		ToFile:   "context",
		Context:  3,
	})
}
