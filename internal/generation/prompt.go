package generation

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var prompts = template.Must(
	template.New("prompts").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templatesFS, "templates/*.tmpl"),
)

type summaryPromptData struct {
	domain.ResolvedSummaryOptions
	NoteText string
}

type quizPromptData struct {
	domain.ResolvedQuizOptions
	NoteText string
}

// BuildSummaryPrompt renders the summary instruction for noteText. The
// output depends only on its inputs, so identical calls yield identical
// prompts.
func BuildSummaryPrompt(noteText string, opts domain.ResolvedSummaryOptions) (string, error) {
	return render("summary.tmpl", summaryPromptData{ResolvedSummaryOptions: opts, NoteText: noteText})
}

// BuildQuizPrompt renders the quiz instruction for noteText, stating the
// question and choice counts, the difficulty and the single-answer rule.
func BuildQuizPrompt(noteText string, opts domain.ResolvedQuizOptions) (string, error) {
	return render("quiz.tmpl", quizPromptData{ResolvedQuizOptions: opts, NoteText: noteText})
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := prompts.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}
