// Package relevance is the local pre-submission filter for new
// tickets. It is a fixed keyword classifier: no network access, no
// state, deterministic, and available even when the remote
// classification service is down.
package relevance

import (
	"fmt"
	"strings"
)

// offTopicTerms reject a submission outright: they indicate personal
// or off-scope subjects that never belong on the support queue.
var offTopicTerms = []string{
	"marmita", "caixinha", "natal", "aniversário", "pizza", "café",
	"emprestado", "pedi para", "presente", "brinde", "comida",
	"parabéns", "folga", "festa", "viagem",
}

// redirectTerms are HR-adjacent subjects. They never reject a
// submission; RedirectHint surfaces them as an informational note so
// the user can consider the right department first.
var redirectTerms = []string{
	"vale-transporte", "salário", "férias", "atestado", "holerite",
}

// Check classifies a ticket submission from its title and description.
// It returns (true, "") when the submission may proceed, or (false,
// reason) when an off-topic term was found. Matching is
// case-insensitive substring search over title and description
// concatenated.
func Check(title, description string) (bool, string) {
	text := strings.ToLower(title + " " + description)
	for _, term := range offTopicTerms {
		if strings.Contains(text, term) {
			reason := fmt.Sprintf(
				"o conteúdo (%q) sugere um assunto pessoal ou não relacionado a suporte técnico (TI) ou estrutural",
				term)
			return false, reason
		}
	}
	return true, ""
}

// RedirectHint returns the first HR-redirect term found in the
// submission, or "" when none matches. Informational only: the caller
// must not block the submission on it.
func RedirectHint(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, term := range redirectTerms {
		if strings.Contains(text, term) {
			return term
		}
	}
	return ""
}
