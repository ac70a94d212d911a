package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Text answer limits, in characters.
const (
	MinTextLength = 2
	MaxTextLength = 200
)

// forbiddenChars are rejected in free text so answers stay safe to embed
// in reports and markup.
const forbiddenChars = `<>{}[]\`

// Text validates a free-text answer such as the building name.
func Text(raw string) Result {
	s := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(s)
	if n < MinTextLength {
		return Reject(fmt.Sprintf("Réponse trop courte : au moins %d caractères.", MinTextLength))
	}
	if n > MaxTextLength {
		return Reject(fmt.Sprintf("Réponse trop longue : %d caractères au maximum (%d saisis).", MaxTextLength, n))
	}
	if i := strings.IndexAny(s, forbiddenChars); i >= 0 {
		return Reject(fmt.Sprintf("Le caractère « %c » n'est pas autorisé.", s[i]))
	}
	return Accept(s)
}
