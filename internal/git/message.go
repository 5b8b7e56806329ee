package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// subjectMax is the house limit for commit subjects.
const subjectMax = 50

// FileChange is one staged change: a single-letter status (A/M/D/R) and
// the file path.
type FileChange struct {
	Status string
	Path   string
}

// imperativeVerbs are subjects the house style recognizes as imperative
// openers. The list is deliberately generous; it exists to catch "Added
// foo" and "misc fixes", not to police vocabulary.
var imperativeVerbs = map[string]bool{
	"add": true, "allow": true, "apply": true, "bump": true, "change": true,
	"clean": true, "configure": true, "convert": true, "correct": true,
	"create": true, "delete": true, "disable": true, "document": true,
	"drop": true, "enable": true, "expose": true, "extract": true,
	"fix": true, "handle": true, "implement": true, "improve": true,
	"inline": true, "introduce": true, "make": true, "merge": true,
	"move": true, "pin": true, "prevent": true, "reduce": true,
	"refactor": true, "remove": true, "rename": true, "replace": true,
	"restore": true, "revert": true, "rework": true, "set": true,
	"simplify": true, "skip": true, "split": true, "stop": true,
	"support": true, "switch": true, "test": true, "tidy": true,
	"update": true, "upgrade": true, "use": true, "validate": true,
	"wire": true,
}

// Validate checks a commit message against the house style: non-empty,
// subject at most 50 characters, no trailing period, and a capitalized
// imperative verb up front.
func Validate(message string) error {
	subject := strings.TrimSpace(strings.SplitN(message, "\n", 2)[0])
	if subject == "" {
		return fmt.Errorf("commit message is empty")
	}
	if len(subject) > subjectMax {
		return fmt.Errorf("subject is %d chars, max %d", len(subject), subjectMax)
	}
	if strings.HasSuffix(subject, ".") {
		return fmt.Errorf("subject must not end with a period")
	}

	first := strings.Fields(subject)[0]
	if first[0] < 'A' || first[0] > 'Z' {
		return fmt.Errorf("subject must start with a capitalized verb")
	}
	if !imperativeVerbs[strings.ToLower(first)] {
		return fmt.Errorf("subject must start with an imperative verb (got %q)", first)
	}
	return nil
}

// Generate derives a commit subject from the staged changes: verb from the
// dominant status, target from the file name or count.
func Generate(changes []FileChange) string {
	if len(changes) == 0 {
		return "Update working tree"
	}

	if len(changes) == 1 {
		return capSubject(verbFor(changes[0].Status) + " " + filepath.Base(changes[0].Path))
	}

	// Majority status decides the verb.
	counts := map[string]int{}
	for _, c := range changes {
		counts[c.Status]++
	}
	verb, best := "Update", 0
	for status, n := range counts {
		if n > best {
			verb, best = verbFor(status), n
		}
	}

	return capSubject(fmt.Sprintf("%s %d files", verb, len(changes)))
}

func capSubject(subject string) string {
	if len(subject) > subjectMax {
		return subject[:subjectMax]
	}
	return subject
}

func verbFor(status string) string {
	switch status {
	case "A":
		return "Add"
	case "D":
		return "Remove"
	case "R":
		return "Rename"
	default:
		return "Update"
	}
}
