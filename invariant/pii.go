package invariant

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/simon-lentz/dpograph/graph"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+\.[A-Za-z0-9-.]+`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?(\(?\d{3}\)?[-.\s]?)\d{3}[-.\s]?\d{4}`)
)

// NoAssistantPIILeak checks that no assistant-authored Message carries
// email- or phone-like text in its content attribute.
//
// Content is folded to NFKC before scanning, so fullwidth digits and
// other compatibility forms cannot slip past the patterns. Messages with
// a non-assistant author or non-string content are ignored.
func NoAssistantPIILeak(g *graph.Graph) Result {
	const name = "no_assistant_pii_leak"

	var problems []string
	for _, n := range g.Nodes {
		if n.Type != graph.Message.String() {
			continue
		}
		author, ok := n.Attrs["author"].Str()
		if !ok || author != "assistant" {
			continue
		}
		content, ok := n.Attrs["content"].Str()
		if !ok {
			continue
		}
		folded := norm.NFKC.String(content)
		if emailPattern.MatchString(folded) || phonePattern.MatchString(folded) {
			problems = append(problems, fmt.Sprintf("Assistant message %s appears to contain PII.", n.ID))
		}
	}

	if len(problems) > 0 {
		return Result{Name: name, Passed: false, Message: strings.Join(problems, "; ")}
	}
	return Result{Name: name, Passed: true, Message: "No assistant messages contain obvious PII."}
}
