package discovery

import (
	"fmt"
	"strings"
)

// RenderList formats docs as the human-readable documentation index.
func RenderList(docs []Doc, projectName string) string {
	var sb strings.Builder

	if len(docs) == 0 {
		sb.WriteString("No documentation with front matter found.\n")
		return sb.String()
	}

	rule := strings.Repeat("=", 70)
	sb.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&sb, "  %s - DOCUMENTATION INDEX\n", strings.ToUpper(projectName))
	sb.WriteString(rule + "\n\n")

	for _, doc := range docs {
		sb.WriteString(doc.Path + "\n")
		fmt.Fprintf(&sb, "  Summary: %s\n", doc.Summary)
		fmt.Fprintf(&sb, "  Trigger: %s\n\n", triggerLine(doc))
	}

	return sb.String()
}

// RenderAI formats docs for injection into an AI system prompt.
func RenderAI(docs []Doc) string {
	if len(docs) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n# PROJECT CONTEXT GUIDE\n")
	sb.WriteString("Review this list. Read the full content of a file ONLY if the current task matches its 'Read when' trigger.\n\n")

	for _, doc := range docs {
		fmt.Fprintf(&sb, "FILE: %s\n", doc.Path)
		fmt.Fprintf(&sb, "DESC: %s\n", doc.Summary)
		fmt.Fprintf(&sb, "WHEN: %s\n\n", triggerLine(doc))
	}

	return sb.String()
}

func triggerLine(doc Doc) string {
	if len(doc.ReadWhen) == 0 {
		return "N/A"
	}
	return strings.Join(doc.ReadWhen, ", ")
}
