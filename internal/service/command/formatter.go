package command

import (
	"fmt"
	"strings"
)

// ResponseFormatter builds the markdown replies of slash commands.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Heading(title string) string {
	return fmt.Sprintf("🧠 **%s**\n", title)
}

// Error renders a failed command the same way the controller renders
// server side failures.
func (f *ResponseFormatter) Error(err error) string {
	return "Error: " + err.Error()
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**  ›  `%s`\n", label, value)
}

func (f *ResponseFormatter) Usage(command string) string {
	return fmt.Sprintf("**Usage**: `%s`\n", command)
}

func (f *ResponseFormatter) Examples(examples []string) string {
	quoted := make([]string, 0, len(examples))
	for _, ex := range examples {
		quoted = append(quoted, "`"+ex+"`")
	}
	return "**Examples**: " + strings.Join(quoted, ", ") + "\n"
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("› " + item + "\n")
	}
	return sb.String()
}

func (f *ResponseFormatter) Tip(text string) string {
	return fmt.Sprintf("**Tip**: %s\n", text)
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}
