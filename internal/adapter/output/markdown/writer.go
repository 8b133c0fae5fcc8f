package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mwestbrook/genstudio/internal/domain"
)

type clock func() string

// Writer renders generation sessions into Markdown report files.
type Writer struct {
	now clock
}

// NewWriter constructs a Markdown writer with a timestamp supplier.
func NewWriter(now clock) *Writer {
	return &Writer{now: now}
}

// Write persists a Markdown report to disk and returns its path.
func (w *Writer) Write(ctx context.Context, report domain.SessionReport) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(report.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("session_%s_%s.md", sanitise(report.Model), w.now())
	path := filepath.Join(report.OutputDir, filename)

	content := buildContent(report)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}

	return path, nil
}

func buildContent(report domain.SessionReport) string {
	var builder strings.Builder
	caser := cases.Title(language.English)
	builder.WriteString("# Generation Session Report\n\n")
	builder.WriteString(fmt.Sprintf("- Model: %s\n", report.Model))
	if report.Elapsed > 0 {
		builder.WriteString(fmt.Sprintf("- Elapsed: %s\n", report.Elapsed.Round(time.Millisecond)))
	}
	builder.WriteString("\n## Prompt\n\n")
	builder.WriteString(report.Prompt)
	builder.WriteString("\n")
	if report.RewrittenPrompt != "" && report.RewrittenPrompt != report.Prompt {
		builder.WriteString("\n## Rewritten Prompt\n\n")
		builder.WriteString(report.RewrittenPrompt)
		builder.WriteString("\n")
	}

	if len(report.Images) > 0 {
		builder.WriteString("\n## Images\n\n")
		for i, image := range report.Images {
			builder.WriteString(fmt.Sprintf("### Image %d\n", i+1))
			builder.WriteString(fmt.Sprintf("- Locator: %s\n", image.Locator))
			builder.WriteString(fmt.Sprintf("- Type: %s\n", image.MIMEType))
			if image.Caption != "" {
				builder.WriteString(fmt.Sprintf("- Caption: %s\n", image.Caption))
			}
			builder.WriteString("\n")
		}
	}

	if report.Critique != "" {
		builder.WriteString("## Critique\n\n")
		builder.WriteString(report.Critique)
		builder.WriteString("\n\n")
	}

	if len(report.Answers) > 0 {
		builder.WriteString("## Evaluation\n\n")
		for _, answer := range report.Answers {
			verdict := "No"
			if answer.Answer {
				verdict = "Yes"
			}
			builder.WriteString(fmt.Sprintf("- %s %s\n", caser.String(answer.Question), verdict))
		}
		builder.WriteString("\n")
	}

	if len(report.Grounding) > 0 {
		builder.WriteString("## Grounding\n\n")
		keys := make([]string, 0, len(report.Grounding))
		for key := range report.Grounding {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			builder.WriteString(fmt.Sprintf("- %s\n", key))
		}
	}

	return builder.String()
}

func sanitise(value string) string {
	if value == "" {
		return "unknown"
	}
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, string(filepath.Separator), "-")
	value = strings.ReplaceAll(value, " ", "-")
	return value
}
