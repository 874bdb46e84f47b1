package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/pageaudit/internal/model"
)

const ruleWidth = 70

// GeneratedPrefix starts the only line of a text report that depends on
// the time of generation.
const GeneratedPrefix = "Generated:"

// Generate renders audits as a plain text report.
// Apart from the Generated line, identical audits always produce
// byte-identical text.
func Generate(audits []model.PageAudit, generatedAt time.Time) string {
	return renderText(model.NewReport(audits, generatedAt))
}

// TextWriter outputs human-readable text reports.
// The format is designed for terminal display and CI artifacts.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in text format.
func (w *TextWriter) Write(report *model.Report) (int, error) {
	return io.WriteString(w.output, renderText(report))
}

func renderText(report *model.Report) string {
	var sb strings.Builder

	writeTextHeader(&sb, report)
	writeTextBreakdown(&sb, report.Summary)
	for i := range report.Audits {
		writeTextPage(&sb, i+1, &report.Audits[i])
	}
	if len(report.Failures) > 0 {
		writeTextFailures(&sb, report.Failures)
	}
	writeTextFooter(&sb)

	return sb.String()
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

func writeTextHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                     PAGE QUALITY AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "%-15s %s\n", GeneratedPrefix, report.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(sb, "%-15s %d\n", "Total Pages:", report.Summary.TotalPages)
	fmt.Fprintf(sb, "%-15s %d (%s)\n", "Average Score:",
		report.Summary.AverageScore, StatusLabel(report.Summary.AverageStatus()))
	if len(report.Failures) > 0 {
		fmt.Fprintf(sb, "%-15s %d\n", "Failed Pages:", len(report.Failures))
	}
	sb.WriteString("\n")
}

func writeTextBreakdown(sb *strings.Builder, summary model.Summary) {
	writeSection(sb, "STATUS BREAKDOWN")

	for _, s := range model.Statuses {
		fmt.Fprintf(sb, "  %-19s %d\n", StatusLabel(s)+":", summary.Count(s))
	}
	sb.WriteString("\n")
}

func writeTextPage(sb *strings.Builder, n int, page *model.PageAudit) {
	writeSection(sb, fmt.Sprintf("PAGE %d: %s", n, page.Title))

	fmt.Fprintf(sb, "URL:     %s\n", page.URL)
	fmt.Fprintf(sb, "Overall: %d/%d (%s)\n\n", page.OverallScore, model.MaxScore, StatusLabel(page.Status))

	for _, r := range page.Results {
		fmt.Fprintf(sb, "[%s] %s: %d/%d\n", passLabel(r.Passed), r.Agent, r.Score, model.MaxScore)
		for i, issue := range r.Issues {
			fmt.Fprintf(sb, "  * %s\n", issue)
			if i < len(r.Recommendations) {
				fmt.Fprintf(sb, "    -> %s\n", r.Recommendations[i])
			}
		}
	}
	sb.WriteString("\n")
}

func writeTextFailures(sb *strings.Builder, failures []model.PageFailure) {
	writeSection(sb, "FAILED PAGES")

	for _, f := range failures {
		fmt.Fprintf(sb, "  [x] %s\n", f.URL)
		fmt.Fprintf(sb, "      %s\n", f.Reason)
	}
	sb.WriteString("\n")
}

func writeTextFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by pageaudit\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
