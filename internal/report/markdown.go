package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/pageaudit/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for pull request comments and documentation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writePages(md, report)
	if len(report.Failures) > 0 {
		w.writeFailures(md, report)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Page Quality Audit Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", report.GeneratedAt.UTC().Format(time.RFC3339)},
			{"Total Pages", strconv.Itoa(report.Summary.TotalPages)},
			{"Average Score", strconv.Itoa(report.Summary.AverageScore)},
			{"Status", statusEmoji(report.Summary.AverageStatus()) + " " + StatusLabel(report.Summary.AverageStatus())},
		},
	})
	md.PlainText("")
}

// writeSummary writes the status breakdown section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Status Breakdown")
	md.PlainText("")

	rows := make([][]string, 0, len(model.Statuses)+1)
	for _, s := range model.Statuses {
		rows = append(rows, []string{
			statusEmoji(s) + " " + StatusLabel(s),
			strconv.Itoa(report.Summary.Count(s)),
		})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(report.Summary.TotalPages) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Pages"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.Summary.TotalPages > 0 {
		w.writePieChart(md, report.Summary)
	}
	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for the status distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Page Status Distribution"),
		piechart.WithShowData(true),
	)

	for _, s := range model.Statuses {
		if n := summary.Count(s); n > 0 {
			chart.LabelAndIntValue(StatusLabel(s), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert keyed on the average status.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	if report.Summary.TotalPages == 0 {
		md.Note("No pages were audited.")
		md.PlainText("")
		return
	}

	avg := report.Summary.AverageScore
	switch report.Summary.AverageStatus() {
	case model.StatusPoor:
		md.Cautionf("Average score %d is poor. %d page(s) need substantial work.",
			avg, report.Summary.Poor)
	case model.StatusNeedsImprovement:
		md.Warningf("Average score %d needs improvement. %d page(s) fall below the pass mark of %d.",
			avg, report.Summary.NeedsImprovement+report.Summary.Poor, model.PassThreshold)
	case model.StatusGood:
		md.Note(fmt.Sprintf("Average score %d is good.", avg))
	default:
		md.Tip(fmt.Sprintf("Average score %d is excellent.", avg))
	}
	md.PlainText("")

	if len(report.Failures) > 0 {
		md.Importantf("%d page(s) could not be audited. See Failed Pages below.", len(report.Failures))
		md.PlainText("")
	}
}

// writePages writes one section per audited page.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, report *model.Report) {
	md.H2("Pages")
	md.PlainText("")

	if len(report.Audits) == 0 {
		md.PlainText("No pages audited.")
		md.PlainText("")
		return
	}

	for i := range report.Audits {
		w.writePage(md, &report.Audits[i])
	}
}

func (w *MarkdownWriter) writePage(md *markdown.Markdown, page *model.PageAudit) {
	md.H3(page.Title)
	md.PlainText("")
	md.PlainTextf("`%s`: **%d/%d** %s %s", page.URL, page.OverallScore, model.MaxScore,
		statusEmoji(page.Status), StatusLabel(page.Status))
	md.PlainText("")

	rows := make([][]string, len(page.Results))
	for i, r := range page.Results {
		rows[i] = []string{r.Agent, strconv.Itoa(r.Score), passLabel(r.Passed), strconv.Itoa(r.IssueCount())}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Agent", "Score", "Result", "Issues"},
		Rows:   rows,
	})
	md.PlainText("")

	var findings [][]string
	for _, r := range page.Results {
		for j, issue := range r.Issues {
			rec := "-"
			if j < len(r.Recommendations) {
				rec = r.Recommendations[j]
			}
			findings = append(findings, []string{r.Agent, issue, rec})
		}
	}
	if len(findings) > 0 {
		md.Table(markdown.TableSet{
			Header: []string{"Agent", "Issue", "Recommendation"},
			Rows:   findings,
		})
		md.PlainText("")
	}
}

// writeFailures writes the pages that could not be audited.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.Report) {
	md.H2("Failed Pages")
	md.PlainText("")

	rows := make([][]string, len(report.Failures))
	for i, f := range report.Failures {
		rows[i] = []string{"`" + f.URL + "`", truncateString(f.Reason, 80)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by pageaudit*")
}

func statusEmoji(s model.Status) string {
	switch s {
	case model.StatusExcellent:
		return "🟢"
	case model.StatusGood:
		return "🔵"
	case model.StatusNeedsImprovement:
		return "🟡"
	default:
		return "🔴"
	}
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
