// Package agent answers free-text analytical questions against a
// precomputed dashboard. It is a deterministic rule table: each intent
// is a keyword pattern plus a renderer, evaluated in a fixed order, and
// intents are not mutually exclusive.
package agent

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/addislabs/cropsight/internal/analytics"
	"github.com/addislabs/cropsight/internal/dataset"
)

// noDataReply short-circuits every intent when nothing was imported.
const noDataReply = "I don't have any imported data yet. Upload a spreadsheet or CSV so I can analyse your coffee exports."

const closingPrompt = "Ask me about specific fields (e.g. region, process, FOB price) or request comparisons to dig deeper."

// Rule maps one keyword set to its section renderer.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Render  func(*analytics.DashboardSummary) []string
}

// Rules returns the intent table in evaluation order:
// shipments, quality, totals, segments, timeline.
func Rules() []Rule {
	return []Rule{
		{"shipments", regexp.MustCompile(`shipment|logistic|in transit|container|vessel`), renderShipments},
		{"quality", regexp.MustCompile(`average|mean|score|quality`), renderQuality},
		{"totals", regexp.MustCompile(`total|sum|revenue|volume|usd|bags|value|ton`), renderTotals},
		{"segments", regexp.MustCompile(`top|best|leading|breakdown|by region|region|process|variety`), renderSegments},
		{"timeline", regexp.MustCompile(`trend|timeline|month|time|recent`), renderTimeline},
	}
}

// Respond produces a multi-section plain-text answer for a message.
// Sections from every matching intent are joined with blank lines; if
// nothing matches, it falls back to a column named in the message, then
// to an executive snapshot. It never fails on any input.
func Respond(message string, dashboard *analytics.DashboardSummary) string {
	if dashboard == nil || dashboard.Dataset == nil || len(dashboard.Dataset.Rows) == 0 {
		return noDataReply
	}

	text := strings.ToLower(message)
	var sections []string

	for _, rule := range Rules() {
		if rule.Pattern.MatchString(text) {
			sections = append(sections, rule.Render(dashboard)...)
		}
	}

	if len(sections) == 0 {
		if column, ok := findColumnFromMessage(dashboard.Dataset, text); ok {
			sections = append(sections, frequencySummary(dashboard.Dataset, column))
		} else {
			sections = append(sections, executiveSnapshot(dashboard))
		}
	}

	return strings.Join(sections, "\n\n")
}

func renderShipments(dashboard *analytics.DashboardSummary) []string {
	metrics := dashboard.Metrics
	lines := []string{
		"Here's where logistics stand:",
		fmt.Sprintf("• Active / preparing shipments: %d", metrics.ShipmentsInProgress),
		fmt.Sprintf("• Delivered shipments: %d", metrics.ShipmentsByStatus[analytics.StatusDelivered]),
	}
	if len(metrics.ShipmentsByStatus) > 0 {
		statuses := make([]string, 0, len(metrics.ShipmentsByStatus))
		for status := range metrics.ShipmentsByStatus {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		lines = append(lines, "• Status breakdown:")
		for _, status := range statuses {
			label := strings.ReplaceAll(status, "_", " ")
			lines = append(lines, fmt.Sprintf("• %s: %d", label, metrics.ShipmentsByStatus[status]))
		}
	}
	return []string{strings.Join(lines, "\n")}
}

func renderQuality(dashboard *analytics.DashboardSummary) []string {
	column, ok := analytics.FindNumericColumnByKeywords(dashboard.Dataset, []string{"score", "quality", "cupping"})
	if !ok {
		return []string{"I could not detect a quality metric column. Try asking about a specific numeric field from your dataset."}
	}
	summary := analytics.SummarizeNumeric(dashboard.Dataset.Rows, column)
	return []string{strings.Join([]string{
		fmt.Sprintf("Quality insights for %s:", column),
		fmt.Sprintf("• Average score: %s", analytics.FormatNumber(summary.Average)),
		fmt.Sprintf("• Best lot: %s", analytics.FormatNumber(summary.Maximum)),
		fmt.Sprintf("• Lowest score: %s", analytics.FormatNumber(summary.Minimum)),
	}, "\n")}
}

func renderTotals(dashboard *analytics.DashboardSummary) []string {
	var lines []string
	if column, ok := analytics.FindNumericColumnByKeywords(dashboard.Dataset, []string{"volume", "bags", "quantity", "weight", "kg", "mt"}); ok {
		summary := analytics.SummarizeNumeric(dashboard.Dataset.Rows, column)
		lines = append(lines, fmt.Sprintf("• Total recorded volume (%s): %s", column, analytics.FormatNumber(summary.Total)))
	}
	if column, ok := analytics.FindNumericColumnByKeywords(dashboard.Dataset, []string{"value", "usd", "price", "revenue", "amount", "fob"}); ok {
		summary := analytics.SummarizeNumeric(dashboard.Dataset.Rows, column)
		lines = append(lines, fmt.Sprintf("• Contract value (%s): %s", column, analytics.FormatUSD(summary.Total)))
	}
	if len(lines) == 0 {
		return nil
	}
	return []string{strings.Join(append([]string{"Commercial summary:"}, lines...), "\n")}
}

func renderSegments(dashboard *analytics.DashboardSummary) []string {
	var sections []string
	if column, ok := analytics.FindColumnByKeywords(dashboard.Dataset, []string{"region", "origin", "zone"}); ok {
		sections = append(sections, frequencySummary(dashboard.Dataset, column))
	}
	if column, ok := analytics.FindColumnByKeywords(dashboard.Dataset, []string{"process", "method"}); ok {
		sections = append(sections, frequencySummary(dashboard.Dataset, column))
	}
	if column, ok := analytics.FindColumnByKeywords(dashboard.Dataset, []string{"variety", "cultivar"}); ok {
		sections = append(sections, frequencySummary(dashboard.Dataset, column))
	}
	return sections
}

func renderTimeline(dashboard *analytics.DashboardSummary) []string {
	points := dashboard.Timeline.RowsPerMonth
	if len(points) == 0 {
		return nil
	}
	if len(points) > 3 {
		points = points[len(points)-3:]
	}
	lines := []string{"Recent data volume trend:"}
	for _, point := range points {
		lines = append(lines, fmt.Sprintf("• %s: %s records", point.Label, analytics.FormatInt(point.Value)))
	}
	return []string{strings.Join(lines, "\n")}
}

// frequencySummary renders the top-5 value breakdown for one column.
func frequencySummary(profile *dataset.DatasetProfile, column string) string {
	top := analytics.Frequency(profile.Rows, column, 5)
	if len(top) == 0 {
		return fmt.Sprintf("No populated values detected for %s.", column)
	}
	lines := []string{fmt.Sprintf("Top signals for %s:", column)}
	for _, item := range top {
		lines = append(lines, fmt.Sprintf("• %s — %s records", item.Name, analytics.FormatInt(item.Count)))
	}
	return strings.Join(lines, "\n")
}

// findColumnFromMessage is the last-resort resolver: it scans the raw
// message for any column name it contains, spaces collapsed or removed.
func findColumnFromMessage(profile *dataset.DatasetProfile, text string) (string, bool) {
	stripped := analytics.NormalizeName(text)
	for _, column := range profile.Columns {
		normalized := analytics.NormalizeName(column)
		if normalized == "" {
			continue
		}
		compact := strings.ReplaceAll(normalized, " ", "")
		if strings.Contains(stripped, normalized) || strings.Contains(strings.ReplaceAll(stripped, " ", ""), compact) {
			return column, true
		}
	}
	return "", false
}

func executiveSnapshot(dashboard *analytics.DashboardSummary) string {
	summary := dashboard.Summary
	metrics := dashboard.Metrics

	lines := []string{
		"Here's an executive snapshot:",
		fmt.Sprintf("• %s records across %d fields", analytics.FormatInt(summary.TotalRows), summary.ColumnCount),
		fmt.Sprintf("• Data completeness: %d%%", summary.DataCoveragePct),
		fmt.Sprintf("• Active shipments: %d", metrics.ShipmentsInProgress),
	}
	if metrics.AverageQualityScore != nil {
		lines = append(lines, fmt.Sprintf("• Average quality score: %s", analytics.FormatNumber(metrics.AverageQualityScore)))
	}
	if metrics.TotalContractValue != nil {
		lines = append(lines, fmt.Sprintf("• Contract value captured: %s", analytics.FormatUSD(metrics.TotalContractValue)))
	}
	if points := dashboard.Timeline.RowsPerMonth; len(points) > 0 {
		lines = append(lines, fmt.Sprintf("• Latest activity: %s", points[len(points)-1].Label))
	}
	lines = append(lines, closingPrompt)
	return strings.Join(lines, "\n")
}
