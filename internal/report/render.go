package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// renderOrder fixes the section order of the text export. Fields not listed
// here render after the known ones, alphabetically.
var renderOrder = []string{
	"church_name", "district", "annual_conference", "pastor_name",
	"council_chairperson", "vision", "mission", "core_values",
	"strategic_plan", "key_decisions",
	"lay_organizations", "programs_summary",
	"structural_development",
	"property_register",
	"nursery_enrolled", "kinder_enrolled",
	"grade_school_enrollment",
	"church_membership", "pastor_work",
	"leadership_roster", "committee_roster",
	"youth_president", "total_youth", "youth_programs",
	"professing_members", "baptized_members", "affiliate_members",
	"associate_members", "constituency",
	"contact_appendix",
}

// Render produces the deterministic plain-text rendition of a report
// payload: a header, every field in fixed order, tables as aligned column
// dumps with totals for fully numeric columns.
func Render(orgName, periodLabel string, p Payload) string {
	var b strings.Builder

	b.WriteString("CHURCH ANNUAL REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Organization: %s\n", orgName)
	fmt.Fprintf(&b, "Reporting Period: %s\n", periodLabel)

	for _, key := range orderedKeys(p) {
		v := p[key]
		b.WriteString("\n" + strings.ToUpper(key) + ":\n")
		switch v.Kind {
		case KindString:
			b.WriteString(v.Str + "\n")
		case KindNumber:
			b.WriteString(formatNum(v.Num) + "\n")
		case KindTable:
			renderTable(&b, v.Table)
		}
		b.WriteString(strings.Repeat("-", 50) + "\n")
	}

	return b.String()
}

// Filename derives the suggested export filename from the organization
// name and a date, e.g. "grace_chapel_annual_report_20260901.txt".
func Filename(orgName string, now time.Time) string {
	org := sanitize(orgName)
	if org == "" {
		org = "church"
	}
	return fmt.Sprintf("%s_annual_report_%s.txt", org, now.Format("20060102"))
}

func orderedKeys(p Payload) []string {
	seen := make(map[string]bool, len(p))
	keys := make([]string, 0, len(p))
	for _, key := range renderOrder {
		if _, ok := p[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	rest := make([]string, 0, len(p))
	for key := range p {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func renderTable(b *strings.Builder, t *Table) {
	if t == nil || len(t.Columns) == 0 {
		return
	}
	w := tabwriter.NewWriter(b, 2, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Columns, "\t"))

	rows := t.NumRows()
	for i := 0; i < rows; i++ {
		cells := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			cells[j] = formatCell(t.Cell(i, col))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	// Totals row across fully numeric columns, the way the form summed
	// grade-school enrollment.
	if totals, ok := totalsRow(t); ok {
		fmt.Fprintln(w, strings.Join(totals, "\t"))
	}
	w.Flush()
}

func totalsRow(t *Table) ([]string, bool) {
	any := false
	cells := make([]string, len(t.Columns))
	for j, col := range t.Columns {
		if t.IsNumeric(col) {
			cells[j] = formatNum(t.SumColumn(col))
			any = true
		} else if j == 0 {
			cells[j] = "TOTAL"
		} else {
			cells[j] = ""
		}
	}
	return cells, any
}

func formatCell(v Value) string {
	switch v.Kind {
	case KindNumber:
		return formatNum(v.Num)
	default:
		return v.Str
	}
}

func formatNum(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
