package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() Payload {
	table := NewTable("Grade Level", "Enrolled at Start", "Current Enrollment")
	table.AppendRow(String("Grade 1"), Number(30), Number(28))
	table.AppendRow(String("Grade 2"), Number(25), Number(25))

	return Payload{
		"church_name":             String("Grace Chapel"),
		"church_membership":       Number(120),
		"grade_school_enrollment": TableValue(table),
	}
}

func TestRenderContainsFields(t *testing.T) {
	text := Render("Grace Chapel", "2026-2027", samplePayload())

	assert.Contains(t, text, "CHURCH ANNUAL REPORT")
	assert.Contains(t, text, "Organization: Grace Chapel")
	assert.Contains(t, text, "Reporting Period: 2026-2027")
	assert.Contains(t, text, "CHURCH_NAME:")
	assert.Contains(t, text, "Grace Chapel")
	assert.Contains(t, text, "CHURCH_MEMBERSHIP:")
	assert.Contains(t, text, "120")
	assert.Contains(t, text, "Grade Level")
	assert.Contains(t, text, "Grade 2")
}

func TestRenderTableTotals(t *testing.T) {
	text := Render("Grace Chapel", "2026-2027", samplePayload())

	// Numeric columns get a totals row: 30+25 and 28+25
	assert.Contains(t, text, "TOTAL")
	assert.Contains(t, text, "55")
	assert.Contains(t, text, "53")
}

func TestRenderDeterministic(t *testing.T) {
	p := samplePayload()
	a := Render("Grace Chapel", "2026-2027", p)
	b := Render("Grace Chapel", "2026-2027", p)
	assert.Equal(t, a, b)
}

func TestRenderFixedSectionOrder(t *testing.T) {
	text := Render("Grace Chapel", "2026-2027", samplePayload())

	nameIdx := strings.Index(text, "CHURCH_NAME:")
	memberIdx := strings.Index(text, "CHURCH_MEMBERSHIP:")
	gradeIdx := strings.Index(text, "GRADE_SCHOOL_ENROLLMENT:")
	require.True(t, nameIdx >= 0 && memberIdx >= 0 && gradeIdx >= 0)
	assert.Less(t, nameIdx, memberIdx)
	assert.Less(t, memberIdx, gradeIdx)
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "grace_chapel_annual_report_20260901.txt", Filename("Grace Chapel", now))
	assert.Equal(t, "st_johns_umc_annual_report_20260901.txt", Filename("St. John's UMC!", now))
	assert.Equal(t, "church_annual_report_20260901.txt", Filename("", now))
}

func TestCompletionEmptyPayload(t *testing.T) {
	assert.Equal(t, 0.0, Completion(Payload{}))
}

func TestCompletionGrowsWithSections(t *testing.T) {
	p := Payload{}
	base := Completion(p)

	p["church_name"] = String("Grace Chapel")
	p["pastor_name"] = String("Rev. Cruz")
	withInfo := Completion(p)
	assert.Greater(t, withInfo, base)

	p["nursery_enrolled"] = Number(12)
	withKinder := Completion(p)
	assert.Greater(t, withKinder, withInfo)

	assert.LessOrEqual(t, withKinder, 1.0)
}

func TestCompletionIgnoresTemplateLabels(t *testing.T) {
	// A table whose only content is the pre-filled label column does not
	// count as a completed section.
	labels := NewTable("Strategic Area", "Objectives")
	labels.AppendRow(String("MINISTRY EXPANSION"), String(""))

	p := Payload{"strategic_plan": TableValue(labels)}
	assert.Equal(t, 0.0, Completion(p))

	filled := NewTable("Strategic Area", "Objectives")
	filled.AppendRow(String("MINISTRY EXPANSION"), String("Plant two churches"))
	p["strategic_plan"] = TableValue(filled)
	assert.Greater(t, Completion(p), 0.0)
}
