package report

// sectionCheck is one gating predicate for the completion metric. Which
// payload fields gate which section is product configuration; the checks
// below mirror the paper form's sections.
type sectionCheck struct {
	name  string
	check func(Payload) bool
}

var sections = []sectionCheck{
	{"church_information", func(p Payload) bool {
		return hasText(p, "church_name") && hasText(p, "pastor_name")
	}},
	{"church_council", func(p Payload) bool {
		return tableHasContent(p, "strategic_plan") || hasText(p, "key_decisions")
	}},
	{"lay_organizations", func(p Payload) bool {
		return tableHasContent(p, "lay_organizations") || hasText(p, "programs_summary")
	}},
	{"structural_development", func(p Payload) bool {
		return tableHasContent(p, "structural_development")
	}},
	{"board_of_trustees", func(p Payload) bool {
		return tableHasContent(p, "property_register")
	}},
	{"kindergarten", func(p Payload) bool {
		return numPositive(p, "nursery_enrolled") || numPositive(p, "kinder_enrolled")
	}},
	{"grade_schools", func(p Payload) bool {
		return tableHasContent(p, "grade_school_enrollment")
	}},
	{"church_workers", func(p Payload) bool {
		return numPositive(p, "church_membership") || hasText(p, "pastor_work")
	}},
	{"leadership", func(p Payload) bool {
		return tableHasContent(p, "leadership_roster") || tableHasContent(p, "committee_roster")
	}},
	{"youth_ministry", func(p Payload) bool {
		return hasText(p, "youth_president") || numPositive(p, "total_youth")
	}},
	{"appendices", func(p Payload) bool {
		return numPositive(p, "professing_members") || tableHasContent(p, "contact_appendix")
	}},
}

// Completion returns the fraction of form sections with content, in [0,1].
func Completion(p Payload) float64 {
	if len(sections) == 0 {
		return 0
	}
	done := 0
	for _, s := range sections {
		if s.check(p) {
			done++
		}
	}
	frac := float64(done) / float64(len(sections))
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

func hasText(p Payload, key string) bool {
	v, ok := p[key]
	return ok && v.Kind == KindString && v.Str != ""
}

func numPositive(p Payload, key string) bool {
	v, ok := p[key]
	return ok && v.Kind == KindNumber && v.Num > 0
}

// tableHasContent reports whether any cell of the named table is a
// non-empty string or a non-zero number. The first column is skipped when
// others exist: templates pre-fill it with row labels.
func tableHasContent(p Payload, key string) bool {
	v, ok := p[key]
	if !ok || v.Kind != KindTable || v.Table == nil {
		return false
	}
	cols := v.Table.Columns
	if len(cols) > 1 {
		cols = cols[1:]
	}
	for _, col := range cols {
		for _, cell := range v.Table.Data[col] {
			switch cell.Kind {
			case KindString:
				if cell.Str != "" {
					return true
				}
			case KindNumber:
				if cell.Num != 0 {
					return true
				}
			}
		}
	}
	return false
}
