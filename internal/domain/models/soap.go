package models

// SOAPContent is the structured body of a clinical note: one paragraph of
// plain text per SOAP section. Persisted as a single JSONB column.
type SOAPContent struct {
	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`
}

// IsComplete reports whether all four sections are present.
// Generation results missing any section must be rejected, not partially applied.
func (c *SOAPContent) IsComplete() bool {
	return c.Subjective != "" && c.Objective != "" && c.Assessment != "" && c.Plan != ""
}

// IsEmpty reports whether no section has content (a quick-created blank note).
func (c *SOAPContent) IsEmpty() bool {
	return c.Subjective == "" && c.Objective == "" && c.Assessment == "" && c.Plan == ""
}

// SOAPSections lists the section names in display order.
var SOAPSections = []string{"subjective", "objective", "assessment", "plan"}

// ValidSOAPSection reports whether name is one of the four section names.
func ValidSOAPSection(name string) bool {
	for _, s := range SOAPSections {
		if s == name {
			return true
		}
	}
	return false
}
