package model

import "fmt"

// Section is the closed set of question categories. Using a dedicated type
// (instead of free-form strings) means an invalid category is a
// construction-time error, never a silent zero-count bucket in analytics.
type Section string

const (
	SectionQuantitative Section = "Quantitative"
	SectionReasoning    Section = "Reasoning"
	SectionEnglish      Section = "English"
	SectionProgramming  Section = "Programming"
	SectionDSA          Section = "DSA"
)

// Sections lists all valid sections in canonical order. The order is load
// bearing: samplers and reports iterate it so output ordering is stable.
var Sections = []Section{
	SectionQuantitative,
	SectionReasoning,
	SectionEnglish,
	SectionProgramming,
	SectionDSA,
}

// ParseSection validates a raw string against the closed section set.
func ParseSection(raw string) (Section, error) {
	for _, s := range Sections {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", raw)
}

// Valid reports whether s is a member of the closed section set.
func (s Section) Valid() bool {
	_, err := ParseSection(string(s))
	return err == nil
}
