// Package coding validates medical billing codes: ICD-10 diagnosis codes and
// CPT procedure codes.
package coding

import (
	"regexp"
	"strings"
)

var (
	// ICD-10: one letter, two digits, optional dot plus 1-4 word characters.
	icd10Pattern = regexp.MustCompile(`^[A-Za-z]\d{2}(\.\w{1,4})?$`)
	// CPT: exactly five digits.
	cptPattern = regexp.MustCompile(`^\d{5}$`)
)

// ValidateDiagnosisCode reports whether code is a well-formed ICD-10 code.
// Leading and trailing whitespace is ignored.
func ValidateDiagnosisCode(code string) bool {
	return icd10Pattern.MatchString(strings.TrimSpace(code))
}

// ValidateProcedureCode reports whether code is a well-formed CPT code.
// Leading and trailing whitespace is ignored.
func ValidateProcedureCode(code string) bool {
	return cptPattern.MatchString(strings.TrimSpace(code))
}

// BatchResult partitions a list of codes into valid and invalid entries.
// Codes keep their original form and order.
type BatchResult struct {
	Valid   []string `json:"valid"`
	Invalid []string `json:"invalid"`
}

// ValidateDiagnosisBatch partitions codes by ICD-10 validity.
func ValidateDiagnosisBatch(codes []string) BatchResult {
	return partition(codes, ValidateDiagnosisCode)
}

// ValidateProcedureBatch partitions codes by CPT validity.
func ValidateProcedureBatch(codes []string) BatchResult {
	return partition(codes, ValidateProcedureCode)
}

func partition(codes []string, valid func(string) bool) BatchResult {
	result := BatchResult{
		Valid:   []string{},
		Invalid: []string{},
	}
	for _, code := range codes {
		if valid(code) {
			result.Valid = append(result.Valid, code)
		} else {
			result.Invalid = append(result.Invalid, code)
		}
	}
	return result
}
