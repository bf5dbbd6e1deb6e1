package coding

import (
	"reflect"
	"testing"
)

func TestValidateDiagnosisCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"A12", true},
		{"a12.1", true},
		{"B34.2", true},
		{"Z99.8888", true},
		{"  A12  ", true}, // whitespace trimmed
		{"A12.", false},
		{"A12.12345", false}, // suffix too long
		{"12A", false},
		{"AB12", false},
		{"A1", false},
		{"A123", false},
		{"", false},
		{"   ", false},
		{"A12-1", false},
	}
	for _, tt := range tests {
		if got := ValidateDiagnosisCode(tt.code); got != tt.want {
			t.Errorf("ValidateDiagnosisCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestValidateProcedureCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"99213", true},
		{"00001", true},
		{" 99213 ", true}, // whitespace trimmed
		{"1234", false},
		{"123456", false},
		{"12 345", false},
		{"9921A", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateProcedureCode(tt.code); got != tt.want {
			t.Errorf("ValidateProcedureCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestValidateDiagnosisBatch(t *testing.T) {
	result := ValidateDiagnosisBatch([]string{"A12", "INVALID", "B34.2"})

	wantValid := []string{"A12", "B34.2"}
	wantInvalid := []string{"INVALID"}

	if !reflect.DeepEqual(result.Valid, wantValid) {
		t.Errorf("valid = %v, want %v", result.Valid, wantValid)
	}
	if !reflect.DeepEqual(result.Invalid, wantInvalid) {
		t.Errorf("invalid = %v, want %v", result.Invalid, wantInvalid)
	}
}

func TestValidateDiagnosisBatch_PreservesOriginalForm(t *testing.T) {
	// Codes are classified after trimming but reported verbatim.
	result := ValidateDiagnosisBatch([]string{"  a12.1  "})
	if len(result.Valid) != 1 || result.Valid[0] != "  a12.1  " {
		t.Errorf("expected original form preserved, got %v", result.Valid)
	}
}

func TestValidateProcedureBatch(t *testing.T) {
	result := ValidateProcedureBatch([]string{"99213", "1234", "00001", "abcde"})

	wantValid := []string{"99213", "00001"}
	wantInvalid := []string{"1234", "abcde"}

	if !reflect.DeepEqual(result.Valid, wantValid) {
		t.Errorf("valid = %v, want %v", result.Valid, wantValid)
	}
	if !reflect.DeepEqual(result.Invalid, wantInvalid) {
		t.Errorf("invalid = %v, want %v", result.Invalid, wantInvalid)
	}
}

func TestValidateBatch_Empty(t *testing.T) {
	result := ValidateDiagnosisBatch(nil)
	if len(result.Valid) != 0 || len(result.Invalid) != 0 {
		t.Errorf("expected empty partition, got %+v", result)
	}
	// Both slices should be non-nil so they serialize as [] not null
	if result.Valid == nil || result.Invalid == nil {
		t.Error("expected non-nil slices")
	}
}
