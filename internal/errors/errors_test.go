package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// ProposalError Tests
// -----------------------------------------------------------------------------

func TestNewProposalError(t *testing.T) {
	err := NewProposalError("missing element", ErrProposalStructure)

	if err.message != "missing element" {
		t.Errorf("message = %q, want %q", err.message, "missing element")
	}
	if err.cause != ErrProposalStructure {
		t.Errorf("cause = %v, want %v", err.cause, ErrProposalStructure)
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
	if err.Observation != -1 {
		t.Errorf("Observation = %d, want -1", err.Observation)
	}
}

func TestProposalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ProposalError
		want string
	}{
		{
			name: "basic error",
			err:  NewProposalError("bad", nil),
			want: "proposal error: bad",
		},
		{
			name: "with cause",
			err:  NewProposalError("bad", ErrProposalParse),
			want: "proposal error: bad: proposal is not well-formed XML",
		},
		{
			name: "with full context",
			err: NewProposalError("missing element", ErrProposalStructure).
				WithPath("prop.xml").
				WithElement("Label").
				WithObservation(2),
			want: "proposal error [path=prop.xml, element=Label, observation=2]: missing element: proposal structure not recognized",
		},
		{
			name: "observation zero is reported",
			err:  NewProposalError("x", nil).WithObservation(0),
			want: "proposal error [observation=0]: x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProposalError_Is(t *testing.T) {
	err := NewProposalError("test", ErrProposalStructure).WithPath("p.xml")

	if !Is(err, &ProposalError{}) {
		t.Error("Is(ProposalError{}) = false, want true")
	}
	if !Is(err, ErrProposalStructure) {
		t.Error("Is(ErrProposalStructure) = false, want true")
	}
	if Is(err, ErrProposalParse) {
		t.Error("Is(ErrProposalParse) = true, want false")
	}
	if Is(err, &ObservationListError{}) {
		t.Error("Is(ObservationListError{}) = true, want false")
	}
}

func TestProposalError_Unwrap(t *testing.T) {
	err := NewProposalError("test", ErrProposalParse)

	if unwrapped := Unwrap(err); unwrapped != ErrProposalParse {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrProposalParse)
	}
}

// -----------------------------------------------------------------------------
// ObservationListError Tests
// -----------------------------------------------------------------------------

func TestObservationListError(t *testing.T) {
	err := NewObservationListError("rename failed", fs.ErrPermission).
		WithOutputPath("out.yaml").
		WithSeverity(SeverityCritical)

	want := "observation list error [output=out.yaml]: rename failed: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
	if !Is(err, fs.ErrPermission) {
		t.Error("Is(fs.ErrPermission) = false, want true")
	}
	if !Is(err, &ObservationListError{}) {
		t.Error("Is(ObservationListError{}) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// NotFoundError Tests
// -----------------------------------------------------------------------------

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("column", "TileNum")
	if got, want := err.Error(), "column 'TileNum' not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = err.WithCause(ErrInvalidInput)
	if got, want := err.Error(), "column 'TileNum' not found: invalid input"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, &NotFoundError{}) {
		t.Error("Is(NotFoundError{}) = false, want true")
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("Is(ErrInvalidInput) = false, want true")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "message only",
			err:  NewValidationError("bad input"),
			want: "validation error: bad input",
		},
		{
			name: "with field and value",
			err:  NewValidationError("multiple filters in one observation").WithField("ObservationID").WithValue("3"),
			want: "validation error [field=ObservationID, value=3]: multiple filters in one observation",
		},
		{
			name: "with cause",
			err:  NewValidationError("will not write out.yaml").WithCause(ErrDimensionMismatch),
			want: "validation error: will not write out.yaml: not all provided parameters have compatible dimensions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("test").WithCause(ErrMultipleFilters)

	if !Is(err, &ValidationError{}) {
		t.Error("Is(ValidationError{}) = false, want true")
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("Is(ErrInvalidInput) = false, want true")
	}
	if !Is(err, ErrMultipleFilters) {
		t.Error("Is(ErrMultipleFilters) = false, want true")
	}
	if Is(err, ErrDimensionMismatch) {
		t.Error("Is(ErrDimensionMismatch) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"proposal error", NewProposalError("x", nil), true},
		{"wrapped validation error", fmt.Errorf("ctx: %w", NewValidationError("x")), true},
		{"not found", NewNotFoundError("column", "X"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{"nil", nil, SeverityDebug},
		{"plain error", errors.New("boom"), SeverityError},
		{"validation", NewValidationError("x"), SeverityWarning},
		{"proposal", NewProposalError("x", nil), SeverityError},
		{"list critical", NewObservationListError("x", nil).WithSeverity(SeverityCritical), SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSeverity(tt.err); got != tt.want {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDomainAndSemanticError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantDomain   bool
		wantSemantic bool
	}{
		{"nil", nil, false, false},
		{"plain", errors.New("x"), false, false},
		{"proposal", NewProposalError("x", nil), true, false},
		{"list", NewObservationListError("x", nil), true, false},
		{"validation", NewValidationError("x"), false, true},
		{"not found wrapped", Wrap(NewNotFoundError("a", "b"), "ctx"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDomainError(tt.err); got != tt.wantDomain {
				t.Errorf("IsDomainError() = %v, want %v", got, tt.wantDomain)
			}
			if got := IsSemanticError(tt.err); got != tt.wantSemantic {
				t.Errorf("IsSemanticError() = %v, want %v", got, tt.wantSemantic)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	err := Wrap(ErrProposalParse, "reading prop.xml")
	if got, want := err.Error(), "reading prop.xml: proposal is not well-formed XML"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, ErrProposalParse) {
		t.Error("wrapped error should match sentinel")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrOutputWrite, "writing %s", "out.yaml")
	if got, want := err.Error(), "writing out.yaml: observation list write failed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
