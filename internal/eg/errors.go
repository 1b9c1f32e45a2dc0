package eg

import (
	"errors"
	"fmt"
)

// StructuralError reports a malformed construction request: a missing or
// invalid parent context, a duplicate entity id, an empty connect call.
// These are programmer errors and abort the operation that raised them.
type StructuralError struct {
	// Code identifies the error category.
	Code StructuralErrorCode

	// Message is a human-readable description.
	Message string
}

// StructuralErrorCode categorizes structural errors.
type StructuralErrorCode string

const (
	// ErrCodeDuplicateID indicates an entity id collision on Add.
	ErrCodeDuplicateID StructuralErrorCode = "DUPLICATE_ID"

	// ErrCodeMissingParent indicates the requested parent context does
	// not exist or is not a context.
	ErrCodeMissingParent StructuralErrorCode = "MISSING_PARENT"

	// ErrCodeMissingEntity indicates an operand entity was not found.
	ErrCodeMissingEntity StructuralErrorCode = "MISSING_ENTITY"

	// ErrCodeEmptyInput indicates an operation received no operands.
	ErrCodeEmptyInput StructuralErrorCode = "EMPTY_INPUT"
)

// Error implements the error interface.
func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewStructuralError creates a StructuralError with the given code.
func NewStructuralError(code StructuralErrorCode, message string) *StructuralError {
	return &StructuralError{Code: code, Message: message}
}

// IsStructural reports whether err is (or wraps) a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// RuleError reports a transformation-rule precondition failure: the
// requested rewrite is not licensed in the current context. These are
// domain errors; the graph is left unmodified.
type RuleError struct {
	// Rule names the transformation rule that refused.
	Rule RuleCode

	// Message is a human-readable description.
	Message string
}

// RuleCode identifies a transformation rule.
type RuleCode string

const (
	RuleErase              RuleCode = "ERASE"
	RuleInsert             RuleCode = "INSERT"
	RuleIterate            RuleCode = "ITERATE"
	RuleDeiterate          RuleCode = "DEITERATE"
	RuleRemoveDoubleCut    RuleCode = "REMOVE_DOUBLE_CUT"
	RuleEraseConstant      RuleCode = "ERASE_CONSTANT"
	RuleFunctionalProperty RuleCode = "FUNCTIONAL_PROPERTY"
)

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// NewRuleError creates a RuleError for the given rule.
func NewRuleError(rule RuleCode, message string) *RuleError {
	return &RuleError{Rule: rule, Message: message}
}

// IsRuleViolation reports whether err is (or wraps) a RuleError.
// Uses errors.As to handle wrapped errors.
func IsRuleViolation(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}
