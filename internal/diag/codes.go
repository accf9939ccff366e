package diag

import (
	"fmt"
)

// Code identifies a diagnostic category. Ranges:
// 1xxx reader, 2xxx form parser, 3xxx type checker.
type Code uint16

const (
	UnknownCode Code = 0

	// Reader errors.
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Form parser errors.
	SynUnexpectedEOF    Code = 2001
	SynUnbalancedParen  Code = 2002
	SynMalformedForm    Code = 2003
	SynBadAnnotation    Code = 2004
	SynBadGenericParams Code = 2005

	// Checker errors. One per check run; checking stops at the first.
	SemaUnknownType             Code = 3001
	SemaDuplicateType           Code = 3002
	SemaTypeMismatch            Code = 3003
	SemaOperatorOperandMismatch Code = 3004
	SemaArityMismatch           Code = 3005
	SemaUnresolvedField         Code = 3006
	SemaUnboundName             Code = 3007
	SemaUnknownClass            Code = 3008
)

func (c Code) String() string {
	return fmt.Sprintf("LTC%04d", uint16(c))
}
