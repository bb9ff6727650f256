package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tradeops/backend/internal/domain/shared"
)

// DocumentKind identifies the family of business documents a number belongs to
type DocumentKind string

const (
	KindQuotation      DocumentKind = "Q"
	KindPurchaseOrder  DocumentKind = "PO"
	KindShipping       DocumentKind = "SH"
	KindExpenseRequest DocumentKind = "EXP"
	KindWorkflow       DocumentKind = "WF"
	KindNotice         DocumentKind = "N"
	KindPrincipal      DocumentKind = "P"
	KindWeeklyReport   DocumentKind = "WR"
)

// IsValid checks if the kind is a known DocumentKind
func (k DocumentKind) IsValid() bool {
	switch k {
	case KindQuotation, KindPurchaseOrder, KindShipping, KindExpenseRequest,
		KindWorkflow, KindNotice, KindPrincipal, KindWeeklyReport:
		return true
	}
	return false
}

// layout describes the shape of one document-number family
type layout struct {
	dateFormat string // Go time layout of the date segment
	seqDigits  int    // zero-padded sequence width; 0 means no sequence
}

// layouts defines the wire format per kind. These are bit-exact contracts:
//
//	Q  -> Q<YYYYMMDD><NNNN>      e.g. Q202504160003
//	PO -> PO<YYYYMM><NNN>        e.g. PO202504012
//	SH -> SH<YYYYMM><NNN>
//	EXP-> EXP<YYYYMMDDhhmmss>
//	WF -> WF<YYYYMMDDhhmmss>
var layouts = map[DocumentKind]layout{
	KindQuotation:      {dateFormat: "20060102", seqDigits: 4},
	KindPurchaseOrder:  {dateFormat: "200601", seqDigits: 3},
	KindShipping:       {dateFormat: "200601", seqDigits: 3},
	KindExpenseRequest: {dateFormat: "20060102150405", seqDigits: 0},
	KindWorkflow:       {dateFormat: "20060102150405", seqDigits: 0},
	KindNotice:         {dateFormat: "20060102", seqDigits: 4},
	KindPrincipal:      {dateFormat: "20060102", seqDigits: 4},
	KindWeeklyReport:   {dateFormat: "20060102", seqDigits: 4},
}

// Number is a parsed document number
type Number struct {
	Kind     DocumentKind
	Date     time.Time
	Sequence int
	Value    string
}

// Format renders a document number for the given kind, timestamp and sequence.
// For timestamp-only kinds the sequence is ignored.
func Format(kind DocumentKind, at time.Time, sequence int) (string, error) {
	l, ok := layouts[kind]
	if !ok {
		return "", shared.NewDomainError("INVALID_KIND", "Unknown document kind: "+string(kind))
	}
	if l.seqDigits == 0 {
		return string(kind) + at.Format(l.dateFormat), nil
	}
	if sequence <= 0 {
		return "", shared.NewDomainError("INVALID_SEQUENCE", "Sequence must be positive")
	}
	max := pow10(l.seqDigits) - 1
	if sequence > max {
		return "", shared.NewDomainError("SEQUENCE_OVERFLOW", fmt.Sprintf("Sequence %d exceeds %d digits", sequence, l.seqDigits))
	}
	return fmt.Sprintf("%s%s%0*d", kind, at.Format(l.dateFormat), l.seqDigits, sequence), nil
}

// Parse decodes a document number back into its parts.
// Format then Parse round-trips for every kind.
func Parse(value string) (Number, error) {
	kind, ok := kindOf(value)
	if !ok {
		return Number{}, shared.NewDomainError("INVALID_NUMBER", "Unknown document number prefix: "+value)
	}
	l := layouts[kind]
	body := strings.TrimPrefix(value, string(kind))

	dateLen := len(l.dateFormat)
	if len(body) != dateLen+l.seqDigits {
		return Number{}, shared.NewDomainError("INVALID_NUMBER", "Malformed document number: "+value)
	}

	date, err := time.Parse(l.dateFormat, body[:dateLen])
	if err != nil {
		return Number{}, shared.NewDomainError("INVALID_NUMBER", "Malformed date segment in "+value)
	}

	seq := 0
	if l.seqDigits > 0 {
		seq, err = strconv.Atoi(body[dateLen:])
		if err != nil || seq <= 0 {
			return Number{}, shared.NewDomainError("INVALID_NUMBER", "Malformed sequence segment in "+value)
		}
	}

	return Number{Kind: kind, Date: date, Sequence: seq, Value: value}, nil
}

// DateSegment returns the date segment a number of this kind carries for the
// given timestamp. Numbers sharing kind and date segment share one sequence
// namespace.
func DateSegment(kind DocumentKind, at time.Time) (string, error) {
	l, ok := layouts[kind]
	if !ok {
		return "", shared.NewDomainError("INVALID_KIND", "Unknown document kind: "+string(kind))
	}
	return at.Format(l.dateFormat), nil
}

// HasSequence reports whether numbers of this kind carry a sequence segment
func HasSequence(kind DocumentKind) bool {
	return layouts[kind].seqDigits > 0
}

// kindOf resolves the prefix of a raw number. Longer prefixes win so that
// "PO..." is never mistaken for a "P" principal number.
func kindOf(value string) (DocumentKind, bool) {
	prefixes := []DocumentKind{
		KindExpenseRequest, KindPurchaseOrder, KindShipping, KindWorkflow,
		KindWeeklyReport, KindQuotation, KindNotice, KindPrincipal,
	}
	for _, k := range prefixes {
		if strings.HasPrefix(value, string(k)) {
			return k, true
		}
	}
	return "", false
}

func pow10(n int) int {
	result := 1
	for range n {
		result *= 10
	}
	return result
}
