package i18n

import (
	"golang.org/x/text/language"
)

// Translator resolves UI labels for the company's two working languages.
// Unknown keys come back verbatim so a missing translation never blanks a
// screen.
type Translator struct {
	matcher  language.Matcher
	catalogs map[language.Tag]map[string]string
	fallback language.Tag
}

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.Korean,
}

var catalogs = map[language.Tag]map[string]string{
	language.English: {
		"quotation.status.draft":               "Draft",
		"quotation.status.submitted":           "Submitted",
		"quotation.status.approved":            "Approved",
		"quotation.status.rejected":            "Rejected",
		"workflow.stage.quotation_approved":    "Quotation Approved",
		"workflow.stage.order_confirmed":       "Order Confirmed",
		"workflow.stage.purchase_order_issued": "Purchase Order Issued",
		"workflow.stage.goods_received":        "Goods Received",
		"workflow.stage.shipping_prepared":     "Shipping Prepared",
		"workflow.stage.delivered":             "Delivered",
		"workflow.stage.settled":               "Settled",
		"workflow.stage.cancelled":             "Cancelled",
		"expense.status.pending":               "Pending",
		"expense.status.in_progress":           "In Progress",
		"expense.status.approved":              "Approved",
		"expense.status.rejected":              "Rejected",
		"expense.status.completed":             "Completed",
		"report.status.draft":                  "Draft",
		"report.status.submitted":              "Submitted",
		"report.status.approved":               "Approved",
		"report.status.rejected":               "Rejected",
	},
	language.Korean: {
		"quotation.status.draft":               "작성중",
		"quotation.status.submitted":           "제출됨",
		"quotation.status.approved":            "승인됨",
		"quotation.status.rejected":            "반려됨",
		"workflow.stage.quotation_approved":    "견적 승인",
		"workflow.stage.order_confirmed":       "발주 확정",
		"workflow.stage.purchase_order_issued": "구매 발주 발행",
		"workflow.stage.goods_received":        "입고 완료",
		"workflow.stage.shipping_prepared":     "선적 준비 완료",
		"workflow.stage.delivered":             "납품 완료",
		"workflow.stage.settled":               "정산 완료",
		"workflow.stage.cancelled":             "취소됨",
		"expense.status.pending":               "대기",
		"expense.status.in_progress":           "진행중",
		"expense.status.approved":              "승인됨",
		"expense.status.rejected":              "반려됨",
		"expense.status.completed":             "완료",
		"report.status.draft":                  "작성중",
		"report.status.submitted":              "제출됨",
		"report.status.approved":               "승인됨",
		"report.status.rejected":               "반려됨",
	},
}

// NewTranslator builds the translator with the built-in catalogs
func NewTranslator() *Translator {
	return &Translator{
		matcher:  language.NewMatcher(supported),
		catalogs: catalogs,
		fallback: supported[0],
	}
}

// Match resolves an Accept-Language header value to a supported language
func (t *Translator) Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.fallback
	}
	_, index, _ := t.matcher.Match(tags...)
	return supported[index]
}

// Translate looks up a label in the given language. Missing keys fall back to
// English, then to the key itself.
func (t *Translator) Translate(tag language.Tag, key string) string {
	if label, ok := t.catalogs[tag][key]; ok {
		return label
	}
	if label, ok := t.catalogs[t.fallback][key]; ok {
		return label
	}
	return key
}

// Labels returns the full label catalog for the given language, with English
// filling any gaps. The frontend loads this once per session.
func (t *Translator) Labels(tag language.Tag) map[string]string {
	out := make(map[string]string, len(t.catalogs[t.fallback]))
	for key, label := range t.catalogs[t.fallback] {
		out[key] = label
	}
	for key, label := range t.catalogs[tag] {
		out[key] = label
	}
	return out
}
