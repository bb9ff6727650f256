package workflow

// Stage is one of the seven ordered phases of the business process, plus the
// terminal Cancelled marker.
type Stage string

const (
	StageQuotationApproved   Stage = "QUOTATION_APPROVED"
	StageOrderConfirmed      Stage = "ORDER_CONFIRMED"
	StagePurchaseOrderIssued Stage = "PURCHASE_ORDER_ISSUED"
	StageGoodsReceived       Stage = "GOODS_RECEIVED"
	StageShippingPrepared    Stage = "SHIPPING_PREPARED"
	StageDelivered           Stage = "DELIVERED"
	StageSettled             Stage = "SETTLED"
	StageCancelled           Stage = "CANCELLED"
)

// Stages lists the seven process stages in order, excluding Cancelled
var Stages = []Stage{
	StageQuotationApproved,
	StageOrderConfirmed,
	StagePurchaseOrderIssued,
	StageGoodsReceived,
	StageShippingPrepared,
	StageDelivered,
	StageSettled,
}

// IsValid checks if the stage is a known Stage
func (s Stage) IsValid() bool {
	switch s {
	case StageQuotationApproved, StageOrderConfirmed, StagePurchaseOrderIssued,
		StageGoodsReceived, StageShippingPrepared, StageDelivered, StageSettled,
		StageCancelled:
		return true
	}
	return false
}

// String returns the string representation of the stage
func (s Stage) String() string {
	return string(s)
}

// Index returns the 1-based position of the stage in the process, or 0 for
// Cancelled and unknown stages.
func (s Stage) Index() int {
	for i, stage := range Stages {
		if stage == s {
			return i + 1
		}
	}
	return 0
}

// Next returns the stage that follows this one. It is total on the
// non-terminal stages; the second return is false for Settled, Cancelled and
// unknown stages.
func (s Stage) Next() (Stage, bool) {
	idx := s.Index()
	if idx == 0 || idx >= len(Stages) {
		return s, false
	}
	return Stages[idx], true
}

// IsTerminal returns true for Settled and Cancelled
func (s Stage) IsTerminal() bool {
	return s == StageSettled || s == StageCancelled
}
