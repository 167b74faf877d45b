package amendment

// Reason is the business motive given by the proposer.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonBuyerRequest
	ReasonSellerRequest
	ReasonDeliveryShortage
	ReasonDeliveryExcess
	ReasonQualityIssue
	ReasonPriceAdjustment
	ReasonForceMajeure
	ReasonDataCorrection
	ReasonOther
)

func getReasonStrings() map[Reason]string {
	return map[Reason]string{
		ReasonBuyerRequest:     "buyer_request",
		ReasonSellerRequest:    "seller_request",
		ReasonDeliveryShortage: "delivery_shortage",
		ReasonDeliveryExcess:   "delivery_excess",
		ReasonQualityIssue:     "quality_issue",
		ReasonPriceAdjustment:  "price_adjustment",
		ReasonForceMajeure:     "force_majeure",
		ReasonDataCorrection:   "data_correction",
		ReasonOther:            "other",
	}
}

func ParseReason(s string) (Reason, error) {
	return parseEnum(getReasonStrings(), "amendment reason", s)
}

func (r Reason) String() string {
	return enumName(getReasonStrings(), r)
}

func (r Reason) Validate() error {
	return validateEnum(getReasonStrings(), "amendment reason", r)
}
