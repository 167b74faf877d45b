package amendment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"amendments/internal/pkg/errs"
)

const numberPrefix = "AMD-"

var numberPattern = regexp.MustCompile(`^AMD-(.+)-(\d{3,})$`)

// Number is the human-readable amendment identifier AMD-<order-number>-<seq>,
// with seq zero-padded to three digits.
type Number struct {
	orderNumber string
	sequence    int
}

// NumberPrefix is the prefix shared by every amendment number of an order.
func NumberPrefix(orderNumber string) string {
	return numberPrefix + orderNumber + "-"
}

func NewNumber(orderNumber string, sequence int) (Number, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return Number{}, errs.NewValueIsRequiredError("order number")
	}
	if sequence < 1 {
		return Number{}, errs.NewValueIsOutOfRangeError("amendment sequence", sequence, 1, "unbounded")
	}
	return Number{orderNumber: orderNumber, sequence: sequence}, nil
}

// ParseNumber accepts the output of Number.String.
func ParseNumber(s string) (Number, error) {
	m := numberPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"amendment number",
			fmt.Errorf("%q does not match AMD-<order>-<sequence>", s),
		)
	}
	seq, err := strconv.Atoi(m[2])
	if err != nil {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("amendment number", err)
	}
	return NewNumber(m[1], seq)
}

func (n Number) OrderNumber() string {
	return n.orderNumber
}

func (n Number) Sequence() int {
	return n.sequence
}

func (n Number) String() string {
	return fmt.Sprintf("%s%03d", NumberPrefix(n.orderNumber), n.sequence)
}

func (n Number) IsZero() bool {
	return n.orderNumber == "" && n.sequence == 0
}
