package order

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"amendments/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Composition maps a material name to its share of the product in percent.
// It is immutable; the zero value is an empty composition.
type Composition struct {
	shares map[string]decimal.Decimal
}

// NewComposition copies shares. Material names must be non-blank and
// percentages must lie in [0, 100].
func NewComposition(shares map[string]decimal.Decimal) (Composition, error) {
	hundred := decimal.NewFromInt(100)
	copied := make(map[string]decimal.Decimal, len(shares))
	for material, pct := range shares {
		name := strings.TrimSpace(material)
		if name == "" {
			return Composition{}, errs.NewValueIsRequiredError("composition material")
		}
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return Composition{}, errs.NewValueIsOutOfRangeError("composition."+name, pct, 0, 100)
		}
		copied[name] = pct
	}
	return Composition{shares: copied}, nil
}

func (c Composition) IsEmpty() bool {
	return len(c.shares) == 0
}

// Materials returns material names in lexical order.
func (c Composition) Materials() []string {
	names := make([]string, 0, len(c.shares))
	for name := range c.shares {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c Composition) Share(material string) (decimal.Decimal, bool) {
	pct, ok := c.shares[material]
	return pct, ok
}

// Shares returns a copy of the material map.
func (c Composition) Shares() map[string]decimal.Decimal {
	copied := make(map[string]decimal.Decimal, len(c.shares))
	for name, pct := range c.shares {
		copied[name] = pct
	}
	return copied
}

func (c Composition) Total() decimal.Decimal {
	total := decimal.Zero
	for _, pct := range c.shares {
		total = total.Add(pct)
	}
	return total
}

func (c Composition) IsEqual(other Composition) bool {
	if len(c.shares) != len(other.shares) {
		return false
	}
	for name, pct := range c.shares {
		if o, ok := other.shares[name]; !ok || !o.Equal(pct) {
			return false
		}
	}
	return true
}

// String renders "cotton 60%, polyester 40%".
func (c Composition) String() string {
	parts := make([]string, 0, len(c.shares))
	for _, name := range c.Materials() {
		parts = append(parts, fmt.Sprintf("%s %s%%", name, c.shares[name].String()))
	}
	return strings.Join(parts, ", ")
}

func (c Composition) MarshalJSON() ([]byte, error) {
	raw := make(map[string]decimal.Decimal, len(c.shares))
	for name, pct := range c.shares {
		raw[name] = pct
	}
	return json.Marshal(raw)
}

func (c *Composition) UnmarshalJSON(data []byte) error {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("composition", err)
	}
	parsed, err := NewComposition(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
