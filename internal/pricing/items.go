package pricing

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Item names one cost component of an estimate. The set is closed.
type Item int

const (
	BasePrice Item = iota
	VCTCost
	TravelCost
	OvernightCost
	PressureWashingCost
	WindowCleaningCost
	DisplayCaseCost
	UrgencyCost

	itemCount
)

var itemNames = [itemCount]string{
	BasePrice:           "basePrice",
	VCTCost:             "vctCost",
	TravelCost:          "travelCost",
	OvernightCost:       "overnightCost",
	PressureWashingCost: "pressureWashingCost",
	WindowCleaningCost:  "windowCleaningCost",
	DisplayCaseCost:     "displayCaseCost",
	UrgencyCost:         "urgencyCost",
}

// Items lists every line item in display order.
func Items() []Item {
	out := make([]Item, 0, itemCount)
	for i := Item(0); i < itemCount; i++ {
		out = append(out, i)
	}
	return out
}

func (i Item) String() string {
	if i < 0 || i >= itemCount {
		return fmt.Sprintf("Item(%d)", int(i))
	}
	return itemNames[i]
}

// ParseItem maps a line item name back to its Item.
func ParseItem(name string) (Item, error) {
	for i, n := range itemNames {
		if n == name {
			return Item(i), nil
		}
	}
	return 0, fmt.Errorf("unknown line item %q", name)
}

// Billable reports whether the item is counted in subtotals. The display case charge is
// already folded into the base price and is only shown for reference.
func (i Item) Billable() bool {
	return i != DisplayCaseCost
}

// LineItems holds one value per Item. It is a value type: copies never alias.
type LineItems [itemCount]decimal.Decimal

func (l LineItems) Get(i Item) decimal.Decimal {
	return l[i]
}

// Equal compares values, not representations.
func (l LineItems) Equal(other LineItems) bool {
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Sum adds the values of the selected items.
func (l LineItems) Sum(sel Selection) decimal.Decimal {
	total := decimal.Zero
	for i, v := range l {
		if sel[i] {
			total = total.Add(v)
		}
	}
	return total
}

// BillableSum adds every billable item, selected or not.
func (l LineItems) BillableSum() decimal.Decimal {
	total := decimal.Zero
	for i, v := range l {
		if Item(i).Billable() {
			total = total.Add(v)
		}
	}
	return total
}

func (l LineItems) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, itemCount)
	for i, v := range l {
		out[itemNames[i]] = v.StringFixed(2)
	}
	return json.Marshal(out)
}

func (l *LineItems) UnmarshalJSON(data []byte) error {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out LineItems
	for name, v := range raw {
		item, err := ParseItem(name)
		if err != nil {
			return err
		}
		out[item] = v
	}
	*l = out
	return nil
}

// Selection marks which line items take part in an adjustment.
type Selection [itemCount]bool

// NewSelection builds a Selection containing the given items.
func NewSelection(items ...Item) Selection {
	var s Selection
	for _, i := range items {
		s[i] = true
	}
	return s
}

func (s Selection) Has(i Item) bool {
	return s[i]
}

func (s Selection) Items() []Item {
	out := make([]Item, 0, itemCount)
	for i, ok := range s {
		if ok {
			out = append(out, Item(i))
		}
	}
	return out
}

func (s Selection) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, itemCount)
	for _, i := range s.Items() {
		names = append(names, i.String())
	}
	return json.Marshal(names)
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out Selection
	for _, name := range names {
		item, err := ParseItem(name)
		if err != nil {
			return err
		}
		out[item] = true
	}
	*s = out
	return nil
}
