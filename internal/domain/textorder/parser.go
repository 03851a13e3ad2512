// Package textorder converts a pasted free-text message (typically a
// WhatsApp order) into an order draft. Extraction is best-effort and never
// fails: malformed or unrecognized lines are dropped silently and missing
// fields default to empty or zero. The result is always reviewed by a
// person before it is saved.
//
// Expected shape:
//
//	Customer: John Doe
//	Phone: 1234567890
//	Address: 123 Main St
//	Items:
//	Item1 x2 @100
//	Item2 x1 @50
//	Taxes: 18
//	Discount: 10
//	Notes: Urgent
package textorder

import (
	"regexp"
	"strconv"
	"strings"

	"hingmart/internal/domain/orders"
)

var (
	customerRE = regexp.MustCompile(`(?i)^customer[:\-]`)
	phoneRE    = regexp.MustCompile(`(?i)^phone[:\-]`)
	addressRE  = regexp.MustCompile(`(?i)^address[:\-]`)
	itemsRE    = regexp.MustCompile(`(?i)^items[:\-]?`)
	taxRE      = regexp.MustCompile(`(?i)^tax(es)?[:\-]`)
	discountRE = regexp.MustCompile(`(?i)^discount[:\-]`)
	notesRE    = regexp.MustCompile(`(?i)^notes?[:\-]`)

	// Item line: Name xQty @Rate
	itemRE = regexp.MustCompile(`(?i)^(.*?)\s*x(\d+)\s*@([\d.]+)`)
)

// Parse extracts a draft order from text. Deterministic: the same input
// always yields the same draft.
func Parse(text string) orders.Draft {
	draft := orders.Draft{Items: []orders.OrderItem{}}

	inItems := false
	itemID := 1
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}

		switch {
		case customerRE.MatchString(line):
			draft.CustomerName = labelValue(line)
			inItems = false
		case phoneRE.MatchString(line):
			draft.Phone = labelValue(line)
			inItems = false
		case addressRE.MatchString(line):
			draft.Address = labelValue(line)
			inItems = false
		case itemsRE.MatchString(line):
			inItems = true
		case taxRE.MatchString(line):
			draft.Taxes = labelNumber(line)
			inItems = false
		case discountRE.MatchString(line):
			draft.Discount = labelNumber(line)
			inItems = false
		case notesRE.MatchString(line):
			draft.Notes = labelValue(line)
			inItems = false
		case inItems:
			if item, ok := parseItemLine(line, itemID); ok {
				draft.Items = append(draft.Items, item)
				itemID++
			}
		}
	}
	return draft
}

// labelValue returns the trimmed text after the first ':' or '-'.
func labelValue(line string) string {
	idx := strings.IndexAny(line, ":-")
	if idx < 0 || idx+1 >= len(line) {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}

func labelNumber(line string) float64 {
	v, err := strconv.ParseFloat(labelValue(line), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseItemLine(line string, itemID int) (orders.OrderItem, bool) {
	m := itemRE.FindStringSubmatch(line)
	if m == nil {
		return orders.OrderItem{}, false
	}

	quantity, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return orders.OrderItem{}, false
	}
	rate, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return orders.OrderItem{}, false
	}

	item := orders.OrderItem{
		ID:       strconv.Itoa(itemID),
		Name:     strings.TrimSpace(m[1]),
		Quantity: quantity,
		Rate:     rate,
	}
	item.Recompute()
	return item, true
}
