package invoice

import "strings"

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords spells a rupee amount using Indian grouping (crore, lakh,
// thousand, hundred). Paise are ignored; negative amounts read as zero.
func AmountInWords(amount float64) string {
	n := int64(amount)
	if n <= 0 {
		return "Zero"
	}
	var parts []string
	appendPart := func(v int64, unit string) {
		if v == 0 {
			return
		}
		w := threeDigits(v)
		if unit != "" {
			w += " " + unit
		}
		parts = append(parts, w)
	}
	if c := n / 10000000; c > 0 {
		// Values past 999 crore recurse so the index tables stay small.
		parts = append(parts, AmountInWords(float64(c))+" Crore")
	}
	n %= 10000000
	appendPart(n/100000, "Lakh")
	n %= 100000
	appendPart(n/1000, "Thousand")
	n %= 1000
	appendPart(n/100, "Hundred")
	n %= 100
	appendPart(n, "")
	return strings.Join(parts, " ")
}

func twoDigits(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	w := tensWords[n/10]
	if n%10 != 0 {
		w += " " + onesWords[n%10]
	}
	return w
}

func threeDigits(n int64) string {
	if n < 100 {
		return twoDigits(n)
	}
	w := onesWords[n/100] + " Hundred"
	if n%100 != 0 {
		w += " " + twoDigits(n%100)
	}
	return w
}
