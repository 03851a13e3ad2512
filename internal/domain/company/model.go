// Package company provides the singleton seller-identity record used on
// invoice headers. The record is created once with defaults, updated in
// place, and never deleted or duplicated.
package company

import (
	"encoding/json"
	"strconv"
	"strings"

	"hingmart/internal/core/apperror"
)

// Address is the structured seller address. Earlier revisions persisted a
// JSON-stringified address; Normalize folds that shape into this one.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Pincode int    `json:"pincode,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// Line renders the address as a single display line, skipping empty parts.
func (a Address) Line() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if a.Pincode > 0 {
		parts = append(parts, strconv.Itoa(a.Pincode))
	}
	return strings.Join(parts, ", ")
}

// Company is the seller identity shown on invoice headers.
type Company struct {
	ID          string  `json:"id"`
	CompanyName string  `json:"companyName"`
	Address     Address `json:"address"`
	MobileNo    string  `json:"mobileNo"`
	GstNo       string  `json:"gstNo"`
	Email       string  `json:"email"`
}

// Default returns the initial company record created on first run.
func Default() *Company {
	return &Company{
		ID:          "company",
		CompanyName: "Rs Hing",
		MobileNo:    "",
		GstNo:       "",
		Email:       "",
	}
}

// Validate checks the record before an update is applied.
func (c *Company) Validate() error {
	if strings.TrimSpace(c.CompanyName) == "" {
		return apperror.NewValidation("company name is required").
			WithDetail("field", "companyName")
	}
	return nil
}

// Clone returns a copy so callers never mutate the stored singleton.
func (c *Company) Clone() *Company {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}

// NormalizeAddress interprets a legacy JSON-stringified address. Plain text
// that is not JSON becomes the street line.
func NormalizeAddress(raw string) Address {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Address{}
	}
	var addr Address
	if err := json.Unmarshal([]byte(raw), &addr); err == nil {
		return addr
	}
	return Address{Street: raw}
}
