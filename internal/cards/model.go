package cards

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a field name does not belong to ContactInfo.
var ErrUnknownField = errors.New("unknown contact field")

// ContactInfo is the record printed on a card. Empty optional fields are
// skipped at render time, empty required fields render as empty text.
type ContactInfo struct {
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Address  string `json:"address,omitempty"`
	Website  string `json:"website,omitempty"`
	Logo     string `json:"logo,omitempty"`
}

// Field names accepted by With, in form order.
var Fields = []string{"name", "jobTitle", "phone", "email", "company", "address", "website", "logo"}

// Renderable reports whether any of the required text fields is filled in.
// An entirely empty form never renders.
func (c ContactInfo) Renderable() bool {
	return c.Name != "" || c.JobTitle != "" || c.Phone != "" || c.Email != "" || c.Company != ""
}

// With returns a copy of c with one field replaced.
func (c ContactInfo) With(field, value string) (ContactInfo, error) {
	switch field {
	case "name":
		c.Name = value
	case "jobTitle", "job_title":
		c.JobTitle = value
	case "phone":
		c.Phone = value
	case "email":
		c.Email = value
	case "company":
		c.Company = value
	case "address":
		c.Address = value
	case "website":
		c.Website = value
	case "logo":
		c.Logo = value
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return c, nil
}
