// Package vcard turns a contact into vCard 3.0 text for QR codes and
// address book imports.
package vcard

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/youruser/cardapp/internal/cards"
)

type Card struct {
	FullName string
	Title    string
	Org      string
	Tel      string
	Email    string
	Address  string
	URL      string
}

// FromContact builds a card from a contact. Phone numbers that parse for
// region are stored in E.164, others are kept as typed. The logo is left
// out, it would not fit in a QR code.
func FromContact(info cards.ContactInfo, region string) Card {
	return Card{
		FullName: strings.TrimSpace(info.Name),
		Title:    strings.TrimSpace(info.JobTitle),
		Org:      strings.TrimSpace(info.Company),
		Tel:      phone(info.Phone, region),
		Email:    strings.TrimSpace(info.Email),
		Address:  strings.TrimSpace(info.Address),
		URL:      strings.TrimSpace(info.Website),
	}
}

func phone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	n, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(n) {
		return raw
	}
	return phonenumbers.Format(n, phonenumbers.E164)
}
