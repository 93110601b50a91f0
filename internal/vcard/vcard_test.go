package vcard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/youruser/cardapp/internal/cards"
)

func TestFromContact(t *testing.T) {
	c := FromContact(cards.ContactInfo{
		Name:    " Jane Doe ",
		Phone:   "(202) 555-1234",
		Email:   "jane@x.com",
		Company: "Acme",
		Logo:    "data:image/png;base64,AAAA",
	}, "US")
	require.Equal(t, "Jane Doe", c.FullName)
	require.Equal(t, "+12025551234", c.Tel)

	// numbers that do not parse are kept verbatim
	c = FromContact(cards.ContactInfo{Phone: "555-1234"}, "US")
	require.Equal(t, "555-1234", c.Tel)
}

func TestEncode(t *testing.T) {
	got := Card{
		FullName: "Jane Doe",
		Title:    "Engineer",
		Org:      "Acme, Inc.",
		Tel:      "+12025551234",
		Email:    "jane@x.com",
		Address:  "1 Main St; Springfield",
		URL:      "https://acme.example",
	}.Encode()

	want := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:Jane Doe",
		"N:Doe;Jane;;;",
		"TITLE:Engineer",
		`ORG:Acme\, Inc.`,
		"TEL;TYPE=WORK,VOICE:+12025551234",
		"EMAIL;TYPE=INTERNET:jane@x.com",
		`ADR;TYPE=WORK:;;1 Main St\; Springfield;;;;`,
		"URL:https://acme.example",
		"END:VCARD",
	}, "\r\n") + "\r\n"
	require.Equal(t, want, got)
}

func TestEncodeSparse(t *testing.T) {
	got := Card{FullName: "李雷"}.Encode()
	require.Equal(t, "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:李雷\r\nN:李雷;;;;\r\nEND:VCARD\r\n", got)

	got = Card{Org: "Acme"}.Encode()
	require.Contains(t, got, "FN:Acme\r\n")
	require.Contains(t, got, "N:;;;;\r\n")
}
