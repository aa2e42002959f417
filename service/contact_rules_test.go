package service

import (
	"errors"
	"testing"

	"github.com/billingcat/clients/model"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeContactValue(t *testing.T) {
	tests := []struct {
		typ   model.ContactType
		in    string
		want  string
		field string // non-empty if an error is expected
	}{
		{model.ContactTypePhone, "+7 495 123-45-67", "+74951234567", ""},
		{model.ContactTypePhone, "8 (495) 123-45-67", "+74951234567", ""},
		{model.ContactTypeFax, "+49 30 12345678", "+493012345678", ""},
		{model.ContactTypePhone, "123", "", "value"},
		{model.ContactTypePhone, "call me", "", "value"},
		{model.ContactTypeEmail, "Info@Example.COM", "info@example.com", ""},
		{model.ContactTypeEmail, "info@", "", "value"},
		{model.ContactTypeWebsite, "https://example.com/about", "https://example.com/about", ""},
		{model.ContactTypeWebsite, "example.com", "example.com", ""},
		{model.ContactTypeWebsite, "not a site", "", "value"},
		{model.ContactTypeWebsite, "javascript:alert(1)", "", "value"},
		{model.ContactTypeWebsite, "ftp://example.com/file", "", "value"},
		{model.ContactTypeWebsite, "HTTP://Example.com", "HTTP://Example.com", ""},
		{model.ContactTypeGitHub, "javascript:alert(1)", "", "value"},
		{model.ContactTypeLinkedIn, "mailto:someone@example.com", "", "value"},
		{model.ContactTypeGitHub, "@octocat", "@octocat", ""},
		{model.ContactTypeLinkedIn, "https://www.linkedin.com/in/someone", "https://www.linkedin.com/in/someone", ""},
		{model.ContactTypeTwitter, "two words", "", "value"},
		{model.ContactTypeOther, " anything goes ", "anything goes", ""},
		{model.ContactTypeOther, "   ", "", "value"},
		{"pager", "123", "", "type"},
	}
	for _, tt := range tests {
		got, err := normalizeContactValue(tt.typ, tt.in, "RU")
		if tt.field == "" {
			if assert.NoError(t, err, "%s %q", tt.typ, tt.in) {
				assert.Equal(t, tt.want, got, "%s %q", tt.typ, tt.in)
			}
			continue
		}
		var cerr *ContactError
		if assert.True(t, errors.As(err, &cerr), "%s %q: want ContactError, got %v", tt.typ, tt.in, err) {
			assert.Equal(t, tt.field, cerr.Field)
			assert.ErrorIs(t, err, ErrContactInvalid)
		}
	}
}
