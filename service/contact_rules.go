package service

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/billingcat/clients/model"
	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

var (
	valueValidator = validator.New()
	handleRegex    = regexp.MustCompile(`^@?[A-Za-z0-9_.\-]{1,100}$`)
)

// normalizeContactValue checks value against the rules of contact type t and
// returns the value in its stored form. Phone and fax numbers are stored in
// E.164 format; numbers without a leading + are read in region.
func normalizeContactValue(t model.ContactType, value, region string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &ContactError{Field: "value", Reason: "must not be empty"}
	}

	switch t {
	case model.ContactTypePhone, model.ContactTypeFax:
		num, err := phonenumbers.Parse(value, region)
		if err != nil || !phonenumbers.IsValidNumber(num) {
			return "", &ContactError{Field: "value", Reason: "is not a valid phone number"}
		}
		return phonenumbers.Format(num, phonenumbers.E164), nil
	case model.ContactTypeEmail:
		if err := valueValidator.Var(value, "email"); err != nil {
			return "", &ContactError{Field: "value", Reason: "is not a valid e-mail address"}
		}
		return strings.ToLower(value), nil
	case model.ContactTypeWebsite:
		if !isWebAddress(value) {
			return "", &ContactError{Field: "value", Reason: "is not a valid web address"}
		}
		return value, nil
	case model.ContactTypeLinkedIn, model.ContactTypeTwitter, model.ContactTypeGitHub:
		if handleRegex.MatchString(value) || isHTTPURL(value) {
			return value, nil
		}
		return "", &ContactError{Field: "value", Reason: "must be a profile URL or user name"}
	case model.ContactTypeOther:
		return value, nil
	default:
		return "", &ContactError{Field: "type", Reason: "unknown contact type"}
	}
}

// isWebAddress accepts a bare host name or an http(s) URL.
func isWebAddress(s string) bool {
	return valueValidator.Var(s, "fqdn") == nil || isHTTPURL(s)
}

// isHTTPURL only accepts absolute http and https URLs with a host, so
// opaque URLs like javascript:... never reach a link.
func isHTTPURL(s string) bool {
	if valueValidator.Var(s, "url") != nil {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
