// Package format holds the display formatting helpers for Brazilian
// identifiers and currency. Every function is a pure string transform and is
// idempotent: feeding an already formatted (or masked) value back in returns
// it unchanged.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPF formats an 11-digit CPF as 123.456.789-01. Inputs that do not carry
// exactly 11 digits (including masked CPFs) are returned as-is.
func CPF(s string) string {
	d := digits(s)
	if len(d) != 11 {
		return s
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// MaskCPF redacts the middle digits of a CPF for display: 123.***.***-01.
func MaskCPF(s string) string {
	d := digits(s)
	if len(d) != 11 {
		return s
	}
	return d[0:3] + ".***.***-" + d[9:11]
}

// CEP formats an 8-digit postal code as 01310-100.
func CEP(s string) string {
	d := digits(s)
	if len(d) != 8 {
		return s
	}
	return d[0:5] + "-" + d[5:8]
}

// Phone formats Brazilian phone numbers: 11 digits as (11) 99999-8888,
// 10 digits as (11) 9999-8888.
func Phone(s string) string {
	d := digits(s)
	switch len(d) {
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:10]
	}
	return s
}

// Currency renders a decimal amount in pt-BR style: R$ 1.234,56.
func Currency(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart := s[:len(s)-3]
	fracPart := s[len(s)-2:]
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	out := "R$ " + strings.Join(groups, ".") + "," + fracPart
	if v.IsNegative() {
		return "-" + out
	}
	return out
}

// MaskEmail keeps the first character of the local part and the full domain:
// j***@example.com.
func MaskEmail(s string) string {
	at := strings.IndexByte(s, '@')
	if at < 1 {
		return s
	}
	local := s[:at]
	if strings.Contains(local, "***") {
		return s
	}
	return local[:1] + "***" + s[at:]
}

// Date renders dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// DateTime renders dd/mm/yyyy hh:mm.
func DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
