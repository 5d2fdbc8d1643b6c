// Package parcel extracts parcel numbers from listing folder names.
package parcel

import (
	"regexp"
	"strings"
)

var (
	prefixRe   = regexp.MustCompile(`(?i)(?:parcel|property)[\s\-_]*(\d+)`)
	digitRunRe = regexp.MustCompile(`\d{4,15}`)
	nonDigitRe = regexp.MustCompile(`\D`)
	nonWordRe  = regexp.MustCompile(`[^0-9A-Za-z]`)
)

// Extract pulls a parcel number out of a folder name. Patterns are tried in
// priority order:
//
//  1. an explicit "parcel"/"property" prefix followed by digits,
//  2. a digit-dominant folder name whose digits form a 4-15 digit key,
//  3. any embedded 4-15 digit run,
//  4. an alphanumeric token of 4-15 chars that is at least 70% digits.
//
// Returns ("", false) when nothing parcel-shaped is present.
func Extract(folderName string) (string, bool) {
	name := strings.TrimSpace(folderName)
	if name == "" {
		return "", false
	}

	if m := prefixRe.FindStringSubmatch(name); m != nil {
		return m[1], true
	}

	digitsOnly := nonDigitRe.ReplaceAllString(name, "")
	if len(digitsOnly) >= 4 && len(digitsOnly) <= 15 {
		compact := strings.ReplaceAll(name, " ", "")
		if len(compact) > 0 && float64(len(digitsOnly))/float64(len(compact)) > 0.5 {
			return digitsOnly, true
		}
	}

	if m := digitRunRe.FindString(name); m != "" {
		return m, true
	}

	cleaned := nonWordRe.ReplaceAllString(name, "")
	if len(cleaned) >= 4 && len(cleaned) <= 15 {
		digits := 0
		for _, r := range cleaned {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if float64(digits) >= float64(len(cleaned))*0.7 {
			return cleaned, true
		}
	}

	return "", false
}
