package service

import "github.com/Azure/go-autorest/autorest/date"

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateText(d *date.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
