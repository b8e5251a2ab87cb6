package entities

import (
	"strings"
	"unicode"

	"github.com/aarondl/null/v8"

	"maintenance-system/pkg/types"
)

type Technician struct {
	ID     uint64
	Name   string
	Email  string
	Phone  string
	TeamID uint64
	// Свободные теги навыков, например "Hydraulics".
	Specialization []string
	Avatar         string
	IsActive       bool
	UserID         null.Uint64

	types.BaseEntity

	TeamName null.String
}

// Initials: первые буквы слов имени в верхнем регистре, не более двух.
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		b.WriteRune(unicode.ToUpper(r[0]))
		count++
		if count == 2 {
			break
		}
	}
	return b.String()
}
