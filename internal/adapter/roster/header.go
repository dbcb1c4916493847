package roster

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PivtoranisV/event-manager/internal/domain"
)

// Symbolic column keys used by the roster.
const (
	KeyFirstName = "first_name"
	KeyHomePhone = "homephone"
	KeyZipcode   = "zipcode"
	KeyRegDate   = "regdate"
)

// RequiredKeys lists the columns every roster must provide besides the leading id column.
var RequiredKeys = []string{KeyFirstName, KeyHomePhone, KeyZipcode, KeyRegDate}

var (
	nonWordRe    = regexp.MustCompile(`[^\s\w]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Symbolize converts header text to a symbolic key: lowercase, punctuation
// removed, surrounding space trimmed, inner whitespace collapsed to "_".
// "HomePhone" -> "homephone", "Email Address" -> "email_address".
func Symbolize(header string) string {
	s := strings.ToLower(strings.TrimPrefix(header, "\ufeff"))
	s = nonWordRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return whitespaceRe.ReplaceAllString(s, "_")
}

// columns maps symbolic keys to column indexes for one roster.
type columns struct {
	index map[string]int
}

func newColumns(header []string) (columns, error) {
	if len(header) == 0 {
		return columns{}, fmt.Errorf("roster has no header row")
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := Symbolize(h)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}

	var missing []string
	for _, k := range RequiredKeys {
		if _, ok := idx[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("roster header missing required columns: %s", strings.Join(missing, ", "))
	}
	return columns{index: idx}, nil
}

func (c columns) get(row []string, key string) string {
	i, ok := c.index[key]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// record builds an AttendeeRecord from a data row. The id is always the first column.
func (c columns) record(row []string, line int) domain.AttendeeRecord {
	var id string
	if len(row) > 0 {
		id = strings.TrimSpace(row[0])
	}
	return domain.AttendeeRecord{
		ID:               id,
		FirstName:        c.get(row, KeyFirstName),
		HomePhone:        c.get(row, KeyHomePhone),
		Zipcode:          c.get(row, KeyZipcode),
		RegistrationTime: c.get(row, KeyRegDate),
		Line:             line,
	}
}
