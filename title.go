package mdpdf

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleSeparators are replaced by spaces when deriving a title.
var titleSeparators = strings.NewReplacer("-", " ", "_", " ")

// DeriveTitle builds a document title from a file name: the directory and
// last extension are dropped, dashes and underscores become spaces and each
// word is title-cased. "my-report_file.md" gives "My Report File".
func DeriveTitle(filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return cases.Title(language.Und).String(titleSeparators.Replace(stem))
}
