package content

import (
	"errors"
	"fmt"
	"hash/crc32"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// EpochDate is the date of files without a date prefix.
const EpochDate = "1970-01-01"

const (
	dateLayout = "2006-01-02"
	idLength   = 3
)

var (
	// ErrBadDate is returned when a date prefix is not a valid calendar date.
	ErrBadDate = errors.New("invalid date")
	// ErrBadName is returned for file names without a slug.
	ErrBadName = errors.New("invalid file name")
)

// stemRegexp splits a file stem into its optional date prefix and the slug.
var stemRegexp = regexp.MustCompile(`^(?:(\d\d\d\d-\d\d-\d\d)-)?(.+)$`)

// markdownExtensions lists the extensions rendered as Markdown. Anything else is
// treated as HTML and passed through.
var markdownExtensions = []string{".md", ".mkd", ".mkdn", ".mdown", ".markdown"}

// FileMeta holds the fields derived from a source file name.
type FileMeta struct {
	Date          string // YYYY-MM-DD
	RFC2822Date   string // Date formatted for feeds
	ShortName     string // Slug after the date prefix
	UniqueID      string // Short checksum of date and slug
	FormattedName string // UniqueID-ShortName
	Markdown      bool   // Whether the content is Markdown
}

// ParseFilename derives the file name fields of the source file at name, which
// is expected to look like "[YYYY-MM-DD-]slug.ext".
func ParseFilename(name string) (FileMeta, error) {
	var fm FileMeta
	stem := filepath.Base(name)
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	m := stemRegexp.FindStringSubmatch(stem)
	if m == nil {
		return fm, fmt.Errorf("ParseFilename %q: %w", name, ErrBadName)
	}
	fm.Date = m[1]
	if fm.Date == "" {
		fm.Date = EpochDate
	}
	fm.ShortName = m[2]

	d, err := time.Parse(dateLayout, fm.Date)
	if err != nil {
		return fm, fmt.Errorf("ParseFilename %q: %w: %w", name, ErrBadDate, err)
	}
	fm.RFC2822Date = d.UTC().Format(time.RFC1123Z)
	fm.UniqueID = uniqueID(fm.Date, fm.ShortName)
	fm.FormattedName = fm.UniqueID + "-" + fm.ShortName
	fm.Markdown = isMarkdown(name)
	return fm, nil
}

// uniqueID returns the leading digits of the CRC-32 of date and slug. Two posts
// sharing a slug on different days get different ids.
func uniqueID(date, slug string) string {
	s := strconv.FormatUint(uint64(crc32.ChecksumIEEE([]byte(date+slug))), 10)
	if len(s) > idLength {
		s = s[:idLength]
	}
	return s
}

func isMarkdown(name string) bool {
	for _, ext := range markdownExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
