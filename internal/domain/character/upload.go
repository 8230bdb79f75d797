package character

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrBadUploadFormat indicates sheet text that does not follow the
// ".st name1value1 name2value2 ..." upload format.
var ErrBadUploadFormat = errors.New("sheet text must start with .st and list name/value pairs")

const uploadPrefix = ".st "

// trackedResources gain current_* mirrors on upload.
var trackedResources = map[string]bool{"san": true, "hp": true, "mp": true}

var statPairPattern = regexp.MustCompile(`([a-zA-Z\p{Han}]+)(\d+)`)

// ParseUpload parses sheet upload text into an attribute map. Names may mix
// latin and CJK letters; values are non-negative integers glued to their
// name. Tracked resources also receive a current_* entry at the same value.
func ParseUpload(text string) (map[string]int, error) {
	if !strings.HasPrefix(text, uploadPrefix) {
		return nil, ErrBadUploadFormat
	}

	matches := statPairPattern.FindAllStringSubmatch(text[len(uploadPrefix):], -1)
	if len(matches) == 0 {
		return nil, ErrBadUploadFormat
	}

	attrs := make(map[string]int, len(matches))
	for _, m := range matches {
		name := strings.ToLower(m[1])
		value, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, ErrBadUploadFormat
		}
		attrs[name] = value
		if trackedResources[name] {
			attrs["current_"+name] = value
		}
	}
	return attrs, nil
}
