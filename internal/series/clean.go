// This file normalizes volume file names. Release names come with
// bracketed group tags, doubled spaces and part suffixes like v12_3;
// cleaning reduces them to "Title vNNN.ext" so batch folders sort the
// same everywhere.

package series

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	parensRE      = regexp.MustCompile(`\s*\([^)]*\)`)
	multiSpaceRE  = regexp.MustCompile(`\s{2,}`)
	vUnderscoreRE = regexp.MustCompile(`(v\s*\d+)(?:_\d+)+`)
	volumeRE      = regexp.MustCompile(`\bv\s*0*(\d+)`)
)

// CleanVolumeFilename rewrites a volume file name around its volume
// marker. Parenthesized groups are stripped, space runs collapse,
// "v12_3_4" folds to "v12", and the name becomes "Title vNNN.ext" with
// everything after the marker dropped. Names without a recognizable
// marker keep their cleaned stem. padTo3 zero-pads the volume number to
// three digits.
func CleanVolumeFilename(srcName string, padTo3 bool) string {
	ext := filepath.Ext(srcName)
	stemRaw := strings.TrimSuffix(srcName, ext)

	stem := parensRE.ReplaceAllString(stemRaw, "")
	stem = multiSpaceRE.ReplaceAllString(strings.TrimSpace(stem), " ")
	stem = vUnderscoreRE.ReplaceAllString(stem, "$1")

	if m := volumeRE.FindStringSubmatchIndex(stem); m != nil {
		if vol, err := strconv.Atoi(stem[m[2]:m[3]]); err == nil {
			title := strings.TrimSpace(stem[:m[0]])
			title = multiSpaceRE.ReplaceAllString(title, " ")

			vpart := fmt.Sprintf("v%d", vol)
			if padTo3 {
				vpart = fmt.Sprintf("v%03d", vol)
			}

			if title == "" {
				return vpart + ext
			}
			return title + " " + vpart + ext
		}
	}

	return stem + ext
}
