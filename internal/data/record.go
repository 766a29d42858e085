package data

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// legacySep joins world and level names in the legacy save file.
const legacySep = ":::"

// RecordKey identifies a level for best-time records. Names are stored in
// Unicode NFC so that visually identical names typed differently compare
// equal.
type RecordKey struct {
	World string
	Level string
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func NewRecordKey(world, level string) RecordKey {
	return RecordKey{World: normalize(world), Level: normalize(level)}
}

// String renders the legacy "world:::level" form.
func (k RecordKey) String() string {
	return k.World + legacySep + k.Level
}

// ParseRecordKey reads the legacy "world:::level" form.
func ParseRecordKey(s string) (RecordKey, error) {
	world, level, ok := strings.Cut(s, legacySep)
	if !ok || world == "" || level == "" {
		return RecordKey{}, fmt.Errorf("invalid record key %q", s)
	}
	return NewRecordKey(world, level), nil
}

// Grade letters, fastest first.
const gradeLetters = "SABCDF"

// GradeIndex returns the index of the first boundary the time is strictly
// below, considering at most five boundaries, or len(boundaries) when the
// time beats none of them.
func GradeIndex(ms int64, boundaries []int64) int {
	for i := 0; i < min(5, len(boundaries)); i++ {
		if ms < boundaries[i] {
			return i
		}
	}
	return len(boundaries)
}

// GradeLetter maps a grade index to its letter. Fewer boundaries mean a
// shorter scale that still ends in F where one is defined.
func GradeLetter(index int, boundaries int) string {
	letters := gradeLetters
	switch boundaries {
	case 0:
		letters = "A"
	case 1:
		letters = "SA"
	case 2:
		letters = "SAF"
	case 3:
		letters = "SABC"
	case 4:
		letters = "SABCF"
	}
	index = max(0, min(index, len(letters)-1))
	return letters[index : index+1]
}

// NoGrade is shown for a level without a record.
const NoGrade = "-"

// FormatTime renders milliseconds as m:ss.mmm.
func FormatTime(ms int64) string {
	if ms < 0 {
		return NoGrade
	}
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}
