package utils

import (
	"strconv"
	"time"
)

const (
	// FileStampLayout names saved images, second resolution.
	FileStampLayout = "20060102150405"
	// ConsoleLayout is used for progress lines.
	ConsoleLayout = "2006-01-02 15:04:05"

	ImageExt = ".png"
)

func FileStamp(t time.Time) string {
	return t.Format(FileStampLayout)
}

// ImageFileName builds "<stamp>_<index>.png". Names only differ by index, so
// two batches saved within the same second share names.
func ImageFileName(stamp string, index int) string {
	return stamp + "_" + strconv.Itoa(index) + ImageExt
}

func ConsoleTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(ConsoleLayout)
}
