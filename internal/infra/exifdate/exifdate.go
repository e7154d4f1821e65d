package exifdate

import (
	"bytes"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

var registerOnce sync.Once

// Taken returns when the photo in content was taken according to its EXIF
// data. ok is false for images without a usable timestamp.
func Taken(content []byte) (time.Time, bool) {
	registerOnce.Do(func() { exif.RegisterParsers(mknote.All...) })

	x, err := exif.Decode(bytes.NewReader(content))
	if err != nil {
		return time.Time{}, false
	}
	tm, err := x.DateTime()
	if err != nil || tm.IsZero() {
		return time.Time{}, false
	}
	return tm, true
}

// IsImage sniffs content the way the upload form does before accepting a file.
func IsImage(content []byte) bool {
	ct := http.DetectContentType(content)
	return strings.HasPrefix(ct, "image/")
}
