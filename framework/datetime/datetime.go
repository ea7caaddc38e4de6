// Package datetime formats timestamps the way the application URLs and the
// artifact tree expect them.
package datetime

import (
	"net/url"
	"time"
)

// ISOMillis is ISO-8601 in UTC with millisecond precision
const ISOMillis = "2006-01-02T15:04:05.000Z"

// FileStampLayout prefixes artifact paths and API dumps
const FileStampLayout = "20060102-150405"

// ToURL renders t as a URL-encoded ISO-8601 UTC string with milliseconds
func ToURL(t time.Time) string {
	return url.QueryEscape(t.UTC().Format(ISOMillis))
}

// FileStamp renders t as YYYYMMDD-HHmmss in t's own location
func FileStamp(t time.Time) string {
	return t.Format(FileStampLayout)
}
