// Package daily derives the deterministic daily-challenge word.
// Every player using the same salt and word list gets the same word on the
// same UTC date; each word length has its own word for the day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"
	"unicode/utf8"
)

// DefaultSalt is used when DAILY_SALT is not configured.
const DefaultSalt = "local_dev_salt"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex maps (date, word length) to an index in [0, n).
// The index is HMAC-SHA256(salt, "YYYY-MM-DD/length") read as a big-endian
// uint64, modulo n. n <= 0 yields 0.
func WordIndex(date time.Time, length int, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write(strconv.AppendInt([]byte(DateKey(date)+"/"), int64(length), 10))
	return int(binary.BigEndian.Uint64(mac.Sum(nil)) % uint64(n))
}

// Pick returns the day's word among same-length candidates, or "" when
// there are none.
func Pick(candidates []string, date time.Time, salt string) string {
	if len(candidates) == 0 {
		return ""
	}
	length := utf8.RuneCountInString(candidates[0])
	return candidates[WordIndex(date, length, salt, len(candidates))]
}
