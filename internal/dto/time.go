package dto

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Time decodes the timestamp formats the API emits. Timestamps without a
// zone are read as UTC. A value it cannot read decodes as the zero time.
type Time struct {
	time.Time
}

func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (t *Time) UnmarshalJSON(b []byte) error {
	t.Time = time.Time{}
	raw := string(b)
	if raw == "null" {
		return nil
	}
	if !strings.HasPrefix(raw, `"`) {
		epoch, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Printf("ignoring timestamp %s: %v", raw, err)
			return nil
		}
		t.Time = epochTime(epoch)
		return nil
	}
	s := strings.Trim(raw, `"`)
	if s == "" {
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		log.Printf("ignoring timestamp: %v", err)
		return nil
	}
	t.Time = parsed
	return nil
}

// epochTime reads seconds, or milliseconds for values too large to be
// seconds.
func epochTime(v float64) time.Time {
	if v > 1e12 {
		return time.UnixMilli(int64(v)).UTC()
	}
	sec := int64(v)
	return time.Unix(sec, int64((v-float64(sec))*1e9)).UTC()
}

func (t Time) MarshalJSON() ([]byte, error) {
	return t.Time.MarshalJSON()
}
