package utils

import (
	"encoding/json"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"pingrelay/config"
)

// Unified JSON response function
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

var durationPattern = regexp.MustCompile(`^(\d+)([smhdw])$`)

// ParseDuration converts compact strings like "5m" or "2h" into a TTL.
// Missing or malformed input falls back to the default ping lifetime.
// "0" is a valid value; such a ping expires on the next sweep.
func ParseDuration(s string) time.Duration {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return config.DefaultPingTTL
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return config.DefaultPingTTL
	}
	var unit time.Duration
	switch m[2] {
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	case "w":
		unit = 7 * 24 * time.Hour
	}
	// A value big enough to overflow the multiplication would come out
	// negative, i.e. already expired. Treat it like malformed input.
	if n > math.MaxInt64/int64(unit) {
		return config.DefaultPingTTL
	}
	return time.Duration(n) * unit
}
