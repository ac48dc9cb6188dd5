package metadata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Facts is the canonical set of facts the normalizer can determine from a raw
// tag bag. Every field is optional; a zero Facts value means nothing could be
// extracted.
type Facts struct {
	Date         *string  `json:"date,omitempty"`     // YYYY-MM-DD
	Location     *string  `json:"location,omitempty"` // free text or "lat, lon"
	GPSLatitude  *float64 `json:"gps_latitude,omitempty"`
	GPSLongitude *float64 `json:"gps_longitude,omitempty"`
	GPSAltitude  *float64 `json:"gps_altitude,omitempty"` // meters, negative below sea level
	CameraMake   *string  `json:"camera_make,omitempty"`
	CameraModel  *string  `json:"camera_model,omitempty"`
}

// IsEmpty reports whether no fact at all was extracted.
func (f Facts) IsEmpty() bool {
	return f.Date == nil && f.Location == nil &&
		f.GPSLatitude == nil && f.GPSLongitude == nil && f.GPSAltitude == nil &&
		f.CameraMake == nil && f.CameraModel == nil
}

var (
	datePattern = regexp.MustCompile(`^(\d{4}):(\d{2}):(\d{2})`)
	dmsPattern  = regexp.MustCompile(`(\d+)\s*deg\s*(\d+)'\s*(\d+\.?\d*)"`)
	altPattern  = regexp.MustCompile(`(\d+\.?\d*)\s*m`)
)

// date tags searched in priority order: original capture time, creation time,
// file modification time.
var dateTags = []struct{ section, tag string }{
	{"ExifIFD", "DateTimeOriginal"},
	{"ExifIFD", "CreateDate"},
	{"IFD0", "ModifyDate"},
	{"File", "FileModifyDate"},
}

// Normalize converts a raw tag bag into canonical facts. Extraction is
// best-effort throughout: a parse failure for one fact never blocks the
// others, and an empty bag simply yields empty facts.
func Normalize(bag TagBag) Facts {
	var facts Facts
	if len(bag) == 0 {
		return facts
	}

	facts.Date = extractDate(bag)
	facts.GPSLatitude, facts.GPSLongitude, facts.GPSAltitude = extractGPS(bag)
	facts.Location = extractLocation(bag, facts.GPSLatitude, facts.GPSLongitude)
	facts.CameraMake, facts.CameraModel = extractCamera(bag)
	return facts
}

func extractDate(bag TagBag) *string {
	for _, dt := range dateTags {
		value, ok := bag[dt.section][dt.tag]
		if !ok {
			continue
		}
		if m := datePattern.FindStringSubmatch(value); m != nil {
			date := fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
			return &date
		}
	}
	return nil
}

func extractGPS(bag TagBag) (lat, lon, alt *float64) {
	gps, ok := bag["GPS"]
	if !ok {
		return nil, nil, nil
	}

	if raw, ok := gps["GPSLatitude"]; ok {
		if v, ok := parseDMS(raw); ok {
			if isSouthOrWest(gps["GPSLatitudeRef"], "s", "south") {
				v = -v
			}
			lat = &v
		}
	}

	if raw, ok := gps["GPSLongitude"]; ok {
		if v, ok := parseDMS(raw); ok {
			if isSouthOrWest(gps["GPSLongitudeRef"], "w", "west") {
				v = -v
			}
			lon = &v
		}
	}

	if raw, ok := gps["GPSAltitude"]; ok {
		if m := altPattern.FindStringSubmatch(raw); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				if strings.EqualFold(gps["GPSAltitudeRef"], "Below Sea Level") {
					v = -v
				}
				alt = &v
			}
		}
	}

	return lat, lon, alt
}

// parseDMS converts a degrees/minutes/seconds string of the form
// `57 deg 46' 28.17"` into decimal degrees.
func parseDMS(raw string) (float64, bool) {
	m := dmsPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	degrees, err1 := strconv.ParseFloat(m[1], 64)
	minutes, err2 := strconv.ParseFloat(m[2], 64)
	seconds, err3 := strconv.ParseFloat(m[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return degrees + minutes/60 + seconds/3600, true
}

// isSouthOrWest matches both single-letter codes and full hemisphere names,
// case-insensitively.
func isSouthOrWest(ref string, short, full string) bool {
	ref = strings.ToLower(strings.TrimSpace(ref))
	return ref == short || ref == full
}

func extractLocation(bag TagBag, lat, lon *float64) *string {
	if pos, ok := bag["Composite"]["GPSPosition"]; ok && pos != "" {
		return &pos
	}
	if lat != nil && lon != nil {
		loc := fmt.Sprintf("%v, %v", *lat, *lon)
		return &loc
	}
	return nil
}

func extractCamera(bag TagBag) (cameraMake, cameraModel *string) {
	ifd0, ok := bag["IFD0"]
	if !ok {
		return nil, nil
	}
	if v, ok := ifd0["Make"]; ok && v != "" {
		cameraMake = &v
	}
	if v, ok := ifd0["Model"]; ok && v != "" {
		cameraModel = &v
	}
	return cameraMake, cameraModel
}
