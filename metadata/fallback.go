package metadata

import (
	"fmt"
	"log"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// ExifFallback decodes EXIF data in-process with goexif when the exiftool
// binary is not installed. It synthesizes the same TagBag shape the exiftool
// runner produces so the normalizer has a single input format.
type ExifFallback struct{}

func NewExifFallback() *ExifFallback {
	return &ExifFallback{}
}

func (f *ExifFallback) Extract(filePath string) TagBag {
	file, err := os.Open(filePath)
	if err != nil {
		log.Printf("metadata: failed to open file %s: %v", filePath, err)
		return TagBag{}
	}
	defer file.Close()

	exifData, err := exif.Decode(file)
	if err != nil {
		// not necessarily an error, the file might just lack EXIF data
		log.Printf("metadata: no EXIF data in %s: %v", filePath, err)
		return TagBag{}
	}

	bag := TagBag{}

	exifIFD := map[string]string{}
	if v := stringTag(exifData, exif.DateTimeOriginal); v != "" {
		exifIFD["DateTimeOriginal"] = v
	}
	if v := stringTag(exifData, exif.DateTimeDigitized); v != "" {
		exifIFD["CreateDate"] = v
	}
	if len(exifIFD) > 0 {
		bag["ExifIFD"] = exifIFD
	}

	ifd0 := map[string]string{}
	if v := stringTag(exifData, exif.DateTime); v != "" {
		ifd0["ModifyDate"] = v
	}
	if v := stringTag(exifData, exif.Make); v != "" {
		ifd0["Make"] = v
	}
	if v := stringTag(exifData, exif.Model); v != "" {
		ifd0["Model"] = v
	}
	if len(ifd0) > 0 {
		bag["IFD0"] = ifd0
	}

	gps := map[string]string{}
	if v := dmsTag(exifData, exif.GPSLatitude); v != "" {
		gps["GPSLatitude"] = v
	}
	if v := stringTag(exifData, exif.GPSLatitudeRef); v != "" {
		gps["GPSLatitudeRef"] = v
	}
	if v := dmsTag(exifData, exif.GPSLongitude); v != "" {
		gps["GPSLongitude"] = v
	}
	if v := stringTag(exifData, exif.GPSLongitudeRef); v != "" {
		gps["GPSLongitudeRef"] = v
	}
	if alt, ok := rationalTag(exifData, exif.GPSAltitude); ok {
		gps["GPSAltitude"] = fmt.Sprintf("%g m", alt)
		if ref, err := exifData.Get(exif.GPSAltitudeRef); err == nil {
			if refVal, err := ref.Int(0); err == nil && refVal == 1 {
				gps["GPSAltitudeRef"] = "Below Sea Level"
			}
		}
	}
	if len(gps) > 0 {
		bag["GPS"] = gps
	}

	return bag
}

func stringTag(exifData *exif.Exif, name exif.FieldName) string {
	tag, err := exifData.Get(name)
	if err != nil || tag == nil {
		return ""
	}
	val, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return val
}

func rationalTag(exifData *exif.Exif, name exif.FieldName) (float64, bool) {
	tag, err := exifData.Get(name)
	if err != nil || tag == nil {
		return 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// dmsTag renders a 3-rational GPS coordinate in exiftool's DMS notation,
// e.g. `57 deg 46' 28.17"`.
func dmsTag(exifData *exif.Exif, name exif.FieldName) string {
	tag, err := exifData.Get(name)
	if err != nil || tag == nil {
		return ""
	}
	var parts [3]float64
	for i := 0; i < 3; i++ {
		num, den, err := tag.Rat2(i)
		if err != nil || den == 0 {
			return ""
		}
		parts[i] = float64(num) / float64(den)
	}
	return fmt.Sprintf("%d deg %d' %.2f\"", int(parts[0]), int(parts[1]), parts[2])
}
