package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"sync"
)

// TagBag holds raw tool output grouped by section, e.g. bag["GPS"]["GPSLatitude"].
// All values are kept as strings in the tool's own formats; Normalize turns
// them into canonical facts.
type TagBag map[string]map[string]string

// Extractor produces a raw tag bag for an image file. An empty bag signals
// that no metadata could be read; extraction never fails for data-quality
// reasons.
type Extractor interface {
	Extract(filePath string) TagBag
}

// ExifTool extracts metadata by invoking the exiftool binary. Availability is
// checked once; when the binary is missing every Extract call short-circuits
// to an empty bag instead of failing repeatedly.
type ExifTool struct {
	checkOnce sync.Once
	available bool
}

func NewExifTool() *ExifTool {
	return &ExifTool{}
}

// Available reports whether the exiftool binary can be found on the host.
func (e *ExifTool) Available() bool {
	e.checkOnce.Do(func() {
		path, err := exec.LookPath("exiftool")
		if err != nil {
			log.Printf("metadata: exiftool not found in PATH, metadata extraction disabled: %v", err)
			return
		}
		e.available = true
		log.Printf("metadata: using exiftool at %s", path)
	})
	return e.available
}

// Extract runs exiftool on the given file and returns its tags grouped by
// section. Any failure (missing file, tool error, unparseable output) yields
// an empty bag.
func (e *ExifTool) Extract(filePath string) TagBag {
	if !e.Available() {
		return TagBag{}
	}

	if _, err := os.Stat(filePath); err != nil {
		log.Printf("metadata: cannot stat %s: %v", filePath, err)
		return TagBag{}
	}

	cmd := exec.Command("exiftool", "-json", "-a", "-u", "-g1", filePath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		log.Printf("metadata: exiftool failed for %s: %v (%s)", filePath, err, stderr.String())
		return TagBag{}
	}

	return parseExifToolOutput(stdout.Bytes(), filePath)
}

// parseExifToolOutput decodes exiftool's grouped JSON output (a single-element
// array of section objects) into a TagBag, stringifying scalar tag values.
func parseExifToolOutput(data []byte, filePath string) TagBag {
	var results []map[string]json.RawMessage
	if err := json.Unmarshal(data, &results); err != nil || len(results) == 0 {
		log.Printf("metadata: failed to parse exiftool output for %s: %v", filePath, err)
		return TagBag{}
	}

	bag := TagBag{}
	for section, raw := range results[0] {
		var tags map[string]interface{}
		if err := json.Unmarshal(raw, &tags); err != nil {
			// top-level scalars like SourceFile are not section groups
			continue
		}
		sectionTags := make(map[string]string, len(tags))
		for name, value := range tags {
			switch v := value.(type) {
			case string:
				sectionTags[name] = v
			case float64, bool:
				sectionTags[name] = fmt.Sprintf("%v", v)
			default:
				// nested structures are of no use to the normalizer
			}
		}
		if len(sectionTags) > 0 {
			bag[section] = sectionTags
		}
	}
	return bag
}
