package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/floracatalog/metadata"
)

type bagExtractor struct {
	bag metadata.TagBag
}

func (b bagExtractor) Extract(filePath string) metadata.TagBag { return b.bag }

func strp(s string) *string { return &s }

func richBag() metadata.TagBag {
	return metadata.TagBag{
		"ExifIFD": {"DateTimeOriginal": "2023:06:15 14:30:00"},
		"GPS": {
			"GPSLatitude":     `57 deg 46' 28.17"`,
			"GPSLatitudeRef":  "N",
			"GPSLongitude":    `26 deg 2' 12.45"`,
			"GPSLongitudeRef": "E",
			"GPSAltitude":     "83 m",
		},
		"Composite": {"GPSPosition": `57 deg 46' 28.17" N, 26 deg 2' 12.45" E`},
		"IFD0":      {"Make": "Canon", "Model": "Canon EOS R5"},
	}
}

func TestBuildUserInputWins(t *testing.T) {
	builder := NewPhotoBuilder(bagExtractor{bag: richBag()})

	photo := builder.Build("/photos/test.jpg", strp("2024-01-01"), strp("My garden"))
	require.NotNil(t, photo.Date)
	assert.Equal(t, "2024-01-01", *photo.Date)
	require.NotNil(t, photo.Location)
	assert.Equal(t, "My garden", *photo.Location)

	// extracted facts with no user-supplied equivalent are still adopted
	require.NotNil(t, photo.GPSLatitude)
	assert.InDelta(t, 57.774492, *photo.GPSLatitude, 0.0001)
	require.NotNil(t, photo.CameraMake)
	assert.Equal(t, "Canon", *photo.CameraMake)
}

func TestBuildMixedOverride(t *testing.T) {
	builder := NewPhotoBuilder(bagExtractor{bag: richBag()})

	// user supplied only a date: it wins, while location comes from metadata
	photo := builder.Build("/photos/test.jpg", strp("2024-01-01"), nil)
	require.NotNil(t, photo.Date)
	assert.Equal(t, "2024-01-01", *photo.Date)
	require.NotNil(t, photo.Location)
	assert.Equal(t, `57 deg 46' 28.17" N, 26 deg 2' 12.45" E`, *photo.Location)
}

func TestBuildFallsBackToMetadata(t *testing.T) {
	builder := NewPhotoBuilder(bagExtractor{bag: richBag()})

	photo := builder.Build("/photos/test.jpg", nil, nil)
	require.NotNil(t, photo.Date)
	assert.Equal(t, "2023-06-15", *photo.Date)
	require.NotNil(t, photo.Location)
	assert.Equal(t, `57 deg 46' 28.17" N, 26 deg 2' 12.45" E`, *photo.Location)
	require.NotNil(t, photo.GPSAltitude)
	assert.InDelta(t, 83.0, *photo.GPSAltitude, 0.001)
}

func TestBuildEmptyMetadataUsesUserInputOnly(t *testing.T) {
	builder := NewPhotoBuilder(bagExtractor{bag: metadata.TagBag{}})

	photo := builder.Build("/photos/test.jpg", strp("2024-02-02"), nil)
	assert.Equal(t, "/photos/test.jpg", photo.FilePath)
	require.NotNil(t, photo.Date)
	assert.Equal(t, "2024-02-02", *photo.Date)
	assert.Nil(t, photo.Location)
	assert.Nil(t, photo.GPSLatitude)
	assert.Nil(t, photo.CameraMake)
}

func TestBuildDerivesLocationFromCoordinates(t *testing.T) {
	bag := metadata.TagBag{
		"GPS": {
			"GPSLatitude":     `58 deg 0' 0"`,
			"GPSLatitudeRef":  "N",
			"GPSLongitude":    `25 deg 30' 0"`,
			"GPSLongitudeRef": "E",
		},
	}
	builder := NewPhotoBuilder(bagExtractor{bag: bag})

	photo := builder.Build("/photos/test.jpg", nil, nil)
	require.NotNil(t, photo.Location)
	assert.Equal(t, "58, 25.5", *photo.Location)
}
