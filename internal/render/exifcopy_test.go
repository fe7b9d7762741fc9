package render

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalExifData is an APP1 EXIF body: the Exif prefix followed by a
// little-endian TIFF header with an empty IFD.
func minimalExifData() []byte {
	return []byte{
		'E', 'x', 'i', 'f', 0, 0,
		'I', 'I', 0x2a, 0x00, 0x08, 0x00, 0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
}

// writeJPEGWithExif encodes a solid JPEG and splices exifData in as an APP1
// segment right after SOI.
func writeJPEGWithExif(t *testing.T, path string, exifData []byte) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, solidImage(64, 48, color.White), imaging.JPEG))

	intfc, err := jpegstructure.NewJpegMediaParser().ParseBytes(buf.Bytes())
	require.NoError(t, err)
	segments := intfc.(*jpegstructure.SegmentList).Segments()

	merged := []*jpegstructure.Segment{
		segments[0],
		{MarkerId: jpegstructure.MARKER_APP1, Data: exifData},
	}
	merged = append(merged, segments[1:]...)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpegstructure.NewSegmentList(merged).Write(f))
}

func TestExifSegmentRoundTripThroughSave(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")
	writeJPEGWithExif(t, src, minimalExifData())

	seg := ExifSegment(src)
	require.NotNil(t, seg)
	assert.Equal(t, minimalExifData(), seg.Data)

	img, err := imaging.Open(src)
	require.NoError(t, err)
	require.NoError(t, Save(img, dst, seg))

	// The saved file must still be a parseable JPEG carrying the original
	// EXIF segment byte for byte.
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	intfc, err := jpegstructure.NewJpegMediaParser().ParseBytes(data)
	require.NoError(t, err)

	_, found, err := intfc.(*jpegstructure.SegmentList).FindExif()
	require.NoError(t, err)
	assert.Equal(t, minimalExifData(), found.Data)

	saved, err := imaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, 64, saved.Bounds().Dx())
	assert.Equal(t, 48, saved.Bounds().Dy())
}

func TestExifSegmentNilForPlainJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.jpg")
	require.NoError(t, imaging.Save(solidImage(32, 32, color.White), path))

	assert.Nil(t, ExifSegment(path))
}

func TestExifSegmentNilForNonJPEG(t *testing.T) {
	assert.Nil(t, ExifSegment(filepath.Join(t.TempDir(), "photo.png")))
}

func TestSaveWithoutSegmentWritesPlainImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	require.NoError(t, Save(solidImage(32, 32, color.White), path, nil))

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
}
