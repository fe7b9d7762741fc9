package render

import (
	"bytes"
	"image"
	"os"

	"github.com/disintegration/imaging"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"

	"github.com/johananj/geocaption/internal/logger"
)

// ExifSegment returns the APP1 EXIF segment of the JPEG at path, or nil when
// the file is not a JPEG or carries no EXIF segment.
func ExifSegment(path string) *jpegstructure.Segment {
	if !isJPEG(path) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	intfc, err := jpegstructure.NewJpegMediaParser().ParseBytes(data)
	if err != nil {
		logger.Debug("could not parse JPEG structure of %s: %v", path, err)
		return nil
	}
	sl := intfc.(*jpegstructure.SegmentList)

	_, seg, err := sl.FindExif()
	if err != nil {
		return nil
	}
	return seg
}

// Save encodes img to path, choosing the container from the extension. For
// JPEG output with a source EXIF segment, the segment is spliced back into
// the encoded stream so the original metadata is carried through unchanged.
func Save(img image.Image, path string, exifSeg *jpegstructure.Segment) error {
	if exifSeg == nil || !isJPEG(path) {
		return imaging.Save(img, path)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		return err
	}

	intfc, err := jpegstructure.NewJpegMediaParser().ParseBytes(buf.Bytes())
	if err != nil {
		logger.Warn("could not re-parse encoded JPEG for %s, saving without EXIF: %v", path, err)
		return os.WriteFile(path, buf.Bytes(), 0644)
	}
	sl := intfc.(*jpegstructure.SegmentList)

	// Splice the original EXIF segment in right after SOI.
	segments := sl.Segments()
	merged := make([]*jpegstructure.Segment, 0, len(segments)+1)
	merged = append(merged, segments[0])
	merged = append(merged, exifSeg)
	merged = append(merged, segments[1:]...)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return jpegstructure.NewSegmentList(merged).Write(f)
}
