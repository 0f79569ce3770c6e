package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"image"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen characters (0 keeps all 16).
func ContentHash(data []byte, hexLen int) string {
	return truncate(xxhash.Sum64(data), hexLen)
}

// ContentHashReader computes xxHash64 from a reader, streaming.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncate(h.Sum64(), hexLen), nil
}

// PixelHash hashes the 16-bit RGBA samples of img in row-major order,
// relative to its bounds. Two images hash equal iff they have the same
// dimensions and the same colors, whatever their pixel formats.
func PixelHash(img image.Image, hexLen int) string {
	b := img.Bounds()
	h := xxhash.New()

	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:], uint32(b.Dx()))
	binary.BigEndian.PutUint32(hdr[4:], uint32(b.Dy()))
	h.Write(hdr[:])

	row := make([]byte, 8*b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			i := (x - b.Min.X) * 8
			binary.BigEndian.PutUint16(row[i:], uint16(r))
			binary.BigEndian.PutUint16(row[i+2:], uint16(g))
			binary.BigEndian.PutUint16(row[i+4:], uint16(bl))
			binary.BigEndian.PutUint16(row[i+6:], uint16(a))
		}
		h.Write(row)
	}
	return truncate(h.Sum64(), hexLen)
}

func truncate(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
