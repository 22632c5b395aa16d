package compose

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"math"
)

const (
	pngSignatureLen = 8
	ihdrChunkLen    = 4 + 4 + 13 + 4 // length + type + data + crc
	metersPerInch   = 0.0254
)

// encodePNG writes img as PNG with a pHYs chunk recording dpi, right after
// IHDR where decoders expect it.
func encodePNG(w io.Writer, img image.Image, dpi int) error {
	enc := png.Encoder{
		CompressionLevel: png.BestCompression,
		BufferPool:       pngPool,
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, img); err != nil {
		return err
	}
	data := buf.Bytes()
	if len(data) < pngSignatureLen+ihdrChunkLen || string(data[pngSignatureLen+4:pngSignatureLen+8]) != "IHDR" {
		return fmt.Errorf("unexpected PNG stream layout")
	}

	split := pngSignatureLen + ihdrChunkLen
	for _, part := range [][]byte{data[:split], physChunk(dpi), data[split:]} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	return nil
}

func physChunk(dpi int) []byte {
	ppm := uint32(math.Round(float64(dpi) / metersPerInch))

	chunk := binary.BigEndian.AppendUint32(nil, 9)
	chunk = append(chunk, "pHYs"...)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = append(chunk, 1) // unit: meter
	return binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))
}

// DPI reads the resolution back from a PNG pHYs chunk, 0 when absent.
func DPI(r io.Reader) (int, error) {
	var sig [pngSignatureLen]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return 0, err
	}
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return 0, err
		}
		n := binary.BigEndian.Uint32(hdr[:4])
		body := make([]byte, int(n)+4)
		if _, err := io.ReadFull(r, body); err != nil {
			return 0, err
		}
		switch string(hdr[4:]) {
		case "pHYs":
			if n != 9 || body[8] != 1 {
				return 0, nil
			}
			ppm := binary.BigEndian.Uint32(body[:4])
			return int(math.Round(float64(ppm) * metersPerInch)), nil
		case "IDAT", "IEND":
			return 0, nil
		}
	}
}
