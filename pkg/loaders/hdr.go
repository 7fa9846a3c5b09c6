package loaders

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rayshard/pathtracer/pkg/core"
)

// HDRImage is a decoded Radiance (.hdr/.pic) image: linear-light RGB
// floats, row-major, top row first.
type HDRImage struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadHDR reads a Radiance RGBE-encoded HDR environment map, the format
// this renderer's equirectangular image-based lighting expects.
func LoadHDR(filename string) (*HDRImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loaders: open HDR file: %w", err)
	}
	defer file.Close()

	return ReadHDR(bufio.NewReader(file))
}

// ReadHDR parses the Radiance header ("#?RADIANCE", FORMAT=, optional
// EXPOSURE=/GAMMA=, blank line, resolution string) followed by scanlines,
// each either flat RGBE or new-style run-length-encoded RGBE.
func ReadHDR(r *bufio.Reader) (*HDRImage, error) {
	magic, err := r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("loaders: read HDR magic line: %w", err)
	}
	if !strings.HasPrefix(magic, "#?") {
		return nil, fmt.Errorf("loaders: not a Radiance HDR file (magic %q)", magic)
	}

	exposure := 1.0
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("loaders: read HDR header: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break // header ends at the first blank line
		}
		if v, ok := strings.CutPrefix(line, "EXPOSURE="); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				exposure *= f
			}
		}
		// FORMAT=, GAMMA=, and comment lines are accepted but otherwise unused.
	}

	resLine, err := r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("loaders: read HDR resolution line: %w", err)
	}
	width, height, err := parseHDRResolution(resLine)
	if err != nil {
		return nil, err
	}

	pixels := make([]core.Vec3, width*height)
	row := make([]rgbe, width)
	for y := 0; y < height; y++ {
		if err := readHDRScanline(r, row); err != nil {
			return nil, fmt.Errorf("loaders: read scanline %d: %w", y, err)
		}
		for x, px := range row {
			pixels[y*width+x] = px.toVec3().Multiply(1 / exposure)
		}
	}

	return &HDRImage{Width: width, Height: height, Pixels: pixels}, nil
}

// parseHDRResolution parses a line like "-Y 512 +X 1024" into (width, height).
// Only the common top-down, left-to-right orientation is supported.
func parseHDRResolution(line string) (width, height int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "-Y" || fields[2] != "+X" {
		return 0, 0, fmt.Errorf("loaders: unsupported HDR resolution line %q", line)
	}
	height, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("loaders: invalid HDR height: %w", err)
	}
	width, err = strconv.Atoi(fields[3])
	if err != nil {
		return 0, 0, fmt.Errorf("loaders: invalid HDR width: %w", err)
	}
	return width, height, nil
}

type rgbe [4]byte

func (c rgbe) toVec3() core.Vec3 {
	if c[3] == 0 {
		return core.Vec3{}
	}
	scale := math.Ldexp(1.0, int(c[3])-(128+8))
	return core.Vec3{
		X: float64(c[0]) * scale,
		Y: float64(c[1]) * scale,
		Z: float64(c[2]) * scale,
	}
}

// readHDRScanline fills row with one decoded scanline, handling both the
// flat (pre-RLE) format and the "new" run-length-encoded format Radiance
// uses for scanlines at least 8 and at most 0x7fff pixels wide.
func readHDRScanline(r *bufio.Reader, row []rgbe) error {
	width := len(row)
	if width < 8 || width > 0x7fff {
		return readHDRFlatScanline(r, row)
	}

	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return err
	}

	if header[0] != 2 || header[1] != 2 || (int(header[2])<<8|int(header[3])) != width {
		// Old-style flat scanline; header bytes are actually the first pixel.
		row[0] = rgbe{header[0], header[1], header[2], header[3]}
		return readHDRFlatScanline(r, row[1:])
	}

	var channel [4][]byte
	for c := 0; c < 4; c++ {
		channel[c] = make([]byte, width)
		if err := readHDRRLEChannel(r, channel[c]); err != nil {
			return err
		}
	}
	for x := 0; x < width; x++ {
		row[x] = rgbe{channel[0][x], channel[1][x], channel[2][x], channel[3][x]}
	}
	return nil
}

func readHDRFlatScanline(r *bufio.Reader, row []rgbe) error {
	buf := make([]byte, len(row)*4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	for x := range row {
		copy(row[x][:], buf[x*4:x*4+4])
	}
	return nil
}

// readHDRRLEChannel decodes one of the four RLE-compressed component
// planes of a new-style scanline: a run byte > 128 repeats the next byte
// (count-128) times, otherwise the next `count` bytes are literal.
func readHDRRLEChannel(r *bufio.Reader, out []byte) error {
	pos := 0
	for pos < len(out) {
		count, err := r.ReadByte()
		if err != nil {
			return err
		}
		if count > 128 {
			value, err := r.ReadByte()
			if err != nil {
				return err
			}
			n := int(count) - 128
			if pos+n > len(out) {
				return fmt.Errorf("RLE run overruns scanline")
			}
			for i := 0; i < n; i++ {
				out[pos] = value
				pos++
			}
		} else {
			n := int(count)
			if pos+n > len(out) {
				return fmt.Errorf("RLE literal run overruns scanline")
			}
			buf := make([]byte, n)
			if _, err := io.ReadFull(r, buf); err != nil {
				return err
			}
			copy(out[pos:], buf)
			pos += n
		}
	}
	return nil
}
