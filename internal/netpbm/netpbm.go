// Package netpbm decodes the portable pixmap flavors the brush engine
// writes: plain-text P3 and binary P6. It follows the conventions of
// the image codecs under golang.org/x/image and registers itself with
// the image package.
package netpbm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// ErrBadMagic reports input that does not start with a P3 or P6 magic
// number.
var ErrBadMagic = errors.New("netpbm: not a P3 or P6 pixmap")

func init() {
	image.RegisterFormat("ppm", "P3", Decode, DecodeConfig)
	image.RegisterFormat("ppm", "P6", Decode, DecodeConfig)
}

type decoder struct {
	r      *bufio.Reader
	raw    bool
	width  int
	height int
	maxval int
}

// Decode reads a PPM image from r. Samples are scaled from the stated
// maxval to 8 bits per channel; alpha is always opaque.
func Decode(r io.Reader) (image.Image, error) {
	d := &decoder{r: bufio.NewReader(r)}
	if err := d.header(); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, d.width, d.height))
	var err error
	if d.raw {
		err = d.decodeRaw(img)
	} else {
		err = d.decodePlain(img)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// DecodeConfig reads only the PPM header from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d := &decoder{r: bufio.NewReader(r)}
	if err := d.header(); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      d.width,
		Height:     d.height,
	}, nil
}

func (d *decoder) header() error {
	var magic [2]byte
	if _, err := io.ReadFull(d.r, magic[:]); err != nil {
		return fmt.Errorf("netpbm: reading magic: %w", err)
	}
	switch string(magic[:]) {
	case "P3":
	case "P6":
		d.raw = true
	default:
		return ErrBadMagic
	}
	w, err := d.intToken()
	if err != nil {
		return err
	}
	h, err := d.intToken()
	if err != nil {
		return err
	}
	m, err := d.intToken()
	if err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("netpbm: invalid dimensions %dx%d", w, h)
	}
	if m <= 0 || m > 65535 {
		return fmt.Errorf("netpbm: invalid maxval %d", m)
	}
	d.width, d.height, d.maxval = w, h, m
	return nil
}

func (d *decoder) decodeRaw(img *image.NRGBA) error {
	bps := 1
	if d.maxval > 255 {
		bps = 2
	}
	row := make([]byte, 3*bps*d.width)
	for y := 0; y < d.height; y++ {
		if _, err := io.ReadFull(d.r, row); err != nil {
			return fmt.Errorf("netpbm: truncated pixel data: %w", err)
		}
		for x := 0; x < d.width; x++ {
			var s [3]int
			for k := range s {
				if bps == 1 {
					s[k] = int(row[3*x+k])
				} else {
					s[k] = int(row[6*x+2*k])<<8 | int(row[6*x+2*k+1])
				}
				if s[k] > d.maxval {
					s[k] = d.maxval
				}
			}
			img.SetNRGBA(x, y, color.NRGBA{d.scale(s[0]), d.scale(s[1]), d.scale(s[2]), 0xff})
		}
	}
	return nil
}

func (d *decoder) decodePlain(img *image.NRGBA) error {
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			var s [3]int
			for k := range s {
				v, err := d.intToken()
				if err != nil {
					return err
				}
				if v < 0 || v > d.maxval {
					return fmt.Errorf("netpbm: sample %d out of range 0..%d", v, d.maxval)
				}
				s[k] = v
			}
			img.SetNRGBA(x, y, color.NRGBA{d.scale(s[0]), d.scale(s[1]), d.scale(s[2]), 0xff})
		}
	}
	return nil
}

func (d *decoder) scale(v int) uint8 {
	return uint8((v*255 + d.maxval/2) / d.maxval)
}

// token returns the next run of non-whitespace bytes, skipping any mix
// of whitespace and #-to-end-of-line comments before it. The single
// whitespace byte terminating the token is consumed, which is what the
// raw format requires after its maxval field.
func (d *decoder) token() (string, error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '#' {
			for b != '\n' {
				b, err = d.r.ReadByte()
				if err != nil {
					return "", err
				}
			}
			continue
		}
		if !isSpace(b) {
			d.r.UnreadByte()
			break
		}
	}
	var tok []byte
	for {
		b, err := d.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if isSpace(b) {
			break
		}
		tok = append(tok, b)
	}
	return string(tok), nil
}

func (d *decoder) intToken() (int, error) {
	tok, err := d.token()
	if err != nil {
		return 0, fmt.Errorf("netpbm: unexpected end of input: %w", err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("netpbm: bad integer %q", tok)
	}
	return v, nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
