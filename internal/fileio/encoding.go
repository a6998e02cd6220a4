// Package fileio is the notepad's open/save collaborator. It detects
// character encodings common in Chinese plain text (UTF-8 with or
// without BOM, UTF-16, GB18030), decodes files to UTF-8 for the
// buffer, and re-encodes on save with an atomic write.
package fileio

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies a supported character encoding.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF8BOM Encoding = "utf-8-bom"
	EncodingUTF16LE Encoding = "utf-16le"
	EncodingUTF16BE Encoding = "utf-16be"
	EncodingGB18030 Encoding = "gb18030"
)

// BOM markers.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectEncoding guesses the encoding of raw file content. BOM markers
// win; otherwise valid UTF-8 is taken at face value and anything else
// falls back to GB18030, which accepts all byte sequences and covers
// legacy GBK/GB2312 text.
func DetectEncoding(content []byte) Encoding {
	if len(content) == 0 {
		return EncodingUTF8
	}
	if bytes.HasPrefix(content, bomUTF8) {
		return EncodingUTF8BOM
	}
	if bytes.HasPrefix(content, bomUTF16LE) {
		return EncodingUTF16LE
	}
	if bytes.HasPrefix(content, bomUTF16BE) {
		return EncodingUTF16BE
	}
	if utf8.Valid(content) {
		return EncodingUTF8
	}
	return EncodingGB18030
}

// codec returns the x/text codec for e. UTF-8 needs no transformation
// and returns nil.
func (e Encoding) codec() encoding.Encoding {
	switch e {
	case EncodingUTF8BOM:
		return unicode.UTF8BOM
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case EncodingGB18030:
		return simplifiedchinese.GB18030
	default:
		return nil
	}
}

// String returns the encoding name shown in the status bar.
func (e Encoding) String() string {
	if e == "" {
		return string(EncodingUTF8)
	}
	return string(e)
}

// Decode converts raw content in encoding e to UTF-8.
func Decode(content []byte, e Encoding) (string, error) {
	c := e.codec()
	if c == nil {
		return string(content), nil
	}
	decoded, err := c.NewDecoder().Bytes(content)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// Encode converts UTF-8 text into encoding e for writing to disk.
func Encode(text string, e Encoding) ([]byte, error) {
	c := e.codec()
	if c == nil {
		return []byte(text), nil
	}
	return c.NewEncoder().Bytes([]byte(text))
}
