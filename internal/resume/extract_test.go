package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText_PlainUTF8(t *testing.T) {
	assert.Equal(t, "5 years of Go", ExtractText([]byte("5 years of Go"), false))
}

func TestExtractText_InvalidUTF8Dropped(t *testing.T) {
	assert.Equal(t, "Go dev", DecodeText([]byte("Go\xff dev")))
}

func TestExtractText_NULBytesDropped(t *testing.T) {
	text := ExtractText([]byte("PK\x03\x04\x14\x00Go\x00 dev"), false)
	assert.NotContains(t, text, "\x00")
	assert.Contains(t, text, "Go dev")
}

func TestExtractPDFText_GarbageReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", ExtractPDFText([]byte("not really a pdf")))
	assert.Equal(t, "", ExtractPDFText(nil))
	assert.Equal(t, "", ExtractText([]byte("%PDF-1.4 truncated"), false))
}
