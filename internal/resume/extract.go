// Package resume извлекает текст из загруженных файлов резюме.
package resume

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"hiremind_backend/internal/logger"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText возвращает текст PDF или пустую строку при любой ошибке.
// Пустой текст - допустимый вход для анализатора.
func ExtractPDFText(data []byte) (text string) {
	defer func() {
		// ledongthuc/pdf паникует на части битых файлов
		if r := recover(); r != nil {
			logger.Warn("pdf text extraction panicked", "panic", r)
			text = ""
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logger.Warn("pdf open failed", "error", err)
		return ""
	}

	plain, err := r.GetPlainText()
	if err != nil {
		logger.Warn("pdf text extraction failed", "error", err)
		return ""
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		logger.Warn("pdf text read failed", "error", err)
		return ""
	}
	return strings.TrimSpace(buf.String())
}

// DecodeText читает файл как UTF-8, невалидные байты и NUL отбрасываются.
// Postgres не принимает 0x00 в text колонках.
func DecodeText(data []byte) string {
	text := string(data)
	if !utf8.Valid(data) {
		text = strings.ToValidUTF8(text, "")
	}
	return strings.ReplaceAll(text, "\x00", "")
}

// ExtractText выбирает способ по признаку PDF
func ExtractText(data []byte, isPDF bool) string {
	if isPDF || bytes.HasPrefix(data, []byte("%PDF-")) {
		return ExtractPDFText(data)
	}
	return DecodeText(data)
}
