package config

import (
	"path/filepath"
	"strings"
)

// ResumeContentTypes - типы файлов резюме, которые сохраняем с известным MIME.
// Остальные расширения принимаются и хранятся как application/octet-stream.
var ResumeContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
	".rtf":  "application/rtf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ResumeContentType возвращает MIME по имени файла
func ResumeContentType(filename string) string {
	if ct, ok := ResumeContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// IsPDF - резюме нужно прогонять через извлечение текста из PDF
func IsPDF(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}
