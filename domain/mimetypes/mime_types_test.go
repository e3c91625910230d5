package mimetypes

import (
	"testing"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		detected string
		expected MIME
		want     bool
	}{
		{"Plain text with charset", "text/plain; charset=utf-8", TextPlain, true},
		{"HTML text", "text/html; charset=utf-8", TextHTML, true},
		{"PDF", "application/pdf", ApplicationPDF, true},
		{"JSON with charset", "application/json; charset=utf-8", ApplicationJSON, true},
		{"XML detected as text/xml", "text/xml; charset=utf-8", ApplicationXML, false}, // attention
		{"Mismatch", "text/plain; charset=utf-8", ApplicationJSON, false},
		{"Invalid MIME", "not a mime", TextPlain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Matches(tt.detected, tt.expected)
			if ok != tt.want && got != tt.expected {
				t.Errorf("Matches(%q, %q) = %v; want %v", tt.detected, tt.expected, ok, tt.want)
			}
		})
	}
}

func TestExtensionForMIME(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantExt     string
		wantOK      bool
	}{
		{"PDF", "application/pdf", "pdf", true},
		{"PDF with charset", "application/pdf; charset=binary", "pdf", true},
		{"Plain text", "text/plain; charset=utf-8", "txt", true},
		{"DOCX", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "docx", true},
		{"Legacy Word", "application/msword", "docx", true},
		{"Markdown", "text/markdown", "md", true},
		{"Unknown binary", "application/octet-stream", "", false},
		{"Empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, ok := ExtensionForMIME(tt.contentType)
			if ext != tt.wantExt || ok != tt.wantOK {
				t.Errorf("ExtensionForMIME(%q) = (%q, %v); want (%q, %v)",
					tt.contentType, ext, ok, tt.wantExt, tt.wantOK)
			}
		})
	}
}

func TestSniffExtension(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantExt     string
		wantOK      bool
	}{
		{"Any text subtype", "text/x-fortran", "txt", true},
		{"PDF marker", "application/x-pdf", "pdf", true},
		{"Word marker", "application/vnd.openxmlformats-officedocument.wordprocessingml.template", "docx", true},
		{"Spreadsheet marker", "application/vnd.oasis.opendocument.spreadsheet", "xlsx", true},
		{"EPUB marker", "application/epub+zip", "epub", true},
		{"No marker", "application/octet-stream", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, ok := SniffExtension(tt.contentType)
			if ext != tt.wantExt || ok != tt.wantOK {
				t.Errorf("SniffExtension(%q) = (%q, %v); want (%q, %v)",
					tt.contentType, ext, ok, tt.wantExt, tt.wantOK)
			}
		})
	}
}

func TestLooksDocumentLike(t *testing.T) {
	if !LooksDocumentLike("application/pdf") {
		t.Error("expected application/pdf to look document-like")
	}
	if !LooksDocumentLike("text/plain") {
		t.Error("expected text/plain to look document-like")
	}
	if LooksDocumentLike("image/png") {
		t.Error("did not expect image/png to look document-like")
	}
}
