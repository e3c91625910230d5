package mimetypes

import (
	"mime"
	"strings"
)

type MIME string

const (
	Unknown   MIME = "unknown"
	TextPlain MIME = "text/plain"
	TextHTML  MIME = "text/html"
	TextCSV   MIME = "text/csv"

	ApplicationPDF   MIME = "application/pdf"
	ApplicationJSON  MIME = "application/json"
	ApplicationXML   MIME = "application/xml"
	ApplicationEPUB  MIME = "application/epub+zip"
	ApplicationDOCX  MIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ApplicationXLSX  MIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ApplicationPPTX  MIME = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	ApplicationOctet MIME = "application/octet-stream"
)

func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// allowedExtensions mirrors the processing service's accepted formats.
var allowedExtensions = map[string]struct{}{
	// Documents
	"pdf": {}, "docx": {}, "txt": {}, "epub": {}, "html": {}, "md": {}, "rtf": {},
	// Spreadsheets
	"xlsx": {}, "csv": {}, "xls": {},
	// Presentations
	"pptx": {}, "ppt": {},
	// Code files
	"py": {}, "js": {}, "ts": {}, "java": {}, "cpp": {}, "c": {}, "cs": {},
	"php": {}, "rb": {}, "go": {}, "rs": {},
	// Data files
	"json": {}, "jsonl": {}, "xml": {}, "yaml": {}, "yml": {},
}

// AllowedExtensionList is the accepted extension set in a stable order,
// used to build deterministic error messages.
var AllowedExtensionList = []string{
	"pdf", "docx", "txt", "epub", "html", "md", "rtf",
	"xlsx", "csv", "xls", "pptx", "ppt",
	"py", "js", "ts", "java", "cpp", "c", "cs", "php", "rb", "go", "rs",
	"json", "jsonl", "xml", "yaml", "yml",
}

// extensionByMIME resolves well-known media types to a canonical extension.
var extensionByMIME = map[string]string{
	string(TextPlain):        "txt",
	string(TextHTML):         "html",
	string(TextCSV):          "csv",
	"text/markdown":          "md",
	string(ApplicationPDF):   "pdf",
	string(ApplicationJSON):  "json",
	string(ApplicationXML):   "xml",
	"text/xml":               "xml",
	string(ApplicationEPUB):  "epub",
	string(ApplicationDOCX):  "docx",
	string(ApplicationXLSX):  "xlsx",
	string(ApplicationPPTX):  "pptx",
	"application/msword":     "docx",
	"application/rtf":        "rtf",
	"application/x-yaml":     "yaml",
	"application/yaml":       "yaml",
	"application/javascript": "js",
}

// IsAllowedExtension reports whether ext (without the dot, any case) is in
// the service's accepted format list.
func IsAllowedExtension(ext string) bool {
	_, ok := allowedExtensions[strings.ToLower(ext)]
	return ok
}

// ExtensionForMIME resolves a declared content type to an extension via the
// lookup table. Media type parameters (charset, ...) are stripped first.
func ExtensionForMIME(contentType string) (string, bool) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	ext, ok := extensionByMIME[mt]
	return ext, ok
}

// SniffExtension is the coarse pattern fallback when the lookup table has
// no entry: text/* maps to txt, recognizable office/e-book markers map to
// their formats.
func SniffExtension(contentType string) (string, bool) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "text/"):
		return "txt", true
	case strings.Contains(ct, "pdf"):
		return "pdf", true
	case strings.Contains(ct, "wordprocessing"), strings.Contains(ct, "msword"):
		return "docx", true
	case strings.Contains(ct, "spreadsheet"), strings.Contains(ct, "excel"):
		return "xlsx", true
	case strings.Contains(ct, "presentation"), strings.Contains(ct, "powerpoint"):
		return "pptx", true
	case strings.Contains(ct, "epub"):
		return "epub", true
	case strings.Contains(ct, "json"):
		return "json", true
	case strings.Contains(ct, "xml"):
		return "xml", true
	default:
		return "", false
	}
}

// LooksDocumentLike reports whether a content type plausibly denotes a
// document even when no extension can be resolved. Used for the lenient
// acceptance pass on mobile profiles.
func LooksDocumentLike(contentType string) bool {
	ct := strings.ToLower(contentType)
	if strings.HasPrefix(ct, "text/") {
		return true
	}
	for _, marker := range []string{"document", "pdf", "epub", "officedocument", "msword", "opendocument"} {
		if strings.Contains(ct, marker) {
			return true
		}
	}
	return false
}

// ToMIME normalizes a raw detected media type to one of the known MIME
// constants, or Unknown.
func ToMIME(raw string) MIME {
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return Unknown
	}
	switch MIME(mt) {
	case TextPlain, TextHTML, TextCSV, ApplicationPDF, ApplicationJSON,
		ApplicationXML, ApplicationEPUB, ApplicationDOCX, ApplicationXLSX,
		ApplicationPPTX, ApplicationOctet:
		return MIME(mt)
	default:
		return Unknown
	}
}
