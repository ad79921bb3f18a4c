package constants

import "strings"

// MIMETypePDF is the only attachment content type the bot processes.
const MIMETypePDF = "application/pdf"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
