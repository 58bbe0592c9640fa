package handlers

import (
	"net/url"
	"path/filepath"
	"strings"
)

// NormalizeDropPath turns a raw drag-and-drop payload into a plain path.
//
// Accepted payloads are a Tcl-style list ("{C:/My Pics/a.png} b.png",
// "a\ b.png"), a quoted path, or a text/uri-list of file:// URIs. Only the
// first entry is used. Separators are converted for the host platform.
func NormalizeDropPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	first := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		first = line
		break
	}
	if first == "" {
		return ""
	}

	entry := firstListEntry(first)
	if strings.HasPrefix(entry, "file://") {
		if u, err := url.Parse(entry); err == nil && u.Path != "" {
			entry = u.Path
			if len(entry) > 2 && entry[0] == '/' && entry[2] == ':' {
				// file:///C:/dir/a.png
				entry = entry[1:]
			}
		}
	}
	if entry == "" {
		return ""
	}
	return filepath.FromSlash(entry)
}

func firstListEntry(s string) string {
	switch s[0] {
	case '{':
		if end := strings.IndexByte(s, '}'); end > 0 {
			return s[1:end]
		}
		return strings.TrimPrefix(s, "{")
	case '"', '\'':
		if end := strings.IndexByte(s[1:], s[0]); end >= 0 {
			return s[1 : end+1]
		}
		return s[1:]
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == ' ' {
			b.WriteByte(' ')
			i++
			continue
		}
		if c == ' ' || c == '\t' {
			break
		}
		b.WriteByte(c)
	}
	return b.String()
}
