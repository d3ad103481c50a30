package figkit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"strings"
)

// svgSetCreator inserts an RDF metadata element after the opening svg tag,
// recording the creator under metadata/RDF/Work/creator/Agent/title.
func svgSetCreator(data []byte, creator string) []byte {
	i := bytes.Index(data, []byte("<svg"))
	if i == -1 {
		return data
	}
	j := bytes.IndexByte(data[i:], '>')
	if j == -1 {
		return data
	}
	meta := `<metadata><rdf:RDF xmlns:dc="http://purl.org/dc/elements/1.1/"` +
		` xmlns:cc="http://creativecommons.org/ns#"` +
		` xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">` +
		`<cc:Work><dc:type rdf:resource="http://purl.org/dc/dcmitype/StillImage"/>` +
		`<dc:creator><cc:Agent><dc:title>` + xmlEscaper.Replace(creator) + `</dc:title></cc:Agent></dc:creator>` +
		`</cc:Work></rdf:RDF></metadata>`
	return splice(data, i+j+1, []byte(meta))
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// psSetCreator replaces the %%Creator DSC comment, or inserts one after the
// version line when the document has none.
func psSetCreator(data []byte, creator string) []byte {
	line := []byte("%%Creator: " + creator)
	if i := bytes.Index(data, []byte("%%Creator:")); i != -1 {
		j := bytes.IndexByte(data[i:], '\n')
		if j == -1 {
			j = len(data) - i
		}
		out := make([]byte, 0, len(data)+len(line))
		out = append(out, data[:i]...)
		out = append(out, line...)
		out = append(out, data[i+j:]...)
		return out
	}
	i := bytes.IndexByte(data, '\n')
	if i == -1 {
		return data
	}
	return splice(data, i+1, append(line, '\n'))
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngSetCreator splices a tEXt chunk with the Creator keyword directly after
// the IHDR chunk.
func pngSetCreator(data []byte, creator string) ([]byte, error) {
	if len(data) < len(pngSignature)+25 || !bytes.HasPrefix(data, pngSignature) {
		return nil, errors.New("figkit: malformed png")
	}
	ihdrLen := binary.BigEndian.Uint32(data[len(pngSignature):])
	end := len(pngSignature) + 12 + int(ihdrLen) // length, type, data, crc
	if len(data) < end {
		return nil, errors.New("figkit: malformed png")
	}

	body := append([]byte("tEXt"), "Creator"...)
	body = append(body, 0)
	body = append(body, creator...)
	chunk := make([]byte, 4, 8+len(body))
	binary.BigEndian.PutUint32(chunk, uint32(len(body)-4))
	chunk = append(chunk, body...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(body))
	return splice(data, end, chunk), nil
}

// ReadCreator decodes the creator metadata embedded by WriteFig. It reports
// false when the format carries no embedded creator, or none was written.
func ReadCreator(data []byte, format string) (string, bool) {
	switch strings.ToLower(format) {
	case "svg":
		i := bytes.Index(data, []byte("<dc:title>"))
		if i == -1 {
			return "", false
		}
		rest := data[i+len("<dc:title>"):]
		j := bytes.Index(rest, []byte("</dc:title>"))
		if j == -1 {
			return "", false
		}
		return xmlUnescaper.Replace(string(rest[:j])), true
	case "pdf":
		i := bytes.Index(data, []byte("/Creator("))
		if i == -1 {
			return "", false
		}
		rest := data[i+len("/Creator("):]
		j := bytes.IndexByte(rest, ')')
		if j == -1 {
			return "", false
		}
		return string(rest[:j]), true
	case "ps", "eps":
		i := bytes.Index(data, []byte("%%Creator:"))
		if i == -1 {
			return "", false
		}
		rest := data[i+len("%%Creator:"):]
		if j := bytes.IndexByte(rest, '\n'); j != -1 {
			rest = rest[:j]
		}
		return strings.TrimSpace(string(rest)), true
	case "png":
		return pngCreator(data)
	}
	return "", false
}

var xmlUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")

// pngCreator walks the chunk list for a tEXt chunk keyed Creator.
func pngCreator(data []byte) (string, bool) {
	if !bytes.HasPrefix(data, pngSignature) {
		return "", false
	}
	pos := len(pngSignature)
	for pos+12 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos:]))
		typ := string(data[pos+4 : pos+8])
		if pos+12+length > len(data) {
			break
		}
		if typ == "tEXt" {
			body := data[pos+8 : pos+8+length]
			if key, text, ok := bytes.Cut(body, []byte{0}); ok && string(key) == "Creator" {
				return string(text), true
			}
		}
		if typ == "IEND" {
			break
		}
		pos += 12 + length
	}
	return "", false
}

func splice(data []byte, at int, insert []byte) []byte {
	out := make([]byte, 0, len(data)+len(insert))
	out = append(out, data[:at]...)
	out = append(out, insert...)
	out = append(out, data[at:]...)
	return out
}
