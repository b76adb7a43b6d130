package rewriter

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Namespace URIs of the element namespaces x/net/html produces.
const (
	xhtmlNS  = "http://www.w3.org/1999/xhtml"
	svgNS    = "http://www.w3.org/2000/svg"
	mathmlNS = "http://www.w3.org/1998/Math/MathML"
	xlinkNS  = "http://www.w3.org/1999/xlink"
)

// voidElements never have children and are written self-closed.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// RenderXHTML writes n and its subtree as well-formed XHTML. Doctypes are
// dropped, as are comments that would not be valid XML, attributes whose
// names are not valid XML names and characters XML does not allow. SVG and
// MathML subtrees carry their namespace declaration.
func RenderXHTML(w io.Writer, n *html.Node) error {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	if err := render(bw, n, xhtmlNS); err != nil {
		return err
	}
	return bw.Flush()
}

// render writes n, whose parent element is in namespace parentNS.
func render(w *bufio.Writer, n *html.Node, parentNS string) error {
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := render(w, c, parentNS); err != nil {
				return err
			}
		}
		return nil
	case html.TextNode:
		_, err := w.WriteString(escape(n.Data))
		return err
	case html.CommentNode:
		data := xmlChars(n.Data)
		if strings.Contains(data, "--") || strings.HasSuffix(data, "-") {
			return nil
		}
		_, err := w.WriteString("<!--" + data + "-->")
		return err
	case html.DoctypeNode, html.ErrorNode:
		return nil
	}
	if n.Type != html.ElementNode {
		return nil
	}

	ns := namespaceURI(n.Namespace)
	w.WriteByte('<')
	w.WriteString(n.Data)
	if ns != parentNS {
		writeAttr(w, "xmlns", ns)
	}
	declaredXlink := false
	for _, a := range n.Attr {
		key, ok := attrName(a)
		if !ok {
			continue
		}
		if a.Namespace == "xlink" && !declaredXlink {
			writeAttr(w, "xmlns:xlink", xlinkNS)
			declaredXlink = true
		}
		writeAttr(w, key, a.Val)
	}

	if n.Namespace == "" && voidElements[n.Data] {
		_, err := w.WriteString("/>")
		return err
	}
	w.WriteByte('>')
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := render(w, c, ns); err != nil {
			return err
		}
	}
	w.WriteString("</")
	w.WriteString(n.Data)
	_, err := w.WriteString(">")
	return err
}

func writeAttr(w *bufio.Writer, key, val string) {
	w.WriteByte(' ')
	w.WriteString(key)
	w.WriteString(`="`)
	w.WriteString(escape(val))
	w.WriteByte('"')
}

func namespaceURI(ns string) string {
	switch ns {
	case "svg":
		return svgNS
	case "math":
		return mathmlNS
	}
	return xhtmlNS
}

// attrName returns the XML name a is written under. Namespace declarations
// are written by the renderer itself, so xmlns attributes are skipped.
func attrName(a html.Attribute) (string, bool) {
	switch a.Namespace {
	case "":
	case "xlink", "xml":
		if !validName(a.Key) {
			return "", false
		}
		return a.Namespace + ":" + a.Key, true
	default:
		return "", false
	}
	if a.Key == "xmlns" || strings.HasPrefix(a.Key, "xmlns:") || !validName(a.Key) {
		return "", false
	}
	return a.Key, true
}

// validName reports whether s is usable as an attribute name without a
// namespace declaration. Only the predeclared xml prefix is accepted.
func validName(s string) bool {
	s = strings.TrimPrefix(s, "xml:")
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && (r == '-' || r == '.' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}

func escape(s string) string {
	return html.EscapeString(xmlChars(s))
}

// xmlChars drops the characters that may not appear in an XML 1.0 document.
func xmlChars(s string) string {
	if strings.IndexFunc(s, notXMLChar) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if notXMLChar(r) {
			return -1
		}
		return r
	}, s)
}

func notXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20:
		return true
	case r >= 0xD800 && r <= 0xDFFF, r == 0xFFFE, r == 0xFFFF:
		return true
	}
	return r > 0x10FFFF
}
