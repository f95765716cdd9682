// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

// Package htmlutils provides utility functions for inspecting HTML documents.
package htmlutils

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// ErrCharsetMismatch is returned when a text node holds U+FFFD.
var ErrCharsetMismatch = errors.New("charset mismatch")

// Node2string appends the visible text below n to sb, one space between text
// nodes. Script and style bodies are skipped.
func Node2string(n *html.Node, sb *strings.Builder) (err error) {
	switch {
	case n.Type == html.TextNode:
		tmp := strings.Join(strings.Fields(n.Data), " ")

		// a REPLACEMENT CHARACTER means an accented name went through
		// the wrong encoding somewhere
		if strings.ContainsRune(tmp, utf8.RuneError) {
			return fmt.Errorf("%w: `%s'", ErrCharsetMismatch, tmp)
		}

		if len(tmp) > 0 {
			if sb.Len() != 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(tmp)
		}
	case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if err = Node2string(child, sb); err != nil {
				break
			}
		}
	}

	return err
}

// AsNode parses an io.Reader as an HTML node.
func AsNode(r io.Reader) (*html.Node, error) {
	n, err := html.Parse(r)
	if nil != err {
		return nil, fmt.Errorf("parsing body as HTML: %w", err)
	}

	return n, nil
}

// Find returns every element below n, n included, accepted by match, in
// document order.
func Find(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var ret []*html.Node

	if n.Type == html.ElementNode && match(n) {
		ret = append(ret, n)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		ret = append(ret, Find(c, match)...)
	}

	return ret
}

// ByID matches elements with the given id attribute.
func ByID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool { return Attr(n, "id") == id }
}

// ByTag matches elements by tag name.
func ByTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return strings.EqualFold(n.Data, tag) }
}

// ByClass matches elements carrying class among their classes.
func ByClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(Attr(n, "class")) {
			if c == class {
				return true
			}
		}

		return false
	}
}

// Attr returns the value of the key attribute of n, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

// Scripts concatenates the bodies of every inline script below n.
func Scripts(n *html.Node) string {
	var sb strings.Builder

	for _, s := range Find(n, ByTag("script")) {
		for c := s.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
	}

	return sb.String()
}
