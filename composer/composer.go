// Copyright 2025 Mosaic
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package composer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"mosaic/platform/registry"
)

// ErrTemplateMalformed is returned when the template cannot be parsed as
// HTML at all. The caller receives the error, never partial output.
var ErrTemplateMalformed = errors.New("template malformed")

// Transform merges the registry into the template and returns the composed
// page. It is pure: no I/O, inputs are never mutated, and identical inputs
// produce byte-identical output.
//
// Entries are processed in registry order. Each entry's mount selector is
// resolved against the document ("#id", ".class" or a bare tag name); the
// first matching element in document order receives an appended
// <script type="module" src=RemoteURL data-mfe=Name> child. An entry whose
// selector matches nothing in the template is skipped entirely; it neither
// fails the composition nor appends anywhere else.
func Transform(template []byte, reg *registry.Registry) ([]byte, error) {
	if len(bytes.TrimSpace(template)) == 0 {
		return nil, fmt.Errorf("%w: template is empty", ErrTemplateMalformed)
	}
	if !utf8.Valid(template) {
		return nil, fmt.Errorf("%w: template is not valid UTF-8", ErrTemplateMalformed)
	}

	doc, err := html.Parse(bytes.NewReader(template))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateMalformed, err)
	}

	for _, mfe := range reg.MicroFrontends {
		mount := findFirst(doc, mfe.MountSelector)
		if mount == nil {
			continue
		}
		mount.AppendChild(fragmentReference(mfe))
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("%w: render: %v", ErrTemplateMalformed, err)
	}
	return buf.Bytes(), nil
}

// fragmentReference builds the script element that loads one micro-frontend
// bundle at its mount point.
func fragmentReference(mfe registry.MicroFrontend) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Script,
		Data:     "script",
		Attr: []html.Attribute{
			{Key: "type", Val: "module"},
			{Key: "src", Val: mfe.RemoteURL},
			{Key: "data-mfe", Val: mfe.Name},
		},
	}
}

// findFirst returns the first element in document order matching the
// selector, or nil.
func findFirst(n *html.Node, selector string) *html.Node {
	if n.Type == html.ElementNode && matches(n, selector) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := findFirst(c, selector); m != nil {
			return m
		}
	}
	return nil
}

// matches supports the three selector forms the registry uses: "#id",
// ".class" and a bare tag name.
func matches(n *html.Node, selector string) bool {
	switch {
	case strings.HasPrefix(selector, "#"):
		return attrValue(n, "id") == selector[1:]
	case strings.HasPrefix(selector, "."):
		for _, class := range strings.Fields(attrValue(n, "class")) {
			if class == selector[1:] {
				return true
			}
		}
		return false
	default:
		return n.Data == selector
	}
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
