// Package deck assembles the outlook presentation by editing a .pptx
// template in place: the file is a zip of OOXML parts, and every change is
// an XML edit to one of those parts.
package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// Package is the part store of one .pptx file. Parts are addressed by their
// zip path without a leading slash, e.g. "ppt/presentation.xml".
type Package struct {
	parts map[string][]byte
	order []string
}

// OpenPackage reads a .pptx file into memory.
func OpenPackage(path string) (*Package, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", path, err)
	}
	defer func() { _ = r.Close() }()

	p := &Package{parts: make(map[string][]byte)}
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		p.setPart(f.Name, data)
	}
	return p, nil
}

// Part returns a part's bytes, or nil when absent.
func (p *Package) Part(name string) []byte {
	return p.parts[name]
}

// HasPart reports whether the package contains the part.
func (p *Package) HasPart(name string) bool {
	_, ok := p.parts[name]
	return ok
}

func (p *Package) setPart(name string, data []byte) {
	if _, exists := p.parts[name]; !exists {
		p.order = append(p.order, name)
	}
	p.parts[name] = data
}

// SetPart stores or replaces a part.
func (p *Package) SetPart(name string, data []byte) {
	p.setPart(name, data)
}

// RemovePart drops a part if present.
func (p *Package) RemovePart(name string) {
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// PartNames returns all part names in original order.
func (p *Package) PartNames() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

// XML parses a part as an XML document.
func (p *Package) XML(name string) (*etree.Document, error) {
	data, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not in package", name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse part %s: %w", name, err)
	}
	return doc, nil
}

// SetXML serializes a document back into a part.
func (p *Package) SetXML(name string, doc *etree.Document) error {
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serialize part %s: %w", name, err)
	}
	p.setPart(name, data)
	return nil
}

// Save writes the package to path, replacing any existing file first so a
// stale deck never survives a failed write under the final name.
func (p *Package) Save(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove existing deck: %w", err)
		}
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range p.order {
		f, err := w.Create(name)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", name, err)
		}
		if _, err := f.Write(p.parts[name]); err != nil {
			return fmt.Errorf("write zip entry %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish zip: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	return nil
}

// nextPartIndex scans existing parts matching prefix+N+suffix and returns
// the first free N, starting at 1.
func (p *Package) nextPartIndex(prefix, suffix string) int {
	used := make(map[int]bool)
	for name := range p.parts {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		mid := strings.TrimSuffix(strings.TrimPrefix(name, prefix), suffix)
		var n int
		if _, err := fmt.Sscanf(mid, "%d", &n); err == nil && fmt.Sprintf("%d", n) == mid {
			used[n] = true
		}
	}
	keys := make([]int, 0, len(used))
	for k := range used {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	n := 1
	for _, k := range keys {
		if k == n {
			n++
		}
	}
	return n
}
