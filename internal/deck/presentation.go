package deck

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// OOXML relationship types.
const (
	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

const slideContentType = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"

// Presentation wraps a package with the slide bookkeeping: the ordered slide
// list from ppt/presentation.xml and the layout list of the first master.
type Presentation struct {
	pkg *Package

	presDoc *etree.Document
	relsDoc *etree.Document

	slideParts  []string
	layoutParts []string
	layoutNames []string
}

// OpenPresentation loads a .pptx template.
func OpenPresentation(templatePath string) (*Presentation, error) {
	pkg, err := OpenPackage(templatePath)
	if err != nil {
		return nil, err
	}
	return newPresentation(pkg)
}

func newPresentation(pkg *Package) (*Presentation, error) {
	presDoc, err := pkg.XML("ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	relsDoc, err := pkg.XML("ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	p := &Presentation{pkg: pkg, presDoc: presDoc, relsDoc: relsDoc}
	if err := p.loadSlides(); err != nil {
		return nil, err
	}
	if err := p.loadLayouts(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Presentation) loadSlides() error {
	rels := relTargets(p.relsDoc, "ppt")

	p.slideParts = nil
	lst := p.presDoc.Root().SelectElement("sldIdLst")
	if lst == nil {
		return fmt.Errorf("presentation.xml has no slide list")
	}
	for _, sldID := range lst.SelectElements("sldId") {
		rid := sldID.SelectAttrValue("r:id", "")
		part, ok := rels[rid]
		if !ok {
			return fmt.Errorf("slide relationship %s not found", rid)
		}
		p.slideParts = append(p.slideParts, part)
	}
	return nil
}

// loadLayouts resolves the layout list of the first master, in the master's
// declared order.
func (p *Presentation) loadLayouts() error {
	rels := relTargets(p.relsDoc, "ppt")

	masterLst := p.presDoc.Root().SelectElement("sldMasterIdLst")
	if masterLst == nil {
		return fmt.Errorf("presentation.xml has no master list")
	}
	masterID := masterLst.SelectElement("sldMasterId")
	if masterID == nil {
		return fmt.Errorf("presentation.xml declares no master")
	}
	masterPart, ok := rels[masterID.SelectAttrValue("r:id", "")]
	if !ok {
		return fmt.Errorf("master relationship not found")
	}

	masterDoc, err := p.pkg.XML(masterPart)
	if err != nil {
		return err
	}
	masterRelsDoc, err := p.pkg.XML(relsPartName(masterPart))
	if err != nil {
		return err
	}
	masterRels := relTargets(masterRelsDoc, path.Dir(masterPart))

	layoutLst := masterDoc.Root().SelectElement("sldLayoutIdLst")
	if layoutLst == nil {
		return fmt.Errorf("master %s has no layout list", masterPart)
	}

	p.layoutParts = nil
	p.layoutNames = nil
	for _, layoutID := range layoutLst.SelectElements("sldLayoutId") {
		part, ok := masterRels[layoutID.SelectAttrValue("r:id", "")]
		if !ok {
			return fmt.Errorf("layout relationship missing in master %s", masterPart)
		}
		p.layoutParts = append(p.layoutParts, part)
		p.layoutNames = append(p.layoutNames, layoutName(p.pkg, part))
	}
	return nil
}

func layoutName(pkg *Package, part string) string {
	doc, err := pkg.XML(part)
	if err != nil {
		return ""
	}
	if cSld := doc.Root().SelectElement("cSld"); cSld != nil {
		return cSld.SelectAttrValue("name", "")
	}
	return ""
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	return len(p.slideParts)
}

// LayoutNames returns the first master's layout names in order.
func (p *Presentation) LayoutNames() []string {
	return p.layoutNames
}

// Slide opens the i-th slide.
func (p *Presentation) Slide(i int) (*Slide, error) {
	if i < 0 || i >= len(p.slideParts) {
		return nil, fmt.Errorf("slide %d out of range (have %d)", i, len(p.slideParts))
	}
	return p.openSlide(p.slideParts[i])
}

// AddSlideFromLayout appends a slide built from the layout at the given
// index. The new slide starts with clones of the layout's placeholder
// shapes, so placeholder idx lookups behave as they do on seed slides.
func (p *Presentation) AddSlideFromLayout(layoutIndex int) (*Slide, error) {
	if layoutIndex < 0 || layoutIndex >= len(p.layoutParts) {
		return nil, fmt.Errorf("layout %d out of range (have %d)", layoutIndex, len(p.layoutParts))
	}
	layoutPart := p.layoutParts[layoutIndex]

	layoutDoc, err := p.pkg.XML(layoutPart)
	if err != nil {
		return nil, err
	}

	n := p.pkg.nextPartIndex("ppt/slides/slide", ".xml")
	slidePart := fmt.Sprintf("ppt/slides/slide%d.xml", n)

	slideDoc := buildSlideFromLayout(layoutDoc)
	data, err := slideDoc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize new slide: %w", err)
	}
	p.pkg.SetPart(slidePart, data)

	// Slide rels: only the layout to begin with.
	slideRels := newRelsDoc()
	addRel(slideRels, "rId1", relTypeSlideLayout, relativeTarget(slidePart, layoutPart))
	if err := p.pkg.SetXML(relsPartName(slidePart), slideRels); err != nil {
		return nil, err
	}

	if err := p.addContentTypeOverride("/"+slidePart, slideContentType); err != nil {
		return nil, err
	}

	// Register in the presentation slide list.
	rid := p.nextRelID()
	addRel(p.relsDoc, rid, relTypeSlide, relativeTarget("ppt/presentation.xml", slidePart))
	if err := p.pkg.SetXML("ppt/_rels/presentation.xml.rels", p.relsDoc); err != nil {
		return nil, err
	}

	lst := p.presDoc.Root().SelectElement("sldIdLst")
	sldID := lst.CreateElement("p:sldId")
	sldID.CreateAttr("id", strconv.Itoa(p.nextSlideID()))
	sldID.CreateAttr("r:id", rid)
	if err := p.pkg.SetXML("ppt/presentation.xml", p.presDoc); err != nil {
		return nil, err
	}

	p.slideParts = append(p.slideParts, slidePart)
	return p.openSlide(slidePart)
}

// RemoveSlidesFrom drops every slide at index from and beyond, removing
// their parts, relationships and content-type overrides.
func (p *Presentation) RemoveSlidesFrom(from int) error {
	if from < 0 || from >= len(p.slideParts) {
		return nil
	}
	doomed := p.slideParts[from:]
	p.slideParts = p.slideParts[:from]

	lst := p.presDoc.Root().SelectElement("sldIdLst")
	rels := relTargets(p.relsDoc, "ppt")

	for _, part := range doomed {
		for _, sldID := range lst.SelectElements("sldId") {
			if rels[sldID.SelectAttrValue("r:id", "")] == part {
				removeRel(p.relsDoc, sldID.SelectAttrValue("r:id", ""))
				lst.RemoveChild(sldID)
				break
			}
		}
		p.pkg.RemovePart(part)
		p.pkg.RemovePart(relsPartName(part))
		if err := p.removeContentTypeOverride("/" + part); err != nil {
			return err
		}
	}

	if err := p.pkg.SetXML("ppt/presentation.xml", p.presDoc); err != nil {
		return err
	}
	return p.pkg.SetXML("ppt/_rels/presentation.xml.rels", p.relsDoc)
}

// SaveAs writes the deck to path.
func (p *Presentation) SaveAs(path string) error {
	return p.pkg.Save(path)
}

func (p *Presentation) nextRelID() string {
	max := 0
	for _, rel := range p.relsDoc.Root().SelectElements("Relationship") {
		id := rel.SelectAttrValue("Id", "")
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("rId%d", max+1)
}

func (p *Presentation) nextSlideID() int {
	max := 255
	lst := p.presDoc.Root().SelectElement("sldIdLst")
	for _, sldID := range lst.SelectElements("sldId") {
		if n, err := strconv.Atoi(sldID.SelectAttrValue("id", "")); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

func (p *Presentation) addContentTypeOverride(partName, contentType string) error {
	doc, err := p.pkg.XML("[Content_Types].xml")
	if err != nil {
		return err
	}
	root := doc.Root()
	for _, o := range root.SelectElements("Override") {
		if o.SelectAttrValue("PartName", "") == partName {
			return nil
		}
	}
	o := root.CreateElement("Override")
	o.CreateAttr("PartName", partName)
	o.CreateAttr("ContentType", contentType)
	return p.pkg.SetXML("[Content_Types].xml", doc)
}

func (p *Presentation) removeContentTypeOverride(partName string) error {
	doc, err := p.pkg.XML("[Content_Types].xml")
	if err != nil {
		return err
	}
	root := doc.Root()
	for _, o := range root.SelectElements("Override") {
		if o.SelectAttrValue("PartName", "") == partName {
			root.RemoveChild(o)
			break
		}
	}
	return p.pkg.SetXML("[Content_Types].xml", doc)
}

// ensureImageContentType registers a Default content type for an image
// extension if the template does not carry one yet.
func (p *Presentation) ensureImageContentType(ext, contentType string) error {
	doc, err := p.pkg.XML("[Content_Types].xml")
	if err != nil {
		return err
	}
	root := doc.Root()
	for _, d := range root.SelectElements("Default") {
		if strings.EqualFold(d.SelectAttrValue("Extension", ""), ext) {
			return nil
		}
	}
	d := root.CreateElement("Default")
	d.CreateAttr("Extension", ext)
	d.CreateAttr("ContentType", contentType)
	return p.pkg.SetXML("[Content_Types].xml", doc)
}

// buildSlideFromLayout creates a fresh slide document seeded with the
// layout's placeholder shapes.
func buildSlideFromLayout(layoutDoc *etree.Document) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	sld := doc.CreateElement("p:sld")
	sld.CreateAttr("xmlns:a", "http://schemas.openxmlformats.org/drawingml/2006/main")
	sld.CreateAttr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")
	sld.CreateAttr("xmlns:p", "http://schemas.openxmlformats.org/presentationml/2006/main")

	cSld := sld.CreateElement("p:cSld")
	spTree := cSld.CreateElement("p:spTree")

	nvGrpSpPr := spTree.CreateElement("p:nvGrpSpPr")
	cNvPr := nvGrpSpPr.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", "1")
	cNvPr.CreateAttr("name", "")
	nvGrpSpPr.CreateElement("p:cNvGrpSpPr")
	nvGrpSpPr.CreateElement("p:nvPr")
	grpSpPr := spTree.CreateElement("p:grpSpPr")
	xfrm := grpSpPr.CreateElement("a:xfrm")
	for _, tag := range []string{"a:off", "a:ext", "a:chOff", "a:chExt"} {
		el := xfrm.CreateElement(tag)
		if tag == "a:off" || tag == "a:chOff" {
			el.CreateAttr("x", "0")
			el.CreateAttr("y", "0")
		} else {
			el.CreateAttr("cx", "0")
			el.CreateAttr("cy", "0")
		}
	}

	// Clone the layout's placeholder shapes so the new slide carries the
	// same idx slots and geometry.
	nextID := 2
	if layoutTree := findSpTree(layoutDoc); layoutTree != nil {
		for _, sp := range layoutTree.SelectElements("sp") {
			if placeholderElement(sp) == nil {
				continue
			}
			clone := sp.Copy()
			if nv := clone.SelectElement("nvSpPr"); nv != nil {
				if pr := nv.SelectElement("cNvPr"); pr != nil {
					pr.CreateAttr("id", strconv.Itoa(nextID))
					nextID++
				}
			}
			spTree.AddChild(clone)
		}
	}

	sld.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")

	return doc
}

func findSpTree(doc *etree.Document) *etree.Element {
	root := doc.Root()
	if root == nil {
		return nil
	}
	cSld := root.SelectElement("cSld")
	if cSld == nil {
		return nil
	}
	return cSld.SelectElement("spTree")
}

// placeholderElement returns the a:ph element of a shape, or nil when the
// shape is not a placeholder.
func placeholderElement(sp *etree.Element) *etree.Element {
	nv := sp.SelectElement("nvSpPr")
	if nv == nil {
		return nil
	}
	nvPr := nv.SelectElement("nvPr")
	if nvPr == nil {
		return nil
	}
	return nvPr.SelectElement("ph")
}

// relsPartName maps a part to its relationships part.
func relsPartName(part string) string {
	return path.Dir(part) + "/_rels/" + path.Base(part) + ".rels"
}

// relTargets maps relationship IDs to absolute part names, resolving
// targets relative to baseDir.
func relTargets(relsDoc *etree.Document, baseDir string) map[string]string {
	out := make(map[string]string)
	root := relsDoc.Root()
	if root == nil {
		return out
	}
	for _, rel := range root.SelectElements("Relationship") {
		id := rel.SelectAttrValue("Id", "")
		target := rel.SelectAttrValue("Target", "")
		out[id] = resolveTarget(baseDir, target)
	}
	return out
}

func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// relativeTarget expresses part as a target relative to from's directory.
func relativeTarget(from, part string) string {
	up := ""
	for d := path.Dir(from); d != "." && d != "/"; d = path.Dir(d) {
		if rest := strings.TrimPrefix(part, d+"/"); rest != part {
			return up + rest
		}
		up += "../"
	}
	return up + part
}

func newRelsDoc() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
	return doc
}

func addRel(relsDoc *etree.Document, id, relType, target string) {
	rel := relsDoc.Root().CreateElement("Relationship")
	rel.CreateAttr("Id", id)
	rel.CreateAttr("Type", relType)
	rel.CreateAttr("Target", target)
}

func removeRel(relsDoc *etree.Document, id string) {
	root := relsDoc.Root()
	for _, rel := range root.SelectElements("Relationship") {
		if rel.SelectAttrValue("Id", "") == id {
			root.RemoveChild(rel)
			return
		}
	}
}
