package deck

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Placeholder type value for picture placeholders in OOXML.
const phTypePicture = "pic"

// Slide is one slide part opened for editing. Mutations act on the parsed
// document; Sync writes it back into the package.
type Slide struct {
	pres *Presentation
	part string
	doc  *etree.Document

	layoutDoc *etree.Document
}

func openSlide(pkg *Package, part string) (*Slide, error) {
	doc, err := pkg.XML(part)
	if err != nil {
		return nil, err
	}
	return &Slide{part: part, doc: doc}, nil
}

func (p *Presentation) openSlide(part string) (*Slide, error) {
	s, err := openSlide(p.pkg, part)
	if err != nil {
		return nil, err
	}
	s.pres = p
	return s, nil
}

// Sync serializes the slide back into the package.
func (s *Slide) Sync() error {
	if s.pres == nil {
		return fmt.Errorf("slide %s not attached to a presentation", s.part)
	}
	return s.pres.pkg.SetXML(s.part, s.doc)
}

func (s *Slide) spTree() *etree.Element {
	return findSpTree(s.doc)
}

// Shapes returns the slide's drawable shapes in document order.
func (s *Slide) Shapes() []*etree.Element {
	tree := s.spTree()
	if tree == nil {
		return nil
	}
	var out []*etree.Element
	for _, child := range tree.ChildElements() {
		switch child.Tag {
		case "sp", "pic", "graphicFrame", "grpSp", "cxnSp":
			out = append(out, child)
		}
	}
	return out
}

// Placeholder finds the shape with the given placeholder idx. A ph element
// without an idx attribute is idx 0.
func (s *Slide) Placeholder(idx int) *etree.Element {
	for _, sp := range s.Shapes() {
		if sp.Tag != "sp" {
			continue
		}
		ph := placeholderElement(sp)
		if ph == nil {
			continue
		}
		if phIndex(ph) == idx {
			return sp
		}
	}
	return nil
}

// PicturePlaceholders returns every picture placeholder on the slide.
func (s *Slide) PicturePlaceholders() []*etree.Element {
	var out []*etree.Element
	for _, sp := range s.Shapes() {
		if sp.Tag != "sp" {
			continue
		}
		if ph := placeholderElement(sp); ph != nil && ph.SelectAttrValue("type", "") == phTypePicture {
			out = append(out, sp)
		}
	}
	return out
}

// RemoveShape detaches a shape from the slide.
func (s *Slide) RemoveShape(shape *etree.Element) {
	if tree := s.spTree(); tree != nil {
		tree.RemoveChild(shape)
	}
}

func phIndex(ph *etree.Element) int {
	raw := ph.SelectAttrValue("idx", "")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// ShapeBox returns a shape's rectangle. A placeholder without its own
// geometry inherits it from the matching layout placeholder.
func (s *Slide) ShapeBox(shape *etree.Element) (Box, bool) {
	if box, ok := xfrmBox(shape); ok {
		return box, true
	}
	ph := placeholderElement(shape)
	if ph == nil {
		return Box{}, false
	}
	layout, err := s.layout()
	if err != nil || layout == nil {
		return Box{}, false
	}
	tree := findSpTree(layout)
	if tree == nil {
		return Box{}, false
	}
	idx := phIndex(ph)
	for _, sp := range tree.SelectElements("sp") {
		lph := placeholderElement(sp)
		if lph == nil || phIndex(lph) != idx {
			continue
		}
		return xfrmBox(sp)
	}
	return Box{}, false
}

// layout lazily loads the slide's layout part via its relationships.
func (s *Slide) layout() (*etree.Document, error) {
	if s.layoutDoc != nil {
		return s.layoutDoc, nil
	}
	if s.pres == nil {
		return nil, nil
	}
	relsDoc, err := s.pres.pkg.XML(relsPartName(s.part))
	if err != nil {
		return nil, err
	}
	for _, rel := range relsDoc.Root().SelectElements("Relationship") {
		if rel.SelectAttrValue("Type", "") != relTypeSlideLayout {
			continue
		}
		part := resolveTarget(path.Dir(s.part), rel.SelectAttrValue("Target", ""))
		s.layoutDoc, err = s.pres.pkg.XML(part)
		return s.layoutDoc, err
	}
	return nil, nil
}

func xfrmBox(sp *etree.Element) (Box, bool) {
	spPr := sp.SelectElement("spPr")
	if spPr == nil {
		return Box{}, false
	}
	xfrm := spPr.SelectElement("xfrm")
	if xfrm == nil {
		return Box{}, false
	}
	off := xfrm.SelectElement("off")
	ext := xfrm.SelectElement("ext")
	if off == nil || ext == nil {
		return Box{}, false
	}
	x, _ := strconv.ParseInt(off.SelectAttrValue("x", "0"), 10, 64)
	y, _ := strconv.ParseInt(off.SelectAttrValue("y", "0"), 10, 64)
	cx, _ := strconv.ParseInt(ext.SelectAttrValue("cx", "0"), 10, 64)
	cy, _ := strconv.ParseInt(ext.SelectAttrValue("cy", "0"), 10, 64)
	return Box{Left: x, Top: y, Width: cx, Height: cy}, true
}

// TextFormat describes run-level formatting. Zero values leave the property
// unset so the theme default applies.
type TextFormat struct {
	Font      string
	Size      float64 // points
	Bold      bool
	Underline bool
	Color     string // hex RGB, e.g. "002060"
	Center    bool
}

// Paragraph is one paragraph of replacement text with its run format.
type Paragraph struct {
	Text   string
	Format TextFormat
}

// SetText replaces a shape's text with a single paragraph.
func SetText(shape *etree.Element, text string, f TextFormat) {
	SetLines(shape, []string{text}, f)
}

// SetLines replaces a shape's text with one paragraph per line, keeping the
// shape's body properties and list styles intact.
func SetLines(shape *etree.Element, lines []string, f TextFormat) {
	paras := make([]Paragraph, len(lines))
	for i, line := range lines {
		paras[i] = Paragraph{Text: line, Format: f}
	}
	SetParagraphs(shape, paras)
}

// SetParagraphs replaces a shape's text with individually formatted
// paragraphs.
func SetParagraphs(shape *etree.Element, paras []Paragraph) {
	txBody := shape.SelectElement("txBody")
	if txBody == nil {
		txBody = shape.CreateElement("p:txBody")
		txBody.CreateElement("a:bodyPr")
	}
	for _, para := range txBody.SelectElements("p") {
		txBody.RemoveChild(para)
	}
	for _, para := range paras {
		appendParagraph(txBody, para.Text, para.Format)
	}
}

// FormatFirstRun restyles the first run of a shape's first paragraph without
// touching the text. Shapes whose text came from the template keep their
// wording this way.
func FormatFirstRun(shape *etree.Element, f TextFormat) {
	txBody := shape.SelectElement("txBody")
	if txBody == nil {
		return
	}
	para := txBody.SelectElement("p")
	if para == nil {
		return
	}
	run := para.SelectElement("r")
	if run == nil {
		return
	}
	if old := run.SelectElement("rPr"); old != nil {
		run.RemoveChild(old)
	}
	rPr := run.CreateElement("a:rPr")
	applyRunFormat(rPr, f)
	// rPr must precede the run text.
	run.RemoveChild(rPr)
	run.InsertChildAt(0, rPr)
}

func appendParagraph(txBody *etree.Element, text string, f TextFormat) {
	p := txBody.CreateElement("a:p")
	if f.Center {
		p.CreateElement("a:pPr").CreateAttr("algn", "ctr")
	}
	r := p.CreateElement("a:r")
	applyRunFormat(r.CreateElement("a:rPr"), f)
	r.CreateElement("a:t").SetText(text)
}

func applyRunFormat(rPr *etree.Element, f TextFormat) {
	rPr.CreateAttr("lang", "zh-CN")
	if f.Size > 0 {
		rPr.CreateAttr("sz", strconv.Itoa(int(f.Size*100+0.5)))
	}
	if f.Bold {
		rPr.CreateAttr("b", "1")
	}
	if f.Underline {
		rPr.CreateAttr("u", "sng")
	}
	if f.Color != "" {
		fill := rPr.CreateElement("a:solidFill")
		fill.CreateElement("a:srgbClr").CreateAttr("val", f.Color)
	}
	if f.Font != "" {
		latin := rPr.CreateElement("a:latin")
		latin.CreateAttr("typeface", f.Font)
		ea := rPr.CreateElement("a:ea")
		ea.CreateAttr("typeface", f.Font)
	}
}

// Table returns the slide's first table, or nil.
func (s *Slide) Table() *etree.Element {
	for _, shape := range s.Shapes() {
		if tbl := tableOf(shape); tbl != nil {
			return tbl
		}
	}
	return nil
}

func tableOf(shape *etree.Element) *etree.Element {
	if shape.Tag != "graphicFrame" {
		return nil
	}
	graphic := shape.SelectElement("graphic")
	if graphic == nil {
		return nil
	}
	data := graphic.SelectElement("graphicData")
	if data == nil {
		return nil
	}
	return data.SelectElement("tbl")
}

// TableRows returns the table's rows.
func TableRows(tbl *etree.Element) []*etree.Element {
	return tbl.SelectElements("tr")
}

// TableColumnCount returns the declared column count.
func TableColumnCount(tbl *etree.Element) int {
	grid := tbl.SelectElement("tblGrid")
	if grid == nil {
		return 0
	}
	return len(grid.SelectElements("gridCol"))
}

// SetCellText replaces a table cell's text.
func SetCellText(row *etree.Element, col int, text string, f TextFormat) error {
	cells := row.SelectElements("tc")
	if col >= len(cells) {
		return fmt.Errorf("cell column %d out of range (row has %d)", col, len(cells))
	}
	tc := cells[col]
	txBody := tc.SelectElement("txBody")
	if txBody == nil {
		txBody = tc.CreateElement("a:txBody")
		txBody.CreateElement("a:bodyPr")
	}
	for _, para := range txBody.SelectElements("p") {
		txBody.RemoveChild(para)
	}
	appendParagraph(txBody, text, f)
	return nil
}

// AddTextbox appends a free textbox with the given geometry and text.
func (s *Slide) AddTextbox(box Box, lines []string, f TextFormat) {
	tree := s.spTree()
	if tree == nil {
		return
	}
	sp := tree.CreateElement("p:sp")

	nv := sp.CreateElement("p:nvSpPr")
	cNvPr := nv.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", strconv.Itoa(s.nextShapeID()))
	cNvPr.CreateAttr("name", "TextBox")
	nv.CreateElement("p:cNvSpPr").CreateAttr("txBox", "1")
	nv.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	writeXfrm(spPr, box)
	prst := spPr.CreateElement("a:prstGeom")
	prst.CreateAttr("prst", "rect")
	prst.CreateElement("a:avLst")
	spPr.CreateElement("a:noFill")

	txBody := sp.CreateElement("p:txBody")
	bodyPr := txBody.CreateElement("a:bodyPr")
	bodyPr.CreateAttr("wrap", "square")
	txBody.CreateElement("a:lstStyle")
	for _, line := range lines {
		appendParagraph(txBody, line, f)
	}
}

// AddPicture places an image file on the slide at the given rectangle,
// registering the media part, the relationship and the content type.
func (s *Slide) AddPicture(imagePath string, data []byte, box Box) error {
	if s.pres == nil {
		return fmt.Errorf("slide %s not attached to a presentation", s.part)
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(imagePath), "."))
	contentType, ok := imageContentTypes[ext]
	if !ok {
		return fmt.Errorf("unsupported image type %q", ext)
	}
	if err := s.pres.ensureImageContentType(ext, contentType); err != nil {
		return err
	}

	mediaPart := fmt.Sprintf("ppt/media/image%d.%s", s.pres.pkg.nextMediaIndex(), ext)
	s.pres.pkg.SetPart(mediaPart, data)

	relsName := relsPartName(s.part)
	relsDoc, err := s.pres.pkg.XML(relsName)
	if err != nil {
		return err
	}
	rid := nextRelIDIn(relsDoc)
	addRel(relsDoc, rid, relTypeImage, relativeTarget(s.part, mediaPart))
	if err := s.pres.pkg.SetXML(relsName, relsDoc); err != nil {
		return err
	}

	tree := s.spTree()
	pic := tree.CreateElement("p:pic")

	nv := pic.CreateElement("p:nvPicPr")
	cNvPr := nv.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", strconv.Itoa(s.nextShapeID()))
	cNvPr.CreateAttr("name", path.Base(imagePath))
	nv.CreateElement("p:cNvPicPr").CreateElement("a:picLocks").CreateAttr("noChangeAspect", "1")
	nv.CreateElement("p:nvPr")

	blipFill := pic.CreateElement("p:blipFill")
	blipFill.CreateElement("a:blip").CreateAttr("r:embed", rid)
	blipFill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := pic.CreateElement("p:spPr")
	writeXfrm(spPr, box)
	prst := spPr.CreateElement("a:prstGeom")
	prst.CreateAttr("prst", "rect")
	prst.CreateElement("a:avLst")

	return nil
}

func writeXfrm(spPr *etree.Element, box Box) {
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", strconv.FormatInt(box.Left, 10))
	off.CreateAttr("y", strconv.FormatInt(box.Top, 10))
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", strconv.FormatInt(box.Width, 10))
	ext.CreateAttr("cy", strconv.FormatInt(box.Height, 10))
}

func (s *Slide) nextShapeID() int {
	max := 1
	tree := s.spTree()
	if tree == nil {
		return 2
	}
	for _, el := range tree.FindElements(".//cNvPr") {
		if n, err := strconv.Atoi(el.SelectAttrValue("id", "")); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

func nextRelIDIn(relsDoc *etree.Document) string {
	max := 0
	for _, rel := range relsDoc.Root().SelectElements("Relationship") {
		id := rel.SelectAttrValue("Id", "")
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("rId%d", max+1)
}

var imageContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
}

// nextMediaIndex returns the first free ppt/media/imageN index.
func (p *Package) nextMediaIndex() int {
	used := make(map[int]bool)
	for name := range p.parts {
		if !strings.HasPrefix(name, "ppt/media/image") {
			continue
		}
		base := strings.TrimPrefix(name, "ppt/media/image")
		if dot := strings.IndexByte(base, '.'); dot > 0 {
			if n, err := strconv.Atoi(base[:dot]); err == nil {
				used[n] = true
			}
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return n
}
