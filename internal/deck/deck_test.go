package deck

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

func placeholderSp(id int, name, phType string, idx int, withBox bool) string {
	ph := "<p:ph"
	if phType != "" {
		ph += fmt.Sprintf(` type="%s"`, phType)
	}
	if idx > 0 {
		ph += fmt.Sprintf(` idx="%d"`, idx)
	}
	ph += "/>"

	spPr := "<p:spPr/>"
	if withBox {
		spPr = `<p:spPr><a:xfrm><a:off x="914400" y="914400"/><a:ext cx="4572000" cy="3429000"/></a:xfrm></p:spPr>`
	}

	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr>%s</p:nvPr></p:nvSpPr>%s<p:txBody><a:bodyPr/><a:p><a:r><a:rPr lang="zh-CN"/><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`,
		id, name, ph, spPr, name)
}

func slideXML(body string) string {
	return xmlDecl + `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		body + `</p:spTree></p:cSld></p:sld>`
}

func layoutXML(name, body string) string {
	return xmlDecl + `<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld name="` + name + `"><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		body + `</p:spTree></p:cSld></p:sldLayout>`
}

func relsXML(rels ...[2]string) string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i, rel := range rels {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="%s"/>`, i+1, rel[0], rel[1])
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func summaryTableXML(rows, cols int) string {
	var b strings.Builder
	b.WriteString(`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="5" name="Table"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr><p:xfrm><a:off x="0" y="0"/><a:ext cx="1" cy="1"/></p:xfrm><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblGrid>`)
	for i := 0; i < cols; i++ {
		b.WriteString(`<a:gridCol w="3048000"/>`)
	}
	b.WriteString(`</a:tblGrid>`)
	for r := 0; r < rows; r++ {
		b.WriteString(`<a:tr h="370840">`)
		for c := 0; c < cols; c++ {
			b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:p/></a:txBody><a:tcPr/></a:tc>`)
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	return b.String()
}

// buildTestTemplate assembles a minimal in-memory template with the two
// seed slides and the eleven layouts the default schema expects.
func buildTestTemplate(t *testing.T) string {
	t.Helper()
	pkg := &Package{parts: make(map[string][]byte)}

	layoutBodies := make([]string, 11)
	for i := range layoutBodies {
		layoutBodies[i] = placeholderSp(2, "Title", "title", 0, true)
	}
	// Content layout: title, body and a picture placeholder.
	layoutBodies[9] = placeholderSp(2, "Title", "title", 0, true) +
		placeholderSp(3, "Body", "body", 10, true) +
		placeholderSp(4, "Chart", "pic", 13, true)
	// Image-only layout.
	layoutBodies[10] = placeholderSp(2, "Title", "title", 0, true) +
		placeholderSp(3, "Chart", "pic", 13, true)
	// Contact layout: free text plus a subset of the office boxes.
	layoutBodies[2] = placeholderSp(2, "Title", "title", 0, true) +
		placeholderSp(3, "Text", "body", 15, true) +
		placeholderSp(4, "HK", "body", 10, true) +
		placeholderSp(5, "SG", "body", 17, true) +
		placeholderSp(6, "SH", "body", 18, true)
	// Disclaimer layouts.
	layoutBodies[3] = placeholderSp(2, "Title", "title", 0, true) + placeholderSp(3, "Body", "body", 12, true)
	layoutBodies[4] = placeholderSp(2, "Title", "title", 0, true) + placeholderSp(3, "Body", "body", 12, true)

	var ctOverrides, masterRels, layoutIDs strings.Builder
	for i := range layoutBodies {
		part := fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1)
		pkg.SetPart(part, []byte(layoutXML(fmt.Sprintf("layout %d", i), layoutBodies[i])))
		pkg.SetPart(relsPartName(part), []byte(relsXML([2]string{relTypeSlideMaster, "../slideMasters/slideMaster1.xml"})))
		fmt.Fprintf(&ctOverrides, `<Override PartName="/%s" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`, part)
		fmt.Fprintf(&masterRels, `<Relationship Id="rId%d" Type="%s" Target="../slideLayouts/slideLayout%d.xml"/>`, i+1, relTypeSlideLayout, i+1)
		fmt.Fprintf(&layoutIDs, `<p:sldLayoutId id="%d" r:id="rId%d"/>`, 2147483649+i, i+1)
	}

	master := xmlDecl + `<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld><p:sldLayoutIdLst>` +
		layoutIDs.String() + `</p:sldLayoutIdLst></p:sldMaster>`
	pkg.SetPart("ppt/slideMasters/slideMaster1.xml", []byte(master))
	pkg.SetPart("ppt/slideMasters/_rels/slideMaster1.xml.rels",
		[]byte(xmlDecl+`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+masterRels.String()+`</Relationships>`))

	// Cover: three positional shapes for date, author and title.
	cover := slideXML(placeholderSp(2, "Date", "", 0, true) +
		placeholderSp(3, "Author", "body", 1, true) +
		placeholderSp(4, "DeckTitle", "body", 2, true))
	pkg.SetPart("ppt/slides/slide1.xml", []byte(cover))
	pkg.SetPart("ppt/slides/_rels/slide1.xml.rels", []byte(relsXML([2]string{relTypeSlideLayout, "../slideLayouts/slideLayout1.xml"})))

	// Summary: a title shape and an 8x3 table.
	summary := slideXML(placeholderSp(2, "SummaryTitle", "title", 0, true) + summaryTableXML(8, 3))
	pkg.SetPart("ppt/slides/slide2.xml", []byte(summary))
	pkg.SetPart("ppt/slides/_rels/slide2.xml.rels", []byte(relsXML([2]string{relTypeSlideLayout, "../slideLayouts/slideLayout1.xml"})))

	pres := xmlDecl + `<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst><p:sldIdLst><p:sldId id="256" r:id="rId2"/><p:sldId id="257" r:id="rId3"/></p:sldIdLst></p:presentation>`
	pkg.SetPart("ppt/presentation.xml", []byte(pres))
	pkg.SetPart("ppt/_rels/presentation.xml.rels", []byte(relsXML(
		[2]string{relTypeSlideMaster, "slideMasters/slideMaster1.xml"},
		[2]string{relTypeSlide, "slides/slide1.xml"},
		[2]string{relTypeSlide, "slides/slide2.xml"},
	)))

	pkg.SetPart("[Content_Types].xml", []byte(xmlDecl+
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`+
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`+
		`<Default Extension="xml" ContentType="application/xml"/>`+
		`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`+
		`<Override PartName="/ppt/slides/slide1.xml" ContentType="`+slideContentType+`"/>`+
		`<Override PartName="/ppt/slides/slide2.xml" ContentType="`+slideContentType+`"/>`+
		`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`+
		ctOverrides.String()+`</Types>`))

	path := filepath.Join(t.TempDir(), "template.pptx")
	if err := pkg.Save(path); err != nil {
		t.Fatalf("save test template: %v", err)
	}
	return path
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 80, B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeImage(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), pngBytes(t, w, h), 0o644); err != nil {
		t.Fatal(err)
	}
}

func deckTestLogger() *logrus.Entry {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(log)
}
