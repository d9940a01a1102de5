package deck

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenPresentation(t *testing.T) {
	pres, err := OpenPresentation(buildTestTemplate(t))
	if err != nil {
		t.Fatalf("OpenPresentation: %v", err)
	}
	if got := pres.SlideCount(); got != 2 {
		t.Errorf("slides = %d, want 2", got)
	}
	if got := len(pres.LayoutNames()); got != 11 {
		t.Errorf("layouts = %d, want 11", got)
	}
	if err := DefaultSchema().Validate(pres); err != nil {
		t.Errorf("default schema rejected test template: %v", err)
	}
}

func TestAddSlideFromLayout(t *testing.T) {
	pres, err := OpenPresentation(buildTestTemplate(t))
	if err != nil {
		t.Fatal(err)
	}
	schema := DefaultSchema()

	slide, err := pres.AddSlideFromLayout(schema.ContentLayout)
	if err != nil {
		t.Fatalf("AddSlideFromLayout: %v", err)
	}
	if got := pres.SlideCount(); got != 3 {
		t.Errorf("slides = %d, want 3", got)
	}

	// The new slide inherits the layout's placeholder slots.
	if slide.Placeholder(schema.ContentTitleIdx) == nil {
		t.Error("new slide missing title placeholder")
	}
	if slide.Placeholder(schema.ContentBodyIdx) == nil {
		t.Error("new slide missing body placeholder")
	}
	if len(slide.PicturePlaceholders()) != 1 {
		t.Error("new slide missing picture placeholder")
	}

	// Bookkeeping: content type and slide list entry.
	ct := string(pres.pkg.Part("[Content_Types].xml"))
	if !strings.Contains(ct, "/"+slide.part) {
		t.Error("new slide has no content-type override")
	}
	presXML := string(pres.pkg.Part("ppt/presentation.xml"))
	if !strings.Contains(presXML, `id="258"`) {
		t.Error("new slide not registered in sldIdLst")
	}
}

func TestRemoveSlidesFrom(t *testing.T) {
	pres, err := OpenPresentation(buildTestTemplate(t))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := pres.AddSlideFromLayout(9); err != nil {
			t.Fatal(err)
		}
	}
	if pres.SlideCount() != 5 {
		t.Fatalf("slides = %d", pres.SlideCount())
	}

	doomed := pres.slideParts[3]
	if err := pres.RemoveSlidesFrom(3); err != nil {
		t.Fatalf("RemoveSlidesFrom: %v", err)
	}
	if got := pres.SlideCount(); got != 3 {
		t.Errorf("slides after removal = %d, want 3", got)
	}
	if pres.pkg.HasPart(doomed) {
		t.Error("removed slide part still in package")
	}
	if strings.Contains(string(pres.pkg.Part("[Content_Types].xml")), "/"+doomed) {
		t.Error("removed slide still has content-type override")
	}
}

func TestSaveAndReopen(t *testing.T) {
	pres, err := OpenPresentation(buildTestTemplate(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pres.AddSlideFromLayout(10); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "deck.pptx")
	if err := pres.SaveAs(out); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	reopened, err := OpenPresentation(out)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.SlideCount(); got != 3 {
		t.Errorf("reopened slides = %d, want 3", got)
	}

	// The appended slide must be resolvable through the saved rels, not
	// just counted in sldIdLst.
	slide, err := reopened.Slide(2)
	if err != nil {
		t.Fatalf("appended slide unresolvable after reopen: %v", err)
	}
	if slide.Placeholder(0) == nil {
		t.Error("appended slide lost its title placeholder")
	}

	rels := string(reopened.pkg.Part("ppt/_rels/presentation.xml.rels"))
	if strings.Contains(rels, `Target="ppt/`) {
		t.Errorf("presentation rels carry absolute ppt/ targets:\n%s", rels)
	}
}

func TestRelativeTarget(t *testing.T) {
	tests := []struct {
		from, part, want string
	}{
		{"ppt/presentation.xml", "ppt/slides/slide3.xml", "slides/slide3.xml"},
		{"ppt/slides/slide3.xml", "ppt/slideLayouts/slideLayout10.xml", "../slideLayouts/slideLayout10.xml"},
		{"ppt/slides/slide3.xml", "ppt/media/image1.png", "../media/image1.png"},
		{"ppt/slides/slide3.xml", "ppt/slides/slide4.xml", "slide4.xml"},
	}
	for _, tt := range tests {
		if got := relativeTarget(tt.from, tt.part); got != tt.want {
			t.Errorf("relativeTarget(%s, %s) = %s, want %s", tt.from, tt.part, got, tt.want)
		}
	}
}
