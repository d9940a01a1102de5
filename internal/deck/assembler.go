package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cioinsight/deckgen/internal/assets"
	"github.com/cioinsight/deckgen/internal/model"
)

// emuPerPoint converts point offsets into EMU geometry.
const emuPerPoint = 12700

// Assembler renders a synthesized report into a finished deck by editing a
// presentation template.
type Assembler struct {
	schema  TemplateSchema
	rules   Rules
	matcher *assets.Matcher
	log     *logrus.Entry
}

// NewAssembler builds an assembler for one deck language.
func NewAssembler(schema TemplateSchema, rules Rules, log *logrus.Entry) *Assembler {
	return &Assembler{
		schema:  schema,
		rules:   rules,
		matcher: assets.NewMatcher(),
		log:     log,
	}
}

// Run assembles the deck and writes it to outputPath. Any panic during
// assembly is logged with its stack and surfaced as a generation failure;
// a partially written deck is never reported as success.
func (a *Assembler) Run(report *model.Report, templatePath, outputPath, location, imagesDir string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithField("panic", r).Error(string(debug.Stack()))
			err = fmt.Errorf("deck generation failed: %v", r)
		}
	}()

	pres, err := OpenPresentation(templatePath)
	if err != nil {
		return err
	}
	if err := a.schema.Validate(pres); err != nil {
		return fmt.Errorf("template %s: %w", templatePath, err)
	}

	if err := a.coverSlide(pres, report); err != nil {
		return err
	}
	if err := a.summarySlide(pres, report); err != nil {
		return err
	}
	if err := a.contentSlides(pres, report, imagesDir); err != nil {
		return err
	}
	for _, topic := range a.rules.PictureTopics {
		if err := a.pictureSlide(pres, topic, imagesDir); err != nil {
			return err
		}
	}
	if err := a.contactSlide(pres); err != nil {
		return err
	}
	if err := a.disclaimerSlides(pres, location); err != nil {
		return err
	}

	if err := pres.SaveAs(outputPath); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"path":     outputPath,
		"language": a.rules.Language,
		"slides":   pres.SlideCount(),
	}).Info("deck written")
	return nil
}

func (a *Assembler) coverSlide(pres *Presentation, report *model.Report) error {
	slide, err := pres.Slide(a.schema.CoverSlide)
	if err != nil {
		return err
	}
	shapes := slide.Shapes()
	if len(shapes) < 3 {
		return fmt.Errorf("cover slide has %d shapes, need date, author and title", len(shapes))
	}

	// The cover always carries the generation date, not the report's.
	SetText(shapes[0], time.Now().Format("2006-01-02"), TextFormat{})
	SetText(shapes[1], report.Document.Author, TextFormat{
		Font: "Microsoft YaHei", Size: a.rules.SubtitleSize, Color: colorDarkBlue,
	})
	SetText(shapes[2], report.Document.Title, TextFormat{
		Font: "Microsoft YaHei", Size: a.rules.CoverSize, Bold: true, Color: colorDarkBlue,
	})
	return slide.Sync()
}

func (a *Assembler) summarySlide(pres *Presentation, report *model.Report) error {
	slide, err := pres.Slide(a.schema.SummarySlide)
	if err != nil {
		return err
	}

	tbl := slide.Table()
	if tbl == nil {
		return fmt.Errorf("summary slide has no table")
	}
	if TableColumnCount(tbl) < 3 {
		return fmt.Errorf("summary table has %d columns, need a label column plus two data columns", TableColumnCount(tbl))
	}

	rows := TableRows(tbl)
	summary := report.ExecutiveSummary

	// The first column belongs to the template; headers and data land in
	// the second column onward. Columns past the table's width are dropped
	// with a warning, like overflow rows.
	cols := TableColumnCount(tbl)
	if len(summary.Columns)+1 > cols {
		a.log.WithFields(logrus.Fields{"columns": len(summary.Columns), "capacity": cols - 1}).
			Warn("summary columns beyond table capacity dropped")
	}
	for colIdx, colName := range summary.Columns {
		if colIdx+1 >= cols {
			break
		}
		if err := SetCellText(rows[0], colIdx+1, colName, TextFormat{
			Size: 12, Bold: true, Color: colorBlack, Center: true,
		}); err != nil {
			return err
		}
	}

	for rowIdx, rowData := range summary.Rows {
		if rowIdx+1 >= len(rows) {
			a.log.WithFields(logrus.Fields{"rows": len(summary.Rows), "capacity": len(rows) - 1}).
				Warn("summary rows beyond table capacity dropped")
			break
		}
		for colIdx, colName := range summary.Columns {
			if colIdx+1 >= cols {
				break
			}
			text := rowData[colName]
			if err := SetCellText(rows[rowIdx+1], colIdx+1, text, TextFormat{
				Size:   summaryCellSize(colIdx, text),
				Color:  colorBlack,
				Center: colIdx == 0,
			}); err != nil {
				return err
			}
		}
	}

	if shapes := slide.Shapes(); len(shapes) > 0 {
		FormatFirstRun(shapes[0], a.titleFormat())
	}
	return slide.Sync()
}

// summaryCellSize downshifts the rationale column when its text would
// overflow the cell.
func summaryCellSize(colIdx int, text string) float64 {
	if colIdx == 1 && len([]rune(text)) > 200 {
		return 9
	}
	return 10
}

func (a *Assembler) contentSlides(pres *Presentation, report *model.Report, imagesDir string) error {
	// Reuse the template's pre-built content slides by position, drop the
	// stale remainder, then append fresh slides for any overflow.
	reuse := len(report.ContentSlides)
	if reuse > a.schema.ReusableContentSlides {
		reuse = a.schema.ReusableContentSlides
	}
	if avail := pres.SlideCount() - a.schema.SummarySlide - 1; reuse > avail {
		reuse = avail
	}
	if err := pres.RemoveSlidesFrom(a.schema.SummarySlide + 1 + reuse); err != nil {
		return err
	}

	for i, content := range report.ContentSlides {
		var slide *Slide
		var err error
		if i < reuse {
			slide, err = pres.Slide(a.schema.SummarySlide + 1 + i)
		} else {
			slide, err = pres.AddSlideFromLayout(a.schema.ContentLayout)
		}
		if err != nil {
			return err
		}

		if title := slide.Placeholder(a.schema.ContentTitleIdx); title != nil {
			SetText(title, content.Title, a.titleFormat())
		}
		if body := slide.Placeholder(a.schema.ContentBodyIdx); body != nil {
			SetLines(body, content.Bullets, TextFormat{Font: a.rules.BodyFont, Size: a.bodySize(content.Bullets)})
		}

		if imgPath := a.matcher.FindImage(content.Title, imagesDir); imgPath != "" {
			if err := a.placeImage(slide, imgPath); err != nil {
				a.log.WithError(err).WithField("image", imgPath).Warn("image insertion failed")
			} else {
				a.annotate(slide, imgPath)
			}
		} else {
			a.log.WithField("title", content.Title).Debug("no matching image")
		}

		a.removePicturePlaceholders(slide)
		if err := slide.Sync(); err != nil {
			return err
		}
	}
	return nil
}

// bodySize picks the two-tier body font: dense slides drop to the smaller
// size.
func (a *Assembler) bodySize(bullets []string) float64 {
	total := 0
	for _, b := range bullets {
		total += len([]rune(b)) + 1
	}
	if len(bullets) > 3 || total > 200 {
		return a.rules.BodySizeSmall
	}
	return a.rules.BodySizeLarge
}

func (a *Assembler) pictureSlide(pres *Presentation, topic, imagesDir string) error {
	slide, err := pres.AddSlideFromLayout(a.schema.ImageOnlyLayout)
	if err != nil {
		return err
	}
	if title := slide.Placeholder(0); title != nil {
		SetText(title, topic, TextFormat{})
	}

	imgPath := a.matcher.FindImage(topic, imagesDir)
	if imgPath != "" {
		if err := a.placeImage(slide, imgPath); err != nil {
			a.log.WithError(err).WithField("image", imgPath).Warn("image insertion failed")
			imgPath = ""
		}
	} else {
		a.log.WithField("topic", topic).Debug("no matching image")
	}
	if topic == a.rules.CaptionTopic && imgPath != "" {
		a.annotate(slide, imgPath)
	}

	a.removePicturePlaceholders(slide)
	return slide.Sync()
}

// placeImage fits the image into the slide's first picture placeholder,
// centered and aspect-preserving.
func (a *Assembler) placeImage(slide *Slide, imgPath string) error {
	phs := slide.PicturePlaceholders()
	if len(phs) == 0 {
		return fmt.Errorf("slide has no picture placeholder")
	}
	box, ok := slide.ShapeBox(phs[0])
	if !ok {
		return fmt.Errorf("picture placeholder has no geometry")
	}

	data, err := os.ReadFile(imgPath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	target := box
	if w, h, err := imageSize(data); err == nil {
		target = FitInto(w, h, box)
	} else {
		// Formats the decoder does not know are stretched to the
		// placeholder rather than dropped.
		a.log.WithError(err).WithField("image", imgPath).Warn("image dimensions unreadable")
	}
	return slide.AddPicture(imgPath, data, target)
}

func (a *Assembler) removePicturePlaceholders(slide *Slide) {
	for _, ph := range slide.PicturePlaceholders() {
		slide.RemoveShape(ph)
	}
}

// annotate adds the chart-title and data-source textboxes decoded from the
// image's filename, stem shape {category}_{title}[_{source}].
func (a *Assembler) annotate(slide *Slide, imgPath string) {
	stem := strings.TrimSuffix(filepath.Base(imgPath), filepath.Ext(imgPath))
	parts := strings.Split(stem, "_")

	if len(parts) >= 2 && parts[1] != "" && parts[1] != "NONE" {
		title := parts[1]
		box := a.schema.TitleBox
		box.Left -= titleOffsetPt(title) * emuPerPoint
		slide.AddTextbox(box, []string{title}, TextFormat{
			Font: "华文细黑", Size: 12, Bold: true, Color: colorBlack,
		})
	}

	source, offset := sourceCaption(parts, stem)
	if source != "" {
		box := a.schema.SourceBox
		box.Left -= offset * emuPerPoint
		slide.AddTextbox(box, []string{a.rules.CaptionPrefix + source}, TextFormat{
			Font: "Microsoft YaHei", Size: 9, Color: colorGray,
		})
	}
}

// titleOffsetPt nudges long chart titles left so they stay over the image.
func titleOffsetPt(title string) int64 {
	switch n := len([]rune(title)); {
	case n > 20:
		return 202
	case n > 12:
		return 40
	default:
		return 0
	}
}

// sourceCaption derives the caption text and its leftward offset in points
// from the filename parts.
func sourceCaption(parts []string, stem string) (string, int64) {
	var text string
	var offset int64
	if len(parts) >= 2 {
		text = strings.ReplaceAll(parts[len(parts)-1], "，", " ")
		text = strings.Join(strings.Fields(text), " ")
		if len([]rune(text)) > 13 {
			offset = 40
		} else {
			offset = 20
		}
	} else {
		text = stem
		offset = -15
	}
	return strings.Trim(text, "_ "), offset
}

func (a *Assembler) contactSlide(pres *Presentation) error {
	slide, err := pres.AddSlideFromLayout(a.schema.ContactLayout)
	if err != nil {
		return err
	}
	if title := slide.Placeholder(0); title != nil {
		SetText(title, a.rules.ContactTitle, TextFormat{})
	}

	if box := slide.Placeholder(a.schema.ContactTextIdx); box != nil {
		SetParagraphs(box, []Paragraph{
			{Text: contactWebsite, Format: TextFormat{Underline: true}},
			{Text: contactNote},
		})
	}

	for _, idx := range a.schema.ContactAddressIdxs {
		text, ok := a.rules.Addresses[idx]
		if !ok {
			continue
		}
		ph := slide.Placeholder(idx)
		if ph == nil {
			// Some templates drop office boxes; that is not an error.
			continue
		}
		lines := strings.Split(text, "\n")
		paras := make([]Paragraph, len(lines))
		for i, line := range lines {
			paras[i] = Paragraph{Text: line, Format: TextFormat{Size: 8, Bold: i == 0}}
		}
		SetParagraphs(ph, paras)
	}
	return slide.Sync()
}

// disclaimerSlides appends one slide per disclaimer language with text for
// the location. The Chinese disclaimer is always in Chinese and the English
// one in English, whatever language the deck itself renders in.
func (a *Assembler) disclaimerSlides(pres *Presentation, location string) error {
	cn := ChineseRules()
	if bullets, ok := DisclaimerBullets(location, "cn"); ok {
		if err := a.disclaimerSlide(pres, a.schema.DisclaimerCNLayout, cn.DisclaimerTitle, bullets, TextFormat{
			Font: cn.DisclaimerFont, Size: cn.DisclaimerSize,
		}); err != nil {
			return err
		}
	}

	en := EnglishRules()
	bullets, ok := DisclaimerBullets(location, "en")
	if !ok {
		a.log.WithField("location", location).Info("no English disclaimer for location")
		return nil
	}
	return a.disclaimerSlide(pres, a.schema.DisclaimerENLayout, en.DisclaimerTitle, bullets, TextFormat{
		Font: en.DisclaimerFont, Size: en.DisclaimerSize,
	})
}

func (a *Assembler) disclaimerSlide(pres *Presentation, layout int, title string, bullets []string, bodyFormat TextFormat) error {
	slide, err := pres.AddSlideFromLayout(layout)
	if err != nil {
		return err
	}
	if t := slide.Placeholder(a.schema.DisclaimerTitleIdx); t != nil {
		SetText(t, title, a.titleFormat())
	}
	if body := slide.Placeholder(a.schema.DisclaimerBodyIdx); body != nil {
		SetLines(body, bullets, bodyFormat)
	}
	return slide.Sync()
}

func (a *Assembler) titleFormat() TextFormat {
	return TextFormat{Font: a.rules.TitleFont, Size: a.rules.TitleSize, Bold: true, Color: colorDarkBlue}
}
