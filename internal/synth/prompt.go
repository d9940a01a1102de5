package synth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cioinsight/deckgen/internal/htmlclean"
	"github.com/cioinsight/deckgen/internal/model"
)

// SystemPromptCN instructs the model to produce the Chinese outlook report.
const SystemPromptCN = `你是一个专业的中文首席投资官助理。你需要阅读提供的金融市场分析文档，并生成一份标准化的投资观点报告。

任务要求：
    1. 生成7种资产的投资观点,资产类别包括中港股市、美股、欧股、日股、债市、黄金、原油这7类，请不要改一个字。如果提供的文档中缺少某种资产，请根据你的知识库合理推断或标记为"暂无数据"。投资逻辑中文字数必须在70字。以下生成的每一个bullet point字数必须在83字左右，三个bullet point总共的字数必须在230字以内,不要解释思考过程，直接给出最终结论。

硬性写作要求：
- 标题格式为“资产类别名称：xxxxx”
- 观点内容不超过三句 bullet point。
- 每一句观点的格式为“小标题：xxxx”。
- 标题需要抓住核心结论，点明关键驱动因素，句子里的因果逻辑之间要有逗号，不一定一句全无停顿。
- 观点内容需有理有据，避免空洞表述。
- 标题字数控制在12-15字以内。


最后，请仅输出一个纯净的 JSON 格式，不要包含Markdown标记（如 ` + "```json" + `）。JSON结构如下：
{
  "document": { "title": "环球市场投资观点", "author":"CIO Office", "date": "..." },
  "executive_summary": {
      "columns": ["资产类别", "投资逻辑"],
      "rows": [ {"资产类别": "...", "投资逻辑": "..."} ]
  },
  "content_slides": [
      { "title": "...", "bullets": ["...", "..."] }
  ]
}
注意：不要进行通过逐步推理,不要解释思考过程，直接给出最终结论。
确保输出的 JSON 结构严格符合要求，避免任何格式错误。
每生成一个bullet point后，请检查字数是否符合要求。
检查content_slides中的每个title的开头需要是资产类别中的，一个字都不能改。`

// SystemPromptEN is the English-report counterpart.
const SystemPromptEN = `You are an English professional assistant to a Chief Investment Officer. Read the provided financial market analysis documents and generate a standardized investment outlook report. You do not need to show your analysis process, just output the final JSON result.

Task Requirements:
1. Generate investment views for 7 asset classes: HK/China Equities, US Equities, European Equities, Japan Equities, Fixed Income, Gold, and Crude Oil. Do not change any Asset classes, keep. If a specific asset class is missing in the documents, infer reasonably from your knowledge base or mark it as "No Data Available". Strictly follow the output format below.Asset Title: Must be maximum 6 words. Format: "Asset Class: [Core View Summary]".For Asset:HK/China Equities,must be 5 words including HK/China Equities. Investment Rationale (Summary Logic): Must be approximately 22 words. This should be a high-level concise summary.AND Each bullet point must be 26 words not explain the thought process; provide the final conclusion directly.

Writing Requirements:
- Title format: "Asset Class Name: [Core View Summary]"
- Content must be maximum 3 bullet points.
- Each bullet point format: "Sub-title: [Detail]".
- Total word count per asset: around 60 words.
- Tone: Professional, concise, financial English.

Finally, output ONLY pure JSON. Do not include Markdown tags (like ` + "```json" + `). JSON structure:
{
  "document": { "title": "Global Investment Outlook", "author":"CIO Office", "date": " " },
  "executive_summary": {
      "columns": ["Asset Class", "Investment Logic"],
      "rows": [ {"Asset Class": "...", "Investment Logic": "..."} ]
  },
  "content_slides": [
      { "title": "...", "bullets": ["...", "..."] }
  ]
}
Note:Do not Chain of Thought , do not explain the thought process; provide the final conclusion directly.
Ensure the output JSON structure strictly adheres to the requirements, avoiding any formatting errors.
After generating each bullet point, check if the character count meets the requirements.
Check that each title in content_slides starts with one of the asset class names, without any alterations.`

// SystemPrompt returns the prompt variant for a report language ("cn" or
// "en").
func SystemPrompt(language string) string {
	if language == "en" {
		return SystemPromptEN
	}
	return SystemPromptCN
}

// BuildContext merges every article record under articlesDir into one prompt
// context. Each record contributes a delimited block of its title and its
// tag-stripped body. Files that cannot be read or parsed are skipped with a
// warning; an empty directory is an error because the model would have
// nothing to work from.
func BuildContext(articlesDir string, log *logrus.Entry) (string, error) {
	entries, err := os.ReadDir(articlesDir)
	if err != nil {
		return "", fmt.Errorf("read articles dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	log.WithField("count", len(names)).Info("merging article records")

	var b strings.Builder
	b.WriteString("以下是各资产类别的原始分析报告内容：\n\n")

	merged := 0
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(articlesDir, name))
		if err != nil {
			log.WithError(err).WithField("file", name).Warn("skipping unreadable record")
			continue
		}
		var art model.Article
		if err := json.Unmarshal(data, &art); err != nil {
			log.WithError(err).WithField("file", name).Warn("skipping unparsable record")
			continue
		}

		title := art.Title(model.LocaleZhCN)
		if title == "" {
			title = "未知标题"
		}
		text := strings.TrimSpace(htmlclean.StripTags(art.Content(model.LocaleZhCN)))

		fmt.Fprintf(&b, "--- 文档开始: %s (标题: %s) ---\n", name, title)
		b.WriteString(text)
		b.WriteString("\n--- 文档结束 ---\n\n")
		merged++
	}

	if merged == 0 {
		return "", fmt.Errorf("no usable article records in %s", articlesDir)
	}
	return b.String(), nil
}

// BuildPrompt joins the system instructions and the article context into the
// single prompt string both transports submit.
func BuildPrompt(language, contextText string) string {
	return SystemPrompt(language) + "\n\n" + contextText
}
