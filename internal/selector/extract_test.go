package selector

import (
	"strings"
	"testing"
)

func TestFirstImageURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"img tag",
			`<p>正文</p><img src="https://cdn.example.com/a.png"><img src="https://cdn.example.com/b.png">`,
			"https://cdn.example.com/a.png",
		},
		{
			"background url fallback",
			`<div style="background: url('https://cdn.example.com/bg.jpg') no-repeat">图</div>`,
			"https://cdn.example.com/bg.jpg",
		},
		{
			"no image",
			`<p>纯文字</p>`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstImageURL(tt.raw); got != tt.want {
				t.Errorf("FirstImageURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChartTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"fullwidth colon", `<p>图表 1 ：美国通胀走势</p>`, "美国通胀走势"},
		{"ascii colon", `<p>图表2: 金价与美元指数</p>`, "金价与美元指数"},
		{"chinese numeral", `<p>图表 三：原油库存（周度)</p>`, "原油库存（周度)"},
		{"dangling bracket removed", `<p>图表 1：电话(香港</p>`, "电话香港"},
		{"absent", `<p>没有图表行</p>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChartTitle(tt.raw); got != tt.want {
				t.Errorf("ChartTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveUnpairedBrackets(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"电话(香港", "电话香港"},
		{"AI(测试)", "AI(测试)"},
		{"全角（配对）", "全角（配对）"},
		{"悬空）右侧", "悬空右侧"},
		{"混合(（嵌套)", "混合（嵌套)"},
		{"无括号", "无括号"},
	}

	for _, tt := range tests {
		if got := RemoveUnpairedBrackets(tt.in); got != tt.want {
			t.Errorf("RemoveUnpairedBrackets(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDataSource(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		raw := `<p>正文。</p><p>资料来源：Bloomberg</p>`
		if got := DataSource(raw); got != "Bloomberg" {
			t.Errorf("DataSource = %q, want Bloomberg", got)
		}
	})

	t.Run("ascii colon and trailing newline", func(t *testing.T) {
		raw := "<p>资料来源: Wind\n更多内容</p>"
		if got := DataSource(raw); got != "Wind" {
			t.Errorf("DataSource = %q, want Wind", got)
		}
	})

	t.Run("overlong candidate rejected", func(t *testing.T) {
		long := strings.Repeat("字", 60)
		raw := `<p>资料来源` + long + `</p>`
		if got := DataSource(raw); got != "" {
			t.Errorf("expected rejection of %d-rune candidate, got %q", 60, got)
		}
	})

	t.Run("later paragraph wins after rejection", func(t *testing.T) {
		long := strings.Repeat("字", 60)
		raw := `<p>资料来源` + long + `</p><p>资料来源：Reuters</p>`
		if got := DataSource(raw); got != "Reuters" {
			t.Errorf("DataSource = %q, want Reuters", got)
		}
	})

	t.Run("absent", func(t *testing.T) {
		if got := DataSource(`<p>没有来源</p>`); got != "" {
			t.Errorf("DataSource = %q, want empty", got)
		}
	})
}
