package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCanonicalKey(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		topic string
		want  string
	}{
		{"债市：利率下行逻辑延续", "债券"},
		{"Fixed Income: Yields drifting lower", "债券"},
		{"黄金：避险需求支撑金价", "黄金"},
		{"Gold: Safe-haven bid intact", "黄金"},
		{"原油：库存超预期下降", "原油"},
		{"Crude Oil: Inventory draw", "原油"},
		{"美股：盈利驱动上行", "美股"},
		{"US Equities: Earnings strength", "美股"},
		{"欧股：估值修复", "欧股"},
		{"European Equities: Valuation catch-up", "欧股"},
		{"日股：日元贬值利好出口", "日股"},
		{"Japan Equities: Weak yen tailwind", "日股"},
		{"中港股市：政策预期升温", "中港"},
		{"HK/China Equities: Policy hopes", "中港"},
		{"个债精选", CategoryBondPick},
		{"Bond Picks", CategoryBondPick},
		{"个股精选", CategoryStockPick},
		{"Stock Picks", CategoryStockPick},
		{"资金流", CategoryFundFlow},
		{"Fund Flow", CategoryFundFlow},
		// No rule: fall back to the first two runes.
		{"房地产市场观察", "房地"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			if got := m.CanonicalKey(tt.topic); got != tt.want {
				t.Errorf("CanonicalKey(%q) = %q, want %q", tt.topic, got, tt.want)
			}
		})
	}
}

func touchFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindImage(t *testing.T) {
	dir := t.TempDir()
	touchFiles(t, dir,
		"债券_通胀数据_Bloomberg.jpg",
		"黄金_金价_Reuters.png",
		"notes.txt",
	)

	m := NewMatcher()

	got := m.FindImage("债市：利率下行逻辑延续", dir)
	if filepath.Base(got) != "债券_通胀数据_Bloomberg.jpg" {
		t.Errorf("FindImage matched %q, want the Bloomberg bond chart", got)
	}

	if got := m.FindImage("黄金：金价新高", dir); filepath.Base(got) != "黄金_金价_Reuters.png" {
		t.Errorf("FindImage matched %q, want the gold chart", got)
	}

	if got := m.FindImage("加密货币", dir); got != "" {
		t.Errorf("expected no match, got %q", got)
	}
}

func TestFindImage_DeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	touchFiles(t, dir, "美股_乙图.png", "美股_甲图.jpg")

	m := NewMatcher()
	got := m.FindImage("美股：盈利", dir)

	// Lexical sort decides the winner, not directory order: 乙 (U+4E59)
	// sorts before 甲 (U+7532).
	if filepath.Base(got) != "美股_乙图.png" {
		t.Fatalf("FindImage matched %q, want the lexically first 美股_乙图.png", got)
	}
}

func TestFindImage_MissingDir(t *testing.T) {
	m := NewMatcher()
	if got := m.FindImage("债市", filepath.Join(t.TempDir(), "absent")); got != "" {
		t.Errorf("expected empty result for missing dir, got %q", got)
	}
}

// A filename built by the materializer must be discoverable by the matcher
// keyed on its originating category.
func TestFilenameKeyRoundTrip(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		category string
		title    string
		source   string
	}{
		{"债券", "通胀数据", "Bloomberg"},
		{"黄金", "金价走势", ""},
		{"美股", "", "FactSet"},
		{CategoryStockPick, "", ""},
		{CategoryBondPick, "", ""},
	}

	for _, tt := range tests {
		name := ImageFileName(tt.category, tt.title, tt.source, ".jpg")
		key := m.CanonicalKey(tt.category)
		if !strings.HasPrefix(name, key) {
			t.Errorf("filename %q does not start with key %q for category %q", name, key, tt.category)
		}
	}
}
