package analysis

import (
	"testing"

	"georisk/internal/domain/risk"
	"georisk/internal/service/textproc"
)

func newTestFilter(t *testing.T) *Filter {
	t.Helper()
	n, err := textproc.NewDefaultNormalizer()
	if err != nil {
		t.Fatalf("load normalizer: %v", err)
	}
	return NewFilter(n, []string{"giveaway", "win now", "buy now", "subscribe"})
}

func TestFilterDedupFirstWins(t *testing.T) {
	f := newTestFilter(t)

	items := []risk.RawItem{
		{Source: risk.SourceNews, Text: "Flooding reported in Shimla today", Engagement: 5},
		{Source: risk.SourceNews, Text: "Flooding reported in Shimla today", Engagement: 90},
	}
	got := f.Apply(items, "Shimla, Himachal Pradesh")
	if len(got) != 1 {
		t.Fatalf("expected 1 item after dedup, got %d", len(got))
	}
	if got[0].Engagement != 5 {
		t.Errorf("dedup must keep the first occurrence, got engagement %d", got[0].Engagement)
	}
}

func TestFilterDropsShortItems(t *testing.T) {
	f := newTestFilter(t)

	items := []risk.RawItem{
		{Source: risk.SourceNews, Text: "Shimla floods"},
		{Source: risk.SourceNews, Text: "  "},
		{Source: risk.SourceNews, Text: "Shimla floods again today"},
	}
	got := f.Apply(items, "Shimla, Himachal Pradesh")
	if len(got) != 1 {
		t.Fatalf("expected only the three-word item, got %d", len(got))
	}
	if got[0].OriginalText != "Shimla floods again today" {
		t.Errorf("wrong survivor: %q", got[0].OriginalText)
	}
}

func TestFilterDropsSpam(t *testing.T) {
	f := newTestFilter(t)

	items := []risk.RawItem{
		{Source: risk.SourceNews, Text: "Huge GIVEAWAY for Shimla residents this week"},
		{Source: risk.SourceNews, Text: "Subscribe for Shimla weather updates daily"},
		{Source: risk.SourceNews, Text: "Heavy rain warning for Shimla district"},
	}
	got := f.Apply(items, "Shimla, Himachal Pradesh")
	if len(got) != 1 {
		t.Fatalf("expected spam filtered out, got %d items", len(got))
	}
	if got[0].OriginalText != "Heavy rain warning for Shimla district" {
		t.Errorf("wrong survivor: %q", got[0].OriginalText)
	}
}

func TestFilterLocationMatch(t *testing.T) {
	f := newTestFilter(t)

	items := []risk.RawItem{
		{Source: risk.SourceSocial, Text: "roads are terrible in shimla right now"},
		{Source: risk.SourceForum, Text: "anyone driving through himachal pradesh this weekend"},
		{Source: risk.SourceSocial, Text: "roads are terrible everywhere right now"},
	}
	got := f.Apply(items, "Shimla, Himachal Pradesh")
	if len(got) != 2 {
		t.Fatalf("expected city and state matches to survive, got %d", len(got))
	}
}

func TestFilterNewsExemptFromLocationMatch(t *testing.T) {
	f := newTestFilter(t)

	items := []risk.RawItem{
		{Source: risk.SourceNews, Text: "Landslide blocks highway after heavy rain"},
		{Source: risk.SourceSocial, Text: "Landslide blocks highway after heavy rain"},
	}
	got := f.Apply(items, "Shimla, Himachal Pradesh")
	if len(got) != 1 {
		t.Fatalf("expected only the news item, got %d", len(got))
	}
	if got[0].Source != risk.SourceNews {
		t.Errorf("survivor should be the news item, got %s", got[0].Source)
	}
}

func TestFilterDropsEmptyAfterNormalization(t *testing.T) {
	f := newTestFilter(t)

	// Three words, mentions the city, but every token is a stopword or
	// the city mention is inside a URL that normalization strips.
	items := []risk.RawItem{
		{Source: risk.SourceSocial, Text: "it is... the http://shimla.example.com"},
	}
	got := f.Apply(items, "Shimla, Himachal Pradesh")
	if len(got) != 0 {
		t.Fatalf("expected empty normalized text to be dropped, got %d", len(got))
	}
}

func TestFilterAttachesNormalizedText(t *testing.T) {
	f := newTestFilter(t)

	items := []risk.RawItem{
		{Source: risk.SourceNews, Text: "Heavy FLOODING near Shimla!! http://t.co/x"},
	}
	got := f.Apply(items, "Shimla, Himachal Pradesh")
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].OriginalText != "Heavy FLOODING near Shimla!! http://t.co/x" {
		t.Errorf("original text not preserved: %q", got[0].OriginalText)
	}
	if got[0].Text != "heavy flooding near shimla" {
		t.Errorf("normalized text: %q", got[0].Text)
	}
}
