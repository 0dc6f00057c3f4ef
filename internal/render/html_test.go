package render

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// sectionIDs walks the parsed document and collects div ids
func sectionIDs(t *testing.T, page []byte) map[string]bool {
	t.Helper()

	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		t.Fatalf("parse rendered HTML: %v", err)
	}

	ids := make(map[string]bool)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == "id" {
					ids[attr.Val] = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return ids
}

func TestHTML_AlwaysRenderedSections(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, Assemble("elonmusk", sampleResponse())); err != nil {
		t.Fatalf("HTML failed: %v", err)
	}

	ids := sectionIDs(t, buf.Bytes())
	for _, id := range []string{
		"analysis-process",
		"signals-boosted",
		"signals-reduced",
		"feed-composition",
		"quality-metrics",
		"diversity-metrics",
		"temporal-analysis",
		"expected-outcome",
	} {
		if !ids[id] {
			t.Errorf("missing section %q in rendered page", id)
		}
	}
}

func TestHTML_ConditionalSections(t *testing.T) {
	resp := sampleResponse()
	resp.Recommendations.Report.OpposingViewpoints.Included = false
	resp.Recommendations.Report.Explanations = nil

	var buf bytes.Buffer
	if err := HTML(&buf, Assemble("u", resp)); err != nil {
		t.Fatalf("HTML failed: %v", err)
	}

	ids := sectionIDs(t, buf.Bytes())
	if ids["opposing-viewpoints"] {
		t.Error("opposing viewpoints rendered despite included=false")
	}
	if ids["why-these-recommendations"] {
		t.Error("explanations rendered despite empty list")
	}
}

func TestHTML_TierClassesAndOpacity(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, Assemble("elonmusk", sampleResponse())); err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	page := buf.String()

	// score 71 -> favorable class; weight 1.0 -> opacity 1
	if !strings.Contains(page, `tier-favorable`) {
		t.Error("expected favorable tier class in page")
	}
	if !strings.Contains(page, `style="opacity: 1"`) {
		t.Error("expected full opacity badge in page")
	}
	if !strings.Contains(page, `style="opacity: 0.4"`) {
		t.Error("expected minimum opacity badge in page")
	}
}

func TestHTML_EscapesReportText(t *testing.T) {
	resp := sampleResponse()
	resp.Recommendations.Report.AnalysisProcess = `<script>alert("x")</script>`

	var buf bytes.Buffer
	if err := HTML(&buf, Assemble("u", resp)); err != nil {
		t.Fatalf("HTML failed: %v", err)
	}

	if strings.Contains(buf.String(), `<script>alert`) {
		t.Error("report text was not escaped")
	}
}

func TestText_RendersAllSections(t *testing.T) {
	var buf bytes.Buffer
	Text(&buf, Assemble("elonmusk", sampleResponse()))
	out := buf.String()

	for _, want := range []string{
		"@elonmusk",
		"## Analysis process",
		"## Signals boosted",
		"## Signals reduced",
		"## Feed composition",
		"## Quality metrics",
		"## Diversity metrics",
		"## Opposing viewpoints",
		"## Temporal analysis",
		"## Why these recommendations",
		"## Expected outcome",
		"71/100 [favorable]",
		"180 total",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q", want)
		}
	}
}

func TestText_SkipsOpposingWhenAbsent(t *testing.T) {
	resp := sampleResponse()
	resp.Recommendations.Report.OpposingViewpoints.Included = false

	var buf bytes.Buffer
	Text(&buf, Assemble("u", resp))

	if strings.Contains(buf.String(), "Opposing viewpoints") {
		t.Error("opposing section rendered despite included=false")
	}
}
