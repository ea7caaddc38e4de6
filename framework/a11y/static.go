package a11y

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/redhat/browser-e2e-tests/test/framework/concurrent"
)

// StaticEngine names results produced by StaticAuditor
const StaticEngine = "static"

type rule struct {
	id          string
	impact      string
	tags        []string
	description string
	help        string
	check       func(doc *goquery.Document) []*goquery.Selection
}

var staticRules = []rule{
	{
		id:          "image-alt",
		impact:      "critical",
		tags:        []string{"wcag2a", "wcag111"},
		description: "Ensures <img> elements have alternate text or a role of none or presentation",
		help:        "Images must have alternate text",
		check:       missingImageAlt,
	},
	{
		id:          "html-has-lang",
		impact:      "serious",
		tags:        []string{"wcag2a", "wcag311"},
		description: "Ensures every HTML document has a lang attribute",
		help:        "<html> element must have a lang attribute",
		check:       missingLang,
	},
	{
		id:          "document-title",
		impact:      "serious",
		tags:        []string{"wcag2a", "wcag242"},
		description: "Ensures each HTML document contains a non-empty <title> element",
		help:        "Documents must have <title> element to aid in navigation",
		check:       missingTitle,
	},
	{
		id:          "link-name",
		impact:      "serious",
		tags:        []string{"wcag2a", "wcag244", "wcag412"},
		description: "Ensures links have discernible text",
		help:        "Links must have discernible text",
		check:       unnamedLinks,
	},
	{
		id:          "button-name",
		impact:      "critical",
		tags:        []string{"wcag2a", "wcag412"},
		description: "Ensures buttons have discernible text",
		help:        "Buttons must have discernible text",
		check:       unnamedButtons,
	},
	{
		id:          "label",
		impact:      "critical",
		tags:        []string{"wcag2a", "wcag412"},
		description: "Ensures every form element has a label",
		help:        "Form elements must have labels",
		check:       unlabelledControls,
	},
	{
		id:          "duplicate-id",
		impact:      "minor",
		tags:        []string{"wcag2a", "wcag411"},
		description: "Ensures every id attribute value is unique",
		help:        "id attribute value must be unique",
		check:       duplicateIDs,
	},
	{
		id:          "empty-heading",
		impact:      "minor",
		tags:        []string{"best-practice"},
		description: "Ensures headings have discernible text",
		help:        "Headings should not be empty",
		check:       emptyHeadings,
	},
}

// RuleIDs lists the rules StaticAuditor knows
func RuleIDs() []string {
	ids := make([]string, len(staticRules))
	for i, r := range staticRules {
		ids[i] = r.id
	}
	return ids
}

// StaticAuditor checks the page source without running scripts in the
// browser. Content inside iframes is never inspected.
type StaticAuditor struct{}

// Audit implements Auditor
func (StaticAuditor) Audit(ctx context.Context, page Page, cfg RuleConfig) (*Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	url, err := page.CurrentURL()
	if err != nil {
		return nil, fmt.Errorf("current url: %w", err)
	}
	source, err := page.PageSource()
	if err != nil {
		return nil, fmt.Errorf("page source: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse page source: %w", err)
	}
	doc.Find("iframe").Remove()

	var enabled []rule
	for _, r := range staticRules {
		if cfg.Enabled(r.id) {
			enabled = append(enabled, r)
		}
	}

	// goquery selections are read-only from here on
	outcomes, err := concurrent.Map(enabled, func(r rule) (Violation, error) {
		return r.run(doc), nil
	})
	if err != nil {
		return nil, err
	}

	results := &Results{
		URL:        url,
		TestEngine: Engine{Name: StaticEngine, Version: "1"},
		Violations: []Violation{},
	}
	for _, v := range outcomes {
		if len(v.Nodes) > 0 {
			results.Violations = append(results.Violations, v)
		} else {
			results.Passes = append(results.Passes, v)
		}
	}
	return results, nil
}

func (r rule) run(doc *goquery.Document) Violation {
	v := Violation{
		ID:          r.id,
		Impact:      r.impact,
		Tags:        r.tags,
		Description: r.description,
		Help:        r.help,
		HelpURL:     "https://dequeuniversity.com/rules/axe/4.8/" + r.id,
		Nodes:       []Node{},
	}
	for _, sel := range r.check(doc) {
		html, _ := goquery.OuterHtml(sel)
		v.Nodes = append(v.Nodes, Node{
			HTML:           html,
			Target:         []string{selector(sel)},
			Impact:         r.impact,
			FailureSummary: "Fix any of the following:\n  " + r.help,
		})
	}
	return v
}

func selector(sel *goquery.Selection) string {
	if id, ok := sel.Attr("id"); ok && id != "" {
		return "#" + id
	}
	s := goquery.NodeName(sel)
	if class, ok := sel.Attr("class"); ok {
		for _, c := range strings.Fields(class) {
			s += "." + c
		}
	}
	return s
}

func hasAttrValue(sel *goquery.Selection, names ...string) bool {
	for _, name := range names {
		if v, ok := sel.Attr(name); ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func hasAccessibleName(sel *goquery.Selection) bool {
	if hasAttrValue(sel, "aria-label", "aria-labelledby", "title") {
		return true
	}
	if strings.TrimSpace(sel.Text()) != "" {
		return true
	}
	named := false
	sel.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		named = hasAttrValue(img, "alt")
		return !named
	})
	return named
}

func collect(doc *goquery.Document, selector string, bad func(*goquery.Selection) bool) []*goquery.Selection {
	var out []*goquery.Selection
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if bad(s) {
			out = append(out, s)
		}
	})
	return out
}

func missingImageAlt(doc *goquery.Document) []*goquery.Selection {
	return collect(doc, "img", func(s *goquery.Selection) bool {
		if _, ok := s.Attr("alt"); ok {
			return false
		}
		role, _ := s.Attr("role")
		if role == "presentation" || role == "none" {
			return false
		}
		return !hasAttrValue(s, "aria-label", "aria-labelledby", "title")
	})
}

func missingLang(doc *goquery.Document) []*goquery.Selection {
	return collect(doc, "html", func(s *goquery.Selection) bool {
		return !hasAttrValue(s, "lang", "xml:lang")
	})
}

func missingTitle(doc *goquery.Document) []*goquery.Selection {
	if strings.TrimSpace(doc.Find("head title").First().Text()) != "" {
		return nil
	}
	return []*goquery.Selection{doc.Find("html").First()}
}

func unnamedLinks(doc *goquery.Document) []*goquery.Selection {
	return collect(doc, "a[href]", func(s *goquery.Selection) bool {
		return !hasAccessibleName(s)
	})
}

func unnamedButtons(doc *goquery.Document) []*goquery.Selection {
	buttons := collect(doc, "button, [role=button]", func(s *goquery.Selection) bool {
		return !hasAccessibleName(s)
	})
	inputs := collect(doc, `input[type="button"]`, func(s *goquery.Selection) bool {
		return !hasAttrValue(s, "value", "aria-label", "aria-labelledby", "title")
	})
	return append(buttons, inputs...)
}

var unlabelledTypes = map[string]bool{
	"hidden": true, "submit": true, "reset": true, "button": true, "image": true,
}

func unlabelledControls(doc *goquery.Document) []*goquery.Selection {
	labelled := map[string]bool{}
	doc.Find("label[for]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("for")
		labelled[id] = true
	})

	return collect(doc, "input, select, textarea", func(s *goquery.Selection) bool {
		if goquery.NodeName(s) == "input" {
			typ, _ := s.Attr("type")
			if unlabelledTypes[strings.ToLower(typ)] {
				return false
			}
		}
		if id, ok := s.Attr("id"); ok && labelled[id] {
			return false
		}
		if s.ParentsFiltered("label").Length() > 0 {
			return false
		}
		return !hasAttrValue(s, "aria-label", "aria-labelledby", "title")
	})
}

func duplicateIDs(doc *goquery.Document) []*goquery.Selection {
	seen := map[string]bool{}
	return collect(doc, "[id]", func(s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		if id == "" {
			return false
		}
		if seen[id] {
			return true
		}
		seen[id] = true
		return false
	})
}

func emptyHeadings(doc *goquery.Document) []*goquery.Selection {
	return collect(doc, "h1, h2, h3, h4, h5, h6, [role=heading]", func(s *goquery.Selection) bool {
		return !hasAccessibleName(s)
	})
}
