package parser

import (
	"strings"

	"github.com/mj1618/a11y-snapshot/internal/l10n"
	"github.com/mj1618/a11y-snapshot/internal/model"
)

// describable is what the describer reads from an element, whether it is
// a live input node or an already parsed marker.
type describable struct {
	label         string
	value         string
	hint          string
	traits        model.Traits
	language      string
	customContent []model.CustomContent
}

func describableView(v *model.View) describable {
	return describable{
		label:         v.Label,
		value:         v.Value,
		hint:          v.Hint,
		traits:        v.Traits,
		language:      v.Language,
		customContent: v.EffectiveCustomContent(),
	}
}

func describableMarker(m model.Marker) describable {
	return describable{
		label:         m.Label,
		value:         m.Value,
		hint:          m.AccessibilityHint,
		traits:        m.Traits,
		language:      m.Language,
		customContent: m.CustomContent,
	}
}

// describer synthesizes what the screen reader announces for an element.
type describer struct {
	bundle    *l10n.Bundle
	verbosity Verbosity
}

// describe returns the description and hint for e in context ctx. The
// order of the steps below matters: each one appends to or replaces the
// running description.
func (d describer) describe(e describable, ctx *model.Context) (string, string) {
	s := d.bundle.For(e.language)
	t := e.traits
	vb := d.verbosity

	description := e.label
	if t.Contains(model.TraitBackButton) && strings.EqualFold(e.label, s.String("back.descriptor")) {
		description = ""
	}
	hint := e.hint

	containsContext := false
	if ctx != nil && ctx.Kind == model.ContextDataTableCell && vb.IncludesTableContext {
		description = tableCellDescription(s, description, ctx)
		containsContext = true
	}

	if e.value != "" && !t.Contains(model.TraitSwitchButton) && vb.IncludesValue {
		switch {
		case description == "":
			description = e.value
		case containsContext:
			description += " " + e.value
		default:
			description += ": " + e.value
		}
	}

	if vb.IncludesCustomContent {
		for _, c := range e.customContent {
			if !c.Important {
				continue
			}
			content := c.Value
			if content == "" {
				content = c.Label
			}
			if description == "" {
				description = content
			} else {
				description += ", " + content
			}
		}
	}

	if t.Contains(model.TraitSelected) {
		if description == "" {
			description = s.String("trait.selected.description")
		} else {
			description = s.Format("trait.selected.format", description)
		}
	}

	var traits []string
	if vb.traitsShown() {
		traits = traitPhrases(s, e, ctx)
	}

	if description == "" {
		description = hint
		hint = ""
	}

	if len(traits) > 0 {
		joined := strings.Join(traits, " ")
		switch {
		case description == "":
			description = joined
		case vb.TraitPosition == TraitsBefore:
			description = joined + " " + description
		default:
			description = withPeriod(description) + " " + joined
		}
	}

	if ctx != nil && vb.IncludesContainerContext {
		switch ctx.Kind {
		case model.ContextSeries, model.ContextTab, model.ContextTabBarItem:
			description = s.Format("context.series.description_format",
				description, s.Number(ctx.Index), s.Number(ctx.Count))
		case model.ContextListStart:
			description = withPeriod(description) + " " + s.String("context.list_start.description")
		case model.ContextListEnd:
			description = withPeriod(description) + " " + s.String("context.list_end.description")
		case model.ContextLandmarkStart:
			description = withPeriod(description) + " " + s.String("context.landmark_start.description")
		case model.ContextLandmarkEnd:
			description = withPeriod(description) + " " + s.String("context.landmark_end.description")
		}
	}

	if !vb.IncludesHints {
		return description, ""
	}
	return description, usageHint(s, e, hint)
}

// tableCellDescription prefixes the headers of a cell and appends its
// span and position.
func tableCellDescription(s *l10n.Localizer, label string, ctx *model.Context) string {
	var b strings.Builder
	for _, h := range ctx.RowHeaders {
		b.WriteString(h)
	}
	for _, h := range ctx.ColumnHeaders {
		b.WriteString(h)
	}
	b.WriteString(withPeriod(label))

	if ctx.RowSpan > 1 && ctx.Row != model.NotFound {
		b.WriteString(" " + s.Format("context.data_table.row_span_format", s.Number(ctx.RowSpan)))
	}
	if ctx.ColumnSpan > 1 && ctx.Column != model.NotFound {
		b.WriteString(" " + s.Format("context.data_table.column_span_format", s.Number(ctx.ColumnSpan)))
	}
	if ctx.IsFirstInRow && ctx.Row != model.NotFound {
		b.WriteString(" " + s.Format("context.data_table.row_format", s.Number(ctx.Row+1)))
	}
	if ctx.Column != model.NotFound {
		b.WriteString(" " + s.Format("context.data_table.column_format", s.Number(ctx.Column+1)))
	}
	return b.String()
}

// traitPhrases lists the trait specifiers in announcement order.
func traitPhrases(s *l10n.Localizer, e describable, ctx *model.Context) []string {
	t := e.traits
	var out []string

	if t.Contains(model.TraitNotEnabled) {
		out = append(out, s.String("trait.not_enabled.description"))
	}

	hidesButton := t.ContainsAny(model.TraitKeyboardKey|model.TraitSwitchButton|model.TraitTabBarItem|model.TraitBackButton) ||
		ctx.HidesButtonTrait()
	if t.Contains(model.TraitButton) && !hidesButton {
		out = append(out, s.String("trait.button.description"))
	}

	if t.Contains(model.TraitBackButton) {
		out = append(out, s.String("trait.backbutton.description"))
	}

	if t.Contains(model.TraitSwitchButton) {
		if t.Contains(model.TraitButton) {
			out = append(out, s.String("trait.switch_button.description"))
		}
		switch e.value {
		case "1":
			out = append(out, s.String("trait.switch_button.state_on.description"))
		case "0":
			out = append(out, s.String("trait.switch_button.state_off.description"))
		case "2":
			out = append(out, s.String("trait.switch_button.state_mixed.description"))
		}
	}

	if t.Contains(model.TraitTabBarItem) || ctx.ShowsTabTrait() {
		out = append(out, s.String("trait.tab.description"))
	}

	if t.Contains(model.TraitTextEntry) {
		out = append(out, s.String("trait.text_field.description"))
		if t.Contains(model.TraitIsEditing) {
			out = append(out, s.String("trait.text_field_is_editing.description"))
		}
	}

	for _, p := range []struct {
		trait model.Traits
		key   string
	}{
		{model.TraitHeader, "trait.header.description"},
		{model.TraitLink, "trait.link.description"},
		{model.TraitAdjustable, "trait.adjustable.description"},
		{model.TraitImage, "trait.image.description"},
		{model.TraitSearchField, "trait.search_field.description"},
	} {
		if t.Contains(p.trait) {
			out = append(out, s.String(p.key))
		}
	}
	return out
}

// usageHint adds the canned instructions for interactive traits to the
// element's own hint. Disabled elements get none.
func usageHint(s *l10n.Localizer, e describable, hint string) string {
	t := e.traits
	enabled := !t.Contains(model.TraitNotEnabled)

	if t.Contains(model.TraitSwitchButton) && enabled {
		if existing := strings.TrimSuffix(hint, "."); existing != "" {
			hint = s.Format("trait.switch_button.hint_format", existing)
		} else {
			hint = s.String("trait.switch_button.hint")
		}
	}

	if t.Contains(model.TraitTextEntry) && enabled {
		switch {
		case t.Contains(model.TraitIsEditing):
			hint = s.String("trait.text_field_is_editing.hint")
		case t.Contains(model.TraitScrollable):
			hint = s.String("trait.scrollable_text_field.hint")
		default:
			hint = s.String("trait.text_field.hint")
		}
	}

	// An element announcing only its hint would read the hint twice.
	hintOnly := e.hint != "" && e.label == "" && e.value == ""
	if t.Contains(model.TraitAdjustable) && enabled && !t.Contains(model.TraitSwitchButton) && !hintOnly {
		if existing := strings.TrimSuffix(hint, "."); existing != "" {
			hint = s.Format("trait.adjustable.hint_format", existing)
		} else {
			hint = s.String("trait.adjustable.hint")
		}
	}
	return hint
}

// withPeriod terminates s with a period unless it already ends with one.
func withPeriod(s string) string {
	if strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}
