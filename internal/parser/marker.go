package parser

import "github.com/mj1618/a11y-snapshot/internal/model"

// marker builds the output record for the i-th element in traversal order.
func (r *run) marker(i int, el element) model.Marker {
	v := r.idx.view(el.key)
	ctx := r.context(el.key, el.provider)
	description, hint := r.desc.describe(describableView(v), ctx)
	activation, usesDefault := r.activationPoint(el.key)

	return model.Marker{
		Index:                      i,
		Description:                description,
		Hint:                       hint,
		Label:                      v.Label,
		Value:                      v.Value,
		AccessibilityHint:          v.Hint,
		Identifier:                 v.Identifier,
		Traits:                     v.Traits,
		Language:                   v.Language,
		UserInputLabels:            cloneStrings(v.UserInputLabels),
		Shape:                      r.shape(el.key, true),
		ActivationPoint:            activation,
		UsesDefaultActivationPoint: usesDefault,
		CustomActions:              cloneStrings(v.CustomActions),
		CustomContent:              append([]model.CustomContent(nil), v.EffectiveCustomContent()...),
		CustomRotors:               r.rotors(el.key),
		RespondsToUserInteraction:  cloneBool(v.RespondsToUserInteraction),
		Context:                    ctx,
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
