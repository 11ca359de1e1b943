package css

// PropertyID identifies a style property.
type PropertyID uint16

// Property identifiers. Everything before PropertyAnimationTimingFunction can be
// animated; the rest are carried in style maps but never interpolated.
const (
	PropertyNone PropertyID = iota
	PropertyLeft
	PropertyRight
	PropertyTop
	PropertyBottom
	PropertyWidth
	PropertyHeight
	PropertyMinWidth
	PropertyMaxWidth
	PropertyMinHeight
	PropertyMaxHeight
	PropertyMarginLeft
	PropertyMarginRight
	PropertyMarginTop
	PropertyMarginBottom
	PropertyPaddingLeft
	PropertyPaddingRight
	PropertyPaddingTop
	PropertyPaddingBottom
	PropertyBorderLeftWidth
	PropertyBorderRightWidth
	PropertyBorderTopWidth
	PropertyBorderBottomWidth
	PropertyFlexBasis
	PropertyOpacity
	PropertyBackgroundColor
	PropertyColor
	PropertyBorderLeftColor
	PropertyBorderRightColor
	PropertyBorderTopColor
	PropertyBorderBottomColor
	PropertyFlexGrow
	PropertyFilter
	PropertyTransform

	PropertyAnimationTimingFunction
	PropertyDisplay
	PropertyVisibility
	PropertyZIndex

	// Transition shorthands, expanded by Longhands.
	PropertyAll
	PropertyMargin
	PropertyPadding
	PropertyBorderWidth
	PropertyBorderColor

	propertyCount
)

var propertyNames = [propertyCount]string{
	PropertyNone:                    "none",
	PropertyLeft:                    "left",
	PropertyRight:                   "right",
	PropertyTop:                     "top",
	PropertyBottom:                  "bottom",
	PropertyWidth:                   "width",
	PropertyHeight:                  "height",
	PropertyMinWidth:                "min-width",
	PropertyMaxWidth:                "max-width",
	PropertyMinHeight:               "min-height",
	PropertyMaxHeight:               "max-height",
	PropertyMarginLeft:              "margin-left",
	PropertyMarginRight:             "margin-right",
	PropertyMarginTop:               "margin-top",
	PropertyMarginBottom:            "margin-bottom",
	PropertyPaddingLeft:             "padding-left",
	PropertyPaddingRight:            "padding-right",
	PropertyPaddingTop:              "padding-top",
	PropertyPaddingBottom:           "padding-bottom",
	PropertyBorderLeftWidth:         "border-left-width",
	PropertyBorderRightWidth:        "border-right-width",
	PropertyBorderTopWidth:          "border-top-width",
	PropertyBorderBottomWidth:       "border-bottom-width",
	PropertyFlexBasis:               "flex-basis",
	PropertyOpacity:                 "opacity",
	PropertyBackgroundColor:         "background-color",
	PropertyColor:                   "color",
	PropertyBorderLeftColor:         "border-left-color",
	PropertyBorderRightColor:        "border-right-color",
	PropertyBorderTopColor:          "border-top-color",
	PropertyBorderBottomColor:       "border-bottom-color",
	PropertyFlexGrow:                "flex-grow",
	PropertyFilter:                  "filter",
	PropertyTransform:               "transform",
	PropertyAnimationTimingFunction: "animation-timing-function",
	PropertyDisplay:                 "display",
	PropertyVisibility:              "visibility",
	PropertyZIndex:                  "z-index",
	PropertyAll:                     "all",
	PropertyMargin:                  "margin",
	PropertyPadding:                 "padding",
	PropertyBorderWidth:             "border-width",
	PropertyBorderColor:             "border-color",
}

var propertyByName map[string]PropertyID

func init() {
	propertyByName = make(map[string]PropertyID, propertyCount)
	for id, name := range propertyNames {
		if name != "" {
			propertyByName[name] = PropertyID(id)
		}
	}
}

func (id PropertyID) String() string {
	if id < propertyCount && propertyNames[id] != "" {
		return propertyNames[id]
	}
	return "unknown"
}

// ParseProperty looks up a property by its CSS name.
func ParseProperty(name string) (PropertyID, bool) {
	id, ok := propertyByName[name]
	return id, ok
}

// Family groups properties that interpolate the same way.
type Family uint8

const (
	FamilyNone Family = iota
	FamilyLayout
	FamilyOpacity
	FamilyColor
	FamilyFloat
	FamilyFilter
	FamilyTransform
)

func (f Family) String() string {
	switch f {
	case FamilyLayout:
		return "layout"
	case FamilyOpacity:
		return "opacity"
	case FamilyColor:
		return "color"
	case FamilyFloat:
		return "float"
	case FamilyFilter:
		return "filter"
	case FamilyTransform:
		return "transform"
	}
	return "none"
}

// Family returns the interpolation family, FamilyNone for properties that
// cannot be animated.
func (id PropertyID) Family() Family {
	switch {
	case id >= PropertyLeft && id <= PropertyFlexBasis:
		return FamilyLayout
	case id == PropertyOpacity:
		return FamilyOpacity
	case id >= PropertyBackgroundColor && id <= PropertyBorderBottomColor:
		return FamilyColor
	case id == PropertyFlexGrow:
		return FamilyFloat
	case id == PropertyFilter:
		return FamilyFilter
	case id == PropertyTransform:
		return FamilyTransform
	}
	return FamilyNone
}

// Animatable reports whether keyframes and transitions may drive the property.
func (id PropertyID) Animatable() bool {
	return id.Family() != FamilyNone
}

// IsLayout reports whether a change to the property needs a layout pass.
func (id PropertyID) IsLayout() bool {
	return id.Family() == FamilyLayout
}

// OnXAxis reports whether percentages of the property resolve against the
// containing block's width rather than its height.
func (id PropertyID) OnXAxis() bool {
	switch id {
	case PropertyLeft, PropertyRight, PropertyWidth, PropertyMinWidth, PropertyMaxWidth,
		PropertyMarginLeft, PropertyMarginRight, PropertyPaddingLeft, PropertyPaddingRight,
		PropertyBorderLeftWidth, PropertyBorderRightWidth, PropertyFlexBasis:
		return true
	}
	return false
}

// AnimatableProperties returns every animatable property in id order.
func AnimatableProperties() []PropertyID {
	ids := make([]PropertyID, 0, PropertyTransform)
	for id := PropertyLeft; id <= PropertyTransform; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Longhands expands a transition shorthand. A longhand expands to itself.
func (id PropertyID) Longhands() []PropertyID {
	switch id {
	case PropertyAll:
		return AnimatableProperties()
	case PropertyMargin:
		return []PropertyID{PropertyMarginLeft, PropertyMarginRight, PropertyMarginTop, PropertyMarginBottom}
	case PropertyPadding:
		return []PropertyID{PropertyPaddingLeft, PropertyPaddingRight, PropertyPaddingTop, PropertyPaddingBottom}
	case PropertyBorderWidth:
		return []PropertyID{PropertyBorderLeftWidth, PropertyBorderRightWidth, PropertyBorderTopWidth, PropertyBorderBottomWidth}
	case PropertyBorderColor:
		return []PropertyID{PropertyBorderLeftColor, PropertyBorderRightColor, PropertyBorderTopColor, PropertyBorderBottomColor}
	}
	return []PropertyID{id}
}
