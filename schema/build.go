package schema

// Builders for the common schema shapes tools and phase responses need.
// They produce plain maps so the result can go straight into a tool
// definition or through Compile.
//
// Example:
//
//	schema.Object(map[string]*schema.Property{
//	    "query": schema.String("Search query"),
//	    "limit": schema.Integer("Max results").Min(1).Max(100),
//	}, "query")

// Object creates an object schema from properties; names listed in required
// are marked required.
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}
	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

// Property is a single property under construction.
type Property struct {
	fields map[string]any
}

func newProperty(typ, description string) *Property {
	p := &Property{fields: map[string]any{"type": typ}}
	if description != "" {
		p.fields["description"] = description
	}
	return p
}

func (p *Property) build() map[string]any {
	return p.fields
}

// String creates a string property.
func String(description string) *Property {
	return newProperty("string", description)
}

// Integer creates an integer property.
func Integer(description string) *Property {
	return newProperty("integer", description)
}

// Number creates a floating-point property.
func Number(description string) *Property {
	return newProperty("number", description)
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return newProperty("boolean", description)
}

// Array creates an array property with the given item property.
func Array(description string, items *Property) *Property {
	p := newProperty("array", description)
	if items != nil {
		p.fields["items"] = items.build()
	}
	return p
}

// Enum restricts the property to the given values.
func (p *Property) Enum(values ...any) *Property {
	p.fields["enum"] = values
	return p
}

// Min sets the minimum for number/integer properties.
func (p *Property) Min(v float64) *Property {
	p.fields["minimum"] = v
	return p
}

// Max sets the maximum for number/integer properties.
func (p *Property) Max(v float64) *Property {
	p.fields["maximum"] = v
	return p
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(n int) *Property {
	p.fields["minLength"] = n
	return p
}

// MaxLength sets the maximum length for string properties.
func (p *Property) MaxLength(n int) *Property {
	p.fields["maxLength"] = n
	return p
}

// Pattern sets a regex pattern for string properties.
func (p *Property) Pattern(pattern string) *Property {
	p.fields["pattern"] = pattern
	return p
}

// Format sets a format hint such as "email" or "date-time".
func (p *Property) Format(format string) *Property {
	p.fields["format"] = format
	return p
}

// Default records the property's default value.
func (p *Property) Default(value any) *Property {
	p.fields["default"] = value
	return p
}
