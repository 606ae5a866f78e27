package prompt

// Schema is a constrained-output descriptor in the shape the Gemini
// generateContent endpoint accepts as responseSchema.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

const (
	TypeObject = "OBJECT"
	TypeArray  = "ARRAY"
	TypeString = "STRING"
	TypeNumber = "NUMBER"
)

// RubricSchema describes the full rubric payload: title, ordered scale
// headers and one descriptor per level for every item.
func RubricSchema() *Schema {
	descriptor := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"level":       {Type: TypeString},
			"description": {Type: TypeString},
			"score":       {Type: TypeString},
		},
		Required: []string{"level", "description", "score"},
	}
	item := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"itemName":    {Type: TypeString},
			"descriptors": {Type: TypeArray, Items: descriptor},
		},
		Required: []string{"itemName", "descriptors"},
	}
	header := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"level": {Type: TypeString},
			"score": {Type: TypeString},
		},
		Required: []string{"level", "score"},
	}
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"title":        {Type: TypeString},
			"scaleHeaders": {Type: TypeArray, Items: header},
			"items":        {Type: TypeArray, Items: item},
		},
		Required: []string{"title", "scaleHeaders", "items"},
	}
}

// SpecificSuggestionSchema describes a flat list of criterion strings.
func SpecificSuggestionSchema() *Schema {
	return &Schema{Type: TypeArray, Items: &Schema{Type: TypeString}}
}

// WeightedSuggestionSchema describes {name, weight} suggestion objects.
func WeightedSuggestionSchema() *Schema {
	return &Schema{
		Type: TypeArray,
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"name":   {Type: TypeString},
				"weight": {Type: TypeNumber},
			},
			Required: []string{"name", "weight"},
		},
	}
}
