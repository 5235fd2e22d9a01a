package category

import "strings"

// Name identifies a leave category, e.g. VACATION.
type Name string

const (
	Vacation  Name = "VACATION"
	Emergency Name = "EMERGENCY"
)

var builtinDescriptions = map[Name]string{
	Vacation:  "Planned time off",
	Emergency: "Unplanned absence for urgent personal matters",
}

// DefaultNames is the catalog used when configuration lists no categories.
func DefaultNames() []string {
	return []string{string(Vacation), string(Emergency)}
}

type Category struct {
	Name        Name   `json:"name"`
	Description string `json:"description"`
}

// Normalize maps user input onto the canonical upper-case form.
func Normalize(s string) Name {
	return Name(strings.ToUpper(strings.TrimSpace(s)))
}

func NewCategory(name string) *Category {
	n := Normalize(name)
	return &Category{
		Name:        n,
		Description: builtinDescriptions[n],
	}
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		Name:        string(c.Name),
		Description: c.Description,
	}
}
