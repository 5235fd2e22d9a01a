package category

import (
	"log/slog"
)

// Service is the closed set of categories a leave request may use. The set is
// fixed at construction.
type Service struct {
	ordered []*Category
	byName  map[Name]*Category
	logger  *slog.Logger
}

func NewService(names []string, logger *slog.Logger) *Service {
	if len(names) == 0 {
		names = DefaultNames()
	}

	s := &Service{
		byName: make(map[Name]*Category, len(names)),
		logger: logger,
	}
	for _, name := range names {
		c := NewCategory(name)
		if c.Name == "" {
			continue
		}
		if _, dup := s.byName[c.Name]; dup {
			continue
		}
		s.byName[c.Name] = c
		s.ordered = append(s.ordered, c)
	}

	logger.Debug("category catalog loaded", "count", len(s.ordered))
	return s
}

func (s *Service) GetAllCategories() []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(s.ordered))
	for _, c := range s.ordered {
		responses = append(responses, c.ToResponse())
	}
	return responses
}

// Parse resolves raw input to a catalog entry.
func (s *Service) Parse(raw string) (Name, bool) {
	c, ok := s.byName[Normalize(raw)]
	if !ok {
		return "", false
	}
	return c.Name, true
}

func (s *Service) IsValidCategory(name string) bool {
	_, ok := s.Parse(name)
	return ok
}
