package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ServiceCategory identifies one of the consulting service lines a campaign
// can be scouted for.
type ServiceCategory string

const (
	CategoryAppDev      ServiceCategory = "Application Development"
	CategoryAIData      ServiceCategory = "AI & Data Analytics"
	CategoryCloudDevOps ServiceCategory = "Cloud & DevOps"
	CategoryTransform   ServiceCategory = "Digital Transformation"
)

// Categories lists all valid service categories in display order.
func Categories() []ServiceCategory {
	return []ServiceCategory{
		CategoryAppDev,
		CategoryAIData,
		CategoryCloudDevOps,
		CategoryTransform,
	}
}

// ParseServiceCategory validates a raw category string. Matching is
// case-insensitive on the canonical names; anything else is rejected.
func ParseServiceCategory(raw string) (ServiceCategory, error) {
	trimmed := strings.TrimSpace(raw)
	for _, c := range Categories() {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}
	return "", eris.Errorf("model: unknown service category %q", raw)
}

func (c ServiceCategory) String() string {
	return string(c)
}
