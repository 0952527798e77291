package subscription

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source supplies the plan catalog. Loaded once at service construction;
// plan changes require a restart.
type Source interface {
	Plans(ctx context.Context) ([]Plan, error)
}

// StaticSource serves a fixed in-memory catalog.
type StaticSource struct {
	plans []Plan
}

func NewStaticSource(plans ...Plan) *StaticSource {
	if len(plans) == 0 {
		plans = DefaultPlans()
	}
	return &StaticSource{plans: plans}
}

func (s *StaticSource) Plans(_ context.Context) ([]Plan, error) {
	return s.plans, nil
}

// YAMLFileSource reads the catalog from a YAML file:
//
//	plans:
//	  - id: pro_monthly
//	    tier: pro
//	    price_id: pri_abc123
//	    limits:
//	      applications: 50
type YAMLFileSource struct {
	path string
}

func NewYAMLFileSource(path string) *YAMLFileSource {
	return &YAMLFileSource{path: path}
}

func (s *YAMLFileSource) Plans(_ context.Context) ([]Plan, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var file struct {
		Plans []Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if len(file.Plans) == 0 {
		return nil, fmt.Errorf("%w: no plans defined in %s", ErrFailedToLoadPlans, s.path)
	}

	return file.Plans, nil
}
