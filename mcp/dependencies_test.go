package mcp

import (
	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/internal/config"
	"github.com/ludo-technologies/patchsim/service"
)

func NewTestDependencies(svc domain.SimilarityService, cfg *config.Config, path string) *Dependencies {
	if svc == nil {
		svc = service.NewSimilarityService()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dependencies{
		service:    svc,
		reader:     service.NewFileReader(),
		config:     cfg,
		configPath: path,
	}
}
