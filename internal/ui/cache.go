package ui

import (
	"inspectgrid/internal/config"
	"inspectgrid/internal/detect"
	"inspectgrid/internal/model"
	"inspectgrid/internal/util/logx"
)

func cachedColumns(cfg *config.Config) ([]model.Column, bool) {
	if cfg.NoCache || cfg.FilePath == "" {
		return nil, false
	}
	return detect.LoadColumnsFromCache(cfg.FilePath)
}

func cacheColumns(cfg *config.Config, cols []model.Column) {
	if cfg.NoCache {
		logx.Infof("detect: not caching columns due to --no-cache")
		return
	}
	if err := detect.SaveColumnsToCache(cfg.FilePath, cols); err != nil {
		logx.Warnf("detect: failed to save columns cache: %v", err)
		return
	}
	logx.Infof("detect: columns cached for %s", cfg.FilePath)
}
