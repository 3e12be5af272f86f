package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/blindbox-next/internal/blindbox"
	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/logger"
	"github.com/blindbox-next/internal/models"
	"github.com/blindbox-next/internal/repository"
)

// ProbabilityService 抽取概率配置服务，读多写少，内存中原子替换
type ProbabilityService struct {
	repo     repository.SettingRepository
	defaults blindbox.Weights
	current  atomic.Pointer[blindbox.Weights]
	writeMu  sync.Mutex
}

// NewProbabilityService 创建概率配置服务，defaults 非法时使用 60/30/10
func NewProbabilityService(repo repository.SettingRepository, defaults blindbox.Weights) *ProbabilityService {
	if err := defaults.Validate(); err != nil {
		logger.Warnw("probability_defaults_invalid", "error", err)
		defaults = blindbox.DefaultWeights()
	}
	s := &ProbabilityService{repo: repo, defaults: defaults}
	initial := defaults
	s.current.Store(&initial)
	return s
}

// Load 从设置表加载配置；不存在时写入默认值，数据损坏时回退默认值
func (s *ProbabilityService) Load() (blindbox.Weights, error) {
	setting, err := s.repo.GetByKey(constants.SettingKeyBlindboxProbabilities)
	if err != nil {
		return s.Get(), storeError(err)
	}
	if setting == nil {
		if _, err := s.repo.Upsert(constants.SettingKeyBlindboxProbabilities, weightsToJSON(s.defaults)); err != nil {
			return s.Get(), storeError(err)
		}
		s.swap(s.defaults)
		logger.Infow("probability_defaults_persisted",
			"common", s.defaults.Common,
			"rare", s.defaults.Rare,
			"secret", s.defaults.Secret,
		)
		return s.defaults, nil
	}

	weights, err := weightsFromJSON(setting.ValueJSON)
	if err == nil {
		err = weights.Validate()
	}
	if err != nil {
		logger.Warnw("probability_setting_corrupt",
			"error", err,
			"fallback", "defaults",
		)
		s.swap(s.defaults)
		return s.defaults, nil
	}
	s.swap(weights)
	return weights, nil
}

// Get 当前生效的概率配置
func (s *ProbabilityService) Get() blindbox.Weights {
	return *s.current.Load()
}

// Set 校验并持久化后替换配置；失败时原配置保持不变
func (s *ProbabilityService) Set(weights blindbox.Weights) (blindbox.Weights, error) {
	if err := weights.Validate(); err != nil {
		return s.Get(), err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.repo.Upsert(constants.SettingKeyBlindboxProbabilities, weightsToJSON(weights)); err != nil {
		return s.Get(), storeError(err)
	}
	s.swap(weights)
	logger.Infow("probability_updated",
		"common", weights.Common,
		"rare", weights.Rare,
		"secret", weights.Secret,
	)
	return weights, nil
}

func (s *ProbabilityService) swap(weights blindbox.Weights) {
	next := weights
	s.current.Store(&next)
}

func weightsToJSON(w blindbox.Weights) models.JSON {
	return models.JSON{
		constants.RarityCommon: w.Common,
		constants.RarityRare:   w.Rare,
		constants.RaritySecret: w.Secret,
	}
}

func weightsFromJSON(value models.JSON) (blindbox.Weights, error) {
	var w blindbox.Weights
	fields := []struct {
		key  string
		dest *int
	}{
		{constants.RarityCommon, &w.Common},
		{constants.RarityRare, &w.Rare},
		{constants.RaritySecret, &w.Secret},
	}
	for _, field := range fields {
		raw, ok := value[field.key]
		if !ok {
			return w, fmt.Errorf("missing %s weight", field.key)
		}
		parsed, err := parseSettingInt(raw)
		if err != nil {
			return w, fmt.Errorf("parse %s weight: %w", field.key, err)
		}
		*field.dest = parsed
	}
	return w, nil
}

func parseSettingInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("non-integer value %v", v)
		}
		return int(v), nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, err
		}
		return int(i), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.Atoi(trimmed)
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}
