package api

import (
	"context"
	"errors"
	"fmt"
)

const usageDashboardQuery = `query AiUsageDashboard {
  aiUsageDashboard {
    totalRequestsToday
    totalRemaining
    models {
      modelName
      currentUsage
      dailyLimit
      remaining
      percentageUsed
      priority
      useCase
      totalInputCharacters
      totalOutputCharacters
      totalInputTokens
      totalOutputTokens
    }
  }
}`

const resetDailyUsageMutation = `mutation ResetDailyUsage {
  resetDailyUsage {
    success
    message
    resetDate
  }
}`

const modelConfigQuery = `query AiModelConfig {
  aiModelConfig {
    currentProvider
    selectedModel
    availableModels
    modelPriorityOrder
    useOpenrouter
  }
}`

const setModelMutation = `mutation SetAiModel($modelName: String, $priorityOrder: [String!], $smartRouting: Boolean) {
  setAiModel(modelName: $modelName, priorityOrder: $priorityOrder, smartRouting: $smartRouting) {
    success
    message
  }
}`

// UsageDashboard returns today's quota usage per model. Concurrent
// calls are collapsed into one request; dashboards refresh often and
// the data is identical for every caller.
func (c *Client) UsageDashboard(ctx context.Context) (*UsageDashboard, error) {
	v, err, _ := c.flights.Do("usage-dashboard", func() (any, error) {
		var out struct {
			Dashboard UsageDashboard `json:"aiUsageDashboard"`
		}
		if err := c.do(ctx, "AiUsageDashboard", usageDashboardQuery, nil, &out); err != nil {
			return nil, err
		}
		return &out.Dashboard, nil
	})
	if err != nil {
		return nil, err
	}
	dashboard, ok := v.(*UsageDashboard)
	if !ok {
		return nil, errors.New("api: unexpected dashboard payload")
	}
	return dashboard, nil
}

// ResetDailyUsage zeroes today's usage counters. Admin only.
func (c *Client) ResetDailyUsage(ctx context.Context) (*ResetResult, error) {
	var out struct {
		Result ResetResult `json:"resetDailyUsage"`
	}
	if err := c.do(ctx, "ResetDailyUsage", resetDailyUsageMutation, nil, &out); err != nil {
		return nil, err
	}
	return &out.Result, nil
}

// ModelConfigInfo returns the backend's current model selection.
// Concurrent calls are collapsed into one request.
func (c *Client) ModelConfigInfo(ctx context.Context) (*ModelConfig, error) {
	v, err, _ := c.flights.Do("model-config", func() (any, error) {
		var out struct {
			Config ModelConfig `json:"aiModelConfig"`
		}
		if err := c.do(ctx, "AiModelConfig", modelConfigQuery, nil, &out); err != nil {
			return nil, err
		}
		return &out.Config, nil
	})
	if err != nil {
		return nil, err
	}
	config, ok := v.(*ModelConfig)
	if !ok {
		return nil, errors.New("api: unexpected model config payload")
	}
	return config, nil
}

// SetModel pins the backend to a single model.
func (c *Client) SetModel(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("api: model name is empty")
	}
	return c.setModel(ctx, map[string]any{"modelName": name})
}

// SetModelPriority installs a fallback chain: the backend walks order
// until it finds a model with quota left.
func (c *Client) SetModelPriority(ctx context.Context, order []string) error {
	if len(order) == 0 {
		return errors.New("api: priority order is empty")
	}
	return c.setModel(ctx, map[string]any{"priorityOrder": order})
}

// UseSmartRouting lets the backend pick a model per message based on
// its complexity.
func (c *Client) UseSmartRouting(ctx context.Context) error {
	return c.setModel(ctx, map[string]any{"smartRouting": true})
}

func (c *Client) setModel(ctx context.Context, vars map[string]any) error {
	var out struct {
		Result struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		} `json:"setAiModel"`
	}
	if err := c.do(ctx, "SetAiModel", setModelMutation, vars, &out); err != nil {
		return err
	}
	if !out.Result.Success {
		return fmt.Errorf("api: SetAiModel: %s", out.Result.Message)
	}
	return nil
}
