// Package assignment keeps decorator availability in step with booking assignment.
package assignment

import (
	"context"
	"fmt"

	decoratorRepo "decorhub/database/repository/decorator"
	"decorhub/models"

	"go.uber.org/zap"
)

// Coordinator toggles a decorator's work status. It does not check booking
// state; callers pre-check availability before Assign.
type Coordinator struct {
	Decorators decoratorRepo.DecoratorRepository
	Logger     *zap.Logger
}

func NewCoordinator(decorators decoratorRepo.DecoratorRepository, logger *zap.Logger) *Coordinator {
	return &Coordinator{Decorators: decorators, Logger: logger}
}

// Assign claims an available decorator. A decorator that is no longer
// available is a logged no-op and yields nil.
func (c *Coordinator) Assign(ctx context.Context, decoratorID string) (*models.Decorator, error) {
	d, err := c.Decorators.Claim(ctx, decoratorID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim decorator %s: %w", decoratorID, err)
	}
	if d == nil {
		c.Logger.Info("decorator not available, assignment skipped", zap.String("decoratorId", decoratorID))
		return nil, nil
	}
	c.Logger.Debug("decorator claimed", zap.String("decoratorId", decoratorID))
	return d, nil
}

// Release makes the decorator available again. It is idempotent.
func (c *Coordinator) Release(ctx context.Context, decoratorID string) error {
	if decoratorID == "" {
		return nil
	}
	if err := c.Decorators.Release(ctx, decoratorID); err != nil {
		c.Logger.Error("failed to release decorator", zap.String("decoratorId", decoratorID), zap.Error(err))
		return err
	}
	c.Logger.Debug("decorator released", zap.String("decoratorId", decoratorID))
	return nil
}
