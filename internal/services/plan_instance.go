package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/platform/obs"
	"insertion-route-service/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type PlanInstanceRequest struct {
	Instance string
	Fleet    domain.FleetConfig
	Options  ConstructorOptions
}

// PlanCacheKey identifies a plan by instance and fleet parameters. The
// construction is deterministic, so equal keys always map to equal solutions.
func PlanCacheKey(instance string, fleet domain.FleetConfig) string {
	return "plan:" + instance + ":" +
		strconv.FormatFloat(fleet.VehicleCapacity, 'f', -1, 64) + ":" +
		strconv.Itoa(fleet.VehicleLimit)
}

// PlanInstance loads an instance, constructs its routes, persists the plan,
// and returns it. A cached plan for the same parameters short-circuits the
// construction; cache failures are logged and otherwise ignored.
func PlanInstance(
	ctx context.Context,
	req PlanInstanceRequest,
	instances ports.InstanceRepository,
	plans ports.SolutionRepository,
	cache ports.SolutionCache,
) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "services.PlanInstance")(&err)

	name := strings.TrimSpace(req.Instance)
	if name == "" {
		return nil, fmt.Errorf("plan instance: %w: name must be non-empty", domain.ErrInvalidInstance)
	}
	if err := req.Fleet.Validate(); err != nil {
		return nil, fmt.Errorf("plan instance: %w", err)
	}

	key := PlanCacheKey(name, req.Fleet)
	if cache != nil {
		cached, ok, err := cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("plan cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	in, err := instances.GetInstance(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("plan instance: get instance %q: %w", name, err)
	}

	solution, err := Solve(ctx, in, req.Fleet, req.Options)
	if err != nil {
		return nil, fmt.Errorf("plan instance: %w", err)
	}

	plan := &domain.Plan{
		ID:        uuid.NewString(),
		Instance:  name,
		Fleet:     req.Fleet,
		CreatedAt: time.Now().UTC(),
		Solution:  *solution,
	}

	if err := plans.SavePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("plan instance: save plan: %w", err)
	}

	if cache != nil {
		if err := cache.Put(ctx, key, plan); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("plan cache write failed")
		}
	}

	return plan, nil
}
