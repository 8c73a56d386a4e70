package frontier

import (
	"context"
	"fmt"
	"math"

	"frontierlab/internal/domain"
	"frontierlab/internal/solver"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GammaGrid returns samples log-spaced risk-aversion values covering
// [10^minExponent, 10^maxExponent], ascending. The classic sweep is
// GammaGrid(-2, 3, 100).
func GammaGrid(minExponent, maxExponent float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("samples must be positive, got %d", samples)
	}
	if maxExponent < minExponent {
		return nil, fmt.Errorf("max exponent %g below min exponent %g", maxExponent, minExponent)
	}
	grid := make([]float64, samples)
	if samples == 1 {
		grid[0] = math.Pow(10, minExponent)
		return grid, nil
	}
	for i := range grid {
		exponent := minExponent + (maxExponent-minExponent)*float64(i)/float64(samples-1)
		grid[i] = math.Pow(10, exponent)
	}
	return grid, nil
}

type Service struct {
	Solver *solver.Solver
	Logger *zap.SugaredLogger
	// Parallelism bounds concurrent solves. The per-gamma problems are
	// independent, so anything > 1 just runs them on a bounded worker set;
	// <= 1 solves sequentially.
	Parallelism int
}

func NewService(logger *zap.SugaredLogger) *Service {
	return &Service{
		Solver: solver.New(),
		Logger: logger,
	}
}

type SweepInput struct {
	Universe domain.Universe
	Gammas   []float64
}

// Sweep solves one long-only Markowitz program per gamma and assembles the
// efficient frontier. The first failed solve aborts the whole sweep and the
// error names the offending gamma.
func (s *Service) Sweep(ctx context.Context, in SweepInput) (*domain.Frontier, error) {
	if err := in.Universe.Validate(); err != nil {
		return nil, fmt.Errorf("invalid universe: %w", err)
	}
	if len(in.Gammas) == 0 {
		return nil, fmt.Errorf("no gamma samples provided")
	}
	for i, gamma := range in.Gammas {
		if gamma <= 0 {
			return nil, fmt.Errorf("gamma sample %d is not positive: %g", i, gamma)
		}
		if i > 0 && gamma <= in.Gammas[i-1] {
			return nil, fmt.Errorf("gamma samples must be strictly ascending at index %d", i)
		}
	}

	qp := s.Solver
	if qp == nil {
		qp = solver.New()
	}

	points := make([]domain.FrontierPoint, len(in.Gammas))
	solveOne := func(i int) error {
		gamma := in.Gammas[i]
		result, err := qp.Solve(in.Universe, gamma)
		if err != nil {
			return fmt.Errorf("solve failed for gamma=%g: %w", gamma, err)
		}
		points[i] = domain.FrontierPoint{
			Gamma:   gamma,
			Weights: result.Weights,
			Return:  in.Universe.Return(result.Weights),
			Risk:    in.Universe.Risk(result.Weights),
		}
		return nil
	}

	if s.Parallelism > 1 {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(s.Parallelism)
		for i := range in.Gammas {
			i := i
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				return solveOne(i)
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range in.Gammas {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := solveOne(i); err != nil {
				return nil, err
			}
		}
	}

	if s.Logger != nil {
		s.Logger.Infow("frontier sweep complete",
			"samples", len(points),
			"assets", in.Universe.NumAssets(),
			"minGamma", in.Gammas[0],
			"maxGamma", in.Gammas[len(in.Gammas)-1],
		)
	}

	frontier := &domain.Frontier{
		Universe: in.Universe.DeepCopy(),
		Points:   points,
	}
	if err := frontier.Validate(); err != nil {
		return nil, fmt.Errorf("sweep produced invalid frontier: %w", err)
	}
	return frontier, nil
}
