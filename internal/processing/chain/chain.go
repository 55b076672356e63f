package chain

import (
	"context"
	"fmt"

	"particle-meter/internal/opencv/safe"
)

// ProcessingStep transforms one image into a new one. Implementations must
// not modify input.
type ProcessingStep interface {
	Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error)
	Name() string
}

// StepObserver is notified after each step completes.
type StepObserver func(step string, output *safe.Mat)

type ProcessingChain struct {
	steps    []ProcessingStep
	observer StepObserver
}

func NewProcessingChain(steps []ProcessingStep) *ProcessingChain {
	return &ProcessingChain{
		steps: steps,
	}
}

func (pc *ProcessingChain) SetObserver(observer StepObserver) {
	pc.observer = observer
}

// Execute runs the steps in order. The caller keeps ownership of input; every
// intermediate result is closed, so on error nothing is left allocated.
func (pc *ProcessingChain) Execute(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	current := input

	release := func() {
		if current != input {
			current.Close()
		}
	}

	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			release()
			return nil, ctx.Err()
		default:
		}

		result, err := step.Apply(ctx, current)
		if err != nil {
			release()
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}

		release()
		current = result

		if pc.observer != nil {
			pc.observer(step.Name(), current)
		}
	}

	if current == input {
		return input.Clone()
	}
	return current, nil
}

func (pc *ProcessingChain) AddStep(step ProcessingStep) {
	pc.steps = append(pc.steps, step)
}

func (pc *ProcessingChain) StepCount() int {
	return len(pc.steps)
}

func (pc *ProcessingChain) GetStepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}
